//go:build windows

package winplatform

import (
	"fmt"
	"image"
	"unsafe"

	"autoskip/internal/model"
)

// Screenshotter implements platform.Screenshotter via GDI BitBlt. It exists
// for the diagnostic `screenshot` command (probe calibration), not for the
// poll loop — the idempotence probe samples pixels directly instead.
type Screenshotter struct{}

// NewScreenshotter creates a Windows screen capturer.
func NewScreenshotter() *Screenshotter {
	return &Screenshotter{}
}

// CaptureScreen captures the given screen region, or the full primary screen
// when bounds is nil.
func (s *Screenshotter) CaptureScreen(bounds *model.Bounds) (image.Image, error) {
	var region model.Bounds
	if bounds != nil {
		region = *bounds
	} else {
		w, _, _ := procGetSystemMetrics.Call(smCXScreen)
		h, _, _ := procGetSystemMetrics.Call(smCYScreen)
		region = model.Bounds{Width: int(w), Height: int(h)}
	}
	if region.Empty() {
		return nil, fmt.Errorf("screenshot: empty capture region %+v", region)
	}

	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("screenshot: GetDC failed")
	}
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("screenshot: CreateCompatibleDC failed")
	}
	defer procDeleteDC.Call(memDC)

	bitmap, _, _ := procCreateCompatibleBitmap.Call(screenDC, uintptr(region.Width), uintptr(region.Height))
	if bitmap == 0 {
		return nil, fmt.Errorf("screenshot: CreateCompatibleBitmap failed")
	}
	defer procDeleteObject.Call(bitmap)

	prev, _, _ := procSelectObject.Call(memDC, bitmap)
	defer procSelectObject.Call(memDC, prev)

	ret, _, err := procBitBlt.Call(memDC, 0, 0,
		uintptr(region.Width), uintptr(region.Height),
		screenDC, uintptr(region.X), uintptr(region.Y), srcCopy)
	if ret == 0 {
		return nil, fmt.Errorf("screenshot: BitBlt: %w", err)
	}

	// Negative height requests a top-down DIB.
	hdr := bitmapInfoHeader{
		Size:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		Width:       int32(region.Width),
		Height:      -int32(region.Height),
		Planes:      1,
		BitCount:    32,
		Compression: biRGB,
	}
	buf := make([]byte, region.Width*region.Height*4)
	lines, _, err := procGetDIBits.Call(memDC, bitmap, 0, uintptr(region.Height),
		uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&hdr)), dibRGBColors)
	if lines == 0 {
		return nil, fmt.Errorf("screenshot: GetDIBits: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, region.Width, region.Height))
	for i := 0; i+3 < len(buf); i += 4 {
		// DIB pixels are BGRA.
		img.Pix[i+0] = buf[i+2]
		img.Pix[i+1] = buf[i+1]
		img.Pix[i+2] = buf[i+0]
		img.Pix[i+3] = 0xFF
	}
	return img, nil
}
