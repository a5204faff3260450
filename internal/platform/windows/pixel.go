//go:build windows

package winplatform

// Sampler implements platform.PixelSampler by reading single pixels straight
// from the screen device context. No bitmap copy is taken: a full-region
// capture flickers some renderers, a point read does not.
type Sampler struct{}

// NewSampler creates a Windows pixel sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}

// SamplePixel reads the screen pixel at (x, y).
func (s *Sampler) SamplePixel(x, y int) (r, g, b uint8, ok bool) {
	dc, _, _ := procGetDC.Call(0)
	if dc == 0 {
		return 0, 0, 0, false
	}
	defer procReleaseDC.Call(0, dc)

	colorref, _, _ := procGetPixel.Call(dc, uintptr(x), uintptr(y))
	if uint32(colorref) == clrInvalid {
		return 0, 0, 0, false
	}
	// COLORREF is 0x00BBGGRR.
	return uint8(colorref), uint8(colorref >> 8), uint8(colorref >> 16), true
}
