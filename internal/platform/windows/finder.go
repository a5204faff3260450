//go:build windows

package winplatform

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"autoskip/internal/model"
)

// Finder implements platform.WindowFinder via EnumWindows.
type Finder struct{}

// NewFinder creates a Windows window finder.
func NewFinder() *Finder {
	return &Finder{}
}

// enumWindowsCallback is registered exactly once: the runtime's callback
// table is fixed-size and never freed, so a per-call closure would exhaust
// it after a few thousand polls. The result slice travels through lparam.
var enumWindowsCallback = windows.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
	out := (*[]model.Window)(unsafe.Pointer(lparam))
	if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
		return 1 // continue enumeration
	}
	title := windowTitle(hwnd)
	if title == "" {
		return 1
	}
	*out = append(*out, model.Window{Handle: hwnd, Title: title})
	return 1
})

// ListWindows enumerates visible top-level windows that carry a title.
// Windows destroyed mid-enumeration simply yield an empty title and are
// dropped; enumeration continues.
func (f *Finder) ListWindows() ([]model.Window, error) {
	var out []model.Window
	ret, _, err := procEnumWindows.Call(enumWindowsCallback, uintptr(unsafe.Pointer(&out)))
	if ret == 0 {
		return nil, err
	}
	return out, nil
}

func windowTitle(hwnd uintptr) string {
	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	copied, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), n+1)
	if copied == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf[:copied])
}
