//go:build windows

package winplatform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"autoskip/internal/model"
)

// Messenger implements platform.Messenger over raw window messages.
type Messenger struct{}

// NewMessenger creates a Windows message poster.
func NewMessenger() *Messenger {
	return &Messenger{}
}

// WindowAtPoint resolves the OS window under a screen point.
func (m *Messenger) WindowAtPoint(x, y int) (uintptr, bool) {
	// WindowFromPoint takes POINT by value: both int32 fields packed into
	// one 64-bit argument.
	arg := uintptr(uint32(int32(x))) | uintptr(uint32(int32(y)))<<32
	hwnd, _, _ := procWindowFromPoint.Call(arg)
	return hwnd, hwnd != 0
}

// RootWindow walks up to the top-level ancestor of a window.
func (m *Messenger) RootWindow(handle uintptr) uintptr {
	root, _, _ := procGetAncestor.Call(handle, gaRoot)
	if root == 0 {
		return handle
	}
	return root
}

// FindChildByClass searches a window's direct children for the first child
// of the given window class.
func (m *Messenger) FindChildByClass(parent uintptr, class string) (uintptr, bool) {
	cls, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0, false
	}
	child, _, _ := procFindWindowExW.Call(parent, 0, uintptr(unsafe.Pointer(cls)), 0)
	return child, child != 0
}

// ClientBounds returns a window's client-area rectangle.
func (m *Messenger) ClientBounds(handle uintptr) (model.Bounds, error) {
	var r rect
	ret, _, err := procGetClientRect.Call(handle, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return model.Bounds{}, fmt.Errorf("messenger: GetClientRect: %w", err)
	}
	return model.Bounds{Width: int(r.Right), Height: int(r.Bottom)}, nil
}

// ScreenToClient converts screen coordinates to a window's client space.
func (m *Messenger) ScreenToClient(handle uintptr, x, y int) (int, int, error) {
	pt := point{X: int32(x), Y: int32(y)}
	ret, _, err := procScreenToClient.Call(handle, uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return 0, 0, fmt.Errorf("messenger: ScreenToClient: %w", err)
	}
	return int(pt.X), int(pt.Y), nil
}

// PostClick posts a left button-down then button-up pair to the window at
// the given client coordinates. No pointer movement, no focus change.
func (m *Messenger) PostClick(handle uintptr, clientX, clientY int) error {
	lparam := makeLParam(clientX, clientY)
	if ret, _, err := procPostMessageW.Call(handle, wmLButtonDown, mkLButton, lparam); ret == 0 {
		return fmt.Errorf("messenger: post button-down: %w", err)
	}
	if ret, _, err := procPostMessageW.Call(handle, wmLButtonUp, 0, lparam); ret == 0 {
		return fmt.Errorf("messenger: post button-up: %w", err)
	}
	return nil
}
