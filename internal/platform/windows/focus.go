//go:build windows

package winplatform

import "fmt"

// Focus implements platform.FocusManager.
type Focus struct{}

// NewFocus creates a Windows focus manager.
func NewFocus() *Focus {
	return &Focus{}
}

// ForegroundWindow returns the window the user is currently working in.
func (f *Focus) ForegroundWindow() (uintptr, bool) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return hwnd, hwnd != 0
}

// SetForegroundWindow re-activates a previously recorded window.
func (f *Focus) SetForegroundWindow(handle uintptr) error {
	ret, _, err := procSetForegroundWindow.Call(handle)
	if ret == 0 {
		return fmt.Errorf("focus: SetForegroundWindow(%#x): %w", handle, err)
	}
	return nil
}
