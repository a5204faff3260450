//go:build windows

package winplatform

import (
	"fmt"
	"unsafe"
)

// Inputter implements platform.Inputter via SetCursorPos and SendInput.
type Inputter struct{}

// NewInputter creates a Windows input simulator.
func NewInputter() *Inputter {
	return &Inputter{}
}

// CursorPos returns the current cursor position in screen coordinates.
func (i *Inputter) CursorPos() (int, int, error) {
	var pt point
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return 0, 0, fmt.Errorf("input: GetCursorPos: %w", err)
	}
	return int(pt.X), int(pt.Y), nil
}

// MoveCursor warps the cursor to the given screen coordinates.
func (i *Inputter) MoveCursor(x, y int) error {
	ret, _, err := procSetCursorPos.Call(uintptr(x), uintptr(y))
	if ret == 0 {
		return fmt.Errorf("input: SetCursorPos(%d,%d): %w", x, y, err)
	}
	return nil
}

// ClickButton injects a hardware-level left button down/up pair at the
// current cursor position.
func (i *Inputter) ClickButton() error {
	events := [2]mouseInputEvent{
		{Type: inputMouse, Flags: mouseEventfLeftDown},
		{Type: inputMouse, Flags: mouseEventfLeftUp},
	}
	sent, _, err := procSendInput.Call(
		uintptr(len(events)),
		uintptr(unsafe.Pointer(&events[0])),
		unsafe.Sizeof(events[0]),
	)
	if sent != uintptr(len(events)) {
		return fmt.Errorf("input: SendInput sent %d of %d events: %w", sent, len(events), err)
	}
	return nil
}
