//go:build windows

// Package winplatform implements the platform backends for Windows: window
// enumeration and input via user32/gdi32, and accessibility-tree access via
// the UI Automation COM API.
package winplatform

import (
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procEnumWindows          = user32.NewProc("EnumWindows")
	procIsWindowVisible      = user32.NewProc("IsWindowVisible")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow  = user32.NewProc("SetForegroundWindow")
	procWindowFromPoint      = user32.NewProc("WindowFromPoint")
	procGetAncestor          = user32.NewProc("GetAncestor")
	procFindWindowExW        = user32.NewProc("FindWindowExW")
	procScreenToClient       = user32.NewProc("ScreenToClient")
	procGetClientRect        = user32.NewProc("GetClientRect")
	procPostMessageW         = user32.NewProc("PostMessageW")
	procGetCursorPos         = user32.NewProc("GetCursorPos")
	procSetCursorPos         = user32.NewProc("SetCursorPos")
	procSendInput            = user32.NewProc("SendInput")
	procGetSystemMetrics     = user32.NewProc("GetSystemMetrics")
	procMessageBeep          = user32.NewProc("MessageBeep")
	procGetDC                = user32.NewProc("GetDC")
	procReleaseDC            = user32.NewProc("ReleaseDC")

	procGetPixel               = gdi32.NewProc("GetPixel")
	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procBitBlt                 = gdi32.NewProc("BitBlt")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
)

const (
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	mkLButton     = 0x0001

	gaRoot = 2

	inputMouse          = 0
	mouseEventfLeftDown = 0x0002
	mouseEventfLeftUp   = 0x0004

	smCXScreen = 0
	smCYScreen = 1

	mbIconInformation = 0x00000040

	clrInvalid = 0xFFFFFFFF

	srcCopy      = 0x00CC0020
	biRGB        = 0
	dibRGBColors = 0
)

type point struct {
	X, Y int32
}

type rect struct {
	Left, Top, Right, Bottom int32
}

// mouseInput mirrors the MOUSEINPUT half of the Win32 INPUT union. The
// leading pad keeps the union 8-byte aligned on amd64.
type mouseInputEvent struct {
	Type      uint32
	_         uint32
	Dx        int32
	Dy        int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

func makeLParam(x, y int) uintptr {
	return uintptr(uint32(x)&0xFFFF | uint32(y)<<16)
}
