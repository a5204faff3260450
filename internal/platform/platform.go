package platform

import (
	"errors"
	"image"

	"autoskip/internal/model"
)

// ErrPatternUnsupported is returned by Element pattern methods when the
// underlying accessibility element does not expose that capability.
var ErrPatternUnsupported = errors.New("pattern not supported by element")

// Element is one node of a foreign application's accessibility tree.
//
// Element references are weak: the target application may rebuild its UI
// tree at any time, so an Element obtained in one poll cycle must never be
// reused in a later one. Callers should Release elements when done.
type Element interface {
	// AutomationID returns the element's structural identifier.
	AutomationID() (string, error)

	// Name returns the element's visible text, if any.
	Name() (string, error)

	// Bounds returns the element's on-screen bounding rectangle.
	Bounds() (model.Bounds, error)

	// Children returns the element's direct children in tree order.
	Children() ([]Element, error)

	// Descendants returns all descendants in document order, up to max
	// elements (0 = unlimited).
	Descendants(max int) ([]Element, error)

	// Invoke triggers the element's invoke capability, or returns
	// ErrPatternUnsupported.
	Invoke() error

	// Toggle flips the element's toggle capability, or returns
	// ErrPatternUnsupported.
	Toggle() error

	// Select selects the element via its selection capability, or returns
	// ErrPatternUnsupported.
	Select() error

	// Release frees the underlying OS resources for this element.
	Release()
}

// WindowFinder enumerates visible top-level windows.
type WindowFinder interface {
	// ListWindows returns all visible top-level windows with a non-empty
	// title. Windows that disappear mid-enumeration are silently skipped.
	ListWindows() ([]model.Window, error)
}

// TreeReader opens the accessibility tree of a top-level window.
type TreeReader interface {
	// RootElement returns the accessibility root for the given window.
	RootElement(handle uintptr) (Element, error)
}

// Inputter simulates hardware-level mouse input. This is the only surface
// that visibly moves the pointer.
type Inputter interface {
	CursorPos() (x, y int, err error)
	MoveCursor(x, y int) error
	// ClickButton issues a left-button down/up pair at the current cursor
	// position.
	ClickButton() error
}

// Messenger resolves windows beneath screen points and posts synthetic
// button messages directly to them, without moving the pointer.
type Messenger interface {
	// WindowAtPoint returns the OS window under the given screen point.
	WindowAtPoint(x, y int) (uintptr, bool)

	// RootWindow walks up to the top-level ancestor of a window.
	RootWindow(handle uintptr) uintptr

	// FindChildByClass searches a window's children for the first child
	// with the given window class name.
	FindChildByClass(parent uintptr, class string) (uintptr, bool)

	// ClientBounds returns the client-area rectangle of a window, with
	// X/Y zero and Width/Height the client size.
	ClientBounds(handle uintptr) (model.Bounds, error)

	// ScreenToClient converts screen coordinates to a window's client
	// coordinates.
	ScreenToClient(handle uintptr, x, y int) (int, int, error)

	// PostClick posts a button-down then button-up message pair to the
	// window at the given client coordinates.
	PostClick(handle uintptr, clientX, clientY int) error
}

// PixelSampler reads single pixels from the live screen device context,
// without capturing a bitmap copy.
type PixelSampler interface {
	// SamplePixel reads the screen pixel at (x, y). ok is false when the
	// read fails (e.g. point off-screen).
	SamplePixel(x, y int) (r, g, b uint8, ok bool)
}

// FocusManager reads and restores the OS foreground window.
type FocusManager interface {
	ForegroundWindow() (uintptr, bool)
	SetForegroundWindow(handle uintptr) error
}

// Notifier signals the operator that rows were skipped, without raising any
// window or stealing focus.
type Notifier interface {
	Notify(message string) error
}

// Screenshotter captures a region of the screen.
type Screenshotter interface {
	// CaptureScreen captures the given screen region, or the full primary
	// screen when bounds is nil.
	CaptureScreen(bounds *model.Bounds) (image.Image, error)
}
