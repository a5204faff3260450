package engine

import (
	"errors"

	"autoskip/internal/model"
	"autoskip/internal/platform"
)

// fakeElement is an in-memory accessibility element for tests.
type fakeElement struct {
	id     string
	name   string
	bounds model.Bounds

	children []*fakeElement

	idErr     error
	nameErr   error
	boundsErr error

	// nil funcs mean the pattern is unsupported.
	invoke func() error
	toggle func() error
	sel    func() error

	invoked  int
	released bool
}

func (e *fakeElement) AutomationID() (string, error) { return e.id, e.idErr }
func (e *fakeElement) Name() (string, error)         { return e.name, e.nameErr }
func (e *fakeElement) Bounds() (model.Bounds, error) { return e.bounds, e.boundsErr }

func (e *fakeElement) Children() ([]platform.Element, error) {
	out := make([]platform.Element, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out, nil
}

func (e *fakeElement) Descendants(max int) ([]platform.Element, error) {
	var out []platform.Element
	var walk func(el *fakeElement)
	walk = func(el *fakeElement) {
		for _, c := range el.children {
			if max > 0 && len(out) >= max {
				return
			}
			out = append(out, c)
			walk(c)
		}
	}
	walk(e)
	return out, nil
}

func (e *fakeElement) Invoke() error {
	e.invoked++
	if e.invoke == nil {
		return platform.ErrPatternUnsupported
	}
	return e.invoke()
}

func (e *fakeElement) Toggle() error {
	if e.toggle == nil {
		return platform.ErrPatternUnsupported
	}
	return e.toggle()
}

func (e *fakeElement) Select() error {
	if e.sel == nil {
		return platform.ErrPatternUnsupported
	}
	return e.sel()
}

func (e *fakeElement) Release() { e.released = true }

type fakeFinder struct {
	windows []model.Window
	err     error
}

func (f *fakeFinder) ListWindows() ([]model.Window, error) { return f.windows, f.err }

type fakeReader struct {
	roots map[uintptr]*fakeElement
	err   error
}

func (r *fakeReader) RootElement(handle uintptr) (platform.Element, error) {
	if r.err != nil {
		return nil, r.err
	}
	root, ok := r.roots[handle]
	if !ok {
		return nil, errors.New("no such window")
	}
	return root, nil
}

type fakeInputter struct {
	curX, curY int
	posErr     error

	moves  [][2]int
	clicks int
}

func (i *fakeInputter) CursorPos() (int, int, error) { return i.curX, i.curY, i.posErr }

func (i *fakeInputter) MoveCursor(x, y int) error {
	i.moves = append(i.moves, [2]int{x, y})
	return nil
}

func (i *fakeInputter) ClickButton() error {
	i.clicks++
	return nil
}

type postedClick struct {
	handle uintptr
	x, y   int
}

type fakeMessenger struct {
	atPoint   uintptr
	atPointOK bool

	root    uintptr
	child   uintptr
	childOK bool

	clientBounds    model.Bounds
	clientBoundsErr error

	screenToClientErr error
	postErr           error

	posted []postedClick
}

func (m *fakeMessenger) WindowAtPoint(x, y int) (uintptr, bool) { return m.atPoint, m.atPointOK }
func (m *fakeMessenger) RootWindow(handle uintptr) uintptr      { return m.root }

func (m *fakeMessenger) FindChildByClass(parent uintptr, class string) (uintptr, bool) {
	return m.child, m.childOK
}

func (m *fakeMessenger) ClientBounds(handle uintptr) (model.Bounds, error) {
	return m.clientBounds, m.clientBoundsErr
}

func (m *fakeMessenger) ScreenToClient(handle uintptr, x, y int) (int, int, error) {
	if m.screenToClientErr != nil {
		return 0, 0, m.screenToClientErr
	}
	// Client origin at the window's top-left, 100px above the point keeps
	// most tests inside the reliable fraction by default.
	return x, y - 100, nil
}

func (m *fakeMessenger) PostClick(handle uintptr, clientX, clientY int) error {
	if m.postErr != nil {
		return m.postErr
	}
	m.posted = append(m.posted, postedClick{handle: handle, x: clientX, y: clientY})
	return nil
}

// fakeSampler returns a fixed gray level for every pixel.
type fakeSampler struct {
	level   uint8
	failAll bool
	samples int
}

func (s *fakeSampler) SamplePixel(x, y int) (uint8, uint8, uint8, bool) {
	s.samples++
	if s.failAll {
		return 0, 0, 0, false
	}
	return s.level, s.level, s.level, true
}

type fakeFocus struct {
	fg    uintptr
	fgOK  bool
	setTo []uintptr
}

func (f *fakeFocus) ForegroundWindow() (uintptr, bool) { return f.fg, f.fgOK }

func (f *fakeFocus) SetForegroundWindow(handle uintptr) error {
	f.setTo = append(f.setTo, handle)
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Notify(message string) error {
	n.messages = append(n.messages, message)
	return nil
}
