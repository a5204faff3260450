package engine

import (
	"errors"
	"testing"
	"time"

	"autoskip/internal/logging"
	"autoskip/internal/model"
)

const (
	topWindow  uintptr = 0x100
	gridWindow uintptr = 0x200
)

// newTestClicker wires a clicker whose probe permits clicks and whose
// message strategy succeeds by default.
func newTestClicker() (*Clicker, *fakeMessenger, *fakeInputter, *fakeSampler) {
	messenger := &fakeMessenger{
		atPoint:      gridWindow,
		atPointOK:    true,
		root:         topWindow,
		clientBounds: model.Bounds{Width: 1200, Height: 900},
	}
	inputter := &fakeInputter{curX: 500, curY: 500}
	sampler := &fakeSampler{level: 72}
	c := NewClicker(messenger, inputter, NewProbe(sampler), "ButtonField-", logging.Discard())
	c.sleep = func(time.Duration) {}
	return c, messenger, inputter, sampler
}

func clickableRow() *WorklistRow {
	return &WorklistRow{
		Cells:  worklistCells("STAT", "A1", "US VENOUS DOPPLER LE"),
		Bounds: model.Bounds{X: 50, Y: 300, Width: 600, Height: 24},
	}
}

// rowWithButtons attaches two action-button cells; the second is the skip
// toggle.
func rowWithButtons(invoke func() error) (*WorklistRow, *fakeElement) {
	skip := &fakeElement{
		id:     "ButtonField-skip",
		bounds: model.Bounds{X: 120, Y: 304, Width: 16, Height: 16},
		invoke: invoke,
	}
	el := &fakeElement{
		id:     "Row-0",
		bounds: model.Bounds{X: 50, Y: 300, Width: 600, Height: 24},
		children: []*fakeElement{
			{id: "ButtonField-open", bounds: model.Bounds{X: 100, Y: 304, Width: 16, Height: 16}},
			skip,
			{name: "US VENOUS DOPPLER LE"},
		},
	}
	row := clickableRow()
	row.Element = el
	return row, skip
}

func TestClick_RejectsCollapsedRow(t *testing.T) {
	c, _, _, sampler := newTestClicker()
	row := clickableRow()
	row.Bounds.Height = 14
	if got := c.Click(row); got != model.OutcomeUnreliable {
		t.Errorf("outcome = %s, want unreliable", got)
	}
	if sampler.samples != 0 {
		t.Error("probe ran for a rejected row")
	}
}

func TestClick_RejectsImplausibleY(t *testing.T) {
	c, _, _, _ := newTestClicker()
	for _, y := range []int{-10, 3001} {
		row := clickableRow()
		row.Bounds.Y = y
		if got := c.Click(row); got != model.OutcomeUnreliable {
			t.Errorf("y=%d: outcome = %s, want unreliable", y, got)
		}
	}
}

func TestClick_RejectsBeyondReliableZone(t *testing.T) {
	c, messenger, inputter, _ := newTestClicker()
	row := clickableRow()
	row.Bounds.Y = 850 // center y = 862, past the 800 limit
	if got := c.Click(row); got != model.OutcomeUnreliable {
		t.Errorf("outcome = %s, want unreliable", got)
	}
	if len(messenger.posted) != 0 || inputter.clicks != 0 {
		t.Error("a strategy ran for a row outside the reliable zone")
	}
}

func TestClick_ProbeVeto(t *testing.T) {
	c, messenger, inputter, sampler := newTestClicker()
	sampler.level = 130
	row := clickableRow()
	if got := c.Click(row); got != model.OutcomeAlreadyActive {
		t.Errorf("outcome = %s, want already_active", got)
	}
	if len(messenger.posted) != 0 || inputter.clicks != 0 || len(inputter.moves) != 0 {
		t.Error("synthetic input issued despite probe veto")
	}
}

func TestClick_PatternStrategyPreferred(t *testing.T) {
	c, messenger, inputter, _ := newTestClicker()
	row, skip := rowWithButtons(func() error { return nil })
	if got := c.Click(row); got != model.OutcomeClicked {
		t.Errorf("outcome = %s, want clicked", got)
	}
	if skip.invoked != 1 {
		t.Errorf("skip button invoked %d times, want 1", skip.invoked)
	}
	if len(messenger.posted) != 0 || inputter.clicks != 0 {
		t.Error("lower strategies ran after pattern success")
	}
}

func TestClick_FallsBackToPostedMessage(t *testing.T) {
	c, messenger, inputter, _ := newTestClicker()
	row := clickableRow() // no element: pattern strategy not applicable
	if got := c.Click(row); got != model.OutcomeClicked {
		t.Errorf("outcome = %s, want clicked", got)
	}
	if len(messenger.posted) != 1 {
		t.Fatalf("posted %d clicks, want 1", len(messenger.posted))
	}
	if messenger.posted[0].handle != gridWindow {
		t.Errorf("posted to %#x, want grid window", messenger.posted[0].handle)
	}
	if inputter.clicks != 0 {
		t.Error("input simulation ran after message success")
	}
}

func TestClick_PatternFailureFallsThrough(t *testing.T) {
	c, messenger, _, _ := newTestClicker()
	row, _ := rowWithButtons(func() error { return errors.New("invoke rejected") })
	if got := c.Click(row); got != model.OutcomeClicked {
		t.Errorf("outcome = %s, want clicked", got)
	}
	if len(messenger.posted) != 1 {
		t.Errorf("posted %d clicks, want fallback to message strategy", len(messenger.posted))
	}
}

func TestClick_ResolvesNestedChildWindow(t *testing.T) {
	c, messenger, _, _ := newTestClicker()
	// WindowFromPoint landed on the top-level frame; the known grid-host
	// child must be searched out.
	messenger.atPoint = topWindow
	messenger.child = gridWindow
	messenger.childOK = true

	row := clickableRow()
	if got := c.Click(row); got != model.OutcomeClicked {
		t.Fatalf("outcome = %s, want clicked", got)
	}
	if len(messenger.posted) != 1 || messenger.posted[0].handle != gridWindow {
		t.Errorf("posted = %+v, want click to nested grid window", messenger.posted)
	}
}

func TestClick_NestedUnreliableZoneSkipsMessage(t *testing.T) {
	c, messenger, inputter, _ := newTestClicker()
	// Client point lands at y=212 in a 250px-tall viewport: below the top
	// 75%, so the message strategy must bow out.
	messenger.clientBounds = model.Bounds{Width: 1200, Height: 250}
	row := clickableRow()
	if got := c.Click(row); got != model.OutcomeClicked {
		t.Fatalf("outcome = %s, want clicked", got)
	}
	if len(messenger.posted) != 0 {
		t.Error("message posted inside the nested unreliable zone")
	}
	if inputter.clicks != 1 {
		t.Errorf("input clicks = %d, want simulated fallback", inputter.clicks)
	}
}

func TestClick_SimulatedInputRestoresCursor(t *testing.T) {
	c, messenger, inputter, _ := newTestClicker()
	messenger.atPointOK = false // message strategy fails
	row := clickableRow()
	if got := c.Click(row); got != model.OutcomeClicked {
		t.Fatalf("outcome = %s, want clicked (fire-and-forget)", got)
	}
	if inputter.clicks != 1 {
		t.Fatalf("input clicks = %d, want 1", inputter.clicks)
	}
	if len(inputter.moves) != 2 {
		t.Fatalf("cursor moves = %d, want move + restore", len(inputter.moves))
	}
	wantX, wantY := fallbackPoint(row.Bounds)
	if inputter.moves[0] != [2]int{wantX, wantY} {
		t.Errorf("clicked at %v, want fallback point (%d,%d)", inputter.moves[0], wantX, wantY)
	}
	if inputter.moves[1] != [2]int{500, 500} {
		t.Errorf("cursor restored to %v, want (500,500)", inputter.moves[1])
	}
}

func TestClick_FallbackPointInsideButtonColumn(t *testing.T) {
	row := clickableRow()
	x, y := fallbackPoint(row.Bounds)
	if x != row.Bounds.X+fallbackOffsetX {
		t.Errorf("fallback x = %d", x)
	}
	if y != row.Bounds.Y+row.Bounds.Height/2 {
		t.Errorf("fallback y = %d", y)
	}
}
