package engine

import (
	"testing"
	"time"

	"autoskip/internal/logging"
	"autoskip/internal/model"
	"autoskip/internal/platform"
	"autoskip/internal/rules"
)

const userWindow uintptr = 0x42

type pollerFixture struct {
	poller    *Poller
	finder    *fakeFinder
	messenger *fakeMessenger
	inputter  *fakeInputter
	sampler   *fakeSampler
	focus     *fakeFocus
}

// newPollerFixture wires a poller against a fake worklist containing the
// given rows. The probe permits clicks and the message strategy succeeds.
func newPollerFixture(t *testing.T, list []rules.SkipRule, rows ...*fakeElement) *pollerFixture {
	t.Helper()

	root := &fakeElement{children: rows}
	f := &pollerFixture{
		finder: &fakeFinder{windows: []model.Window{
			{Handle: 42, Title: "RIS Client - Unread Worklist"},
		}},
		messenger: &fakeMessenger{
			atPoint:      gridWindow,
			atPointOK:    true,
			root:         topWindow,
			clientBounds: model.Bounds{Width: 1200, Height: 900},
		},
		inputter: &fakeInputter{},
		sampler:  &fakeSampler{level: 72},
		focus:    &fakeFocus{fg: userWindow, fgOK: true},
	}

	provider := &platform.Provider{
		WindowFinder: f.finder,
		TreeReader:   &fakeReader{roots: map[uintptr]*fakeElement{42: root}},
		Inputter:     f.inputter,
		Messenger:    f.messenger,
		PixelSampler: f.sampler,
		FocusManager: f.focus,
	}
	f.poller = New(provider, Options{
		Interval:     time.Second,
		MaxRows:      25,
		TitleTerms:   []string{"Worklist"},
		RowPrefix:    "Row-",
		HeaderPrefix: "Row-Header",
		ButtonPrefix: "ButtonField-",
		Rules:        list,
	}, logging.Discard())
	f.poller.sleep = func(time.Duration) {}
	f.poller.clicker.sleep = func(time.Duration) {}
	return f
}

func dopplerRule() []rules.SkipRule {
	return []rules.SkipRule{{
		Enabled: true,
		Name:    "doppler",
		AnyOf:   "VENOUS, DOPPLER",
		Exclude: "ARTERIAL",
	}}
}

func TestTick_EndToEndMatchAndClick(t *testing.T) {
	f := newPollerFixture(t, dopplerRule(),
		newRowElement("Row-0", testRowBounds, worklistCells("STAT", "A1", "CT CHEST W CONTRAST")...),
		newRowElement("Row-1", testRowBounds, worklistCells("STAT", "A2", "US VENOUS DOPPLER LE")...),
		newRowElement("Row-2", testRowBounds, worklistCells("STAT", "A3", "US ARTERIAL DOPPLER LE")...),
	)

	f.poller.Tick()

	// Row 1 has no anyOf term, row 3 is excluded by ARTERIAL: exactly one
	// click for row 2.
	if got := f.poller.Skipped(); got != 1 {
		t.Errorf("skipped counter = %d, want 1", got)
	}
	if len(f.messenger.posted) != 1 {
		t.Errorf("posted clicks = %d, want 1", len(f.messenger.posted))
	}
	if len(f.focus.setTo) != 1 || f.focus.setTo[0] != userWindow {
		t.Errorf("focus restore = %v, want restore to user window", f.focus.setTo)
	}
}

func TestTick_ProbeVetoLeavesCounterUntouched(t *testing.T) {
	f := newPollerFixture(t, dopplerRule(),
		newRowElement("Row-0", testRowBounds, worklistCells("STAT", "A1", "US VENOUS DOPPLER LE")...),
	)
	f.sampler.level = 130

	f.poller.Tick()

	if got := f.poller.Skipped(); got != 0 {
		t.Errorf("skipped counter = %d, want 0", got)
	}
	if len(f.messenger.posted) != 0 || f.inputter.clicks != 0 || len(f.inputter.moves) != 0 {
		t.Error("synthetic input issued for an already-active row")
	}
	// A save with no fired click must not churn focus.
	if len(f.focus.setTo) != 0 {
		t.Error("focus restored although nothing was clicked")
	}
}

func TestTick_NoMatchesNeverTouchesFocus(t *testing.T) {
	f := newPollerFixture(t, dopplerRule(),
		newRowElement("Row-0", testRowBounds, worklistCells("STAT", "A1", "CT CHEST W CONTRAST")...),
	)

	f.poller.Tick()

	if len(f.focus.setTo) != 0 {
		t.Error("focus restored on a tick with zero matches")
	}
	if got := f.poller.Skipped(); got != 0 {
		t.Errorf("skipped counter = %d, want 0", got)
	}
}

func TestTick_WindowMissingIsQuietNoop(t *testing.T) {
	f := newPollerFixture(t, dopplerRule(),
		newRowElement("Row-0", testRowBounds, worklistCells("STAT", "A1", "US VENOUS DOPPLER LE")...),
	)
	f.finder.windows = nil

	f.poller.Tick()

	if f.poller.Skipped() != 0 || len(f.messenger.posted) != 0 {
		t.Error("tick acted without a target window")
	}
}

func TestTick_NonActionableRowsFiltered(t *testing.T) {
	offscreen := model.Bounds{X: -200, Y: 120, Width: 600, Height: 24}
	f := newPollerFixture(t, dopplerRule(),
		newRowElement("Row-0", offscreen, worklistCells("STAT", "A1", "US VENOUS DOPPLER LE")...),
	)

	f.poller.Tick()

	if f.poller.Skipped() != 0 || len(f.messenger.posted) != 0 {
		t.Error("clicked a row with off-screen geometry")
	}
}

func TestTick_PausedDoesNothing(t *testing.T) {
	f := newPollerFixture(t, dopplerRule(),
		newRowElement("Row-0", testRowBounds, worklistCells("STAT", "A1", "US VENOUS DOPPLER LE")...),
	)
	f.poller.Pause()
	f.poller.Tick()
	if f.poller.Skipped() != 0 {
		t.Error("paused poller still ticked")
	}

	f.poller.Resume()
	f.poller.Tick()
	if f.poller.Skipped() != 1 {
		t.Error("resumed poller did not tick")
	}
}

func TestTick_OverlappingTickDropped(t *testing.T) {
	f := newPollerFixture(t, dopplerRule(),
		newRowElement("Row-0", testRowBounds, worklistCells("STAT", "A1", "US VENOUS DOPPLER LE")...),
	)
	f.poller.inTick.Store(true)
	f.poller.Tick()
	if f.poller.Skipped() != 0 {
		t.Error("overlapping tick was not dropped")
	}
}

func TestTick_ReleasesRowElementsAtTickEnd(t *testing.T) {
	row := newRowElement("Row-0", testRowBounds, worklistCells("STAT", "A1", "US VENOUS DOPPLER LE")...)
	f := newPollerFixture(t, dopplerRule(), row)

	f.poller.Tick()

	if !row.released {
		t.Error("row element survived the tick")
	}
}

func TestTick_NotifiesOnlyWhenEnabled(t *testing.T) {
	f := newPollerFixture(t, dopplerRule(),
		newRowElement("Row-0", testRowBounds, worklistCells("STAT", "A1", "US VENOUS DOPPLER LE")...),
	)
	n := &fakeNotifier{}
	f.poller.notifier = n

	f.poller.Tick()
	if len(n.messages) != 0 {
		t.Errorf("notified with notifications disabled: %v", n.messages)
	}

	f.poller.opts.Notify = true
	f.poller.Tick()
	if len(n.messages) != 1 {
		t.Errorf("notifications = %d, want 1", len(n.messages))
	}
}

func TestTick_RecoversFromPanic(t *testing.T) {
	f := newPollerFixture(t, dopplerRule(),
		newRowElement("Row-0", testRowBounds, worklistCells("STAT", "A1", "US VENOUS DOPPLER LE")...),
	)
	// A nil messenger makes the message strategy panic mid-tick.
	f.poller.clicker.messenger = nil

	f.poller.Tick() // must not propagate

	// The next tick proceeds normally.
	f.poller.clicker.messenger = f.messenger
	f.poller.Tick()
	if f.poller.Skipped() != 1 {
		t.Errorf("skipped = %d, want recovery on the following tick", f.poller.Skipped())
	}
}
