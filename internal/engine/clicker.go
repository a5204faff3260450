package engine

import (
	"errors"
	"strings"
	"time"

	"autoskip/internal/logging"
	"autoskip/internal/model"
	"autoskip/internal/platform"
)

// Geometry limits applied before any click strategy runs.
const (
	// minClickableRowHeight rejects rows collapsed near scroll boundaries.
	minClickableRowHeight = 15

	// maxPlausibleY rejects coordinates no real monitor setup produces.
	maxPlausibleY = 3000

	// reliableZoneMaxY is the lowest screen y at which extracted
	// coordinates are still trusted to match the current render. Rows
	// below it scroll into a better position on a later poll.
	reliableZoneMaxY = 800

	// nestedReliableFraction is the trusted top portion of the nested host
	// window's own client height for the posted-message strategy.
	nestedReliableFraction = 0.75

	// fallbackOffsetX positions the click inside the skip-button column
	// when the button cell cannot be resolved from the row.
	fallbackOffsetX = 75

	// cursorSettleDelay gives the target UI time to register the pointer
	// position before the simulated button press.
	cursorSettleDelay = 50 * time.Millisecond
)

// nestedHostClass is the window class of the child window that actually
// hosts the worklist grid inside the application's top-level frame.
const nestedHostClass = "WindowsForms10.Window.8.app.0.141b42a_r6_ad1"

// strategyStatus tags the result of a single click strategy.
type strategyStatus int

const (
	strategySucceeded strategyStatus = iota
	strategyNotApplicable
	strategyFailed
)

type strategyResult struct {
	status strategyStatus
	err    error
}

// Clicker executes the skip action on a row through a cascade of three
// strategies, most to least preferred: accessibility pattern invocation,
// posted window messages, and simulated mouse input.
type Clicker struct {
	messenger    platform.Messenger
	inputter     platform.Inputter
	probe        *Probe
	buttonPrefix string
	log          *logging.Logger

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewClicker builds a click engine. buttonPrefix identifies the per-row
// action-button cells; the skip toggle is the second such cell (the first
// is an unrelated action).
func NewClicker(messenger platform.Messenger, inputter platform.Inputter, probe *Probe, buttonPrefix string, log *logging.Logger) *Clicker {
	return &Clicker{
		messenger:    messenger,
		inputter:     inputter,
		probe:        probe,
		buttonPrefix: buttonPrefix,
		log:          log,
		sleep:        time.Sleep,
	}
}

// Click runs the full cascade for one row and reports the outcome.
func (c *Clicker) Click(row *WorklistRow) model.ActionOutcome {
	if row.Bounds.Height < minClickableRowHeight {
		return model.OutcomeUnreliable
	}
	if row.Bounds.Y < 0 || row.Bounds.Y > maxPlausibleY {
		return model.OutcomeUnreliable
	}

	x, y, target := c.resolveTarget(row)
	if target != nil {
		defer target.Release()
	}
	if y > reliableZoneMaxY {
		// The row will scroll into the reliable zone on a later poll;
		// acting now risks clicking stale coordinates.
		return model.OutcomeUnreliable
	}

	if c.probe.AlreadyActive(x, y) {
		return model.OutcomeAlreadyActive
	}

	if res := c.invokePattern(target); res.status == strategySucceeded {
		return model.OutcomeClicked
	} else if res.status == strategyFailed {
		c.log.Printf("click: pattern invocation failed: %v", res.err)
	}

	if res := c.postMessage(x, y); res.status == strategySucceeded {
		return model.OutcomeClicked
	} else if res.status == strategyFailed {
		c.log.Printf("click: posted message failed: %v", res.err)
	}

	// Last resort: fire-and-forget, no further fallback exists.
	c.simulateInput(x, y)
	return model.OutcomeClicked
}

// resolveTarget finds the click point: the center of the row's second
// action-button cell, falling back to a fixed offset inside the row's own
// rectangle when the cell cannot be resolved. target is nil on fallback.
func (c *Clicker) resolveTarget(row *WorklistRow) (x, y int, target platform.Element) {
	cx, cy := fallbackPoint(row.Bounds)
	if row.Element == nil {
		return cx, cy, nil
	}

	buttons, err := actionButtons(row.Element, c.buttonPrefix)
	if err != nil || len(buttons) < 2 {
		releaseAll(buttons)
		return cx, cy, nil
	}
	btn := buttons[1]
	for i, other := range buttons {
		if i != 1 {
			other.Release()
		}
	}
	b, err := btn.Bounds()
	if err != nil || b.Empty() {
		btn.Release()
		return cx, cy, nil
	}
	bx, by := b.Center()
	return bx, by, btn
}

func releaseAll(els []platform.Element) {
	for _, el := range els {
		el.Release()
	}
}

func fallbackPoint(b model.Bounds) (int, int) {
	return b.X + fallbackOffsetX, b.Y + b.Height/2
}

// actionButtons returns the row's action-button cells in tree order.
func actionButtons(row platform.Element, prefix string) ([]platform.Element, error) {
	children, err := row.Children()
	if err != nil {
		return nil, err
	}
	var buttons []platform.Element
	for _, ch := range children {
		id, err := ch.AutomationID()
		if err == nil && prefix != "" && strings.HasPrefix(id, prefix) {
			buttons = append(buttons, ch)
			continue
		}
		ch.Release()
	}
	return buttons, nil
}

// invokePattern is strategy 1: drive the control through its accessibility
// capabilities. Highest fidelity — no synthetic input, no pointer movement.
func (c *Clicker) invokePattern(target platform.Element) strategyResult {
	if target == nil {
		return strategyResult{status: strategyNotApplicable}
	}
	for _, attempt := range []func() error{target.Invoke, target.Toggle, target.Select} {
		err := attempt()
		if err == nil {
			return strategyResult{status: strategySucceeded}
		}
		if !errors.Is(err, platform.ErrPatternUnsupported) {
			return strategyResult{status: strategyFailed, err: err}
		}
	}
	return strategyResult{status: strategyNotApplicable}
}

// postMessage is strategy 2: resolve the OS window beneath the point and
// post a button-down/button-up pair directly to it. The grid may render
// through a nested child window distinct from the top-level frame, so the
// point is re-resolved against that child.
func (c *Clicker) postMessage(x, y int) strategyResult {
	h, ok := c.messenger.WindowAtPoint(x, y)
	if !ok {
		return strategyResult{status: strategyFailed, err: errors.New("no window at point")}
	}

	// WindowFromPoint can land on the top-level frame; walk up to the root
	// and back down to the known grid-host child when one exists.
	root := c.messenger.RootWindow(h)
	if h == root {
		if child, ok := c.messenger.FindChildByClass(root, nestedHostClass); ok {
			h = child
		}
	}

	cx, cy, err := c.messenger.ScreenToClient(h, x, y)
	if err != nil {
		return strategyResult{status: strategyFailed, err: err}
	}

	// Second-order reliable-zone check: the same principle as the
	// row-level limit, recomputed against the nested window's own
	// viewport. Points in its lower quarter are not trusted.
	if cb, err := c.messenger.ClientBounds(h); err == nil && cb.Height > 0 {
		if cy > int(float64(cb.Height)*nestedReliableFraction) {
			return strategyResult{status: strategyNotApplicable}
		}
	}

	if err := c.messenger.PostClick(h, cx, cy); err != nil {
		return strategyResult{status: strategyFailed, err: err}
	}
	return strategyResult{status: strategySucceeded}
}

// simulateInput is strategy 3: move the real cursor, press the real button,
// put the cursor back. The only strategy that visibly moves the pointer.
// Treated as always succeeding — there is nothing left to fall back to.
func (c *Clicker) simulateInput(x, y int) {
	origX, origY, posErr := c.inputter.CursorPos()

	if err := c.inputter.MoveCursor(x, y); err != nil {
		c.log.Printf("click: cursor move failed: %v", err)
	}
	c.sleep(cursorSettleDelay)
	if err := c.inputter.ClickButton(); err != nil {
		c.log.Printf("click: simulated button failed: %v", err)
	}

	if posErr == nil {
		if err := c.inputter.MoveCursor(origX, origY); err != nil {
			c.log.Printf("click: cursor restore failed: %v", err)
		}
	}
}
