package engine

import "autoskip/internal/platform"

// FocusGuard records the OS foreground window before a batch of clicks and
// puts it back afterward, so the automation never leaves the user staring at
// the worklist they were not using.
type FocusGuard struct {
	fm    platform.FocusManager
	saved uintptr
	valid bool
}

// NewFocusGuard builds a guard over the given focus manager.
func NewFocusGuard(fm platform.FocusManager) *FocusGuard {
	return &FocusGuard{fm: fm}
}

// Save records the current foreground window.
func (g *FocusGuard) Save() {
	g.saved, g.valid = g.fm.ForegroundWindow()
}

// Restore re-activates the window recorded by Save. Callers invoke it only
// when at least one click actually fired, avoiding focus churn on idle polls.
func (g *FocusGuard) Restore() {
	if !g.valid {
		return
	}
	_ = g.fm.SetForegroundWindow(g.saved)
	g.valid = false
}
