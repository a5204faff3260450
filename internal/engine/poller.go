package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"autoskip/internal/logging"
	"autoskip/internal/model"
	"autoskip/internal/platform"
	"autoskip/internal/rules"
)

// interClickDelay lets the target UI register one skip before the next.
const interClickDelay = 150 * time.Millisecond

// Options configures a Poller.
type Options struct {
	Interval     time.Duration
	MaxRows      int
	TitleTerms   []string
	RowPrefix    string
	HeaderPrefix string
	ButtonPrefix string
	Notify       bool
	Rules        []rules.SkipRule
}

// Poller is the control loop: on each tick it locates the worklist window,
// extracts and matches rows, clicks the matches, and restores focus.
//
// Pause state and the skip counter are explicit fields here, not package
// globals; the counter is single-writer (the tick) and read concurrently by
// the operator surface.
type Poller struct {
	opts      Options
	finder    platform.WindowFinder
	extractor *Extractor
	clicker   *Clicker
	guard     *FocusGuard
	notifier  platform.Notifier
	log       *logging.Logger

	paused  atomic.Bool
	inTick  atomic.Bool
	skipped atomic.Int64

	sleep func(time.Duration)
}

// New wires a poller from a platform provider.
func New(provider *platform.Provider, opts Options, log *logging.Logger) *Poller {
	probe := NewProbe(provider.PixelSampler)
	return &Poller{
		opts:      opts,
		finder:    provider.WindowFinder,
		extractor: NewExtractor(provider.TreeReader, opts.RowPrefix, opts.HeaderPrefix, log),
		clicker:   NewClicker(provider.Messenger, provider.Inputter, probe, opts.ButtonPrefix, log),
		guard:     NewFocusGuard(provider.FocusManager),
		notifier:  provider.Notifier,
		log:       log,
		sleep:     time.Sleep,
	}
}

// Run ticks on the configured interval until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	p.log.Printf("poller started, interval %s, %d rules", p.opts.Interval, len(p.opts.Rules))
	for {
		select {
		case <-ctx.Done():
			p.log.Printf("poller stopped, %d rows skipped total", p.Skipped())
			return ctx.Err()
		case <-ticker.C:
			p.Tick()
		}
	}
}

// Pause suspends ticking until Resume. A tick already in flight completes.
func (p *Poller) Pause() { p.paused.Store(true) }

// Resume re-enables ticking.
func (p *Poller) Resume() { p.paused.Store(false) }

// Paused reports whether the poller is suspended.
func (p *Poller) Paused() bool { return p.paused.Load() }

// Skipped returns the running count of rows skipped since startup.
func (p *Poller) Skipped() int64 { return p.skipped.Load() }

// Tick runs one poll cycle. Ticks never overlap: if the previous tick is
// still in flight when the timer fires again, the new tick is dropped —
// overlapping clicks against the same UI are unsafe.
func (p *Poller) Tick() {
	if p.paused.Load() {
		return
	}
	if !p.inTick.CompareAndSwap(false, true) {
		p.log.Printf("tick skipped: previous tick still running")
		return
	}
	defer p.inTick.Store(false)

	id := uuid.NewString()[:8]
	defer func() {
		// Tick-fatal: anything not isolated below abandons this tick only;
		// the next scheduled tick proceeds normally.
		if r := recover(); r != nil {
			p.log.Printf("[%s] tick aborted: %v", id, r)
		}
	}()

	p.tick(id)
}

func (p *Poller) tick(id string) {
	win, ok := Locate(p.finder, p.opts.TitleTerms)
	if !ok {
		// Target application not running. Expected and frequent; stay quiet.
		return
	}

	rows := p.extractor.Extract(win, p.opts.MaxRows)
	if len(rows) == 0 {
		return
	}
	// Per-tick arena: every element reference extracted above dies with
	// this tick, whatever happens in between.
	defer func() {
		for i := range rows {
			rows[i].Release()
		}
	}()

	matches := Match(rows, p.opts.Rules)
	if len(matches) == 0 {
		return
	}

	var actionable []MatchResult
	for _, m := range matches {
		if Actionable(m.Row.Bounds) {
			actionable = append(actionable, m)
		}
	}
	if len(actionable) == 0 {
		return
	}

	p.guard.Save()
	clicked := 0
	for _, m := range actionable {
		outcome := p.clicker.Click(m.Row)
		switch outcome {
		case model.OutcomeClicked:
			clicked++
			p.skipped.Add(1)
			p.log.Printf("[%s] skipped %q (%s) via rule %q", id, m.Row.Procedure(), m.Row.Accession(), m.Rule.Name)
			p.sleep(interClickDelay)
		case model.OutcomeAlreadyActive:
			p.log.Printf("[%s] row %q already skipped", id, m.Row.Accession())
		case model.OutcomeUnreliable:
			p.log.Printf("[%s] row %q outside reliable zone, deferred", id, m.Row.Accession())
		case model.OutcomeFailed:
			p.log.Printf("[%s] all click strategies failed for %q", id, m.Row.Accession())
		}
	}
	if clicked > 0 {
		p.guard.Restore()
		if p.opts.Notify && p.notifier != nil {
			if err := p.notifier.Notify(fmt.Sprintf("skipped %d rows", clicked)); err != nil {
				p.log.Printf("[%s] notify: %v", id, err)
			}
		}
		p.log.Printf("[%s] tick done: %d clicked, %d total", id, clicked, p.Skipped())
	}
}
