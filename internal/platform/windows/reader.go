//go:build windows

package winplatform

import (
	"fmt"

	"autoskip/internal/model"
	"autoskip/internal/platform"
)

// Reader implements platform.TreeReader over the UI Automation client.
type Reader struct {
	auto *uiAutomation
}

// NewReader initializes the UI Automation client.
func NewReader() (*Reader, error) {
	auto, err := newUIAutomation()
	if err != nil {
		return nil, err
	}
	return &Reader{auto: auto}, nil
}

// RootElement returns the accessibility root for a top-level window.
func (r *Reader) RootElement(handle uintptr) (platform.Element, error) {
	raw, err := r.auto.elementFromHandle(handle)
	if err != nil {
		return nil, err
	}
	return &uiaElement{auto: r.auto, raw: raw}, nil
}

// uiaElement adapts an IUIAutomationElement to platform.Element.
type uiaElement struct {
	auto *uiAutomation
	raw  *automationElement
}

func (e *uiaElement) AutomationID() (string, error) {
	return e.raw.currentAutomationID()
}

func (e *uiaElement) Name() (string, error) {
	return e.raw.currentName()
}

func (e *uiaElement) Bounds() (model.Bounds, error) {
	r, err := e.raw.currentBoundingRectangle()
	if err != nil {
		return model.Bounds{}, err
	}
	return model.Bounds{
		X:      int(r.Left),
		Y:      int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}, nil
}

func (e *uiaElement) Children() ([]platform.Element, error) {
	return e.find(treeScopeChildren, 0)
}

func (e *uiaElement) Descendants(max int) ([]platform.Element, error) {
	return e.find(treeScopeDescendants, max)
}

func (e *uiaElement) find(scope, max int) ([]platform.Element, error) {
	cond, err := e.auto.trueCondition()
	if err != nil {
		return nil, err
	}
	defer cond.Release()

	arr, err := e.raw.findAll(scope, cond)
	if err != nil {
		return nil, err
	}
	if arr == nil {
		return nil, nil
	}
	defer arr.release()

	n, err := arr.length()
	if err != nil {
		return nil, err
	}
	if max > 0 && n > max {
		n = max
	}

	out := make([]platform.Element, 0, n)
	for i := 0; i < n; i++ {
		raw, err := arr.element(i)
		if err != nil {
			// The tree mutated under us; release what we have and let
			// the caller retry next poll.
			for _, el := range out {
				el.Release()
			}
			return nil, fmt.Errorf("uia: element %d of %d vanished: %w", i, n, err)
		}
		out = append(out, &uiaElement{auto: e.auto, raw: raw})
	}
	return out, nil
}

// pattern invocations: nil pattern means the element does not expose that
// capability, which maps to platform.ErrPatternUnsupported.

func (e *uiaElement) Invoke() error { return e.actPattern(patternInvoke) }
func (e *uiaElement) Toggle() error { return e.actPattern(patternToggle) }
func (e *uiaElement) Select() error { return e.actPattern(patternSelectionItem) }

func (e *uiaElement) actPattern(patternID int) error {
	p, err := e.raw.currentPattern(patternID)
	if err != nil {
		return err
	}
	if p == nil {
		return platform.ErrPatternUnsupported
	}
	defer p.release()
	return p.act()
}

func (e *uiaElement) Release() {
	if e.raw != nil {
		e.raw.release()
		e.raw = nil
	}
}
