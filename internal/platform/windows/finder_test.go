//go:build windows

package winplatform

import "testing"

// The runtime's callback table holds roughly 2000 entries and is never
// freed, so enumeration must reuse one registered callback across calls.
// Looping well past that bound would panic if registration were per-call.
func TestListWindows_SurvivesThousandsOfCalls(t *testing.T) {
	f := NewFinder()
	for i := 0; i < 4000; i++ {
		if _, err := f.ListWindows(); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

func TestListWindows_IndependentResults(t *testing.T) {
	f := NewFinder()
	first, err := f.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	second, err := f.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	// Consecutive calls on a quiet desktop see the same windows; the
	// collector must not leak state between calls.
	if len(second) > 2*len(first)+2 {
		t.Errorf("second enumeration returned %d windows, first %d", len(second), len(first))
	}
}
