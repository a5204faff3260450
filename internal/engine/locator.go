package engine

import (
	"strings"

	"autoskip/internal/model"
	"autoskip/internal/platform"
)

// Locate scans visible top-level windows for the one hosting the worklist:
// the first whose title contains all of the given substrings,
// case-insensitively. The second return is false when the target application
// is not running — the caller skips the poll cycle, it is not an error.
func Locate(finder platform.WindowFinder, titleTerms []string) (model.Window, bool) {
	if len(titleTerms) == 0 {
		return model.Window{}, false
	}
	windows, err := finder.ListWindows()
	if err != nil {
		return model.Window{}, false
	}
	for _, w := range windows {
		if titleContainsAll(w.Title, titleTerms) {
			return w, true
		}
	}
	return model.Window{}, false
}

func titleContainsAll(title string, terms []string) bool {
	lower := strings.ToLower(title)
	for _, term := range terms {
		if !strings.Contains(lower, strings.ToLower(term)) {
			return false
		}
	}
	return true
}
