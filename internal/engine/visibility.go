package engine

import "autoskip/internal/model"

// Geometry thresholds below which a row is considered off-screen, collapsed
// during a render transition, or not yet laid out.
const (
	minActionableWidth  = 50
	minActionableHeight = 10
)

// Actionable reports whether a row's bounding rectangle has plausible,
// non-degenerate on-screen geometry.
func Actionable(b model.Bounds) bool {
	return b.X > 0 && b.Y > 0 && b.Width > minActionableWidth && b.Height > minActionableHeight
}
