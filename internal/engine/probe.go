package engine

import "autoskip/internal/platform"

// BrightnessThreshold separates the skip control's two states: it renders
// at roughly 72 when inactive and roughly 125 when already skipped.
// Calibrate with `autoskip probe` if the application restyles.
const BrightnessThreshold = 100.0

// probeOffset is the corner-sample distance from the target point.
const probeOffset = 3

// Probe decides whether the skip toggle already shows the skipped state, so
// the engine never clicks it a second time and toggles the skip back off.
type Probe struct {
	sampler platform.PixelSampler
}

// NewProbe builds an idempotence probe over the given pixel sampler.
func NewProbe(sampler platform.PixelSampler) *Probe {
	return &Probe{sampler: sampler}
}

// AlreadyActive samples five screen pixels around (x, y) — the point itself
// and four diagonal corners — and averages their perceptual brightness.
// It returns true when the average exceeds the calibrated threshold.
//
// When no sample can be read it returns false: clicking an already-active
// toggle is recoverable, never skipping at all is not.
func (p *Probe) AlreadyActive(x, y int) bool {
	avg, valid := p.Average(x, y)
	return valid > 0 && avg > BrightnessThreshold
}

// Average returns the mean brightness over the five sample points and the
// number of points that could actually be read.
func (p *Probe) Average(x, y int) (avg float64, valid int) {
	points := [5][2]int{
		{x, y},
		{x - probeOffset, y - probeOffset},
		{x + probeOffset, y - probeOffset},
		{x - probeOffset, y + probeOffset},
		{x + probeOffset, y + probeOffset},
	}

	var sum float64
	for _, pt := range points {
		r, g, b, ok := p.sampler.SamplePixel(pt[0], pt[1])
		if !ok {
			continue
		}
		sum += brightness(r, g, b)
		valid++
	}
	if valid == 0 {
		return 0, 0
	}
	return sum / float64(valid), valid
}

// brightness is the perceptual luma of an RGB pixel.
func brightness(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
