// Package track derives a speed scalar and splat radius from raw pointer
// movement. It is pure state-in, state-out so the numeric behaviour is
// testable without a window or GL context.
package track

import (
	"math"

	"github.com/softglow/splash/internal/models"
)

const (
	// SpeedScale maps normalized pointer deltas to speed. Tuned so
	// ordinary mouse movement lands well inside the cap.
	SpeedScale = 50.0

	// SpeedCap bounds speed regardless of how far the pointer jumped.
	SpeedCap = 0.05

	// BaseRadius is the splat radius of a pointer at rest.
	BaseRadius = 0.05
)

// Params overrides the tracking constants. The zero value selects the
// defaults above.
type Params struct {
	SpeedScale float64
	SpeedCap   float64
	BaseRadius float64
}

func (p Params) withDefaults() Params {
	if p.SpeedScale == 0 {
		p.SpeedScale = SpeedScale
	}
	if p.SpeedCap == 0 {
		p.SpeedCap = SpeedCap
	}
	if p.BaseRadius == 0 {
		p.BaseRadius = BaseRadius
	}
	return p
}

// Sample is the derived result of one pointer-move event.
type Sample struct {
	X, Y   float64
	Speed  float64
	Radius float64
}

// Advance consumes one raw pointer-move event. rawX/rawY are device
// coordinates with a top-left origin; width/height are the logical surface
// dimensions. The returned state has the event position as current and the
// old position shifted back one step.
func Advance(s models.PointerState, rawX, rawY, width, height float64) (models.PointerState, Sample) {
	return AdvanceParams(s, rawX, rawY, width, height, Params{})
}

// AdvanceParams is Advance with explicit tuning parameters.
func AdvanceParams(s models.PointerState, rawX, rawY, width, height float64, p Params) (models.PointerState, Sample) {
	p = p.withDefaults()

	if width <= 0 || height <= 0 {
		// Detached surface; hold position, report a resting sample.
		return s, Sample{X: s.X, Y: s.Y, Radius: p.BaseRadius}
	}

	next := models.PointerState{
		PrevX: s.X,
		PrevY: s.Y,
		X:     rawX / width,
		Y:     1 - rawY/height,
	}

	dx := next.X - next.PrevX
	dy := next.Y - next.PrevY
	speed := math.Sqrt(dx*dx+dy*dy) * p.SpeedScale
	if speed > p.SpeedCap {
		speed = p.SpeedCap
	}

	return next, Sample{
		X:      next.X,
		Y:      next.Y,
		Speed:  speed,
		Radius: p.BaseRadius + speed,
	}
}
