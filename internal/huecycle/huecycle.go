// Package huecycle produces the continuously rotating splat color. The hue
// advances by a fixed step per pointer-move event, so color is a function of
// interaction count, not of elapsed time.
package huecycle

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/softglow/splash/internal/models"
)

const (
	// Step is the hue advance per pointer-move event, in degrees.
	Step = 2.0

	Saturation = 1.0
	Lightness  = 0.5
)

// Cycle binds the tuning of the color sweep. The zero value uses the
// package defaults.
type Cycle struct {
	Step       float64
	Saturation float64
	Lightness  float64
}

func (c Cycle) withDefaults() Cycle {
	if c.Step == 0 {
		c.Step = Step
	}
	if c.Saturation == 0 {
		c.Saturation = Saturation
	}
	if c.Lightness == 0 {
		c.Lightness = Lightness
	}
	return c
}

// Advance rotates the hue by one step, wrapping at 360.
func (c Cycle) Advance(h models.Hue) models.Hue {
	c = c.withDefaults()
	h += models.Hue(c.Step)
	for h >= 360 {
		h -= 360
	}
	return h
}

// Color converts the hue to RGB at the cycle's saturation and lightness.
func (c Cycle) Color(h models.Hue) models.RGB {
	c = c.withDefaults()
	col := colorful.Hsl(float64(h), c.Saturation, c.Lightness)
	return models.RGB{R: col.R, G: col.G, B: col.B}
}

// Advance is the default-cycle equivalent of Cycle.Advance.
func Advance(h models.Hue) models.Hue {
	return Cycle{}.Advance(h)
}

// Color is the default-cycle equivalent of Cycle.Color.
func Color(h models.Hue) models.RGB {
	return Cycle{}.Color(h)
}
