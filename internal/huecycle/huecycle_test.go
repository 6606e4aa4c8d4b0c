package huecycle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softglow/splash/internal/models"
)

func TestHueIsEventCountTimesStep(t *testing.T) {
	var h models.Hue
	for n := 1; n <= 500; n++ {
		h = Advance(h)
		want := math.Mod(float64(n)*Step, 360)
		assert.InDelta(t, want, float64(h), 1e-9, "after %d events", n)
	}
}

func TestHueWraps(t *testing.T) {
	h := models.Hue(359)
	h = Advance(h)
	assert.InDelta(t, 1.0, float64(h), 1e-9)
	assert.Less(t, float64(h), 360.0)
}

func TestColorIsDeterministic(t *testing.T) {
	h := models.Hue(137)
	assert.Equal(t, Color(h), Color(h))
}

func TestPrimaryColors(t *testing.T) {
	cases := []struct {
		hue  models.Hue
		want models.RGB
	}{
		{0, models.RGB{R: 1}},
		{120, models.RGB{G: 1}},
		{240, models.RGB{B: 1}},
		{60, models.RGB{R: 1, G: 1}},
	}
	for _, tc := range cases {
		got := Color(tc.hue)
		assert.InDelta(t, tc.want.R, got.R, 1e-9, "hue %v red", tc.hue)
		assert.InDelta(t, tc.want.G, got.G, 1e-9, "hue %v green", tc.hue)
		assert.InDelta(t, tc.want.B, got.B, 1e-9, "hue %v blue", tc.hue)
	}
}

func TestCustomStep(t *testing.T) {
	c := Cycle{Step: 10}
	h := models.Hue(355)
	h = c.Advance(h)
	assert.InDelta(t, 5.0, float64(h), 1e-9)
}
