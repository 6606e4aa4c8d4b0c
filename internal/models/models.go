package models

// RGB is a color with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Hue is an HSL hue angle in degrees, kept in [0, 360).
type Hue float64

// PointerState holds the current and previous pointer position in
// normalized viewport coordinates (0..1, y measured bottom-to-top).
type PointerState struct {
	X, Y         float64
	PrevX, PrevY float64
}

// Splat is a single glow draw request. It is consumed by one draw call
// and discarded; nothing retains it.
type Splat struct {
	X, Y   float64
	Radius float64
	Color  RGB
}
