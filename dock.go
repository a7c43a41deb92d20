package dock

import (
	"math"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. The engine never
// interprets color values; item colors come from the embedding application's
// theme and are passed through to snapshots unmodified.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the dock content's top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range.
// Used by the particle system (BurstConfig) for randomized spawn parameters.
type Range struct {
	Min, Max float64
}

// random returns a value in [Min, Max] drawn from the given source.
// The source is injected rather than global so spawns are reproducible.
func (r Range) random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// finiteOr returns v, or fallback when v is NaN or infinite. Degenerate
// distances or a malformed config must never poison the interpolation state,
// so every computed target passes through this before being stored.
func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
