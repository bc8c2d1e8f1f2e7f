// Package profile holds the pure functions shared by every hull
// generator: easing curves, the rocker, plan-shape presets, the rail
// bias blend and the deck/bottom contour offsets. Nothing here allocates
// geometry except Rocker.Sample.
package profile

import "math"

// Easing maps t in [0,1] onto [0,1] with Easing(0) = 0 and Easing(1) = 1.
type Easing func(t float64) float64

// Soft eases in along a quarter sine wave.
func Soft(t float64) float64 {
	return math.Sin(t * math.Pi / 2)
}

// Hard rises steeply from 0 as the square root of t. Inputs below zero
// (rounding at the bias split) evaluate to 0.
func Hard(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Sqrt(t)
}
