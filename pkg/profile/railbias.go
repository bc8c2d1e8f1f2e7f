package profile

import (
	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/params"
)

// RailBias maps normalized rail height onto the fraction of half-width
// reached at that height. It blends a lower easing below the bias split
// and an upper easing above it, peaking at 1 on the split.
type RailBias struct {
	mid          float64
	lower, upper Easing
}

// NewRailBias returns the blend for style split at midBias. midBias
// must lie strictly inside (0, 1).
func NewRailBias(style params.RailStyle, midBias float64) (RailBias, error) {
	if !(midBias > 0 && midBias < 1) {
		return RailBias{}, fault.Range(params.KeyRailMidBias, "must lie strictly between 0 and 1, got %g", midBias)
	}
	r := RailBias{mid: midBias}
	switch style {
	case params.RailSoftSoft:
		r.lower, r.upper = Soft, Soft
	case params.RailSoftHard:
		r.lower, r.upper = Soft, Hard
	case params.RailHardHard:
		r.lower, r.upper = Hard, Hard
	case params.RailHardSoft:
		r.lower, r.upper = Hard, Soft
	default:
		return RailBias{}, fault.Range(params.KeyRailStyle, "unknown rail style %d", int(style))
	}
	return r, nil
}

// WidthFraction evaluates the blend at normalized height t.
func (r RailBias) WidthFraction(t float64) float64 {
	if t < r.mid {
		return r.lower(t / r.mid)
	}
	return r.upper(1 - (t-r.mid)/(1-r.mid))
}
