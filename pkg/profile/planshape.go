package profile

import (
	"math"

	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/params"
)

// PlanShape evaluates a plan-view outline preset at a normalized
// longitudinal position t = z/length. Results are not clamped; the
// fish tail bump may exceed 1.
type PlanShape struct {
	preset params.PlanShape
}

// NewPlanShape returns the evaluator for preset.
func NewPlanShape(preset params.PlanShape) (PlanShape, error) {
	if preset < params.PlanParabolic || preset > params.PlanFishTail {
		return PlanShape{}, fault.Range(params.KeyBoardPreset, "unknown plan shape %d", int(preset))
	}
	return PlanShape{preset: preset}, nil
}

// HalfWidthFraction returns the half-width at t as a fraction of the
// maximum width.
func (s PlanShape) HalfWidthFraction(t float64) float64 {
	switch s.preset {
	case params.PlanStepTail:
		u := 1 - t
		return (1 - u*u) * (1 - 0.3*math.Sin(5*math.Pi*u))
	case params.PlanFishTail:
		var bump float64
		if t < 0.7 {
			bump = 0.1 * math.Sin(4*math.Pi*(1-t))
		}
		d := t - 0.5
		return (1 - d*d) + bump
	default:
		d := (t - 0.5) * 2
		return 1 - d*d
	}
}

func (s PlanShape) String() string {
	return s.preset.String()
}
