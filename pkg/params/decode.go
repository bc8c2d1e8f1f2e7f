package params

import (
	"fmt"
	"math"
	"sort"

	"github.com/chazu/surfhull/pkg/fault"
)

// Map is the flat name/value configuration surface. Booleans are stored
// as 0 or 1. Keys are canonical names; use Set to normalize spellings.
type Map map[string]float64

// Set stores v under the canonical form of name. Unknown names are an
// error so that typos in parameter files are not silently ignored.
func (m Map) Set(name string, v float64) error {
	k, ok := Canonical(name)
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	m[k] = v
	return nil
}

// SetBool stores b as 0 or 1 under the canonical form of name.
func (m Map) SetBool(name string, b bool) error {
	v := 0.0
	if b {
		v = 1
	}
	return m.Set(name, v)
}

// Merge copies every entry of o into m, overriding existing values.
func (m Map) Merge(o Map) {
	for k, v := range o {
		m[k] = v
	}
}

// required lists the names that must be present before generation.
var required = []string{
	KeyBoardLength, KeyMaxWidth, KeyMaxThickness, KeyMinSegmentLength,
	KeyRailMidBias, KeyShellThickness, KeyCenterRibThickness,
	KeyRockerNose, KeyRockerTail, KeyRockerMidOffset, KeyRibSpacing,
}

// Decode builds a Board from m. All missing required names are reported
// together in one MissingParameter error. Range violations are checked
// afterwards and reported together.
func Decode(m Map) (Board, error) {
	var missing []string
	for _, k := range required {
		if _, ok := m[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Board{}, fault.Missing(missing...)
	}

	b := Board{
		Length:             m[KeyBoardLength],
		MaxWidth:           m[KeyMaxWidth],
		MaxThickness:       m[KeyMaxThickness],
		MinSegmentLength:   m[KeyMinSegmentLength],
		RailStyle:          RailStyle(int(m[KeyRailStyle])),
		RailMidBias:        m[KeyRailMidBias],
		DeckPreset:         int(m[KeyDeckPreset]),
		BottomPreset:       int(m[KeyBottomPreset]),
		ShellThickness:     m[KeyShellThickness],
		CenterRibThickness: m[KeyCenterRibThickness],
		RockerNose:         m[KeyRockerNose],
		RockerTail:         m[KeyRockerTail],
		RockerMidOffset:    m[KeyRockerMidOffset],
		UseStagedRocker:    m[KeyUseStagedRocker] != 0,
		PlanShape:          PlanShape(int(m[KeyBoardPreset])),
		RibSpacing:         m[KeyRibSpacing],
		RibThickness:       m[KeyRibThickness],
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate checks every range invariant of b and returns all violations
// joined. It is run by Decode; callers that build a Board literal should
// call it themselves.
func (b Board) Validate() error {
	var errs []*fault.Error
	positive := func(key string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fault.Range(key, "must be positive, got %g", v))
		}
	}
	nonNegative := func(key string, v float64) {
		if !(v >= 0) || math.IsInf(v, 0) {
			errs = append(errs, fault.Range(key, "must not be negative, got %g", v))
		}
	}

	finite := func(key string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fault.Range(key, "must be finite, got %g", v))
		}
	}

	positive(KeyBoardLength, b.Length)
	positive(KeyMaxWidth, b.MaxWidth)
	positive(KeyMaxThickness, b.MaxThickness)
	positive(KeyMinSegmentLength, b.MinSegmentLength)
	positive(KeyCenterRibThickness, b.CenterRibThickness)
	positive(KeyRibSpacing, b.RibSpacing)
	nonNegative(KeyShellThickness, b.ShellThickness)
	nonNegative(KeyRibThickness, b.RibThickness)
	finite(KeyRockerNose, b.RockerNose)
	finite(KeyRockerTail, b.RockerTail)
	finite(KeyRockerMidOffset, b.RockerMidOffset)

	if !(b.RailMidBias > 0 && b.RailMidBias < 1) {
		errs = append(errs, fault.Range(KeyRailMidBias, "must lie strictly between 0 and 1, got %g", b.RailMidBias))
	}
	if b.RailStyle < RailSoftSoft || b.RailStyle > RailHardSoft {
		errs = append(errs, fault.Range(KeyRailStyle, "unknown rail style %d", int(b.RailStyle)))
	}
	if b.PlanShape < PlanParabolic || b.PlanShape > PlanFishTail {
		errs = append(errs, fault.Range(KeyBoardPreset, "unknown plan shape %d", int(b.PlanShape)))
	}
	return fault.Join(errs)
}

// Unknown returns the names in raw that do not resolve to a parameter,
// sorted.
func Unknown(raw map[string]any) []string {
	var out []string
	for k := range raw {
		if _, ok := Canonical(k); !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
