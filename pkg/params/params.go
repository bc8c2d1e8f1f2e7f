// Package params defines the board parameter set that drives every hull
// generator, and decodes it from a flat name/value mapping.
package params

import (
	"fmt"
	"math"
	"strings"
)

// RailStyle selects the easing used below and above the rail bias split.
type RailStyle int

const (
	RailSoftSoft RailStyle = iota // soft lower, soft upper
	RailSoftHard                  // soft lower, hard upper
	RailHardHard                  // hard lower, hard upper
	RailHardSoft                  // hard lower, soft upper
)

func (s RailStyle) String() string {
	switch s {
	case RailSoftSoft:
		return "soft/soft"
	case RailSoftHard:
		return "soft/hard"
	case RailHardHard:
		return "hard/hard"
	case RailHardSoft:
		return "hard/soft"
	default:
		return fmt.Sprintf("RailStyle(%d)", int(s))
	}
}

// ParseRailStyle resolves a style name such as "soft/hard" or
// "hard-soft", ignoring case and separators.
func ParseRailStyle(name string) (RailStyle, error) {
	for s := RailSoftSoft; s <= RailHardSoft; s++ {
		if enumName(s.String()) == enumName(name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown rail style %q", name)
}

// PlanShape selects the plan-view outline preset.
type PlanShape int

const (
	PlanParabolic PlanShape = iota
	PlanStepTail
	PlanFishTail
)

func (p PlanShape) String() string {
	switch p {
	case PlanParabolic:
		return "Parabolic"
	case PlanStepTail:
		return "StepTail"
	case PlanFishTail:
		return "FishTail"
	default:
		return fmt.Sprintf("PlanShape(%d)", int(p))
	}
}

// ParsePlanShape resolves a preset name such as "FishTail" or
// "step-tail", ignoring case and separators.
func ParsePlanShape(name string) (PlanShape, error) {
	for p := PlanParabolic; p <= PlanFishTail; p++ {
		if enumName(p.String()) == enumName(name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown plan shape %q", name)
}

var enumReplacer = strings.NewReplacer("/", "", "-", "", "_", "", " ", "")

func enumName(s string) string {
	return strings.ToLower(enumReplacer.Replace(s))
}

// Board holds every scalar input of a generation run. It is built once
// by Decode and passed by value afterwards.
type Board struct {
	Length             float64
	MaxWidth           float64
	MaxThickness       float64
	MinSegmentLength   float64
	RailStyle          RailStyle
	RailMidBias        float64
	DeckPreset         int // unknown presets mean no offset
	BottomPreset       int
	ShellThickness     float64
	CenterRibThickness float64
	RockerNose         float64
	RockerTail         float64
	RockerMidOffset    float64
	UseStagedRocker    bool
	PlanShape          PlanShape
	RibSpacing         float64
	RibThickness       float64 // 0 leaves ribs as profiles only
}

// RailHeight is the full rail height; the rail spans the board thickness.
func (b Board) RailHeight() float64 {
	return b.MaxThickness
}

// Stations returns the reference outline sample count,
// ceil(length/minSegmentLength)+1.
func (b Board) Stations() int {
	return int(math.Ceil(b.Length/b.MinSegmentLength)) + 1
}

// Canonical parameter names of the flat configuration surface.
const (
	KeyBoardLength        = "BoardLength"
	KeyMaxWidth           = "MaxWidth"
	KeyMaxThickness       = "MaxThickness"
	KeyMinSegmentLength   = "MinSegmentLength"
	KeyRailStyle          = "RailStyle"
	KeyRailMidBias        = "RailMidBias"
	KeyDeckPreset         = "DeckRockerPreset"
	KeyBottomPreset       = "BotRockerPreset"
	KeyShellThickness     = "ShellThickness"
	KeyCenterRibThickness = "CenterRibThickness"
	KeyRockerNose         = "RockerNose"
	KeyRockerTail         = "RockerTail"
	KeyRockerMidOffset    = "RockerMidOffset"
	KeyUseStagedRocker    = "UseStagedRocker"
	KeyBoardPreset        = "BoardPreset"
	KeyRibSpacing         = "RibSpacing"
	KeyRibThickness       = "RibThickness"
)

// keys lists every known name in reporting order.
var keys = []string{
	KeyBoardLength, KeyMaxWidth, KeyMaxThickness, KeyMinSegmentLength,
	KeyRailStyle, KeyRailMidBias, KeyDeckPreset, KeyBottomPreset,
	KeyShellThickness, KeyCenterRibThickness, KeyRockerNose, KeyRockerTail,
	KeyRockerMidOffset, KeyUseStagedRocker, KeyBoardPreset, KeyRibSpacing,
	KeyRibThickness,
}

// aliases maps short spellings used in parameter files to canonical keys.
var aliases = map[string]string{
	"length":       KeyBoardLength,
	"width":        KeyMaxWidth,
	"thickness":    KeyMaxThickness,
	"segment":      KeyMinSegmentLength,
	"midbias":      KeyRailMidBias,
	"deckpreset":   KeyDeckPreset,
	"bottompreset": KeyBottomPreset,
	"botpreset":    KeyBottomPreset,
	"shell":        KeyShellThickness,
	"ribthick":     KeyRibThickness,
	"stagedrocker": KeyUseStagedRocker,
	"planshape":    KeyBoardPreset,
}

var folded = func() map[string]string {
	m := make(map[string]string, len(keys)+len(aliases))
	for _, k := range keys {
		m[fold(k)] = k
	}
	for a, k := range aliases {
		m[a] = k
	}
	return m
}()

func fold(name string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return strings.ToLower(r.Replace(name))
}

// Canonical resolves a parameter name written in any case, with or
// without hyphens or underscores, to its canonical key.
func Canonical(name string) (string, bool) {
	k, ok := folded[fold(name)]
	return k, ok
}

// Keys returns the canonical parameter names.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}
