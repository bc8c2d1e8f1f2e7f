package profile

import (
	"math"

	"github.com/chazu/surfhull/pkg/params"
)

// Deck and bottom contour presets. Any other value means no offset.
const (
	PresetNone = 0

	DeckDome    = 1 // (1-n^2)*h/2
	DeckDish    = 2 // -(1-n^2)*h/4
	DeckStepped = 3 // -h/4 outboard of 1-midBias

	BottomRound   = 1 // (1-n^2)*h/4
	BottomVee     = 2 // |n-0.5|*h/2
	BottomWave    = 3 // sin(2*pi*n)*h/12
	BottomChannel = 4 // -h/5 for 0.3 <= n <= 0.7
	BottomConcave = 5 // -sin(pi*n)*h/3
)

// Contour computes the vertical offset applied to a section point from
// its normalized lateral position n = x/halfWidth.
type Contour struct {
	DeckPreset   int
	BottomPreset int
	Height       float64
	MidBias      float64
}

// NewContour returns the contour selected by b.
func NewContour(b params.Board) Contour {
	return Contour{
		DeckPreset:   b.DeckPreset,
		BottomPreset: b.BottomPreset,
		Height:       b.RailHeight(),
		MidBias:      b.RailMidBias,
	}
}

// WithoutOffsets returns a copy of c with both presets set to none.
func (c Contour) WithoutOffsets() Contour {
	c.DeckPreset = PresetNone
	c.BottomPreset = PresetNone
	return c
}

// Offset dispatches to the deck preset above half height and the bottom
// preset at or below it.
func (c Contour) Offset(yLocal, normX float64) float64 {
	if yLocal > c.Height/2 {
		return c.Deck(normX)
	}
	return c.Bottom(normX)
}

// Deck returns the deck offset at n.
func (c Contour) Deck(n float64) float64 {
	h := c.Height
	switch c.DeckPreset {
	case DeckDome:
		return (1 - n*n) * h / 2
	case DeckDish:
		return -(1 - n*n) * h / 4
	case DeckStepped:
		if n > 1-c.MidBias {
			return -h / 4
		}
	}
	return 0
}

// Bottom returns the bottom offset at n.
func (c Contour) Bottom(n float64) float64 {
	h := c.Height
	switch c.BottomPreset {
	case BottomRound:
		return (1 - n*n) * h / 4
	case BottomVee:
		return math.Abs(n-0.5) * h / 2
	case BottomWave:
		return math.Sin(2*math.Pi*n) * h / 12
	case BottomChannel:
		if n >= 0.3 && n <= 0.7 {
			return -h / 5
		}
	case BottomConcave:
		return -math.Sin(math.Pi*n) * h / 3
	}
	return 0
}
