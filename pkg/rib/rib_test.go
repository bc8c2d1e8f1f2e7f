package rib

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/surfhull/pkg/params"
	"github.com/chazu/surfhull/pkg/profile"
)

func testBoard() params.Board {
	return params.Board{
		Length:             1800,
		MaxWidth:           480,
		MaxThickness:       60,
		MinSegmentLength:   100,
		RailMidBias:        0.4,
		ShellThickness:     3,
		CenterRibThickness: 20,
		RockerNose:         120,
		RockerTail:         60,
		RibSpacing:         200,
	}
}

func newGen(t *testing.T, b params.Board) *Generator {
	t.Helper()
	r, err := profile.NewRocker(b)
	require.NoError(t, err)
	g, err := NewGenerator(b, r)
	require.NoError(t, err)
	return g
}

func TestCount(t *testing.T) {
	tests := []struct {
		spacing float64
		want    int
	}{
		{200, 9},
		{180, 11}, // 10 rounds up to odd
		{1000, 3},
		{5000, 3},
	}
	for _, tt := range tests {
		b := testBoard()
		b.RibSpacing = tt.spacing
		if got := newGen(t, b).Count(); got != tt.want {
			t.Errorf("spacing %g: Count() = %d, want %d", tt.spacing, got, tt.want)
		}
	}
}

func TestTaper(t *testing.T) {
	g := newGen(t, testBoard())
	assert.InDelta(t, 0.5, g.Taper(0), 1e-12)
	assert.InDelta(t, 0.5, g.Taper(1800), 1e-12)
	assert.Equal(t, 1.0, g.Taper(600))
	assert.Equal(t, 1.0, g.Taper(900))
	assert.Equal(t, 1.0, g.Taper(1200))
	assert.InDelta(t, 0.5+0.5*0.25, g.Taper(300), 1e-12)
	assert.InDelta(t, 0.5+0.5*0.25, g.Taper(1500), 1e-12)
}

func TestTaperFlatZoneClamped(t *testing.T) {
	b := testBoard()
	b.RockerMidOffset = 700 // flat zone would end past the tail
	g := newGen(t, b)
	assert.Equal(t, 1.0, g.Taper(1800))
	assert.Less(t, g.Taper(0), 1.0)
}

func TestNeverBelowTenPercent(t *testing.T) {
	for _, shape := range []params.PlanShape{params.PlanParabolic, params.PlanStepTail, params.PlanFishTail} {
		b := testBoard()
		b.PlanShape = shape
		b.RibSpacing = 20
		g := newGen(t, b)
		set, err := g.Stations()
		require.NoError(t, err)
		assert.Equal(t, g.Count(), len(set.Ribs)+len(set.Skipped), "%v", shape)
		for _, r := range set.Ribs {
			assert.GreaterOrEqual(t, r.Width, 0.1*b.MaxWidth, "%v rib %d", shape, r.Index)
		}
	}
}

func TestStationsSkipTips(t *testing.T) {
	g := newGen(t, testBoard())
	set, err := g.Stations()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 8}, set.Skipped)
	require.Len(t, set.Ribs, 7)
	for i, r := range set.Ribs {
		assert.Equal(t, i+1, r.Index)
		assert.InDelta(t, float64(i+1)*225, r.Z, 1e-9)
	}
}

func TestProfileShape(t *testing.T) {
	b := testBoard()
	g := newGen(t, b)
	r, ok, err := g.Generate(900)
	require.NoError(t, err)
	require.True(t, ok)

	assert.InDelta(t, 960, r.Width, 1e-9)
	assert.InDelta(t, 0, r.Elevation, 1e-9)
	require.Len(t, r.Points, 2*(divisions+1))

	n := len(r.Points)
	for i := 0; i < n/2; i++ {
		p, q := r.Points[i], r.Points[n-1-i]
		assert.Equal(t, -p.X, q.X, "point %d", i)
		assert.Equal(t, p.Y, q.Y, "point %d", i)
	}

	// Widest point sits on the bias split, inset by 0.95 of the shell.
	splitFrac := 0.4
	split := int(splitFrac * divisions)
	var widest float64
	for _, p := range r.Points {
		widest = math.Max(widest, p.X)
	}
	assert.LessOrEqual(t, widest, 480-0.95*3+1e-9)
	assert.Greater(t, r.Points[split].X, 400.0)

	// Bottom center at -h*midBias, top center at h*(1-midBias).
	assert.InDelta(t, -24, r.Points[0].Y, 1e-9)
	assert.InDelta(t, 36, r.Points[divisions].Y, 1e-9)
	assert.Equal(t, 0.0, r.Points[0].X)
}

func TestRockerLift(t *testing.T) {
	b := testBoard()
	g := newGen(t, b)
	r, ok, err := g.Generate(225)
	require.NoError(t, err)
	require.True(t, ok)
	rocker, _ := profile.NewRocker(b)
	assert.InDelta(t, rocker.Elevation(225), r.Elevation, 1e-12)
	assert.InDelta(t, -24+r.Elevation, r.Points[0].Y, 1e-9)
}

func TestGenerateSkip(t *testing.T) {
	g := newGen(t, testBoard())
	_, ok, err := g.Generate(0)
	require.NoError(t, err)
	assert.False(t, ok)
}
