package cage

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/outline"
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

func reference(t *testing.T, b params.Board) *outline.Reference {
	t.Helper()
	r, err := profile.NewRocker(b)
	if err != nil {
		t.Fatal(err)
	}
	s, err := outline.NewSampler(b, r)
	if err != nil {
		t.Fatal(err)
	}
	return s.Build()
}

func TestGenerateDefaults(t *testing.T) {
	b := testBoard()
	g, err := NewGenerator(b)
	if err != nil {
		t.Fatal(err)
	}
	ref := reference(t, b)
	lat, err := g.Generate(ref, 0, 0)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(lat.Curves) != DefaultHeightLevels+1 {
		t.Fatalf("got %d curves, want %d", len(lat.Curves), DefaultHeightLevels+1)
	}
	for d, c := range lat.Curves {
		if len(c) != ref.Len() {
			t.Errorf("curve %d has %d points, want %d", d, len(c), ref.Len())
		}
	}
	if lat.Stations() != ref.Len() {
		t.Errorf("Stations() = %d", lat.Stations())
	}
}

func TestRungsShareStation(t *testing.T) {
	b := testBoard()
	g, _ := NewGenerator(b)
	lat, err := g.Generate(reference(t, b), 25, 8)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < lat.Stations(); i++ {
		rung := lat.Rung(i)
		for d := 1; d < len(rung); d++ {
			if rung[d].Z != rung[0].Z {
				t.Fatalf("rung %d: level %d at z=%g, level 0 at z=%g", i, d, rung[d].Z, rung[0].Z)
			}
		}
	}
}

func TestVerticalRegistration(t *testing.T) {
	b := testBoard()
	g, _ := NewGenerator(b)
	ref := reference(t, b)
	lat, err := g.Generate(ref, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	// No half-height centring: the bottom curve sits at centerY - h*midBias.
	for i, p := range lat.Curves[0] {
		want := ref.At(i).Y - 60*0.4
		if math.Abs(p.Y-want) > 1e-9 {
			t.Errorf("station %d bottom y = %g, want %g", i, p.Y, want)
		}
		if p.X != 0 {
			t.Errorf("station %d bottom x = %g, want 0", i, p.X)
		}
	}
	// The level on the bias split reaches the full half-width.
	lat2, _ := g.Generate(ref, 0, 10) // level 4 of 10 is at 0.4
	split := lat2.Curves[4]
	if got, want := split[9].X, ref.At(9).X; math.Abs(got-want) > 1e-9 {
		t.Errorf("split level x = %g, want %g", got, want)
	}
}

func TestFlatIgnoresPresets(t *testing.T) {
	b := testBoard()
	b.DeckPreset = profile.DeckDome
	b.BottomPreset = profile.BottomConcave
	g, _ := NewGenerator(b)
	ref := reference(t, b)

	b2 := testBoard()
	plain, _ := NewGenerator(b2)

	flat, err := g.Flat().Generate(ref, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	want, err := plain.Generate(ref, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	for d := range want.Curves {
		for i := range want.Curves[d] {
			if flat.Curves[d][i] != want.Curves[d][i] {
				t.Fatalf("level %d station %d: %v != %v", d, i, flat.Curves[d][i], want.Curves[d][i])
			}
		}
	}

	shaped, _ := g.Generate(ref, 0, 0)
	if shaped.Curves[16][9] == flat.Curves[16][9] {
		t.Error("presets had no effect on the shaped lattice")
	}
}

func TestGenerateNotReady(t *testing.T) {
	g, _ := NewGenerator(testBoard())
	if _, err := g.Generate(nil, 0, 0); !errors.Is(err, fault.ErrReferenceNotReady) {
		t.Errorf("got %v", err)
	}
}
