package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/outline"
	"github.com/chazu/surfhull/pkg/params"
	"github.com/chazu/surfhull/pkg/profile"
	"github.com/chazu/surfhull/pkg/rail"
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

func setup(t *testing.T) (*profile.Rocker, *outline.Reference) {
	t.Helper()
	r, err := profile.NewRocker(testBoard())
	require.NoError(t, err)
	s, err := outline.NewSampler(testBoard(), r)
	require.NoError(t, err)
	return r, s.Build()
}

func TestPlanBounds(t *testing.T) {
	_, ref := setup(t)
	d := Plan(ref)
	require.Len(t, d.Layers, 2)
	assert.Equal(t, "outline", d.Layers[0].Name)
	assert.True(t, d.Layers[0].Closed)

	min, max, ok := d.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 0, min.X, 1e-9)
	assert.InDelta(t, 1800, max.X, 1e-9)
	assert.InDelta(t, -max.Y, min.Y, 1e-9, "outline is symmetric")
	assert.Greater(t, max.Y, 0.0)
}

func TestEmptyDrawing(t *testing.T) {
	_, _, ok := Drawing{}.Bounds()
	assert.False(t, ok)
	assert.Error(t, RenderPNG(&bytes.Buffer{}, Drawing{}, 200))

	svg := string(RenderSVG(Drawing{}))
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.NotContains(t, svg, "<path")
}

func TestRenderSVG(t *testing.T) {
	rocker, ref := setup(t)
	d := Plan(ref)
	d.Layers = append(d.Layers, Rocker(rocker.Sample(19)).Layers...)

	svg := string(RenderSVG(d, WithPrecision(2), WithStrokeWidth(2)))
	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	for _, id := range []string{"outline", "centerline", "rocker"} {
		assert.Contains(t, svg, `id="`+id+`"`)
	}
	assert.Contains(t, svg, `stroke-width="2"`)
	assert.Contains(t, svg, `d="M0,0`)
	assert.Equal(t, 1, strings.Count(svg, "Z\""), "only the outline is closed")
}

func TestSVGSkipsShortLayers(t *testing.T) {
	d := Drawing{Layers: []Layer{
		{Name: "dot", Points: []geom.Point2{geom.Pt(1, 1)}},
		{Name: "line", Points: []geom.Point2{geom.Pt(0, 0), geom.Pt(10, 0)}, Color: "#000"},
	}}
	svg := string(RenderSVG(d, WithMargin(0)))
	assert.NotContains(t, svg, `id="dot"`)
	assert.Contains(t, svg, `d="M0,0 L10,0"`)
}

func TestSectionAndShell(t *testing.T) {
	b := testBoard()
	_, ref := setup(t)
	g, err := rail.NewGenerator(b)
	require.NoError(t, err)
	secs, err := g.Stations(ref)
	require.NoError(t, err)

	nose := Section(secs[0])
	require.Len(t, nose.Layers, 2, "end stations carry a marker")
	mid := Section(secs[9])
	require.Len(t, mid.Layers, 1)
	min, max, ok := mid.Bounds()
	require.True(t, ok)
	assert.InDelta(t, -max.X, min.X, 1e-9)

	shells, err := rail.NewShellGenerator(g, b.ShellThickness).Stations(ref)
	require.NoError(t, err)
	sd := Shell(shells[9])
	require.Len(t, sd.Layers, 2)
	_, outerMax, _ := Drawing{Layers: sd.Layers[:1]}.Bounds()
	_, innerMax, _ := Drawing{Layers: sd.Layers[1:]}.Bounds()
	assert.Greater(t, outerMax.X, innerMax.X)
}

func TestRenderPNG(t *testing.T) {
	_, ref := setup(t)
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, Plan(ref), 400))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 400, bounds.Dx())
	assert.Greater(t, bounds.Dy(), 2*pngPadding)
	assert.Less(t, bounds.Dy(), 400)

	inked := false
	for y := bounds.Min.Y; y < bounds.Max.Y && !inked; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0xf000 || g < 0xf000 || b < 0xf000 {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked, "no stroke pixels drawn")

	assert.Error(t, RenderPNG(&buf, Plan(ref), 10))
}
