// Package centerrib builds the center reinforcement rib: a narrow
// section cut from the rail profile at mid length, closed with arc
// joins on both sides and swept along the rocker.
package centerrib

import (
	"math"

	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/outline"
	"github.com/chazu/surfhull/pkg/params"
	"github.com/chazu/surfhull/pkg/profile"
	"github.com/chazu/surfhull/pkg/rail"
)

const (
	pathSamples = 51
	shrinkRatio = 0.05
	splineRatio = 0.0833
	stage       = "center-rib"
)

// Result is the finished section and its sweep path.
type Result struct {
	Path      geom.Curve // rocker centerline, nose to tail
	Station   outline.Station
	PlaneZ    float64
	Divisions int
	CutDepth  float64

	// Right half edges run outward from the centerline; the joins run
	// from the bottom edge end to the top edge end.
	Top, Bottom             []geom.Point2
	Join                    []geom.Point2
	MirrorTop, MirrorBottom []geom.Point2
	MirrorJoin              []geom.Point2
}

// Profile returns the section as one closed loop, starting at the top
// center and running clockwise.
func (r Result) Profile() []geom.Point2 {
	var loop []geom.Point2
	loop = append(loop, r.Top...)
	loop = append(loop, geom.Reverse(r.Join)...)
	loop = append(loop, geom.Reverse(r.Bottom)...)
	loop = append(loop, r.MirrorBottom...)
	loop = append(loop, r.MirrorJoin...)
	loop = append(loop, r.MirrorTop...)
	return geom.Dedupe(loop, 1e-9)
}

// Generator builds the center rib for one board.
type Generator struct {
	board  params.Board
	rocker *profile.Rocker
	rail   *rail.Generator
}

// NewGenerator returns a center rib generator following rocker.
func NewGenerator(b params.Board, rocker *profile.Rocker) (*Generator, error) {
	g, err := rail.NewGenerator(b)
	if err != nil {
		return nil, err
	}
	g.Divisions = Divisions(b)
	g.Shrink = shrinkRatio * b.ShellThickness
	return &Generator{board: b, rocker: rocker, rail: g}, nil
}

// Divisions returns the section step count derived from the board's
// width and thickness.
func Divisions(b params.Board) int {
	return int(math.Round(0.7 * b.MaxWidth * 10 * (1 + b.MaxThickness*10/100)))
}

// CutDepth returns the arc length kept on each edge.
func CutDepth(b params.Board) float64 {
	t := b.CenterRibThickness
	return t * (1 - 2*splineRatio*b.MaxThickness/t) / 2
}

// Generate builds the section at mid length and the sweep path.
func (g *Generator) Generate(ref *outline.Reference) (Result, error) {
	if ref.Len() == 0 {
		return Result{}, fault.NotReady(stage)
	}
	b := g.board
	if g.rail.Divisions <= 0 {
		return Result{}, fault.Degenerate(stage, fault.NoStation, "section divisions %d", g.rail.Divisions)
	}
	mid := b.Length / 2
	st, err := ref.Sample(mid)
	if err != nil {
		return Result{}, err
	}

	cut := CutDepth(b)
	n := g.rail.Divisions
	top := g.truncate(st.HalfWidth, cut, n, -1)
	bottom := g.truncate(st.HalfWidth, cut, 0, 1)
	if len(top) < 2 || len(bottom) < 2 {
		return Result{}, fault.Degenerate(stage, st.Index,
			"cut depth %.4g leaves %d top and %d bottom points", cut, len(top), len(bottom))
	}

	ribT := b.CenterRibThickness
	topEnd, botEnd := top[len(top)-1], bottom[len(bottom)-1]
	join := geom.ThreePointArc(botEnd, geom.Pt(ribT/2, (topEnd.Y+botEnd.Y)/2), topEnd)

	mirrorTop := geom.Mirror(geom.Reverse(top))
	mirrorBottom := geom.Mirror(bottom)
	mTop, mBot := mirrorTop[0], mirrorBottom[len(mirrorBottom)-1]
	mirrorJoin := geom.ThreePointArc(mBot, geom.Pt(-ribT/2, (mTop.Y+mBot.Y)/2), mTop)

	return Result{
		Path:         g.rocker.Sample(pathSamples),
		Station:      st,
		PlaneZ:       mid,
		Divisions:    n,
		CutDepth:     cut,
		Top:          top,
		Bottom:       bottom,
		Join:         join,
		MirrorTop:    mirrorTop,
		MirrorBottom: mirrorBottom,
		MirrorJoin:   mirrorJoin,
	}, nil
}

// truncate walks height steps from j in direction step and keeps points
// until the accumulated arc length passes cut.
func (g *Generator) truncate(halfWidth, cut float64, j, step int) []geom.Point2 {
	var (
		pts   []geom.Point2
		total float64
	)
	for ; j >= 0 && j <= g.rail.Divisions; j += step {
		p := g.rail.Point(halfWidth, j)
		if len(pts) > 0 {
			total += pts[len(pts)-1].Distance(p)
			if total > cut {
				break
			}
		}
		pts = append(pts, p)
	}
	return pts
}
