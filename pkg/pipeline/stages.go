package pipeline

import (
	"fmt"

	"github.com/chazu/surfhull/pkg/cage"
	"github.com/chazu/surfhull/pkg/centerrib"
	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/kernel"
	"github.com/chazu/surfhull/pkg/outline"
	"github.com/chazu/surfhull/pkg/profile"
	"github.com/chazu/surfhull/pkg/rail"
	"github.com/chazu/surfhull/pkg/rib"
)

func stages(opts Options) []stage {
	return []stage{
		{StageOutline, buildOutline, emitOutline},
		{StageRails, buildRails, emitRails},
		{StageShell, buildShell, emitShell},
		{StageCage, func(r *Result) error { return buildCage(r, opts.FlatCage) }, emitCage},
		{StageRibs, buildRibs, func(r *Result, k kernel.Kernel) error { return emitRibs(r, k, opts.Meshes) }},
		{StageCenterRib, buildCenterRib, func(r *Result, k kernel.Kernel) error { return emitCenterRib(r, k, opts.Meshes) }},
	}
}

// --- outline ---

func buildOutline(r *Result) error {
	rocker, err := profile.NewRocker(r.Board)
	if err != nil {
		return err
	}
	s, err := outline.NewSampler(r.Board, rocker)
	if err != nil {
		return err
	}
	r.Rocker = rocker
	r.Reference = s.Build()
	return nil
}

// emitOutline emits the reference half outline, its mirror and the
// rocker centerline.
func emitOutline(r *Result, k kernel.Kernel) error {
	half := r.Reference.Points()
	mirror := half.Clone()
	for i := range mirror {
		mirror[i].X = -mirror[i].X
	}
	for _, c := range []geom.Curve{half, mirror, r.Rocker.Sample(r.Board.Stations())} {
		if _, err := k.EmitCurve(c); err != nil {
			return err
		}
	}
	return nil
}

// --- rails ---

func buildRails(r *Result) error {
	g, err := rail.NewGenerator(r.Board)
	if err != nil {
		return err
	}
	secs, err := g.Stations(r.Reference)
	if err != nil {
		return err
	}
	r.Rails = secs
	return nil
}

// emitRails emits every closed section in its station plane. End
// stations also get a centerline line from the marker to the deck.
func emitRails(r *Result, k kernel.Kernel) error {
	for _, s := range r.Rails {
		z := s.Station.Z
		if _, err := k.EmitCurve(geom.Lift(s.Closed(), z)); err != nil {
			return fmt.Errorf("station %d: %w", s.Station.Index, err)
		}
		if s.Marker != nil && len(s.Ascending) > 0 {
			top := s.Ascending[len(s.Ascending)-1]
			line := geom.Curve{s.Marker.At(z), geom.Pt(0, top.Y).At(z)}
			if _, err := k.EmitCurve(line); err != nil {
				return fmt.Errorf("station %d marker: %w", s.Station.Index, err)
			}
		}
	}
	return nil
}

// --- shell ---

func buildShell(r *Result) error {
	g, err := rail.NewGenerator(r.Board)
	if err != nil {
		return err
	}
	shells, err := rail.NewShellGenerator(g, r.Board.ShellThickness).Stations(r.Reference)
	if err != nil {
		return err
	}
	walls := make([]rail.Wall, len(shells))
	for i, sh := range shells {
		w, err := sh.Wall()
		if err != nil {
			return err
		}
		walls[i] = w
	}
	r.Shells, r.Walls = shells, walls
	return nil
}

func emitShell(r *Result, k kernel.Kernel) error {
	for _, sh := range r.Shells {
		z := sh.Station.Z
		for _, c := range [][]geom.Point2{sh.Outer, sh.Inner} {
			if _, err := k.EmitCurve(geom.Lift(c, z)); err != nil {
				return fmt.Errorf("station %d: %w", sh.Station.Index, err)
			}
		}
	}
	return nil
}

// --- cage ---

func buildCage(r *Result, flat bool) error {
	g, err := cage.NewGenerator(r.Board)
	if err != nil {
		return err
	}
	if flat {
		g = g.Flat()
	}
	l, err := g.Generate(r.Reference, 0, 0)
	if err != nil {
		return err
	}
	r.Cage = l
	return nil
}

// emitCage emits the longitudinal curve of every height level and one
// rung per station.
func emitCage(r *Result, k kernel.Kernel) error {
	for _, c := range r.Cage.Curves {
		if _, err := k.EmitCurve(c); err != nil {
			return err
		}
	}
	for i := 0; i < r.Cage.Stations(); i++ {
		if _, err := k.EmitCurve(r.Cage.Rung(i)); err != nil {
			return fmt.Errorf("rung %d: %w", i, err)
		}
	}
	return nil
}

// --- ribs ---

func buildRibs(r *Result) error {
	g, err := rib.NewGenerator(r.Board, r.Rocker)
	if err != nil {
		return err
	}
	set, err := g.Stations()
	if err != nil {
		return err
	}
	r.Ribs = set
	return nil
}

// emitRibs emits each rib profile in its station plane and, when the
// board has a rib thickness, extrudes it symmetrically through the plane.
func emitRibs(r *Result, k kernel.Kernel, meshes bool) error {
	for _, rb := range r.Ribs.Ribs {
		plane := k.OffsetPlane(kernel.OriginPlane, rb.Z)
		p, err := k.EmitClosedProfile(plane, geom.Dedupe(rb.Points, 1e-9))
		if err != nil {
			return fmt.Errorf("rib %d: %w", rb.Index, err)
		}
		if r.Board.RibThickness <= 0 {
			continue
		}
		s, err := k.Extrude(p, r.Board.RibThickness, true)
		if err != nil {
			return fmt.Errorf("rib %d: %w", rb.Index, err)
		}
		r.RibSolids = append(r.RibSolids, s)
		r.Hull = union(k, r.Hull, s)
		if meshes {
			if err := addMesh(r, k, s, fmt.Sprintf("rib-%02d", rb.Index)); err != nil {
				return err
			}
		}
	}
	return nil
}

// --- center rib ---

func buildCenterRib(r *Result) error {
	g, err := centerrib.NewGenerator(r.Board, r.Rocker)
	if err != nil {
		return err
	}
	res, err := g.Generate(r.Reference)
	if err != nil {
		return err
	}
	r.CenterRib = res
	return nil
}

// emitCenterRib sweeps the section along the rocker centerline. The
// section is registered so its mid-bias height sits on the path.
func emitCenterRib(r *Result, k kernel.Kernel, meshes bool) error {
	h := r.Board.RailHeight()
	section := geom.ShiftY(r.CenterRib.Profile(), h/2-h*r.Board.RailMidBias)
	p, err := k.EmitClosedProfile(kernel.OriginPlane, section)
	if err != nil {
		return err
	}
	path, err := k.EmitCurve(r.CenterRib.Path)
	if err != nil {
		return err
	}
	s, err := k.Sweep(p, path, kernel.Perpendicular)
	if err != nil {
		return err
	}
	r.Hull = union(k, r.Hull, s)
	if meshes {
		return addMesh(r, k, s, StageCenterRib)
	}
	return nil
}

func union(k kernel.Kernel, acc, s kernel.Solid) kernel.Solid {
	if acc == nil {
		return s
	}
	return k.Union(acc, s)
}

func addMesh(r *Result, k kernel.Kernel, s kernel.Solid, name string) error {
	m, err := k.ToMesh(s)
	if err != nil {
		return fmt.Errorf("%s: ToMesh failed: %w", name, err)
	}
	m.PartName = name
	r.Meshes = append(r.Meshes, m)
	return nil
}
