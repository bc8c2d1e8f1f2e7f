// Package pipeline runs the hull generators for one board in order and
// hands their output to a geometry kernel. One mesh is produced per
// solid part when meshing is enabled.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chazu/surfhull/pkg/cage"
	"github.com/chazu/surfhull/pkg/centerrib"
	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/kernel"
	"github.com/chazu/surfhull/pkg/outline"
	"github.com/chazu/surfhull/pkg/params"
	"github.com/chazu/surfhull/pkg/profile"
	"github.com/chazu/surfhull/pkg/rail"
	"github.com/chazu/surfhull/pkg/rib"
)

// Stage names, in run order.
const (
	StageOutline   = "outline"
	StageRails     = "rails"
	StageShell     = "shell"
	StageCage      = "cage"
	StageRibs      = "ribs"
	StageCenterRib = "center-rib"
)

// Options tunes a run.
type Options struct {
	// Meshes tessellates every solid part after it is built.
	Meshes bool
	// FlatCage builds the cage lattice without deck and bottom offsets.
	FlatCage bool
}

// StageSummary records what one stage handed to the kernel.
type StageSummary struct {
	Stage    string
	Curves   int
	Profiles int
	Solids   int
	Elapsed  time.Duration
}

// Result is everything a run built. Fields of stages that did not run
// are left zero.
type Result struct {
	Board     params.Board
	Rocker    *profile.Rocker
	Reference *outline.Reference
	Rails     []rail.Section
	Shells    []rail.Shell
	Walls     []rail.Wall
	Cage      cage.Lattice
	Ribs      rib.Set
	RibSolids []kernel.Solid
	CenterRib centerrib.Result
	Hull      kernel.Solid // union of the rib solids and the center rib
	Meshes    []*kernel.Mesh
	Summary   []StageSummary
}

// stage computes its output into the result first and only then emits
// it, so a failing build leaves the kernel untouched.
type stage struct {
	name  string
	build func(*Result) error
	emit  func(*Result, kernel.Kernel) error
}

// Run generates every part of b and emits it to k. The board is
// validated before any stage runs and ctx is checked between stages.
// On error the partial result of the finished stages is returned with
// it.
func Run(ctx context.Context, b params.Board, k kernel.Kernel, logger *log.Logger, opts Options) (*Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	res := &Result{Board: b}
	if err := b.Validate(); err != nil {
		return res, fmt.Errorf("pipeline: %w", err)
	}
	ck := &countingKernel{Kernel: k}

	for _, s := range stages(opts) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p := newProgress(logger)
		if err := s.build(res); err != nil {
			return res, fmt.Errorf("pipeline: %s: %w", s.name, err)
		}
		if err := emitStage(res, ck, s); err != nil {
			return res, fmt.Errorf("pipeline: %s: emit: %w", s.name, err)
		}
		sum := StageSummary{
			Stage:    s.name,
			Curves:   ck.curves,
			Profiles: ck.profiles,
			Solids:   ck.solids,
			Elapsed:  time.Since(p.start),
		}
		res.Summary = append(res.Summary, sum)
		logger.Debug("stage emitted", "stage", s.name, "curves", sum.Curves, "profiles", sum.Profiles, "solids", sum.Solids)
		p.done(fmt.Sprintf("Built %s", s.name))
	}
	return res, nil
}

// edgeFilter is implemented by kernels that drop profile edges shorter
// than a minimum before building a profile.
type edgeFilter interface {
	ProfileMinEdge() float64
}

// emitStage rehearses s against a Recorder that applies the kernel's
// edge filter, and emits to ck only once the rehearsal succeeds. Kernel
// failures a Recorder cannot predict, such as tessellation errors, can
// still stop a stage part way through.
func emitStage(res *Result, ck *countingKernel, s stage) error {
	rec := kernel.NewRecorder()
	if f, ok := ck.Kernel.(edgeFilter); ok {
		rec.MinEdge = f.ProfileMinEdge()
	}
	scratch := *res
	scratch.RibSolids = slices.Clip(res.RibSolids)
	scratch.Meshes = slices.Clip(res.Meshes)
	if err := s.emit(&scratch, rec); err != nil {
		return err
	}
	ck.reset()
	return s.emit(res, ck)
}

// progress logs completion of a stage with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// countingKernel counts the emissions of the current stage.
type countingKernel struct {
	kernel.Kernel
	curves, profiles, solids int
}

func (c *countingKernel) reset() { c.curves, c.profiles, c.solids = 0, 0, 0 }

func (c *countingKernel) EmitCurve(pts []geom.Point3) (kernel.Curve, error) {
	cv, err := c.Kernel.EmitCurve(pts)
	if err == nil {
		c.curves++
	}
	return cv, err
}

func (c *countingKernel) EmitClosedProfile(plane kernel.Plane, pts []geom.Point2) (kernel.Profile, error) {
	p, err := c.Kernel.EmitClosedProfile(plane, pts)
	if err == nil {
		c.profiles++
	}
	return p, err
}

func (c *countingKernel) Sweep(p kernel.Profile, path kernel.Curve, o kernel.Orientation) (kernel.Solid, error) {
	s, err := c.Kernel.Sweep(p, path, o)
	if err == nil {
		c.solids++
	}
	return s, err
}

func (c *countingKernel) Extrude(p kernel.Profile, distance float64, symmetric bool) (kernel.Solid, error) {
	s, err := c.Kernel.Extrude(p, distance, symmetric)
	if err == nil {
		c.solids++
	}
	return s, err
}
