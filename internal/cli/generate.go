package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/chazu/surfhull/pkg/export"
	"github.com/chazu/surfhull/pkg/kernel"
	"github.com/chazu/surfhull/pkg/kernel/sdfx"
	"github.com/chazu/surfhull/pkg/params"
	"github.com/chazu/surfhull/pkg/pipeline"
)

type generateOpts struct {
	params       string
	out          string
	meshCells    int
	previewWidth int
	svgPrecision int
	svgStroke    float64
	svgMargin    float64
	sets         []string
	dryRun       bool
	noMesh       bool
	flatCage     bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build every hull part and write meshes and previews",
		Long: `Build the outline, rails, shell, cage, ribs and center rib of a board.

Meshes are written to meshes.json, a run manifest to manifest.json, and
SVG and PNG previews of the plan, rocker, a mid-length section and its
shell next to them.`,
		Example: `  surfhull generate -p board.toml -o out
  surfhull generate -p board.zy --set rib-thickness=6 --mesh-cells 120
  surfhull generate -p board.toml --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.params, "params", "p", "", "parameter file (.toml) or script")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "out", "output directory")
	cmd.Flags().IntVar(&opts.meshCells, "mesh-cells", 0, "marching cubes cells along the longest axis (0: file or default)")
	cmd.Flags().IntVar(&opts.previewWidth, "preview-width", 1200, "PNG preview width in pixels (0 disables)")
	cmd.Flags().IntVar(&opts.svgPrecision, "svg-precision", 3, "decimal places kept in SVG coordinates")
	cmd.Flags().Float64Var(&opts.svgStroke, "svg-stroke", 1, "SVG stroke width in millimetres")
	cmd.Flags().Float64Var(&opts.svgMargin, "svg-margin", 10, "SVG margin around each drawing in millimetres")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "override a parameter (name=value, repeatable)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "record geometry without building solids or meshes")
	cmd.Flags().BoolVar(&opts.noMesh, "no-mesh", false, "build solids but skip tessellation")
	cmd.Flags().BoolVar(&opts.flatCage, "flat-cage", false, "build the cage without deck and bottom offsets")
	_ = cmd.MarkFlagRequired("params")

	return cmd
}

func resolveBoard(path string, sets []string) (params.Board, input, error) {
	in, err := loadInput(path)
	if err != nil {
		return params.Board{}, input{}, err
	}
	if err := applyOverrides(in.Params, sets); err != nil {
		return params.Board{}, input{}, err
	}
	b, err := params.Decode(in.Params)
	if err != nil {
		return params.Board{}, input{}, err
	}
	return b, in, nil
}

func runGenerate(ctx context.Context, w io.Writer, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	b, in, err := resolveBoard(opts.params, opts.sets)
	if err != nil {
		return err
	}
	logger.Debug("parameters resolved", "source", opts.params, "stations", b.Stations())

	var (
		k    kernel.Kernel
		name string
	)
	if opts.dryRun {
		k, name = kernel.NewRecorder(), "recorder"
	} else {
		sk := sdfx.New()
		if in.Mesh.Cells > 0 {
			sk.MeshCells = in.Mesh.Cells
		}
		if opts.meshCells > 0 {
			sk.MeshCells = opts.meshCells
		}
		if in.Mesh.MinEdge > 0 {
			sk.MinEdge = in.Mesh.MinEdge
		}
		k, name = sk, "sdfx"
	}

	res, err := pipeline.Run(ctx, b, k, logger, pipeline.Options{
		Meshes:   !opts.dryRun && !opts.noMesh,
		FlatCage: opts.flatCage,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return err
	}
	files, err := writeOutputs(opts, res, in.Params, name)
	if err != nil {
		return err
	}

	printSummary(w, res)
	printSuccess(w, "Generated %s board (%s kernel)", b.PlanShape, name)
	for _, f := range files {
		printFile(w, f)
	}
	return nil
}

// manifest describes one generate run.
type manifest struct {
	RunID     string            `json:"runId"`
	Created   time.Time         `json:"created"`
	Kernel    string            `json:"kernel"`
	PlanShape string            `json:"planShape"`
	Params    params.Map        `json:"params"`
	Stages    []manifestStage   `json:"stages"`
	Parts     []manifestPart    `json:"parts"`
	Skipped   []int             `json:"skippedRibStations,omitempty"`
	WallAreas []float64         `json:"shellWallAreas"`
	Files     map[string]string `json:"files"`
}

type manifestStage struct {
	Name     string `json:"name"`
	Curves   int    `json:"curves"`
	Profiles int    `json:"profiles"`
	Solids   int    `json:"solids"`
	Millis   int64  `json:"elapsedMs"`
}

type manifestPart struct {
	Name      string `json:"name"`
	Vertices  int    `json:"vertices"`
	Triangles int    `json:"triangles"`
}

func writeOutputs(opts generateOpts, res *pipeline.Result, m params.Map, kernelName string) ([]string, error) {
	var files []string
	write := func(name string, data []byte) error {
		path := filepath.Join(opts.out, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		files = append(files, path)
		return nil
	}

	if len(res.Meshes) > 0 {
		data, err := json.Marshal(res.Meshes)
		if err != nil {
			return nil, fmt.Errorf("encode meshes: %w", err)
		}
		if err := write("meshes.json", data); err != nil {
			return nil, err
		}
	}

	previews := map[string]export.Drawing{
		"plan.svg":   export.Plan(res.Reference),
		"rocker.svg": export.Rocker(res.Rocker.Sample(res.Board.Stations())),
	}
	if n := len(res.Rails); n > 0 {
		previews["section.svg"] = export.Section(res.Rails[n/2])
	}
	if n := len(res.Shells); n > 0 {
		previews["shell.svg"] = export.Shell(res.Shells[n/2])
	}
	svgOpts := []export.SVGOption{
		export.WithPrecision(opts.svgPrecision),
		export.WithStrokeWidth(opts.svgStroke),
		export.WithMargin(opts.svgMargin),
	}
	for _, name := range []string{"plan.svg", "rocker.svg", "section.svg", "shell.svg"} {
		d, ok := previews[name]
		if !ok {
			continue
		}
		if err := write(name, export.RenderSVG(d, svgOpts...)); err != nil {
			return nil, err
		}
	}
	if opts.previewWidth > 0 {
		var buf bytes.Buffer
		if err := export.RenderPNG(&buf, previews["plan.svg"], opts.previewWidth); err != nil {
			return nil, fmt.Errorf("plan preview: %w", err)
		}
		if err := write("plan.png", buf.Bytes()); err != nil {
			return nil, err
		}
	}

	man := manifest{
		RunID:     uuid.NewString(),
		Created:   time.Now().UTC(),
		Kernel:    kernelName,
		PlanShape: res.Reference.Shape(),
		Params:    m,
		Skipped:   res.Ribs.Skipped,
		Files:     make(map[string]string, len(files)),
	}
	for _, s := range res.Summary {
		man.Stages = append(man.Stages, manifestStage{
			Name: s.Stage, Curves: s.Curves, Profiles: s.Profiles, Solids: s.Solids,
			Millis: s.Elapsed.Milliseconds(),
		})
	}
	for _, mesh := range res.Meshes {
		man.Parts = append(man.Parts, manifestPart{
			Name: mesh.PartName, Vertices: mesh.VertexCount(), Triangles: mesh.TriangleCount(),
		})
	}
	for _, wall := range res.Walls {
		man.WallAreas = append(man.WallAreas, wall.Area)
	}
	for _, f := range files {
		man.Files[filepath.Base(f)] = f
	}
	data, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := write("manifest.json", data); err != nil {
		return nil, err
	}
	return files, nil
}
