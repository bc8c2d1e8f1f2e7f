package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/chazu/surfhull/pkg/params"
	"github.com/chazu/surfhull/pkg/pipeline"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle       = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber      = lipgloss.NewStyle().Foreground(colorCyan)
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(20)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printBoard lists every parameter of b under its canonical name.
func printBoard(w io.Writer, b params.Board) {
	fmt.Fprintln(w, styleTitle.Render("Board"))
	rows := []struct {
		key string
		val string
	}{
		{params.KeyBoardLength, fmt.Sprintf("%g", b.Length)},
		{params.KeyMaxWidth, fmt.Sprintf("%g", b.MaxWidth)},
		{params.KeyMaxThickness, fmt.Sprintf("%g", b.MaxThickness)},
		{params.KeyMinSegmentLength, fmt.Sprintf("%g", b.MinSegmentLength)},
		{params.KeyRailStyle, b.RailStyle.String()},
		{params.KeyRailMidBias, fmt.Sprintf("%g", b.RailMidBias)},
		{params.KeyDeckPreset, fmt.Sprintf("%d", b.DeckPreset)},
		{params.KeyBottomPreset, fmt.Sprintf("%d", b.BottomPreset)},
		{params.KeyShellThickness, fmt.Sprintf("%g", b.ShellThickness)},
		{params.KeyCenterRibThickness, fmt.Sprintf("%g", b.CenterRibThickness)},
		{params.KeyRockerNose, fmt.Sprintf("%g", b.RockerNose)},
		{params.KeyRockerTail, fmt.Sprintf("%g", b.RockerTail)},
		{params.KeyRockerMidOffset, fmt.Sprintf("%g", b.RockerMidOffset)},
		{params.KeyUseStagedRocker, fmt.Sprintf("%t", b.UseStagedRocker)},
		{params.KeyBoardPreset, b.PlanShape.String()},
		{params.KeyRibSpacing, fmt.Sprintf("%g", b.RibSpacing)},
		{params.KeyRibThickness, fmt.Sprintf("%g", b.RibThickness)},
	}
	for _, r := range rows {
		printKeyValue(w, r.key, r.val)
	}
}

// printSummary prints one line per pipeline stage.
func printSummary(w io.Writer, res *pipeline.Result) {
	fmt.Fprintln(w, styleTitle.Render("Stages"))
	for _, s := range res.Summary {
		line := fmt.Sprintf("%s curves %s profiles %s solids %s",
			styleNumber.Render(fmt.Sprint(s.Curves)),
			styleNumber.Render(fmt.Sprint(s.Profiles)),
			styleNumber.Render(fmt.Sprint(s.Solids)),
			styleDim.Render("("+s.Elapsed.Round(time.Millisecond).String()+")"))
		printKeyValue(w, s.Stage, line)
	}
}
