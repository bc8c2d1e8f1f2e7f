package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	defer SetVersion("", "", "")

	if version != "1.0.0" || commit != "abc123" || date != "2026-01-01" {
		t.Errorf("SetVersion did not update the build info: %q %q %q", version, commit, date)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "check", "-p", writeFile(t, "board.toml", boardTOML))
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	for _, want := range []string{"BoardLength", "1800", "soft/soft", "19 stations"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckReportsMissing(t *testing.T) {
	_, err := execute(t, "check", "-p", writeFile(t, "partial.zy", "(board :length 1800)"))
	if err == nil {
		t.Fatal("expected missing parameter error")
	}
	for _, name := range []string{"MaxWidth", "RibSpacing"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should name %s: %v", name, err)
		}
	}
}

func TestGenerateDryRun(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "generate", "-p", writeFile(t, "board.toml", boardTOML),
		"-o", dir, "--dry-run", "--preview-width", "300", "--set", "rib-thickness=6")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}

	for _, name := range []string{"plan.svg", "rocker.svg", "section.svg", "shell.svg", "plan.png", "manifest.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "meshes.json")); err == nil {
		t.Error("dry run should not write meshes")
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatal(err)
	}
	var man manifest
	if err := json.Unmarshal(data, &man); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if man.RunID == "" || man.Kernel != "recorder" || man.PlanShape != "Parabolic" {
		t.Errorf("manifest header = %q, %q, %q", man.RunID, man.Kernel, man.PlanShape)
	}
	if len(man.Stages) != 6 {
		t.Errorf("manifest has %d stages, want 6", len(man.Stages))
	}
	if man.Params["RibThickness"] != 6 {
		t.Errorf("override not recorded: %v", man.Params)
	}
	if len(man.WallAreas) != 19 {
		t.Errorf("manifest has %d wall areas, want 19", len(man.WallAreas))
	}
	if !strings.Contains(out, "center-rib") {
		t.Errorf("summary missing center-rib stage:\n%s", out)
	}
}

func TestGenerateSVGOptions(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "generate", "-p", writeFile(t, "board.toml", boardTOML),
		"-o", dir, "--dry-run", "--preview-width", "0",
		"--svg-precision", "0", "--svg-stroke", "2.5", "--svg-margin", "0")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(dir, "plan.png")); err == nil {
		t.Error("preview width 0 should skip the PNG")
	}
	data, err := os.ReadFile(filepath.Join(dir, "plan.svg"))
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	if !strings.Contains(svg, `stroke-width="2.5"`) {
		t.Errorf("stroke width not applied:\n%s", svg)
	}
	if !strings.Contains(svg, `viewBox="0.000 -`) {
		t.Errorf("margin not applied:\n%s", svg)
	}
	for _, d := range regexp.MustCompile(` d="([^"]*)"`).FindAllStringSubmatch(svg, -1) {
		if strings.Contains(d[1], ".") {
			t.Errorf("path kept decimals at precision 0: %s", d[1])
		}
	}
}

func TestGenerateRequiresParams(t *testing.T) {
	if _, err := execute(t, "generate"); err == nil {
		t.Error("generate without --params should fail")
	}
}
