package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chazu/surfhull/pkg/config"
	"github.com/chazu/surfhull/pkg/engine"
	"github.com/chazu/surfhull/pkg/params"
)

// input is a resolved parameter source.
type input struct {
	Params params.Map
	Mesh   config.Mesh
}

// loadInput reads path as TOML when it ends in .toml and as a Lisp
// parameter script otherwise.
func loadInput(path string) (input, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		f, err := config.Load(path)
		if err != nil {
			return input{}, err
		}
		m, err := f.Params()
		if err != nil {
			return input{}, fmt.Errorf("%s: %w", path, err)
		}
		return input{Params: m, Mesh: f.Mesh}, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return input{}, err
	}
	m, evalErrs, err := engine.NewEngine().Evaluate(string(src))
	if err != nil {
		return input{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = e.Error()
		}
		return input{}, fmt.Errorf("%s: %s", path, strings.Join(msgs, "; "))
	}
	return input{Params: m}, nil
}

// applyOverrides sets each "name=value" pair on m. Values are numbers,
// booleans, or rail style and plan shape names.
func applyOverrides(m params.Map, sets []string) error {
	for _, s := range sets {
		name, raw, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("override %q: expected name=value", s)
		}
		name, raw = strings.TrimSpace(name), strings.TrimSpace(raw)
		key, known := params.Canonical(name)
		if !known {
			return fmt.Errorf("override %q: unknown parameter %q", s, name)
		}
		v, err := parseValue(key, raw)
		if err != nil {
			return fmt.Errorf("override %q: %w", s, err)
		}
		m[key] = v
	}
	return nil
}

func parseValue(key, raw string) (float64, error) {
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v, nil
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	switch key {
	case params.KeyRailStyle:
		s, err := params.ParseRailStyle(raw)
		return float64(s), err
	case params.KeyBoardPreset:
		p, err := params.ParsePlanShape(raw)
		return float64(p), err
	}
	return 0, fmt.Errorf("invalid value %q", raw)
}
