// Package config reads board parameter files written in TOML.
//
// A file carries the board parameters in a [board] table, using either
// canonical names or their snake_case and kebab-case spellings, and
// optional mesh settings in a [mesh] table:
//
//	[board]
//	length = 1800
//	max_width = 480
//	rail_style = "soft/hard"
//
//	[mesh]
//	cells = 120
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/surfhull/pkg/params"
)

// File is a decoded parameter file.
type File struct {
	Board map[string]any `toml:"board"`
	Mesh  Mesh           `toml:"mesh"`
}

// Mesh holds optional tessellation settings. Zero values mean the
// kernel defaults.
type Mesh struct {
	Cells   int     `toml:"cells"`
	MinEdge float64 `toml:"min_edge"`
}

// Load reads and parses the TOML file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes TOML data.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Mesh.Cells < 0 {
		return nil, fmt.Errorf("mesh.cells must not be negative, got %d", f.Mesh.Cells)
	}
	if f.Mesh.MinEdge < 0 {
		return nil, fmt.Errorf("mesh.min_edge must not be negative, got %g", f.Mesh.MinEdge)
	}
	return &f, nil
}

// Params converts the [board] table to a params.Map. Unknown names are
// reported together, as are values of the wrong type.
func (f *File) Params() (params.Map, error) {
	if unknown := params.Unknown(f.Board); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown board parameters: %s", strings.Join(unknown, ", "))
	}

	names := make([]string, 0, len(f.Board))
	for n := range f.Board {
		names = append(names, n)
	}
	sort.Strings(names)

	m := params.Map{}
	var bad []string
	for _, n := range names {
		if err := set(m, n, f.Board[n]); err != nil {
			bad = append(bad, err.Error())
		}
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("invalid board parameters: %s", strings.Join(bad, "; "))
	}
	return m, nil
}

// set stores one TOML value. Integers, floats and booleans are accepted
// for every name; strings only for rail style and plan shape.
func set(m params.Map, name string, v any) error {
	key, _ := params.Canonical(name)
	switch x := v.(type) {
	case int64:
		return m.Set(key, float64(x))
	case float64:
		return m.Set(key, x)
	case bool:
		return m.SetBool(key, x)
	case string:
		switch key {
		case params.KeyRailStyle:
			s, err := params.ParseRailStyle(x)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return m.Set(key, float64(s))
		case params.KeyBoardPreset:
			p, err := params.ParsePlanShape(x)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return m.Set(key, float64(p))
		}
	}
	return fmt.Errorf("%s: unsupported value %v (%T)", name, v, v)
}
