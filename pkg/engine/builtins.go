package engine

import (
	"fmt"
	"sort"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/surfhull/pkg/params"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms parameter script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: get-param -> get_param
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpParams wraps the values set by one board form.
type sexpParams struct {
	m params.Map
}

func (p *sexpParams) SexpString(ps *zygo.PrintState) string {
	keys := make([]string, 0, len(p.m))
	for k := range p.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString("(board")
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%g", k, p.m[k])
	}
	sb.WriteString(")")
	return sb.String()
}
func (p *sexpParams) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value is a flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toParamValue converts a script value for the canonical key. Booleans
// become 0 or 1; rail style and plan shape also accept their names.
func toParamValue(key string, s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		if v.Val {
			return 1, nil
		}
		return 0, nil
	case *zygo.SexpStr:
		name, _ := toKeywordString(v)
		switch key {
		case params.KeyRailStyle:
			st, err := params.ParseRailStyle(name)
			return float64(st), err
		case params.KeyBoardPreset:
			p, err := params.ParsePlanShape(name)
			return float64(p), err
		}
		return 0, fmt.Errorf("expected number, got string %q", name)
	}
	return toFloat64(s)
}

// setParam stores the script value s under the canonical form of name.
func setParam(m params.Map, name string, s zygo.Sexp) (string, error) {
	key, ok := params.Canonical(name)
	if !ok {
		return "", fmt.Errorf("unknown parameter %q", name)
	}
	v, err := toParamValue(key, s)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	m[key] = v
	return key, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins adds the parameter builtins to env. Every value they
// set lands in m.
func registerBuiltins(env *zygo.Zlisp, m params.Map) {
	// -----------------------------------------------------------------------
	// (board :length 1800 :max-width 480 :rail-style :soft-hard ...)
	// -----------------------------------------------------------------------
	env.AddFunction("board", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("board: unexpected positional argument %s", pa.positional[0].SexpString(nil))
		}
		names := make([]string, 0, len(pa.kw))
		for k := range pa.kw {
			names = append(names, k)
		}
		sort.Strings(names)

		set := params.Map{}
		for _, n := range names {
			key, err := setParam(m, n, pa.kw[n])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("board: %w", err)
			}
			set[key] = m[key]
		}
		return &sexpParams{m: set}, nil
	})

	// -----------------------------------------------------------------------
	// (param :rocker-nose 120)
	// -----------------------------------------------------------------------
	env.AddFunction("param", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("param requires a name and a value, got %d arguments", len(args))
		}
		pname, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("param: name: %w", err)
		}
		if _, err := setParam(m, pname, args[1]); err != nil {
			return zygo.SexpNull, fmt.Errorf("param: %w", err)
		}
		return args[1], nil
	})

	// -----------------------------------------------------------------------
	// (get-param :max-width)
	// -----------------------------------------------------------------------
	env.AddFunction("get_param", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("get-param requires a name argument")
		}
		pname, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("get-param: name: %w", err)
		}
		key, ok := params.Canonical(pname)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("get-param: unknown parameter %q", pname)
		}
		v, ok := m[key]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("get-param: %s has not been set", key)
		}
		return &zygo.SexpFloat{Val: v}, nil
	})
}
