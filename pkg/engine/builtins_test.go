package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/params"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(param :shell "oak")`,
			expect: `(param "__kw_shell" "oak")`,
		},
		{
			name:   "multiple keywords",
			input:  `(board :length 400 :width 200)`,
			expect: `(board "__kw_length" 400 "__kw_width" 200)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(get-param :max-width)`,
			expect: `(get_param "__kw_max-width")`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:rail-mid-bias`,
			expect: `"__kw_rail-mid-bias"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Parameter builtins
// ---------------------------------------------------------------------------

const fullScript = `
;; reference board
(def w 480)
(board :length 1800 :max-width w :max-thickness 60
       :min-segment-length 60 :rail-mid-bias 0.5
       :shell-thickness 10 :center-rib-thickness 20
       :rocker-nose 120 :rocker-tail 60 :rocker-mid-offset 0
       :rib-spacing 300)
`

func evalOK(t *testing.T, source string) params.Map {
	t.Helper()
	m, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return m
}

func TestBoardBuiltin(t *testing.T) {
	m := evalOK(t, fullScript)

	b, err := params.Decode(m)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.Length != 1800 || b.MaxWidth != 480 || b.MaxThickness != 60 {
		t.Errorf("unexpected dimensions %+v", b)
	}
	if b.RailMidBias != 0.5 {
		t.Errorf("RailMidBias = %f, want 0.5", b.RailMidBias)
	}
	if b.RibSpacing != 300 {
		t.Errorf("RibSpacing = %f, want 300", b.RibSpacing)
	}
}

func TestParamBuiltin(t *testing.T) {
	m := evalOK(t, fullScript+`
(param :rail-style :soft-hard)
(param "BoardPreset" "fish-tail")
(param :use-staged-rocker true)
(param :rocker-tail (* 0.5 (get-param :rocker-nose)))
`)
	tests := []struct {
		key  string
		want float64
	}{
		{params.KeyRailStyle, float64(params.RailSoftHard)},
		{params.KeyBoardPreset, float64(params.PlanFishTail)},
		{params.KeyUseStagedRocker, 1},
		{params.KeyRockerTail, 60},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := m[tt.key]; got != tt.want {
				t.Errorf("%s = %f, want %f", tt.key, got, tt.want)
			}
		})
	}
}

func TestLaterFormsOverride(t *testing.T) {
	m := evalOK(t, `(board :length 1800) (board :length 2100)`)
	if m[params.KeyBoardLength] != 2100 {
		t.Errorf("BoardLength = %f, want 2100", m[params.KeyBoardLength])
	}
}

func TestPartialScriptReportsMissing(t *testing.T) {
	m := evalOK(t, `(board :length 1800 :max-width 480)`)
	_, err := params.Decode(m)
	if !errors.Is(err, fault.ErrMissingParameter) {
		t.Fatalf("expected missing parameter error, got %v", err)
	}
	var fe *fault.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fault.Error, got %T", err)
	}
	for _, f := range fe.Fields {
		if f == params.KeyBoardLength || f == params.KeyMaxWidth {
			t.Errorf("%s reported missing", f)
		}
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"unknown keyword", `(board :lenght 1800)`, "unknown parameter"},
		{"positional arg", `(board 1800)`, "positional"},
		{"non-number", `(board :length "long")`, "expected number"},
		{"bad rail style", `(param :rail-style :medium)`, "unknown rail style"},
		{"param arity", `(param :length)`, "name and a value"},
		{"unset get-param", `(get-param :rocker-nose)`, "has not been set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("fatal error: %v", err)
			}
			if m != nil {
				t.Errorf("expected nil map, got %v", m)
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected an eval error")
			}
			if !strings.Contains(evalErrs[0].Message, tt.want) {
				t.Errorf("message = %q, want containing %q", evalErrs[0].Message, tt.want)
			}
		})
	}
}

func TestSexpParamsString(t *testing.T) {
	p := &sexpParams{m: params.Map{params.KeyMaxWidth: 480, params.KeyBoardLength: 1800}}
	want := "(board BoardLength=1800 MaxWidth=480)"
	if got := p.SexpString(nil); got != want {
		t.Errorf("SexpString() = %q, want %q", got, want)
	}
}
