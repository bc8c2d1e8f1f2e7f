package fault

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIs(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want error
	}{
		{"missing", Missing("length", "max_width"), ErrMissingParameter},
		{"range", Range("rail_mid_bias", "must be in (0, 1), got %g", 1.0), ErrInvalidRange},
		{"degenerate", Degenerate("rib", 3, "zero width"), ErrDegenerateGeometry},
		{"not ready", NotReady("cage"), ErrReferenceNotReady},
	}
	sentinels := []error{ErrMissingParameter, ErrInvalidRange, ErrDegenerateGeometry, ErrReferenceNotReady}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("pipeline: %w", tt.err)
			for _, s := range sentinels {
				if got := errors.Is(wrapped, s); got != (s == tt.want) {
					t.Errorf("errors.Is(%v, %v) = %v", tt.err, s, got)
				}
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{Missing("length", "rib_spacing"), "missing parameter [length, rib_spacing]: required parameters not provided"},
		{Degenerate("rail", 4, "half width is zero"), "degenerate geometry in rail station 4: half width is zero"},
		{Degenerate("center-rib", NoStation, "empty path"), "degenerate geometry in center-rib: empty path"},
		{NotReady("ribs"), "reference not ready in ribs: reference outline has not been built"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if got := Kind(9).String(); got != "Kind(9)" {
		t.Errorf("unknown kind = %q", got)
	}
}

func TestJoin(t *testing.T) {
	if Join(nil) != nil {
		t.Error("Join(nil) should be nil")
	}
	one := Range("length", "must be positive")
	if Join([]*Error{one}) != error(one) {
		t.Error("Join of one error should return it unchanged")
	}
	err := Join([]*Error{one, Range("max_width", "must be positive")})
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("joined error does not match ErrInvalidRange: %v", err)
	}
	if !strings.Contains(err.Error(), "max_width") || !strings.Contains(err.Error(), "length") {
		t.Errorf("joined error = %q", err)
	}
}
