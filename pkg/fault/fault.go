// Package fault defines the error kinds reported by hull generation.
// Every failure is terminal for the current run; callers branch on the
// kind with errors.Is against the exported sentinels.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a generation failure.
type Kind int

const (
	MissingParameter   Kind = iota // required parameters absent
	InvalidRange                   // parameter outside its legal range
	DegenerateGeometry             // zero denominators, empty profiles
	ReferenceNotReady              // generator used before the outline exists
)

func (k Kind) String() string {
	switch k {
	case MissingParameter:
		return "missing parameter"
	case InvalidRange:
		return "invalid range"
	case DegenerateGeometry:
		return "degenerate geometry"
	case ReferenceNotReady:
		return "reference not ready"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels matched by (*Error).Is.
var (
	ErrMissingParameter   = errors.New("missing parameter")
	ErrInvalidRange       = errors.New("invalid range")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	ErrReferenceNotReady  = errors.New("reference not ready")
)

// NoStation marks an Error that is not tied to a particular station.
const NoStation = -1

// Error is a labeled failure. Stage names the generator or curve that
// detected the problem; Station is its index within that stage.
type Error struct {
	Kind    Kind
	Stage   string
	Station int
	Fields  []string // parameter names, for MissingParameter and InvalidRange
	Message string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Stage != "" {
		b.WriteString(" in ")
		b.WriteString(e.Stage)
		if e.Station != NoStation {
			fmt.Fprintf(&b, " station %d", e.Station)
		}
	}
	if len(e.Fields) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Fields, ", "))
		b.WriteString("]")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMissingParameter:
		return e.Kind == MissingParameter
	case ErrInvalidRange:
		return e.Kind == InvalidRange
	case ErrDegenerateGeometry:
		return e.Kind == DegenerateGeometry
	case ErrReferenceNotReady:
		return e.Kind == ReferenceNotReady
	}
	return false
}

// Missing reports all absent parameter names in a single error.
func Missing(fields ...string) *Error {
	return &Error{
		Kind:    MissingParameter,
		Station: NoStation,
		Fields:  fields,
		Message: "required parameters not provided",
	}
}

// Range reports a parameter outside its legal range.
func Range(field, format string, args ...any) *Error {
	return &Error{
		Kind:    InvalidRange,
		Station: NoStation,
		Fields:  []string{field},
		Message: fmt.Sprintf(format, args...),
	}
}

// Degenerate reports geometry that cannot be produced at a station.
// Pass NoStation when the failure is not station specific.
func Degenerate(stage string, station int, format string, args ...any) *Error {
	return &Error{
		Kind:    DegenerateGeometry,
		Stage:   stage,
		Station: station,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotReady reports a generator invoked without a reference outline.
func NotReady(stage string) *Error {
	return &Error{
		Kind:    ReferenceNotReady,
		Stage:   stage,
		Station: NoStation,
		Message: "reference outline has not been built",
	}
}

// Join aggregates range errors so they can be reported together.
// It returns nil when errs is empty and the sole error when there is one.
func Join(errs []*Error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}
