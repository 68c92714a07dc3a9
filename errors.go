package areamethod

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the engine wraps one of these and
// may be tested with errors.Is.
var (
	// ErrMalformed flags invalid input, detected when building constructions
	// or objectives.
	ErrMalformed = errors.New("malformed input")
	// ErrUnsupported flags a construction or invariant shape for which no
	// lowering or elimination rule exists.
	ErrUnsupported = errors.New("not implemented")
	// ErrIncomplete flags an invariant still mentioning an eliminated point.
	// It signals a gap in the lemma tables.
	ErrIncomplete = errors.New("elimination incomplete")
	// ErrDegenerate flags a division by an expression which turned out to be
	// zero, i.e. a degenerate configuration.
	ErrDegenerate = errors.New("degenerate division")
)

// Malformed creates an error wrapping ErrMalformed.
func Malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// Unsupported creates an error wrapping ErrUnsupported.
func Unsupported(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}
