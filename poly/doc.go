/*
Package poly implements sparse multivariate polynomials over the rationals
and rational functions built from them.

A polynomial lives in a Ring, an ordered set of indeterminates. Rings are
values: injecting new indeterminates or compressing unused ones away yields a
new ring and never touches the polynomials already built over the old one.
Operations on polynomials of different rings first move both operands into
the union ring.

Besides ring arithmetic the package offers the pseudo-remainder of two
polynomials with respect to one indeterminate, exact division, content and
primitive part, and a gcd based on the subresultant pseudo-remainder
sequence. Frac is the canonical rational function on top of these: numerator
and denominator are coprime and the denominator is monic with respect to the
lexicographic term order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package poly

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'areamethod.poly'.
func tracer() tracing.Trace {
	return tracing.Select("areamethod.poly")
}

// ErrDivisionByZero is returned whenever a polynomial division or a rational
// function would have a zero divisor.
var ErrDivisionByZero = errors.New("division by zero polynomial")

// ErrNotExact is returned by ExactDiv if the divisor does not divide the dividend.
var ErrNotExact = errors.New("polynomial division is not exact")

// ErrInconsistent is the error a panic carries if exact arithmetic breaks an
// invariant of its own, e.g. a gcd not dividing its arguments. It signals a
// defect in this package, never bad input.
var ErrInconsistent = errors.New("inconsistent polynomial arithmetic")

// inconsistent panics with ErrInconsistent.
func inconsistent(format string, args ...interface{}) {
	tracer().Errorf(format, args...)
	panic(fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...)))
}

// ErrForeignSymbol is returned when a polynomial is converted to a ring lacking
// one of its indeterminates.
var ErrForeignSymbol = errors.New("indeterminate not in ring")
