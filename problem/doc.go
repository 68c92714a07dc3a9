/*
Package problem assembles geometry problems for the area method engine.

A problem is a sequence of statements of the problem language (see package
grammar), checked against a Scope of declared points and parameters, plus an
objective and optionally the expected outcome. Problems are read either from
plain text or from YAML files:

	name: midline
	flavor: affine
	points: A B C
	constructions:
	  - D = midpoint A B
	  - E = midpoint A C
	eval: R(D,E,B,C)
	expect: 1/2

The expectation is a truth value (true, false, unknown) for prove objectives
and an expression for eval objectives. RunAll runs a batch of problems
concurrently; every problem is run with its own memo table.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package problem

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'areamethod.problem'.
func tracer() tracing.Trace {
	return tracing.Select("areamethod.problem")
}
