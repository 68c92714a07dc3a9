/*
Package construct holds the vocabulary of point constructions.

A construction introduces exactly one new point from previously available
points, objects (lines, parallels, perpendiculars, bisectors, circles) and
parameters. Constructions are plain values, validated on request. A sequence
of constructions is well-formed if every point a construction depends on is
either free (never introduced) or introduced by a strictly earlier
construction.

Every construction knows its non-degeneracy condition, a predicate over its
defining points which, if provable, makes the construction meaningless.

*/
package construct

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'areamethod.construct'.
func tracer() tracing.Trace {
	return tracing.Select("areamethod.construct")
}
