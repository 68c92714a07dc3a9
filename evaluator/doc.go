/*
Package evaluator is the elimination engine of the area method.

Given a sequence of constructions and an objective, the engine lowers the
constructions to elementary steps (package ecs) and eliminates the
constructed points from the objective, last construction first. Each
elementary step comes with closed-form lemmas rewriting an invariant which
mentions the constructed point into invariants of earlier points. Lemmas for
ratios branch on geometric side conditions, which are decided by recursive
calls to the prover on the strict prefix of steps.

Once only free points are left, the objective is rewritten in area
coordinates relative to a basis of three free points (coordinate closure) and
finally reduced by algebraic extensions.

The engine comes in two flavors: Affine accepts affine constructions and
area or ratio invariants only, Plane additionally knows about
perpendicularity, distances and circles.

Proofs

A predicate is proven by lowering it to expressions which have to vanish.
Before eliminating, every step's non-degeneracy condition is checked against
its prefix: a configuration which is provably degenerate satisfies every
statement. Sub-proofs are cached in a Memo, content-addressed by the
normalized text of the steps and the predicate.

Backends

Two backends are available for substituting eliminants. The default one
substitutes into canonical rational functions, cancelling after every
operation. The pseudo-remainder backend keeps numerator and denominator
over an explicit polynomial ring, substitutes by pseudo-division and cancels
once per construction. Both yield identical results.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package evaluator

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'areamethod.evaluator'.
func tracer() tracing.Trace {
	return tracing.Select("areamethod.evaluator")
}
