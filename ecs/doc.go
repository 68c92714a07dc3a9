/*
Package ecs lowers constructions to elementary constructions.

The elimination engine knows lemmas for a handful of elementary construction
steps only (ECS). Every construction of package construct is rewritten into a
short sequence of such steps, possibly introducing auxiliary points. Auxiliary
points carry engine-owned names ("$Y.1", "$Y.2", ...) derived from the point
being constructed and are placed immediately before the step which needs
them.

Some lowerings depend on geometric facts about the points constructed so far,
e.g. whether the angle of an ALine is a right angle. These decisions are
delegated to a Prover supplied by the caller, which is handed the prefix of
steps produced so far.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ecs

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'areamethod.ecs'.
func tracer() tracing.Trace {
	return tracing.Select("areamethod.ecs")
}
