package evaluator

import (
	"fmt"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/ecs"
)

// eliminate removes the points constructed by steps from e, last step first.
func (ev *Evaluator) eliminate(steps []ecs.Step, e am.Expr) (am.Expr, error) {
	e, err := ev.reduceExtensions(e)
	if err != nil {
		return e, err
	}
	for i := len(steps) - 1; i >= 0; i-- {
		if len(am.Invariants(e)) == 0 {
			break
		}
		if ev.opts.backend == BackendPrem {
			e, err = ev.eliminateSparse(steps, i, e)
		} else {
			e, err = ev.eliminateStep(steps, i, e)
		}
		if err != nil {
			return e, err
		}
		if e, err = ev.reduceExtensions(e); err != nil {
			return e, err
		}
	}
	return e, nil
}

// eliminateStep removes the point of steps[i] from e. Every round replaces
// all invariants mentioning the point simultaneously; lemmas for ratios may
// leave ratios mentioning the point for the next round.
func (ev *Evaluator) eliminateStep(steps []ecs.Step, i int, e am.Expr) (am.Expr, error) {
	y := steps[i].Point()
	for round := 0; round < ev.opts.maxRounds; round++ {
		invs := mentioning(e, y)
		if len(invs) == 0 {
			return e, nil
		}
		subst := make(map[string]am.Expr, len(invs))
		for _, inv := range invs {
			v, err := ev.rewrite(steps, i, inv)
			if err != nil {
				return e, err
			}
			tracer().P("point", y).Debugf("%s = %s", inv, v)
			subst[inv.Key()] = v
		}
		next, err := e.Eval(subst)
		if err != nil {
			return e, degenerate(err, "eliminating %s", y)
		}
		if next.Equal(e) {
			return e, stalled(invs[0], y, round)
		}
		e = next
	}
	if invs := mentioning(e, y); len(invs) > 0 {
		return e, fmt.Errorf("%w: %s still mentions %s after %d rounds",
			am.ErrIncomplete, invs[0], y, ev.opts.maxRounds)
	}
	return e, nil
}

// stalled is the error for a round of rewriting which did not change the
// objective.
func stalled(inv am.Invariant, y am.Point, round int) error {
	return fmt.Errorf("%w: no progress eliminating %s from %s in round %d",
		am.ErrIncomplete, y, inv, round+1)
}

// mentioning returns the invariants of e with argument y.
func mentioning(e am.Expr, y am.Point) []am.Invariant {
	var invs []am.Invariant
	for _, inv := range am.Invariants(e) {
		if inv.Mentions(y) {
			invs = append(invs, inv)
		}
	}
	return invs
}
