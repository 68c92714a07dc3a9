package evaluator

import (
	"fmt"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/ecs"
)

// freshPoint is a free point no construction mentions. In the affine plane,
// A = B iff S(A,B,$X) vanishes for a generic point $X.
const freshPoint am.Point = "$X"

// prove decides p over the points constructed by steps. Proofs of atomic
// predicates are memoized.
//
// Conjunctions are True if every conjunct is. Disjunctions are True if some
// disjunct is, and Unknown if none is True but some is Unknown.
func (ev *Evaluator) prove(steps []ecs.Step, p am.Predicate) (am.Truth, error) {
	switch p := p.(type) {
	case am.All:
		for _, q := range p {
			t, err := ev.prove(steps, q)
			if err != nil || t != am.True {
				return t, err
			}
		}
		return am.True, nil
	case am.Any:
		result := am.False
		for _, q := range p {
			t, err := ev.prove(steps, q)
			if err != nil {
				return am.Unknown, err
			}
			if t == am.True {
				return am.True, nil
			}
			if t == am.Unknown {
				result = am.Unknown
			}
		}
		return result, nil
	}
	text := memoText(ev.mode(), steps, p)
	if t, ok := ev.memo.lookup(text); ok {
		return t, nil
	}
	ev.memo.begin(text)
	t, err := ev.proveAtomic(steps, p)
	if err != nil {
		ev.memo.abort(text)
		return am.Unknown, err
	}
	ev.memo.finish(text, t)
	tracer().Debugf("%s: %v", p, t)
	return t, nil
}

func (ev *Evaluator) proveAtomic(steps []ecs.Step, p am.Predicate) (am.Truth, error) {
	exprs, err := ev.lowerPredicate(p)
	if err != nil {
		return am.Unknown, err
	}
	if allZero(exprs) {
		return am.True, nil
	}
	if deg, err := ev.degenerate(steps); err != nil || deg {
		return am.TruthOf(deg), err
	}
	for _, e := range exprs {
		v, _, err := ev.evaluate(steps, e)
		if err != nil {
			return am.Unknown, err
		}
		if !v.IsZero() {
			tracer().Debugf("%s does not vanish: %s", e, v)
			return am.False, nil
		}
	}
	return am.True, nil
}

// degenerate is true if the non-degeneracy condition of some step can be
// proven over the steps before it. Every statement holds in a degenerate
// configuration.
func (ev *Evaluator) degenerate(steps []ecs.Step) (bool, error) {
	for i := len(steps) - 1; i >= 0; i-- {
		ndg := steps[i].NDG()
		if err := strictPrefix(steps, i, ndg); err != nil {
			return false, err
		}
		t, err := ev.prove(steps[:i], ndg)
		if err != nil {
			return false, err
		}
		if t == am.True {
			tracer().Infof("configuration is degenerate: %s", ndg)
			return true, nil
		}
	}
	return false, nil
}

// strictPrefix asserts that p talks about free points or points constructed
// by steps[:i] only.
func strictPrefix(steps []ecs.Step, i int, p am.Predicate) error {
	constructed := make(map[am.Point]int, len(steps))
	for j, s := range steps {
		constructed[s.Point()] = j
	}
	for _, q := range p.Points() {
		if j, ok := constructed[q]; ok && j >= i {
			return fmt.Errorf("%w: condition %s mentions %s, constructed at step %d of %d",
				am.ErrIncomplete, p, q, j, i)
		}
	}
	return nil
}

// lowerPredicate returns the expressions which vanish iff p holds.
func (ev *Evaluator) lowerPredicate(p am.Predicate) ([]am.Expr, error) {
	affine := ev.flavor == FlavorAffine
	switch p := p.(type) {
	case am.Collinear:
		return []am.Expr{am.S(p.A, p.B, p.C)}, nil
	case am.Parallel:
		return []am.Expr{am.S4(p.A, p.C, p.B, p.D)}, nil
	case am.Perpendicular:
		if affine {
			break
		}
		return []am.Expr{am.P4(p.A, p.C, p.B, p.D)}, nil
	case am.EqPoints:
		if affine {
			return []am.Expr{am.S(p.A, p.B, freshPoint)}, nil
		}
		return []am.Expr{am.P(p.A, p.B, p.A)}, nil
	case am.EqDistance:
		if affine {
			break
		}
		return []am.Expr{am.P(p.A, p.B, p.A).Sub(am.P(p.C, p.D, p.C))}, nil
	case am.Vanishes:
		return []am.Expr{p.E}, nil
	case am.All:
		var exprs []am.Expr
		for _, q := range p {
			e, err := ev.lowerPredicate(q)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e...)
		}
		return exprs, nil
	default:
		return nil, am.Unsupported("cannot lower predicate %s", p)
	}
	return nil, am.Unsupported("%s in the affine plane", p)
}

// predicateExpr lowers a predicate to a single expression, for evaluation.
func (ev *Evaluator) predicateExpr(p am.Predicate) (am.Expr, error) {
	exprs, err := ev.lowerPredicate(p)
	if err != nil {
		return am.Zero(), err
	}
	if len(exprs) != 1 {
		return am.Zero(), am.Unsupported("cannot evaluate composite predicate %s", p)
	}
	return exprs[0], nil
}

func allZero(exprs []am.Expr) bool {
	for _, e := range exprs {
		if !e.IsZero() {
			return false
		}
	}
	return true
}
