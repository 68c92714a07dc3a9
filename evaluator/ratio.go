package evaluator

import (
	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/ecs"
)

// ratioLemma eliminates Y from a ratio AB/CD. A ratio with Y in numerator
// and denominator is rewritten in terms of a ratio AY/AC, which the next
// round of elimination takes care of.
func (ev *Evaluator) ratioLemma(steps []ecs.Step, i int, g am.Ratio) (am.Expr, error) {
	y := steps[i].Point()
	inNum := g.A == y || g.B == y
	inDen := g.C == y || g.D == y
	switch {
	case inNum && inDen:
		a, sa := partner(g.A, g.B, y)
		c, sc := partner(g.C, g.D, y)
		// AY/CY = t/(t-1) with t = AY/AC
		t, err := am.R(a, y, a, c)
		if err != nil {
			return am.Zero(), err
		}
		v, err := quo(t, t.Sub(am.One()))
		if err != nil {
			return am.Zero(), err
		}
		return v.Mul(am.Num(int64(sa * sc))), nil
	case inNum:
		a, sa := partner(g.A, g.B, y)
		v, err := ev.ratio(steps, i, a, g.C, g.D)
		if err != nil {
			return am.Zero(), err
		}
		return v.Mul(am.Num(int64(sa))), nil
	case inDen:
		c, sc := partner(g.C, g.D, y)
		v, err := ev.ratio(steps, i, c, g.A, g.B)
		if err != nil {
			return am.Zero(), err
		}
		return quo(am.Num(int64(sc)), v)
	}
	return am.Zero(), am.Unsupported("%s does not mention %s", g, y)
}

// partner returns the point paired with y in segment pq, with sign -1 if y
// comes first.
func partner(p, q, y am.Point) (am.Point, int) {
	if q == y {
		return p, 1
	}
	return q, -1
}

// ratio returns AY/CD for the point Y of steps[i], with A, C, D not
// depending on Y.
func (ev *Evaluator) ratio(steps []ecs.Step, i int, a, c, d am.Point) (am.Expr, error) {
	holds := func(p am.Predicate) (bool, error) {
		if err := strictPrefix(steps, i, p); err != nil {
			return false, err
		}
		t, err := ev.prove(steps[:i], p)
		return t == am.True, err
	}
	switch s := steps[i].(type) {
	case ecs.PRatio:
		par, err := holds(am.Parallel{A: a, B: s.W, C: s.U, D: s.V})
		if err != nil {
			return am.Zero(), err
		}
		if par {
			aw, err := am.R(a, s.W, s.U, s.V)
			if err != nil {
				return am.Zero(), err
			}
			cd, err := am.R(c, d, s.U, s.V)
			if err != nil {
				return am.Zero(), err
			}
			return quo(aw.Add(s.R), cd)
		}
		return quo(am.S4(a, s.U, s.W, s.V), am.S4(c, s.U, d, s.V))
	case ecs.LineInter:
		col, err := holds(am.Collinear{A: a, B: s.U, C: s.V})
		if err != nil {
			return am.Zero(), err
		}
		if col {
			return quo(am.S(a, s.P, s.Q), am.S4(c, s.P, d, s.Q))
		}
		return quo(am.S(a, s.U, s.V), am.S4(c, s.U, d, s.V))
	case ecs.Foot:
		col, err := holds(am.Collinear{A: a, B: s.U, C: s.V})
		if err != nil {
			return am.Zero(), err
		}
		if col {
			return quo(am.P4(s.P, c, a, d), am.P(c, d, c))
		}
		return quo(am.S(a, s.U, s.V), am.S4(c, s.U, d, s.V))
	case ecs.CircleInter:
		col, err := holds(am.Collinear{A: a, B: s.U, C: s.V})
		if err != nil {
			return am.Zero(), err
		}
		if col {
			t, err := circleRatio(s)
			if err != nil {
				return am.Zero(), err
			}
			au, err := am.R(a, s.U, s.U, s.V)
			if err != nil {
				return am.Zero(), err
			}
			cd, err := am.R(c, d, s.U, s.V)
			if err != nil {
				return am.Zero(), err
			}
			return quo(au.Add(t), cd)
		}
		return quo(am.S(a, s.U, s.V), am.S4(c, s.U, d, s.V))
	case ecs.TRatio:
		perp, err := holds(am.Perpendicular{A: a, B: s.P, C: s.P, D: s.Q})
		if err != nil {
			return am.Zero(), err
		}
		if perp {
			// S(A,P,Q) - r/4·P(P,Q,P)
			num := am.S(a, s.P, s.Q).Sub(s.R.Mul(am.Fraction(1, 4)).Mul(am.P(s.P, s.Q, s.P)))
			return quo(num, am.S4(c, s.P, d, s.Q))
		}
		return quo(am.P(a, s.P, s.Q), am.P4(c, s.P, d, s.Q))
	case ecs.ARatio:
		// S(X,A,Y) for X one of O, U, V, as long as it does not vanish
		for _, x := range []struct {
			x, p, q am.Point
			rp, rq  am.Expr
		}{
			{s.O, s.U, s.V, s.RU, s.RV},
			{s.U, s.O, s.V, s.RO, s.RV},
			{s.V, s.O, s.U, s.RO, s.RU},
		} {
			num := x.rp.Mul(am.S(x.x, a, x.p)).Add(x.rq.Mul(am.S(x.x, a, x.q)))
			if x.x != s.V {
				zero, err := holds(am.Vanishes{E: num})
				if err != nil {
					return am.Zero(), err
				}
				if zero {
					continue
				}
			}
			return quo(num, am.S4(x.x, c, a, d))
		}
	}
	return am.Zero(), am.Unsupported("no ratio lemma for %s", steps[i])
}
