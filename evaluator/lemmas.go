package evaluator

import (
	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/ecs"
)

// lemma returns the value of invariant inv, which mentions the point
// constructed by steps[i], in terms of the points the step depends on.
func (ev *Evaluator) lemma(steps []ecs.Step, i int, inv am.Invariant) (am.Expr, error) {
	step := steps[i]
	switch g := inv.(type) {
	case am.Area:
		return areaLemma(step, g)
	case am.Pythagoras:
		if ev.flavor == FlavorAffine {
			return am.Zero(), am.Unsupported("%s in the affine plane", g)
		}
		return pythagorasLemma(step, g)
	case am.Ratio:
		return ev.ratioLemma(steps, i, g)
	}
	return am.Zero(), am.Unsupported("no lemma for %s", inv)
}

// --- Combinations ------------------------------------------------------------

// combination represents Y = Σ w_i·X_i with Σ w_i = 1.
type combination struct {
	pts     []am.Point
	weights []am.Expr
}

// add adds w·x, merging coincident points.
func (c *combination) add(x am.Point, w am.Expr) {
	for k, p := range c.pts {
		if p == x {
			c.weights[k] = c.weights[k].Add(w)
			return
		}
	}
	c.pts = append(c.pts, x)
	c.weights = append(c.weights, w)
}

// compact drops points with vanishing weight.
func (c *combination) compact() {
	pts, weights := c.pts[:0], c.weights[:0]
	for k, p := range c.pts {
		if !c.weights[k].IsZero() {
			pts = append(pts, p)
			weights = append(weights, c.weights[k])
		}
	}
	c.pts, c.weights = pts, weights
}

// linear sums up w_i·f(X_i), for invariants linear in Y.
func (c combination) linear(f func(am.Point) am.Expr) am.Expr {
	sum := am.Zero()
	for k, x := range c.pts {
		sum = sum.Add(c.weights[k].Mul(f(x)))
	}
	return sum
}

// quadratic returns P(A,Y,B) = Σ w_i·P(A,X_i,B) - Σ_{i<j} w_i·w_j·P(X_i,X_j,X_i).
func (c combination) quadratic(a, b am.Point) am.Expr {
	sum := c.linear(func(x am.Point) am.Expr { return am.P(a, x, b) })
	for i := range c.pts {
		for j := i + 1; j < len(c.pts); j++ {
			w := c.weights[i].Mul(c.weights[j])
			sum = sum.Sub(w.Mul(am.P(c.pts[i], c.pts[j], c.pts[i])))
		}
	}
	return sum
}

// combinationOf returns the point of a step as an affine combination of
// known points. TRatio steps have none.
func combinationOf(step ecs.Step) (combination, bool, error) {
	c := combination{}
	switch s := step.(type) {
	case ecs.PRatio:
		c.add(s.W, am.One())
		c.add(s.U, s.R.Neg())
		c.add(s.V, s.R)
	case ecs.LineInter:
		su, sv := am.S(s.U, s.P, s.Q), am.S(s.V, s.P, s.Q)
		d := su.Sub(sv)
		wv, err := quo(su, d)
		if err != nil {
			return c, true, err
		}
		wu, err := quo(sv.Neg(), d)
		if err != nil {
			return c, true, err
		}
		c.add(s.U, wu)
		c.add(s.V, wv)
	case ecs.Foot:
		t, err := quo(am.P(s.P, s.U, s.V), am.P(s.U, s.V, s.U))
		if err != nil {
			return c, true, err
		}
		c.add(s.U, am.One().Sub(t))
		c.add(s.V, t)
	case ecs.CircleInter:
		t, err := circleRatio(s)
		if err != nil {
			return c, true, err
		}
		c.add(s.U, am.One().Sub(t))
		c.add(s.V, t)
	case ecs.ARatio:
		c.add(s.O, s.RO)
		c.add(s.U, s.RU)
		c.add(s.V, s.RV)
	default:
		return c, false, nil
	}
	c.compact()
	return c, true, nil
}

// circleRatio is t with Y = U + t·(V-U) for the second intersection Y of
// line UV with the circle around O through U.
func circleRatio(s ecs.CircleInter) (am.Expr, error) {
	return quo(am.Num(2).Mul(am.P(s.O, s.U, s.V)), am.P(s.U, s.V, s.U))
}

// --- Areas -------------------------------------------------------------------

func areaLemma(step ecs.Step, g am.Area) (am.Expr, error) {
	y := step.Point()
	if t, ok := step.(ecs.TRatio); ok {
		a, b := others(g, y)
		// S(A,B,Y) = S(A,B,P) - r/4·P(P,A,Q,B)
		return am.S(a, b, t.P).Sub(t.R.Mul(am.Fraction(1, 4)).Mul(am.P4(t.P, a, t.Q, b))), nil
	}
	c, ok, err := combinationOf(step)
	if err != nil || !ok {
		return am.Zero(), lemmaError(err, step, g)
	}
	return c.linear(func(x am.Point) am.Expr {
		return am.S(replace(g.A, y, x), replace(g.B, y, x), replace(g.C, y, x))
	}), nil
}

// others rotates S(A,B,C) cyclically to S(a,b,Y).
func others(g am.Area, y am.Point) (am.Point, am.Point) {
	switch y {
	case g.A:
		return g.B, g.C
	case g.B:
		return g.C, g.A
	}
	return g.A, g.B
}

func replace(p, y, x am.Point) am.Point {
	if p == y {
		return x
	}
	return p
}

// --- Pythagoras differences --------------------------------------------------

func pythagorasLemma(step ecs.Step, g am.Pythagoras) (am.Expr, error) {
	y := step.Point()
	quadratic := g.B == y || g.A == g.C
	var a, b am.Point // P(a,Y,b) if quadratic, P(a,b,Y) if linear
	switch {
	case g.A == g.C && g.A == y:
		a, b = g.B, g.B
	case g.A == g.C:
		a, b = g.A, g.A
	case g.B == y:
		a, b = g.A, g.C
	case g.A == y:
		a, b = g.C, g.B
	default:
		a, b = g.A, g.B
	}
	if t, ok := step.(ecs.TRatio); ok {
		if quadratic {
			// P(A,Y,B) = P(A,P,B) + r²·P(P,Q,P) - 4r·(S(A,P,Q) + S(B,P,Q))
			r2 := t.R.Mul(t.R)
			e := am.P(a, t.P, b).Add(r2.Mul(am.P(t.P, t.Q, t.P)))
			return e.Sub(am.Num(4).Mul(t.R).Mul(am.S(a, t.P, t.Q).Add(am.S(b, t.P, t.Q)))), nil
		}
		// P(A,B,Y) = P(A,B,P) - 4r·S(P,A,Q,B)
		return am.P(a, b, t.P).Sub(am.Num(4).Mul(t.R).Mul(am.S4(t.P, a, t.Q, b))), nil
	}
	c, ok, err := combinationOf(step)
	if err != nil || !ok {
		return am.Zero(), lemmaError(err, step, g)
	}
	if quadratic {
		return c.quadratic(a, b), nil
	}
	return c.linear(func(x am.Point) am.Expr { return am.P(a, b, x) }), nil
}

func lemmaError(err error, step ecs.Step, inv am.Invariant) error {
	if err != nil {
		return err
	}
	return am.Unsupported("no lemma for %s with %s", inv, step)
}
