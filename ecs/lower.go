package ecs

import (
	"fmt"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/construct"
)

// Prover decides a predicate over the points constructed by a prefix of
// steps. Lowering asks a Prover whenever the choice of steps depends on the
// configuration at hand. A nil Prover answers Unknown, which makes lowering
// choose the general case.
type Prover func(prefix []Step, p am.Predicate) (am.Truth, error)

// Lower rewrites a sequence of constructions into elementary steps. The
// sequence is validated first; metric constructions are rejected with
// ErrUnsupported unless metric is set.
//
// The last step produced for a construction inherits the construction's
// non-degeneracy condition.
func Lower(seq []construct.Construction, metric bool, prove Prover) ([]Step, error) {
	if err := construct.Validate(seq, metric); err != nil {
		return nil, err
	}
	l := &lowering{prove: prove, aux: make(map[am.Point]int)}
	for _, c := range seq {
		n := len(l.steps)
		if err := l.lower(c); err != nil {
			tracer().Errorf("cannot lower %v: %v", c, err)
			return nil, err
		}
		tracer().Debugf("%v lowered to %v", c, l.steps[n:])
	}
	return l.steps, nil
}

type lowering struct {
	steps []Step
	prove Prover
	aux   map[am.Point]int // number of auxiliary points per constructed point
}

func (l *lowering) add(s Step) {
	l.steps = append(l.steps, s)
}

// auxPoint creates the next auxiliary point for constructing y.
func (l *lowering) auxPoint(y am.Point) am.Point {
	l.aux[y]++
	return am.Synthetic(string(y), l.aux[y])
}

func (l *lowering) holds(p am.Predicate) (bool, error) {
	if l.prove == nil {
		return false, nil
	}
	prefix := make([]Step, len(l.steps))
	copy(prefix, l.steps)
	t, err := l.prove(prefix, p)
	if err != nil {
		return false, err
	}
	tracer().Debugf("lowering condition %v is %v", p, t)
	return t == am.True, nil
}

func (l *lowering) lower(c construct.Construction) error {
	cond := c.NDG()
	switch c := c.(type) {
	case construct.On:
		return l.lowerOn(c, cond)
	case construct.Inter:
		return l.lowerInter(c, cond)
	case construct.LRatio:
		l.add(PRatio{Y: c.Y, W: c.P, U: c.P, V: c.Q, R: c.R, Cond: cond})
	case construct.MRatio:
		r, err := quo(c.R, c.R.Add(am.One()))
		if err != nil {
			return fmt.Errorf("%v: %w", c, err)
		}
		l.add(PRatio{Y: c.Y, W: c.P, U: c.P, V: c.Q, R: r, Cond: cond})
	case construct.Midpoint:
		l.add(PRatio{Y: c.Y, W: c.P, U: c.P, V: c.Q, R: am.Fraction(1, 2), Cond: cond})
	case construct.PRatio:
		l.add(PRatio{Y: c.Y, W: c.W, U: c.U, V: c.V, R: c.R, Cond: cond})
	case construct.TRatio:
		l.add(TRatio{Y: c.Y, P: c.P, Q: c.Q, R: c.R, Cond: cond})
	case construct.Foot:
		l.add(Foot{Y: c.Y, P: c.P, U: c.U, V: c.V, Cond: cond})
	case construct.ARatio:
		l.add(ARatio{Y: c.Y, O: c.O, U: c.U, V: c.V, RO: c.RO, RU: c.RU, RV: c.RV, Cond: cond})
	case construct.Centroid:
		third := am.Fraction(1, 3)
		l.add(ARatio{Y: c.Y, O: c.A, U: c.B, V: c.C, RO: third, RU: third, RV: third, Cond: cond})
	case construct.Orthocenter, construct.Circumcenter, construct.Incenter:
		step, err := weighted(c)
		if err != nil {
			return fmt.Errorf("%v: %w", c, err)
		}
		step.Cond = cond
		l.add(step)
	case construct.Inversion:
		return l.lowerInversion(c, cond)
	default:
		return am.Unsupported("no lowering for %v", c)
	}
	return nil
}

func (l *lowering) lowerOn(c construct.On, cond am.Predicate) error {
	switch o := c.Obj.(type) {
	case construct.Line:
		r := am.Var(am.AuxRatio(o.U, c.Y, o.U, o.V))
		l.add(PRatio{Y: c.Y, W: o.U, U: o.U, V: o.V, R: r, Cond: cond})
		return nil
	case construct.PLine:
		r := am.Var(am.AuxRatio(o.W, c.Y, o.U, o.V))
		l.add(PRatio{Y: c.Y, W: o.W, U: o.U, V: o.V, R: r, Cond: cond})
		return nil
	case construct.Circle:
		return am.Unsupported("%v: free point on a circle", c)
	}
	u, v, err := l.linePair(c.Y, c.Obj)
	if err != nil {
		return err
	}
	r := am.Var(am.AuxRatio(u, c.Y, u, v))
	l.add(PRatio{Y: c.Y, W: u, U: u, V: v, R: r, Cond: cond})
	return nil
}

func (l *lowering) lowerInter(c construct.Inter, cond am.Predicate) error {
	k1, circle1 := c.Obj1.(construct.Circle)
	k2, circle2 := c.Obj2.(construct.Circle)
	switch {
	case circle1 && circle2:
		if k1.A != k2.A {
			return am.Unsupported("%v: circles without a common point", c)
		}
		n := l.auxPoint(c.Y)
		l.add(Foot{Y: n, P: k1.A, U: k1.O, V: k2.O})
		l.add(PRatio{Y: c.Y, W: k1.A, U: k1.A, V: n, R: am.Num(2), Cond: cond})
		return nil
	case circle1 || circle2:
		line, k := c.Obj2, k1
		if circle2 {
			line, k = c.Obj1, k2
		}
		u, v, err := l.linePair(c.Y, line)
		if err != nil {
			return err
		}
		switch k.A {
		case u:
		case v:
			u, v = v, u
		default:
			return am.Unsupported("%v: line does not pass through a known point of the circle", c)
		}
		l.add(CircleInter{Y: c.Y, U: u, V: v, O: k.O, Cond: cond})
		return nil
	}
	u, v, err := l.linePair(c.Y, c.Obj1)
	if err != nil {
		return err
	}
	p, q, err := l.linePair(c.Y, c.Obj2)
	if err != nil {
		return err
	}
	l.add(LineInter{Y: c.Y, U: u, V: v, P: p, Q: q, Cond: cond})
	return nil
}

// linePair returns two distinct points of a line-like object, adding the
// steps for auxiliary points where necessary.
func (l *lowering) linePair(y am.Point, obj construct.Object) (am.Point, am.Point, error) {
	switch o := obj.(type) {
	case construct.Line:
		return o.U, o.V, nil
	case construct.PLine:
		n := l.auxPoint(y)
		l.add(PRatio{Y: n, W: o.W, U: o.U, V: o.V, R: am.One()})
		return o.W, n, nil
	case construct.TLine:
		m := l.auxPoint(y)
		l.add(PRatio{Y: m, W: o.W, U: o.U, V: o.V, R: am.One()})
		n := l.auxPoint(y)
		l.add(TRatio{Y: n, P: o.W, Q: m, R: am.One()})
		return o.W, n, nil
	case construct.BLine:
		n := l.auxPoint(y)
		l.add(PRatio{Y: n, W: o.U, U: o.U, V: o.V, R: am.Fraction(1, 2)})
		m := l.auxPoint(y)
		l.add(TRatio{Y: m, P: n, Q: o.U, R: am.One()})
		return n, m, nil
	case construct.ALine:
		right, err := l.holds(am.Perpendicular{A: o.U, B: o.W, C: o.W, D: o.V})
		if err != nil {
			return "", "", err
		}
		if right {
			return l.linePair(y, construct.TLine{W: o.P, U: o.P, V: o.Q})
		}
		r := l.auxPoint(y)
		tan, err := quo(am.Num(4).Mul(am.S(o.U, o.W, o.V)), am.P(o.U, o.W, o.V))
		if err != nil {
			return "", "", fmt.Errorf("%v: %w", obj, err)
		}
		l.add(TRatio{Y: r, P: o.Q, Q: o.P, R: tan})
		return o.P, r, nil
	}
	return "", "", am.Unsupported("%v is not line-like", obj)
}

func (l *lowering) lowerInversion(c construct.Inversion, cond am.Predicate) error {
	collinear, err := l.holds(am.Collinear{A: c.Q, B: c.O, C: c.A})
	if err != nil {
		return err
	}
	if collinear {
		r, err := am.R(c.O, c.A, c.O, c.Q)
		if err != nil {
			return fmt.Errorf("%v: %w", c, err)
		}
		l.add(PRatio{Y: c.Y, W: c.O, U: c.O, V: c.A, R: r, Cond: cond})
		return nil
	}
	r, err := quo(am.P(c.O, c.A, c.O), am.P(c.O, c.Q, c.O))
	if err != nil {
		return fmt.Errorf("%v: %w", c, err)
	}
	l.add(PRatio{Y: c.Y, W: c.O, U: c.O, V: c.Q, R: r, Cond: cond})
	return nil
}

// weighted lowers the triangle centers to ARatio steps, with barycentric
// weights in terms of the triangle's invariants.
func weighted(c construct.Construction) (ARatio, error) {
	var y, o, u, v am.Point
	var num [3]am.Expr
	var den am.Expr
	switch c := c.(type) {
	case construct.Orthocenter:
		y, o, u, v = c.Y, c.A, c.B, c.C
		den = am.Num(16).Mul(am.S(o, u, v)).Mul(am.S(o, u, v))
		num[0] = am.P(o, u, v).Mul(am.P(o, v, u))
		num[1] = am.P(u, o, v).Mul(am.P(u, v, o))
		num[2] = am.P(v, o, u).Mul(am.P(v, u, o))
	case construct.Circumcenter:
		y, o, u, v = c.Y, c.A, c.B, c.C
		den = am.Num(32).Mul(am.S(o, u, v)).Mul(am.S(o, u, v))
		num[0] = am.P(u, v, u).Mul(am.P(u, o, v))
		num[1] = am.P(o, v, o).Mul(am.P(o, u, v))
		num[2] = am.P(o, u, o).Mul(am.P(o, v, u))
	case construct.Incenter:
		y, o, u, v = c.C, c.I, c.A, c.B
		den = am.P(u, o, v).Mul(am.P(u, v, u))
		num[0] = am.Num(-2).Mul(am.P(o, u, v)).Mul(am.P(o, v, u))
		num[1] = am.P(o, u, v).Mul(am.P(o, v, o))
		num[2] = am.P(o, v, u).Mul(am.P(o, u, o))
	default:
		return ARatio{}, am.Unsupported("no weights for %v", c)
	}
	var w [3]am.Expr
	for i := range num {
		var err error
		if w[i], err = quo(num[i], den); err != nil {
			return ARatio{}, err
		}
	}
	return ARatio{Y: y, O: o, U: u, V: v, RO: w[0], RU: w[1], RV: w[2]}, nil
}

// quo divides expressions; a zero divisor is a degenerate configuration.
func quo(a, b am.Expr) (am.Expr, error) {
	q, err := a.Quo(b)
	if err != nil {
		return am.Zero(), fmt.Errorf("%w: %v", am.ErrDegenerate, err)
	}
	return q, nil
}
