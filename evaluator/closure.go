package evaluator

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/poly"
)

// close rewrites an expression over free points in area coordinates
// relative to a basis O, U, V. The result contains only the coordinates
// S(O,X,V) and S(O,U,X) of free points X, the basis area S(O,U,V) and, in the
// plane, P(O,U,O), P(O,V,O) and P(U,O,V).
//
// In two-line mode the closure is in coordinates along the lines and there is
// no basis.
func (ev *Evaluator) close(e am.Expr) (am.Expr, []am.Point, error) {
	if ev.lines != nil {
		r, err := ev.lines.close(e)
		if err == nil {
			r, err = ev.reduceExtensions(r)
		}
		if err != nil {
			return e, nil, err
		}
		tracer().Debugf("two-line closure of %s is %s", e, r)
		return r, nil, nil
	}
	basis := ev.opts.basis
	if basis == nil {
		basis = chooseBasis(e)
	}
	c := newCoordinates(ev.flavor, basis)
	r, err := c.close(e)
	if err != nil {
		return e, basis, err
	}
	if r, err = ev.reduceExtensions(r); err != nil {
		return e, basis, err
	}
	tracer().P("basis", basis).Debugf("closure of %s is %s", e, r)
	return r, basis, nil
}

// chooseBasis takes the first three points of e in global order, padded with
// placeholder points.
func chooseBasis(e am.Expr) []am.Point {
	set := treeset.NewWith(func(a, b interface{}) int {
		return strings.Compare(string(a.(am.Point)), string(b.(am.Point)))
	})
	for _, inv := range am.Invariants(e) {
		for _, p := range inv.Points() {
			set.Add(p)
		}
	}
	basis := make([]am.Point, 0, 3)
	it := set.Iterator()
	for it.Next() && len(basis) < 3 {
		basis = append(basis, it.Value().(am.Point))
	}
	for _, p := range []am.Point{am.PlaceholderO, am.PlaceholderU, am.PlaceholderV} {
		if len(basis) == 3 {
			break
		}
		if !set.Contains(p) {
			basis = append(basis, p)
		}
	}
	return basis
}

// coordinates maps invariants to area coordinates.
type coordinates struct {
	flavor  Flavor
	o, u, v am.Point
	s       am.Expr // S(O,U,V)
}

func newCoordinates(flavor Flavor, basis []am.Point) coordinates {
	o, u, v := basis[0], basis[1], basis[2]
	return coordinates{flavor: flavor, o: o, u: u, v: v, s: am.S(o, u, v)}
}

func (c coordinates) close(e am.Expr) (am.Expr, error) {
	m := make(map[string]am.Expr)
	for _, inv := range am.Invariants(e) {
		v, err := c.express(inv)
		if err != nil {
			return e, err
		}
		m[inv.Key()] = v
	}
	r, err := e.Eval(m)
	if err != nil {
		return e, degenerate(err, "closing %s", e)
	}
	if c.flavor == FlavorPlane {
		heron, err := c.heron()
		if err != nil {
			return e, err
		}
		if r, err = heron.Reduce(r); err != nil {
			return e, degenerate(err, "reducing %s by %s", r, heron)
		}
	}
	return r, nil
}

// point returns the coordinates of x, scaled by S(O,U,V).
func (c coordinates) point(x am.Point) (am.Expr, am.Expr) {
	switch x {
	case c.o:
		return am.Zero(), am.Zero()
	case c.u:
		return c.s, am.Zero()
	case c.v:
		return am.Zero(), c.s
	}
	return am.S(c.o, x, c.v), am.S(c.o, c.u, x)
}

func (c coordinates) express(inv am.Invariant) (am.Expr, error) {
	switch g := inv.(type) {
	case am.Area:
		return c.area(g.A, g.B, g.C)
	case am.Pythagoras:
		if c.flavor == FlavorAffine {
			return am.Zero(), am.Unsupported("%s in the affine plane", g)
		}
		return c.pythagoras(g.A, g.B, g.C)
	case am.Ratio:
		return c.ratio(g.A, g.B, g.C, g.D)
	}
	return am.Zero(), am.Unsupported("cannot close %s", inv)
}

func (c coordinates) area(a, b, p am.Point) (am.Expr, error) {
	xa, ya := c.point(a)
	xb, yb := c.point(b)
	xc, yc := c.point(p)
	det := xb.Sub(xa).Mul(yc.Sub(ya)).Sub(xc.Sub(xa).Mul(yb.Sub(ya)))
	return quo(det, c.s)
}

// sq returns P(A,B,A) = 2·|AB|².
func (c coordinates) sq(a, b am.Point) (am.Expr, error) {
	xa, ya := c.point(a)
	xb, yb := c.point(b)
	dx, err := quo(xb.Sub(xa), c.s)
	if err != nil {
		return dx, err
	}
	dy, err := quo(yb.Sub(ya), c.s)
	if err != nil {
		return dy, err
	}
	e := dx.Mul(dx).Mul(am.P(c.o, c.u, c.o))
	e = e.Add(dy.Mul(dy).Mul(am.P(c.o, c.v, c.o)))
	return e.Add(am.Num(2).Mul(dx).Mul(dy).Mul(am.P(c.u, c.o, c.v))), nil
}

// pythagoras returns P(A,B,C) = (P(A,B,A) + P(C,B,C) - P(A,C,A)) / 2.
func (c coordinates) pythagoras(a, b, p am.Point) (am.Expr, error) {
	ab, err := c.sq(a, b)
	if err != nil {
		return ab, err
	}
	cb, err := c.sq(p, b)
	if err != nil {
		return cb, err
	}
	ac, err := c.sq(a, p)
	if err != nil {
		return ac, err
	}
	return ab.Add(cb).Sub(ac).Mul(am.Fraction(1, 2)), nil
}

// ratio returns AB/CD for parallel segments, comparing x coordinates or, if
// CD is parallel to OV, y coordinates.
func (c coordinates) ratio(a, b, p, d am.Point) (am.Expr, error) {
	xa, ya := c.point(a)
	xb, yb := c.point(b)
	xc, yc := c.point(p)
	xd, yd := c.point(d)
	if dx := xd.Sub(xc); !dx.IsZero() {
		return quo(xb.Sub(xa), dx)
	}
	if dy := yd.Sub(yc); !dy.IsZero() {
		return quo(yb.Sub(ya), dy)
	}
	return am.Zero(), degenerate(poly.ErrDivisionByZero, "ratio %s%s/%s%s", a, b, p, d)
}

// heron is the relation between the basis area and the sides of the basis
// triangle: 16·S(O,U,V)² = P(O,U,O)·P(O,V,O) - P(U,O,V)².
func (c coordinates) heron() (poly.Extension, error) {
	sigma := am.Invariants(c.s)[0]
	rhs := am.P(c.o, c.u, c.o).Mul(am.P(c.o, c.v, c.o)).Sub(am.P(c.u, c.o, c.v).Mul(am.P(c.u, c.o, c.v)))
	sq := poly.FracVar(sigma).Mul(poly.FracVar(sigma))
	minpoly := sq.Sub(rhs.Mul(am.Fraction(1, 16)))
	return poly.NewExtension(minpoly.Num(), sigma)
}
