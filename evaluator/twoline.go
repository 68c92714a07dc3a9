package evaluator

import (
	"strings"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/construct"
	"github.com/npillmayer/areamethod/ecs"
	"github.com/npillmayer/areamethod/poly"
)

// TwoLine runs the engine in the affine plane for configurations whose free
// points all lie on two lines. The lines either are parallel or intersect in
// a single point O, which has to be listed for both of them.
//
// Constructed points are eliminated as in Affine. The closure then expresses
// areas, ratios and lengths of free points by signed lengths on the lines
// and a line constant: with parallel lines, S(A,B,C) = ½·α·L(B,C) for A on the
// first line and B, C on the second, and lengths are measured from made-up
// origins $O.1 and $O.2 of the lines. With intersecting lines,
// S(A,B,C) = ½·β·L(O,A)·L(B,C), and lengths are measured from O. The result
// carries no basis.
func TwoLine(seq []construct.Construction, obj Objective, line1, line2 []am.Point, opts ...Option) (Result, error) {
	lines, err := newTwoLines(line1, line2)
	if err != nil {
		return Result{}, err
	}
	ev, err := newEvaluator(FlavorAffine, opts)
	if err != nil {
		return Result{}, err
	}
	ev.lines = lines
	return ev.call(seq, obj)
}

// twoLines holds the lines of two-line mode and the origins lengths on them
// are measured from. For intersecting lines both origins are the common
// point.
type twoLines struct {
	on       [2]map[am.Point]bool
	pts      [2][]am.Point
	origin   [2]am.Point
	parallel bool
}

func newTwoLines(line1, line2 []am.Point) (*twoLines, error) {
	l := &twoLines{}
	for k, line := range [][]am.Point{line1, line2} {
		if len(line) == 0 {
			return nil, am.Malformed("line %d of two-line mode has no points", k+1)
		}
		l.on[k] = make(map[am.Point]bool, len(line))
		for _, p := range line {
			if err := p.Validate(); err != nil {
				return nil, err
			}
			if l.on[k][p] {
				return nil, am.Malformed("point %s listed twice for line %d", p, k+1)
			}
			l.on[k][p] = true
			l.pts[k] = append(l.pts[k], p)
		}
		am.SortPoints(l.pts[k])
	}
	var common []am.Point
	for _, p := range l.pts[0] {
		if l.on[1][p] {
			common = append(common, p)
		}
	}
	switch len(common) {
	case 0:
		l.parallel = true
		l.origin = [2]am.Point{am.Synthetic("O", 1), am.Synthetic("O", 2)}
	case 1:
		l.origin = [2]am.Point{common[0], common[0]}
	default:
		return nil, am.Malformed("lines %v and %v share more than one point", l.pts[0], l.pts[1])
	}
	return l, nil
}

func (l *twoLines) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for k := range l.pts {
		if k > 0 {
			b.WriteString(" | ")
		}
		for i, p := range l.pts[k] {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(string(p))
		}
	}
	b.WriteByte(']')
	return b.String()
}

// check asserts that the points of the lines are free.
func (l *twoLines) check(steps []ecs.Step) error {
	for _, s := range steps {
		if l.on[0][s.Point()] || l.on[1][s.Point()] {
			return am.Malformed("point %s on a line of two-line mode is constructed", s.Point())
		}
	}
	return nil
}

// line returns the index of the line x is on, or -1. The common point of
// intersecting lines and the origins are on every line they belong to; line
// reports the first.
func (l *twoLines) line(x am.Point) int {
	for k := range l.on {
		if l.on[k][x] || x == l.origin[k] {
			return k
		}
	}
	return -1
}

// point returns the coordinates of x. On parallel lines these are the
// length from the origin and 0 or -α; on intersecting lines they are oblique
// coordinates along the lines. The fresh point of equality tests is placed
// generically.
func (l *twoLines) point(x am.Point) (am.Expr, am.Expr, error) {
	if x == freshPoint {
		return am.Var(am.Coordinate(x, 1)), am.Var(am.Coordinate(x, 2)), nil
	}
	k := l.line(x)
	switch {
	case k < 0:
		return am.Zero(), am.Zero(), am.Malformed("point %s is on neither line", x)
	case l.parallel && k == 0:
		return am.L(l.origin[0], x), am.Zero(), nil
	case l.parallel:
		return am.L(l.origin[1], x), am.Const(am.Alpha).Neg(), nil
	case k == 0:
		return am.L(l.origin[0], x), am.Zero(), nil
	}
	return am.Zero(), am.L(l.origin[1], x), nil
}

func (l *twoLines) close(e am.Expr) (am.Expr, error) {
	m := make(map[string]am.Expr)
	for _, inv := range am.Invariants(e) {
		v, err := l.express(inv)
		if err != nil {
			return e, err
		}
		m[inv.Key()] = v
	}
	r, err := e.Eval(m)
	if err != nil {
		return e, degenerate(err, "closing %s", e)
	}
	return r, nil
}

func (l *twoLines) express(inv am.Invariant) (am.Expr, error) {
	switch g := inv.(type) {
	case am.Area:
		return l.area(g.A, g.B, g.C)
	case am.Ratio:
		return l.ratio(g.A, g.B, g.C, g.D)
	case am.Length:
		return l.length(g.A, g.B), nil
	}
	return am.Zero(), am.Unsupported("%s in two-line mode", inv)
}

func (l *twoLines) area(a, b, c am.Point) (am.Expr, error) {
	var xy [3][2]am.Expr
	for i, p := range []am.Point{a, b, c} {
		x, y, err := l.point(p)
		if err != nil {
			return am.Zero(), err
		}
		xy[i] = [2]am.Expr{x, y}
	}
	det := xy[1][0].Sub(xy[0][0]).Mul(xy[2][1].Sub(xy[0][1]))
	det = det.Sub(xy[2][0].Sub(xy[0][0]).Mul(xy[1][1].Sub(xy[0][1])))
	if !l.parallel { // the oblique frame has area -β
		det = det.Mul(am.Const(am.Beta).Neg())
	}
	return det.Mul(am.Fraction(1, 2)), nil
}

// ratio compares the coordinates along the first line or, for segments
// parallel to the second one, along the second line.
func (l *twoLines) ratio(a, b, c, d am.Point) (am.Expr, error) {
	var x, y [4]am.Expr
	for i, p := range []am.Point{a, b, c, d} {
		var err error
		if x[i], y[i], err = l.point(p); err != nil {
			return am.Zero(), err
		}
	}
	if dx := x[3].Sub(x[2]); !dx.IsZero() {
		return quo(x[1].Sub(x[0]), dx)
	}
	if dy := y[3].Sub(y[2]); !dy.IsZero() {
		return quo(y[1].Sub(y[0]), dy)
	}
	return am.Zero(), degenerate(poly.ErrDivisionByZero, "ratio %s%s/%s%s", a, b, c, d)
}

// length measures a segment on one of the lines from the line's origin.
// Segments joining the lines are left alone.
func (l *twoLines) length(a, b am.Point) am.Expr {
	for k := range l.on {
		onLine := func(p am.Point) bool { return l.on[k][p] || p == l.origin[k] }
		if onLine(a) && onLine(b) {
			o := l.origin[k]
			return am.L(o, b).Sub(am.L(o, a))
		}
	}
	return am.L(a, b)
}
