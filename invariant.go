package areamethod

import (
	"fmt"

	"github.com/npillmayer/areamethod/poly"
)

// Indeterminates of expressions are parameters and invariants. Their keys
// start with a kind prefix, grouping them in polynomial rings: parameters
// first, then areas, Pythagoras differences and ratios.
const (
	keyParam      = "0"
	keyArea       = "1S"
	keyPythagoras = "2P"
	keyRatio      = "3R"
	keyLength     = "4L"
	keyLineConst  = "5C"
)

// Param is a named scalar parameter, e.g. the ratio of a point on a line.
type Param string

// Key implements poly.Symbol.
func (p Param) Key() string {
	return keyParam + string(p)
}

func (p Param) String() string {
	return string(p)
}

// Validate checks if p is usable as a user-supplied parameter name.
func (p Param) Validate() error {
	return validateName(string(p), "parameter")
}

// AuxRatio is the placeholder parameter for a point taken freely on a line:
// the point Y on the line through W parallel to UV has Y = W + AuxRatio·(V-U).
func AuxRatio(w, y, u, v Point) Param {
	return Param(fmt.Sprintf("%sr[%s]", reserved, joinPoints(w, y, u, v)))
}

// Coordinate is the placeholder parameter for a coordinate of a point in
// general position. Axis is 1 or 2.
func Coordinate(p Point, axis int) Param {
	return Param(fmt.Sprintf("%sx%d[%s]", reserved, axis, p))
}

// Invariant is a geometric quantity in canonical form, used as an
// indeterminate of expressions.
type Invariant interface {
	poly.Symbol
	// Points returns the points of the invariant in argument order.
	Points() []Point
	// Mentions is true if p is an argument of the invariant.
	Mentions(p Point) bool
}

// Area is the signed area S(A,B,C) of a triangle, canonical with A < B < C.
type Area struct {
	A, B, C Point
}

// Key implements poly.Symbol.
func (s Area) Key() string {
	return keyArea + joinPoints(s.A, s.B, s.C)
}

func (s Area) String() string {
	return "S(" + joinPoints(s.A, s.B, s.C) + ")"
}

// Points returns A, B, C.
func (s Area) Points() []Point {
	return []Point{s.A, s.B, s.C}
}

// Mentions is true if p is one of A, B, C.
func (s Area) Mentions(p Point) bool {
	return s.A == p || s.B == p || s.C == p
}

// Pythagoras is the Pythagoras difference P(A,B,C) = AB² + CB² - AC². In
// canonical form A < C, or A = C < B for P(A,B,A) = 2·AB².
type Pythagoras struct {
	A, B, C Point
}

// Key implements poly.Symbol.
func (p Pythagoras) Key() string {
	return keyPythagoras + joinPoints(p.A, p.B, p.C)
}

func (p Pythagoras) String() string {
	return "P(" + joinPoints(p.A, p.B, p.C) + ")"
}

// Points returns A, B, C.
func (p Pythagoras) Points() []Point {
	return []Point{p.A, p.B, p.C}
}

// Mentions is true if q is one of A, B, C.
func (p Pythagoras) Mentions(q Point) bool {
	return p.A == q || p.B == q || p.C == q
}

// Ratio is the signed ratio AB/CD of parallel segments, canonical with A < B
// and C < D.
type Ratio struct {
	A, B, C, D Point
}

// Key implements poly.Symbol.
func (r Ratio) Key() string {
	return keyRatio + joinPoints(r.A, r.B, r.C, r.D)
}

func (r Ratio) String() string {
	return "R(" + joinPoints(r.A, r.B, r.C, r.D) + ")"
}

// Points returns A, B, C, D.
func (r Ratio) Points() []Point {
	return []Point{r.A, r.B, r.C, r.D}
}

// Mentions is true if p is one of A, B, C, D.
func (r Ratio) Mentions(p Point) bool {
	return r.A == p || r.B == p || r.C == p || r.D == p
}

// Length is the signed length AB of a segment on a line with a fixed
// direction, canonical with A < B. Lengths occur in two-line coordinates
// only.
type Length struct {
	A, B Point
}

// Key implements poly.Symbol.
func (l Length) Key() string {
	return keyLength + joinPoints(l.A, l.B)
}

func (l Length) String() string {
	return "L(" + joinPoints(l.A, l.B) + ")"
}

// Points returns A, B.
func (l Length) Points() []Point {
	return []Point{l.A, l.B}
}

// Mentions is true if p is one of A, B.
func (l Length) Mentions(p Point) bool {
	return l.A == p || l.B == p
}

// LineConstant is a constant of a pair of lines in two-line coordinates.
type LineConstant int8

// Line constants. Alpha is the signed distance of two parallel lines, Beta
// the sine of the angle between two intersecting lines.
const (
	Alpha LineConstant = iota + 1
	Beta
)

// Key implements poly.Symbol.
func (c LineConstant) Key() string {
	return keyLineConst + c.String()
}

func (c LineConstant) String() string {
	if c == Beta {
		return "β"
	}
	return "α"
}

// --- Canonicalizing constructors ---------------------------------------------

// S returns the signed area of triangle ABC in canonical form.
func S(a, b, c Point) Expr {
	pts := []Point{a, b, c}
	sign := sortParity(pts)
	if sign == 0 {
		return Zero()
	}
	e := poly.FracVar(Area{pts[0], pts[1], pts[2]})
	if sign < 0 {
		return e.Neg()
	}
	return e
}

// S4 returns the signed area of quadrilateral ABCD, S(A,B,C) + S(A,C,D).
func S4(a, b, c, d Point) Expr {
	return S(a, b, c).Add(S(a, c, d))
}

// P returns the Pythagoras difference P(A,B,C) in canonical form.
func P(a, b, c Point) Expr {
	if a == c {
		if a == b {
			return Zero()
		}
		if b < a {
			a, b = b, a
		}
		return poly.FracVar(Pythagoras{a, b, a})
	}
	if a == b || c == b {
		return Zero()
	}
	if c < a {
		a, c = c, a
	}
	return poly.FracVar(Pythagoras{a, b, c})
}

// P4 returns the Pythagoras difference of quadrilateral ABCD,
// P(A,B,D) - P(C,B,D).
func P4(a, b, c, d Point) Expr {
	return P(a, b, d).Sub(P(c, b, d))
}

// R returns the signed ratio AB/CD in canonical form. C = D is a degenerate
// division.
func R(a, b, c, d Point) (Expr, error) {
	switch {
	case c == d:
		return Zero(), fmt.Errorf("%w: ratio %s%s/%s%s", ErrDegenerate, a, b, c, d)
	case a == b:
		return Zero(), nil
	case a == c && b == d:
		return One(), nil
	case a == d && b == c:
		return Num(-1), nil
	}
	sign := 1
	if b < a {
		a, b = b, a
		sign = -sign
	}
	if d < c {
		c, d = d, c
		sign = -sign
	}
	e := poly.FracVar(Ratio{a, b, c, d})
	if sign < 0 {
		return e.Neg(), nil
	}
	return e, nil
}

// L returns the signed length AB in canonical form.
func L(a, b Point) Expr {
	switch {
	case a == b:
		return Zero()
	case b < a:
		return poly.FracVar(Length{b, a}).Neg()
	}
	return poly.FracVar(Length{a, b})
}

// Const returns a line constant as an expression.
func Const(c LineConstant) Expr {
	return poly.FracVar(c)
}

// Canonical returns the canonical expression of an invariant given with
// arbitrary argument order. For canonical invariants it is the identity.
func Canonical(inv Invariant) (Expr, error) {
	switch i := inv.(type) {
	case Area:
		return S(i.A, i.B, i.C), nil
	case Pythagoras:
		return P(i.A, i.B, i.C), nil
	case Ratio:
		return R(i.A, i.B, i.C, i.D)
	case Length:
		return L(i.A, i.B), nil
	}
	return Zero(), Unsupported("invariant %v", inv)
}
