package areamethod

import (
	"math/big"

	"github.com/npillmayer/areamethod/poly"
)

// Expr is an expression over parameters and invariants: a rational function
// in canonical form. Structural equality (Equal) is algebraic equality.
type Expr = poly.Frac

// Zero returns the expression 0.
func Zero() Expr {
	return poly.Frac{}
}

// One returns the expression 1.
func One() Expr {
	return poly.FracInt(1)
}

// Num returns the integer constant n.
func Num(n int64) Expr {
	return poly.FracInt(n)
}

// Fraction returns the rational constant a/b.
func Fraction(a, b int64) Expr {
	return poly.FracRat(a, b)
}

// Rational returns a big.Rat constant.
func Rational(c *big.Rat) Expr {
	return poly.FracConst(c)
}

// Var returns parameter p as an expression.
func Var(p Param) Expr {
	return poly.FracVar(p)
}

// Invariants returns the invariants occuring in e, ordered by key.
func Invariants(e Expr) []Invariant {
	var invs []Invariant
	for _, s := range e.Symbols() {
		if inv, ok := s.(Invariant); ok {
			invs = append(invs, inv)
		}
	}
	return invs
}

// Params returns the parameters occuring in e, ordered by name.
func Params(e Expr) []Param {
	var params []Param
	for _, s := range e.Symbols() {
		if p, ok := s.(Param); ok {
			params = append(params, p)
		}
	}
	return params
}

// Mentions is true if an invariant of e has p as an argument.
func Mentions(e Expr, p Point) bool {
	for _, inv := range Invariants(e) {
		if inv.Mentions(p) {
			return true
		}
	}
	return false
}

// PointsOf returns the points occuring in invariants of e, in global order.
func PointsOf(e Expr) []Point {
	seen := make(map[Point]bool)
	var pts []Point
	for _, inv := range Invariants(e) {
		for _, p := range inv.Points() {
			if !seen[p] {
				seen[p] = true
				pts = append(pts, p)
			}
		}
	}
	SortPoints(pts)
	return pts
}
