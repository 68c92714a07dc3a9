package areamethod

import (
	"strings"
)

// Predicate is a geometric statement about points. The set of predicates is
// closed; the engine lowers each of them to expressions which have to vanish.
type Predicate interface {
	// Points returns all points the predicate talks about.
	Points() []Point
	String() string
	isPredicate()
}

// Collinear states that A, B and C lie on a common line.
type Collinear struct {
	A, B, C Point
}

// Parallel states that line AB is parallel to line CD.
type Parallel struct {
	A, B, C, D Point
}

// Perpendicular states that line AB is perpendicular to line CD.
type Perpendicular struct {
	A, B, C, D Point
}

// EqPoints states that A and B coincide.
type EqPoints struct {
	A, B Point
}

// EqDistance states that |AB| = |CD|.
type EqDistance struct {
	A, B, C, D Point
}

// Vanishes states that an expression is zero.
type Vanishes struct {
	E Expr
}

// All is the conjunction of predicates.
type All []Predicate

// Any is the disjunction of predicates.
type Any []Predicate

func (Collinear) isPredicate()     {}
func (Parallel) isPredicate()      {}
func (Perpendicular) isPredicate() {}
func (EqPoints) isPredicate()      {}
func (EqDistance) isPredicate()    {}
func (Vanishes) isPredicate()      {}
func (All) isPredicate()           {}
func (Any) isPredicate()           {}

// Points of a predicate.
func (p Collinear) Points() []Point     { return []Point{p.A, p.B, p.C} }
func (p Parallel) Points() []Point      { return []Point{p.A, p.B, p.C, p.D} }
func (p Perpendicular) Points() []Point { return []Point{p.A, p.B, p.C, p.D} }
func (p EqPoints) Points() []Point      { return []Point{p.A, p.B} }
func (p EqDistance) Points() []Point    { return []Point{p.A, p.B, p.C, p.D} }
func (p Vanishes) Points() []Point      { return PointsOf(p.E) }
func (p All) Points() []Point           { return pointsOfAll(p) }
func (p Any) Points() []Point           { return pointsOfAll(p) }

func pointsOfAll(preds []Predicate) []Point {
	var pts []Point
	for _, p := range preds {
		pts = append(pts, p.Points()...)
	}
	return pts
}

func (p Collinear) String() string {
	return "Collinear(" + joinPoints(p.A, p.B, p.C) + ")"
}

func (p Parallel) String() string {
	return "Parallel(" + joinPoints(p.A, p.B, p.C, p.D) + ")"
}

func (p Perpendicular) String() string {
	return "Perpendicular(" + joinPoints(p.A, p.B, p.C, p.D) + ")"
}

func (p EqPoints) String() string {
	return "EqPoints(" + joinPoints(p.A, p.B) + ")"
}

func (p EqDistance) String() string {
	return "EqDistance(" + joinPoints(p.A, p.B, p.C, p.D) + ")"
}

func (p Vanishes) String() string {
	return "Vanishes(" + p.E.String() + ")"
}

func (p All) String() string {
	return "All(" + joinPredicates(p) + ")"
}

func (p Any) String() string {
	return "Any(" + joinPredicates(p) + ")"
}

func joinPredicates(preds []Predicate) string {
	s := make([]string, len(preds))
	for i, p := range preds {
		s[i] = p.String()
	}
	return strings.Join(s, ", ")
}

// Truth is the outcome of a proof: true, false, or unknown if the prover could
// not decide.
type Truth int8

// Truth values.
const (
	Unknown Truth = iota
	True
	False
)

// TruthOf converts a bool.
func TruthOf(b bool) Truth {
	if b {
		return True
	}
	return False
}

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}
