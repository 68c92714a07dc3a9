package ecs

import (
	"fmt"

	am "github.com/npillmayer/areamethod"
)

// Step is an elementary construction step. Each step introduces exactly one
// point, Point(), from points constructed earlier.
type Step interface {
	Point() am.Point
	// Deps returns the points the step depends on, including the points of
	// its parameters.
	Deps() []am.Point
	// NDG is the non-degeneracy condition of the step: if it can be proven,
	// the step is meaningless.
	NDG() am.Predicate
	String() string
	isStep()
}

// PRatio constructs Y = W + R·(V-U).
type PRatio struct {
	Y, W, U, V am.Point
	R          am.Expr
	Cond       am.Predicate // inherited non-degeneracy condition, may be nil
}

// TRatio constructs Y on the perpendicular to PQ at P, with
// R = 4·S(P,Q,Y) / P(P,Q,P), i.e. Y = P + R·rot90(Q-P).
type TRatio struct {
	Y, P, Q am.Point
	R       am.Expr
	Cond    am.Predicate
}

// Foot constructs Y as the foot of the perpendicular from P to UV.
type Foot struct {
	Y, P, U, V am.Point
	Cond       am.Predicate
}

// LineInter constructs Y as the intersection of lines UV and PQ.
type LineInter struct {
	Y, U, V, P, Q am.Point
	Cond          am.Predicate
}

// CircleInter constructs Y as the second intersection of line UV with the
// circle centered at O through U.
type CircleInter struct {
	Y, U, V, O am.Point
	Cond       am.Predicate
}

// ARatio constructs Y = RO·O + RU·U + RV·V with RO + RU + RV = 1.
type ARatio struct {
	Y, O, U, V am.Point
	RO, RU, RV am.Expr
	Cond       am.Predicate
}

func (PRatio) isStep()      {}
func (TRatio) isStep()      {}
func (Foot) isStep()        {}
func (LineInter) isStep()   {}
func (CircleInter) isStep() {}
func (ARatio) isStep()      {}

func (s PRatio) Point() am.Point      { return s.Y }
func (s TRatio) Point() am.Point      { return s.Y }
func (s Foot) Point() am.Point        { return s.Y }
func (s LineInter) Point() am.Point   { return s.Y }
func (s CircleInter) Point() am.Point { return s.Y }
func (s ARatio) Point() am.Point      { return s.Y }

func (s PRatio) Deps() []am.Point    { return withParams([]am.Point{s.W, s.U, s.V}, s.R) }
func (s TRatio) Deps() []am.Point    { return withParams([]am.Point{s.P, s.Q}, s.R) }
func (s Foot) Deps() []am.Point      { return []am.Point{s.P, s.U, s.V} }
func (s LineInter) Deps() []am.Point { return []am.Point{s.U, s.V, s.P, s.Q} }
func (s CircleInter) Deps() []am.Point {
	return []am.Point{s.U, s.V, s.O}
}
func (s ARatio) Deps() []am.Point {
	return withParams([]am.Point{s.O, s.U, s.V}, s.RO, s.RU, s.RV)
}

func withParams(pts []am.Point, params ...am.Expr) []am.Point {
	for _, e := range params {
		pts = append(pts, am.PointsOf(e)...)
	}
	return pts
}

func (s PRatio) NDG() am.Predicate {
	return inherit(am.EqPoints{A: s.U, B: s.V}, s.Cond)
}

func (s TRatio) NDG() am.Predicate {
	return inherit(am.EqPoints{A: s.P, B: s.Q}, s.Cond)
}

func (s Foot) NDG() am.Predicate {
	return inherit(am.EqPoints{A: s.U, B: s.V}, s.Cond)
}

func (s LineInter) NDG() am.Predicate {
	return inherit(am.Parallel{A: s.U, B: s.V, C: s.P, D: s.Q}, s.Cond)
}

// A line through U tangent to the circle does not give a second point.
func (s CircleInter) NDG() am.Predicate {
	return inherit(am.Any{
		am.EqPoints{A: s.O, B: s.U},
		am.Perpendicular{A: s.O, B: s.U, C: s.U, D: s.V},
		am.EqPoints{A: s.U, B: s.V},
	}, s.Cond)
}

func (s ARatio) NDG() am.Predicate {
	return inherit(am.Collinear{A: s.O, B: s.U, C: s.V}, s.Cond)
}

// inherit combines the condition of a step with the condition of the
// construction it has been lowered from.
func inherit(own, cond am.Predicate) am.Predicate {
	if cond == nil || cond.String() == own.String() {
		return own
	}
	return am.Any{own, cond}
}

func (s PRatio) String() string {
	return fmt.Sprintf("PRatio(%s, %s, %s, %s, %v)", s.Y, s.W, s.U, s.V, s.R)
}

func (s TRatio) String() string {
	return fmt.Sprintf("TRatio(%s, %s, %s, %v)", s.Y, s.P, s.Q, s.R)
}

func (s Foot) String() string {
	return fmt.Sprintf("Foot(%s, %s, %s, %s)", s.Y, s.P, s.U, s.V)
}

func (s LineInter) String() string {
	return fmt.Sprintf("LineInter(%s, %s, %s, %s, %s)", s.Y, s.U, s.V, s.P, s.Q)
}

func (s CircleInter) String() string {
	return fmt.Sprintf("CircleInter(%s, %s, %s, %s)", s.Y, s.U, s.V, s.O)
}

func (s ARatio) String() string {
	return fmt.Sprintf("ARatio(%s, %s, %s, %s, %v, %v, %v)", s.Y, s.O, s.U, s.V, s.RO, s.RU, s.RV)
}

// Prefix returns the points constructed by a sequence of steps, in order.
func Prefix(steps []Step) []am.Point {
	pts := make([]am.Point, len(steps))
	for i, s := range steps {
		pts[i] = s.Point()
	}
	return pts
}
