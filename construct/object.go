package construct

import (
	"fmt"

	am "github.com/npillmayer/areamethod"
)

// Object is a geometric locus a point may be put on: a line-like object or a
// circle.
type Object interface {
	// Points returns the defining points.
	Points() []am.Point
	// Metric is true if the object needs the metric plane.
	Metric() bool
	// Degenerate returns the condition under which the object collapses.
	Degenerate() am.Predicate
	String() string
	validate() error
}

// Line is the line through U and V.
type Line struct {
	U, V am.Point
}

// PLine is the line through W parallel to UV.
type PLine struct {
	W, U, V am.Point
}

// TLine is the line through W perpendicular to UV.
type TLine struct {
	W, U, V am.Point
}

// BLine is the perpendicular bisector of UV.
type BLine struct {
	U, V am.Point
}

// ALine is the line through P forming with PQ the angle UWV.
type ALine struct {
	P, Q, W, U, V am.Point
}

// Circle is the circle with center O through A.
type Circle struct {
	O, A am.Point
}

// Points returns U, V.
func (l Line) Points() []am.Point { return []am.Point{l.U, l.V} }

// Points returns W, U, V.
func (l PLine) Points() []am.Point { return []am.Point{l.W, l.U, l.V} }

// Points returns W, U, V.
func (l TLine) Points() []am.Point { return []am.Point{l.W, l.U, l.V} }

// Points returns U, V.
func (l BLine) Points() []am.Point { return []am.Point{l.U, l.V} }

// Points returns P, Q, W, U, V.
func (l ALine) Points() []am.Point { return []am.Point{l.P, l.Q, l.W, l.U, l.V} }

// Points returns O, A.
func (c Circle) Points() []am.Point { return []am.Point{c.O, c.A} }

func (Line) Metric() bool   { return false }
func (PLine) Metric() bool  { return false }
func (TLine) Metric() bool  { return true }
func (BLine) Metric() bool  { return true }
func (ALine) Metric() bool  { return true }
func (Circle) Metric() bool { return true }

func (l Line) Degenerate() am.Predicate  { return am.EqPoints{A: l.U, B: l.V} }
func (l PLine) Degenerate() am.Predicate { return am.EqPoints{A: l.U, B: l.V} }
func (l TLine) Degenerate() am.Predicate { return am.EqPoints{A: l.U, B: l.V} }
func (l BLine) Degenerate() am.Predicate { return am.EqPoints{A: l.U, B: l.V} }
func (c Circle) Degenerate() am.Predicate {
	return am.EqPoints{A: c.O, B: c.A}
}
func (l ALine) Degenerate() am.Predicate {
	return am.Any{
		am.EqPoints{A: l.P, B: l.Q},
		am.EqPoints{A: l.W, B: l.U},
		am.EqPoints{A: l.W, B: l.V},
	}
}

func (l Line) String() string  { return fmt.Sprintf("Line(%s, %s)", l.U, l.V) }
func (l PLine) String() string { return fmt.Sprintf("PLine(%s, %s, %s)", l.W, l.U, l.V) }
func (l TLine) String() string { return fmt.Sprintf("TLine(%s, %s, %s)", l.W, l.U, l.V) }
func (l BLine) String() string { return fmt.Sprintf("BLine(%s, %s)", l.U, l.V) }
func (l ALine) String() string {
	return fmt.Sprintf("ALine(%s, %s, %s, %s, %s)", l.P, l.Q, l.W, l.U, l.V)
}
func (c Circle) String() string { return fmt.Sprintf("Circle(%s, %s)", c.O, c.A) }

func (l Line) validate() error  { return distinct(l, l.U, l.V) }
func (l PLine) validate() error { return distinct(l, l.U, l.V) }
func (l TLine) validate() error { return distinct(l, l.U, l.V) }
func (l BLine) validate() error { return distinct(l, l.U, l.V) }
func (c Circle) validate() error {
	return distinct(c, c.O, c.A)
}
func (l ALine) validate() error {
	if err := distinct(l, l.P, l.Q); err != nil {
		return err
	}
	if err := distinct(l, l.W, l.U); err != nil {
		return err
	}
	return distinct(l, l.W, l.V)
}

// direction describes the direction of a line-like object by a point pair,
// possibly rotated by 90 degrees. ALine has no such description.
type direction struct {
	a, b    am.Point
	rotated bool
}

func directionOf(obj Object) (direction, bool) {
	switch o := obj.(type) {
	case Line:
		return direction{a: o.U, b: o.V}, true
	case PLine:
		return direction{a: o.U, b: o.V}, true
	case TLine:
		return direction{a: o.U, b: o.V, rotated: true}, true
	case BLine:
		return direction{a: o.U, b: o.V, rotated: true}, true
	}
	return direction{}, false
}

// parallelism returns the condition for two line-like objects being parallel.
func parallelism(d1, d2 direction) am.Predicate {
	if d1.rotated == d2.rotated {
		return am.Parallel{A: d1.a, B: d1.b, C: d2.a, D: d2.b}
	}
	return am.Perpendicular{A: d1.a, B: d1.b, C: d2.a, D: d2.b}
}

// distinct checks that the given points of an object or construction are
// pairwise distinct.
func distinct(what fmt.Stringer, pts ...am.Point) error {
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			if pts[i] == pts[j] {
				return am.Malformed("%v: point %s used twice", what, pts[i])
			}
		}
	}
	return nil
}
