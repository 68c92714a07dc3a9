package construct

import (
	"fmt"

	am "github.com/npillmayer/areamethod"
)

// Construction introduces exactly one new point, defined by earlier points and
// possibly parameters. The set of constructions is closed; consumers switch
// over the concrete types.
type Construction interface {
	// Point returns the point introduced.
	Point() am.Point
	// Deps returns the points the construction depends on, including points
	// occuring in parameter expressions.
	Deps() []am.Point
	// NDG returns the non-degeneracy condition, i.e. the predicate which
	// makes the construction meaningless if it holds.
	NDG() am.Predicate
	// Metric is true if the construction needs the metric plane.
	Metric() bool
	// Validate checks the construction in isolation.
	Validate() error
	String() string
}

// On puts Y freely on an object.
type On struct {
	Y   am.Point
	Obj Object
}

// Inter is the intersection Y of two objects.
type Inter struct {
	Y          am.Point
	Obj1, Obj2 Object
}

// LRatio is the point Y on line PQ with PY = R·PQ.
type LRatio struct {
	Y, P, Q am.Point
	R       am.Expr
}

// MRatio is the point Y on line PQ with PY/YQ = R.
type MRatio struct {
	Y, P, Q am.Point
	R       am.Expr
}

// Midpoint is the midpoint Y of PQ.
type Midpoint struct {
	Y, P, Q am.Point
}

// PRatio is the point Y with WY = R·UV.
type PRatio struct {
	Y, W, U, V am.Point
	R          am.Expr
}

// TRatio is the point Y on the perpendicular to PQ through P with
// PY = R·PQ, the direction from PQ rotated counter-clockwise.
type TRatio struct {
	Y, P, Q am.Point
	R       am.Expr
}

// Foot is the foot Y of the perpendicular from P to line UV.
type Foot struct {
	Y, P, U, V am.Point
}

// ARatio is the affine combination Y = RO·O + RU·U + RV·V with RO+RU+RV = 1.
type ARatio struct {
	Y, O, U, V am.Point
	RO, RU, RV am.Expr
}

// Centroid is the centroid Y of triangle ABC.
type Centroid struct {
	Y, A, B, C am.Point
}

// Orthocenter is the orthocenter Y of triangle ABC.
type Orthocenter struct {
	Y, A, B, C am.Point
}

// Circumcenter is the circumcenter Y of triangle ABC.
type Circumcenter struct {
	Y, A, B, C am.Point
}

// Incenter introduces the vertex C such that I is the incenter of triangle
// ABC.
type Incenter struct {
	C, I, A, B am.Point
}

// Inversion is the inverse Y of Q with respect to the circle with center O
// through A.
type Inversion struct {
	Y, Q, O, A am.Point
}

// --- Introduced points -------------------------------------------------------

func (c On) Point() am.Point           { return c.Y }
func (c Inter) Point() am.Point        { return c.Y }
func (c LRatio) Point() am.Point       { return c.Y }
func (c MRatio) Point() am.Point       { return c.Y }
func (c Midpoint) Point() am.Point     { return c.Y }
func (c PRatio) Point() am.Point       { return c.Y }
func (c TRatio) Point() am.Point       { return c.Y }
func (c Foot) Point() am.Point         { return c.Y }
func (c ARatio) Point() am.Point       { return c.Y }
func (c Centroid) Point() am.Point     { return c.Y }
func (c Orthocenter) Point() am.Point  { return c.Y }
func (c Circumcenter) Point() am.Point { return c.Y }
func (c Incenter) Point() am.Point     { return c.C }
func (c Inversion) Point() am.Point    { return c.Y }

// --- Dependencies ------------------------------------------------------------

func (c On) Deps() []am.Point { return c.Obj.Points() }
func (c Inter) Deps() []am.Point {
	return append(c.Obj1.Points(), c.Obj2.Points()...)
}
func (c LRatio) Deps() []am.Point   { return withParams([]am.Point{c.P, c.Q}, c.R) }
func (c MRatio) Deps() []am.Point   { return withParams([]am.Point{c.P, c.Q}, c.R) }
func (c Midpoint) Deps() []am.Point { return []am.Point{c.P, c.Q} }
func (c PRatio) Deps() []am.Point   { return withParams([]am.Point{c.W, c.U, c.V}, c.R) }
func (c TRatio) Deps() []am.Point   { return withParams([]am.Point{c.P, c.Q}, c.R) }
func (c Foot) Deps() []am.Point     { return []am.Point{c.P, c.U, c.V} }
func (c ARatio) Deps() []am.Point {
	return withParams([]am.Point{c.O, c.U, c.V}, c.RO, c.RU, c.RV)
}
func (c Centroid) Deps() []am.Point     { return []am.Point{c.A, c.B, c.C} }
func (c Orthocenter) Deps() []am.Point  { return []am.Point{c.A, c.B, c.C} }
func (c Circumcenter) Deps() []am.Point { return []am.Point{c.A, c.B, c.C} }
func (c Incenter) Deps() []am.Point     { return []am.Point{c.I, c.A, c.B} }
func (c Inversion) Deps() []am.Point    { return []am.Point{c.Q, c.O, c.A} }

func withParams(pts []am.Point, params ...am.Expr) []am.Point {
	for _, e := range params {
		pts = append(pts, am.PointsOf(e)...)
	}
	return pts
}

// --- Non-degeneracy conditions -----------------------------------------------

func (c On) NDG() am.Predicate { return c.Obj.Degenerate() }

func (c Inter) NDG() am.Predicate {
	_, circle1 := c.Obj1.(Circle)
	_, circle2 := c.Obj2.(Circle)
	switch {
	case circle1 && circle2:
		k1, k2 := c.Obj1.(Circle), c.Obj2.(Circle)
		if common, ok := commonPoint(k1, k2); ok {
			return am.Collinear{A: k1.O, B: k2.O, C: common}
		}
		return am.Any{k1.Degenerate(), k2.Degenerate()}
	case circle1 || circle2:
		line, circle := c.Obj1, c.Obj2
		if circle1 {
			line, circle = c.Obj2, c.Obj1
		}
		return am.Any{circle.Degenerate(), line.Degenerate()}
	}
	d1, ok1 := directionOf(c.Obj1)
	d2, ok2 := directionOf(c.Obj2)
	if ok1 && ok2 {
		return parallelism(d1, d2)
	}
	return am.Any{c.Obj1.Degenerate(), c.Obj2.Degenerate()}
}

func (c LRatio) NDG() am.Predicate   { return am.EqPoints{A: c.P, B: c.Q} }
func (c MRatio) NDG() am.Predicate   { return am.EqPoints{A: c.P, B: c.Q} }
func (c Midpoint) NDG() am.Predicate { return am.EqPoints{A: c.P, B: c.Q} }
func (c PRatio) NDG() am.Predicate   { return am.EqPoints{A: c.U, B: c.V} }
func (c TRatio) NDG() am.Predicate   { return am.EqPoints{A: c.P, B: c.Q} }
func (c Foot) NDG() am.Predicate     { return am.EqPoints{A: c.U, B: c.V} }
func (c ARatio) NDG() am.Predicate   { return am.Collinear{A: c.O, B: c.U, C: c.V} }
func (c Centroid) NDG() am.Predicate { return am.Collinear{A: c.A, B: c.B, C: c.C} }
func (c Orthocenter) NDG() am.Predicate {
	return am.Collinear{A: c.A, B: c.B, C: c.C}
}
func (c Circumcenter) NDG() am.Predicate {
	return am.Collinear{A: c.A, B: c.B, C: c.C}
}
func (c Incenter) NDG() am.Predicate {
	return am.Any{
		am.Collinear{A: c.I, B: c.A, C: c.B},
		am.Perpendicular{A: c.I, B: c.A, C: c.I, D: c.B},
	}
}
func (c Inversion) NDG() am.Predicate {
	return am.Any{am.EqPoints{A: c.O, B: c.Q}, am.EqPoints{A: c.O, B: c.A}}
}

// commonPoint returns the point two circles are known to pass through.
func commonPoint(k1, k2 Circle) (am.Point, bool) {
	if k1.A == k2.A {
		return k1.A, true
	}
	return "", false
}

// --- Output ------------------------------------------------------------------

func (c On) String() string { return fmt.Sprintf("On(%s, %v)", c.Y, c.Obj) }
func (c Inter) String() string {
	return fmt.Sprintf("Inter(%s, %v, %v)", c.Y, c.Obj1, c.Obj2)
}
func (c LRatio) String() string { return fmt.Sprintf("LRatio(%s, %s, %s, %v)", c.Y, c.P, c.Q, c.R) }
func (c MRatio) String() string { return fmt.Sprintf("MRatio(%s, %s, %s, %v)", c.Y, c.P, c.Q, c.R) }
func (c Midpoint) String() string {
	return fmt.Sprintf("Midpoint(%s, %s, %s)", c.Y, c.P, c.Q)
}
func (c PRatio) String() string {
	return fmt.Sprintf("PRatio(%s, %s, %s, %s, %v)", c.Y, c.W, c.U, c.V, c.R)
}
func (c TRatio) String() string { return fmt.Sprintf("TRatio(%s, %s, %s, %v)", c.Y, c.P, c.Q, c.R) }
func (c Foot) String() string {
	return fmt.Sprintf("Foot(%s, %s, %s, %s)", c.Y, c.P, c.U, c.V)
}
func (c ARatio) String() string {
	return fmt.Sprintf("ARatio(%s, %s, %s, %s, %v, %v, %v)", c.Y, c.O, c.U, c.V, c.RO, c.RU, c.RV)
}
func (c Centroid) String() string {
	return fmt.Sprintf("Centroid(%s, %s, %s, %s)", c.Y, c.A, c.B, c.C)
}
func (c Orthocenter) String() string {
	return fmt.Sprintf("Orthocenter(%s, %s, %s, %s)", c.Y, c.A, c.B, c.C)
}
func (c Circumcenter) String() string {
	return fmt.Sprintf("Circumcenter(%s, %s, %s, %s)", c.Y, c.A, c.B, c.C)
}
func (c Incenter) String() string {
	return fmt.Sprintf("Incenter(%s, %s, %s, %s)", c.C, c.I, c.A, c.B)
}
func (c Inversion) String() string {
	return fmt.Sprintf("Inversion(%s, %s, %s, %s)", c.Y, c.Q, c.O, c.A)
}

// --- Flavor ------------------------------------------------------------------

func (c On) Metric() bool           { return c.Obj.Metric() }
func (c Inter) Metric() bool        { return c.Obj1.Metric() || c.Obj2.Metric() }
func (LRatio) Metric() bool         { return false }
func (MRatio) Metric() bool         { return false }
func (Midpoint) Metric() bool       { return false }
func (PRatio) Metric() bool         { return false }
func (TRatio) Metric() bool         { return true }
func (Foot) Metric() bool           { return true }
func (c ARatio) Metric() bool       { return usesMetric(c.RO, c.RU, c.RV) }
func (Centroid) Metric() bool       { return false }
func (Orthocenter) Metric() bool    { return true }
func (Circumcenter) Metric() bool   { return true }
func (Incenter) Metric() bool       { return true }
func (Inversion) Metric() bool      { return true }

// usesMetric is true if one of the expressions contains a Pythagoras
// difference.
func usesMetric(exprs ...am.Expr) bool {
	for _, e := range exprs {
		for _, inv := range am.Invariants(e) {
			if _, ok := inv.(am.Pythagoras); ok {
				return true
			}
		}
	}
	return false
}

// --- Validation --------------------------------------------------------------

func (c On) Validate() error {
	if err := validPoints(c, c.Y); err != nil {
		return err
	}
	if err := c.Obj.validate(); err != nil {
		return err
	}
	return notIn(c, c.Y, c.Obj.Points()...)
}

func (c Inter) Validate() error {
	if err := validPoints(c, c.Y); err != nil {
		return err
	}
	if err := c.Obj1.validate(); err != nil {
		return err
	}
	if err := c.Obj2.validate(); err != nil {
		return err
	}
	if err := notIn(c, c.Y, c.Deps()...); err != nil {
		return err
	}
	if c.Obj1 == c.Obj2 {
		return am.Malformed("%v: intersection of an object with itself", c)
	}
	return nil
}

func (c LRatio) Validate() error {
	return validate(c, []am.Point{c.Y, c.P, c.Q}, c.R)
}

func (c MRatio) Validate() error {
	if err := validate(c, []am.Point{c.Y, c.P, c.Q}, c.R); err != nil {
		return err
	}
	if c.R.Add(am.One()).IsZero() {
		return am.Malformed("%v: ratio -1 has no point", c)
	}
	return nil
}

func (c Midpoint) Validate() error {
	return validate(c, []am.Point{c.Y, c.P, c.Q})
}

func (c PRatio) Validate() error {
	if err := validPoints(c, c.Y, c.W, c.U, c.V); err != nil {
		return err
	}
	if err := distinct(c, c.U, c.V); err != nil {
		return err
	}
	return notIn(c, c.Y, c.Deps()...)
}

func (c TRatio) Validate() error {
	return validate(c, []am.Point{c.Y, c.P, c.Q}, c.R)
}

func (c Foot) Validate() error {
	if err := validPoints(c, c.Y, c.P, c.U, c.V); err != nil {
		return err
	}
	if err := distinct(c, c.U, c.V); err != nil {
		return err
	}
	return notIn(c, c.Y, c.P, c.U, c.V)
}

func (c ARatio) Validate() error {
	if err := validate(c, []am.Point{c.Y, c.O, c.U, c.V}, c.RO, c.RU, c.RV); err != nil {
		return err
	}
	if !c.RO.Add(c.RU).Add(c.RV).IsOne() {
		return am.Malformed("%v: weights do not sum up to 1", c)
	}
	return nil
}

func (c Centroid) Validate() error {
	return validate(c, []am.Point{c.Y, c.A, c.B, c.C})
}

func (c Orthocenter) Validate() error {
	return validate(c, []am.Point{c.Y, c.A, c.B, c.C})
}

func (c Circumcenter) Validate() error {
	return validate(c, []am.Point{c.Y, c.A, c.B, c.C})
}

func (c Incenter) Validate() error {
	return validate(c, []am.Point{c.C, c.I, c.A, c.B})
}

func (c Inversion) Validate() error {
	if err := validPoints(c, c.Y, c.Q, c.O, c.A); err != nil {
		return err
	}
	if err := distinct(c, c.O, c.A); err != nil {
		return err
	}
	if err := distinct(c, c.O, c.Q); err != nil {
		return err
	}
	return notIn(c, c.Y, c.Q, c.O, c.A)
}

// validate checks that all points are valid names, pairwise distinct, and
// that parameters do not refer to the introduced point (the first one).
func validate(c Construction, pts []am.Point, params ...am.Expr) error {
	if err := validPoints(c, pts...); err != nil {
		return err
	}
	if err := distinct(c, pts...); err != nil {
		return err
	}
	for _, e := range params {
		if am.Mentions(e, pts[0]) {
			return am.Malformed("%v: parameter %s refers to %s", c, e, pts[0])
		}
	}
	return nil
}

func validPoints(what fmt.Stringer, pts ...am.Point) error {
	for _, p := range pts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%v: %w", what, err)
		}
	}
	return nil
}

func notIn(what fmt.Stringer, y am.Point, pts ...am.Point) error {
	for _, p := range pts {
		if p == y {
			return am.Malformed("%v: %s depends on itself", what, y)
		}
	}
	return nil
}
