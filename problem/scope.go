package problem

import (
	"fmt"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/construct"
	"github.com/npillmayer/areamethod/evaluator"
	"github.com/npillmayer/areamethod/grammar"
)

// Scope collects the declarations and constructions of a problem. Free points
// and parameters have to be declared before they are used; constructed
// points are known from their construction on.
type Scope struct {
	free       map[am.Point]bool
	introduced map[am.Point]bool
	params     map[am.Param]bool
	seq        []construct.Construction
	basis      []am.Point
	lines      [][]am.Point // two-line mode if set
	exts       []am.Expr
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{
		free:       make(map[am.Point]bool),
		introduced: make(map[am.Point]bool),
		params:     make(map[am.Param]bool),
	}
}

// Clone returns an independent copy of sc.
func (sc *Scope) Clone() *Scope {
	c := NewScope()
	for p := range sc.free {
		c.free[p] = true
	}
	for p := range sc.introduced {
		c.introduced[p] = true
	}
	for p := range sc.params {
		c.params[p] = true
	}
	c.seq = append(c.seq, sc.seq...)
	c.basis = append(c.basis, sc.basis...)
	for _, line := range sc.lines {
		c.lines = append(c.lines, append([]am.Point(nil), line...))
	}
	c.exts = append(c.exts, sc.exts...)
	return c
}

// Constructions returns the constructions in order.
func (sc *Scope) Constructions() []construct.Construction {
	return sc.seq
}

// Options returns the evaluator options for basis and extensions.
func (sc *Scope) Options() []evaluator.Option {
	var opts []evaluator.Option
	if len(sc.basis) == 3 {
		opts = append(opts, evaluator.WithBasis(sc.basis[0], sc.basis[1], sc.basis[2]))
	}
	if len(sc.exts) > 0 {
		opts = append(opts, evaluator.WithExtensions(sc.exts...))
	}
	return opts
}

// Declare adds free points.
func (sc *Scope) Declare(pts ...am.Point) error {
	for _, p := range pts {
		if err := p.Validate(); err != nil {
			return err
		}
		if sc.introduced[p] {
			return am.Malformed("point %s is already constructed", p)
		}
		sc.free[p] = true
	}
	return nil
}

// DeclareParams adds parameters.
func (sc *Scope) DeclareParams(params ...am.Param) error {
	for _, p := range params {
		if err := p.Validate(); err != nil {
			return err
		}
		sc.params[p] = true
	}
	return nil
}

// Construct appends a construction. Its point must be new and its
// dependencies known.
func (sc *Scope) Construct(c construct.Construction) error {
	if err := c.Validate(); err != nil {
		return err
	}
	y := c.Point()
	if sc.free[y] || sc.introduced[y] {
		return am.Malformed("%v: point %s already in use", c, y)
	}
	if err := sc.known(c.Deps()...); err != nil {
		return fmt.Errorf("%v: %w", c, err)
	}
	for _, e := range exprsOf(c) {
		if err := sc.knownParams(e); err != nil {
			return fmt.Errorf("%v: %w", c, err)
		}
	}
	sc.seq = append(sc.seq, c)
	sc.introduced[y] = true
	return nil
}

// SetBasis fixes the basis of the coordinate closure. Basis points have to
// be free.
func (sc *Scope) SetBasis(o, u, v am.Point) error {
	for _, p := range []am.Point{o, u, v} {
		if !sc.free[p] {
			return am.Malformed("basis point %s is not a declared free point", p)
		}
	}
	if sc.lines != nil {
		return am.Malformed("two-line mode takes no basis")
	}
	if o == u || o == v || u == v {
		return am.Malformed("basis points %s, %s, %s not distinct", o, u, v)
	}
	sc.basis = []am.Point{o, u, v}
	return nil
}

// SetLines switches to two-line mode: all free points lie on one of two
// lines, given by declared free points.
func (sc *Scope) SetLines(line1, line2 []am.Point) error {
	if sc.basis != nil {
		return am.Malformed("two-line mode takes no basis")
	}
	for _, line := range [][]am.Point{line1, line2} {
		if len(line) == 0 {
			return am.Malformed("line of two-line mode without points")
		}
		for _, p := range line {
			if !sc.free[p] {
				return am.Malformed("line point %s is not a declared free point", p)
			}
		}
	}
	sc.lines = [][]am.Point{line1, line2}
	return nil
}

// Lines returns the lines of two-line mode, or nil.
func (sc *Scope) Lines() [][]am.Point {
	return sc.lines
}

// AddExtension adds an algebraic relation f(r) = 0 for a declared parameter.
func (sc *Scope) AddExtension(minpoly am.Expr) error {
	if err := sc.knownParams(minpoly); err != nil {
		return err
	}
	if len(am.Params(minpoly)) != 1 {
		return am.Malformed("extension %s has to use exactly one parameter", minpoly)
	}
	sc.exts = append(sc.exts, minpoly)
	return nil
}

// Check verifies that all names of an objective are known.
func (sc *Scope) Check(obj evaluator.Objective) error {
	var err error
	if p := obj.Predicate(); p != nil {
		err = sc.checkPredicate(p)
	} else {
		err = sc.knownParams(obj.Expr())
	}
	if err != nil {
		return fmt.Errorf("%v: %w", obj, err)
	}
	return nil
}

// Apply executes a statement. For prove and eval statements the objective is
// returned, otherwise nil.
func (sc *Scope) Apply(s grammar.Statement) (*evaluator.Objective, error) {
	tracer().Debugf("apply %v", s)
	switch st := s.(type) {
	case grammar.PointDecl:
		return nil, sc.Declare(st.Points...)
	case grammar.ParamDecl:
		return nil, sc.DeclareParams(st.Params...)
	case grammar.Construct:
		return nil, sc.Construct(st.C)
	case grammar.Basis:
		return nil, sc.SetBasis(st.O, st.U, st.V)
	case grammar.Extension:
		return nil, sc.AddExtension(st.MinPoly)
	case grammar.Prove:
		obj := evaluator.Statement(st.Pred)
		return &obj, sc.Check(obj)
	case grammar.Eval:
		obj := evaluator.Expression(st.Expr)
		return &obj, sc.Check(obj)
	}
	return nil, am.Unsupported("statement %v", s)
}

func (sc *Scope) checkPredicate(p am.Predicate) error {
	var preds []am.Predicate
	switch q := p.(type) {
	case am.All:
		preds = q
	case am.Any:
		preds = q
	case am.Vanishes:
		return sc.knownParams(q.E)
	default:
		return sc.known(p.Points()...)
	}
	for _, sub := range preds {
		if err := sc.checkPredicate(sub); err != nil {
			return err
		}
	}
	return nil
}

func (sc *Scope) known(pts ...am.Point) error {
	for _, p := range pts {
		if !sc.free[p] && !sc.introduced[p] {
			return am.Malformed("unknown point %s", p)
		}
	}
	return nil
}

func (sc *Scope) knownParams(e am.Expr) error {
	if err := sc.known(am.PointsOf(e)...); err != nil {
		return err
	}
	for _, p := range am.Params(e) {
		if !sc.params[p] {
			return am.Malformed("undeclared parameter %s", p)
		}
	}
	return nil
}

// exprsOf returns the parameter expressions of a construction.
func exprsOf(c construct.Construction) []am.Expr {
	switch x := c.(type) {
	case construct.LRatio:
		return []am.Expr{x.R}
	case construct.MRatio:
		return []am.Expr{x.R}
	case construct.PRatio:
		return []am.Expr{x.R}
	case construct.TRatio:
		return []am.Expr{x.R}
	case construct.ARatio:
		return []am.Expr{x.RO, x.RU, x.RV}
	}
	return nil
}
