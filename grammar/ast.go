package grammar

import (
	"fmt"
	"strings"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/construct"
)

// Statement is a single statement of a problem.
type Statement interface {
	String() string
	isStatement()
}

// PointDecl declares free points.
type PointDecl struct {
	Points []am.Point
}

// ParamDecl declares parameters.
type ParamDecl struct {
	Params []am.Param
}

// Construct introduces a point by a construction.
type Construct struct {
	C construct.Construction
}

// Basis fixes the points O, U, V of the coordinate closure.
type Basis struct {
	O, U, V am.Point
}

// Extension declares an algebraic relation f(r) = 0 for a parameter r.
type Extension struct {
	MinPoly am.Expr
}

// Prove asks to prove a predicate.
type Prove struct {
	Pred am.Predicate
}

// Eval asks to evaluate an expression.
type Eval struct {
	Expr am.Expr
}

func (PointDecl) isStatement() {}
func (ParamDecl) isStatement() {}
func (Construct) isStatement() {}
func (Basis) isStatement()     {}
func (Extension) isStatement() {}
func (Prove) isStatement()     {}
func (Eval) isStatement()      {}

func (s PointDecl) String() string {
	names := make([]string, len(s.Points))
	for i, p := range s.Points {
		names[i] = string(p)
	}
	return "point " + strings.Join(names, " ")
}

func (s ParamDecl) String() string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = string(p)
	}
	return "param " + strings.Join(names, " ")
}

func (s Construct) String() string { return s.C.String() }
func (s Basis) String() string     { return fmt.Sprintf("basis %s %s %s", s.O, s.U, s.V) }
func (s Extension) String() string { return "ext " + s.MinPoly.String() }
func (s Prove) String() string     { return "prove " + s.Pred.String() }
func (s Eval) String() string      { return "eval " + s.Expr.String() }
