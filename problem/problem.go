package problem

import (
	"strings"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/evaluator"
	"github.com/npillmayer/areamethod/grammar"
)

// Problem is a complete task for the engine.
type Problem struct {
	Name      string
	Flavor    evaluator.Flavor
	Scope     *Scope
	Objective evaluator.Objective
	Expect    *Expectation // optional
}

// Expectation is the expected outcome of a problem: a truth value for
// predicates, an expression for expressions.
type Expectation struct {
	Truth   am.Truth
	Value   am.Expr
	IsValue bool
}

func (x Expectation) String() string {
	if x.IsValue {
		return x.Value.String()
	}
	return x.Truth.String()
}

// ParseExpectation reads 'true', 'false', 'unknown' or an expression.
func ParseExpectation(s string) (*Expectation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return &Expectation{Truth: am.True}, nil
	case "false":
		return &Expectation{Truth: am.False}, nil
	case "unknown":
		return &Expectation{Truth: am.Unknown}, nil
	}
	e, err := grammar.ParseExpr(s)
	if err != nil {
		return nil, err
	}
	return &Expectation{Value: e, IsValue: true}, nil
}

// FromText creates a problem from a text in the problem language. The text
// has to contain exactly one prove or eval statement, which has to be the
// last one.
func FromText(name string, flavor evaluator.Flavor, text string) (*Problem, error) {
	stmts, err := grammar.Parse(text)
	if err != nil {
		return nil, err
	}
	p := &Problem{Name: name, Flavor: flavor, Scope: NewScope()}
	var objective *evaluator.Objective
	for _, s := range stmts {
		if objective != nil {
			return nil, am.Malformed("%s: statement %v after the objective", name, s)
		}
		if objective, err = p.Scope.Apply(s); err != nil {
			return nil, err
		}
	}
	if objective == nil {
		return nil, am.Malformed("%s: no prove or eval statement", name)
	}
	p.Objective = *objective
	tracer().Infof("problem %s: %d constructions, objective %v", name, len(p.Scope.Constructions()), p.Objective)
	return p, nil
}

// SetExpectation checks an expectation against the kind of objective and
// sets it.
func (p *Problem) SetExpectation(x *Expectation) error {
	if x == nil {
		p.Expect = nil
		return nil
	}
	if x.IsValue == p.Objective.IsPredicate() {
		return am.Malformed("%s: expectation %v does not fit objective %v", p.Name, x, p.Objective)
	}
	if x.IsValue {
		if err := p.Scope.Check(evaluator.Expression(x.Value)); err != nil {
			return err
		}
	}
	p.Expect = x
	return nil
}

// Run runs the engine on p. Options are applied after the options of the
// problem's scope.
func (p *Problem) Run(opts ...evaluator.Option) (evaluator.Result, error) {
	all := append(p.Scope.Options(), opts...)
	return p.run(p.Objective, all)
}

// run calls the engine in the mode of p's scope.
func (p *Problem) run(obj evaluator.Objective, opts []evaluator.Option) (evaluator.Result, error) {
	if lines := p.Scope.Lines(); lines != nil {
		return evaluator.TwoLine(p.Scope.Constructions(), obj, lines[0], lines[1], opts...)
	}
	return evaluator.Run(p.Flavor, p.Scope.Constructions(), obj, opts...)
}

// Matches compares a result with the expectation of p. Expected values are
// evaluated with the constructions of p and compared in the basis of the
// result, placeholder points included. Without an expectation every result
// matches.
func (p *Problem) Matches(r evaluator.Result) (bool, error) {
	x := p.Expect
	if x == nil {
		return true, nil
	}
	if !x.IsValue {
		return r.Proved && r.Truth == x.Truth, nil
	}
	if r.Proved { // an expression objective run in prove mode
		return r.Truth != am.Unknown && x.Value.IsZero() == (r.Truth == am.True), nil
	}
	if x.Value.Equal(r.Value) {
		return true, nil
	}
	opts := p.Scope.Options()
	if len(r.Basis) == 3 {
		opts = append(opts, evaluator.WithBasis(r.Basis[0], r.Basis[1], r.Basis[2]))
	}
	v, err := p.run(evaluator.Expression(x.Value), opts)
	if err != nil {
		return false, err
	}
	tracer().Debugf("%s: expected %v = %v, got %v", p.Name, x.Value, v.Value, r.Value)
	return v.Value.Equal(r.Value), nil
}
