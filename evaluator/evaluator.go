package evaluator

import (
	"errors"
	"fmt"
	"sync"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/construct"
	"github.com/npillmayer/areamethod/ecs"
	"github.com/npillmayer/areamethod/poly"
	"github.com/npillmayer/schuko/tracing"
)

// Objective is what the engine works on: either an expression over
// invariants or a predicate.
type Objective struct {
	expr am.Expr
	pred am.Predicate
}

// Expression creates an objective to evaluate.
func Expression(e am.Expr) Objective {
	return Objective{expr: e}
}

// Statement creates an objective to prove.
func Statement(p am.Predicate) Objective {
	return Objective{pred: p}
}

// IsPredicate is true for objectives created by Statement.
func (o Objective) IsPredicate() bool {
	return o.pred != nil
}

// Expr returns the expression of an objective, or zero for predicates.
func (o Objective) Expr() am.Expr {
	return o.expr
}

// Predicate returns the predicate of an objective, or nil.
func (o Objective) Predicate() am.Predicate {
	return o.pred
}

func (o Objective) String() string {
	if o.pred != nil {
		return o.pred.String()
	}
	return o.expr.String()
}

func (o Objective) points() []am.Point {
	if o.pred != nil {
		return o.pred.Points()
	}
	return am.PointsOf(o.expr)
}

// Result is the outcome of a call to the engine. In prove mode, Truth holds
// the verdict; otherwise Value holds the evaluated expression, given in area
// coordinates relative to Basis.
type Result struct {
	Proved bool
	Truth  am.Truth
	Value  am.Expr
	Basis  []am.Point
}

func (r Result) String() string {
	if r.Proved {
		return r.Truth.String()
	}
	return r.Value.String()
}

// Evaluator holds the state of one top-level call: flavor, options, the memo
// table for sub-proofs and the algebraic extensions.
type Evaluator struct {
	flavor  Flavor
	opts    options
	memo    *Memo
	exts    []poly.Extension
	lines   *twoLines // two-line mode if non-nil
	rewrite lemmaFunc
}

// lemmaFunc rewrites an invariant mentioning the point of steps[i].
type lemmaFunc func(steps []ecs.Step, i int, inv am.Invariant) (am.Expr, error)

// Affine runs the engine in the affine plane.
func Affine(seq []construct.Construction, obj Objective, opts ...Option) (Result, error) {
	return Run(FlavorAffine, seq, obj, opts...)
}

// Plane runs the engine in the metric plane.
func Plane(seq []construct.Construction, obj Objective, opts ...Option) (Result, error) {
	return Run(FlavorPlane, seq, obj, opts...)
}

// Run runs the engine in a given flavor. Predicates are proven, expressions
// are evaluated, unless option WithProve says otherwise.
func Run(flavor Flavor, seq []construct.Construction, obj Objective, opts ...Option) (Result, error) {
	ev, err := newEvaluator(flavor, opts)
	if err != nil {
		return Result{}, err
	}
	return ev.call(seq, obj)
}

// call is the top-level call of the engine.
func (ev *Evaluator) call(seq []construct.Construction, obj Objective) (r Result, err error) {
	defer func() {
		if x := recover(); x != nil {
			r, err = Result{}, recovered(x)
		}
	}()
	if ev.opts.debug {
		defer debugOn()()
	}
	tracer().P("flavor", ev.mode()).Infof("%s with %d constructions, %v backend", obj, len(seq), ev.opts.backend)
	return ev.run(seq, obj)
}

// mode names the flavor of the engine, including the lines of two-line mode.
func (ev *Evaluator) mode() string {
	if ev.lines != nil {
		return "twoline" + ev.lines.String()
	}
	return ev.flavor.String()
}

// debugging counts the calls running with WithDebug. The tracer is shared
// between goroutines: the first of them switches it to debug level, the last
// one restores the level found by the first.
var debugging struct {
	sync.Mutex
	active  int
	restore func()
}

// debugOn switches the tracer to debug level and returns the function
// switching it back.
func debugOn() func() {
	debugging.Lock()
	defer debugging.Unlock()
	if debugging.active == 0 {
		level := tracer().GetTraceLevel()
		debugging.restore = func() { tracer().SetTraceLevel(level) }
		tracer().SetTraceLevel(tracing.LevelDebug)
	}
	debugging.active++
	return func() {
		debugging.Lock()
		defer debugging.Unlock()
		if debugging.active--; debugging.active == 0 {
			debugging.restore()
		}
	}
}

func newEvaluator(flavor Flavor, opts []Option) (*Evaluator, error) {
	ev := &Evaluator{flavor: flavor, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&ev.opts)
	}
	ev.rewrite = ev.lemma
	ev.memo = ev.opts.memo
	if ev.memo == nil {
		ev.memo = NewMemo()
	}
	exts, err := extensionsOf(ev.opts.extensions)
	if err != nil {
		return nil, err
	}
	ev.exts = exts
	return ev, nil
}

func (ev *Evaluator) run(seq []construct.Construction, obj Objective) (Result, error) {
	for _, p := range obj.points() {
		if err := p.Validate(); err != nil {
			return Result{}, fmt.Errorf("objective %s: %w", obj, err)
		}
	}
	steps, err := ecs.Lower(seq, ev.flavor == FlavorPlane, ev.prove)
	if err != nil {
		return Result{}, err
	}
	if err := ev.checkBasis(steps); err != nil {
		return Result{}, err
	}
	if ev.lines != nil {
		if err := ev.lines.check(steps); err != nil {
			return Result{}, err
		}
	}
	prove := obj.IsPredicate()
	if ev.opts.prove != nil {
		prove = *ev.opts.prove
	}
	if prove {
		p := obj.pred
		if p == nil {
			p = am.Vanishes{E: obj.expr}
		}
		t, err := ev.prove(steps, p)
		if err != nil {
			return Result{}, err
		}
		tracer().Infof("%s is %v", p, t)
		return Result{Proved: true, Truth: t}, nil
	}
	e := obj.expr
	if obj.pred != nil {
		if e, err = ev.predicateExpr(obj.pred); err != nil {
			return Result{}, err
		}
	}
	v, basis, err := ev.evaluate(steps, e)
	if err != nil {
		return Result{}, err
	}
	tracer().Infof("%s = %s", obj, v)
	return Result{Value: v, Basis: basis}, nil
}

// evaluate eliminates all constructed points and closes the result.
func (ev *Evaluator) evaluate(steps []ecs.Step, e am.Expr) (am.Expr, []am.Point, error) {
	if ev.flavor == FlavorAffine && usesPythagoras(e) {
		return e, nil, am.Unsupported("%s: Pythagoras difference in the affine plane", e)
	}
	e, err := ev.eliminate(steps, e)
	if err != nil {
		return e, nil, err
	}
	return ev.close(e)
}

// checkBasis checks caller supplied basis points.
func (ev *Evaluator) checkBasis(steps []ecs.Step) error {
	if ev.opts.basis == nil {
		return nil
	}
	if ev.lines != nil {
		return am.Malformed("two-line mode takes no basis")
	}
	if len(ev.opts.basis) != 3 {
		return am.Malformed("basis needs 3 points, has %d", len(ev.opts.basis))
	}
	constructed := make(map[am.Point]bool, len(steps))
	for _, p := range ecs.Prefix(steps) {
		constructed[p] = true
	}
	seen := make(map[am.Point]bool, 3)
	for _, p := range ev.opts.basis {
		if err := p.Validate(); err != nil && !isPlaceholder(p) {
			return fmt.Errorf("basis: %w", err)
		}
		if constructed[p] {
			return am.Malformed("basis point %s is not free", p)
		}
		if seen[p] {
			return am.Malformed("basis point %s used twice", p)
		}
		seen[p] = true
	}
	return nil
}

// isPlaceholder is true for the points padding a basis chosen by the
// engine. They may be handed back with WithBasis.
func isPlaceholder(p am.Point) bool {
	return p == am.PlaceholderO || p == am.PlaceholderU || p == am.PlaceholderV
}

// extensionsOf checks minimal polynomials and converts them to extensions.
func extensionsOf(minpolys []am.Expr) ([]poly.Extension, error) {
	var exts []poly.Extension
	for _, m := range minpolys {
		params := am.Params(m)
		if len(params) != 1 || len(am.Invariants(m)) > 0 || !m.Den().IsConst() {
			return nil, am.Malformed("extension %s is not a polynomial in one parameter", m)
		}
		ext, err := poly.NewExtension(m.Num(), params[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", am.ErrMalformed, err)
		}
		exts = append(exts, ext)
	}
	return exts, nil
}

// reduceExtensions reduces e modulo all algebraic extensions.
func (ev *Evaluator) reduceExtensions(e am.Expr) (am.Expr, error) {
	for _, x := range ev.exts {
		r, err := x.Reduce(e)
		if err != nil {
			return e, degenerate(err, "reducing %s by %s", e, x)
		}
		e = r
	}
	return e, nil
}

func usesPythagoras(e am.Expr) bool {
	for _, inv := range am.Invariants(e) {
		if _, ok := inv.(am.Pythagoras); ok {
			return true
		}
	}
	return false
}

// recovered turns a panic of inconsistent polynomial arithmetic into an
// ErrIncomplete error. Any other panic is passed on.
func recovered(x interface{}) error {
	if err, ok := x.(error); ok && errors.Is(err, poly.ErrInconsistent) {
		tracer().Errorf("%v", err)
		return fmt.Errorf("%w: %v", am.ErrIncomplete, err)
	}
	panic(x)
}

// degenerate wraps an algebraic error as a degenerate division.
func degenerate(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %v", am.ErrDegenerate, fmt.Sprintf(format, args...), err)
}

// quo divides expressions; a zero divisor is a degenerate configuration.
func quo(a, b am.Expr) (am.Expr, error) {
	q, err := a.Quo(b)
	if err != nil {
		return am.Zero(), degenerate(err, "%s / %s", a, b)
	}
	return q, nil
}
