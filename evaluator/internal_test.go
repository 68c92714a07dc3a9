package evaluator

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/construct"
	"github.com/npillmayer/areamethod/ecs"
	"github.com/npillmayer/areamethod/poly"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestClosureIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	exprs := map[Flavor]am.Expr{
		FlavorPlane:  am.P("A", "B", "D").Mul(am.S("B", "C", "D")).Add(am.S("A", "B", "C").Mul(am.S("A", "B", "C"))),
		FlavorAffine: am.S("A", "C", "D").Mul(am.S("B", "C", "D")),
	}
	for flavor, e := range exprs {
		c := newCoordinates(flavor, am.Points("A", "B", "C"))
		once, err := c.close(e)
		require.NoError(t, err)
		twice, err := c.close(once)
		require.NoError(t, err)
		if !once.Equal(twice) {
			t.Errorf("%v closure not idempotent: %s vs. %s", flavor, once, twice)
		}
	}
}

func TestChooseBasis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	assert.Equal(t, am.Points("A", "B", "C"), chooseBasis(am.S("D", "C", "B").Add(am.S("A", "B", "C"))))
	ratio, err := am.R("X", "Y", "X", "Z")
	require.NoError(t, err)
	basis := chooseBasis(am.P("Y", "X", "Y").Add(ratio))
	assert.Equal(t, am.Points("X", "Y", "Z"), basis)
	assert.Equal(t, []am.Point{"A", "B", am.PlaceholderO}, chooseBasis(am.P("A", "B", "A")))
	assert.Equal(t, []am.Point{am.PlaceholderO, am.PlaceholderU, am.PlaceholderV}, chooseBasis(am.Num(7)))
}

func TestStrictPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Midpoint{Y: "M", P: "A", Q: "B"},
		construct.Midpoint{Y: "N", P: "M", Q: "C"},
	}
	steps, err := ecs.Lower(seq, true, nil)
	require.NoError(t, err)
	assert.NoError(t, strictPrefix(steps, 1, am.Collinear{A: "M", B: "A", C: "C"}))
	err = strictPrefix(steps, 1, am.Collinear{A: "N", B: "A", C: "C"})
	assert.True(t, errors.Is(err, am.ErrIncomplete))
	err = strictPrefix(steps, 0, am.EqPoints{A: "M", B: "C"})
	assert.True(t, errors.Is(err, am.ErrIncomplete))
	for i, s := range steps {
		assert.NoError(t, strictPrefix(steps, i, s.NDG()))
	}
}

// Every side condition of ratio lemmas and every degeneracy check is proven
// on a strict prefix of the steps.
func TestProofsOnStrictPrefixes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	memo := NewMemo()
	seq := []construct.Construction{
		construct.Inter{Y: "D", Obj1: construct.Line{U: "A", V: "P"}, Obj2: construct.Line{U: "B", V: "C"}},
		construct.Inter{Y: "E", Obj1: construct.Line{U: "B", V: "P"}, Obj2: construct.Line{U: "C", V: "A"}},
	}
	ratio, err := am.R("B", "D", "D", "C")
	require.NoError(t, err)
	other, err := am.R("C", "E", "E", "A")
	require.NoError(t, err)
	_, err = Plane(seq, Expression(ratio.Mul(other)), WithMemo(memo))
	require.NoError(t, err)
	require.True(t, memo.Len() > 0)
	for _, key := range memo.Keys() {
		// E is constructed last, sub-proofs never see it
		if strings.Contains(key, "LineInter(E,") {
			t.Errorf("proof over the full sequence: %s", key)
		}
	}
}

func TestCombinationLemmas(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	mid := ecs.PRatio{Y: "M", W: "A", U: "A", V: "B", R: am.Fraction(1, 2)}
	c, ok, err := combinationOf(mid)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, am.Points("A", "B"), c.pts)
	v, err := areaLemma(mid, am.Area{A: "C", B: "D", C: "M"})
	require.NoError(t, err)
	half := am.Fraction(1, 2)
	assert.True(t, v.Equal(half.Mul(am.S("C", "D", "A")).Add(half.Mul(am.S("C", "D", "B")))))
	// |CM|² by the quadratic lemma: Apollonius
	v, err = pythagorasLemma(mid, am.Pythagoras{A: "C", B: "M", C: "C"})
	require.NoError(t, err)
	expected := half.Mul(am.P("C", "A", "C")).Add(half.Mul(am.P("C", "B", "C"))).Sub(am.Fraction(1, 4).Mul(am.P("A", "B", "A")))
	assert.True(t, v.Equal(expected), "got %s", v)
	//
	_, ok, err = combinationOf(ecs.TRatio{Y: "Y", P: "P", Q: "Q", R: am.One()})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMaxRounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Inter{Y: "F", Obj1: construct.Line{U: "C", V: "P"}, Obj2: construct.Line{U: "A", V: "B"}},
	}
	ratio, err := am.R("A", "F", "F", "B")
	require.NoError(t, err)
	_, err = Affine(seq, Expression(ratio), WithMaxRounds(1))
	assert.True(t, errors.Is(err, am.ErrIncomplete), "Y in numerator and denominator needs two rounds")
	_, err = Affine(seq, Expression(ratio), WithMaxRounds(2))
	assert.NoError(t, err)
}

// A lemma handing back its invariant unchanged must not spin until the
// round limit.
func TestStalledElimination(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{construct.Midpoint{Y: "M", P: "A", Q: "B"}}
	steps, err := ecs.Lower(seq, false, nil)
	require.NoError(t, err)
	for _, b := range []Backend{BackendSubstitution, BackendPrem} {
		ev, err := newEvaluator(FlavorAffine, []Option{WithBackend(b)})
		require.NoError(t, err)
		calls := 0
		ev.rewrite = func(steps []ecs.Step, i int, inv am.Invariant) (am.Expr, error) {
			calls++
			return poly.FracVar(inv), nil
		}
		_, _, err = ev.evaluate(steps, am.S("M", "B", "C"))
		if !errors.Is(err, am.ErrIncomplete) || !strings.Contains(err.Error(), "no progress") {
			t.Errorf("%v: expected elimination to stall, got %v", b, err)
		}
		assert.Equal(t, 1, calls, "%v: stall detected after the first round", b)
	}
}

func TestRecoverInconsistentArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	err := recovered(fmt.Errorf("%w: gcd does not divide", poly.ErrInconsistent))
	assert.True(t, errors.Is(err, am.ErrIncomplete), "got %v", err)
	assert.False(t, errors.Is(err, poly.ErrInconsistent), "only the message is kept")
	assert.Panics(t, func() { _ = recovered("index out of range") })
	assert.Panics(t, func() { _ = recovered(errors.New("other")) })
}

func TestDebugLevelShared(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	tracer().SetTraceLevel(tracing.LevelInfo)
	first := debugOn()
	second := debugOn()
	first()
	assert.Equal(t, tracing.LevelDebug, tracer().GetTraceLevel(), "second call still debugging")
	second()
	assert.Equal(t, tracing.LevelInfo, tracer().GetTraceLevel())
	//
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := Plane(nil, Expression(am.S("A", "B", "C")), WithDebug(true))
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, tracing.LevelInfo, tracer().GetTraceLevel(), "level restored after concurrent calls")
	assert.Equal(t, 0, debugging.active)
}

func TestCircleRatioBranches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	ev, err := newEvaluator(FlavorPlane, nil)
	require.NoError(t, err)
	step := ecs.CircleInter{Y: "Y", U: "A", V: "B", O: "O"}
	steps := []ecs.Step{step}
	// X off line AB: co-side theorem
	v, err := ev.ratio(steps, 0, "X", "C", "D")
	require.NoError(t, err)
	expected, err := quo(am.S("X", "A", "B"), am.S4("C", "A", "D", "B"))
	require.NoError(t, err)
	assert.True(t, v.Equal(expected), "XY/CD = %s", v)
	// A on line AB: the circle ratio
	v, err = ev.ratio(steps, 0, "A", "C", "D")
	require.NoError(t, err)
	tt, err := circleRatio(step)
	require.NoError(t, err)
	cd, err := am.R("C", "D", "A", "B")
	require.NoError(t, err)
	expected, err = quo(tt, cd)
	require.NoError(t, err)
	assert.True(t, v.Equal(expected), "AY/CD = %s", v)
}
