package evaluator_test

import (
	"errors"
	"strings"
	"testing"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/construct"
	"github.com/npillmayer/areamethod/evaluator"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoLineZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	line1, line2 := am.Points("A", "B", "C"), am.Points("D", "E", "F")
	for _, e := range []am.Expr{am.S("A", "B", "C"), am.S("D", "E", "F")} {
		r, err := evaluator.TwoLine(nil, evaluator.Expression(e), line1, line2)
		require.NoError(t, err)
		assert.True(t, r.Value.IsZero(), "%s = %s", e, r.Value)
		assert.Nil(t, r.Basis)
	}
}

func TestTwoLineParallel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	line1, line2 := am.Points("A", "B"), am.Points("C", "D")
	half := am.Fraction(1, 2)
	alpha := am.Const(am.Alpha)
	for i, c := range []struct {
		areas   []am.Expr
		desired am.Expr
	}{
		{
			[]am.Expr{am.S("A", "C", "D"), am.S("C", "D", "A"), am.S("D", "A", "C")},
			half.Mul(alpha).Mul(am.L("C", "D")),
		},
		{
			[]am.Expr{am.S("C", "A", "B"), am.S("A", "B", "C"), am.S("B", "C", "A")},
			half.Mul(alpha).Mul(am.L("A", "B")).Neg(),
		},
	} {
		for _, s := range c.areas {
			r, err := evaluator.TwoLine(nil, evaluator.Expression(s.Sub(c.desired)), line1, line2)
			require.NoError(t, err)
			if !r.Value.IsZero() {
				t.Errorf("test %d: expected %s = %s, difference is %s", i, s, c.desired, r.Value)
			}
		}
	}
	// lengths are measured from the origins of the lines
	r, err := evaluator.TwoLine(nil, evaluator.Expression(am.S("A", "C", "D")), line1, line2)
	require.NoError(t, err)
	o2 := am.Synthetic("O", 2)
	expected := half.Mul(alpha).Mul(am.L(o2, "D").Sub(am.L(o2, "C")))
	assert.True(t, r.Value.Equal(expected), "got %s", r.Value)
}

func TestTwoLineIntersecting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	line1, line2 := am.Points("A", "B", "O"), am.Points("C", "D", "O")
	half := am.Fraction(1, 2)
	beta := am.Const(am.Beta)
	for i, c := range []struct {
		areas   []am.Expr
		desired am.Expr
	}{
		{
			[]am.Expr{am.S("A", "C", "D"), am.S("C", "D", "A"), am.S("D", "A", "C")},
			half.Mul(beta).Mul(am.L("A", "O")).Mul(am.L("C", "D")).Neg(),
		},
		{
			[]am.Expr{am.S("C", "A", "B"), am.S("A", "B", "C"), am.S("B", "C", "A")},
			half.Mul(beta).Mul(am.L("C", "O")).Mul(am.L("A", "B")),
		},
	} {
		for _, s := range c.areas {
			r, err := evaluator.TwoLine(nil, evaluator.Expression(s.Sub(c.desired)), line1, line2)
			require.NoError(t, err)
			if !r.Value.IsZero() {
				t.Errorf("test %d: expected %s = %s, difference is %s", i, s, c.desired, r.Value)
			}
		}
	}
	ratio, err := am.R("A", "B", "O", "A")
	require.NoError(t, err)
	r, err := evaluator.TwoLine(nil, evaluator.Expression(ratio), line1, line2)
	require.NoError(t, err)
	expected, err := am.L("O", "B").Sub(am.L("O", "A")).Quo(am.L("O", "A"))
	require.NoError(t, err)
	assert.True(t, r.Value.Equal(expected), "AB/OA = %s", r.Value)
}

func TestTwoLineMenelaus(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Inter{Y: "F", Obj1: construct.Line{U: "D", V: "E"}, Obj2: construct.Line{U: "A", V: "B"}},
	}
	product := ratioProduct(t, [][4]am.Point{{"C", "E", "A", "E"}, {"B", "D", "C", "D"}, {"A", "F", "B", "F"}})
	r, err := evaluator.TwoLine(seq, evaluator.Expression(product), am.Points("A", "C", "E"), am.Points("C", "B", "D"))
	require.NoError(t, err)
	assert.True(t, r.Value.Equal(am.One()), "Menelaus product is %s", r.Value)
}

func TestTwoLinePappus(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	line := func(u, v am.Point) construct.Line { return construct.Line{U: u, V: v} }
	seq := []construct.Construction{
		construct.Inter{Y: "P", Obj1: line("A1", "B"), Obj2: line("A", "B1")},
		construct.Inter{Y: "Q", Obj1: line("A1", "C"), Obj2: line("A", "C1")},
		construct.Inter{Y: "S", Obj1: line("B1", "C"), Obj2: line("B", "C1")},
		construct.Inter{Y: "T", Obj1: line("B1", "C"), Obj2: line("P", "Q")},
	}
	line1, line2 := am.Points("O", "A", "B", "C"), am.Points("O", "A1", "B1", "C1")
	rs, err := am.R("B1", "S", "C", "S")
	require.NoError(t, err)
	rt, err := am.R("B1", "T", "C", "T")
	require.NoError(t, err)
	memo := evaluator.NewMemo()
	r, err := evaluator.TwoLine(seq, evaluator.Expression(rs.Sub(rt)), line1, line2, evaluator.WithMemo(memo))
	require.NoError(t, err)
	assert.True(t, r.Value.IsZero(), "S and T differ by %s", r.Value)
	//
	r, err = evaluator.TwoLine(seq[:3], evaluator.Statement(am.Collinear{A: "P", B: "Q", C: "S"}), line1, line2,
		evaluator.WithMemo(memo))
	require.NoError(t, err)
	assert.True(t, r.Proved)
	assert.Equal(t, am.True, r.Truth, "Pappus line")
	for _, key := range memo.Keys() {
		if !strings.HasPrefix(key, "twoline[") {
			t.Errorf("sub-proof not tagged with the lines: %s", key)
		}
	}
}

func TestTwoLineErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	line1, line2 := am.Points("A", "B"), am.Points("C", "D")
	mid := []construct.Construction{construct.Midpoint{Y: "M", P: "A", Q: "C"}}
	for i, c := range []struct {
		seq          []construct.Construction
		e            am.Expr
		line1, line2 []am.Point
		opts         []evaluator.Option
		err          error
	}{
		{nil, am.S("A", "B", "C"), am.Points("A", "B", "C"), am.Points("A", "B", "D"), nil, am.ErrMalformed},
		{nil, am.S("A", "B", "C"), line1, nil, nil, am.ErrMalformed},
		{nil, am.S("A", "B", "E"), line1, line2, nil, am.ErrMalformed},
		{mid, am.S("A", "B", "M"), am.Points("A", "B", "M"), line2, nil, am.ErrMalformed},
		{nil, am.S("A", "B", "C"), line1, line2, []evaluator.Option{evaluator.WithBasis("A", "B", "C")}, am.ErrMalformed},
		{nil, am.P("A", "B", "C"), line1, line2, nil, am.ErrUnsupported},
	} {
		_, err := evaluator.TwoLine(c.seq, evaluator.Expression(c.e), c.line1, c.line2, c.opts...)
		if !errors.Is(err, c.err) {
			t.Errorf("test %d: expected error %v, got %v", i, c.err, err)
		}
	}
	// midpoint of points on different lines, equality needs a generic point
	r, err := evaluator.TwoLine(mid, evaluator.Statement(am.EqPoints{A: "M", B: "A"}), line1, line2)
	require.NoError(t, err)
	assert.Equal(t, am.False, r.Truth)
}
