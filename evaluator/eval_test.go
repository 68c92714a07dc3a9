package evaluator_test

import (
	"errors"
	"sort"
	"testing"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/construct"
	"github.com/npillmayer/areamethod/evaluator"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMidpointTriangle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Midpoint{Y: "D", P: "B", Q: "C"},
		construct.Midpoint{Y: "E", P: "C", Q: "A"},
		construct.Midpoint{Y: "F", P: "A", Q: "B"},
	}
	obj := quotient(t, am.S("D", "E", "F"), am.S("A", "B", "C"))
	for _, run := range []func([]construct.Construction, evaluator.Objective, ...evaluator.Option) (evaluator.Result, error){
		evaluator.Affine, evaluator.Plane,
	} {
		r, err := run(seq, evaluator.Expression(obj))
		require.NoError(t, err)
		if !r.Value.Equal(am.Fraction(1, 4)) {
			t.Errorf("expected S(DEF)/S(ABC) = 1/4, got %s", r.Value)
		}
	}
}

func TestCentroid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{construct.Centroid{Y: "G", A: "A", B: "B", C: "C"}}
	r, err := evaluator.Affine(seq, evaluator.Expression(quotient(t, am.S("G", "B", "C"), am.S("A", "B", "C"))))
	require.NoError(t, err)
	assert.True(t, r.Value.Equal(am.Fraction(1, 3)), "got %s", r.Value)
}

func TestMidlineTheorem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Midpoint{Y: "D", P: "A", Q: "B"},
		construct.Midpoint{Y: "E", P: "A", Q: "C"},
	}
	r, err := evaluator.Affine(seq, evaluator.Statement(am.Parallel{A: "D", B: "E", C: "B", D: "C"}))
	require.NoError(t, err)
	assert.True(t, r.Proved)
	assert.Equal(t, am.True, r.Truth)
	//
	ratio, err := am.R("D", "E", "B", "C")
	require.NoError(t, err)
	r, err = evaluator.Affine(seq, evaluator.Expression(ratio))
	require.NoError(t, err)
	assert.True(t, r.Value.Equal(am.Fraction(1, 2)), "DE/BC = %s", r.Value)
	//
	r, err = evaluator.Affine(seq, evaluator.Statement(am.Collinear{A: "D", B: "E", C: "B"}))
	require.NoError(t, err)
	assert.Equal(t, am.False, r.Truth)
}

func TestMenelaus(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.LRatio{Y: "D", P: "B", Q: "C", R: am.Var("r")},
		construct.LRatio{Y: "E", P: "C", Q: "A", R: am.Var("s")},
		construct.Inter{Y: "F", Obj1: construct.Line{U: "D", V: "E"}, Obj2: construct.Line{U: "A", V: "B"}},
	}
	product := ratioProduct(t, [][4]am.Point{{"A", "F", "F", "B"}, {"B", "D", "D", "C"}, {"C", "E", "E", "A"}})
	for _, backend := range []evaluator.Backend{evaluator.BackendSubstitution, evaluator.BackendPrem} {
		r, err := evaluator.Affine(seq, evaluator.Expression(product), evaluator.WithBackend(backend))
		require.NoError(t, err)
		assert.True(t, r.Value.Equal(am.Num(-1)), "%v backend: got %s", backend, r.Value)
	}
}

func TestGaussLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Inter{Y: "E", Obj1: construct.Line{U: "A", V: "B"}, Obj2: construct.Line{U: "C", V: "D"}},
		construct.Inter{Y: "F", Obj1: construct.Line{U: "A", V: "D"}, Obj2: construct.Line{U: "B", V: "C"}},
		construct.Midpoint{Y: "L", P: "A", Q: "C"},
		construct.Midpoint{Y: "M", P: "B", Q: "D"},
		construct.Midpoint{Y: "N", P: "E", Q: "F"},
	}
	for _, backend := range []evaluator.Backend{evaluator.BackendSubstitution, evaluator.BackendPrem} {
		r, err := evaluator.Affine(seq, evaluator.Expression(am.S("L", "M", "N")), evaluator.WithBackend(backend))
		require.NoError(t, err)
		assert.True(t, r.Value.IsZero(), "%v backend: got %s", backend, r.Value)
	}
}

// Cevians through the points dividing the sides in ratio r enclose a
// triangle of relative area (2r-1)²/(r²-r+1).
func TestCevianTriangle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	cevians := func(r am.Expr) []construct.Construction {
		return []construct.Construction{
			construct.LRatio{Y: "D", P: "B", Q: "C", R: r},
			construct.LRatio{Y: "E", P: "C", Q: "A", R: r},
			construct.LRatio{Y: "F", P: "A", Q: "B", R: r},
			construct.Inter{Y: "X", Obj1: construct.Line{U: "A", V: "D"}, Obj2: construct.Line{U: "B", V: "E"}},
			construct.Inter{Y: "Y", Obj1: construct.Line{U: "B", V: "E"}, Obj2: construct.Line{U: "C", V: "F"}},
			construct.Inter{Y: "Z", Obj1: construct.Line{U: "C", V: "F"}, Obj2: construct.Line{U: "A", V: "D"}},
		}
	}
	obj := evaluator.Expression(quotient(t, am.S("X", "Y", "Z"), am.S("A", "B", "C")))
	r, err := evaluator.Affine(cevians(am.Fraction(1, 3)), obj)
	require.NoError(t, err)
	assert.True(t, r.Value.Equal(am.Fraction(1, 7)), "got %s", r.Value)
	//
	x := am.Var("r")
	num := am.Num(2).Mul(x).Sub(am.One())
	num = num.Mul(num)
	den := x.Mul(x).Sub(x).Add(am.One())
	r, err = evaluator.Affine(cevians(x), obj)
	require.NoError(t, err)
	assert.True(t, r.Value.Equal(quotient(t, num, den)), "got %s", r.Value)
}

func TestCeva(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Inter{Y: "D", Obj1: construct.Line{U: "A", V: "P"}, Obj2: construct.Line{U: "B", V: "C"}},
		construct.Inter{Y: "E", Obj1: construct.Line{U: "B", V: "P"}, Obj2: construct.Line{U: "C", V: "A"}},
		construct.Inter{Y: "F", Obj1: construct.Line{U: "C", V: "P"}, Obj2: construct.Line{U: "A", V: "B"}},
	}
	product := ratioProduct(t, [][4]am.Point{{"A", "F", "F", "B"}, {"B", "D", "D", "C"}, {"C", "E", "E", "A"}})
	r, err := evaluator.Plane(seq, evaluator.Expression(product))
	require.NoError(t, err)
	assert.True(t, r.Value.Equal(am.One()), "got %s", r.Value)
}

func TestOrthocenter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Foot{Y: "D", P: "A", U: "B", V: "C"},
		construct.Foot{Y: "E", P: "B", U: "A", V: "C"},
		construct.Inter{Y: "H", Obj1: construct.Line{U: "A", V: "D"}, Obj2: construct.Line{U: "B", V: "E"}},
	}
	r, err := evaluator.Plane(seq, evaluator.Statement(am.Perpendicular{A: "C", B: "H", C: "A", D: "B"}))
	require.NoError(t, err)
	assert.Equal(t, am.True, r.Truth)
	//
	seq = []construct.Construction{construct.Orthocenter{Y: "H", A: "A", B: "B", C: "C"}}
	r, err = evaluator.Plane(seq, evaluator.Statement(am.Perpendicular{A: "A", B: "H", C: "B", D: "C"}))
	require.NoError(t, err)
	assert.Equal(t, am.True, r.Truth)
}

func TestCircumcenter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{construct.Circumcenter{Y: "O", A: "A", B: "B", C: "C"}}
	stmt := am.All{
		am.EqDistance{A: "O", B: "A", C: "O", D: "B"},
		am.EqDistance{A: "O", B: "A", C: "O", D: "C"},
	}
	r, err := evaluator.Plane(seq, evaluator.Statement(stmt))
	require.NoError(t, err)
	assert.Equal(t, am.True, r.Truth)
}

func TestCircleIntersections(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Inter{Y: "Y", Obj1: construct.Line{U: "A", V: "B"}, Obj2: construct.Circle{O: "O", A: "A"}},
	}
	r, err := evaluator.Plane(seq, evaluator.Statement(am.All{
		am.EqDistance{A: "O", B: "Y", C: "O", D: "A"},
		am.Collinear{A: "A", B: "B", C: "Y"},
	}))
	require.NoError(t, err)
	assert.Equal(t, am.True, r.Truth)
	//
	seq = []construct.Construction{
		construct.Inter{Y: "Y", Obj1: construct.Circle{O: "O", A: "A"}, Obj2: construct.Circle{O: "P", A: "A"}},
	}
	r, err = evaluator.Plane(seq, evaluator.Statement(am.All{
		am.EqDistance{A: "O", B: "Y", C: "O", D: "A"},
		am.EqDistance{A: "P", B: "Y", C: "P", D: "A"},
	}))
	require.NoError(t, err)
	assert.Equal(t, am.True, r.Truth)
}

// A foot of a perpendicular is the intersection of the base line with the
// perpendicular through the point.
func TestFootAgreesWithIntersection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Foot{Y: "F", P: "P", U: "U", V: "V"},
		construct.Inter{Y: "G", Obj1: construct.Line{U: "U", V: "V"}, Obj2: construct.TLine{W: "P", U: "U", V: "V"}},
	}
	r, err := evaluator.Plane(seq, evaluator.Statement(am.EqPoints{A: "F", B: "G"}))
	require.NoError(t, err)
	assert.Equal(t, am.True, r.Truth)
}

func TestApollonius(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{construct.Midpoint{Y: "M", P: "B", Q: "C"}}
	half, quarter := am.Fraction(1, 2), am.Fraction(1, 4)
	median := half.Mul(am.P("A", "B", "A")).Add(half.Mul(am.P("A", "C", "A"))).Sub(quarter.Mul(am.P("B", "C", "B")))
	r, err := evaluator.Plane(seq, evaluator.Expression(am.P("A", "M", "A").Sub(median)))
	require.NoError(t, err)
	assert.True(t, r.Value.IsZero(), "got %s", r.Value)
}

func TestTRatio(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{construct.TRatio{Y: "Y", P: "P", Q: "Q", R: am.Var("r")}}
	r, err := evaluator.Plane(seq, evaluator.Statement(am.Perpendicular{A: "P", B: "Y", C: "P", D: "Q"}))
	require.NoError(t, err)
	assert.Equal(t, am.True, r.Truth)
	//
	obj := quotient(t, am.Num(4).Mul(am.S("P", "Q", "Y")), am.P("P", "Q", "P"))
	r, err = evaluator.Plane(seq, evaluator.Expression(obj))
	require.NoError(t, err)
	assert.True(t, r.Value.Equal(am.Var("r")), "got %s", r.Value)
}

func TestEvaluatePredicate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{construct.Midpoint{Y: "M", P: "B", Q: "C"}}
	stmt := evaluator.Statement(am.Collinear{A: "A", B: "B", C: "M"})
	r, err := evaluator.Plane(seq, stmt, evaluator.WithEvaluate())
	require.NoError(t, err)
	assert.False(t, r.Proved)
	assert.Equal(t, am.Points("A", "B", "C"), r.Basis)
	assert.True(t, r.Value.Equal(am.Fraction(1, 2).Mul(am.S("A", "B", "C"))), "got %s", r.Value)
	//
	_, err = evaluator.Plane(seq, evaluator.Statement(am.All{
		am.Collinear{A: "A", B: "B", C: "M"},
		am.Collinear{A: "A", B: "C", C: "M"},
	}), evaluator.WithEvaluate())
	assert.True(t, errors.Is(err, am.ErrUnsupported))
	//
	e := am.S("A", "B", "M").Sub(am.S("A", "M", "C"))
	r, err = evaluator.Plane(seq, evaluator.Expression(e), evaluator.WithProve(true))
	require.NoError(t, err)
	assert.True(t, r.Proved)
	assert.Equal(t, am.True, r.Truth)
}

func TestDegeneracyShortCircuit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Midpoint{Y: "D", P: "B", Q: "C"},
		construct.Midpoint{Y: "E", P: "B", Q: "C"},
		construct.Inter{Y: "Y", Obj1: construct.Line{U: "A", V: "D"}, Obj2: construct.Line{U: "A", V: "E"}},
	}
	r, err := evaluator.Affine(seq, evaluator.Statement(am.EqPoints{A: "Y", B: "B"}))
	require.NoError(t, err)
	assert.Equal(t, am.True, r.Truth)
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.On{Y: "D", Obj: construct.Line{U: "B", V: "C"}},
		construct.Foot{Y: "F", P: "D", U: "A", V: "B"},
	}
	obj := evaluator.Expression(am.P("A", "F", "C").Add(am.S("F", "C", "D")))
	first, err := evaluator.Plane(seq, obj)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := evaluator.Plane(seq, obj)
		require.NoError(t, err)
		assert.Equal(t, first.Value.String(), again.Value.String())
		assert.Equal(t, first.Basis, again.Basis)
	}
}

func TestBasisInvariance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	e := quotient(t, am.P("A", "B", "D").Add(am.S("B", "C", "D")), am.S("A", "B", "C"))
	abc, err := evaluator.Plane(nil, evaluator.Expression(e), evaluator.WithBasis("A", "B", "C"))
	require.NoError(t, err)
	dcb, err := evaluator.Plane(nil, evaluator.Expression(e), evaluator.WithBasis("D", "C", "B"))
	require.NoError(t, err)
	moved, err := evaluator.Plane(nil, evaluator.Expression(abc.Value), evaluator.WithBasis("D", "C", "B"))
	require.NoError(t, err)
	if !moved.Value.Sub(dcb.Value).IsZero() {
		t.Errorf("results differ by basis: %s vs. %s", moved.Value, dcb.Value)
	}
}

// A basis chosen by the engine, placeholders included, can be handed back.
func TestPlaceholderBasis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	e := am.P("A", "B", "A")
	r, err := evaluator.Plane(nil, evaluator.Expression(e))
	require.NoError(t, err)
	require.Equal(t, []am.Point{"A", "B", am.PlaceholderO}, r.Basis)
	again, err := evaluator.Plane(nil, evaluator.Expression(e), evaluator.WithBasis(r.Basis[0], r.Basis[1], r.Basis[2]))
	require.NoError(t, err)
	assert.True(t, again.Value.Equal(r.Value), "%s vs. %s", again.Value, r.Value)
	_, err = evaluator.Plane(nil, evaluator.Expression(e), evaluator.WithBasis("A", am.PlaceholderO, am.PlaceholderO))
	assert.True(t, errors.Is(err, am.ErrMalformed), "placeholder used twice")
}

func TestBackendsAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Midpoint{Y: "M", P: "A", Q: "B"},
		construct.Foot{Y: "F", P: "C", U: "A", V: "B"},
		construct.TRatio{Y: "T", P: "M", Q: "F", R: am.Var("r")},
	}
	obj := evaluator.Expression(am.P("C", "T", "A").Sub(am.S("T", "B", "C")))
	subs, err := evaluator.Plane(seq, obj)
	require.NoError(t, err)
	prem, err := evaluator.Plane(seq, obj, evaluator.WithBackend(evaluator.BackendPrem))
	require.NoError(t, err)
	assert.True(t, subs.Value.Equal(prem.Value), "%s vs. %s", subs.Value, prem.Value)
}

func TestExtensions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	r := am.Var("r")
	seq := []construct.Construction{construct.LRatio{Y: "Y", P: "A", Q: "B", R: r}}
	ratio, err := am.R("A", "Y", "A", "B")
	require.NoError(t, err)
	res, err := evaluator.Affine(seq, evaluator.Expression(ratio.Mul(ratio)),
		evaluator.WithExtensions(r.Mul(r).Sub(am.Num(3))))
	require.NoError(t, err)
	assert.True(t, res.Value.Equal(am.Num(3)), "got %s", res.Value)
	//
	_, err = evaluator.Affine(seq, evaluator.Expression(ratio), evaluator.WithExtensions(am.S("A", "B", "C")))
	assert.True(t, errors.Is(err, am.ErrMalformed))
}

func TestMemo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	memo := evaluator.NewMemo()
	seq := []construct.Construction{
		construct.Midpoint{Y: "D", P: "A", Q: "B"},
		construct.Midpoint{Y: "E", P: "A", Q: "C"},
	}
	stmt := evaluator.Statement(am.Parallel{A: "D", B: "E", C: "B", D: "C"})
	_, err := evaluator.Affine(seq, stmt, evaluator.WithMemo(memo))
	require.NoError(t, err)
	require.True(t, memo.Len() > 0)
	hits, _ := memo.Stats()
	r, err := evaluator.Affine(seq, stmt, evaluator.WithMemo(memo))
	require.NoError(t, err)
	assert.Equal(t, am.True, r.Truth)
	again, _ := memo.Stats()
	assert.Equal(t, hits+1, again)
	assert.True(t, sort.StringsAreSorted(memo.Keys()))
	memo.Clear()
	assert.Equal(t, 0, memo.Len())
}

func TestErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	_, err := evaluator.Affine(nil, evaluator.Expression(am.P("A", "B", "C")))
	assert.True(t, errors.Is(err, am.ErrUnsupported), "Pythagoras in affine plane")
	_, err = evaluator.Affine(nil, evaluator.Statement(am.Perpendicular{A: "A", B: "B", C: "C", D: "D"}))
	assert.True(t, errors.Is(err, am.ErrUnsupported), "perpendicularity in affine plane")
	_, err = evaluator.Plane(nil, evaluator.Expression(am.S("A", "B", "$Z")))
	assert.True(t, errors.Is(err, am.ErrMalformed), "reserved point name")
	seq := []construct.Construction{construct.Midpoint{Y: "M", P: "A", Q: "B"}}
	_, err = evaluator.Plane(seq, evaluator.Expression(am.S("A", "M", "C")), evaluator.WithBasis("A", "M", "C"))
	assert.True(t, errors.Is(err, am.ErrMalformed), "basis point not free")
}

func quotient(t *testing.T, a, b am.Expr) am.Expr {
	q, err := a.Quo(b)
	require.NoError(t, err)
	return q
}

func ratioProduct(t *testing.T, ratios [][4]am.Point) am.Expr {
	product := am.One()
	for _, r := range ratios {
		e, err := am.R(r[0], r[1], r[2], r[3])
		require.NoError(t, err)
		product = product.Mul(e)
	}
	return product
}
