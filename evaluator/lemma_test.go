package evaluator_test

import (
	"testing"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/construct"
	"github.com/npillmayer/areamethod/evaluator"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each lemma is checked against a geometric identity which reaches the same
// quantity by a different rewriting path. Identities are evaluated with both
// backends.

func TestFootLemmas(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	foot := construct.Foot{Y: "F", P: "P", U: "U", V: "V"}
	seq := []construct.Construction{foot}
	uf := ratio(t, "U", "F", "U", "V")
	fv := ratio(t, "F", "V", "U", "V")
	for i, e := range []am.Expr{
		am.P("P", "F", "U"),
		am.P("P", "F", "V"),
		am.P("P", "U", "P").Sub(am.P("P", "F", "P")).Sub(am.P("F", "U", "F")), // Pythagoras
		uf.Add(fv).Sub(am.One()),
		uf.Mul(uf).Mul(am.P("U", "V", "U")).Sub(am.P("U", "F", "U")),
	} {
		assertVanishes(t, i, seq, e)
	}
	// PF is parallel to the perpendicular UD
	seq = []construct.Construction{
		construct.TRatio{Y: "D", P: "U", Q: "V", R: am.Var("r")},
		foot,
	}
	pf := ratio(t, "P", "F", "U", "D")
	assertVanishes(t, 5, seq, pf.Mul(pf).Mul(am.P("U", "D", "U")).Sub(am.P("P", "F", "P")))
}

func TestCircleInterLemmas(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Inter{Y: "Y", Obj1: construct.Line{U: "A", V: "B"}, Obj2: construct.Circle{O: "O", A: "A"}},
		construct.Midpoint{Y: "M", P: "A", Q: "Y"},
	}
	t2 := quotient(t, am.Num(2).Mul(am.P("B", "A", "O")), am.P("A", "B", "A"))
	for i, e := range []am.Expr{
		am.P("O", "Y", "O").Sub(am.P("O", "A", "O")),
		am.S("Y", "A", "B"),
		am.P("O", "M", "A"), // the midpoint of a chord is the foot from the center
		ratio(t, "A", "Y", "A", "B").Sub(t2),
		ratio(t, "A", "M", "A", "B").Sub(t2.Mul(am.Fraction(1, 2))),
	} {
		assertVanishes(t, i, seq, e)
	}
}

func TestLineInterPythagoras(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Inter{Y: "Y", Obj1: construct.Line{U: "U", V: "V"}, Obj2: construct.Line{U: "P", V: "Q"}},
	}
	tt := ratio(t, "U", "Y", "U", "V")
	s := am.One().Sub(tt)
	// Stewart's theorem
	stewart := am.P("X", "Y", "X").Sub(s.Mul(am.P("X", "U", "X"))).Sub(tt.Mul(am.P("X", "V", "X")))
	stewart = stewart.Add(tt.Mul(s).Mul(am.P("U", "V", "U")))
	linear := am.P("X", "W", "Y").Sub(s.Mul(am.P("X", "W", "U"))).Sub(tt.Mul(am.P("X", "W", "V")))
	assertVanishes(t, 0, seq, stewart)
	assertVanishes(t, 1, seq, linear)
}

func TestTRatioPerpendicularBranch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.TRatio{Y: "Y", P: "P", Q: "Q", R: am.Var("r")},
		construct.TRatio{Y: "Z", P: "P", Q: "Q", R: am.Var("s")},
	}
	r := quotient(t, am.Var("r"), am.Var("s"))
	assertVanishes(t, 0, seq, ratio(t, "P", "Y", "P", "Z").Sub(r))
}

func TestARatioBranches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	r := am.Var("r")
	s := am.One().Sub(r)
	for i, c := range []struct {
		y     construct.ARatio
		ratio am.Expr
	}{
		// area with O does not vanish
		{construct.ARatio{Y: "Y", O: "O", U: "U", V: "V", RO: am.Zero(), RU: s, RV: r}, ratio(t, "U", "Y", "U", "V")},
		// area with O vanishes, U is taken
		{construct.ARatio{Y: "Y", O: "O", U: "U", V: "V", RO: s, RU: am.Zero(), RV: r}, ratio(t, "O", "Y", "O", "V")},
		// areas with O and U vanish, V is taken
		{construct.ARatio{Y: "Y", O: "O", U: "U", V: "V", RO: r, RU: s, RV: am.Zero()}, ratio(t, "U", "Y", "U", "O")},
	} {
		assertVanishes(t, i, []construct.Construction{c.y}, c.ratio.Sub(r))
	}
}

func TestIncenterWeights(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{construct.Incenter{C: "C", I: "I", A: "A", B: "B"}}
	// squared distances of I from the sides, times the squared side lengths
	dist := func(x, y am.Point) am.Expr {
		return quotient(t, am.S("I", x, y).Mul(am.S("I", x, y)), am.P(x, y, x))
	}
	assertVanishes(t, 0, seq, dist("A", "B").Sub(dist("B", "C")))
	assertVanishes(t, 1, seq, dist("A", "B").Sub(dist("C", "A")))
}

func TestInversionLowering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	inv := construct.Inversion{Y: "Y", Q: "Q", O: "O", A: "A"}
	power := ratio(t, "O", "Y", "O", "Q").Mul(am.P("O", "Q", "O")).Sub(am.P("O", "A", "O"))
	assertVanishes(t, 0, []construct.Construction{inv}, power)
	assertVanishes(t, 1, []construct.Construction{inv}, am.S("O", "Q", "Y"))
	// Q on line OA
	seq := []construct.Construction{construct.LRatio{Y: "Q", P: "O", Q: "A", R: am.Var("r")}, inv}
	assertVanishes(t, 2, seq, power)
	assertVanishes(t, 3, seq, ratio(t, "O", "Y", "O", "A").Sub(quotient(t, am.One(), am.Var("r"))))
}

func TestALineLowering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	aline := construct.On{Y: "Y", Obj: construct.ALine{P: "P", Q: "Q", W: "W", U: "U", V: "V"}}
	// equal tangents of the angles QPY and UWV
	tangents := am.S("Q", "P", "Y").Mul(am.P("U", "W", "V")).Sub(am.S("U", "W", "V").Mul(am.P("Q", "P", "Y")))
	assertVanishes(t, 0, []construct.Construction{aline}, tangents)
	// a right angle UWV gives the perpendicular at P
	seq := []construct.Construction{construct.TRatio{Y: "V", P: "W", Q: "U", R: am.Var("r")}, aline}
	assertVanishes(t, 1, seq, am.P("Q", "P", "Y"))
}

func TestCentroidOfMedians(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	seq := []construct.Construction{
		construct.Midpoint{Y: "M", P: "B", Q: "C"},
		construct.Midpoint{Y: "N", P: "C", Q: "A"},
		construct.Inter{Y: "G", Obj1: construct.Line{U: "A", V: "M"}, Obj2: construct.Line{U: "B", V: "N"}},
	}
	third := am.Fraction(1, 3)
	assertVanishes(t, 0, seq, ratio(t, "M", "G", "M", "A").Sub(third))
	assertVanishes(t, 1, seq, quotient(t, am.S("G", "B", "C"), am.S("A", "B", "C")).Sub(third))
	// the centroid construction agrees
	seq = []construct.Construction{
		construct.Midpoint{Y: "M", P: "B", Q: "C"},
		construct.Centroid{Y: "G", A: "A", B: "B", C: "C"},
	}
	assertVanishes(t, 2, seq, ratio(t, "A", "G", "A", "M").Sub(am.Fraction(2, 3)))
}

func TestRouth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "areamethod.evaluator")
	defer teardown()
	//
	r1, r2, r3 := am.Var("r1"), am.Var("r2"), am.Var("r3")
	lratio := func(y, p, q am.Point, r am.Expr) construct.LRatio {
		return construct.LRatio{Y: y, P: p, Q: q, R: quotient(t, am.One(), r.Add(am.One()))}
	}
	seq := []construct.Construction{
		lratio("A1", "B", "C", r1),
		lratio("B1", "C", "A", r2),
		lratio("C1", "A", "B", r3),
		construct.Inter{Y: "P", Obj1: construct.Line{U: "A", V: "A1"}, Obj2: construct.Line{U: "B", V: "B1"}},
		construct.Inter{Y: "Q", Obj1: construct.Line{U: "B", V: "B1"}, Obj2: construct.Line{U: "C", V: "C1"}},
		construct.Inter{Y: "R", Obj1: construct.Line{U: "C", V: "C1"}, Obj2: construct.Line{U: "A", V: "A1"}},
	}
	one := am.One()
	num := r1.Mul(r2).Mul(r3).Sub(one)
	den := r1.Mul(r3).Add(r1).Add(one)
	den = den.Mul(r2.Mul(r3).Add(r3).Add(one))
	den = den.Mul(r1.Mul(r2).Add(r2).Add(one))
	expected := quotient(t, num.Mul(num), den)
	obj := quotient(t, am.S("P", "Q", "R"), am.S("A", "B", "C"))
	for _, b := range []evaluator.Backend{evaluator.BackendSubstitution, evaluator.BackendPrem} {
		r, err := evaluator.Affine(seq, evaluator.Expression(obj), evaluator.WithBackend(b))
		require.NoError(t, err)
		assert.True(t, r.Value.Equal(expected), "%v backend: S(PQR)/S(ABC) = %s", b, r.Value)
	}
}

// assertVanishes evaluates e in the plane with both backends.
func assertVanishes(t *testing.T, i int, seq []construct.Construction, e am.Expr) {
	t.Helper()
	for _, b := range []evaluator.Backend{evaluator.BackendSubstitution, evaluator.BackendPrem} {
		r, err := evaluator.Plane(seq, evaluator.Expression(e), evaluator.WithBackend(b))
		if err != nil {
			t.Errorf("test %d, %v backend: %v", i, b, err)
			continue
		}
		if !r.Value.IsZero() {
			t.Errorf("test %d, %v backend: expected %s to vanish, is %s", i, b, e, r.Value)
		}
	}
}

func ratio(t *testing.T, a, b, c, d am.Point) am.Expr {
	r, err := am.R(a, b, c, d)
	require.NoError(t, err)
	return r
}
