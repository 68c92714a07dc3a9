package evaluator

import (
	"errors"
	"fmt"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/ecs"
	"github.com/npillmayer/areamethod/poly"
)

// domain holds a rational function as a pair of polynomials over an explicit
// ring. Substitutions work by pseudo-division; numerator and denominator are
// not cancelled until the domain is converted back to an expression.
type domain struct {
	ring     *poly.Ring
	num, den poly.Poly
}

func newDomain(e am.Expr) (domain, error) {
	d := domain{ring: poly.NewRing(e.Symbols()...)}
	var err error
	if d.num, err = e.Num().Convert(d.ring); err != nil {
		return d, err
	}
	d.den, err = e.Den().Convert(d.ring)
	return d, err
}

// uses is true if numerator or denominator use indeterminate s.
func (d domain) uses(s poly.Symbol) bool {
	return d.num.Uses(s) || d.den.Uses(s)
}

// mentioning returns the invariants of d with argument y.
func (d domain) mentioning(y am.Point) []am.Invariant {
	var invs []am.Invariant
	for _, s := range d.ring.Symbols() {
		if inv, ok := s.(am.Invariant); ok && inv.Mentions(y) && d.uses(s) {
			invs = append(invs, inv)
		}
	}
	return invs
}

// substitute replaces inv by v.
func (d domain) substitute(inv am.Invariant, v am.Expr) (domain, error) {
	ring := d.ring.Inject(v.Symbols()...)
	num, err := d.num.Convert(ring)
	if err != nil {
		return d, err
	}
	den, err := d.den.Convert(ring)
	if err != nil {
		return d, err
	}
	a, err := v.Num().Convert(ring)
	if err != nil {
		return d, err
	}
	b, err := v.Den().Convert(ring)
	if err != nil {
		return d, err
	}
	num, den, err = poly.SubstituteRatio(num, den, inv, a, b)
	if err != nil {
		return d, err
	}
	return domain{ring: ring, num: num, den: den}, nil
}

// expr cancels and converts d back to an expression.
func (d domain) expr() (am.Expr, error) {
	return poly.NewFrac(d.num.Compress(), d.den.Compress())
}

// eliminateSparse removes the point of steps[i] from e, substituting one
// invariant at a time by pseudo-division.
func (ev *Evaluator) eliminateSparse(steps []ecs.Step, i int, e am.Expr) (am.Expr, error) {
	y := steps[i].Point()
	d, err := newDomain(e)
	if err != nil {
		return e, err
	}
	for round := 0; round < ev.opts.maxRounds; round++ {
		invs := d.mentioning(y)
		if len(invs) == 0 {
			return ev.sparseResult(d, y)
		}
		prev := d
		for _, inv := range invs {
			if !d.uses(inv) {
				continue
			}
			v, err := ev.rewrite(steps, i, inv)
			if err != nil {
				return e, err
			}
			tracer().P("point", y).Debugf("%s = %s", inv, v)
			if v.Equal(poly.FracVar(inv)) {
				continue
			}
			if d, err = d.substitute(inv, v); err != nil {
				return e, ev.sparseError(err, y)
			}
		}
		if d.num.Equal(prev.num) && d.den.Equal(prev.den) {
			return e, stalled(invs[0], y, round)
		}
	}
	if invs := d.mentioning(y); len(invs) > 0 {
		return e, fmt.Errorf("%w: %s still mentions %s after %d rounds",
			am.ErrIncomplete, invs[0], y, ev.opts.maxRounds)
	}
	return ev.sparseResult(d, y)
}

func (ev *Evaluator) sparseResult(d domain, y am.Point) (am.Expr, error) {
	r, err := d.expr()
	if err != nil {
		return r, ev.sparseError(err, y)
	}
	return r, nil
}

func (ev *Evaluator) sparseError(err error, y am.Point) error {
	if errors.Is(err, poly.ErrDivisionByZero) {
		return degenerate(err, "eliminating %s", y)
	}
	return err
}
