package poly

import (
	"fmt"
	"math/big"
)

// Extension is an algebraic relation m(s) = 0 for an indeterminate s. The
// minimal polynomial m is monic in s; its other coefficients may depend on
// further indeterminates.
type Extension struct {
	sym Symbol
	min Poly
}

// NewExtension creates the extension of s defined by minimal polynomial m.
// m must have positive degree in s and a constant leading coefficient.
func NewExtension(m Poly, s Symbol) (Extension, error) {
	d := m.Degree(s)
	if d < 1 {
		return Extension{}, fmt.Errorf("minimal polynomial %s has no positive degree in %s", m, s)
	}
	lc, ok := m.LeadingCoeff(s).ConstValue()
	if !ok {
		return Extension{}, fmt.Errorf("minimal polynomial %s is not monic in %s", m, s)
	}
	return Extension{sym: s, min: m.Scale(new(big.Rat).Inv(lc))}, nil
}

// Symbol returns the indeterminate the extension is defined for.
func (e Extension) Symbol() Symbol {
	return e.sym
}

// MinPoly returns the (monic) minimal polynomial.
func (e Extension) MinPoly() Poly {
	return e.min
}

// Degree is the degree of the minimal polynomial.
func (e Extension) Degree() int {
	return e.min.Degree(e.sym)
}

// ReducePoly returns the remainder of p modulo the minimal polynomial.
func (e Extension) ReducePoly(p Poly) Poly {
	r, err := Prem(p, e.min, e.sym)
	if err != nil { // cannot happen, e.min is not zero
		return p
	}
	return r
}

// Reduce reduces numerator and denominator of f modulo the minimal
// polynomial. For quadratic extensions, the denominator is rationalized by
// multiplying with its conjugate, leaving s in the numerator only.
func (e Extension) Reduce(f Frac) (Frac, error) {
	if !f.Uses(e.sym) {
		return f, nil
	}
	num, den := e.ReducePoly(f.num), e.ReducePoly(f.Den())
	if e.Degree() == 2 && den.Uses(e.sym) {
		// conjugate root of s² + p·s + q is -p - s
		p := e.min.Coeff(e.sym, 1)
		conj := den.Compose(e.sym, p.Neg().Sub(Var(e.sym)))
		num = e.ReducePoly(num.Mul(conj))
		den = e.ReducePoly(den.Mul(conj))
	}
	if den.IsZero() {
		return Frac{}, ErrDivisionByZero
	}
	return NewFrac(num, den)
}

func (e Extension) String() string {
	return fmt.Sprintf("%s = 0", e.min)
}
