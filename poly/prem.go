package poly

import "math/big"

// Prem computes the pseudo-remainder of f by g with respect to x, i.e. the
// polynomial r with
//
//     lc(g)^(deg(f)-deg(g)+1) · f = q·g + r,   deg(r) < deg(g)
//
// where degrees and the leading coefficient are taken in x. The computation
// only extracts coefficients, it never divides. If deg(f) < deg(g), f is
// returned unchanged.
func Prem(f, g Poly, x Symbol) (Poly, error) {
	if g.IsZero() {
		return Poly{}, ErrDivisionByZero
	}
	f, g, _ = align(f, g)
	df, dg := f.Degree(x), g.Degree(x)
	if df < dg {
		return f, nil
	}
	lc := g.LeadingCoeff(x)
	n := df - dg + 1
	r := f
	xv := Var(x)
	for !r.IsZero() {
		dr := r.Degree(x)
		if dr < dg {
			break
		}
		lr := r.LeadingCoeff(x)
		r = lc.Mul(r).Sub(lr.Mul(xv.Pow(dr - dg)).Mul(g))
		n--
	}
	if r.IsZero() {
		return Poly{}, nil
	}
	return lc.Pow(n).Mul(r), nil
}

// ExactDiv returns f/g if g divides f, and ErrNotExact otherwise.
func ExactDiv(f, g Poly) (Poly, error) {
	if g.IsZero() {
		return Poly{}, ErrDivisionByZero
	}
	if c, ok := g.ConstValue(); ok {
		return f.Scale(new(big.Rat).Inv(c)), nil
	}
	f, g, ring := align(f, g)
	acc := newAccum(ring)
	r := f
	lg := g.terms[0]
	c := new(big.Rat)
	for !r.IsZero() {
		lt := r.terms[0]
		exp := make([]int, ring.Len())
		for i := range exp {
			exp[i] = lt.exp[i] - lg.exp[i]
			if exp[i] < 0 {
				return Poly{}, ErrNotExact
			}
		}
		c.Quo(lt.c, lg.c)
		acc.add(exp, c)
		r = r.Sub(monomial(ring, exp, c).Mul(g))
	}
	return acc.poly(), nil
}

// Content returns the content of p with respect to x, i.e. the gcd of the
// coefficients of p as a polynomial in x. The content is monic.
func Content(p Poly, x Symbol) Poly {
	var c Poly
	for _, coeff := range p.Coeffs(x) {
		if coeff.IsZero() {
			continue
		}
		c = GCD(c, coeff)
		if c.IsConst() {
			return Int(1)
		}
	}
	return c
}

// Primitive splits p into its content with respect to x and its primitive
// part, such that p = content·primitive. It panics with ErrInconsistent if
// the content does not divide p.
func Primitive(p Poly, x Symbol) (content, primitive Poly) {
	if p.IsZero() {
		return Poly{}, Poly{}
	}
	content = Content(p, x)
	if content.IsConst() {
		c, _ := content.ConstValue()
		return content, p.Scale(new(big.Rat).Inv(c))
	}
	primitive, err := ExactDiv(p, content)
	if err != nil {
		inconsistent("content %s does not divide %s", content, p)
	}
	return content, primitive
}

// SubstituteRatio replaces indeterminate s by a/b in the rational function n/d
// by pseudo-division with the relation b·s - a. No cancellation takes place.
// The result is a pair of polynomials not containing s.
func SubstituteRatio(n, d Poly, s Symbol, a, b Poly) (Poly, Poly, error) {
	if b.IsZero() {
		return Poly{}, Poly{}, ErrDivisionByZero
	}
	rel := b.Mul(Var(s)).Sub(a)
	dn, dd := n.Degree(s), d.Degree(s)
	// prem(n, rel) = b^dn · n(a/b), same for d
	n, err := Prem(n, rel, s)
	if err != nil {
		return Poly{}, Poly{}, err
	}
	d, err = Prem(d, rel, s)
	if err != nil {
		return Poly{}, Poly{}, err
	}
	if d.IsZero() {
		return Poly{}, Poly{}, ErrDivisionByZero
	}
	if dn < 0 {
		dn = 0
	}
	if dd < 0 {
		dd = 0
	}
	if dd > dn {
		n = n.Mul(b.Pow(dd - dn))
	} else if dn > dd {
		d = d.Mul(b.Pow(dn - dd))
	}
	return n, d, nil
}
