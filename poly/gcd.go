package poly

// GCD returns the greatest common divisor of f and g. The result is monic;
// gcd(0,0) is 0, and if either argument is a non-zero constant the gcd is 1.
//
// The computation first splits off the monomial contents. If one polynomial
// consists of a single term, the gcd is a monomial and we are done. Otherwise,
// an indeterminate occuring in only one of the polynomials means that the gcd
// has to divide each of its coefficients with respect to that indeterminate.
// Only if both polynomials share all their indeterminates we fall back to the
// subresultant pseudo-remainder sequence in the most significant common
// indeterminate.
func GCD(f, g Poly) Poly {
	switch {
	case f.IsZero() && g.IsZero():
		return Poly{}
	case f.IsZero():
		return g.Monic().Compress()
	case g.IsZero():
		return f.Monic().Compress()
	case f.IsConst() || g.IsConst():
		return Int(1)
	}
	f, g, ring := align(f, g)
	mf, mg := f.monomialContent(), g.monomialContent()
	m := make([]int, len(mf))
	for i := range m {
		m[i] = mf[i]
		if mg[i] < m[i] {
			m[i] = mg[i]
		}
	}
	mono := monomial(ring, m, ratOne)
	if len(f.terms) == 1 || len(g.terms) == 1 {
		return mono.Compress()
	}
	h := gcdTerms(f.divMonomial(mf), g.divMonomial(mg))
	return h.Mul(mono).Monic().Compress()
}

// gcdTerms computes the gcd of two polynomials without monomial content.
func gcdTerms(f, g Poly) Poly {
	if f.IsConst() || g.IsConst() {
		return Int(1)
	}
	uf, ug := f.used(), g.used()
	for i := range uf {
		if uf[i] && !ug[i] {
			return gcdCoeffs(f.Coeffs(f.ring.Symbol(i)), g)
		}
		if ug[i] && !uf[i] {
			return gcdCoeffs(g.Coeffs(g.ring.Symbol(i)), f)
		}
	}
	for i := range uf {
		if uf[i] {
			return gcdPRS(f, g, f.ring.Symbol(i))
		}
	}
	return Int(1)
}

// gcdCoeffs computes the gcd of g and all of coeffs, stopping as soon as the
// intermediate result becomes a constant.
func gcdCoeffs(coeffs []Poly, g Poly) Poly {
	h := g
	for _, c := range coeffs {
		if c.IsZero() {
			continue
		}
		h = GCD(c, h)
		if h.IsConst() {
			return Int(1)
		}
	}
	return h
}

// gcdPRS computes the gcd of f and g, both of positive degree in x, with the
// subresultant algorithm. A failing subresultant sequence is inconsistent
// arithmetic and panics.
func gcdPRS(f, g Poly, x Symbol) Poly {
	cf, a := Primitive(f, x)
	cg, b := Primitive(g, x)
	d := GCD(cf, cg)
	if a.Degree(x) < b.Degree(x) {
		a, b = b, a
	}
	prs, err := Subresultants(a, b, x)
	if err != nil {
		inconsistent("subresultant sequence of %s and %s: %v", a, b, err)
	}
	last := prs[len(prs)-1]
	if last.Degree(x) == 0 {
		return d
	}
	_, pp := Primitive(last, x)
	return d.Mul(pp)
}

// Subresultants returns the subresultant pseudo-remainder sequence of f and g
// with respect to x, starting with f and g and ending with the last non-zero
// element. deg(f) ≥ deg(g) is required.
func Subresultants(f, g Poly, x Symbol) ([]Poly, error) {
	if g.IsZero() {
		return []Poly{f}, nil
	}
	seq := []Poly{f, g}
	a, b := f, g
	gg, h := Int(1), Int(1)
	for {
		delta := a.Degree(x) - b.Degree(x)
		r, err := Prem(a, b, x)
		if err != nil {
			return seq, err
		}
		if r.IsZero() {
			return seq, nil
		}
		a = b
		b, err = ExactDiv(r, gg.Mul(h.Pow(delta)))
		if err != nil {
			return seq, err
		}
		seq = append(seq, b)
		if b.Degree(x) == 0 {
			return seq, nil
		}
		gg = a.LeadingCoeff(x)
		switch delta {
		case 0:
		case 1:
			h = gg
		default:
			if h, err = ExactDiv(gg.Pow(delta), h.Pow(delta-1)); err != nil {
				return seq, err
			}
		}
	}
}
