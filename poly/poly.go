package poly

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// term is a monomial with its coefficient. exp has one entry per indeterminate
// of the polynomial's ring. Terms are never mutated after construction.
type term struct {
	exp []int
	c   *big.Rat
}

// Poly is a sparse polynomial with rational coefficients. Terms are kept in
// descending lexicographic order, without zero coefficients. The zero value is
// the zero polynomial. Polys are immutable.
type Poly struct {
	ring  *Ring
	terms []term
}

var ratOne = big.NewRat(1, 1) // never mutated

// --- Constructors ----------------------------------------------------------

// Zero returns the zero polynomial.
func Zero() Poly {
	return Poly{}
}

// Const returns the constant polynomial c.
func Const(c *big.Rat) Poly {
	if c.Sign() == 0 {
		return Poly{}
	}
	return Poly{terms: []term{{exp: nil, c: new(big.Rat).Set(c)}}}
}

// Int returns the constant polynomial n.
func Int(n int64) Poly {
	return Const(big.NewRat(n, 1))
}

// Rat returns the constant polynomial a/b.
func Rat(a, b int64) Poly {
	return Const(big.NewRat(a, b))
}

// Var returns the polynomial consisting of the single indeterminate s.
func Var(s Symbol) Poly {
	return Poly{
		ring:  NewRing(s),
		terms: []term{{exp: []int{1}, c: big.NewRat(1, 1)}},
	}
}

// --- Accessors -------------------------------------------------------------

// Ring returns the ring p lives in.
func (p Poly) Ring() *Ring {
	return p.ring
}

// IsZero is true for the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.terms) == 0
}

// IsConst is true if p does not depend on any indeterminate.
func (p Poly) IsConst() bool {
	if len(p.terms) == 0 {
		return true
	}
	return len(p.terms) == 1 && isConstExp(p.terms[0].exp)
}

// ConstValue returns the value of a constant polynomial.
func (p Poly) ConstValue() (*big.Rat, bool) {
	if !p.IsConst() {
		return nil, false
	}
	if p.IsZero() {
		return new(big.Rat), true
	}
	return new(big.Rat).Set(p.terms[0].c), true
}

// NumTerms returns the number of terms of p.
func (p Poly) NumTerms() int {
	return len(p.terms)
}

// LC returns the coefficient of the leading term of p in lexicographic order.
func (p Poly) LC() *big.Rat {
	if p.IsZero() {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.terms[0].c)
}

// Degree returns the degree of p in s. The zero polynomial has degree -1.
func (p Poly) Degree(s Symbol) int {
	if p.IsZero() {
		return -1
	}
	i, ok := p.ring.Index(s)
	if !ok {
		return 0
	}
	d := 0
	for _, t := range p.terms {
		if t.exp[i] > d {
			d = t.exp[i]
		}
	}
	return d
}

// TotalDegree returns the maximum total degree of the terms of p.
func (p Poly) TotalDegree() int {
	if p.IsZero() {
		return -1
	}
	max := 0
	for _, t := range p.terms {
		d := 0
		for _, e := range t.exp {
			d += e
		}
		if d > max {
			max = d
		}
	}
	return max
}

// Coeff returns the coefficient of s^k of p, as a polynomial in the remaining
// indeterminates.
func (p Poly) Coeff(s Symbol, k int) Poly {
	i, ok := p.ring.Index(s)
	if !ok {
		if k == 0 {
			return p
		}
		return Poly{}
	}
	acc := newAccum(p.ring)
	for _, t := range p.terms {
		if t.exp[i] != k {
			continue
		}
		exp := copyExp(t.exp)
		exp[i] = 0
		acc.add(exp, t.c)
	}
	return acc.poly()
}

// Coeffs returns the coefficients of p with respect to s, indexed by degree.
func (p Poly) Coeffs(s Symbol) []Poly {
	d := p.Degree(s)
	if d < 0 {
		return nil
	}
	coeffs := make([]Poly, d+1)
	for k := 0; k <= d; k++ {
		coeffs[k] = p.Coeff(s, k)
	}
	return coeffs
}

// LeadingCoeff returns the coefficient of the highest power of s in p.
func (p Poly) LeadingCoeff(s Symbol) Poly {
	d := p.Degree(s)
	if d < 0 {
		return Poly{}
	}
	return p.Coeff(s, d)
}

// Uses is true if indeterminate s occurs in p.
func (p Poly) Uses(s Symbol) bool {
	i, ok := p.ring.Index(s)
	if !ok {
		return false
	}
	for _, t := range p.terms {
		if t.exp[i] > 0 {
			return true
		}
	}
	return false
}

// Symbols returns the indeterminates occuring in p, in ring order.
func (p Poly) Symbols() []Symbol {
	used := p.used()
	var syms []Symbol
	for i, u := range used {
		if u {
			syms = append(syms, p.ring.Symbol(i))
		}
	}
	return syms
}

func (p Poly) used() []bool {
	used := make([]bool, p.ring.Len())
	for _, t := range p.terms {
		for i, e := range t.exp {
			if e > 0 {
				used[i] = true
			}
		}
	}
	return used
}

// --- Ring handling ---------------------------------------------------------

// Convert moves p into ring r. All indeterminates occuring in p have to be
// present in r.
func (p Poly) Convert(r *Ring) (Poly, error) {
	if p.ring.Equal(r) {
		return Poly{ring: r, terms: p.terms}, nil
	}
	m := make([]int, p.ring.Len())
	used := p.used()
	for i := range m {
		j, ok := r.Index(p.ring.Symbol(i))
		if !ok {
			if used[i] {
				return Poly{}, fmt.Errorf("%w: %s", ErrForeignSymbol, p.ring.Symbol(i))
			}
			j = -1
		}
		m[i] = j
	}
	terms := make([]term, len(p.terms))
	for k, t := range p.terms {
		exp := make([]int, r.Len())
		for i, e := range t.exp {
			if e > 0 {
				exp[m[i]] = e
			}
		}
		terms[k] = term{exp: exp, c: t.c}
	}
	sortTerms(terms)
	return Poly{ring: r, terms: terms}, nil
}

// Compress returns p in the ring of the indeterminates actually occuring in p.
func (p Poly) Compress() Poly {
	syms := p.Symbols()
	if len(syms) == p.ring.Len() {
		return p
	}
	q, _ := p.Convert(NewRing(syms...))
	return q
}

// align moves p and q into a common ring.
func align(p, q Poly) (Poly, Poly, *Ring) {
	if p.ring.Equal(q.ring) {
		return p, q, p.ring
	}
	r := p.ring.Union(q.ring)
	p, _ = p.Convert(r)
	q, _ = q.Convert(r)
	return p, q, r
}

// --- Arithmetic ------------------------------------------------------------

// Add returns p+q.
func (p Poly) Add(q Poly) Poly {
	if p.IsZero() {
		return q
	}
	if q.IsZero() {
		return p
	}
	p, q, r := align(p, q)
	acc := newAccum(r)
	for _, t := range p.terms {
		acc.add(t.exp, t.c)
	}
	for _, t := range q.terms {
		acc.add(t.exp, t.c)
	}
	return acc.poly()
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	terms := make([]term, len(p.terms))
	for i, t := range p.terms {
		terms[i] = term{exp: t.exp, c: new(big.Rat).Neg(t.c)}
	}
	return Poly{ring: p.ring, terms: terms}
}

// Sub returns p-q.
func (p Poly) Sub(q Poly) Poly {
	return p.Add(q.Neg())
}

// Scale returns c·p.
func (p Poly) Scale(c *big.Rat) Poly {
	if c.Sign() == 0 {
		return Poly{}
	}
	terms := make([]term, len(p.terms))
	for i, t := range p.terms {
		terms[i] = term{exp: t.exp, c: new(big.Rat).Mul(t.c, c)}
	}
	return Poly{ring: p.ring, terms: terms}
}

// Mul returns p·q.
func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Poly{}
	}
	if c, ok := p.ConstValue(); ok {
		return q.Scale(c)
	}
	if c, ok := q.ConstValue(); ok {
		return p.Scale(c)
	}
	p, q, r := align(p, q)
	acc := newAccum(r)
	c := new(big.Rat)
	for _, s := range p.terms {
		for _, t := range q.terms {
			exp := make([]int, r.Len())
			for i := range exp {
				exp[i] = s.exp[i] + t.exp[i]
			}
			acc.add(exp, c.Mul(s.c, t.c))
		}
	}
	return acc.poly()
}

// Pow returns p^n for n ≥ 0.
func (p Poly) Pow(n int) Poly {
	if n < 0 {
		panic("poly: negative exponent")
	}
	result := Int(1)
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// Monic returns p scaled such that its leading coefficient is 1.
func (p Poly) Monic() Poly {
	if p.IsZero() {
		return p
	}
	lc := p.terms[0].c
	if lc.Cmp(big.NewRat(1, 1)) == 0 {
		return p
	}
	return p.Scale(new(big.Rat).Inv(lc))
}

// Compose replaces indeterminate s in p by q.
func (p Poly) Compose(s Symbol, q Poly) Poly {
	if !p.Uses(s) {
		return p
	}
	coeffs := p.Coeffs(s)
	acc := coeffs[len(coeffs)-1]
	for k := len(coeffs) - 2; k >= 0; k-- {
		acc = acc.Mul(q).Add(coeffs[k])
	}
	return acc
}

// Equal is true if p and q are the same polynomial, independent of their rings.
func (p Poly) Equal(q Poly) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	p, q, _ = align(p, q)
	for i := range p.terms {
		if compareExp(p.terms[i].exp, q.terms[i].exp) != 0 {
			return false
		}
		if p.terms[i].c.Cmp(q.terms[i].c) != 0 {
			return false
		}
	}
	return true
}

// --- Monomials -------------------------------------------------------------

// monomialContent returns the exponent vector of the largest monomial dividing
// every term of p.
func (p Poly) monomialContent() []int {
	m := make([]int, p.ring.Len())
	for k, t := range p.terms {
		for i, e := range t.exp {
			if k == 0 || e < m[i] {
				m[i] = e
			}
		}
	}
	return m
}

// divMonomial divides every term of p by the monomial with exponents m.
func (p Poly) divMonomial(m []int) Poly {
	if isConstExp(m) {
		return p
	}
	terms := make([]term, len(p.terms))
	for k, t := range p.terms {
		exp := copyExp(t.exp)
		for i := range exp {
			exp[i] -= m[i]
		}
		terms[k] = term{exp: exp, c: t.c}
	}
	return Poly{ring: p.ring, terms: terms}
}

func monomial(r *Ring, exp []int, c *big.Rat) Poly {
	if c.Sign() == 0 {
		return Poly{}
	}
	return Poly{ring: r, terms: []term{{exp: copyExp(exp), c: new(big.Rat).Set(c)}}}
}

// --- Output ----------------------------------------------------------------

func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	for k, t := range p.terms {
		c := new(big.Rat).Set(t.c)
		if k > 0 {
			if c.Sign() < 0 {
				b.WriteString(" - ")
				c.Neg(c)
			} else {
				b.WriteString(" + ")
			}
		} else if c.Sign() < 0 {
			b.WriteString("-")
			c.Neg(c)
		}
		mono := monomialString(p.ring, t.exp)
		switch {
		case mono == "":
			b.WriteString(c.RatString())
		case c.Cmp(big.NewRat(1, 1)) == 0:
			b.WriteString(mono)
		default:
			b.WriteString(c.RatString())
			b.WriteString("*")
			b.WriteString(mono)
		}
	}
	return b.String()
}

func monomialString(r *Ring, exp []int) string {
	var parts []string
	for i, e := range exp {
		switch {
		case e == 1:
			parts = append(parts, r.Symbol(i).String())
		case e > 1:
			parts = append(parts, r.Symbol(i).String()+"^"+strconv.Itoa(e))
		}
	}
	return strings.Join(parts, "*")
}

// --- Term helpers ----------------------------------------------------------

// accum collects terms, adding up coefficients of equal monomials.
type accum struct {
	ring  *Ring
	terms map[string]*term
}

func newAccum(r *Ring) *accum {
	return &accum{ring: r, terms: make(map[string]*term)}
}

func (a *accum) add(exp []int, c *big.Rat) {
	k := expKey(exp)
	if t, ok := a.terms[k]; ok {
		t.c.Add(t.c, c)
		return
	}
	a.terms[k] = &term{exp: exp, c: new(big.Rat).Set(c)}
}

func (a *accum) poly() Poly {
	terms := make([]term, 0, len(a.terms))
	for _, t := range a.terms {
		if t.c.Sign() != 0 {
			terms = append(terms, *t)
		}
	}
	if len(terms) == 0 {
		return Poly{}
	}
	sortTerms(terms)
	return Poly{ring: a.ring, terms: terms}
}

func expKey(exp []int) string {
	var b strings.Builder
	for i, e := range exp {
		if e == 0 {
			continue
		}
		b.WriteString(strconv.Itoa(i))
		b.WriteByte('^')
		b.WriteString(strconv.Itoa(e))
		b.WriteByte(' ')
	}
	return b.String()
}

func sortTerms(terms []term) {
	sort.Slice(terms, func(i, j int) bool {
		return compareExp(terms[i].exp, terms[j].exp) > 0
	})
}

// compareExp compares exponent vectors lexicographically. Missing entries
// count as zero.
func compareExp(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			if x > y {
				return 1
			}
			return -1
		}
	}
	return 0
}

func isConstExp(exp []int) bool {
	for _, e := range exp {
		if e != 0 {
			return false
		}
	}
	return true
}

func copyExp(exp []int) []int {
	c := make([]int, len(exp))
	copy(c, exp)
	return c
}
