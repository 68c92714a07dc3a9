package poly

import (
	"math/big"
	"sort"
	"strings"
)

// Frac is a rational function num/den in canonical form: numerator and
// denominator are coprime, and the denominator is monic. Two Fracs denote the
// same rational function iff they are Equal. The zero value is 0.
type Frac struct {
	num Poly
	den Poly
}

// NewFrac creates the canonical form of num/den.
func NewFrac(num, den Poly) (Frac, error) {
	if den.IsZero() {
		return Frac{}, ErrDivisionByZero
	}
	return normalize(num, den), nil
}

// FracOf returns p as a rational function.
func FracOf(p Poly) Frac {
	return Frac{num: p.Compress(), den: Int(1)}
}

// FracInt returns the constant n.
func FracInt(n int64) Frac {
	return FracOf(Int(n))
}

// FracRat returns the constant a/b.
func FracRat(a, b int64) Frac {
	return FracOf(Rat(a, b))
}

// FracConst returns the constant c.
func FracConst(c *big.Rat) Frac {
	return FracOf(Const(c))
}

// FracVar returns the indeterminate s as a rational function.
func FracVar(s Symbol) Frac {
	return FracOf(Var(s))
}

func normalize(num, den Poly) Frac {
	if num.IsZero() {
		return Frac{}
	}
	if c, ok := den.ConstValue(); ok {
		return Frac{num: num.Scale(new(big.Rat).Inv(c)).Compress(), den: Int(1)}
	}
	g := GCD(num, den)
	if !g.IsConst() {
		var err error
		n, d := num, den
		if n, err = ExactDiv(num, g); err == nil {
			d, err = ExactDiv(den, g)
		}
		if err != nil {
			inconsistent("gcd %s does not divide %s / %s", g, num, den)
		}
		num, den = n, d
	}
	inv := new(big.Rat).Inv(den.LC())
	return Frac{num: num.Scale(inv).Compress(), den: den.Scale(inv).Compress()}
}

// Num returns the numerator.
func (f Frac) Num() Poly {
	return f.num
}

// Den returns the denominator.
func (f Frac) Den() Poly {
	if f.den.IsZero() {
		return Int(1)
	}
	return f.den
}

// IsZero is true for the zero function.
func (f Frac) IsZero() bool {
	return f.num.IsZero()
}

// IsConst is true if f is a rational number.
func (f Frac) IsConst() bool {
	return f.num.IsConst() && f.Den().IsConst()
}

// Rat returns the value of a constant rational function.
func (f Frac) Rat() (*big.Rat, bool) {
	if !f.IsConst() {
		return nil, false
	}
	c, _ := f.num.ConstValue()
	d, _ := f.Den().ConstValue()
	return c.Quo(c, d), true
}

// IsOne is true if f is the constant 1.
func (f Frac) IsOne() bool {
	c, ok := f.Rat()
	return ok && c.Cmp(ratOne) == 0
}

// Add returns f+g.
func (f Frac) Add(g Frac) Frac {
	if f.IsZero() {
		return g
	}
	if g.IsZero() {
		return f
	}
	if f.Den().Equal(g.Den()) {
		return normalize(f.num.Add(g.num), f.Den())
	}
	num := f.num.Mul(g.Den()).Add(g.num.Mul(f.Den()))
	return normalize(num, f.Den().Mul(g.Den()))
}

// Neg returns -f.
func (f Frac) Neg() Frac {
	return Frac{num: f.num.Neg(), den: f.den}
}

// Sub returns f-g.
func (f Frac) Sub(g Frac) Frac {
	return f.Add(g.Neg())
}

// Mul returns f·g.
func (f Frac) Mul(g Frac) Frac {
	if f.IsZero() || g.IsZero() {
		return Frac{}
	}
	return normalize(f.num.Mul(g.num), f.Den().Mul(g.Den()))
}

// Scale returns c·f.
func (f Frac) Scale(c *big.Rat) Frac {
	if c.Sign() == 0 {
		return Frac{}
	}
	return Frac{num: f.num.Scale(c), den: f.den}
}

// Inv returns 1/f.
func (f Frac) Inv() (Frac, error) {
	if f.IsZero() {
		return Frac{}, ErrDivisionByZero
	}
	return normalize(f.Den(), f.num), nil
}

// Quo returns f/g.
func (f Frac) Quo(g Frac) (Frac, error) {
	if g.IsZero() {
		return Frac{}, ErrDivisionByZero
	}
	return normalize(f.num.Mul(g.Den()), f.Den().Mul(g.num)), nil
}

// Pow returns f^n. Negative exponents are allowed for non-zero f.
func (f Frac) Pow(n int) (Frac, error) {
	if n < 0 {
		inv, err := f.Inv()
		if err != nil {
			return Frac{}, err
		}
		return inv.Pow(-n)
	}
	return Frac{num: f.num.Pow(n), den: f.Den().Pow(n)}, nil
}

// Equal is true if f and g denote the same rational function.
func (f Frac) Equal(g Frac) bool {
	return f.num.Equal(g.num) && f.Den().Equal(g.Den())
}

// Symbols returns the indeterminates occuring in f, ordered by key.
func (f Frac) Symbols() []Symbol {
	seen := make(map[string]Symbol)
	for _, s := range f.num.Symbols() {
		seen[s.Key()] = s
	}
	for _, s := range f.Den().Symbols() {
		seen[s.Key()] = s
	}
	syms := make([]Symbol, 0, len(seen))
	for _, s := range seen {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Key() < syms[j].Key() })
	return syms
}

// Uses is true if s occurs in f.
func (f Frac) Uses(s Symbol) bool {
	return f.num.Uses(s) || f.Den().Uses(s)
}

// Degree returns the maximum of the degrees of numerator and denominator in s.
func (f Frac) Degree(s Symbol) int {
	d := f.num.Degree(s)
	if dd := f.Den().Degree(s); dd > d {
		d = dd
	}
	return d
}

// Substitute replaces s by v, evaluating numerator and denominator with
// Horner's scheme on rational functions.
func (f Frac) Substitute(s Symbol, v Frac) (Frac, error) {
	if !f.Uses(s) {
		return f, nil
	}
	num := horner(f.num.Coeffs(s), v)
	den := horner(f.Den().Coeffs(s), v)
	return num.Quo(den)
}

func horner(coeffs []Poly, v Frac) Frac {
	if len(coeffs) == 0 {
		return Frac{}
	}
	acc := FracOf(coeffs[len(coeffs)-1])
	for k := len(coeffs) - 2; k >= 0; k-- {
		acc = acc.Mul(v).Add(FracOf(coeffs[k]))
	}
	return acc
}

// SubstitutePrem replaces s by v by pseudo-division of numerator and
// denominator, cancelling once at the end.
func (f Frac) SubstitutePrem(s Symbol, v Frac) (Frac, error) {
	if !f.Uses(s) {
		return f, nil
	}
	n, d, err := SubstituteRatio(f.num, f.Den(), s, v.num, v.Den())
	if err != nil {
		return Frac{}, err
	}
	return NewFrac(n, d)
}

// Eval substitutes simultaneously every indeterminate whose key is found in m.
func (f Frac) Eval(m map[string]Frac) (Frac, error) {
	num := evalPoly(f.num, m)
	den := evalPoly(f.Den(), m)
	return num.Quo(den)
}

func evalPoly(p Poly, m map[string]Frac) Frac {
	var images []Frac
	hit := false
	for i := 0; i < p.ring.Len(); i++ {
		s := p.ring.Symbol(i)
		if v, ok := m[s.Key()]; ok {
			images = append(images, v)
			hit = true
		} else {
			images = append(images, FracVar(s))
		}
	}
	if !hit {
		return FracOf(p)
	}
	result := Frac{}
	for _, t := range p.terms {
		mono := FracConst(t.c)
		for i, e := range t.exp {
			if e > 0 {
				pw, _ := images[i].Pow(e)
				mono = mono.Mul(pw)
			}
		}
		result = result.Add(mono)
	}
	return result
}

func (f Frac) String() string {
	if f.Den().IsConst() {
		return f.num.String()
	}
	var b strings.Builder
	wrap := func(p Poly) {
		if p.NumTerms() > 1 {
			b.WriteString("(" + p.String() + ")")
		} else {
			b.WriteString(p.String())
		}
	}
	wrap(f.num)
	b.WriteString("/")
	wrap(f.den)
	return b.String()
}
