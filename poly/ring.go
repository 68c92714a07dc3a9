package poly

import (
	"sort"
	"strings"
)

// Symbol is an indeterminate. Key identifies the symbol and determines its
// position in a ring: symbols are ordered by key, and the first symbol of a
// ring is the most significant one for the lexicographic term order.
type Symbol interface {
	Key() string
	String() string
}

// Ring is an immutable, ordered set of indeterminates. The nil ring is the
// ring without indeterminates, i.e. the rationals.
type Ring struct {
	syms  []Symbol
	index map[string]int
}

// NewRing creates a ring from a set of symbols. Duplicates are dropped.
func NewRing(syms ...Symbol) *Ring {
	if len(syms) == 0 {
		return nil
	}
	seen := make(map[string]Symbol, len(syms))
	for _, s := range syms {
		seen[s.Key()] = s
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := &Ring{
		syms:  make([]Symbol, len(keys)),
		index: make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		r.syms[i] = seen[k]
		r.index[k] = i
	}
	return r
}

// Len is the number of indeterminates of r.
func (r *Ring) Len() int {
	if r == nil {
		return 0
	}
	return len(r.syms)
}

// Symbol returns the i-th indeterminate.
func (r *Ring) Symbol(i int) Symbol {
	return r.syms[i]
}

// Symbols returns a copy of the ordered indeterminates of r.
func (r *Ring) Symbols() []Symbol {
	if r == nil {
		return nil
	}
	syms := make([]Symbol, len(r.syms))
	copy(syms, r.syms)
	return syms
}

// Index returns the position of s within r.
func (r *Ring) Index(s Symbol) (int, bool) {
	if r == nil {
		return -1, false
	}
	i, ok := r.index[s.Key()]
	return i, ok
}

// Has is true if s is an indeterminate of r.
func (r *Ring) Has(s Symbol) bool {
	_, ok := r.Index(s)
	return ok
}

// Inject returns a ring containing the indeterminates of r and syms. If all of
// syms are already present, r itself is returned.
func (r *Ring) Inject(syms ...Symbol) *Ring {
	missing := false
	for _, s := range syms {
		if !r.Has(s) {
			missing = true
			break
		}
	}
	if !missing {
		return r
	}
	all := append(r.Symbols(), syms...)
	return NewRing(all...)
}

// Union returns the ring of the indeterminates of both r and other.
func (r *Ring) Union(other *Ring) *Ring {
	if r.Equal(other) {
		return r
	}
	return r.Inject(other.Symbols()...)
}

// Equal is true if r and other consist of the same indeterminates.
func (r *Ring) Equal(other *Ring) bool {
	if r == other {
		return true
	}
	if r.Len() != other.Len() {
		return false
	}
	for i := 0; i < r.Len(); i++ {
		if r.syms[i].Key() != other.syms[i].Key() {
			return false
		}
	}
	return true
}

func (r *Ring) String() string {
	var b strings.Builder
	b.WriteString("Q[")
	for i := 0; i < r.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.syms[i].String())
	}
	b.WriteString("]")
	return b.String()
}
