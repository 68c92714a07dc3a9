package evaluator

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/emirpasic/gods/maps/treemap"
	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/ecs"
)

// Memo caches the outcome of sub-proofs. Entries are addressed by a hash of
// the normalized text of (flavor, steps, predicate); the full text is kept to
// rule out collisions.
//
// A Memo is owned by its caller and is not safe for concurrent use.
type Memo struct {
	index   map[uint64][]*memoEntry
	entries *treemap.Map // text -> *memoEntry, for ordered listing
	hits    int
	misses  int
}

type memoEntry struct {
	text  string
	truth am.Truth
	done  bool // false while the proof is in progress
}

// NewMemo creates an empty memo table.
func NewMemo() *Memo {
	return &Memo{
		index:   make(map[uint64][]*memoEntry),
		entries: treemap.NewWithStringComparator(),
	}
}

// Len is the number of finished proofs in the table.
func (m *Memo) Len() int {
	n := 0
	it := m.entries.Iterator()
	for it.Next() {
		if it.Value().(*memoEntry).done {
			n++
		}
	}
	return n
}

// Clear empties the table.
func (m *Memo) Clear() {
	m.index = make(map[uint64][]*memoEntry)
	m.entries.Clear()
	m.hits, m.misses = 0, 0
}

// Keys lists the texts of finished proofs in lexicographic order.
func (m *Memo) Keys() []string {
	var keys []string
	it := m.entries.Iterator()
	for it.Next() {
		if it.Value().(*memoEntry).done {
			keys = append(keys, it.Key().(string))
		}
	}
	return keys
}

// Stats returns the number of cache hits and misses.
func (m *Memo) Stats() (hits, misses int) {
	return m.hits, m.misses
}

func (m *Memo) find(text string) *memoEntry {
	for _, e := range m.index[xxhash.Sum64String(text)] {
		if e.text == text {
			return e
		}
	}
	return nil
}

// lookup returns the cached outcome of a proof. A proof which is in progress
// yields Unknown.
func (m *Memo) lookup(text string) (am.Truth, bool) {
	e := m.find(text)
	if e == nil {
		m.misses++
		return am.Unknown, false
	}
	m.hits++
	if !e.done {
		tracer().Debugf("proof of %s re-entered", text)
		return am.Unknown, true
	}
	return e.truth, true
}

// begin marks a proof as in progress.
func (m *Memo) begin(text string) {
	h := xxhash.Sum64String(text)
	e := &memoEntry{text: text}
	m.index[h] = append(m.index[h], e)
	m.entries.Put(text, e)
}

// finish records the outcome of a proof.
func (m *Memo) finish(text string, t am.Truth) {
	if e := m.find(text); e != nil {
		e.truth, e.done = t, true
	}
}

// abort forgets a proof which ended with an error.
func (m *Memo) abort(text string) {
	h := xxhash.Sum64String(text)
	chain := m.index[h]
	for i, e := range chain {
		if e.text == text {
			m.index[h] = append(chain[:i], chain[i+1:]...)
			break
		}
	}
	m.entries.Remove(text)
}

// memoText is the normalized text of a proof obligation. Mode is the flavor
// of the engine.
func memoText(mode string, steps []ecs.Step, p am.Predicate) string {
	var b strings.Builder
	b.WriteString(mode)
	for _, s := range steps {
		b.WriteString("; ")
		b.WriteString(s.String())
		b.WriteString(" if not ")
		b.WriteString(s.NDG().String())
	}
	b.WriteString(" => ")
	b.WriteString(p.String())
	return b.String()
}
