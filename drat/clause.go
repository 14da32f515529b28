package drat

// This file deals with clause memory. All literals of all clauses live in a
// single flat arena and clauses are designated by stable indices into a
// metadata table, so watch lists and the content index can refer to clauses
// without owning them. Deleted clauses stay in the arena: the engine keeps
// them around for auditing and replay until it is torn down.

import (
	"sort"

	"github.com/mitchellh/hashstructure"
)

// ClauseRef is the stable index designating a clause inside a store.
// It stays valid for the lifetime of the store, even after the clause
// is deleted.
type ClauseRef uint32

// clause is the bookkeeping record of a stored clause. The literals
// themselves live in the store's arena at positions [off, off+size).
type clause struct {
	off     uint32
	size    uint32
	origin  Origin
	deleted bool
}

// arena owns the literals of every clause of a store.
// Growing it may reallocate the backing array, but offsets handed out by
// alloc stay valid forever since the arena is never compacted.
type arena struct {
	lits []Lit
}

// alloc appends a copy of lits to the arena and returns its offset.
func (a *arena) alloc(lits []Lit) uint32 {
	off := uint32(len(a.lits))
	a.lits = append(a.lits, lits...)
	return off
}

// span returns the literals of c. The slice aliases the arena: watch
// maintenance swaps literals in place through it, so the order of a span
// can change over time while its content cannot.
func (a *arena) span(c clause) []Lit {
	return a.lits[c.off : c.off+c.size]
}

// canonical returns a sorted copy of lits. Clause equality is
// order-insensitive, so sorted slices are the comparison form.
func canonical(lits []Lit) []Lit {
	ms := make([]Lit, len(lits))
	copy(ms, lits)
	sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })
	return ms
}

// sameLits is true iff a and b hold the same literals at the same
// positions. Callers pass canonical slices to get multiset equality.
func sameLits(a, b []Lit) bool {
	if len(a) != len(b) {
		return false
	}
	for i, l := range a {
		if b[i] != l {
			return false
		}
	}
	return true
}

// clauseKey hashes a canonical literal slice for the content index.
func clauseKey(ms []Lit) uint64 {
	h, err := hashstructure.Hash(ms, nil)
	if err != nil {
		panic(err) // hashing a slice of integers cannot fail
	}
	return h
}
