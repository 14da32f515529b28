package drat

// The clause store: an arena-backed clause database with two-literal
// watch lists and a content-hash index for order-insensitive lookups.

// watch is an entry in a watch list: a clause reference plus a blocker,
// the other watched literal at the time the entry was made. The blocker can
// go stale after watch moves; it is only ever used as a satisfaction
// shortcut, so a stale blocker costs a clause visit but never correctness.
type watch struct {
	ref     ClauseRef
	blocker Lit
}

type store struct {
	arena   arena
	clauses []clause
	// watches is keyed by the literal that just became true: watches[l]
	// lists the clauses in which l.Negation() is a watched literal.
	watches [][]watch
	// index maps the hash of a canonical literal slice to the active
	// clauses with that content.
	index map[uint64][]ClauseRef
}

func newStore() *store {
	return &store{index: make(map[uint64][]ClauseRef)}
}

// growTo ensures watch lists exist for both polarities of all variables
// up to and including v.
func (s *store) growTo(v Var) {
	n := 2 * (int(v) + 1)
	for len(s.watches) < n {
		s.watches = append(s.watches, nil)
	}
}

// insert allocates a clause and registers it in the content index.
// Watch lists are maintained by the engine, which knows the current
// assignment and picks the watched literals.
func (s *store) insert(lits []Lit, origin Origin) ClauseRef {
	ref := ClauseRef(len(s.clauses))
	off := s.arena.alloc(lits)
	s.clauses = append(s.clauses, clause{off: off, size: uint32(len(lits)), origin: origin})
	h := clauseKey(canonical(lits))
	s.index[h] = append(s.index[h], ref)
	return ref
}

// lits returns the literals of ref, aliasing the arena.
func (s *store) lits(ref ClauseRef) []Lit {
	return s.arena.span(s.clauses[ref])
}

// watchClause registers the first two literals of ref's span as its
// watched literals.
func (s *store) watchClause(ref ClauseRef) {
	lits := s.lits(ref)
	s.watches[lits[0].Negation()] = append(s.watches[lits[0].Negation()], watch{ref: ref, blocker: lits[1]})
	s.watches[lits[1].Negation()] = append(s.watches[lits[1].Negation()], watch{ref: ref, blocker: lits[0]})
}

// unwatch removes the entry for ref from the watch list of l.
// An active clause of size >= 2 is always present in the lists of both its
// watched literals, so a miss means the store is corrupted.
func (s *store) unwatch(l Lit, ref ClauseRef) {
	ws := s.watches[l]
	for i := range ws {
		if ws[i].ref == ref {
			last := len(ws) - 1
			ws[i] = ws[last]
			s.watches[l] = ws[:last]
			return
		}
	}
	panic("removed a clause that was not watched")
}

// del marks ref deleted, drops it from the content index and from the
// watch lists of its watched literals. The arena keeps its literals.
func (s *store) del(ref ClauseRef) {
	c := &s.clauses[ref]
	lits := s.arena.span(*c)
	if c.size >= 2 {
		s.unwatch(lits[0].Negation(), ref)
		s.unwatch(lits[1].Negation(), ref)
	}
	c.deleted = true
	h := clauseKey(canonical(lits))
	refs := s.index[h]
	for i, r := range refs {
		if r == ref {
			last := len(refs) - 1
			refs[i] = refs[last]
			refs = refs[:last]
			break
		}
	}
	if len(refs) == 0 {
		delete(s.index, h)
	} else {
		s.index[h] = refs
	}
}

// find returns an active clause holding exactly the multiset lits.
func (s *store) find(lits []Lit) (ClauseRef, bool) {
	ms := canonical(lits)
	for _, ref := range s.index[clauseKey(ms)] {
		if sameLits(ms, canonical(s.lits(ref))) {
			return ref, true
		}
	}
	return 0, false
}

// contains is true iff some active clause holds exactly the multiset lits,
// whatever the order.
func (s *store) contains(lits []Lit) bool {
	_, ok := s.find(lits)
	return ok
}
