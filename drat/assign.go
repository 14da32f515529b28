package drat

// Assignment and unit propagation. The engine holds one three-valued truth
// assignment indexed by literal, plus a trail recording the order in which
// literals were made true. Permanent facts (unit clauses fed to Add) stay on
// the trail for the engine's lifetime; hypothesis literals pushed during a
// verification pass are rolled back with undoTo, so a single check never
// leaks state.

// value returns 1 if l is currently true, -1 if false, 0 if unassigned.
func (e *Engine) value(l Lit) int8 {
	return e.vals[l]
}

// growTo makes room in the assignment and watch structures for both
// polarities of every variable up to and including v.
func (e *Engine) growTo(v Var) {
	n := 2 * (int(v) + 1)
	for len(e.vals) < n {
		e.vals = append(e.vals, 0)
	}
	e.store.growTo(v)
}

// declare grows the engine to fit every literal of lits.
func (e *Engine) declare(lits []Lit) {
	for _, l := range lits {
		e.growTo(l.Var())
	}
}

// assign makes l true and pushes it on the trail. Assigning a literal whose
// negation already holds raises the conflict flag and leaves the trail
// untouched; assigning an already-true literal is a no-op.
func (e *Engine) assign(l Lit) {
	switch e.vals[l] {
	case 1:
		return
	case -1:
		e.conflict = true
		return
	}
	e.vals[l] = 1
	e.vals[l.Negation()] = -1
	e.trail = append(e.trail, l)
}

// undoTo rolls the trail back to the given mark, unassigning every literal
// pushed after it, and clears the conflict flag. Only verification passes
// roll back: permanent facts live below every mark ever taken.
func (e *Engine) undoTo(mark int) {
	for i := len(e.trail) - 1; i >= mark; i-- {
		l := e.trail[i]
		e.vals[l] = 0
		e.vals[l.Negation()] = 0
	}
	e.trail = e.trail[:mark]
	e.conflict = false
}

// propagate visits the watch list of the newly true literal l: every entry
// there watches l.Negation(), which just became false. Entries whose clause
// found a new watch are dropped from the list; the others are kept in place.
func (e *Engine) propagate(l Lit) {
	ws := e.store.watches[l]
	j := 0
	for i := 0; i < len(ws); i++ {
		w := ws[i]
		if e.value(w.blocker) == 1 { // clause satisfied, nothing to do
			ws[j] = w
			j++
			continue
		}
		lits := e.store.lits(w.ref)
		if lits[0] == l.Negation() {
			lits[0], lits[1] = lits[1], lits[0]
		}
		// The falsified watch now sits at position 1.
		if lits[0] != w.blocker && e.value(lits[0]) == 1 {
			ws[j] = watch{ref: w.ref, blocker: lits[0]}
			j++
			continue
		}
		moved := false
		for k := 2; k < len(lits); k++ {
			if e.value(lits[k]) != -1 {
				lits[1], lits[k] = lits[k], lits[1]
				nl := lits[1].Negation()
				e.store.watches[nl] = append(e.store.watches[nl], watch{ref: w.ref, blocker: lits[0]})
				moved = true
				break
			}
		}
		if moved { // watch re-pointed, entry leaves this list
			continue
		}
		ws[j] = w
		j++
		if e.value(lits[0]) == -1 { // fully falsified
			n := copy(ws[j:], ws[i+1:])
			e.store.watches[l] = ws[:j+n]
			e.conflict = true
			return
		}
		// The clause became unit: lits[0] is forced.
		e.Stats.NbProps++
		e.assign(lits[0])
	}
	e.store.watches[l] = ws[:j]
}

// assignPropagate assigns l and drives unit propagation to fixpoint or to a
// conflict. Single call stack, no recursion: newly forced literals are taken
// from the trail in order.
func (e *Engine) assignPropagate(l Lit) {
	head := len(e.trail)
	e.assign(l)
	for i := head; i < len(e.trail) && !e.conflict; i++ {
		e.propagate(e.trail[i])
	}
}
