package drat

// The DRUP/DRAT verifier. A candidate clause is justified against the
// current clause set by reverse unit propagation, falling back to the
// asymmetric-tautology criterion: one resolution step on a pivot literal,
// then propagation on every resolvent.

import "github.com/pkg/errors"

// IsDRUP is true iff c follows from the active clauses by unit propagation
// alone: every literal of c is negated and propagated, and the closure must
// reach a conflict. Vacuously true once the engine is inconsistent.
// The persistent assignment is restored before returning, whatever the
// outcome.
func (e *Engine) IsDRUP(c []Lit) bool {
	if e.inconsistent {
		return true
	}
	e.declare(c)
	mark := len(e.trail)
	for _, l := range c {
		e.assignPropagate(l.Negation())
		if e.conflict {
			break
		}
	}
	ok := e.conflict
	e.undoTo(mark)
	return ok
}

// IsDRAT is true iff c is a sound addition to the active clauses: either c
// passes IsDRUP, or some pivot literal of c has all its resolvents pass
// IsDRUP. Tautological resolvents pass trivially, since assigning both
// polarities of their clashing variable already conflicts.
func (e *Engine) IsDRAT(c []Lit) bool {
	if e.IsDRUP(c) {
		return true
	}
	for i := range c {
		if e.resolventsAreDRUP(c, i) {
			return true
		}
	}
	return false
}

// resolventsAreDRUP resolves c on the pivot c[skip] with every active clause
// containing the pivot's negation and checks each resolvent with IsDRUP.
// True iff every resolvent passes.
func (e *Engine) resolventsAreDRUP(c []Lit, skip int) bool {
	np := c[skip].Negation()
	base := make([]Lit, 0, len(c)-1)
	base = append(base, c[:skip]...)
	base = append(base, c[skip+1:]...)
	for _, cl := range e.store.clauses {
		if cl.deleted {
			continue
		}
		lits := e.store.arena.span(cl)
		clashes := false
		for _, l := range lits {
			if l == np {
				clashes = true
				break
			}
		}
		if !clashes {
			continue
		}
		r := make([]Lit, len(base), len(base)+len(lits)-1)
		copy(r, base)
		for _, l := range lits {
			if l != np {
				r = append(r, l)
			}
		}
		if !e.IsDRUP(r) {
			return false
		}
	}
	return true
}

// Verify checks that c is a sound addition and panics otherwise, regardless
// of the checking flags.
func (e *Engine) Verify(c []Lit) {
	e.verifyLearned(c)
}

// verifyLearned accepts c or panics. A learned clause the verifier cannot
// justify means the host solver derived an unsound clause; that is a defect
// of the host, not a recoverable runtime condition.
func (e *Engine) verifyLearned(c []Lit) {
	e.Stats.NbVerified++
	if e.IsDRAT(c) {
		return
	}
	e.audit.WithField("clause", litsString(c)).Error("no DRUP/DRAT justification for learned clause")
	panic("unsound learned clause: " + litsString(c))
}

// ValidatePropagation checks the permanent assignment against every active
// clause: a clause all of whose literals are false, or whose sole non-false
// literal is unassigned, reveals a propagation the engine missed. Once the
// engine is inconsistent there is nothing left to validate.
func (e *Engine) ValidatePropagation() error {
	if e.inconsistent {
		return nil
	}
	for _, cl := range e.store.clauses {
		if cl.deleted {
			continue
		}
		lits := e.store.arena.span(cl)
		sat := false
		unbound := 0
		var free Lit
		for _, l := range lits {
			switch e.value(l) {
			case 1:
				sat = true
			case 0:
				unbound++
				free = l
			}
			if sat {
				break
			}
		}
		if sat {
			continue
		}
		switch unbound {
		case 0:
			return errors.Errorf("clause %q is falsified under the current assignment", litsString(lits))
		case 1:
			return errors.Errorf("missed propagation: clause %q forces %d", litsString(lits), free.Int())
		}
	}
	return nil
}

// CheckModel checks an externally supplied candidate model against every
// active clause, theory lemmas included. model[v] is the polarity assigned
// to variable v; variables beyond the model satisfy nothing.
func (e *Engine) CheckModel(model []bool) error {
	for _, cl := range e.store.clauses {
		if cl.deleted {
			continue
		}
		lits := e.store.arena.span(cl)
		sat := false
		for _, l := range lits {
			if v := l.Var(); int(v) < len(model) && model[v] == l.IsPositive() {
				sat = true
				break
			}
		}
		if !sat {
			return errors.Errorf("model does not satisfy clause %q", litsString(lits))
		}
	}
	return nil
}
