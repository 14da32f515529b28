package drat

// The Engine itself. The host solver owns one engine and reports every
// clause addition and deletion to it; the engine appends the matching trace
// records and, when checking is enabled, verifies each learned clause
// before accepting it. Plain synchronous calls throughout: portfolio
// solvers hold one engine each and share nothing.

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Stats are counters about the engine's work so far.
type Stats struct {
	NbAdded    int // clauses added, all origins
	NbDeleted  int // deletion records emitted
	NbVerified int // learned clauses checked
	NbProps    int // literals forced by unit propagation
}

// Engine is a proof-producing and proof-checking clause engine.
type Engine struct {
	Stats Stats

	cfg   Config
	store *store
	trace *tracer
	audit *logrus.Logger

	vals  []int8
	trail []Lit
	// conflict is transient: it records the outcome of one propagation
	// run and is cleared by every rollback.
	conflict bool
	// inconsistent is monotonic: set when the empty clause is derived or
	// a permanent propagation conflicts, never cleared.
	inconsistent bool

	bools map[int]int
	nodes map[int]nodeDef
	open  *openDef
}

// NewEngine returns an engine configured by cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:   cfg,
		store: newStore(),
		trace: newTracer(cfg.Proof),
		audit: newAudit(cfg.Audit, cfg.Activity),
		bools: make(map[int]int),
		nodes: make(map[int]nodeDef),
	}
}

// Add reports a clause with its origin. When checking is enabled, learned
// clauses are verified before anything else happens, and an unjustifiable
// one panics. The trace record is then emitted and the clause enters the
// store: units are propagated permanently, the empty clause makes the
// engine inconsistent for good. Add never mutates lits.
func (e *Engine) Add(lits []Lit, origin Origin) {
	e.declare(lits)
	if origin == Learned && e.cfg.checking() {
		e.verifyLearned(lits)
	}
	if origin.IsTheory() {
		e.trace.theory(origin, lits)
	} else {
		e.trace.addition(lits)
	}
	e.Stats.NbAdded++
	e.audit.WithFields(logrus.Fields{"origin": origin.String(), "clause": litsString(lits)}).Debug("add")
	e.insert(lits, origin)
}

// InputAssertion records a trusted clause from outside the core, e.g. an
// assertion the SMT front end already clausified. It is stored like an
// asserted clause but dumped as a "c a" record, and never verified.
func (e *Engine) InputAssertion(lits []Lit) {
	e.declare(lits)
	e.trace.inputAssertion(lits)
	e.Stats.NbAdded++
	e.audit.WithField("clause", litsString(lits)).Debug("input assertion")
	e.insert(lits, Asserted)
}

// Del reports a clause deletion. The deletion record is always emitted,
// since the trace is the authoritative history of what the host did; if the
// clause is unknown or already deleted the watch lists are left untouched.
// Deleting a unit clause does not retract its propagated assignment.
func (e *Engine) Del(lits []Lit) {
	e.trace.deletion(lits)
	e.Stats.NbDeleted++
	ref, ok := e.store.find(lits)
	if !ok {
		e.audit.WithField("clause", litsString(lits)).Warn("deleted clause not in store")
		return
	}
	e.store.del(ref)
	e.audit.WithField("clause", litsString(lits)).Debug("del")
}

// Contains is true iff some active clause is exactly the multiset lits,
// whatever the order. Hosts use it as an existence fast path for two or
// three literal clauses, without any resolution search.
func (e *Engine) Contains(lits []Lit) bool {
	return e.store.contains(lits)
}

// Inconsistent reports whether inconsistency has been derived. The flag is
// monotonic: once true it stays true for the engine's lifetime.
func (e *Engine) Inconsistent() bool {
	return e.inconsistent
}

// insert stores lits and hooks the new clause into propagation.
func (e *Engine) insert(lits []Lit, origin Origin) {
	ref := e.store.insert(lits, origin)
	switch len(lits) {
	case 0:
		e.setInconsistent("empty clause added")
	case 1:
		e.assignPropagate(lits[0])
		if e.conflict {
			e.setInconsistent("unit " + litsString(lits) + " conflicts")
		}
	default:
		e.watchNew(ref)
	}
}

// watchNew picks two not-currently-falsified literals of ref as watches and
// registers the clause in both watch lists. With a single non-falsified
// literal the clause is unit under the current assignment: it is watched
// as-is and the forced literal propagated. With none it is conflicting and
// the engine becomes inconsistent.
func (e *Engine) watchNew(ref ClauseRef) {
	lits := e.store.lits(ref)
	w1, w2 := -1, -1
	for i, l := range lits {
		if e.value(l) != -1 {
			if w1 < 0 {
				w1 = i
			} else {
				w2 = i
				break
			}
		}
	}
	switch {
	case w1 < 0: // every literal is already false
		e.store.watchClause(ref)
		e.setInconsistent("conflicting clause " + litsString(lits) + " added")
	case w2 < 0: // unit under the current assignment
		lits[0], lits[w1] = lits[w1], lits[0]
		e.store.watchClause(ref)
		e.assignPropagate(lits[0])
		if e.conflict {
			e.setInconsistent("clause " + litsString(lits) + " conflicts")
		}
	default:
		lits[0], lits[w1] = lits[w1], lits[0]
		lits[1], lits[w2] = lits[w2], lits[1]
		e.store.watchClause(ref)
	}
}

// setInconsistent latches the monotonic inconsistency flag.
func (e *Engine) setInconsistent(why string) {
	if e.inconsistent {
		return
	}
	e.inconsistent = true
	e.audit.WithField("reason", why).Info("inconsistent")
}

// reservedKinds are the comment-record tags with a fixed meaning in the
// trace grammar.
var reservedKinds = map[string]bool{"a": true, "b": true, "n": true, "ba": true, "euf": true}

// Adhoc emits one structured "c <kind> <payload>* 0" comment record, for
// record kinds not yet formalized. Reusing a reserved kind is a usage
// error.
func (e *Engine) Adhoc(kind string, payload ...string) {
	if kind == "" || reservedKinds[kind] {
		panic(fmt.Sprintf("reserved or empty adhoc kind %q", kind))
	}
	e.trace.adhoc(kind, payload)
}

// LogActivity writes a snapshot of per-variable activity scores to the
// audit sink. Gated by the Activity flag; the primary trace never sees
// heuristic data.
func (e *Engine) LogActivity(scores []float64) {
	if !e.cfg.Activity {
		return
	}
	strs := make([]string, len(scores))
	for i, sc := range scores {
		strs[i] = strconv.FormatFloat(sc, 'g', -1, 64)
	}
	e.audit.WithField("scores", strings.Join(strs, " ")).Info("activity")
}

// Flush drains buffered trace records to the proof sink and reports the
// first write error encountered, if any.
func (e *Engine) Flush() error {
	return e.trace.flush()
}

// Err returns the sticky trace write error without flushing.
func (e *Engine) Err() error {
	return e.trace.err
}

// Write dumps the current assignment and the whole clause set, deleted
// clauses included, with origin tags. Debugging aid: this is not part of
// the trace grammar.
func (e *Engine) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "assignment: %s\n", litsString(e.trail)); err != nil {
		return err
	}
	for _, cl := range e.store.clauses {
		tag := cl.origin.String()
		if cl.deleted {
			tag = "deleted " + tag
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", tag, trailer(e.store.arena.span(cl))); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) String() string {
	var sb strings.Builder
	_ = e.Write(&sb)
	return sb.String()
}
