package drat

import "io"

// Config is the engine configuration. It is read once by NewEngine and
// held for the engine's lifetime; flipping fields afterwards has no effect.
type Config struct {
	// Check verifies every learned clause against the store as it is
	// added. A clause with no DRUP/DRAT justification panics.
	Check bool
	// CheckSat verifies learned clauses like Check and announces that the
	// host will submit its model to CheckModel on a satisfiable outcome.
	CheckSat bool
	// CheckUnsat verifies learned clauses like Check and announces that
	// the host will finish the trace with the empty clause, which is only
	// accepted once the engine itself derived the inconsistency.
	CheckUnsat bool
	// Activity forwards heuristic activity data and per-operation debug
	// records to the audit sink.
	Activity bool

	// Proof receives the trace records. nil discards them.
	Proof io.Writer
	// Audit receives best-effort debugging output. nil discards it.
	Audit io.Writer
}

// checking is true when any of the verification flags is set.
func (c Config) checking() bool {
	return c.Check || c.CheckSat || c.CheckUnsat
}
