/*
Package drat produces and checks DRAT unsatisfiability certificates.

The package is meant to be embedded in a CDCL SAT solver, or in the SAT core
of an SMT solver. The host reports every clause it asserts, learns or
deletes; the engine appends the matching record to a proof trace any DRAT
checker can consume and, when checking is enabled, independently verifies
each learned clause by reverse unit propagation (DRUP), falling back to the
resolution-based asymmetric tautology criterion (RAT). The engine never
searches: decisions, restarts and conflict analysis stay in the host.

The trace format

Each record is one ASCII line of space-separated tokens terminated by 0.
Plain lines and "d" lines form the standard DRAT grammar; "c" lines carry
the SMT extensions and are comments for standard checkers:

    1 -2 3 0             addition of an asserted or learned clause
    d 1 -2 3 0           deletion
    0                    addition of the empty clause: unsatisfiability
    c a 1 2 0            trusted input assertion, never verified
    c ba 1 -2 0          theory lemma, bit-vector/boolean algebra
    c euf 1 -2 0         theory lemma, equality & uninterpreted functions
    c b 3 := 17 0        boolean variable 3 stands for AST node 17
    c n 17 := and 5 6 0  AST node 17 is the term and(5, 6)

Producing a proof

A solver proving unsatisfiability reports everything it does and finishes
with the empty clause:

    e := drat.NewEngine(drat.Config{Proof: w})
    e.Add([]drat.Lit{drat.IntToLit(1), drat.IntToLit(2)}, drat.Asserted)
    e.Add([]drat.Lit{drat.IntToLit(-1), drat.IntToLit(2)}, drat.Asserted)
    e.Add([]drat.Lit{drat.IntToLit(-2)}, drat.Asserted)
    e.Add([]drat.Lit{drat.IntToLit(2)}, drat.Learned)
    e.Add(nil, drat.Learned)
    if err := e.Flush(); err != nil { ... }

Self-checking

With one of the Check flags set, every learned clause is verified before it
is accepted. A clause that cannot be justified means the host solver is
unsound, so the engine panics rather than certifying a wrong proof:

    e := drat.NewEngine(drat.Config{Check: true, Proof: w})

The engine then tracks unit propagation over the whole clause store with the
usual two watched literals per clause, so each check costs one propagation
pass, not a scan of the database.

Checking a finished proof is the job of the check package, which replays a
trace against a DIMACS problem through this engine.
*/
package drat
