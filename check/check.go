// Package check replays DRAT certificates against DIMACS problems.
//
// A certificate is valid for a problem iff every clause it adds is a sound
// DRUP or DRAT addition and the replay derives unsatisfiability, either by
// reaching the empty clause or because unit propagation of the added
// clauses already conflicts. A certificate whose steps all check out but
// which never derives the conflict does not certify anything, and is
// reported as invalid.
package check

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/crillab/gopherdrat/drat"
)

// A Problem is a conjunction of clauses, in the plain representation of the
// DIMACS format. The replay engine builds its own indexed form from it.
type Problem struct {
	Clauses   [][]int
	NbVars    int
	nbClauses int
}

// Unsat parses a DRAT certificate and replays it against the problem.
// It returns true iff the certificate is valid, i.e. iff each of its
// additions is justified and the problem is derived unsatisfiable.
// Comment records from the SMT extensions are honored: "c a" lines add
// trusted assertions, "c ba"/"c euf" lines add theory lemmas; bridge and
// ad-hoc records carry no clause content and are skipped.
func (pb *Problem) Unsat(cert io.Reader) (valid bool, err error) {
	e := pb.engine()
	sc := bufio.NewScanner(cert)
	for sc.Scan() {
		ok, err := replayLine(e, sc.Text())
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	if err := sc.Err(); err != nil {
		return false, errors.Wrap(err, "could not read certificate")
	}
	return e.Inconsistent(), nil
}

// UnsatChan replays certificate lines arriving on ch, typically fed by a
// solver producing its certificate on the fly. Same verdict as Unsat.
func (pb *Problem) UnsatChan(ch chan string) (valid bool, err error) {
	e := pb.engine()
	for line := range ch {
		ok, err := replayLine(e, line)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return e.Inconsistent(), nil
}

// engine loads the problem clauses into a fresh engine. Checking stays
// disabled: the replay loop runs its own DRAT checks so that an invalid
// certificate becomes a verdict, not a panic.
func (pb *Problem) engine() *drat.Engine {
	e := drat.NewEngine(drat.Config{})
	for _, clause := range pb.Clauses {
		e.Add(toLits(clause), drat.Asserted)
	}
	return e
}

// replayLine applies one certificate line to the engine. It returns false
// when the line is an addition the verifier cannot justify.
func replayLine(e *drat.Engine, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true, nil
	}
	switch fields[0] {
	case "d":
		clause, err := parseClause(fields[1:])
		if err != nil {
			return false, err
		}
		e.Del(toLits(clause))
		return true, nil
	case "c":
		return replayComment(e, fields[1:])
	default:
		clause, err := parseClause(fields)
		if err != nil {
			return false, err
		}
		ls := toLits(clause)
		if !e.IsDRAT(ls) {
			return false, nil
		}
		e.Add(ls, drat.Learned)
		return true, nil
	}
}

// replayComment applies the comment records that carry clause content and
// skips the rest (bridge definitions, ad-hoc data).
func replayComment(e *drat.Engine, fields []string) (bool, error) {
	if len(fields) == 0 {
		return true, nil
	}
	switch fields[0] {
	case "a":
		clause, err := parseClause(fields[1:])
		if err != nil {
			return false, err
		}
		e.InputAssertion(toLits(clause))
	case "ba", "euf":
		clause, err := parseClause(fields[1:])
		if err != nil {
			return false, err
		}
		origin := drat.TheoryBA
		if fields[0] == "euf" {
			origin = drat.TheoryEUF
		}
		e.Add(toLits(clause), origin)
	}
	return true, nil
}

func toLits(clause []int) []drat.Lit {
	ls := make([]drat.Lit, len(clause))
	for i, l := range clause {
		ls[i] = drat.IntToLit(l)
	}
	return ls
}

// CNF returns a representation of the problem using the DIMACS syntax.
func (pb *Problem) CNF() string {
	lines := make([]string, 1, len(pb.Clauses)+1)
	lines[0] = fmt.Sprintf("p cnf %d %d", pb.NbVars, len(pb.Clauses))
	for _, clause := range pb.Clauses {
		strClause := make([]string, len(clause)+1)
		for i, lit := range clause {
			strClause[i] = fmt.Sprintf("%d", lit)
		}
		strClause[len(clause)] = "0"
		lines = append(lines, strings.Join(strClause, " "))
	}
	return strings.Join(lines, "\n")
}
