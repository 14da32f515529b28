package check

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parseClause parses the integer fields of a clause, dropping the
// terminating 0.
func parseClause(fields []string) ([]int, error) {
	clause := make([]int, 0, len(fields))
	for _, rawLit := range fields {
		lit, err := strconv.Atoi(rawLit)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse clause %v", fields)
		}
		if lit != 0 {
			clause = append(clause, lit)
		}
	}
	return clause, nil
}

// ParseCNF parses a problem in the DIMACS CNF syntax.
func ParseCNF(r io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(r)
	var pb Problem
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "c":
			continue
		case "p":
			if err := pb.parseHeader(fields); err != nil {
				return nil, errors.Wrapf(err, "could not parse header %q", line)
			}
		default:
			if err := pb.parseClause(fields); err != nil {
				return nil, errors.Wrapf(err, "could not parse clause %q", line)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "could not parse problem")
	}
	return &pb, nil
}

func (pb *Problem) parseHeader(fields []string) error {
	if len(fields) != 4 {
		return errors.Errorf("expected 4 fields, got %d", len(fields))
	}
	var err error
	if pb.NbVars, err = strconv.Atoi(fields[2]); err != nil {
		return errors.Wrapf(err, "invalid number of vars %q", fields[2])
	}
	if pb.NbVars < 0 {
		return errors.Errorf("negative number of vars %d", pb.NbVars)
	}
	if pb.nbClauses, err = strconv.Atoi(fields[3]); err != nil {
		return errors.Wrapf(err, "invalid number of clauses %q", fields[3])
	}
	if pb.nbClauses < 0 {
		return errors.Errorf("negative number of clauses %d", pb.nbClauses)
	}
	pb.Clauses = make([][]int, 0, pb.nbClauses)
	return nil
}

func (pb *Problem) parseClause(fields []string) error {
	clause, err := parseClause(fields)
	if err != nil {
		return err
	}
	for _, lit := range clause {
		if lit > pb.NbVars || -lit > pb.NbVars {
			return errors.Errorf("found lit %d but problem is supposed to hold only %d vars", lit, pb.NbVars)
		}
	}
	pb.Clauses = append(pb.Clauses, clause)
	return nil
}
