package drat

// Trace serialization. Every record is one ASCII line of space-separated
// tokens terminated by "0": bare literal lines for additions, "d" lines for
// deletions, "c"-prefixed records for the SMT extensions. Downstream
// checkers parse these bytes, so the grammar is not negotiable.

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// litsString returns the signed CNF form of lits, space separated,
// e.g. "1 -2 3".
func litsString(lits []Lit) string {
	strs := make([]string, len(lits))
	for i, l := range lits {
		strs[i] = strconv.Itoa(int(l.Int()))
	}
	return strings.Join(strs, " ")
}

// trailer returns lits followed by the terminating zero, e.g. "1 -2 0",
// or just "0" for the empty clause.
func trailer(lits []Lit) string {
	if len(lits) == 0 {
		return "0"
	}
	return litsString(lits) + " 0"
}

// tracer appends records to the primary proof sink through a buffered
// writer. Write errors are sticky: the first one is kept, later records are
// dropped, and Flush surfaces the error. The engine never retries.
type tracer struct {
	w   *bufio.Writer
	err error
}

func newTracer(w io.Writer) *tracer {
	if w == nil {
		w = io.Discard
	}
	return &tracer{w: bufio.NewWriter(w)}
}

func (t *tracer) writeLine(s string) {
	if t.err != nil {
		return
	}
	if _, err := t.w.WriteString(s + "\n"); err != nil {
		t.err = err
	}
}

// addition writes a bare addition record for an asserted or learned clause.
func (t *tracer) addition(lits []Lit) {
	t.writeLine(trailer(lits))
}

// theory writes a theory-tagged addition record, e.g. "c euf 1 -2 0".
func (t *tracer) theory(o Origin, lits []Lit) {
	t.writeLine("c " + o.String() + " " + trailer(lits))
}

// deletion writes a deletion record, e.g. "d 1 -2 0".
func (t *tracer) deletion(lits []Lit) {
	t.writeLine("d " + trailer(lits))
}

// inputAssertion writes the record of a trusted outside clause,
// e.g. "c a 1 -2 0".
func (t *tracer) inputAssertion(lits []Lit) {
	t.writeLine("c a " + trailer(lits))
}

// boolDef writes a variable/node bridge record, e.g. "c b 3 := 17 0".
func (t *tracer) boolDef(v, node int) {
	t.writeLine("c b " + strconv.Itoa(v) + " := " + strconv.Itoa(node) + " 0")
}

// nodeDef writes a full node definition record,
// e.g. "c n 17 := and 5 6 0".
func (t *tracer) nodeDef(node int, name string, args []int) {
	fields := make([]string, 0, len(args)+6)
	fields = append(fields, "c", "n", strconv.Itoa(node), ":=", name)
	for _, arg := range args {
		fields = append(fields, strconv.Itoa(arg))
	}
	fields = append(fields, "0")
	t.writeLine(strings.Join(fields, " "))
}

// adhoc writes a structured comment record of the given kind,
// e.g. "c restarts 17 0".
func (t *tracer) adhoc(kind string, payload []string) {
	fields := make([]string, 0, len(payload)+3)
	fields = append(fields, "c", kind)
	fields = append(fields, payload...)
	fields = append(fields, "0")
	t.writeLine(strings.Join(fields, " "))
}

// flush drains the buffer to the sink and returns the sticky error, if any.
func (t *tracer) flush() error {
	if t.err != nil {
		return t.err
	}
	if err := t.w.Flush(); err != nil {
		t.err = err
	}
	return t.err
}

// newAudit builds the logger feeding the secondary sink. Audit data is
// best-effort debugging material: no format or retention promise is made,
// and nothing downstream is expected to parse it.
func newAudit(w io.Writer, activity bool) *logrus.Logger {
	logger := logrus.New()
	if w == nil {
		w = io.Discard
	}
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	if activity {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
