package drat

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeRecordBytes(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(Config{Proof: &buf})
	e.BoolDef(3, 17)
	e.DefBegin(17, "and")
	e.DefAddArg(5)
	e.DefAddArg(6)
	e.DefEnd()
	require.NoError(t, e.Flush())
	want := "c b 3 := 17 0\nc n 17 := and 5 6 0\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("bridge records mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceGrammar(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(Config{Proof: &buf})
	e.Add(lits(1, 2), Asserted)
	e.Add(lits(-1, 2), Asserted)
	e.InputAssertion(lits(-2, 1))
	e.Add(lits(3, -2), TheoryBA)
	e.Add(lits(-3), TheoryEUF)
	e.Del(lits(1, 2))
	e.Adhoc("lemma", "42")
	e.Add(lits(2), Learned)
	e.Add(nil, Learned)
	require.NoError(t, e.Flush())
	want := "1 2 0\n" +
		"-1 2 0\n" +
		"c a -2 1 0\n" +
		"c ba 3 -2 0\n" +
		"c euf -3 0\n" +
		"d 1 2 0\n" +
		"c lemma 42 0\n" +
		"2 0\n" +
		"0\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceIsDeterministic(t *testing.T) {
	run := func() string {
		var buf bytes.Buffer
		e := NewEngine(Config{Proof: &buf})
		e.Add(lits(1, 2, 3), Asserted)
		e.Add(lits(-1), Asserted)
		e.Add(lits(-2), Learned)
		e.Del(lits(1, 2, 3))
		e.Add(lits(3), Learned)
		require.NoError(t, e.Flush())
		return buf.String()
	}
	first := run()
	second := run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same calls, different trace (-first +second):\n%s", diff)
	}
}

func TestDeletionIsAlwaysTraced(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(Config{Proof: &buf})
	e.Del(lits(7, -8))
	require.NoError(t, e.Flush())
	assert.Equal(t, "d 7 -8 0\n", buf.String(),
		"the trace records what the host did, known clause or not")
}

func TestAdhocReservedKindPanics(t *testing.T) {
	e := NewEngine(Config{})
	for _, kind := range []string{"", "a", "b", "n", "ba", "euf"} {
		kind := kind
		assert.Panics(t, func() { e.Adhoc(kind, "1") }, "kind %q must be rejected", kind)
	}
	assert.NotPanics(t, func() { e.Adhoc("restarts", "12") })
}

func TestTraceWriteErrorIsSticky(t *testing.T) {
	e := NewEngine(Config{Proof: errWriter{}})
	e.Add(lits(1), Asserted)
	err := e.Flush()
	require.Error(t, err)
	assert.ErrorContains(t, err, "sink failed")
	e.Add(lits(2), Asserted) // dropped, the sink already failed
	assert.Equal(t, err, e.Err())
}

func TestFlushWithoutRecords(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(Config{Proof: &buf})
	require.NoError(t, e.Flush())
	assert.Zero(t, buf.Len())
}

type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) {
	return 0, errors.New("sink failed")
}
