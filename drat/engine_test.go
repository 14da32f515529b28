package drat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lits converts CNF literals to their internal representation.
func lits(xs ...int) []Lit {
	res := make([]Lit, len(xs))
	for i, x := range xs {
		res[i] = IntToLit(x)
	}
	return res
}

// snapshotWatches deep-copies the watch lists, preserving nil-ness, so two
// states can be compared for equality.
func snapshotWatches(s *store) [][]watch {
	cp := make([][]watch, len(s.watches))
	for i, ws := range s.watches {
		if ws != nil {
			cp[i] = append([]watch{}, ws...)
		}
	}
	return cp
}

func TestClashingUnitsMakeEngineInconsistent(t *testing.T) {
	e := NewEngine(Config{})
	e.Add(lits(-1), Learned)
	assert.False(t, e.Inconsistent(), "a single unit cannot be inconsistent")
	e.Add(lits(1), Learned)
	assert.True(t, e.Inconsistent(), "adding both polarities of a variable must clash")
}

func TestEmptyClauseMakesEngineInconsistent(t *testing.T) {
	e := NewEngine(Config{})
	e.Add(nil, Learned)
	assert.True(t, e.Inconsistent())
}

func TestInconsistencyIsMonotonic(t *testing.T) {
	e := NewEngine(Config{})
	e.Add(lits(1), Asserted)
	e.Add(lits(-1), Asserted)
	require.True(t, e.Inconsistent())
	e.Add(lits(2, 3), Asserted)
	e.Del(lits(2, 3))
	e.Add(lits(4), Learned)
	assert.True(t, e.Inconsistent(), "the flag must survive any later operation")
}

func TestDeleteIsIdempotent(t *testing.T) {
	e := NewEngine(Config{})
	e.Add(lits(1, 2), Asserted)
	e.Add(lits(1, 3), Asserted)
	e.Del(lits(1, 2))
	before := snapshotWatches(e.store)
	e.Del(lits(1, 2))
	assert.Equal(t, before, e.store.watches, "second deletion must not change watch lists")
	assert.True(t, e.Contains(lits(1, 3)))
}

func TestDeleteUnknownClauseIsANoOp(t *testing.T) {
	e := NewEngine(Config{})
	e.Add(lits(1, 2), Asserted)
	before := snapshotWatches(e.store)
	e.Del(lits(5, 6))
	assert.Equal(t, before, e.store.watches)
	assert.True(t, e.Contains(lits(1, 2)))
}

func TestDeletedUnitKeepsItsAssignment(t *testing.T) {
	e := NewEngine(Config{})
	e.Add(lits(1), Asserted)
	e.Del(lits(1))
	assert.False(t, e.Contains(lits(1)))
	assert.Equal(t, int8(1), e.value(IntToLit(1)), "unit deletion does not retract the propagated fact")
}

func TestUnitUnderAssignmentPropagatesAtInsertion(t *testing.T) {
	e := NewEngine(Config{})
	e.Add(lits(-1), Asserted)
	e.Add(lits(1, 2), Asserted) // unit on 2 the moment it is added
	assert.Equal(t, int8(1), e.value(IntToLit(2)))
	assert.False(t, e.Inconsistent())
}

func TestFullyFalsifiedClauseAtInsertion(t *testing.T) {
	e := NewEngine(Config{})
	e.Add(lits(-1), Asserted)
	e.Add(lits(-2), Asserted)
	e.Add(lits(1, 2), Asserted)
	assert.True(t, e.Inconsistent())
}

func TestStatsCounters(t *testing.T) {
	e := NewEngine(Config{Check: true})
	e.Add(lits(1, 2), Asserted)
	e.Add(lits(-1, 2), Asserted)
	e.Add(lits(2), Learned)
	e.Del(lits(1, 2))
	assert.Equal(t, 3, e.Stats.NbAdded)
	assert.Equal(t, 1, e.Stats.NbDeleted)
	assert.Equal(t, 1, e.Stats.NbVerified)
}

func TestInputAssertionIsStoredAndNeverVerified(t *testing.T) {
	e := NewEngine(Config{Check: true})
	// An unsound input assertion must still be accepted: trusted means trusted.
	e.Add(lits(1), Asserted)
	e.InputAssertion(lits(-1))
	assert.True(t, e.Inconsistent())
	assert.True(t, e.Contains(lits(-1)))
}

func TestActivityLogging(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(Config{Audit: &buf})
	e.LogActivity([]float64{0.5, 1.25})
	assert.Zero(t, buf.Len(), "activity data needs the Activity flag")

	buf.Reset()
	e = NewEngine(Config{Audit: &buf, Activity: true})
	e.LogActivity([]float64{0.5, 1.25})
	assert.Contains(t, buf.String(), "activity")
	assert.Contains(t, buf.String(), "0.5 1.25")
}

func TestEngineDump(t *testing.T) {
	e := NewEngine(Config{})
	e.Add(lits(1, 2), Asserted)
	e.Add(lits(-2), Learned)
	e.Del(lits(1, 2))
	dump := e.String()
	assert.Contains(t, dump, "deleted asserted")
	assert.Contains(t, dump, "learned -2 0")
	assert.Contains(t, dump, "assignment:")
}
