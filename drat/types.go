package drat

// Describes basic types and constants that are used in the proof engine.

// Var start at 0 ; thus the CNF variable 1 is encoded as the Var 0.
type Var int32

// Lit start at 0 and are positive ; the sign is the last bit.
// Thus the CNF literal -3 is encoded as 2 * (3-1) + 1 = 5.
type Lit int32

// IntToLit converts a CNF literal to a Lit.
func IntToLit(i int) Lit {
	if i < 0 {
		return Lit(2*(-i-1) + 1)
	}
	return Lit(2 * (i - 1))
}

// IntToVar converts a CNF variable to a Var.
func IntToVar(i int32) Var {
	return Var(i - 1)
}

// Lit returns the positive Lit associated to v.
func (v Var) Lit() Lit {
	return Lit(v * 2)
}

// SignedLit returns the Lit associated to v, negated if 'signed', positive else.
func (v Var) SignedLit(signed bool) Lit {
	if signed {
		return Lit(v*2) + 1
	}
	return Lit(v * 2)
}

// Var returns the variable of l.
func (l Lit) Var() Var {
	return Var(l / 2)
}

// Int returns the equivalent CNF literal.
func (l Lit) Int() int32 {
	sign := l&1 == 1
	res := int32(l/2 + 1)
	if sign {
		return -res
	}
	return res
}

// IsPositive is true iff l is > 0
func (l Lit) IsPositive() bool {
	return l%2 == 0
}

// Negation returns -l, i.e the positive version of l if it is negative,
// or the negative version otherwise.
func (l Lit) Negation() Lit {
	return l ^ 1
}

// Origin tells where a clause came from.
// Lifecycle (active vs deleted) is tracked separately by the store:
// a clause keeps its origin forever, deletion does not rewrite it.
type Origin byte

const (
	// Asserted is the origin of input clauses. They are trusted and never verified.
	Asserted = Origin(iota)
	// Learned is the origin of clauses derived by the host solver.
	// These are the clauses checked for redundancy when checking is enabled.
	Learned
	// TheoryBA is the origin of lemmas coming from the bit-vector/boolean algebra theory.
	TheoryBA
	// TheoryEUF is the origin of lemmas coming from the equality & uninterpreted functions theory.
	TheoryEUF
)

func (o Origin) String() string {
	switch o {
	case Asserted:
		return "asserted"
	case Learned:
		return "learned"
	case TheoryBA:
		return "ba"
	case TheoryEUF:
		return "euf"
	default:
		panic("invalid origin")
	}
}

// IsTheory is true iff clauses of that origin were provided by a theory solver.
// Theory lemmas are recorded in the trace but never verified.
func (o Origin) IsTheory() bool {
	return o == TheoryBA || o == TheoryEUF
}
