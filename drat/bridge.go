package drat

// The SMT bridge: records connecting boolean variables to the term graph of
// an SMT front end. Only structural well-formedness is checked here;
// whether variable v really denotes node n is the calling internalizer's
// business, and nothing in the engine ever reads the bindings back.

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// nodeDef is a completed node definition: a head name plus ordered
// argument node ids.
type nodeDef struct {
	name string
	args []int
}

// openDef is a node definition opened by DefBegin and not yet closed.
type openDef struct {
	node int
	name string
	args []int
}

func sameDef(a, b nodeDef) bool {
	if a.name != b.name || len(a.args) != len(b.args) {
		return false
	}
	for i, arg := range a.args {
		if b.args[i] != arg {
			return false
		}
	}
	return true
}

// BoolDef records that boolean variable v stands for AST node n and emits
// the bridge record. v is the variable number as written in the trace,
// 1-based like DIMACS. Bindings are append-only: binding v to a different
// node later is a usage error; an identical rebind is re-emitted and
// otherwise ignored.
func (e *Engine) BoolDef(v, n int) {
	if prev, ok := e.bools[v]; ok && prev != n {
		panic(fmt.Sprintf("variable %d is already bound to node %d", v, prev))
	}
	e.bools[v] = n
	e.trace.boolDef(v, n)
	e.audit.WithFields(logrus.Fields{"var": v, "node": n}).Debug("bool def")
}

// DefBegin opens the definition of node with the given head name. The
// definition is completed by DefEnd after zero or more DefAddArg calls.
// Opening a definition while another is open is a usage error.
func (e *Engine) DefBegin(node int, name string) {
	if e.open != nil {
		panic(fmt.Sprintf("definition of node %d opened while node %d is still open", node, e.open.node))
	}
	e.open = &openDef{node: node, name: name}
}

// DefAddArg appends one argument id to the definition opened by DefBegin.
func (e *Engine) DefAddArg(arg int) {
	if e.open == nil {
		panic("DefAddArg called with no open definition")
	}
	e.open.args = append(e.open.args, arg)
}

// DefEnd closes the open definition, records it and emits the record.
// Definitions are append-only: redefining a node differently is a usage
// error, an identical redefinition is re-emitted harmlessly.
func (e *Engine) DefEnd() {
	if e.open == nil {
		panic("DefEnd called with no open definition")
	}
	node := e.open.node
	def := nodeDef{name: e.open.name, args: e.open.args}
	e.open = nil
	if prev, ok := e.nodes[node]; ok && !sameDef(prev, def) {
		panic(fmt.Sprintf("node %d is already defined as %s with %d args", node, prev.name, len(prev.args)))
	}
	e.nodes[node] = def
	e.trace.nodeDef(node, def.name, def.args)
	e.audit.WithFields(logrus.Fields{"node": node, "name": def.name}).Debug("node def")
}
