// Package table collapses an automaton plus a set of per-reduce-item
// lookaheads into ACTION/GOTO matrices, applying the deterministic
// conflict-resolution rules: shift wins on shift/reduce, lowest production
// index wins on reduce/reduce. Conflicts are never fatal; they are recorded
// in a ConflictReport alongside the table.
package table

import (
	"fmt"

	"github.com/tanagra-tools/lrforge/grammar"
)

// ActionType is the kind of entry in an ACTION cell.
type ActionType int

const (
	Error ActionType = iota
	Shift
	Reduce
	Accept
)

func (t ActionType) String() string {
	switch t {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table cell: a Shift to State, a Reduce of
// Production, an Accept, or (the zero value) an Error.
type Action struct {
	Type       ActionType
	State      int
	Production int
}

func (a Action) String(g *grammar.Grammar) string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %s", g.Production(a.Production).String())
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

func (a Action) Equal(o Action) bool {
	return a.Type == o.Type && a.State == o.State && a.Production == o.Production
}
