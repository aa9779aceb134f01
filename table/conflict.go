package table

import "github.com/tanagra-tools/lrforge/symbol"

// Conflict records one table cell that received more than one candidate
// action during construction: Winner is the action the §4.6 resolution
// rules selected (shift wins; lowest production index wins among reduces),
// Losers is every action that was not selected. When the winner is a
// reduce, the losing reduces are in ascending production-index order;
// otherwise they are in the order they were added to the cell.
type Conflict struct {
	State    int
	Terminal symbol.Symbol
	Winner   Action
	Losers   []Action
}

// IsShiftReduce reports whether this conflict pitted a shift against one or
// more reduces.
func (c Conflict) IsShiftReduce() bool {
	if c.Winner.Type == Shift {
		return true
	}
	for _, l := range c.Losers {
		if l.Type == Shift {
			return true
		}
	}
	return false
}

// IsReduceReduce reports whether this conflict involved two or more
// distinct reduce candidates.
func (c Conflict) IsReduceReduce() bool {
	count := 0
	if c.Winner.Type == Reduce {
		count++
	}
	for _, l := range c.Losers {
		if l.Type == Reduce {
			count++
		}
	}
	return count >= 2
}

// ConflictReport is the full set of conflicts discovered while building a
// table. It is never fatal on its own; callers decide whether Any()
// indicates a grammar they're willing to accept.
type ConflictReport struct {
	Conflicts []Conflict
}

// Any reports whether any conflict was recorded.
func (r *ConflictReport) Any() bool { return len(r.Conflicts) > 0 }

// For returns the conflict recorded at (state, terminal), if any.
func (r *ConflictReport) For(state int, terminal symbol.Symbol) (Conflict, bool) {
	for _, c := range r.Conflicts {
		if c.State == state && c.Terminal.Equal(terminal) {
			return c, true
		}
	}
	return Conflict{}, false
}
