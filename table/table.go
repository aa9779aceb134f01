package table

import (
	"sort"

	"github.com/tanagra-tools/lrforge/automaton"
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/symbol"
)

// Table is an ACTION/GOTO parsing table: two matrices indexed by state and
// symbol, built once from an automaton and read-only thereafter. It may be
// freely shared across goroutines.
type Table struct {
	Grammar *grammar.Grammar
	Method  Method
	Initial int

	action map[int]map[symbol.Symbol]Action
	goTo   map[int]map[symbol.Symbol]int
	nStat  int
}

// Action returns the ACTION table entry for (state, terminal); the zero
// value (Error) if none is recorded.
func (t *Table) Action(state int, terminal symbol.Symbol) Action {
	row, ok := t.action[state]
	if !ok {
		return Action{Type: Error}
	}
	act, ok := row[terminal]
	if !ok {
		return Action{Type: Error}
	}
	return act
}

// Goto returns the GOTO table entry for (state, nonterminal), and whether
// one is defined (the zero state 0 is reserved for "no transition").
func (t *Table) Goto(state int, nonterminal symbol.Symbol) (int, bool) {
	row, ok := t.goTo[state]
	if !ok {
		return 0, false
	}
	s, ok := row[nonterminal]
	return s, ok
}

// NumStates returns the number of states the table was built over.
func (t *Table) NumStates() int { return t.nStat }

// ActionRow and GotoRow let a caller reassemble a Table from precomputed
// rows rather than an automaton, as package persist does when reloading a
// cached table from disk.
type ActionRow struct {
	State    int
	Terminal symbol.Symbol
	Action   Action
}

type GotoRow struct {
	State       int
	Nonterminal symbol.Symbol
	Target      int
}

// NewFromRows assembles a Table directly from rows already resolved
// elsewhere, bypassing Build's automaton traversal and conflict
// resolution entirely. It exists for package persist to reconstitute a
// cached table without rerunning CLOSURE, GOTO, or LALR analysis.
func NewFromRows(g *grammar.Grammar, method Method, initial, numStates int, actions []ActionRow, gotos []GotoRow) *Table {
	t := &Table{Grammar: g, Method: method, Initial: initial, nStat: numStates,
		action: make(map[int]map[symbol.Symbol]Action), goTo: make(map[int]map[symbol.Symbol]int)}
	for _, r := range actions {
		if t.action[r.State] == nil {
			t.action[r.State] = make(map[symbol.Symbol]Action)
		}
		t.action[r.State][r.Terminal] = r.Action
	}
	for _, r := range gotos {
		if t.goTo[r.State] == nil {
			t.goTo[r.State] = make(map[symbol.Symbol]int)
		}
		t.goTo[r.State][r.Nonterminal] = r.Target
	}
	return t
}

// Build assembles a Table from an automaton and a per-reduce-item lookahead
// selector, applying the deterministic conflict-resolution rules: shift
// wins on shift/reduce; lowest production index wins on reduce/reduce. It
// has no error return and never fails on a conflicted grammar: conflicts
// are recorded in the returned ConflictReport, which is always non-nil.
func Build(g *grammar.Grammar, at *automaton.Automaton, method Method, selector Selector) (*Table, *ConflictReport) {
	type keyT struct {
		state int
		term  symbol.Symbol
	}
	candidates := make(map[keyT][]Action)
	addCandidate := func(s int, a symbol.Symbol, act Action) {
		k := keyT{s, a}
		candidates[k] = append(candidates[k], act)
	}

	t := &Table{Grammar: g, Method: method, Initial: at.Start, nStat: at.NumStates(),
		action: make(map[int]map[symbol.Symbol]Action), goTo: make(map[int]map[symbol.Symbol]int)}

	for s := 0; s < at.NumStates(); s++ {
		if at.IsAcceptState(s) {
			addCandidate(s, symbol.Eof, Action{Type: Accept})
		}
	}

	for _, tr := range at.Transitions() {
		if tr.Symbol.IsTerminalLike() {
			addCandidate(tr.From, tr.Symbol, Action{Type: Shift, State: tr.To})
		} else {
			if t.goTo[tr.From] == nil {
				t.goTo[tr.From] = make(map[symbol.Symbol]int)
			}
			t.goTo[tr.From][tr.Symbol] = tr.To
		}
	}

	for s := 0; s < at.NumStates(); s++ {
		is := at.State(s)
		for _, core := range is.Cores() {
			if core.ProductionIndex == 0 || !core.IsReduce(g) {
				continue
			}
			las := selector(s, core, is)
			for _, a := range las.Elements() {
				addCandidate(s, a, Action{Type: Reduce, Production: core.ProductionIndex})
			}
		}
	}

	report := &ConflictReport{}

	keys := make([]keyT, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].state != keys[j].state {
			return keys[i].state < keys[j].state
		}
		return keys[i].term.String() < keys[j].term.String()
	})

	for _, k := range keys {
		acts := candidates[k]
		winner, losers := resolve(acts)
		if t.action[k.state] == nil {
			t.action[k.state] = make(map[symbol.Symbol]Action)
		}
		t.action[k.state][k.term] = winner
		if len(losers) > 0 {
			report.Conflicts = append(report.Conflicts, Conflict{State: k.state, Terminal: k.term, Winner: winner, Losers: losers})
		}
	}

	return t, report
}

// resolve applies the deterministic conflict-resolution rules to a cell's
// candidate actions: Accept always wins (it only ever co-occurs with
// automaton-internal artifacts, never a genuine competing action); shift
// wins over any reduce; among multiple reduces, the lowest production index
// wins.
func resolve(acts []Action) (winner Action, losers []Action) {
	for _, a := range acts {
		if a.Type == Accept {
			winner = a
			for _, o := range acts {
				if !o.Equal(a) {
					losers = append(losers, o)
				}
			}
			return
		}
	}

	var shift *Action
	var reduces []Action
	for i, a := range acts {
		if a.Type == Shift && shift == nil {
			shift = &acts[i]
		} else if a.Type == Reduce {
			reduces = append(reduces, a)
		}
	}

	if shift != nil {
		return *shift, reduces
	}

	sort.Slice(reduces, func(i, j int) bool { return reduces[i].Production < reduces[j].Production })
	if len(reduces) == 0 {
		return Action{Type: Error}, nil
	}
	return reduces[0], reduces[1:]
}
