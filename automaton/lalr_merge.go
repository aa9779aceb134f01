package automaton

import "github.com/tanagra-tools/lrforge/grammar"

// MergeLALR derives an LALR(1) automaton from a canonical LR(1) automaton by
// partitioning states by kernel-core equality (same set of marked
// productions in their kernel, regardless of lookaheads) and merging items
// of the same marked production within each block by unioning their
// lookahead sets. Transitions are translated into the new, re-indexed
// state numbering.
//
// Merging states can introduce new reduce/reduce conflicts that did not
// exist in the LR(1) automaton, but never shift/reduce conflicts (shift
// decisions don't depend on lookahead). Those conflicts are not detected
// here; they surface later, when the parsing table is built over this
// automaton.
func MergeLALR(lr1 *Automaton) *Automaton {
	g := lr1.Grammar

	var order []string
	groups := make(map[string][]int)
	for i, is := range lr1.States {
		key := is.CoreKey()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	merged := newAutomaton(g)
	oldToNew := make([]int, len(lr1.States))
	for _, key := range order {
		idxs := groups[key]
		mergedSet := grammar.NewItemSet()
		for _, oi := range idxs {
			for _, it := range lr1.States[oi].Items() {
				mergedSet.Add(it)
			}
		}
		ni := len(merged.States)
		merged.States = append(merged.States, mergedSet)
		for _, oi := range idxs {
			oldToNew[oi] = ni
		}
	}
	merged.Start = oldToNew[lr1.Start]

	for _, tr := range lr1.Transitions() {
		merged.addTransition(oldToNew[tr.From], tr.Symbol, oldToNew[tr.To])
	}

	return merged
}
