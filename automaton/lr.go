package automaton

import (
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/lookahead"
	"github.com/tanagra-tools/lrforge/symbol"
)

// BuildLR0 constructs the canonical collection of LR(0) item sets: states
// hold items with no lookahead, and closure/goto ignore lookahead entirely.
func BuildLR0(g *grammar.Grammar) *Automaton {
	return buildCanonical(g, nil, false)
}

// BuildLR1 constructs the canonical collection of LR(1) item sets per
// Algorithm 4.56 (purple dragon book): states are distinguished both by
// core and by lookahead set, so a kernel shared across two contexts with
// different lookaheads becomes two distinct states.
func BuildLR1(g *grammar.Grammar, an *lookahead.Analyzer) *Automaton {
	return buildCanonical(g, an, true)
}

func buildCanonical(g *grammar.Grammar, an *lookahead.Analyzer, lr1 bool) *Automaton {
	startCore := grammar.MarkedProduction{ProductionIndex: 0, Dot: 0}
	startSet := grammar.NewItemSet()
	if lr1 {
		startSet.Add(grammar.NewLR1Item(startCore, symbol.Eof))
	} else {
		startSet.Add(grammar.NewLR0Item(startCore))
	}
	start := closure(g, an, startSet, lr1)

	at := newAutomaton(g)
	at.States = append(at.States, start)
	at.Start = 0

	stateIndex := map[string]int{start.FullKey(): 0}

	queue := []int{0}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		is := at.States[i]

		for _, x := range dotSymbols(g, is) {
			if x.IsEof() {
				// eof is never shifted: the table builder turns the
				// augmented item's presence in a state's kernel directly
				// into an Accept action instead of a transition.
				continue
			}
			target := successor(g, an, is, x, lr1)
			if target == nil || target.Len() == 0 {
				continue
			}
			key := target.FullKey()
			j, exists := stateIndex[key]
			if !exists {
				j = len(at.States)
				at.States = append(at.States, target)
				stateIndex[key] = j
				queue = append(queue, j)
			}
			at.addTransition(i, x, j)
		}
	}

	return at
}
