package automaton

import (
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/lookahead"
)

// closure computes the CLOSURE of an item set. When lr1 is true, each added
// item's lookahead set is FIRST(beta . L) for the originating item's beta
// and lookahead set L; when false, LR(0) items with no lookaheads are added
// instead. Items already merged by core have their lookaheads unioned in
// place by ItemSet.Add.
func closure(g *grammar.Grammar, an *lookahead.Analyzer, start *grammar.ItemSet, lr1 bool) *grammar.ItemSet {
	is := start.Copy()
	queue := is.Items()

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		prod := g.Production(it.Core.ProductionIndex)
		if it.Core.Dot >= len(prod.Body) {
			continue
		}
		b := prod.Body[it.Core.Dot]
		if !b.IsNonterminal() {
			continue
		}
		beta := prod.Body[it.Core.Dot+1:]

		for _, bprod := range g.ProductionsFor(b) {
			newCore := grammar.MarkedProduction{ProductionIndex: bprod.Index(), Dot: 0}

			var newItem grammar.Item
			if lr1 {
				las := an.FirstOfSequenceWithLookahead(beta, it.Lookaheads)
				newItem = grammar.Item{Core: newCore, Lookaheads: las}
			} else {
				newItem = grammar.NewLR0Item(newCore)
			}

			if is.Add(newItem) {
				queue = append(queue, grammar.Item{Core: newCore, Lookaheads: is.Lookaheads(newCore)})
			}
		}
	}

	return is
}
