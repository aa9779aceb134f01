package automaton

import (
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/lookahead"
	"github.com/tanagra-tools/lrforge/symbol"
)

// successor computes GOTO(I, X) = closure({ [A -> alpha X . beta, L] |
// [A -> alpha . X beta, L] in I }). It returns nil if no item in I has dot
// symbol X.
func successor(g *grammar.Grammar, an *lookahead.Analyzer, is *grammar.ItemSet, x symbol.Symbol, lr1 bool) *grammar.ItemSet {
	kernel := grammar.NewItemSet()
	for _, it := range is.Items() {
		prod := g.Production(it.Core.ProductionIndex)
		if it.Core.Dot >= len(prod.Body) {
			continue
		}
		if !prod.Body[it.Core.Dot].Equal(x) {
			continue
		}
		kernel.Add(grammar.Item{Core: it.Core.Advance(), Lookaheads: it.Lookaheads.Copy()})
	}
	if kernel.Len() == 0 {
		return nil
	}
	return closure(g, an, kernel, lr1)
}
