package table

import (
	"github.com/tanagra-tools/lrforge/automaton"
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/internal/util"
	"github.com/tanagra-tools/lrforge/lookahead"
	"github.com/tanagra-tools/lrforge/symbol"
)

// Method names the parser-generation method a Table was built under; it is
// retained purely for diagnostics (it has no bearing on table semantics
// once built).
type Method int

const (
	MethodLR0 Method = iota
	MethodSLR1
	MethodLR1
	MethodLALR1Merge
	MethodLALR1Digraph
)

func (m Method) String() string {
	switch m {
	case MethodSLR1:
		return "SLR(1)"
	case MethodLR1:
		return "LR(1)"
	case MethodLALR1Merge:
		return "LALR(1) [merge]"
	case MethodLALR1Digraph:
		return "LALR(1) [digraph]"
	default:
		return "LR(0)"
	}
}

// Selector computes the lookahead set that should trigger a reduce of the
// production named by core, within state s whose item set is is.
type Selector func(s int, core grammar.MarkedProduction, is *grammar.ItemSet) util.Set[symbol.Symbol]

// LR0Selector reduces on every terminal (including eof), the weakest and
// simplest lookahead discipline.
func LR0Selector(g *grammar.Grammar) Selector {
	universe := util.NewSet(symbol.Eof)
	for _, t := range g.Terminals() {
		universe.Add(t)
	}
	return func(int, grammar.MarkedProduction, *grammar.ItemSet) util.Set[symbol.Symbol] {
		return universe.Copy()
	}
}

// SLR1Selector reduces A -> omega on FOLLOW(A).
func SLR1Selector(g *grammar.Grammar, an *lookahead.Analyzer) Selector {
	return func(_ int, core grammar.MarkedProduction, _ *grammar.ItemSet) util.Set[symbol.Symbol] {
		head := g.Production(core.ProductionIndex).Head
		return an.Follow(head)
	}
}

// ItemLookaheadSelector reduces on the lookahead set already attached to the
// reduce item in its own state. It is correct both for the canonical LR(1)
// automaton and for an LALR(1) automaton built by item-set merging, since
// in both cases the item's own lookahead set is exactly what the algorithm
// promises: the canonical lookahead for LR(1), the merged union for LALR(1).
func ItemLookaheadSelector() Selector {
	return func(_ int, core grammar.MarkedProduction, is *grammar.ItemSet) util.Set[symbol.Symbol] {
		return is.Lookaheads(core)
	}
}

// LALRDigraphSelector reduces using lookaheads computed by
// automaton.LALRLookaheads over the LR(0) automaton.
func LALRDigraphSelector(la map[automaton.ReduceKey]util.Set[symbol.Symbol]) Selector {
	return func(s int, core grammar.MarkedProduction, _ *grammar.ItemSet) util.Set[symbol.Symbol] {
		set, ok := la[automaton.ReduceKey{State: s, Production: core.ProductionIndex}]
		if !ok {
			return util.NewSet[symbol.Symbol]()
		}
		return set
	}
}
