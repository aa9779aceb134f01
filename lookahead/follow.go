package lookahead

import (
	"github.com/tanagra-tools/lrforge/digraph"
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/internal/util"
	"github.com/tanagra-tools/lrforge/symbol"
)

// eofSeed returns the direct FOLLOW(start) contribution required by the
// "eof in FOLLOW(S)" rule: {eof} when the grammar is not already augmented
// with an explicit eof marker, empty otherwise. Per the resolved open
// question, an already-eof-augmented grammar relies solely on its augmented
// production's own structure (S' -> S $) to place eof in FOLLOW(S); there
// is no double-seeding.
func eofSeed(g *grammar.Grammar) util.Set[symbol.Symbol] {
	if g.IsAugmentedWithEof() {
		return util.NewSet[symbol.Symbol]()
	}
	return util.NewSet(symbol.Eof)
}

// computeFollowFixedPoint computes FOLLOW(A) for every nonterminal A by
// dragon-book style iteration.
func computeFollowFixedPoint(g *grammar.Grammar, nullable util.Set[int], first []util.Set[symbol.Symbol]) []util.Set[symbol.Symbol] {
	follow := make([]util.Set[symbol.Symbol], g.NumNonterminals())
	for i := range follow {
		follow[i] = util.NewSet[symbol.Symbol]()
	}
	follow[g.StartSymbol().Index()].AddAll(eofSeed(g))

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions() {
			for i, s := range p.Body {
				if !s.IsNonterminal() {
					continue
				}
				beta := p.Body[i+1:]
				betaFirst := firstOfSequence(first, nullable, beta)
				if follow[s.Index()].AddAllReturningChanged(betaFirst) {
					changed = true
				}
				if sequenceIsNullable(nullable, beta) && s.Index() != p.Head.Index() {
					if follow[s.Index()].AddAllReturningChanged(follow[p.Head.Index()]) {
						changed = true
					}
				}
			}
		}
	}
	return follow
}

// computeFollowDigraph computes FOLLOW(A) for every nonterminal A using the
// digraph method: INITFOLLOW seeded from FIRST(beta) after every occurrence
// of a nonterminal, plus the eof seed on the start symbol, with a
// superset-relation graph A D-> B iff some production B -> alpha A beta has
// beta nullable and A != B, resolved by digraph.Traverse.
func computeFollowDigraph(g *grammar.Grammar, nullable util.Set[int], first []util.Set[symbol.Symbol]) []util.Set[symbol.Symbol] {
	n := g.NumNonterminals()
	initFollow := make([]util.Set[symbol.Symbol], n)
	for i := range initFollow {
		initFollow[i] = util.NewSet[symbol.Symbol]()
	}
	initFollow[g.StartSymbol().Index()].AddAll(eofSeed(g))

	graph := digraph.New(n)

	for _, p := range g.Productions() {
		b := p.Head.Index()
		for i, s := range p.Body {
			if !s.IsNonterminal() {
				continue
			}
			a := s.Index()
			beta := p.Body[i+1:]
			initFollow[a].AddAll(firstOfSequence(first, nullable, beta))
			if sequenceIsNullable(nullable, beta) && a != b {
				graph.AddEdge(a, b)
			}
		}
	}

	return digraph.Traverse(graph, initFollow)
}
