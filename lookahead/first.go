package lookahead

import (
	"github.com/tanagra-tools/lrforge/digraph"
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/internal/util"
	"github.com/tanagra-tools/lrforge/symbol"
)

// computeFirstFixedPoint computes FIRST(A) for every nonterminal A by
// dragon-book style iteration: repeat over every production until no set
// grows.
func computeFirstFixedPoint(g *grammar.Grammar, nullable util.Set[int]) []util.Set[symbol.Symbol] {
	first := make([]util.Set[symbol.Symbol], g.NumNonterminals())
	for i := range first {
		first[i] = util.NewSet[symbol.Symbol]()
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions() {
			headFirst := first[p.Head.Index()]
			for _, s := range p.Body {
				if s.IsTerminal() {
					if headFirst.AddAllReturningChanged(util.NewSet(s)) {
						changed = true
					}
					break
				}
				// nonterminal
				if headFirst.AddAllReturningChanged(first[s.Index()]) {
					changed = true
				}
				if !nullable.Has(s.Index()) {
					break
				}
			}
		}
	}
	return first
}

// computeFirstDigraph computes FIRST(A) for every nonterminal A using the
// digraph method: a direct-contribution set INITFIRST(A) seeded from every
// production A -> alpha a beta with alpha nullable, plus a superset-relation
// graph A D-> B iff some production A -> alpha B beta has alpha nullable and
// A != B, resolved by digraph.Traverse.
func computeFirstDigraph(g *grammar.Grammar, nullable util.Set[int]) []util.Set[symbol.Symbol] {
	n := g.NumNonterminals()
	initFirst := make([]util.Set[symbol.Symbol], n)
	for i := range initFirst {
		initFirst[i] = util.NewSet[symbol.Symbol]()
	}
	graph := digraph.New(n)

	for _, p := range g.Productions() {
		a := p.Head.Index()
		for _, s := range p.Body {
			if s.IsTerminal() {
				initFirst[a].Add(s)
				break
			}
			// nonterminal B
			if s.Index() != a {
				graph.AddEdge(a, s.Index())
			}
			if !nullable.Has(s.Index()) {
				break
			}
		}
	}

	return digraph.Traverse(graph, initFirst)
}

// firstOfSequence returns FIRST(X1...Xn) per the extended definition: the
// union of FIRST(Xi) for the longest nullable prefix X1..Xi-1, plus, if the
// entire sequence is nullable, nothing extra (callers that need to know
// "and is the whole sequence nullable" should use sequenceIsNullable
// alongside this).
func firstOfSequence(first []util.Set[symbol.Symbol], nullable util.Set[int], seq []symbol.Symbol) util.Set[symbol.Symbol] {
	out := util.NewSet[symbol.Symbol]()
	for _, s := range seq {
		switch {
		case s.IsEpsilon():
			continue
		case s.IsTerminal(), s.IsEof():
			out.Add(s)
			return out
		default:
			out.AddAll(first[s.Index()])
			if !nullable.Has(s.Index()) {
				return out
			}
		}
	}
	return out
}

func sequenceIsNullable(nullable util.Set[int], seq []symbol.Symbol) bool {
	for _, s := range seq {
		if s.IsEpsilon() {
			continue
		}
		if s.IsTerminal() || s.IsEof() {
			return false
		}
		if !nullable.Has(s.Index()) {
			return false
		}
	}
	return true
}
