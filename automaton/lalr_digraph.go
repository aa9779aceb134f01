package automaton

import (
	"github.com/tanagra-tools/lrforge/digraph"
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/internal/util"
	"github.com/tanagra-tools/lrforge/lookahead"
	"github.com/tanagra-tools/lrforge/symbol"
)

// ReduceKey identifies one reduce item in one state of the LR(0) automaton:
// state q contains the reduce item for production index Production.
type ReduceKey struct {
	State      int
	Production int
}

// ntPair is a nonterminal transition (p, A) of the LR(0) automaton; DeRemer
// and Pennello's algorithm solves Read and Follow over this vertex space.
type ntPair struct {
	State int
	NT    symbol.Symbol
}

// LALRLookaheads computes LA(q, A->omega) for every reduce item in every
// state of the LR(0) automaton lr0, using the efficient digraph algorithm:
// enumerate the nonterminal transitions (p,A), solve Read(p,A) = DR(p,A)
// union the "reads" successors, solve Follow(p,A) = Read(p,A) union the
// "includes" successors, then for every reduce item gather Follow(p,A) over
// every (p,A) it looks back to.
func LALRLookaheads(g *grammar.Grammar, an *lookahead.Analyzer, lr0 *Automaton) map[ReduceKey]util.Set[symbol.Symbol] {
	pairs, pairIndex := collectNTPairs(lr0)

	readGraph := digraph.New(len(pairs))
	initRead := make([]util.Set[symbol.Symbol], len(pairs))
	for i, pr := range pairs {
		r, _ := lr0.Next(pr.State, pr.NT)
		dr := util.NewSet[symbol.Symbol]()
		for _, t := range g.Terminals() {
			if _, ok := lr0.Next(r, t); ok {
				dr.Add(t)
			}
		}
		if lr0.IsAcceptState(r) {
			dr.Add(symbol.Eof)
		}
		initRead[i] = dr

		for _, c := range g.Nonterminals() {
			if !an.Nullable(c) {
				continue
			}
			if _, ok := lr0.Next(r, c); !ok {
				continue
			}
			if j, ok := pairIndex[ntPair{r, c}]; ok {
				readGraph.AddEdge(i, j)
			}
		}
	}
	readSets := digraph.Traverse(readGraph, initRead)

	includesGraph := digraph.New(len(pairs))
	for _, p := range g.Productions() {
		if p.Index() == 0 {
			continue // the augmented start's head never transitions
		}
		for i, xi := range p.Body {
			if !xi.IsNonterminal() {
				continue
			}
			gamma := p.Body[i+1:]
			if !an.SequenceIsNullable(gamma) {
				continue
			}
			beta := p.Body[:i]

			for pPrime := 0; pPrime < lr0.NumStates(); pPrime++ {
				target, ok := lr0.trace(pPrime, beta)
				if !ok {
					continue
				}
				from, ok := pairIndex[ntPair{target, xi}]
				if !ok {
					continue
				}
				to, ok := pairIndex[ntPair{pPrime, p.Head}]
				if !ok {
					continue
				}
				includesGraph.AddEdge(from, to)
			}
		}
	}
	followSets := digraph.Traverse(includesGraph, readSets)

	la := make(map[ReduceKey]util.Set[symbol.Symbol])
	for q := 0; q < lr0.NumStates(); q++ {
		for _, core := range lr0.States[q].Cores() {
			if core.ProductionIndex == 0 || !core.IsReduce(g) {
				continue
			}
			prod := g.Production(core.ProductionIndex)
			key := ReduceKey{State: q, Production: core.ProductionIndex}
			set := util.NewSet[symbol.Symbol]()

			for pPrime := 0; pPrime < lr0.NumStates(); pPrime++ {
				target, ok := lr0.trace(pPrime, prod.Body)
				if !ok || target != q {
					continue
				}
				if j, ok := pairIndex[ntPair{pPrime, prod.Head}]; ok {
					set.AddAll(followSets[j])
				}
			}
			la[key] = set
		}
	}
	return la
}

func collectNTPairs(lr0 *Automaton) ([]ntPair, map[ntPair]int) {
	var pairs []ntPair
	index := make(map[ntPair]int)
	for _, tr := range lr0.Transitions() {
		if !tr.Symbol.IsNonterminal() {
			continue
		}
		key := ntPair{tr.From, tr.Symbol}
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, key)
	}
	return pairs, index
}
