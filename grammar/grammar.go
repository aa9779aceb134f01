package grammar

import (
	"github.com/tanagra-tools/lrforge/parseerr"
	"github.com/tanagra-tools/lrforge/symbol"
)

// Grammar is an immutable context-free grammar: ordered, indexed terminals
// and nonterminals, a list of productions (production 0 is always the
// augmented start), the start symbol, and a precomputed per-nonterminal
// production index preserving source order. Grammar values are never
// mutated after Builder.Build returns them; every analysis package treats
// a *Grammar as read-only.
type Grammar struct {
	terminals    *symbol.Registry
	nonterminals *symbol.Registry
	productions  []Production
	start        symbol.Symbol
	augmented    bool
	augmentedEof bool
	byHead       map[int][]int // nonterminal index -> production indices, source order
}

// Terminals returns the grammar's terminals in index order.
func (g *Grammar) Terminals() []symbol.Symbol { return g.terminals.All() }

// Nonterminals returns the grammar's nonterminals in index order.
func (g *Grammar) Nonterminals() []symbol.Symbol { return g.nonterminals.All() }

// Terminal returns the terminal with the given dense index.
func (g *Grammar) Terminal(index int) symbol.Symbol { return g.terminals.At(index) }

// Nonterminal returns the nonterminal with the given dense index.
func (g *Grammar) Nonterminal(index int) symbol.Symbol { return g.nonterminals.At(index) }

// NumTerminals returns the number of terminals, excluding eof.
func (g *Grammar) NumTerminals() int { return g.terminals.Len() }

// NumNonterminals returns the number of nonterminals.
func (g *Grammar) NumNonterminals() int { return g.nonterminals.Len() }

// StartSymbol returns the original (pre-augmentation) start nonterminal.
func (g *Grammar) StartSymbol() symbol.Symbol { return g.start }

// Productions returns every production, including the augmented production
// 0, in index order.
func (g *Grammar) Productions() []Production { return g.productions }

// Production returns the production with the given index.
func (g *Grammar) Production(index int) Production { return g.productions[index] }

// NumProductions returns the total production count, including production 0.
func (g *Grammar) NumProductions() int { return len(g.productions) }

// IsAugmented reports whether production 0 is the synthesized augmented
// start production S' -> S (always true for a Grammar built by Builder).
func (g *Grammar) IsAugmented() bool { return g.augmented }

// IsAugmentedWithEof reports whether production 0's body ends in the
// explicit eof marker (S' -> S $) rather than just S' -> S.
func (g *Grammar) IsAugmentedWithEof() bool { return g.augmentedEof }

// AugmentedStart returns the synthesized S' nonterminal, production 0's
// head.
func (g *Grammar) AugmentedStart() symbol.Symbol { return g.productions[0].Head }

// ProductionsFor returns, in source order, every production whose head is
// the given nonterminal. This order is load-bearing: it drives
// reduce/reduce conflict resolution (lowest production index wins).
func (g *Grammar) ProductionsFor(nt symbol.Symbol) []Production {
	idxs := g.byHead[nt.Index()]
	out := make([]Production, len(idxs))
	for i, pi := range idxs {
		out[i] = g.productions[pi]
	}
	return out
}

func (g *Grammar) IsTerminal(s symbol.Symbol) bool    { return s.IsTerminal() }
func (g *Grammar) IsNonterminal(s symbol.Symbol) bool { return s.IsNonterminal() }

// AcceptItem is the marked production whose presence in a state's kernel
// marks that state as the accept state: the augmented production with the
// dot just before the end (before the trailing eof, if augmented with one).
func (g *Grammar) AcceptItem() MarkedProduction {
	body := g.productions[0].Body
	dot := len(body)
	if g.augmentedEof {
		dot = len(body) - 1
	}
	return MarkedProduction{ProductionIndex: 0, Dot: dot}
}

func (g *Grammar) String() string {
	s := ""
	for _, p := range g.productions {
		s += p.String() + "\n"
	}
	return s
}

// reservedEpsilonNames are symbol spellings a caller may not use in a
// production body; epsilon is represented structurally (an empty body),
// never as a body element.
var reservedEpsilonNames = map[string]bool{"": true, "ε": true, "epsilon": true, "Epsilon": true, "EPSILON": true}

func validateNoUselessSymbols(g *Grammar) error {
	reachable := map[int]bool{g.start.Index(): true}
	generating := map[int]bool{}

	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			if p.Head.Index() < 0 {
				continue
			}
			if generating[p.Head.Index()] {
				continue
			}
			allGenerating := true
			for _, s := range p.Body {
				if s.IsNonterminal() && !generating[s.Index()] {
					allGenerating = false
					break
				}
			}
			if allGenerating {
				generating[p.Head.Index()] = true
				changed = true
			}
		}
	}

	changed = true
	for changed {
		changed = false
		for _, p := range g.productions {
			if !reachable[p.Head.Index()] {
				continue
			}
			for _, s := range p.Body {
				if s.IsNonterminal() && !reachable[s.Index()] {
					reachable[s.Index()] = true
					changed = true
				}
			}
		}
	}

	for _, nt := range g.nonterminals.All() {
		if nt.Index() == g.AugmentedStart().Index() {
			continue
		}
		if !reachable[nt.Index()] {
			return parseerr.NewGrammarError("useless symbol", nt.Name()+" is unreachable from the start symbol")
		}
		if !generating[nt.Index()] {
			return parseerr.NewGrammarError("useless symbol", nt.Name()+" can never derive a terminal string")
		}
	}
	return nil
}
