package lookahead

import (
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/internal/util"
	"github.com/tanagra-tools/lrforge/symbol"
)

// Method selects which algorithm an Analyzer uses internally. Both produce
// identical predicates; the choice only affects how they get there.
type Method int

const (
	MethodFixedPoint Method = iota
	MethodDigraph
)

// Analyzer is a concrete lookahead analyzer over a single grammar, exposing
// Nullable/First/Follow accessors regardless of which method computed them.
type Analyzer struct {
	g        *grammar.Grammar
	method   Method
	nullable util.Set[int]
	first    []util.Set[symbol.Symbol]
	follow   []util.Set[symbol.Symbol]
}

// New builds an Analyzer using the requested method.
func New(g *grammar.Grammar, method Method) *Analyzer {
	a := &Analyzer{g: g, method: method}
	a.nullable = computeNullable(g)
	switch method {
	case MethodDigraph:
		a.first = computeFirstDigraph(g, a.nullable)
		a.follow = computeFollowDigraph(g, a.nullable, a.first)
	default:
		a.first = computeFirstFixedPoint(g, a.nullable)
		a.follow = computeFollowFixedPoint(g, a.nullable, a.first)
	}
	return a
}

// NewFixedPoint is shorthand for New(g, MethodFixedPoint).
func NewFixedPoint(g *grammar.Grammar) *Analyzer { return New(g, MethodFixedPoint) }

// NewDigraph is shorthand for New(g, MethodDigraph).
func NewDigraph(g *grammar.Grammar) *Analyzer { return New(g, MethodDigraph) }

// Method reports which algorithm this Analyzer used.
func (a *Analyzer) Method() Method { return a.method }

// Nullable reports nullable(s) under the extended convention: nonterminals
// per the fixed point, epsilon and eof always true, terminals always false.
func (a *Analyzer) Nullable(s symbol.Symbol) bool {
	switch {
	case s.IsEpsilon(), s.IsEof():
		return true
	case s.IsTerminal():
		return false
	default:
		return a.nullable.Has(s.Index())
	}
}

// First returns FIRST(s): {s} for a terminal or eof, empty for epsilon, the
// computed set for a nonterminal.
func (a *Analyzer) First(s symbol.Symbol) util.Set[symbol.Symbol] {
	switch {
	case s.IsEpsilon():
		return util.NewSet[symbol.Symbol]()
	case s.IsTerminal(), s.IsEof():
		return util.NewSet(s)
	default:
		return a.first[s.Index()].Copy()
	}
}

// FirstOfSequence returns FIRST(X1...Xn) for an arbitrary sentential form.
func (a *Analyzer) FirstOfSequence(seq []symbol.Symbol) util.Set[symbol.Symbol] {
	return firstOfSequence(a.first, a.nullable, seq)
}

// SequenceIsNullable reports whether the entire sequence can derive epsilon.
func (a *Analyzer) SequenceIsNullable(seq []symbol.Symbol) bool {
	return sequenceIsNullable(a.nullable, seq)
}

// FirstOfSequenceWithLookahead returns FIRST(beta . L): FIRST(beta) if beta
// is not nullable, or FIRST(beta) union L if it is. This is exactly the set
// CLOSURE needs when computing lookaheads for [B -> .gamma, a] derived from
// [A -> alpha . B beta, L]: a ranges over FirstOfSequenceWithLookahead(beta,
// L).
func (a *Analyzer) FirstOfSequenceWithLookahead(beta []symbol.Symbol, la util.Set[symbol.Symbol]) util.Set[symbol.Symbol] {
	out := a.FirstOfSequence(beta)
	if a.SequenceIsNullable(beta) {
		out.AddAll(la)
	}
	return out
}

// Follow returns FOLLOW(nt).
func (a *Analyzer) Follow(nt symbol.Symbol) util.Set[symbol.Symbol] {
	return a.follow[nt.Index()].Copy()
}
