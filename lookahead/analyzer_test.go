package lookahead_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/lookahead"
	"github.com/tanagra-tools/lrforge/symbol"
)

func exprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder()
	b.DefineTerminal("+").DefineTerminal("*").DefineTerminal("(").DefineTerminal(")").DefineTerminal("id")
	b.DefineNonterminal("E").DefineNonterminal("T").DefineNonterminal("F")
	b.SetStart("E")
	b.AddProduction("E", "E", "+", "T")
	b.AddProduction("E", "T")
	b.AddProduction("T", "T", "*", "F")
	b.AddProduction("T", "F")
	b.AddProduction("F", "(", "E", ")")
	b.AddProduction("F", "id")
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

// nullableMiddleGrammar is S -> a A b; A -> c | epsilon (scenario S3).
func nullableMiddleGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder()
	b.DefineTerminal("a").DefineTerminal("b").DefineTerminal("c")
	b.DefineNonterminal("S").DefineNonterminal("A")
	b.SetStart("S")
	b.AddProduction("S", "a", "A", "b")
	b.AddProduction("A", "c")
	b.AddProduction("A")
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func findNonterminal(g *grammar.Grammar, name string) symbol.Symbol {
	for _, s := range g.Nonterminals() {
		if s.Name() == name {
			return s
		}
	}
	panic("no such nonterminal: " + name)
}

func TestNullable_FixedPointAndDigraphAgree(t *testing.T) {
	g := nullableMiddleGrammar(t)
	fp := lookahead.NewFixedPoint(g)
	dg := lookahead.NewDigraph(g)

	for _, s := range g.Nonterminals() {
		assert.Equal(t, fp.Nullable(s), dg.Nullable(s), "nullable(%s)", s.Name())
	}

	assert.True(t, fp.Nullable(findNonterminal(g, "A")))
	assert.False(t, fp.Nullable(findNonterminal(g, "S")))
}

func TestFirst_FixedPointAndDigraphAgree(t *testing.T) {
	g := exprGrammar(t)
	fp := lookahead.NewFixedPoint(g)
	dg := lookahead.NewDigraph(g)

	for _, s := range g.Nonterminals() {
		assert.True(t, fp.First(s).Equal(dg.First(s)), "FIRST(%s) mismatch", s.Name())
	}

	idTerm := findTerminal(g, "id")
	assert.True(t, fp.First(findNonterminal(g, "F")).Has(idTerm))
}

func findTerminal(g *grammar.Grammar, name string) symbol.Symbol {
	for _, s := range g.Terminals() {
		if s.Name() == name {
			return s
		}
	}
	panic("no such terminal: " + name)
}

func TestFollow_EofInFollowOfStart_WhenNotAugmentedWithEof(t *testing.T) {
	g := exprGrammar(t)
	an := lookahead.NewDigraph(g)
	follow := an.Follow(g.StartSymbol())
	assert.True(t, follow.Has(symbol.Eof))
}

func TestFollow_FixedPointAndDigraphAgree(t *testing.T) {
	g := exprGrammar(t)
	fp := lookahead.NewFixedPoint(g)
	dg := lookahead.NewDigraph(g)

	for _, s := range g.Nonterminals() {
		assert.True(t, fp.Follow(s).Equal(dg.Follow(s)), "FOLLOW(%s) mismatch", s.Name())
	}
}

func TestFollow_NullableMiddle(t *testing.T) {
	g := nullableMiddleGrammar(t)
	an := lookahead.NewDigraph(g)
	bTerm := findTerminal(g, "b")
	assert.True(t, an.Follow(findNonterminal(g, "A")).Has(bTerm))
}
