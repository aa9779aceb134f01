package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/parseerr"
	"github.com/tanagra-tools/lrforge/symbol"
	"github.com/tanagra-tools/lrforge/token"
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

func TestBuilder_AugmentsStartProduction(t *testing.T) {
	g := exprGrammar(t)
	assert.True(t, g.IsAugmented())
	assert.Equal(t, "E", g.StartSymbol().Name())
	assert.Equal(t, 0, g.Production(0).Index())
	assert.Equal(t, "E'", g.Production(0).Head.Name())
	assert.Equal(t, "E", g.Production(0).Body[0].Name())
}

func TestBuilder_RejectsStartOnRHS(t *testing.T) {
	b := grammar.NewBuilder()
	b.DefineNonterminal("S").DefineTerminal("a")
	b.SetStart("S")
	b.AddProduction("S", "a", "S")
	_, err := b.Build()
	require.Error(t, err)
	var gerr *parseerr.GrammarError
	assert.ErrorAs(t, err, &gerr)
}

func TestBuilder_RejectsUndeclaredSymbol(t *testing.T) {
	b := grammar.NewBuilder()
	b.DefineNonterminal("S")
	b.SetStart("S")
	b.AddProduction("S", "mystery")
	_, err := b.Build()
	require.Error(t, err)
	var gerr *parseerr.GrammarError
	assert.ErrorAs(t, err, &gerr)
}

func TestBuilder_RejectsExplicitEpsilonSymbol(t *testing.T) {
	b := grammar.NewBuilder()
	b.DefineNonterminal("S")
	b.SetStart("S")
	b.AddProduction("S", "epsilon")
	_, err := b.Build()
	require.Error(t, err)
	var gerr *parseerr.GrammarError
	assert.ErrorAs(t, err, &gerr)
}

func TestBuilder_RejectsUnreachableNonterminal(t *testing.T) {
	b := grammar.NewBuilder()
	b.DefineNonterminal("S").DefineNonterminal("Unused").DefineTerminal("a")
	b.SetStart("S")
	b.AddProduction("S", "a")
	b.AddProduction("Unused", "a")
	_, err := b.Build()
	require.Error(t, err)
	var gerr *parseerr.GrammarError
	assert.ErrorAs(t, err, &gerr)
}

func TestBuilder_DefineTerminalEnum_AcceptsSequentialEnumWithEof(t *testing.T) {
	b := grammar.NewBuilder()
	b.DefineTerminalEnum([]token.Class{
		{Index: 0, Name: "PLUS"},
		{Index: 1, Name: "ID"},
		{Index: 2, Name: "EOF"},
	})
	b.DefineNonterminal("S")
	b.SetStart("S")
	b.AddProduction("S", "ID", "PLUS", "ID")
	g, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumTerminals())
}

func TestBuilder_DefineTerminalEnum_FiltersNegativeIndices(t *testing.T) {
	b := grammar.NewBuilder()
	b.DefineTerminalEnum([]token.Class{
		{Index: -1, Name: "HIDDEN"},
		{Index: 0, Name: "ID"},
		{Index: 1, Name: "EOF"},
	})
	b.DefineNonterminal("S")
	b.SetStart("S")
	b.AddProduction("S", "ID")
	g, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumTerminals())
}

func TestBuilder_DefineTerminalEnum_RejectsNonSequentialIndices(t *testing.T) {
	b := grammar.NewBuilder()
	b.DefineTerminalEnum([]token.Class{
		{Index: 0, Name: "ID"},
		{Index: 2, Name: "EOF"},
	})
	b.DefineNonterminal("S")
	b.SetStart("S")
	b.AddProduction("S", "ID")
	_, err := b.Build()
	require.Error(t, err)
	var eerr *parseerr.EnumError
	assert.ErrorAs(t, err, &eerr)
}

func TestBuilder_DefineTerminalEnum_RejectsMissingEof(t *testing.T) {
	b := grammar.NewBuilder()
	b.DefineTerminalEnum([]token.Class{
		{Index: 0, Name: "ID"},
	})
	b.DefineNonterminal("S")
	b.SetStart("S")
	b.AddProduction("S", "ID")
	_, err := b.Build()
	require.Error(t, err)
	var eerr *parseerr.EnumError
	assert.ErrorAs(t, err, &eerr)
}

func TestProductionsFor_PreservesSourceOrder(t *testing.T) {
	g := exprGrammar(t)
	E, _ := find(g, "E")
	prods := g.ProductionsFor(E)
	require.Len(t, prods, 2)
	assert.Equal(t, 1, prods[0].Index())
	assert.Equal(t, 2, prods[1].Index())
}

func find(g *grammar.Grammar, name string) (symbol.Symbol, bool) {
	for _, nt := range g.Nonterminals() {
		if nt.Name() == name {
			return nt, true
		}
	}
	return symbol.Symbol{}, false
}
