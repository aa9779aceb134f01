package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanagra-tools/lrforge/automaton"
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/lookahead"
	"github.com/tanagra-tools/lrforge/symbol"
	"github.com/tanagra-tools/lrforge/table"
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

func danglingElseGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder()
	b.DefineTerminal("i").DefineTerminal("e").DefineTerminal("x")
	b.DefineNonterminal("S")
	b.SetStart("S")
	b.AddProduction("S", "i", "S", "e", "S")
	b.AddProduction("S", "i", "S")
	b.AddProduction("S", "x")
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

// reduceReduceGrammar has productions (in source order, after the synthetic
// augmentation at index 0): 1: S->A, 2: S->B, 3: A->x, 4: B->x (scenario S5).
func reduceReduceGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder()
	b.DefineTerminal("x")
	b.DefineNonterminal("S").DefineNonterminal("A").DefineNonterminal("B")
	b.SetStart("S")
	b.AddProduction("S", "A")
	b.AddProduction("S", "B")
	b.AddProduction("A", "x")
	b.AddProduction("B", "x")
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestBuild_DanglingElse_ShiftWinsOverReduce(t *testing.T) {
	g := danglingElseGrammar(t)
	at := automaton.BuildLR0(g)
	tab, report := table.Build(g, at, table.MethodLR0, table.LR0Selector(g))
	require.NotNil(t, tab)
	require.True(t, report.Any(), "dangling-else grammar under LR0 lookahead must conflict")

	found := false
	for _, c := range report.Conflicts {
		if c.IsShiftReduce() {
			found = true
			assert.Equal(t, table.Shift, c.Winner.Type, "shift must win a shift/reduce conflict")
		}
	}
	assert.True(t, found, "expected at least one shift/reduce conflict")
}

func TestBuild_ReduceReduce_LowestProductionIndexWins(t *testing.T) {
	g := reduceReduceGrammar(t)
	at := automaton.BuildLR0(g)
	tab, report := table.Build(g, at, table.MethodLR0, table.LR0Selector(g))
	require.NotNil(t, tab)
	require.True(t, report.Any(), "A->x / B->x sharing a reduce state under LR0 lookahead must conflict")

	var rr *table.Conflict
	for i := range report.Conflicts {
		if report.Conflicts[i].IsReduceReduce() {
			rr = &report.Conflicts[i]
			break
		}
	}
	require.NotNil(t, rr, "expected a reduce/reduce conflict")
	assert.Equal(t, table.Reduce, rr.Winner.Type)

	for _, l := range rr.Losers {
		if l.Type == table.Reduce {
			assert.True(t, rr.Winner.Production < l.Production,
				"winner production index %d should be lower than loser %d", rr.Winner.Production, l.Production)
		}
	}
}

func TestBuild_ExprGrammar_LALRMethodsAgreeWithNoConflicts(t *testing.T) {
	g := exprGrammar(t)
	an := lookahead.NewDigraph(g)

	lr1 := automaton.BuildLR1(g, an)
	_, lr1Report := table.Build(g, lr1, table.MethodLR1, table.ItemLookaheadSelector())
	assert.False(t, lr1Report.Any(), "the classic expression grammar is unambiguous under LR(1)")

	merged := automaton.MergeLALR(lr1)
	_, mergeReport := table.Build(g, merged, table.MethodLALR1Merge, table.ItemLookaheadSelector())
	assert.False(t, mergeReport.Any(), "the classic expression grammar is LALR(1)-clean too")

	lr0 := automaton.BuildLR0(g)
	la := automaton.LALRLookaheads(g, an, lr0)
	_, digraphReport := table.Build(g, lr0, table.MethodLALR1Digraph, table.LALRDigraphSelector(la))
	assert.False(t, digraphReport.Any(), "merge and digraph LALR(1) must agree on conflict-freeness")
}

func TestBuild_ExprGrammar_SLR1HasNoConflicts(t *testing.T) {
	g := exprGrammar(t)
	an := lookahead.NewFixedPoint(g)
	lr0 := automaton.BuildLR0(g)
	_, report := table.Build(g, lr0, table.MethodSLR1, table.SLR1Selector(g, an))
	assert.False(t, report.Any())
}

func TestBuild_AcceptAction_IsRecordedOnEofAtAcceptState(t *testing.T) {
	g := exprGrammar(t)
	an := lookahead.NewDigraph(g)
	lr1 := automaton.BuildLR1(g, an)
	tab, _ := table.Build(g, lr1, table.MethodLR1, table.ItemLookaheadSelector())

	accepting := 0
	for s := 0; s < tab.NumStates(); s++ {
		if tab.Action(s, symbol.Eof).Type == table.Accept {
			accepting++
		}
	}
	assert.Equal(t, 1, accepting, "table must have exactly one accept-bearing state")
}
