package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanagra-tools/lrforge/automaton"
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/lookahead"
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

func TestBuildLR0_StartStateIsZero(t *testing.T) {
	g := exprGrammar(t)
	at := automaton.BuildLR0(g)
	assert.Equal(t, 0, at.Start)
	assert.True(t, at.NumStates() > 1)
}

func TestBuildLR1_MoreStatesThanLR0(t *testing.T) {
	g := exprGrammar(t)
	an := lookahead.NewDigraph(g)
	lr0 := automaton.BuildLR0(g)
	lr1 := automaton.BuildLR1(g, an)
	assert.True(t, lr1.NumStates() > lr0.NumStates())
}

func TestMergeLALR_NeverExceedsLR0StateCount(t *testing.T) {
	g := exprGrammar(t)
	an := lookahead.NewDigraph(g)
	lr0 := automaton.BuildLR0(g)
	lr1 := automaton.BuildLR1(g, an)
	merged := automaton.MergeLALR(lr1)
	assert.Equal(t, lr0.NumStates(), merged.NumStates())
}

func TestGotoDeterminism(t *testing.T) {
	g := exprGrammar(t)
	at := automaton.BuildLR0(g)
	for s := 0; s < at.NumStates(); s++ {
		seen := map[string]int{}
		for _, tr := range at.Transitions() {
			if tr.From != s {
				continue
			}
			key := tr.Symbol.String()
			if prev, ok := seen[key]; ok {
				assert.Equal(t, prev, tr.To, "state %d has two distinct successors on %s", s, tr.Symbol)
			}
			seen[key] = tr.To
		}
	}
}

// danglingElseGrammar is S -> i S e S | i S | x (scenario S4).
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

func TestLALRDigraph_DanglingElseHasShiftReduceConflict(t *testing.T) {
	g := danglingElseGrammar(t)
	an := lookahead.NewDigraph(g)
	lr0 := automaton.BuildLR0(g)
	la := automaton.LALRLookaheads(g, an, lr0)
	require.NotEmpty(t, la)

	_, report := table.Build(g, lr0, table.MethodLALR1Digraph, table.LALRDigraphSelector(la))
	require.True(t, report.Any())
	var sawShiftReduce bool
	for _, c := range report.Conflicts {
		if c.IsShiftReduce() {
			sawShiftReduce = true
		}
	}
	assert.True(t, sawShiftReduce, "expected a shift/reduce conflict on the dangling else")
}

// reduceReduceGrammar has two productions with identical bodies but
// different heads (scenario S5): A -> x, B -> x, both reachable from S.
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

func TestBuildLR1_ReduceReduceGrammarBuildsCleanly(t *testing.T) {
	g := reduceReduceGrammar(t)
	an := lookahead.NewDigraph(g)
	lr1 := automaton.BuildLR1(g, an)
	assert.True(t, lr1.NumStates() > 0)
}

// nonLALRGrammar is the textbook LR(1)-but-not-LALR(1) grammar (scenario S6):
// S -> aAd | bBd | aBe | bAe; A -> c; B -> c. The two LR(1) states reached by
// "A -> c ." and "B -> c ." carry the same LR(0) core but disjoint
// lookaheads ({d} via one left context, {e} via the other); merging them
// for LALR(1) unions the lookaheads onto a single state, legalizing both
// reductions on an overlapping terminal and introducing a reduce/reduce
// conflict the canonical LR(1) automaton never has.
func nonLALRGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder()
	b.DefineTerminal("a").DefineTerminal("b").DefineTerminal("c").DefineTerminal("d").DefineTerminal("e")
	b.DefineNonterminal("S").DefineNonterminal("A").DefineNonterminal("B")
	b.SetStart("S")
	b.AddProduction("S", "a", "A", "d")
	b.AddProduction("S", "b", "B", "d")
	b.AddProduction("S", "a", "B", "e")
	b.AddProduction("S", "b", "A", "e")
	b.AddProduction("A", "c")
	b.AddProduction("B", "c")
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestMergeLALR_CanIntroduceReduceReduceConflictAbsentFromLR1(t *testing.T) {
	g := nonLALRGrammar(t)
	an := lookahead.NewDigraph(g)

	lr1 := automaton.BuildLR1(g, an)
	_, lr1Report := table.Build(g, lr1, table.MethodLR1, table.ItemLookaheadSelector())
	require.False(t, lr1Report.Any(), "canonical LR(1) table should build without conflict")

	merged := automaton.MergeLALR(lr1)
	require.True(t, merged.NumStates() <= lr1.NumStates())
	_, mergeReport := table.Build(g, merged, table.MethodLALR1Merge, table.ItemLookaheadSelector())
	require.True(t, mergeReport.Any(), "merging LALR(1) states should introduce a conflict")
	assert.True(t, hasReduceReduce(mergeReport), "expected a reduce/reduce conflict from the merged automaton")

	lr0 := automaton.BuildLR0(g)
	la := automaton.LALRLookaheads(g, an, lr0)
	_, digraphReport := table.Build(g, lr0, table.MethodLALR1Digraph, table.LALRDigraphSelector(la))
	require.True(t, digraphReport.Any(), "digraph LALR(1) should agree with merge LALR(1) on the conflict")
	assert.True(t, hasReduceReduce(digraphReport), "expected the digraph method to also report a reduce/reduce conflict")
}

func hasReduceReduce(r *table.ConflictReport) bool {
	for _, c := range r.Conflicts {
		if c.IsReduceReduce() {
			return true
		}
	}
	return false
}
