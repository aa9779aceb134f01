// Package lookahead computes the classical lookahead predicates nullable,
// FIRST, and FOLLOW, each available via either the dragon-book fixed-point
// iteration or the digraph.Traverse-based method; both methods are expected
// to agree on every grammar.
package lookahead

import (
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/internal/util"
)

// computeNullable returns the set of nonterminal indices A for which
// A =>* epsilon, by least-fixed-point iteration over the grammar's
// productions. Nullable has no separate digraph formulation in this
// toolkit: FIRST and FOLLOW's digraph constructions both consume this same
// result, so the fixed-point/digraph cross-check property for nullable
// holds trivially by construction (both analyzers call this one function).
func computeNullable(g *grammar.Grammar) util.Set[int] {
	nullable := util.NewSet[int]()
	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions() {
			if nullable.Has(p.Head.Index()) {
				continue
			}
			allNullable := true
			for _, s := range p.Body {
				if s.IsTerminal() || s.IsEof() {
					allNullable = false
					break
				}
				if !nullable.Has(s.Index()) {
					allNullable = false
					break
				}
			}
			if allNullable {
				nullable.Add(p.Head.Index())
				changed = true
			}
		}
	}
	return nullable
}
