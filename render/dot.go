package render

import (
	"fmt"
	"strings"

	"github.com/tanagra-tools/lrforge/automaton"
)

// DotGraph renders an automaton as Graphviz DOT source, one node per state
// and one labeled edge per transition.
func DotGraph(at *automaton.Automaton) string {
	var sb strings.Builder
	sb.WriteString("digraph automaton {\n")
	sb.WriteString("  rankdir=LR;\n")
	for i := 0; i < at.NumStates(); i++ {
		shape := "circle"
		if at.IsAcceptState(i) {
			shape = "doublecircle"
		}
		sb.WriteString(fmt.Sprintf("  s%d [shape=%s,label=\"%d\"];\n", i, shape, i))
	}
	for _, tr := range at.Transitions() {
		sb.WriteString(fmt.Sprintf("  s%d -> s%d [label=%q];\n", tr.From, tr.To, tr.Symbol.String()))
	}
	sb.WriteString("}\n")
	return sb.String()
}
