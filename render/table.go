// Package render renders the core's read-only artifacts (parsing tables,
// conflict reports, automata) for human consumption: pretty ACTION/GOTO
// tables and Graphviz automaton diagrams. Nothing in the core package tree
// imports this package or its dependencies; pretty-printing is strictly an
// edge concern.
package render

import (
	"fmt"

	"github.com/dekarrin/rosed"
	"github.com/dustin/go-humanize"

	"github.com/tanagra-tools/lrforge/symbol"
	"github.com/tanagra-tools/lrforge/table"
)

// TableString renders t as a fixed-width ACTION/GOTO grid, one row per
// state, using rosed's table layout the same way the teacher's parse
// package rendered its SLR/CLR1/LALR tables.
func TableString(t *table.Table) string {
	g := t.Grammar
	terms := g.Terminals()
	nonterms := g.Nonterminals()

	headers := []string{"state"}
	for _, term := range terms {
		headers = append(headers, "A:"+term.Name())
	}
	headers = append(headers, "A:"+symbol.Eof.String())
	for _, nt := range nonterms {
		headers = append(headers, "G:"+nt.Name())
	}

	data := [][]string{headers}
	for s := 0; s < t.NumStates(); s++ {
		row := []string{fmt.Sprintf("%d", s)}
		for _, term := range terms {
			row = append(row, cellString(t, s, term))
		}
		row = append(row, cellString(t, s, symbol.Eof))
		for _, nt := range nonterms {
			cell := ""
			if target, ok := t.Goto(s, nt); ok {
				cell = fmt.Sprintf("%d", target)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 12, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func cellString(t *table.Table, s int, term symbol.Symbol) string {
	act := t.Action(s, term)
	switch act.Type {
	case table.Shift:
		return fmt.Sprintf("s%d", act.State)
	case table.Reduce:
		return fmt.Sprintf("r%d", act.Production)
	case table.Accept:
		return "acc"
	default:
		return ""
	}
}

// ConflictSummary reports how many shift/reduce and reduce/reduce conflicts
// a build produced, using go-humanize to format the counts.
func ConflictSummary(report *table.ConflictReport) string {
	if !report.Any() {
		return "no conflicts"
	}
	var sr, rr int
	for _, c := range report.Conflicts {
		if c.IsShiftReduce() {
			sr++
		}
		if c.IsReduceReduce() {
			rr++
		}
	}
	return fmt.Sprintf("%s shift/reduce, %s reduce/reduce",
		humanize.Comma(int64(sr)), humanize.Comma(int64(rr)))
}
