// Package persist caches a compiled grammar and parsing table to disk so
// repeated CLI invocations against the same grammar file don't rebuild the
// automaton and table every time: Save writes a Snapshot, Load reads one
// back, and Reconstruct replays it into a usable grammar and table without
// rerunning CLOSURE, GOTO, or LALR analysis.
package persist

import (
	"fmt"
	"os"

	"github.com/dekarrin/rezi"

	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/symbol"
	"github.com/tanagra-tools/lrforge/table"
)

// Snapshot is the flattened, rezi-serializable form of a compiled grammar
// and table: plain strings, ints, bools, and slices only, so rezi's reflection
// based encoding applies with no custom codec.
type Snapshot struct {
	SourceHash string

	TerminalNames    []string
	NonterminalNames []string
	StartSymbol      string
	AugmentedWithEof bool
	ProductionHeads  []string
	ProductionBodies [][]string

	Method       int
	InitialState int
	NumStates    int
	ActionRows   []int
	ActionTerms  []string
	ActionTypes  []int
	ActionStates []int
	ActionProds  []int
	GotoRows     []int
	GotoNonterms []string
	GotoStates   []int
}

// Save encodes a Snapshot built from g and t, tagged with sourceHash (the
// grammar source's content hash, so a later Load can tell whether the
// grammar changed since the cache was written), and writes it to path.
func Save(path string, g *grammar.Grammar, t *table.Table, sourceHash string) error {
	snap := build(g, t, sourceHash)
	data := rezi.EncBinary(snap)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: writing %s: %w", path, err)
	}
	return nil
}

// Load reads and decodes a Snapshot previously written by Save. Callers
// are responsible for comparing SourceHash against the grammar currently
// on disk before trusting the cache, then calling Reconstruct to turn it
// back into a grammar and table.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persist: reading %s: %w", path, err)
	}
	var snap Snapshot
	if _, err := rezi.DecBinary(data, &snap); err != nil {
		return nil, fmt.Errorf("persist: decoding %s: %w", path, err)
	}
	return &snap, nil
}

// Reconstruct rebuilds a grammar and a parsing table from a Snapshot: the
// grammar is replayed through a fresh Builder (production 0, the
// synthesized augmented start, is never stored and is resynthesized by
// Build), and the table's ACTION/GOTO rows are reassembled directly via
// table.NewFromRows. Neither step reruns CLOSURE, GOTO, or LALR analysis.
func Reconstruct(snap *Snapshot) (*grammar.Grammar, *table.Table, error) {
	b := grammar.NewBuilder()
	for _, name := range snap.TerminalNames {
		b.DefineTerminal(name)
	}
	for _, name := range snap.NonterminalNames {
		b.DefineNonterminal(name)
	}
	b.SetStart(snap.StartSymbol)
	if snap.AugmentedWithEof {
		b.AugmentWithEof()
	}
	for i, head := range snap.ProductionHeads {
		b.AddProduction(head, snap.ProductionBodies[i]...)
	}
	g, err := b.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("persist: reconstructing grammar: %w", err)
	}

	termByName := make(map[string]symbol.Symbol, len(snap.TerminalNames)+1)
	for _, s := range g.Terminals() {
		termByName[s.Name()] = s
	}
	termByName[symbol.Eof.String()] = symbol.Eof

	ntByName := make(map[string]symbol.Symbol, len(snap.NonterminalNames))
	for _, s := range g.Nonterminals() {
		ntByName[s.Name()] = s
	}

	actions := make([]table.ActionRow, 0, len(snap.ActionRows))
	for i, state := range snap.ActionRows {
		act := table.Action{
			Type:       table.ActionType(snap.ActionTypes[i]),
			State:      snap.ActionStates[i],
			Production: snap.ActionProds[i],
		}
		term, ok := termByName[snap.ActionTerms[i]]
		if !ok {
			return nil, nil, fmt.Errorf("persist: reconstructing table: unknown terminal %q", snap.ActionTerms[i])
		}
		actions = append(actions, table.ActionRow{State: state, Terminal: term, Action: act})
	}

	gotos := make([]table.GotoRow, 0, len(snap.GotoRows))
	for i, state := range snap.GotoRows {
		nt, ok := ntByName[snap.GotoNonterms[i]]
		if !ok {
			return nil, nil, fmt.Errorf("persist: reconstructing table: unknown nonterminal %q", snap.GotoNonterms[i])
		}
		gotos = append(gotos, table.GotoRow{State: state, Nonterminal: nt, Target: snap.GotoStates[i]})
	}

	t := table.NewFromRows(g, table.Method(snap.Method), snap.InitialState, snap.NumStates, actions, gotos)
	return g, t, nil
}

func build(g *grammar.Grammar, t *table.Table, sourceHash string) Snapshot {
	snap := Snapshot{
		SourceHash:       sourceHash,
		StartSymbol:      g.StartSymbol().Name(),
		AugmentedWithEof: g.IsAugmentedWithEof(),
		Method:           int(t.Method),
		InitialState:     t.Initial,
		NumStates:        t.NumStates(),
	}
	for _, term := range g.Terminals() {
		snap.TerminalNames = append(snap.TerminalNames, term.Name())
	}

	// production 0 (the synthesized augmented start) and its head are never
	// stored: Builder.Build resynthesizes both from StartSymbol/AugmentedWithEof.
	augmentedName := g.AugmentedStart().Name()
	for _, nt := range g.Nonterminals() {
		if nt.Name() == augmentedName {
			continue
		}
		snap.NonterminalNames = append(snap.NonterminalNames, nt.Name())
	}
	for _, p := range g.Productions() {
		if p.Index() == 0 {
			continue
		}
		snap.ProductionHeads = append(snap.ProductionHeads, p.Head.Name())
		body := make([]string, len(p.Body))
		for i, s := range p.Body {
			body[i] = s.Name()
		}
		snap.ProductionBodies = append(snap.ProductionBodies, body)
	}

	terms := make([]symbol.Symbol, 0, len(g.Terminals())+1)
	terms = append(terms, g.Terminals()...)
	terms = append(terms, symbol.Eof)

	for s := 0; s < t.NumStates(); s++ {
		for _, term := range terms {
			act := t.Action(s, term)
			if act.Type == table.Error {
				continue
			}
			snap.ActionRows = append(snap.ActionRows, s)
			snap.ActionTerms = append(snap.ActionTerms, term.String())
			snap.ActionTypes = append(snap.ActionTypes, int(act.Type))
			snap.ActionStates = append(snap.ActionStates, act.State)
			snap.ActionProds = append(snap.ActionProds, act.Production)
		}
		for _, nt := range g.Nonterminals() {
			if target, ok := t.Goto(s, nt); ok {
				snap.GotoRows = append(snap.GotoRows, s)
				snap.GotoNonterms = append(snap.GotoNonterms, nt.Name())
				snap.GotoStates = append(snap.GotoStates, target)
			}
		}
	}
	return snap
}
