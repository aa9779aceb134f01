package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/tanagra-tools/lrforge/automaton"
	"github.com/tanagra-tools/lrforge/config"
	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/lookahead"
	"github.com/tanagra-tools/lrforge/persist"
	"github.com/tanagra-tools/lrforge/render"
	"github.com/tanagra-tools/lrforge/table"
)

func buildLR0(g *grammar.Grammar) *automaton.Automaton {
	return automaton.BuildLR0(g)
}

func dotString(at *automaton.Automaton) string {
	return render.DotGraph(at)
}

func tableString(t *table.Table) string {
	return render.TableString(t)
}

func conflictSummary(r *table.ConflictReport) string {
	return render.ConflictSummary(r)
}

func saveCache(path string, g *grammar.Grammar, t *table.Table, sourceHash string) error {
	return persist.Save(path, g, t, sourceHash)
}

// loadCache reconstructs a grammar and table from path if, and only if, the
// cached snapshot was built from the same grammar source (sourceHash) and
// the same parser-generation method as cfg currently requests. Any miss —
// missing file, hash mismatch, method mismatch, decode failure — is treated
// as a cold cache, never an error: the caller falls back to compile.
func loadCache(path, sourceHash string, cfg config.Config) (*grammar.Grammar, *table.Table, bool) {
	if path == "" {
		return nil, nil, false
	}
	snap, err := persist.Load(path)
	if err != nil {
		return nil, nil, false
	}
	wantMethod, err := resolveMethod(cfg)
	if err != nil || snap.SourceHash != sourceHash || snap.Method != int(wantMethod) {
		return nil, nil, false
	}
	g, t, err := persist.Reconstruct(snap)
	if err != nil {
		return nil, nil, false
	}
	return g, t, true
}

// hashFile returns a hex-encoded content hash of the file at path, used to
// detect whether a grammar source has changed since a cache was written.
func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// resolveMethod maps the configuration's method/strategy pair onto the
// table.Method tag a built Table carries, without building anything. It's
// used both to validate cfg up front and to check a cache's recorded method
// against what cfg currently requests.
func resolveMethod(cfg config.Config) (table.Method, error) {
	switch cfg.Method {
	case config.MethodLR0:
		return table.MethodLR0, nil
	case config.MethodSLR1:
		return table.MethodSLR1, nil
	case config.MethodLR1:
		return table.MethodLR1, nil
	case config.MethodLALR1:
		if cfg.LALRStrategy == config.LALRMerge {
			return table.MethodLALR1Merge, nil
		}
		return table.MethodLALR1Digraph, nil
	default:
		return 0, fmt.Errorf("unknown method %q", cfg.Method)
	}
}

// compile builds an automaton and parsing table for g per cfg's selected
// method.
func compile(g *grammar.Grammar, cfg config.Config, trace func(string)) (*table.Table, *table.ConflictReport, error) {
	an := lookahead.NewDigraph(g)

	switch cfg.Method {
	case config.MethodLR0:
		at := automaton.BuildLR0(g)
		t, report := table.Build(g, at, table.MethodLR0, table.LR0Selector(g))
		return t, report, nil

	case config.MethodSLR1:
		at := automaton.BuildLR0(g)
		t, report := table.Build(g, at, table.MethodSLR1, table.SLR1Selector(g, an))
		return t, report, nil

	case config.MethodLR1:
		at := automaton.BuildLR1(g, an)
		t, report := table.Build(g, at, table.MethodLR1, table.ItemLookaheadSelector())
		return t, report, nil

	case config.MethodLALR1:
		switch cfg.LALRStrategy {
		case config.LALRMerge:
			lr1 := automaton.BuildLR1(g, an)
			merged := automaton.MergeLALR(lr1)
			t, report := table.Build(g, merged, table.MethodLALR1Merge, table.ItemLookaheadSelector())
			return t, report, nil
		default:
			lr0 := automaton.BuildLR0(g)
			trace("solving LALR(1) lookaheads via the Read/Follow/LA digraph")
			la := automaton.LALRLookaheads(g, an, lr0)
			t, report := table.Build(g, lr0, table.MethodLALR1Digraph, table.LALRDigraphSelector(la))
			return t, report, nil
		}

	default:
		return nil, nil, fmt.Errorf("unknown method %q", cfg.Method)
	}
}
