// Command lrforge is the CLI front end for the grammar analysis and LR
// parser-generation toolkit: it loads a grammar file, builds an automaton
// and parsing table by the requested method, prints diagnostics, and can
// drop into a REPL that runs sentences against the compiled table.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	flag "github.com/spf13/pflag"

	"github.com/tanagra-tools/lrforge/config"
	"github.com/tanagra-tools/lrforge/table"
)

func main() {
	var (
		grammarPath = flag.StringP("grammar", "g", "", "path to a grammar specification file")
		configPath  = flag.StringP("config", "c", "", "path to a TOML configuration file")
		method      = flag.StringP("method", "m", "", "parser-generation method: lr0, slr1, lr1, lalr1")
		lalrStrat   = flag.String("lalr-strategy", "", "lalr1 derivation: merge or digraph")
		repl        = flag.Bool("repl", false, "start an interactive REPL against the compiled table")
		dot         = flag.Bool("dot", false, "print the automaton as Graphviz DOT instead of building a table")
		cachePath   = flag.String("cache", "", "path to a compiled-table cache file")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	if *method != "" {
		cfg.Method = config.Method(*method)
	}
	if *lalrStrat != "" {
		cfg.LALRStrategy = config.LALRStrategy(*lalrStrat)
	}
	if *cachePath != "" {
		cfg.CachePath = *cachePath
	}
	if *grammarPath != "" {
		cfg.GrammarPath = *grammarPath
	}

	if cfg.GrammarPath == "" {
		pterm.Error.Println("no grammar file given; pass --grammar")
		os.Exit(1)
	}

	g, err := loadGrammarFile(cfg.GrammarPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	trace := func(msg string) { pterm.Debug.Println(msg) }

	if *dot {
		lr0 := buildLR0(g)
		fmt.Println(dotString(lr0))
		return
	}

	sourceHash, err := hashFile(cfg.GrammarPath)
	if err != nil {
		pterm.Warning.Println(err)
	}

	var t *table.Table
	var report *table.ConflictReport
	fromCache := false
	if cachedGrammar, cachedTable, ok := loadCache(cfg.CachePath, sourceHash, cfg); ok {
		g, t, fromCache = cachedGrammar, cachedTable, true
	}

	if !fromCache {
		t, report, err = compile(g, cfg, trace)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		if cfg.CachePath != "" {
			if err := saveCache(cfg.CachePath, g, t, sourceHash); err != nil {
				pterm.Warning.Println(err)
			}
		}
	}

	if fromCache {
		// a cache hit skips Build entirely, so there is no freshly computed
		// ConflictReport to summarize; the cached table's conflicts were
		// already resolved the run it was written.
		pterm.Info.Printfln("loaded cached %s table from %s (%d states)", cfg.Method, cfg.CachePath, t.NumStates())
	} else {
		pterm.Info.Printfln("built %s table with %d states (%s)", cfg.Method, t.NumStates(), conflictSummary(report))
	}
	pterm.Println(tableString(t))

	if *repl {
		runREPL(context.Background(), t, trace)
	}
}
