package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/tanagra-tools/lrforge/grammar"
	"github.com/tanagra-tools/lrforge/token"
)

// loadGrammarFile reads a small line-oriented grammar format:
//
//	terminals: PLUS STAR LPAREN RPAREN ID
//	start: E
//	E -> E PLUS T | T
//	T -> T STAR F | F
//	F -> LPAREN E RPAREN | ID
//
// Nonterminals are inferred from every production head; blank lines and
// lines starting with # are ignored. This is CLI-layer plumbing, not part
// of the grammar specification format the core's Builder accepts directly.
func loadGrammarFile(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grammar file: %w", err)
	}
	defer f.Close()

	b := grammar.NewBuilder()
	var terminals []string
	var start string
	type rawRule struct {
		head string
		alts [][]string
	}
	var rules []rawRule
	heads := map[string]bool{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "terminals:"):
			terminals = strings.Fields(strings.TrimPrefix(line, "terminals:"))
		case strings.HasPrefix(line, "start:"):
			start = strings.TrimSpace(strings.TrimPrefix(line, "start:"))
		default:
			parts := strings.SplitN(line, "->", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("malformed rule line: %q", line)
			}
			head := strings.TrimSpace(parts[0])
			heads[head] = true
			var alts [][]string
			for _, alt := range strings.Split(parts[1], "|") {
				fields := strings.Fields(alt)
				if len(fields) == 1 && fields[0] == "epsilon" {
					fields = nil
				}
				alts = append(alts, fields)
			}
			rules = append(rules, rawRule{head: head, alts: alts})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	classes := make([]token.Class, 0, len(terminals)+1)
	for i, t := range terminals {
		classes = append(classes, token.Class{Index: i, Name: t})
	}
	classes = append(classes, token.Class{Index: len(terminals), Name: "EOF"})
	b.DefineTerminalEnum(classes)

	for head := range heads {
		b.DefineNonterminal(head)
	}
	b.SetStart(start)
	for _, r := range rules {
		for _, alt := range r.alts {
			b.AddProduction(r.head, alt...)
		}
	}

	return b.Build()
}
