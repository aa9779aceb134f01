package grammar

import (
	"fmt"
	"sort"

	"github.com/tanagra-tools/lrforge/parseerr"
	"github.com/tanagra-tools/lrforge/symbol"
	"github.com/tanagra-tools/lrforge/token"
)

type rawProduction struct {
	head string
	body []string
}

// Builder collects a grammar's symbols and productions, rejecting additions
// that would violate an invariant, then produces an immutable Grammar in
// Build with every derived index precomputed. A Builder is not safe for
// concurrent use.
type Builder struct {
	terminals    *symbol.Registry
	nonterminals *symbol.Registry
	productions  []rawProduction
	start        string
	augmentEof   bool
	err          error
}

// NewBuilder returns an empty Builder. By default the synthesized augmented
// start production is S' -> S; call AugmentWithEof to request S' -> S $
// instead.
func NewBuilder() *Builder {
	return &Builder{
		terminals:    symbol.NewTerminalRegistry(),
		nonterminals: symbol.NewNonterminalRegistry(),
	}
}

// AugmentWithEof requests that the synthesized start production end in an
// explicit eof marker: S' -> S $ instead of S' -> S.
func (b *Builder) AugmentWithEof() *Builder {
	b.augmentEof = true
	return b
}

// DefineTerminal declares a terminal kind. It returns the Builder for
// chaining; errors are deferred to Build.
func (b *Builder) DefineTerminal(name string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := b.terminals.Define(name); err != nil {
		b.err = parseerr.NewGrammarError("duplicate terminal", err.Error())
	}
	return b
}

// DefineNonterminal declares a nonterminal. It returns the Builder for
// chaining; errors are deferred to Build.
func (b *Builder) DefineNonterminal(name string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := b.nonterminals.Define(name); err != nil {
		b.err = parseerr.NewGrammarError("duplicate nonterminal", err.Error())
	}
	return b
}

// DefineTerminalEnum declares the grammar's terminals from a closed token
// enumeration, per the external lexer contract's conventions: classes with
// a negative index (a hidden/epsilon marker) are filtered out first, the
// remainder must be sequentially indexed starting at 0, and exactly one
// class must be named "EOF" (which is not itself registered as a terminal:
// it is the distinguished symbol.Eof, never an ordinary terminal symbol).
func (b *Builder) DefineTerminalEnum(classes []token.Class) *Builder {
	if b.err != nil {
		return b
	}

	filtered := make([]token.Class, 0, len(classes))
	for _, c := range classes {
		if c.Index < 0 {
			continue
		}
		filtered = append(filtered, c)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Index < filtered[j].Index })

	hasEof := false
	for i, c := range filtered {
		if c.Index != i {
			b.err = parseerr.NewEnumError(fmt.Sprintf(
				"terminal classes are not sequentially indexed starting at 0: expected index %d, found %q at index %d", i, c.Name, c.Index))
			return b
		}
		if c.Name == "EOF" {
			if hasEof {
				b.err = parseerr.NewEnumError("terminal enumeration has more than one class named EOF")
				return b
			}
			hasEof = true
		}
	}
	if !hasEof {
		b.err = parseerr.NewEnumError("terminal enumeration has no class reserved for EOF")
		return b
	}

	for _, c := range filtered {
		if c.Name == "EOF" {
			continue
		}
		b.DefineTerminal(c.Name)
	}
	return b
}

// SetStart declares the grammar's start nonterminal by name. It must have
// already been declared with DefineNonterminal.
func (b *Builder) SetStart(name string) *Builder {
	b.start = name
	return b
}

// AddProduction appends a production head -> body, where body elements name
// previously-declared terminals or nonterminals. An empty body denotes an
// epsilon production.
func (b *Builder) AddProduction(head string, body ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, s := range body {
		if reservedEpsilonNames[s] {
			b.err = parseerr.NewGrammarError("reserved epsilon symbol",
				fmt.Sprintf("production body for %q contains an explicit epsilon symbol %q; epsilon productions are written with an empty body, not a literal epsilon symbol", head, s))
			return b
		}
	}
	b.productions = append(b.productions, rawProduction{head: head, body: body})
	return b
}

// Build validates and constructs the immutable Grammar, including the
// synthesized augmented start production as production 0. It returns an
// error without partially constructing a Grammar if any invariant is
// violated.
func (b *Builder) Build() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.start == "" {
		return nil, parseerr.NewGrammarError("no start symbol", "call SetStart before Build")
	}
	startSym, ok := b.nonterminals.Lookup(b.start)
	if !ok {
		return nil, parseerr.NewGrammarError("undeclared start symbol",
			fmt.Sprintf("%q was never declared with DefineNonterminal", b.start))
	}
	if len(b.productions) == 0 {
		return nil, parseerr.NewGrammarError("empty production list", "grammar has no productions")
	}

	resolve := func(name string) (symbol.Symbol, error) {
		if nt, ok := b.nonterminals.Lookup(name); ok {
			return nt, nil
		}
		if t, ok := b.terminals.Lookup(name); ok {
			return t, nil
		}
		return symbol.Symbol{}, parseerr.NewGrammarError("undeclared symbol",
			fmt.Sprintf("%q referenced in a production", name))
	}

	g := &Grammar{
		terminals:    b.terminals,
		nonterminals: b.nonterminals,
		start:        startSym,
		augmented:    true,
		augmentedEof: b.augmentEof,
		byHead:       make(map[int][]int),
	}

	augStart, err := g.nonterminals.Define(b.start + "'")
	if err != nil {
		return nil, parseerr.NewGrammarError("duplicate start production",
			fmt.Sprintf("could not synthesize augmented start symbol: %s", err))
	}

	augBody := []symbol.Symbol{startSym}
	if b.augmentEof {
		augBody = append(augBody, symbol.Eof)
	}
	g.productions = append(g.productions, Production{Head: augStart, Body: augBody, index: 0})

	for i, rp := range b.productions {
		head, err := resolve(rp.head)
		if err != nil {
			return nil, err
		}
		if !head.IsNonterminal() {
			return nil, parseerr.NewGrammarError("invalid production head",
				fmt.Sprintf("%q is not a nonterminal", rp.head))
		}
		if head.Equal(startSym) {
			// fine: the user's own productions for S are expected
		}
		body := make([]symbol.Symbol, len(rp.body))
		for j, name := range rp.body {
			s, err := resolve(name)
			if err != nil {
				return nil, err
			}
			if s.Equal(startSym) {
				return nil, parseerr.NewGrammarError("start symbol on right-hand side",
					fmt.Sprintf("start symbol %q must not appear on the right-hand side of any production", b.start))
			}
			body[j] = s
		}
		g.productions = append(g.productions, Production{Head: head, Body: body, index: i + 1})
	}

	for _, p := range g.productions {
		g.byHead[p.Head.Index()] = append(g.byHead[p.Head.Index()], p.index)
	}

	if err := validateNoUselessSymbols(g); err != nil {
		return nil, err
	}

	return g, nil
}
