// Package symbol defines the tagged-union representation of grammar
// symbols: terminals, nonterminals, and the two sentinel symbols epsilon
// and eof.
package symbol

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Kind distinguishes the four disjoint symbol variants.
type Kind int

const (
	KindTerminal Kind = iota
	KindNonterminal
	KindEpsilon
	KindEof
)

func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindNonterminal:
		return "nonterminal"
	case KindEpsilon:
		return "epsilon"
	case KindEof:
		return "eof"
	default:
		return "unknown"
	}
}

// Epsilon and Eof are the two sentinel symbols; they carry no index and are
// shared singletons across every grammar.
var (
	Epsilon = Symbol{kind: KindEpsilon, name: "", index: -1}
	Eof     = Symbol{kind: KindEof, name: "$", index: -1}
)

// Symbol is one of Terminal, Nonterminal, Epsilon, or Eof. The zero value is
// not a valid Symbol; use the constructors or the Epsilon/Eof singletons.
type Symbol struct {
	kind  Kind
	name  string
	index int
}

// NewTerminal returns a Terminal symbol with the given dense index and token
// kind name.
func NewTerminal(index int, name string) Symbol {
	return Symbol{kind: KindTerminal, name: name, index: index}
}

// NewNonterminal returns a Nonterminal symbol with the given dense index and
// name.
func NewNonterminal(index int, name string) Symbol {
	return Symbol{kind: KindNonterminal, name: name, index: index}
}

func (s Symbol) Kind() Kind { return s.kind }

func (s Symbol) Name() string { return s.name }

// Index returns the symbol's dense index within its kind's registry. It is
// undefined (-1) for Epsilon and Eof.
func (s Symbol) Index() int { return s.index }

func (s Symbol) IsTerminal() bool { return s.kind == KindTerminal }

func (s Symbol) IsNonterminal() bool { return s.kind == KindNonterminal }

func (s Symbol) IsEpsilon() bool { return s.kind == KindEpsilon }

func (s Symbol) IsEof() bool { return s.kind == KindEof }

// IsTerminalLike reports whether s may appear in a FIRST/FOLLOW/lookahead
// set: true for Terminal and Eof, false for Nonterminal and Epsilon.
func (s Symbol) IsTerminalLike() bool {
	return s.kind == KindTerminal || s.kind == KindEof
}

func (s Symbol) Equal(o Symbol) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case KindEpsilon, KindEof:
		return true
	default:
		return s.index == o.index
	}
}

func (s Symbol) String() string {
	switch s.kind {
	case KindEpsilon:
		return "ε"
	case KindEof:
		return "$"
	default:
		return s.name
	}
}

func (s Symbol) GoString() string {
	return fmt.Sprintf("Symbol{%s %q #%d}", s.kind, s.name, s.index)
}

// foldName normalizes a symbol name for case-insensitive collision checks
// during grammar validation ("Expr" and "expr" must not coexist).
func foldName(name string) string {
	return cases.Fold().String(name)
}

// CanonicalKey returns a case-folded key suitable for detecting name
// collisions between otherwise-distinct symbol spellings.
func CanonicalKey(name string) string {
	return foldName(name)
}
