// Package parseerr defines the structured error types raised across grammar
// validation, enumeration validation, and parse-time failures. Builders
// raise these before returning anything; they never partially initialize.
// The parser driver surfaces a single SyntaxError to its caller; nothing in
// this package is retried.
package parseerr

import (
	"fmt"
	"strings"

	"github.com/tanagra-tools/lrforge/token"
)

// GrammarError reports a fatal grammar-construction invariant violation:
// an empty production list, a duplicate start production, a start symbol
// appearing on the right-hand side of a production, a body referencing an
// undeclared symbol, a reserved epsilon spelling in a body, or a grammar
// with useless (non-reduced) symbols. It is raised by grammar.Builder only;
// the automaton builders return no error.
type GrammarError struct {
	Reason string
	Detail string
}

func (e *GrammarError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("grammar validation: %s", e.Reason)
	}
	return fmt.Sprintf("grammar validation: %s: %s", e.Reason, e.Detail)
}

func NewGrammarError(reason, detail string) *GrammarError {
	return &GrammarError{Reason: reason, Detail: detail}
}

// EnumError reports a terminal enumeration that is not sequentially
// indexed, is missing a reserved EOF name, or otherwise fails the
// conventions in the grammar specification format.
type EnumError struct {
	Reason string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("terminal enumeration invalid: %s", e.Reason)
}

func NewEnumError(reason string) *EnumError {
	return &EnumError{Reason: reason}
}

// SyntaxError is a parse-time UnexpectedToken failure: ACTION[state, a] was
// Error. It carries the offending token and the set of terminals that would
// have been accepted, for a human-readable "expected one of ..." message.
type SyntaxError struct {
	Got      token.Token
	Expected []string
}

func NewSyntaxErrorFromToken(got token.Token, expected []string) *SyntaxError {
	return &SyntaxError{Got: got, Expected: expected}
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected token %s at %s", e.Got.Class, e.Got.Position)
	}
	sorted := make([]string, len(e.Expected))
	copy(sorted, e.Expected)
	return fmt.Sprintf("unexpected token %s at %s; expected %s",
		e.Got.Class, e.Got.Position, oxfordJoin(sorted))
}

// oxfordJoin joins items with an oxford comma and a trailing "or".
func oxfordJoin(items []string) string {
	if len(items) == 0 {
		return ""
	}
	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 2 {
		return items[0] + " or " + items[1]
	}
	cp := make([]string, len(items))
	copy(cp, items)
	cp[len(cp)-1] = "or " + cp[len(cp)-1]
	return strings.Join(cp, ", ")
}

// GotoUndefined reports the driver-side invariant violation where
// GOTO[state, head(production)] was 0 (no transition) immediately after a
// reduce; this indicates a bug in the table or grammar, not a malformed
// input, and is always a programmer error rather than a recoverable parse
// failure.
type GotoUndefined struct {
	State      int
	Nonterminal string
}

func (e *GotoUndefined) Error() string {
	return fmt.Sprintf("parser table bug: GOTO[%d, %s] is undefined after reduce", e.State, e.Nonterminal)
}

