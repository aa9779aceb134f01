// Package grammar implements the immutable context-free grammar model:
// productions, marked productions (LR items' cores), and the Grammar type
// itself, built through an explicit Builder that enforces every validation
// rule before an immutable Grammar is handed out.
package grammar

import (
	"strings"

	"github.com/tanagra-tools/lrforge/symbol"
)

// Production is (head, body): a single CFG rule. The body is a sequence of
// symbols; an empty body denotes an epsilon production. Productions are
// immutable once constructed by a Builder.
type Production struct {
	Head  symbol.Symbol
	Body  []symbol.Symbol
	index int
}

// Index returns the production's position in its Grammar, 0 .. |P|-1.
// Production 0 is always the augmented start production.
func (p Production) Index() int { return p.index }

// IsEpsilon reports whether the production's body is empty.
func (p Production) IsEpsilon() bool { return len(p.Body) == 0 }

func (p Production) String() string {
	var sb strings.Builder
	sb.WriteString(p.Head.Name())
	sb.WriteString(" ->")
	if len(p.Body) == 0 {
		sb.WriteString(" ε")
	}
	for _, s := range p.Body {
		sb.WriteString(" ")
		sb.WriteString(s.String())
	}
	return sb.String()
}

// MarkedProduction is an LR(0) item core: a production index paired with a
// dot position 0 <= dot <= len(body). Equality depends only on these two
// integers, which is why it is used directly as a map key throughout the
// automaton package.
type MarkedProduction struct {
	ProductionIndex int
	Dot             int
}

// DotSymbol returns the symbol immediately after the dot and whether one
// exists (false for a reduce item).
func (mp MarkedProduction) DotSymbol(g *Grammar) (symbol.Symbol, bool) {
	p := g.Production(mp.ProductionIndex)
	if mp.Dot >= len(p.Body) {
		return symbol.Symbol{}, false
	}
	return p.Body[mp.Dot], true
}

// IsKernel reports whether mp is a kernel item: dot advanced past the start,
// or the initial item of the augmented start production.
func (mp MarkedProduction) IsKernel() bool {
	return mp.Dot > 0 || mp.ProductionIndex == 0
}

// IsReduce reports whether the dot has reached the end of the production's
// body, i.e. this item calls for a reduction.
func (mp MarkedProduction) IsReduce(g *Grammar) bool {
	return mp.Dot >= len(g.Production(mp.ProductionIndex).Body)
}

// Advance returns the marked production with the dot moved one position to
// the right. Callers must only call this when DotSymbol indicates a symbol
// exists.
func (mp MarkedProduction) Advance() MarkedProduction {
	return MarkedProduction{ProductionIndex: mp.ProductionIndex, Dot: mp.Dot + 1}
}

func (mp MarkedProduction) String(g *Grammar) string {
	p := g.Production(mp.ProductionIndex)
	var sb strings.Builder
	sb.WriteString(p.Head.Name())
	sb.WriteString(" ->")
	for i, s := range p.Body {
		sb.WriteString(" ")
		if i == mp.Dot {
			sb.WriteString("• ")
		}
		sb.WriteString(s.String())
	}
	if mp.Dot == len(p.Body) {
		sb.WriteString(" •")
	}
	return sb.String()
}
