package symbol

import (
	"fmt"

	"github.com/tanagra-tools/lrforge/internal/util"
)

// Registry assigns and looks up dense indices for one kind of symbol
// (terminals or nonterminals), and rejects case-folded name collisions
// before they become silent grammar bugs.
type Registry struct {
	kind    Kind
	byName  map[string]Symbol
	byIndex []Symbol
	folded  util.Set[string]
}

func newRegistry(kind Kind) *Registry {
	return &Registry{
		kind:   kind,
		byName: make(map[string]Symbol),
		folded: util.NewSet[string](),
	}
}

// NewTerminalRegistry returns an empty registry for terminal symbols. The
// caller is responsible for reserving index 0 for EOF-adjacent bookkeeping
// if its enumeration convention requires it; the registry itself only
// guarantees density and uniqueness.
func NewTerminalRegistry() *Registry { return newRegistry(KindTerminal) }

// NewNonterminalRegistry returns an empty registry for nonterminal symbols.
func NewNonterminalRegistry() *Registry { return newRegistry(KindNonterminal) }

// Define adds a new symbol named name, returning its Symbol value. It
// returns an error if name collides (case-insensitively) with an existing
// entry.
func (r *Registry) Define(name string) (Symbol, error) {
	key := CanonicalKey(name)
	if r.folded.Has(key) {
		return Symbol{}, fmt.Errorf("%s %q collides with an existing symbol name (case-insensitive)", r.kind, name)
	}

	idx := len(r.byIndex)
	var sym Symbol
	switch r.kind {
	case KindTerminal:
		sym = NewTerminal(idx, name)
	case KindNonterminal:
		sym = NewNonterminal(idx, name)
	default:
		return Symbol{}, fmt.Errorf("cannot define a symbol of kind %s in a registry", r.kind)
	}

	r.byName[name] = sym
	r.folded.Add(key)
	r.byIndex = append(r.byIndex, sym)
	return sym, nil
}

// Lookup returns the Symbol named name and whether it was found.
func (r *Registry) Lookup(name string) (Symbol, bool) {
	sym, ok := r.byName[name]
	return sym, ok
}

// At returns the Symbol with the given dense index.
func (r *Registry) At(index int) Symbol { return r.byIndex[index] }

// Len returns the number of symbols defined in the registry.
func (r *Registry) Len() int { return len(r.byIndex) }

// All returns every symbol in the registry, in index order.
func (r *Registry) All() []Symbol {
	out := make([]Symbol, len(r.byIndex))
	copy(out, r.byIndex)
	return out
}
