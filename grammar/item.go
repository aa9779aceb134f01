package grammar

import (
	"sort"
	"strings"

	"github.com/tanagra-tools/lrforge/internal/util"
	"github.com/tanagra-tools/lrforge/symbol"
)

// Item is an LR(k) item: a marked production plus a (possibly empty, for
// LR(0)) set of lookahead terminals. Two items are equal iff both the core
// and the lookahead set are equal; ItemSet additionally supports comparing
// items by core alone ("core-only equality"), which is what the LALR merge
// operates on.
type Item struct {
	Core       MarkedProduction
	Lookaheads util.Set[symbol.Symbol]
}

// NewLR0Item returns an item with no lookahead set.
func NewLR0Item(core MarkedProduction) Item {
	return Item{Core: core, Lookaheads: util.NewSet[symbol.Symbol]()}
}

// NewLR1Item returns an item with the given lookahead terminals.
func NewLR1Item(core MarkedProduction, la ...symbol.Symbol) Item {
	return Item{Core: core, Lookaheads: util.NewSet(la...)}
}

func (it Item) String(g *Grammar) string {
	if it.Lookaheads.Empty() {
		return it.Core.String(g)
	}
	las := make([]string, 0, it.Lookaheads.Len())
	for _, s := range it.Lookaheads.Elements() {
		las = append(las, s.String())
	}
	sort.Strings(las)
	return it.Core.String(g) + ", " + strings.Join(las, "/")
}

// ItemSet is a state of the LR(0)/LR(1) automaton: a collection of items in
// which no two items share a core (closure merges lookaheads into one item
// per core by unioning). It is keyed internally by MarkedProduction so that
// closure and merge operations are O(1) per lookup.
type ItemSet struct {
	items util.VSet[MarkedProduction, util.Set[symbol.Symbol]]
}

// NewItemSet returns an empty ItemSet.
func NewItemSet() *ItemSet {
	return &ItemSet{items: util.NewVSet[MarkedProduction, util.Set[symbol.Symbol]]()}
}

// Add merges an item into the set: if its core is already present, the
// lookahead sets are unioned; otherwise the item is inserted fresh. It
// reports whether the set's contents actually changed.
func (is *ItemSet) Add(it Item) bool {
	if existing, ok := is.items[it.Core]; ok {
		return existing.AddAllReturningChanged(it.Lookaheads)
	}
	is.items[it.Core] = it.Lookaheads.Copy()
	return true
}

// Has reports whether core is present in the set, regardless of lookahead.
func (is *ItemSet) Has(core MarkedProduction) bool {
	return is.items.Has(core)
}

// Lookaheads returns the lookahead set attached to core, or nil if absent.
func (is *ItemSet) Lookaheads(core MarkedProduction) util.Set[symbol.Symbol] {
	return is.items[core]
}

// Len returns the number of distinct cores in the set.
func (is *ItemSet) Len() int { return is.items.Len() }

// Items returns every item in the set, in no particular order.
func (is *ItemSet) Items() []Item {
	out := make([]Item, 0, is.items.Len())
	for core, las := range is.items {
		out = append(out, Item{Core: core, Lookaheads: las})
	}
	return out
}

// Cores returns the marked productions in the set, in no particular order.
func (is *ItemSet) Cores() []MarkedProduction {
	return is.items.Keys()
}

// Kernel returns the subset of items whose core is a kernel item.
func (is *ItemSet) Kernel() []Item {
	var out []Item
	for _, it := range is.Items() {
		if it.Core.IsKernel() {
			out = append(out, it)
		}
	}
	return out
}

// CoreKey returns a stable, sorted string encoding of the set's cores,
// suitable for use as a map key when comparing item sets by core only (e.g.
// grouping canonical LR(1) states into LALR(1) blocks).
func (is *ItemSet) CoreKey() string {
	cores := is.Cores()
	strs := make([]string, len(cores))
	for i, c := range cores {
		strs[i] = markedProductionKey(c)
	}
	sort.Strings(strs)
	return strings.Join(strs, "|")
}

func markedProductionKey(mp MarkedProduction) string {
	return itoa(mp.ProductionIndex) + ":" + itoa(mp.Dot)
}

// FullKey returns a stable string encoding of the set's items including
// their lookahead sets, suitable for deduplicating states during canonical
// LR(1) collection construction (two states are the same state only if
// both their cores and their lookaheads match).
func (is *ItemSet) FullKey() string {
	items := is.Items()
	strs := make([]string, len(items))
	for i, it := range items {
		las := make([]string, 0, it.Lookaheads.Len())
		for _, s := range it.Lookaheads.Elements() {
			las = append(las, s.String())
		}
		sort.Strings(las)
		strs[i] = markedProductionKey(it.Core) + "#" + strings.Join(las, ",")
	}
	sort.Strings(strs)
	return strings.Join(strs, "|")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// EqualCores reports whether is and o contain exactly the same set of
// marked productions, ignoring lookaheads.
func (is *ItemSet) EqualCores(o *ItemSet) bool {
	return is.CoreKey() == o.CoreKey()
}

// Copy returns a deep copy of is.
func (is *ItemSet) Copy() *ItemSet {
	cp := NewItemSet()
	for core, las := range is.items {
		cp.items[core] = las.Copy()
	}
	return cp
}

func (is *ItemSet) String(g *Grammar) string {
	items := is.Items()
	strs := make([]string, len(items))
	for i, it := range items {
		strs[i] = it.String(g)
	}
	sort.Strings(strs)
	return "{" + strings.Join(strs, "; ") + "}"
}
