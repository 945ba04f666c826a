// Package automaton builds the canonical collection of LR(0) item sets
// for an augmented grammar: the closure and goto operations of the
// purple-dragon-book algorithms, assembled into a deterministic
// collection the parsetable package turns into ACTION/GOTO entries.
//
// Item sets are canonicalized with github.com/cnf/structhash rather than
// a hand-rolled string-join key, so that two syntactically identical
// item sets reached by different derivation paths are always recognized
// as the same automaton state.
package automaton

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	"github.com/dekarrin/firparse/internal/grammar"
)

// ItemSet is a set of LR0Items sharing one canonical key. Two ItemSets
// with the same Key are, by construction, the same automaton state.
type ItemSet struct {
	Items []grammar.LR0Item
	Key   string
}

func canonicalKey(items []grammar.LR0Item) string {
	sorted := make([]grammar.LR0Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	hash, err := structhash.Hash(sorted, 1)
	if err != nil {
		// structhash.Hash only fails on unhashable input; LR0Item is a
		// plain struct of strings and slices of strings, so this is
		// unreachable for any item set this package ever builds.
		panic(fmt.Sprintf("canonicalize item set: %v", err))
	}
	return hash
}

func newItemSet(items []grammar.LR0Item) ItemSet {
	return ItemSet{Items: items, Key: canonicalKey(items)}
}

// Closure computes CLOSURE(items): items, plus the initial item of every
// production of every non-terminal that appears immediately after a dot
// in items, transitively.
func Closure(g *grammar.Grammar, items []grammar.LR0Item) ItemSet {
	seen := map[string]bool{}
	var closure []grammar.LR0Item
	add := func(it grammar.LR0Item) bool {
		key := it.String()
		if seen[key] {
			return false
		}
		seen[key] = true
		closure = append(closure, it)
		return true
	}

	var queue []grammar.LR0Item
	for _, it := range items {
		if add(it) {
			queue = append(queue, it)
		}
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		sym, ok := item.NextSymbol()
		if !ok || !g.IsNonTerminal(sym) {
			continue
		}
		rule, _ := g.Rule(sym)
		for _, prod := range rule.Productions {
			right := make([]string, len(prod))
			copy(right, prod)
			newItem := grammar.LR0Item{NonTerminal: sym, Left: []string{}, Right: right}
			if add(newItem) {
				queue = append(queue, newItem)
			}
		}
	}

	return newItemSet(closure)
}

// GotoSet computes GOTO(set, sym): the closure of every item in set
// advanced past sym, for every item in set whose next symbol is sym.
func GotoSet(g *grammar.Grammar, set ItemSet, sym string) ItemSet {
	var moved []grammar.LR0Item
	for _, item := range set.Items {
		next, ok := item.NextSymbol()
		if !ok || next != sym {
			continue
		}
		moved = append(moved, item.Advance())
	}
	if len(moved) == 0 {
		return ItemSet{}
	}
	return Closure(g, moved)
}

// Transition is one labelled edge of the canonical collection.
type Transition struct {
	From, To string // item-set keys
	Symbol   string
}

// Collection is the canonical collection of LR(0) item sets for an
// augmented grammar, along with the goto transitions between them.
type Collection struct {
	Start       string // key of the initial item set
	States      map[string]ItemSet
	Order       []string // states in discovery order, for deterministic state numbering
	Transitions []Transition
}

// StateIndex returns the discovery-order position of the item set with
// the given key, used to number automaton states 0..N-1 for the
// ACTION/GOTO table.
func (c *Collection) StateIndex(key string) int {
	for i, k := range c.Order {
		if k == key {
			return i
		}
	}
	return -1
}

// Build constructs the canonical collection of LR(0) item sets for g's
// augmented grammar, starting from CLOSURE({ $start -> .S }). This is
// the closure/goto formulation of the canonical-collection construction
// (equivalent to building the item NFA and then subset-constructing it
// into a DFA, per Algorithm 3.20, but expressed directly in terms of
// CLOSURE and GOTO rather than materializing the intermediate NFA).
func Build(g *grammar.Grammar) *Collection {
	aug := g.Augmented()
	startRule, _ := aug.Rule(aug.StartSymbol())
	startItem := grammar.LR0Item{NonTerminal: aug.StartSymbol(), Left: []string{}, Right: startRule.Productions[0]}
	start := Closure(aug, []grammar.LR0Item{startItem})

	coll := &Collection{
		Start:  start.Key,
		States: map[string]ItemSet{start.Key: start},
		Order:  []string{start.Key},
	}

	symbols := allSymbols(aug)

	queue := []string{start.Key}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		set := coll.States[key]

		for _, sym := range symbols {
			to := GotoSet(aug, set, sym)
			if len(to.Items) == 0 {
				continue
			}
			if _, exists := coll.States[to.Key]; !exists {
				coll.States[to.Key] = to
				coll.Order = append(coll.Order, to.Key)
				queue = append(queue, to.Key)
			}
			coll.Transitions = append(coll.Transitions, Transition{From: key, To: to.Key, Symbol: sym})
		}
	}

	return coll
}

func allSymbols(g *grammar.Grammar) []string {
	syms := append([]string{}, g.Terminals()...)
	syms = append(syms, g.NonTerminals()...)
	return syms
}
