package automaton

import (
	"testing"

	"github.com/dekarrin/firparse/internal/grammar"
	"github.com/stretchr/testify/assert"
)

// textbook grammar (dragon book 4.34):
//
//	S' -> S
//	S  -> C C
//	C  -> "c" C | "d"
func exampleGrammar() *grammar.Grammar {
	g := grammar.NewGrammar()
	g.AddTerm("c")
	g.AddTerm("d")
	g.AddRule("S", grammar.Production{"C", "C"})
	g.AddRule("C", grammar.Production{"c", "C"})
	g.AddRule("C", grammar.Production{"d"})
	return g
}

func Test_Closure(t *testing.T) {
	assert := assert.New(t)

	g := exampleGrammar().Augmented()
	startRule, _ := g.Rule(g.StartSymbol())
	start := grammar.LR0Item{NonTerminal: g.StartSymbol(), Left: []string{}, Right: startRule.Productions[0]}

	set := Closure(g, []grammar.LR0Item{start})

	// closure of {$start -> .S} must pull in S -> .C C, and transitively
	// C -> .c C and C -> .d
	var productions []string
	for _, it := range set.Items {
		productions = append(productions, it.String())
	}
	assert.Contains(productions, "$start -> . S")
	assert.Contains(productions, "S -> . C C")
	assert.Contains(productions, "C -> . c C")
	assert.Contains(productions, "C -> . d")
}

func Test_Closure_canonical_key_is_order_independent(t *testing.T) {
	assert := assert.New(t)

	g := exampleGrammar().Augmented()
	rule, _ := g.Rule("C")

	a := Closure(g, []grammar.LR0Item{
		{NonTerminal: "C", Left: []string{}, Right: rule.Productions[0]},
		{NonTerminal: "C", Left: []string{}, Right: rule.Productions[1]},
	})
	b := Closure(g, []grammar.LR0Item{
		{NonTerminal: "C", Left: []string{}, Right: rule.Productions[1]},
		{NonTerminal: "C", Left: []string{}, Right: rule.Productions[0]},
	})

	assert.Equal(a.Key, b.Key)
}

func Test_Build_canonical_collection(t *testing.T) {
	assert := assert.New(t)

	g := exampleGrammar()
	coll := Build(g)

	// dragon book 4.34 has exactly 10 states in the canonical collection
	assert.Len(coll.Order, 10)
	assert.Equal(coll.Start, coll.Order[0])

	// from the start state, goto on S should lead to a state containing
	// the completed augmented item
	startSet := coll.States[coll.Start]
	var gotoOnS string
	for _, tr := range coll.Transitions {
		if tr.From == coll.Start && tr.Symbol == "S" {
			gotoOnS = tr.To
		}
	}
	assert.NotEmpty(gotoOnS)

	accepting := coll.States[gotoOnS]
	found := false
	for _, it := range accepting.Items {
		if it.NonTerminal == "$start" && it.Complete() {
			found = true
		}
	}
	assert.True(found)
	_ = startSet
}

func Test_GotoSet_empty_when_no_matching_symbol(t *testing.T) {
	assert := assert.New(t)

	g := exampleGrammar().Augmented()
	rule, _ := g.Rule("C")
	set := Closure(g, []grammar.LR0Item{{NonTerminal: "C", Left: []string{}, Right: rule.Productions[1]}})

	to := GotoSet(g, set, "nonexistent")
	assert.Empty(to.Items)
}
