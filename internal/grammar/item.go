package grammar

import (
	"fmt"
	"strings"
)

// LR0Item is a dotted production: NonTerminal -> Left . Right, where
// Left is the portion of the production already matched and Right is
// the portion still to come. SLR(1) needs only LR0 items — lookahead is
// derived separately from FOLLOW(NonTerminal), so there is no LR1Item
// here.
type LR0Item struct {
	NonTerminal string
	Left        []string
	Right       []string
}

// Production reconstructs the full (undotted) right-hand side.
func (item LR0Item) Production() Production {
	p := make(Production, 0, len(item.Left)+len(item.Right))
	p = append(p, item.Left...)
	p = append(p, item.Right...)
	return p
}

// Complete reports whether the dot has reached the end of the
// production, i.e. this item calls for a reduction.
func (item LR0Item) Complete() bool {
	return len(item.Right) == 0
}

// NextSymbol returns the symbol immediately after the dot and true, or
// ("", false) if the item is Complete.
func (item LR0Item) NextSymbol() (string, bool) {
	if item.Complete() {
		return "", false
	}
	return item.Right[0], true
}

// Advance returns the item with the dot moved one position to the
// right. Panics if called on a Complete item; callers check NextSymbol
// first.
func (item LR0Item) Advance() LR0Item {
	next := LR0Item{
		NonTerminal: item.NonTerminal,
		Left:        make([]string, len(item.Left)+1),
		Right:       make([]string, len(item.Right)-1),
	}
	copy(next.Left, item.Left)
	next.Left[len(item.Left)] = item.Right[0]
	copy(next.Right, item.Right[1:])
	return next
}

func (item LR0Item) String() string {
	nonTermPhrase := ""
	if item.NonTerminal != "" {
		nonTermPhrase = fmt.Sprintf("%s -> ", item.NonTerminal)
	}

	left := strings.Join(item.Left, " ")
	right := strings.Join(item.Right, " ")

	if len(left) > 0 {
		left += " "
	}
	if len(right) > 0 {
		right = " " + right
	}

	return fmt.Sprintf("%s%s.%s", nonTermPhrase, left, right)
}

// LR0Items returns the initial (dot-at-start) item of every production
// of every rule, in rule-declaration order. This is the seed set the
// automaton package's closure/goto construction starts from.
func (g *Grammar) LR0Items() []LR0Item {
	var items []LR0Item
	for _, r := range g.rules {
		for _, p := range r.Productions {
			right := make([]string, len(p))
			copy(right, p)
			items = append(items, LR0Item{NonTerminal: r.NonTerminal, Left: []string{}, Right: right})
		}
	}
	return items
}
