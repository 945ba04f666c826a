// Package grammar holds the pure context-free grammar data model used by
// the rest of the pipeline: Desugar turns an EBNF expression tree (from
// package ebnf) into plain productions, and the analysis in analysis.go
// computes nullability, FIRST, and FOLLOW sets over the result. Nothing
// in this package knows about tokens or source text; it operates purely
// on grammar symbol names.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/firparse/internal/util"
)

// Production is the right-hand side of a rule: an ordered list of
// symbol names. A Production with no elements is an epsilon production.
type Production []string

// Epsilon is the canonical empty production.
var Epsilon = Production{}

func (p Production) String() string {
	if len(p) == 0 {
		return "ε"
	}
	return strings.Join(p, " ")
}

// Rule is every production for a single non-terminal, grouped together
// the way the meta-grammar declares them (one Rule per distinct LHS).
type Rule struct {
	NonTerminal string
	Productions []Production
}

func (r Rule) String() string {
	alts := make([]string, len(r.Productions))
	for i, p := range r.Productions {
		alts[i] = p.String()
	}
	return fmt.Sprintf("%s -> %s", r.NonTerminal, strings.Join(alts, " | "))
}

// Grammar is a context-free grammar: an ordered set of rules plus the
// set of terminal symbol names it references. Order of rule declaration
// is preserved and significant — the first rule added is the start
// rule, per the meta-grammar's rule-0-is-start convention.
type Grammar struct {
	rules     []Rule
	ruleIndex map[string]int // NonTerminal -> index into rules
	terminals util.StringSet
	analysis  *analysis // lazily built by ensureAnalysis, memoizes FIRST/FOLLOW/Nullable
}

// NewGrammar returns an empty, ready-to-use Grammar.
func NewGrammar() *Grammar {
	return &Grammar{
		ruleIndex: map[string]int{},
		terminals: util.NewStringSet(),
	}
}

// AddTerm registers name as a terminal symbol. It is idempotent.
func (g *Grammar) AddTerm(name string) {
	if g.terminals == nil {
		g.terminals = util.NewStringSet()
	}
	g.terminals.Add(name)
}

// AddRule appends prod as one more production for nonTerm, creating the
// rule (and fixing its declaration position, and hence possibly the
// start symbol) on first use.
func (g *Grammar) AddRule(nonTerm string, prod Production) {
	if idx, ok := g.ruleIndex[nonTerm]; ok {
		g.rules[idx].Productions = append(g.rules[idx].Productions, prod)
		return
	}
	g.ruleIndex[nonTerm] = len(g.rules)
	g.rules = append(g.rules, Rule{NonTerminal: nonTerm, Productions: []Production{prod}})
}

// Rule returns the rule for nonTerm and whether it exists.
func (g *Grammar) Rule(nonTerm string) (Rule, bool) {
	idx, ok := g.ruleIndex[nonTerm]
	if !ok {
		return Rule{}, false
	}
	return g.rules[idx], true
}

// Rules returns every rule, in declaration order.
func (g *Grammar) Rules() []Rule {
	return g.rules
}

// NonTerminals returns every non-terminal name, in declaration order.
func (g *Grammar) NonTerminals() []string {
	out := make([]string, len(g.rules))
	for i, r := range g.rules {
		out[i] = r.NonTerminal
	}
	return out
}

// Terminals returns every registered terminal name, alphabetized.
func (g *Grammar) Terminals() []string {
	return g.terminals.Alphabetized()
}

// IsTerminal reports whether name was registered with AddTerm.
func (g *Grammar) IsTerminal(name string) bool {
	return g.terminals.Has(name)
}

// IsNonTerminal reports whether name names a declared rule.
func (g *Grammar) IsNonTerminal(name string) bool {
	_, ok := g.ruleIndex[name]
	return ok
}

// StartSymbol returns the non-terminal of the first rule declared, the
// grammar's start symbol. Panics if the grammar has no rules; callers
// are expected to call Validate first.
func (g *Grammar) StartSymbol() string {
	return g.rules[0].NonTerminal
}

// augmentedStart is the synthetic start symbol introduced by Augmented,
// named so it cannot collide with any legal meta-grammar identifier
// (identifiers cannot begin with '$').
const augmentedStart = "$start"

// Augmented returns a copy of g with one new rule `$start -> S` prepended,
// where S is g's current start symbol, per the standard LR construction
// requirement that the start symbol not appear on the right of any
// production.
func (g *Grammar) Augmented() *Grammar {
	aug := NewGrammar()
	aug.terminals = g.terminals.Copy()
	aug.AddRule(augmentedStart, Production{g.StartSymbol()})
	for _, r := range g.rules {
		for _, p := range r.Productions {
			aug.AddRule(r.NonTerminal, p)
		}
	}
	return aug
}

// Validate reports structural problems: no rules, a production
// referencing a symbol that is neither a declared terminal nor a
// declared non-terminal, or a non-terminal with zero productions.
func (g *Grammar) Validate() error {
	if len(g.rules) == 0 {
		return fmt.Errorf("grammar has no rules")
	}
	for _, r := range g.rules {
		if len(r.Productions) == 0 {
			return fmt.Errorf("non-terminal %q has no productions", r.NonTerminal)
		}
		for _, p := range r.Productions {
			for _, sym := range p {
				if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
					return fmt.Errorf("rule %q references undefined symbol %q", r.NonTerminal, sym)
				}
			}
		}
	}
	return nil
}

func (g *Grammar) String() string {
	lines := make([]string, len(g.rules))
	for i, r := range g.rules {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
