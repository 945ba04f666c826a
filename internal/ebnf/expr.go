// Package ebnf implements the meta-grammar reader: a small hand-written
// scanner and recursive-descent parser over the EBNF-like notation used
// to describe a context-free grammar (`|`, `,`, `{ }`, `[ ]`, `( )`,
// quoted-string terminals, and bare-word nonterminals). It produces an
// expression tree per rule; the desugarer in package grammar is the
// only consumer of that tree.
package ebnf

import "fmt"

// Expr is an EBNF expression node. The concrete types are Alt, Seq,
// Term, Nonterm, Star, Opt, and Group.
type Expr interface {
	// String renders the expression in the same concrete syntax it was
	// read from (modulo whitespace). The desugarer uses this printed
	// form, wrapped in angle brackets, to deterministically name the
	// fresh nonterminal it introduces for a compound sub-expression:
	// two occurrences of an identical sub-expression always print
	// identically and therefore always get the same fresh name.
	String() string

	// Simple reports whether the expression contains no Alt, Seq, Star,
	// Opt, or Group: i.e. whether it is already a bare Term or Nonterm.
	Simple() bool
}

// Term is a quoted-string terminal reference.
type Term struct{ Name string }

func (t Term) String() string { return fmt.Sprintf("%q", t.Name) }
func (t Term) Simple() bool   { return true }

// Nonterm is a bare-word nonterminal reference.
type Nonterm struct{ Name string }

func (n Nonterm) String() string { return n.Name }
func (n Nonterm) Simple() bool   { return true }

// Alt is alternation: exactly one of Items must match.
type Alt struct{ Items []Expr }

func (a Alt) String() string { return joinExprs(a.Items, " | ") }
func (a Alt) Simple() bool   { return false }

// Seq is sequencing: every item of Items must match in order.
type Seq struct{ Items []Expr }

func (s Seq) String() string { return joinExprs(s.Items, " , ") }
func (s Seq) Simple() bool   { return false }

// Star is zero-or-more repetition of Inner.
type Star struct{ Inner Expr }

func (s Star) String() string { return "{ " + s.Inner.String() + " }" }
func (s Star) Simple() bool   { return false }

// Opt is zero-or-one occurrence of Inner.
type Opt struct{ Inner Expr }

func (o Opt) String() string { return "[ " + o.Inner.String() + " ]" }
func (o Opt) Simple() bool   { return false }

// Group is parenthetical grouping of Inner, used only to control
// operator precedence in the source text; it carries no semantics of
// its own beyond "evaluate Inner".
type Group struct{ Inner Expr }

func (g Group) String() string { return "( " + g.Inner.String() + " )" }
func (g Group) Simple() bool   { return false }

func joinExprs(items []Expr, sep string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += sep
		}
		out += it.String()
	}
	return out
}

// Rule is one `name = expr ;` declaration from the meta-grammar, in the
// order it was declared. Declaration order matters: rule 0 of the
// parsed file is the grammar's start rule.
type Rule struct {
	Name string
	Expr Expr
}
