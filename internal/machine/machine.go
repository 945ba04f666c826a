// Package machine implements the shift-reduce driver: Algorithm 4.44
// from the purple dragon book, run against a parsetable.Table over a
// lex.TokenStream. It uses the classical GOTO approach — after a
// reduction, GOTO is looked up directly from the state now exposed on
// top of the state stack, rather than re-injecting the reduced
// non-terminal into the token stream and re-entering the main loop (the
// alternative formulation some LR drivers use). The operand stack is
// backed by github.com/emirpasic/gods' arraystack, storing
// (state, symbol) pairs exactly as the textbook's single combined stack
// does; the Go idiom of also keeping a side Go slice for the completed
// subtree roots is kept separate for clarity, mirroring how the
// teacher's driver keeps a distinct subTreeRoots stack.
package machine

import (
	"fmt"

	"github.com/dekarrin/firparse/internal/fperrors"
	"github.com/dekarrin/firparse/internal/grammar"
	"github.com/dekarrin/firparse/internal/lex"
	"github.com/dekarrin/firparse/internal/parsetable"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Tree is the parse tree the machine assembles: Terminal nodes carry the
// Token they were shifted from, Production nodes carry every child
// produced by the reduction that introduced them.
type Tree struct {
	Symbol     string
	Terminal   bool
	Token      lex.Token
	Production grammar.Production // set only on non-terminal nodes
	Children   []*Tree
}

// CountNodes returns the total number of nodes in the subtree rooted at
// t, terminals and non-terminals alike, for diagnostics that want a
// cheap "how big was this parse" figure without walking the tree
// themselves.
func (t *Tree) CountNodes() int {
	if t == nil {
		return 0
	}
	n := 1
	for _, c := range t.Children {
		n += c.CountNodes()
	}
	return n
}

// stackEntry is what Machine's operand stack actually holds: the
// automaton state key the entry was pushed under, paired with the
// grammar symbol consumed to reach it (empty for the bottom entry).
type stackEntry struct {
	state  string
	symbol string
}

// TraceListener receives a line of human-readable commentary for every
// shift, reduce, and goto the machine performs, for -t/--trace.
type TraceListener func(line string)

// Machine is a single shift-reduce parse run against one Table.
type Machine struct {
	table *parsetable.Table
	trace TraceListener

	stateStack   *arraystack.Stack
	tokenBuffer  []lex.Token
	subtreeRoots []*Tree

	// reinjectBuffer exists only for data-model symmetry with drivers
	// that implement GOTO by feeding the reduced non-terminal back
	// through the token stream; this Machine resolves GOTO directly
	// from the table instead, so the field is always empty.
	reinjectBuffer []string
}

// New returns a Machine ready to Run against stream.
func New(table *parsetable.Table) *Machine {
	return &Machine{table: table, stateStack: arraystack.New()}
}

// SetTrace installs (or, passed nil, removes) a TraceListener.
func (m *Machine) SetTrace(fn TraceListener) {
	m.trace = fn
}

func (m *Machine) notify(format string, args ...any) {
	if m.trace == nil {
		return
	}
	m.trace(fmt.Sprintf(format, args...))
}

// Run drives stream to completion, returning the finished Tree on
// ACTION=accept or an *fperrors.ParseError at the first state/lookahead
// pair with no ACTION entry.
func (m *Machine) Run(stream lex.TokenStream) (*Tree, error) {
	m.stateStack.Push(stackEntry{state: m.table.Initial()})

	a := stream.Next()
	m.notify("lookahead: %s", a)

	for {
		top, _ := m.stateStack.Peek()
		s := top.(stackEntry).state
		m.notify("state: %s", s)

		act := m.table.Action(s, a.Class().ID())
		m.notify("action: %s", act)

		switch act.Type {
		case parsetable.ActionShift:
			m.tokenBuffer = append(m.tokenBuffer, a)
			m.stateStack.Push(stackEntry{state: act.State, symbol: a.Class().ID()})
			a = stream.Next()
			m.notify("lookahead: %s", a)

		case parsetable.ActionReduce:
			node := m.reduce(act.NonTerminal, act.Production)
			for range act.Production {
				m.stateStack.Pop()
			}
			topAfter, _ := m.stateStack.Peek()
			t := topAfter.(stackEntry).state
			to, ok := m.table.Goto(t, act.NonTerminal)
			if !ok {
				return nil, &fperrors.ParseError{
					State: t,
					Token: currentTokenInfo(a),
					Expected: []string{fmt.Sprintf("a valid continuation after reducing %s", act.NonTerminal)},
				}
			}
			m.stateStack.Push(stackEntry{state: to, symbol: act.NonTerminal})
			m.subtreeRoots = append(m.subtreeRoots, node)
			m.notify("goto: %s", to)

		case parsetable.ActionAccept:
			if len(m.subtreeRoots) == 0 {
				return nil, fmt.Errorf("accept reached with no parse tree on the stack")
			}
			return m.subtreeRoots[len(m.subtreeRoots)-1], nil

		default:
			return nil, &fperrors.ParseError{
				State:    s,
				Token:    currentTokenInfo(a),
				Expected: m.expectedAt(s),
			}
		}
	}
}

// reduce builds the Tree node for reducing prod under nonTerm, popping
// matching children off the token buffer (terminals) or subtreeRoots
// (non-terminals) from right to left so they come back out in the
// production's original left-to-right order.
func (m *Machine) reduce(nonTerm string, prod grammar.Production) *Tree {
	node := &Tree{Symbol: nonTerm, Production: prod}
	node.Children = make([]*Tree, len(prod))

	for i := len(prod) - 1; i >= 0; i-- {
		sym := prod[i]
		if m.table.Grammar.IsTerminal(sym) {
			tok := m.tokenBuffer[len(m.tokenBuffer)-1]
			m.tokenBuffer = m.tokenBuffer[:len(m.tokenBuffer)-1]
			node.Children[i] = &Tree{Symbol: sym, Terminal: true, Token: tok}
		} else {
			sub := m.subtreeRoots[len(m.subtreeRoots)-1]
			m.subtreeRoots = m.subtreeRoots[:len(m.subtreeRoots)-1]
			node.Children[i] = sub
		}
	}

	return node
}

// currentTokenInfo adapts a lex.Token into the minimal view
// fperrors.ParseError needs.
func currentTokenInfo(t lex.Token) fperrors.OffendingToken {
	return fperrors.OffendingToken{Lexeme: t.Lexeme(), Line: t.Line(), EndLine: t.EndLine()}
}

// expectedAt renders the set of terminal IDs that have some ACTION
// entry in state s, for the ParseError's diagnostic Expected field.
func (m *Machine) expectedAt(s string) []string {
	return m.table.ExpectedTerminals(s)
}
