// Package parsetable builds the SLR(1) ACTION/GOTO parse table from the
// canonical LR(0) item-set collection, following Algorithm 4.46 from the
// purple dragon book. Unlike the usual presentation (and unlike the
// construction this was ported from), Build never aborts on a conflict:
// every ACTION cell records every action that was ever offered for it,
// Action resolves the cell with the documented shift-preferred /
// first-reduce-wins tie-break, and Conflicts reports the full set of
// cells that needed a tie-break at all. Callers who want conflicts to be
// fatal check Conflicts themselves and turn it into an
// fperrors.GrammarConflict.
package parsetable

import (
	"fmt"
	"sort"

	"github.com/dekarrin/firparse/internal/automaton"
	"github.com/dekarrin/firparse/internal/fperrors"
	"github.com/dekarrin/firparse/internal/grammar"
	"github.com/dekarrin/rosed"
)

// ActionType identifies what kind of entry an Action is.
type ActionType int

const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

func (t ActionType) String() string {
	switch t {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table entry.
type Action struct {
	Type        ActionType
	State       string             // shift target state key, set only for ActionShift
	NonTerminal string             // reduction LHS, set only for ActionReduce
	Production  grammar.Production // reduction RHS, set only for ActionReduce
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return fmt.Sprintf("reduce %s -> %s", a.NonTerminal, a.Production.String())
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Table is the built ACTION/GOTO table, indexed by automaton item-set
// key (not by a dense integer state number — StateIndex on the embedded
// Collection derives a deterministic numbering for display).
type Table struct {
	Collection *automaton.Collection
	Grammar    *grammar.Grammar // augmented

	action map[string]map[string][]Action
	goTo   map[string]map[string]string
}

// Build runs Algorithm 4.46 over g: constructs the canonical LR(0)
// collection, derives GOTO directly from its transitions, and fills in
// ACTION by scanning each state's complete items against FOLLOW.
func Build(g *grammar.Grammar) *Table {
	aug := g.Augmented()
	coll := automaton.Build(g)

	t := &Table{
		Collection: coll,
		Grammar:    aug,
		action:     map[string]map[string][]Action{},
		goTo:       map[string]map[string]string{},
	}

	for _, tr := range coll.Transitions {
		if aug.IsNonTerminal(tr.Symbol) {
			t.setGoto(tr.From, tr.Symbol, tr.To)
		} else {
			t.addAction(tr.From, tr.Symbol, Action{Type: ActionShift, State: tr.To})
		}
	}

	for key, set := range coll.States {
		for _, item := range set.Items {
			if !item.Complete() {
				continue
			}
			if item.NonTerminal == aug.StartSymbol() {
				t.addAction(key, "$", Action{Type: ActionAccept})
				continue
			}
			for _, a := range aug.FOLLOW(item.NonTerminal).Elements() {
				t.addAction(key, a, Action{
					Type:        ActionReduce,
					NonTerminal: item.NonTerminal,
					Production:  item.Production(),
				})
			}
		}
	}

	return t
}

func (t *Table) addAction(state, sym string, a Action) {
	if t.action[state] == nil {
		t.action[state] = map[string][]Action{}
	}
	for _, existing := range t.action[state][sym] {
		if actionsEqual(existing, a) {
			return
		}
	}
	t.action[state][sym] = append(t.action[state][sym], a)
}

// actionsEqual compares two Actions by value. Action isn't comparable
// with == because Production is a slice, so duplicate-entry suppression
// in addAction needs this instead.
func actionsEqual(a, b Action) bool {
	if a.Type != b.Type || a.State != b.State || a.NonTerminal != b.NonTerminal {
		return false
	}
	return a.Production.String() == b.Production.String()
}

func (t *Table) setGoto(state, nonTerm, to string) {
	if t.goTo[state] == nil {
		t.goTo[state] = map[string]string{}
	}
	t.goTo[state][nonTerm] = to
}

// Initial returns the key of the automaton's start state.
func (t *Table) Initial() string {
	return t.Collection.Start
}

// Goto returns GOTO[state, nonTerm] and whether that cell is populated.
func (t *Table) Goto(state, nonTerm string) (string, bool) {
	m, ok := t.goTo[state]
	if !ok {
		return "", false
	}
	s, ok := m[nonTerm]
	return s, ok
}

// Action resolves ACTION[state, term] to a single action, applying the
// shift-preferred / first-reduce-wins tie-break described in the package
// comment (accept is preferred over a reduce as well). An
// empty cell resolves to Action{Type: ActionError}.
func (t *Table) Action(state, term string) Action {
	acts := t.action[state][term]
	if len(acts) == 0 {
		return Action{Type: ActionError}
	}
	for _, a := range acts {
		if a.Type == ActionShift || a.Type == ActionAccept {
			return a
		}
	}
	return acts[0]
}

// Conflicts reports every ACTION cell that received more than one
// distinct action, each rendered as an fperrors.Conflict. Unlike the
// construction this is grounded on, computing Conflicts never aborts
// table construction; it is purely a diagnostic view a caller can
// inspect (and optionally escalate to a fatal fperrors.GrammarConflict)
// after the table is already usable.
func (t *Table) Conflicts() []fperrors.Conflict {
	var out []fperrors.Conflict

	var states []string
	for s := range t.action {
		states = append(states, s)
	}
	sort.Strings(states)

	for _, state := range states {
		var terms []string
		for term := range t.action[state] {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		for _, term := range terms {
			acts := t.action[state][term]
			if len(acts) < 2 {
				continue
			}

			var reduces []string
			var shiftState string
			isShiftRed := false
			for _, a := range acts {
				switch a.Type {
				case ActionShift:
					isShiftRed = true
					shiftState = a.State
				case ActionAccept:
					isShiftRed = true
				case ActionReduce:
					reduces = append(reduces, fmt.Sprintf("%s -> %s", a.NonTerminal, a.Production.String()))
				}
			}
			out = append(out, fperrors.Conflict{
				State:      state,
				Lookahead:  term,
				ShiftState: shiftState,
				Reduces:    reduces,
				IsShiftRed: isShiftRed,
			})
		}
	}

	return out
}

// ExpectedTerminals returns every terminal ID with a non-error ACTION
// entry in state, alphabetized, for use in a ParseError's Expected
// field.
func (t *Table) ExpectedTerminals(state string) []string {
	var out []string
	for term, acts := range t.action[state] {
		if len(acts) > 0 {
			out = append(out, term)
		}
	}
	sort.Strings(out)
	return out
}

// AsError bundles Conflicts into an *fperrors.GrammarConflict, or
// returns nil if the table has no conflicts.
func (t *Table) AsError() *fperrors.GrammarConflict {
	conflicts := t.Conflicts()
	if len(conflicts) == 0 {
		return nil
	}
	return &fperrors.GrammarConflict{Conflicts: conflicts}
}

// String renders the table in the usual "S | A:term... | G:nonterm..."
// grid layout, numbering states by their Collection.Order position with
// the start state forced first.
func (t *Table) String() string {
	stateRefs := map[string]string{}
	for i, key := range t.Collection.Order {
		stateRefs[key] = fmt.Sprintf("%d", i)
	}

	terms := append([]string{}, t.Grammar.Terminals()...)
	terms = append(terms, "$")
	nonTerms := t.Grammar.NonTerminals()

	headers := []string{"S", "|"}
	for _, term := range terms {
		headers = append(headers, "A:"+term)
	}
	headers = append(headers, "|")
	for _, nt := range nonTerms {
		headers = append(headers, "G:"+nt)
	}

	data := [][]string{headers}

	for _, key := range t.Collection.Order {
		row := []string{stateRefs[key], "|"}
		for _, term := range terms {
			act := t.Action(key, term)
			cell := ""
			switch act.Type {
			case ActionAccept:
				cell = "acc"
			case ActionReduce:
				cell = fmt.Sprintf("r %s -> %s", act.NonTerminal, act.Production.String())
			case ActionShift:
				cell = "s" + stateRefs[act.State]
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nonTerms {
			cell := ""
			if to, ok := t.Goto(key, nt); ok {
				cell = stateRefs[to]
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
