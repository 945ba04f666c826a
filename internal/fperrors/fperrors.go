// Package fperrors defines the error kinds produced by the grammar
// pipeline, ordered from lexical to semantic as in the error-handling
// design: LexError, IndentError, MetaGrammarError, DesugarError,
// GrammarConflict, and ParseError. Each is a distinct type so callers
// can use errors.As to recover the structured fields (offsets, state,
// offending token) instead of parsing Error() strings.
package fperrors

import (
	"fmt"
	"strings"
)

// LexError reports that the raw lexer could not match any pattern at a
// given byte offset in the source.
type LexError struct {
	Offset  int
	Context string // up to 10 bytes of source starting at Offset
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at byte %d: cannot match %q", e.Offset, e.Context)
}

// IndentError reports malformed indentation: a tab in a line's leading
// whitespace (Indent is -1), a first line that does not start at column
// zero, or a dedent to a column that matches no open indent level.
type IndentError struct {
	Line   int
	Indent int
}

func (e *IndentError) Error() string {
	if e.Indent < 0 {
		return fmt.Sprintf("line %d: malformed indentation (tab in leading whitespace)", e.Line)
	}
	return fmt.Sprintf("line %d: malformed indentation (column %d matches no open indent level)", e.Line, e.Indent)
}

// MetaGrammarError reports that the meta-grammar reader rejected the
// EBNF source text, carrying the byte offsets of the unrecognized span.
type MetaGrammarError struct {
	Start, End int
	Reason     string
}

func (e *MetaGrammarError) Error() string {
	return fmt.Sprintf("meta-grammar error at bytes %d-%d: %s", e.Start, e.End, e.Reason)
}

// DesugarError reports that a Term/Nonterm reference in a rule could
// not be resolved while desugaring. Per the design this should be
// impossible for a meta-grammar that parsed successfully; it is treated
// as a hard internal-consistency bug rather than user error.
type DesugarError struct {
	Symbol string
	Rule   string
}

func (e *DesugarError) Error() string {
	return fmt.Sprintf("desugar error: symbol %q referenced in rule %q does not resolve (malformed meta-grammar slipped past the reader)", e.Symbol, e.Rule)
}

// Conflict is a single multi-entry ACTION cell found while building the
// parse table: either a shift/reduce or reduce/reduce conflict.
type Conflict struct {
	State      string
	Lookahead  string
	ShiftState string // set only for shift/reduce conflicts
	Reduces    []string // "LHS -> RHS" forms of every competing reduction
	IsShiftRed bool
}

func (c Conflict) String() string {
	if c.IsShiftRed {
		return fmt.Sprintf("shift/reduce conflict in state %s on %q (shift to %s, or reduce %s)",
			c.State, c.Lookahead, c.ShiftState, strings.Join(c.Reduces, " | "))
	}
	return fmt.Sprintf("reduce/reduce conflict in state %s on %q (reduce %s)",
		c.State, c.Lookahead, strings.Join(c.Reduces, " or "))
}

// GrammarConflict reports that the parse table has one or more ACTION
// cells with more than one entry. Per the design, a GrammarConflict is
// collected and reported but does not by itself abort table
// construction; the table is still usable with the documented
// shift-preferred / first-reduce-wins tie-break.
type GrammarConflict struct {
	Conflicts []Conflict
}

func (e *GrammarConflict) Error() string {
	if len(e.Conflicts) == 0 {
		return "grammar conflict (no detail recorded)"
	}
	lines := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		lines[i] = c.String()
	}
	return fmt.Sprintf("%d grammar conflict(s):\n  %s", len(e.Conflicts), strings.Join(lines, "\n  "))
}

// OffendingToken is the minimal view of a lexed token ParseError needs;
// it mirrors the subset of lex.Token that error reporting cares about
// without creating an import cycle between fperrors and lex.
type OffendingToken struct {
	Lexeme string
	Line   int
	EndLine int
}

// ParseError reports that ACTION[state, lookahead] was empty at
// runtime: the input has a syntax error. It carries enough state to
// reproduce the CLI-facing message format from the external-interfaces
// section: `Line <n> (until <m>) token = "<text>"`.
type ParseError struct {
	State    string
	Token    OffendingToken
	Expected []string // human-readable names of the legal next terminals
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Line %d (until %d) token = %q", e.Token.Line, e.Token.EndLine, e.Token.Lexeme)
}

// ExpectedMessage renders a verbose "expected X, Y, or Z" clause from
// Expected, for use in diagnostics that want more than the terse
// CLI-facing Error() string.
func (e *ParseError) ExpectedMessage() string {
	if len(e.Expected) == 0 {
		return "expected nothing further (unexpected trailing input)"
	}
	return "expected " + joinExpected(e.Expected)
}

func joinExpected(items []string) string {
	switch len(items) {
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		out := make([]string, len(items))
		copy(out, items)
		out[len(out)-1] = "or " + out[len(out)-1]
		return strings.Join(out, ", ")
	}
}
