// Package firrtl wires the generic grammar pipeline (internal/ebnf,
// internal/grammar, internal/automaton, internal/parsetable,
// internal/lex, internal/machine) to one concrete vocabulary: a
// FIRRTL-like circuit description language. Nothing in the packages it
// depends on knows the word "circuit" or "UInt"; this package is where
// that knowledge lives, mirroring how the teacher's tunascript package
// supplies tunaQL's concrete grammar and lexer patterns to the generic
// ictiobus machinery.
package firrtl

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dekarrin/firparse/internal/ebnf"
	"github.com/dekarrin/firparse/internal/fperrors"
	"github.com/dekarrin/firparse/internal/grammar"
	"github.com/dekarrin/firparse/internal/lex"
	"github.com/dekarrin/firparse/internal/machine"
	"github.com/dekarrin/firparse/internal/parsetable"
)

//go:embed grammar.fir
var defaultGrammarSource string

// DefaultGrammarSource is the embedded EBNF meta-grammar text describing
// the FIRRTL-like language this package parses. FromSource lets
// a caller override it, which is what cmd/firparse's `-g/--grammar` flag
// exercises.
func DefaultGrammarSource() string {
	return defaultGrammarSource
}

// Frontend is a complete source-text-to-parse-tree front end: it owns a
// built lexer and a built parse table, and runs the shift-reduce machine
// against whatever it lexes. Grounded on the teacher's
// ictiobus.Frontend[E], trimmed to this module's scope: since AST
// construction and syntax-directed translation are out of scope, Parse
// returns the raw machine.Tree rather than evaluating attached
// semantic actions.
type Frontend struct {
	table *parsetable.Table
	lexer *lex.Lexer
	trace machine.TraceListener
}

// New builds a Frontend from the embedded default grammar.
func New() (*Frontend, error) {
	return FromSource(defaultGrammarSource)
}

// FromSource builds a Frontend from an arbitrary EBNF meta-grammar
// source string, exercising the same reader/desugar/table-build path
// the default grammar goes through.
func FromSource(src string) (*Frontend, error) {
	rules, err := ebnf.ParseMetaGrammar(src)
	if err != nil {
		var unrec *ebnf.UnrecognizedTokenError
		if errors.As(err, &unrec) {
			return nil, &fperrors.MetaGrammarError{Start: unrec.Start, End: unrec.End, Reason: unrec.Error()}
		}
		return nil, &fperrors.MetaGrammarError{Reason: err.Error()}
	}

	g, err := grammar.Desugar(rules)
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		for _, r := range g.Rules() {
			for _, p := range r.Productions {
				for _, sym := range p {
					if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
						return nil, &fperrors.DesugarError{Symbol: sym, Rule: r.NonTerminal}
					}
				}
			}
		}
		return nil, err
	}

	table := parsetable.Build(g)

	return &Frontend{table: table, lexer: newLexer()}, nil
}

// SetTrace installs a trace listener forwarded to the underlying
// machine on every Parse/ParseString call.
func (f *Frontend) SetTrace(fn machine.TraceListener) {
	f.trace = fn
}

// Table exposes the built ACTION/GOTO table, for callers like the REPL
// `:table` command that want to print it directly.
func (f *Frontend) Table() *parsetable.Table {
	return f.table
}

// Grammar exposes the augmented grammar the table was built from, for
// the REPL `:grammar` command.
func (f *Frontend) Grammar() *grammar.Grammar {
	return f.table.Grammar
}

// ParseString lexes and parses s in one call.
func (f *Frontend) ParseString(s string) (*machine.Tree, error) {
	return f.Parse(strings.NewReader(s))
}

// Parse reads all of r, lexes it with the FIRRTL-like vocabulary, and
// drives the shift-reduce machine to completion.
func (f *Frontend) Parse(r io.Reader) (*machine.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	toks, err := f.lexer.Lex(string(src))
	if err != nil {
		return nil, err
	}

	m := machine.New(f.table)
	if f.trace != nil {
		m.SetTrace(f.trace)
	}

	tree, err := m.Run(lex.NewTokenStream(toks))
	if err != nil {
		if conflictErr := f.table.AsError(); conflictErr != nil {
			return nil, fmt.Errorf("%w (table has unresolved conflicts: %v)", err, conflictErr)
		}
		return nil, err
	}
	return tree, nil
}

// reservedWords is every literal keyword the grammar quotes; registered
// ahead of the identifier pattern so that equal-length ties (a keyword
// always matches itself exactly) resolve in the keyword's favor. Each
// is wrapped with a trailing \b so a keyword never matches as a prefix
// of a longer identifier (e.g. "moduleFoo" must lex as one "id", not
// "module" + "Foo").
var reservedWords = []string{
	"circuit", "module", "extmodule", "intmodule",
	"input", "output",
	"UInt", "SInt", "Analog", "Fixed", "Clock", "AsyncReset", "Reset",
	"skip", "wire", "reg", "node", "connect", "printf", "stop",
	"instance", "of", "when", "else",
	"mux", "validif", "asUInt", "asSInt", "asClock", "asAsyncReset",
	"mem", "data-type", "depth", "read-latency", "write-latency",
	"read-under-write", "reader", "writer", "readwriter",
}

// punctuation is every single-character literal the grammar quotes,
// each its own pattern/class pair since a single regex can't report
// which alternative it matched.
var punctuation = []string{":", ",", "<", ">", "=", ".", "(", ")", "[", "]", "{", "}"}

func newLexer() *lex.Lexer {
	lx := lex.NewLexer("default")

	_ = lx.AddPattern("default", `\n[ \t]*`, lex.LexNewline())
	_ = lx.AddPattern("default", `[ \t]+`, lex.Discard())
	_ = lx.AddPattern("default", `@\[[^\]]*\]`, lex.LexAs("INFO"))

	// Version header: "FIRRTL version D.D.D" lexes as a single token,
	// ahead of the plain identifier pattern so its longer match wins.
	_ = lx.AddPattern("default", `FIRRTL[ \t]+version[ \t]+[0-9]+\.[0-9]+\.[0-9]+`, lex.LexAs("VERSION"))

	// String literal: a quoted run of characters, where a backslash
	// escapes the character immediately following it (\\, \", \n, \t
	// per the documented escapes) rather than terminating the string.
	_ = lx.AddPattern("default", `"(\\.|[^"\\])*"`, lex.LexAs("string"))

	for _, word := range reservedWords {
		_ = lx.AddPattern("default", regexp.QuoteMeta(word)+`\b`, lex.LexAs(word))
	}

	_ = lx.AddPattern("default", `=>`, lex.LexAs("=>"))
	_ = lx.AddPattern("default", `<=`, lex.LexAs("<="))
	for _, p := range punctuation {
		_ = lx.AddPattern("default", regexp.QuoteMeta(p), lex.LexAs(p))
	}
	_ = lx.AddPattern("default", `[a-zA-Z_][a-zA-Z0-9_]*`, lex.LexAs("id"))

	// Integer literal: decimal, or hex with a 0h prefix, with an
	// optional leading - for either form.
	_ = lx.AddPattern("default", `-?(0h[0-9a-fA-F]+|[0-9]+)`, lex.LexAs("int"))

	return lx
}
