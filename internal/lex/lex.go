package lex

import (
	"regexp"

	"github.com/dekarrin/firparse/internal/fperrors"
)

// Action describes what a matched pattern does: optionally emit a token
// of some class, optionally swap the lexer into a different state (for
// vocabularies that need lexical modes, e.g. inside a string literal).
type Action struct {
	discard   bool
	classID   string
	swapState string
}

// LexAs emits a token of the named class and stays in the current state.
func LexAs(classID string) Action { return Action{classID: classID} }

// SwapState emits no token and moves the lexer into forState.
func SwapState(forState string) Action { return Action{discard: true, swapState: forState} }

// LexAndSwap emits a token of the named class and moves into forState.
func LexAndSwap(classID, forState string) Action {
	return Action{classID: classID, swapState: forState}
}

// Discard matches and consumes the pattern but emits no token (for
// whitespace and comments outside the indentation filter's concern).
func Discard() Action { return Action{discard: true} }

// LexNewline marks a pattern (expected to match a single "\n" plus any
// run of horizontal whitespace immediately after it) as the line break
// the indentation-layering filter measures INDENT/DEDENT from. Exactly
// one such pattern should be registered per state that appears at
// top level of the indentation-sensitive grammar.
func LexNewline() Action { return Action{classID: scanNewline} }

type patAct struct {
	pat *regexp.Regexp
	act Action
}

// Lexer is a pattern-table raw scanner: one ordered list of regex
// patterns per named state. At each position, every pattern registered
// for the current state is tried; the longest match wins, and ties are
// broken by registration order (first registered wins). AddPattern
// returns an error if pat does not compile as a regular expression.
type Lexer struct {
	patterns   map[string][]patAct
	classes    map[string]TokenClass
	startState string
}

// NewLexer returns an empty Lexer that begins scanning in startState.
func NewLexer(startState string) *Lexer {
	return &Lexer{
		patterns:   map[string][]patAct{},
		classes:    map[string]TokenClass{},
		startState: startState,
	}
}

// AddClass registers a TokenClass so LexAs/LexAndSwap can reference it
// by ID.
func (lx *Lexer) AddClass(cl TokenClass) {
	lx.classes[cl.ID()] = cl
}

// AddPattern compiles pat and registers it (in order) against forState.
// pat is anchored to the current scan position implicitly: Lexer only
// ever tries a match at offset 0 of the remaining input, so callers
// don't need to write `^` themselves.
func (lx *Lexer) AddPattern(forState, pat string, act Action) error {
	compiled, err := regexp.Compile(pat)
	if err != nil {
		return err
	}
	lx.patterns[forState] = append(lx.patterns[forState], patAct{pat: compiled, act: act})
	return nil
}

// rawToken is an intermediate token produced by the raw scan, before the
// indentation-layering filter has had a chance to turn line-start
// whitespace into INDENT/DEDENT/NEWLINE.
type rawToken struct {
	class   TokenClass
	lexeme  string
	line    int
	linePos int
}

// scanNewline is the sentinel class the raw scanner's own NEWLINE pattern
// must be registered under so the layering filter can find it amid
// ordinary content tokens.
const scanNewline = "$_newline_raw"

// Lex runs the raw scan over src, then the indentation-layering filter,
// and returns the finished token slice.
func (lx *Lexer) Lex(src string) ([]Token, error) {
	raw, err := lx.scan(src)
	if err != nil {
		return nil, err
	}
	return layerIndentation(raw)
}

// scan performs the raw, state-driven regex scan. A synthetic leading
// "\n" is prepended to src so that the very first physical line is
// handled by the exact same NEWLINE-and-measure-indentation logic as
// every other line; the line counter starts at 0 so that consuming it
// brings the real first line to line 1.
func (lx *Lexer) scan(src string) ([]rawToken, error) {
	text := "\n" + src
	pos := 0
	line := 0
	col := 1
	state := lx.startState

	var out []rawToken

	for pos < len(text) {
		pats := lx.patterns[state]
		bestLen := -1
		var best patAct

		for _, pa := range pats {
			loc := pa.pat.FindStringIndex(text[pos:])
			if loc == nil || loc[0] != 0 {
				continue
			}
			if loc[1] > bestLen {
				bestLen = loc[1]
				best = pa
			}
		}

		if bestLen <= 0 {
			ctxEnd := pos + 10
			if ctxEnd > len(text) {
				ctxEnd = len(text)
			}
			return nil, &fperrors.LexError{Offset: pos - 1, Context: text[pos:ctxEnd]}
		}

		lexeme := text[pos : pos+bestLen]
		startLine, startCol := line, col

		for _, r := range lexeme {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}

		if !best.act.discard {
			cls := lx.classes[best.act.classID]
			if cls == nil {
				cls = MakeClass(best.act.classID)
			}
			tokLine, tokCol := startLine, startCol
			if best.act.classID == scanNewline {
				tokLine, tokCol = line, col
			}
			out = append(out, rawToken{class: cls, lexeme: lexeme, line: tokLine, linePos: tokCol})
		}

		if best.act.swapState != "" {
			state = best.act.swapState
		}
		pos += bestLen
	}

	return out, nil
}
