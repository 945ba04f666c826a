package lex

import "github.com/dekarrin/firparse/internal/fperrors"

// layerIndentation turns the raw NEWLINE markers (class scanNewline,
// lexeme "\n" followed by the new line's leading horizontal whitespace)
// into NEWLINE/INDENT/DEDENT tokens, Python-style:
//
//   - a tab anywhere in the measured leading whitespace is always an
//     IndentError: indentation must be spaces only, so that indent
//     width is never ambiguous;
//   - a blank or whitespace-only line (a NEWLINE marker immediately
//     followed by another NEWLINE marker, or by EOF) contributes no
//     NEWLINE/INDENT/DEDENT token and does not affect the indent stack;
//   - the last content line is always closed by one NEWLINE, whether or
//     not the source ends with a line break;
//   - the indent stack starts at [0]; seeing column > top pushes one
//     INDENT, column < top pops DEDENTs until the stack top matches
//     (an exact match is required — dedenting to a column that was
//     never pushed is an IndentError);
//   - end of input flushes every remaining open level with a DEDENT,
//     so indent and dedent tokens are always balanced.
func layerIndentation(raw []rawToken) ([]Token, error) {
	var out []Token
	indents := []int{0}

	for i, t := range raw {
		if t.class.ID() != scanNewline {
			out = append(out, token{class: t.class, lexeme: t.lexeme, line: t.line, linePos: t.linePos, endLine: t.line})
			continue
		}

		ws := t.lexeme[1:]
		for _, r := range ws {
			if r == '\t' {
				return nil, &fperrors.IndentError{Line: t.line, Indent: -1}
			}
		}
		col := len(ws)

		blank := i+1 >= len(raw) || raw[i+1].class.ID() == scanNewline
		if blank {
			continue
		}

		if i == 0 {
			// the synthetic leading newline establishes the file's
			// starting column; a FIRRTL-like source must start flush
			// left.
			if col != 0 {
				return nil, &fperrors.IndentError{Line: t.line, Indent: col}
			}
			continue
		}

		out = append(out, token{class: ClassNewline, lexeme: "\n", line: t.line, linePos: t.linePos, endLine: t.line})

		top := indents[len(indents)-1]
		switch {
		case col > top:
			indents = append(indents, col)
			out = append(out, token{class: ClassIndent, lexeme: "", line: t.line, linePos: t.linePos, endLine: t.line})
		case col < top:
			for len(indents) > 1 && col < indents[len(indents)-1] {
				indents = indents[:len(indents)-1]
				out = append(out, token{class: ClassDedent, lexeme: "", line: t.line, linePos: t.linePos, endLine: t.line})
			}
			if indents[len(indents)-1] != col {
				return nil, &fperrors.IndentError{Line: t.line, Indent: col}
			}
		}
	}

	lastLine := 1
	if len(raw) > 0 {
		lastLine = raw[len(raw)-1].line
	}
	if len(out) > 0 && out[len(out)-1].Class().ID() != ClassNewline.ID() {
		out = append(out, token{class: ClassNewline, lexeme: "\n", line: lastLine, linePos: 1, endLine: lastLine})
	}
	for len(indents) > 1 {
		indents = indents[:len(indents)-1]
		out = append(out, token{class: ClassDedent, lexeme: "", line: lastLine, linePos: 1, endLine: lastLine})
	}
	out = append(out, token{class: ClassEOF, lexeme: "", line: lastLine, linePos: 1, endLine: lastLine})

	return out, nil
}
