package diag

import (
	"bytes"
	"testing"

	"github.com/dekarrin/firparse/internal/fperrors"
	"github.com/stretchr/testify/assert"
)

func Test_IsTerminal_falseForBuffer(t *testing.T) {
	assert := assert.New(t)
	assert.False(IsTerminal(&bytes.Buffer{}))
}

func Test_Session_ErrorBanner_plainFallback(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	s := NewSession(&buf)

	s.ErrorBanner(&fperrors.ParseError{
		Token: fperrors.OffendingToken{Lexeme: "x", Line: 2, EndLine: 2},
	})

	out := buf.String()
	assert.Contains(out, "parse error")
	assert.Contains(out, `Line 2`)
}

func Test_Session_Conflict_plainFallback(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	s := NewSession(&buf)

	s.Conflict(fperrors.Conflict{
		State:      "3",
		Lookahead:  "+",
		IsShiftRed: true,
		ShiftState: "7",
		Reduces:    []string{"E -> E + E"},
	})

	assert.Contains(buf.String(), "shift/reduce conflict")
}

func Test_Session_Trace_plainFallback(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	s := NewSession(&buf)

	s.Trace("state: 0")
	assert.Contains(buf.String(), "state: 0")
}

func Test_Session_AnnounceTrace_includesSessionID(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	s := NewSession(&buf)
	s.AnnounceTrace()

	assert.Contains(buf.String(), s.id.String())
}
