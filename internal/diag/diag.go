// Package diag renders firparse's user-facing diagnostics: grammar
// conflicts, fperrors banners, and (under -t/--trace) machine step
// traces. Grounded on github.com/pterm/pterm, pulled in from the
// npillmayer/gorgo sibling example's own diagnostic console output
// (pterm.Info.Println/pterm.Error.Println against its package-level
// default writer); a plain fallback path is used when the destination
// is not a terminal, checked the same crude way the teacher's
// engine.New decides whether to use readline (a direct check of the
// stream in play), generalized here to an actual isatty probe via
// github.com/mattn/go-isatty, the library pterm itself already pulls in
// for its own TTY detection.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/firparse/internal/fperrors"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// IsTerminal reports whether w is a terminal pterm's styled output is
// worth sending to; non-terminal destinations (redirected to a file or
// piped to another program) get the plain fallback instead.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// Session correlates every diagnostic line printed during one firparse
// invocation's trace, so concurrent `firparse -t` runs piping into the
// same log file can be told apart. It is not a durable identifier:
// fresh per process, never persisted.
type Session struct {
	id  uuid.UUID
	w   io.Writer
	tty bool
}

// NewSession starts a diagnostics session writing to w. pterm's
// package-level printers are pointed at w for the lifetime of the
// session; firparse only ever has one Session live at a time, so this
// global redirection is safe.
func NewSession(w io.Writer) *Session {
	pterm.SetDefaultOutput(w)
	pterm.EnableDebugMessages()
	return &Session{id: uuid.New(), w: w, tty: IsTerminal(w)}
}

// AnnounceTrace prints the session's one-time trace-session banner.
func (s *Session) AnnounceTrace() {
	if s.tty {
		pterm.Info.Println("trace session " + s.id.String())
		return
	}
	fmt.Fprintf(s.w, "trace session %s\n", s.id)
}

// Trace prints one step-by-step line from the LR machine's trace
// listener.
func (s *Session) Trace(line string) {
	if s.tty {
		pterm.Debug.Println(line)
		return
	}
	fmt.Fprintln(s.w, line)
}

// Conflict prints one colored one-line conflict report, shift/reduce as
// a warning and reduce/reduce as an error.
func (s *Session) Conflict(c fperrors.Conflict) {
	if !s.tty {
		fmt.Fprintln(s.w, c.String())
		return
	}
	if c.IsShiftRed {
		pterm.Warning.Println(c.String())
	} else {
		pterm.Error.Println(c.String())
	}
}

// ErrorBanner prints a colored banner naming the fperrors kind of err
// and its message; it falls back to a plain "kind: message" line when
// not writing to a terminal.
func (s *Session) ErrorBanner(err error) {
	kind, msg := classify(err)
	if !s.tty {
		fmt.Fprintf(s.w, "%s: %s\n", kind, msg)
		return
	}
	pterm.Error.Printfln("%s: %s", kind, msg)
}

// classify names the fperrors kind of err for ErrorBanner, falling back
// to "error" for anything else. A table's bundled GrammarConflict gets
// its own "grammar conflict" kind, though callers normally report
// conflicts via Conflict per entry instead of as a single banner.
func classify(err error) (kind, msg string) {
	switch err.(type) {
	case *fperrors.LexError:
		return "lex error", err.Error()
	case *fperrors.IndentError:
		return "indentation error", err.Error()
	case *fperrors.MetaGrammarError:
		return "meta-grammar error", err.Error()
	case *fperrors.DesugarError:
		return "desugar error", err.Error()
	case *fperrors.GrammarConflict:
		return "grammar conflict", err.Error()
	case *fperrors.ParseError:
		return "parse error", err.Error()
	default:
		return "error", err.Error()
	}
}
