/*
Firparse parses a FIRRTL-like circuit description file against a
bootstrapped EBNF-described grammar and reports either success or the
offending token.

Usage:

	firparse [flags] FILE

The flags are:

	-v, --version
		Print the current version and exit.

	-g, --grammar FILE
		Override the embedded meta-grammar with one read from FILE.

	-t, --trace
		Trace every shift/reduce/goto step to stderr. Filterable by the
		FIRPARSE_TRACE environment variable; an empty value disables
		tracing regardless of -t.

	-c, --config FILE
		Load a TOML configuration file (see internal/config).

	-r, --repl
		Start an interactive prompt instead of parsing one file.

Exit codes: 0 success, 1 lex/indent error, 2 meta-grammar error, 3
grammar-conflict error, 4 parse error, 5 usage error.
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dekarrin/firparse/internal/config"
	"github.com/dekarrin/firparse/internal/diag"
	"github.com/dekarrin/firparse/internal/firrtl"
	"github.com/dekarrin/firparse/internal/fperrors"
	"github.com/dekarrin/firparse/internal/machine"
	"github.com/dekarrin/firparse/internal/replio"
	"github.com/dekarrin/firparse/internal/version"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitLexError
	ExitMetaGrammarError
	ExitGrammarConflictError
	ExitParseError
	ExitUsageError
)

var (
	returnCode    int     = ExitSuccess
	flagVersion   *bool   = pflag.BoolP("version", "v", false, "Print the current version and exit")
	flagGrammar   *string = pflag.StringP("grammar", "g", "", "Override the embedded meta-grammar with one read from FILE")
	flagTrace     *bool   = pflag.BoolP("trace", "t", false, "Trace every shift/reduce/goto step to stderr")
	flagConfig    *string = pflag.StringP("config", "c", "", "Load a TOML configuration file")
	flagRepl      *bool   = pflag.BoolP("repl", "r", false, "Start an interactive prompt instead of parsing one file")
	flagDirect    *bool   = pflag.BoolP("direct", "d", false, "Force plain stdin reading in --repl instead of GNU readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("firparse %s\n", version.Current)
		return
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitUsageError
		return
	}

	grammarSrc := firrtl.DefaultGrammarSource()
	if *flagGrammar != "" {
		b, err := os.ReadFile(*flagGrammar)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitUsageError
			return
		}
		grammarSrc = string(b)
	}

	fe, err := firrtl.FromSource(grammarSrc)
	if err != nil {
		returnCode = reportAndClassify(err)
		return
	}

	traceFilter := os.Getenv("FIRPARSE_TRACE")
	if traceFilter == "" {
		traceFilter = cfg.TraceFilter
	}
	sess := diag.NewSession(os.Stderr)
	if *flagTrace && traceFilter != "" {
		sess.AnnounceTrace()
		fe.SetTrace(machine.TraceListener(sess.Trace))
	}

	for _, c := range fe.Table().Conflicts() {
		sess.Conflict(c)
	}

	if *flagRepl {
		runRepl(fe, *flagDirect)
		return
	}

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: firparse [flags] FILE")
		returnCode = ExitUsageError
		return
	}

	src, err := os.ReadFile(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitUsageError
		return
	}

	_, err = fe.ParseString(string(src))
	if err != nil {
		returnCode = reportAndClassify(err)
		return
	}
}

// reportAndClassify prints err with a fresh diag session (main may reach
// here before its own *diag.Session is set up) and returns the matching
// exit code.
func reportAndClassify(err error) int {
	diag.NewSession(os.Stderr).ErrorBanner(err)

	var lexErr *fperrors.LexError
	var indentErr *fperrors.IndentError
	var metaErr *fperrors.MetaGrammarError
	var conflictErr *fperrors.GrammarConflict
	var parseErr *fperrors.ParseError

	switch {
	case as(err, &lexErr), as(err, &indentErr):
		return ExitLexError
	case as(err, &metaErr):
		return ExitMetaGrammarError
	case as(err, &conflictErr):
		return ExitGrammarConflictError
	case as(err, &parseErr):
		return ExitParseError
	default:
		return ExitUsageError
	}
}

func as[T error](err error, target *T) bool {
	return errors.As(err, target)
}

func runRepl(fe *firrtl.Frontend, forceDirect bool) {
	r := replio.NewReader(os.Stdin, forceDirect)
	defer r.Close()

	readFile := func(path string) (string, error) {
		b, err := os.ReadFile(path)
		return string(b), err
	}

	if err := replio.Run(r, frontendAdapter{fe}, readFile, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitUsageError
	}
}

// frontendAdapter satisfies replio.Frontend: replio can't import
// internal/firrtl directly (it would make *firrtl.Frontend's return
// types need to be the replio interface types themselves), so this
// thin wrapper bridges the concrete *machine.Tree return type to the
// replio.Tree interface and renders the grammar and table as the strings
// replio asks for.
type frontendAdapter struct {
	fe *firrtl.Frontend
}

func (a frontendAdapter) ParseString(src string) (replio.Tree, error) {
	tree, err := a.fe.ParseString(src)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func (a frontendAdapter) GrammarString() string { return a.fe.Grammar().String() }
func (a frontendAdapter) TableString() string   { return a.fe.Table().String() }
