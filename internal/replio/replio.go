// Package replio implements firparse's interactive grammar-debugging
// prompt. Grounded on the teacher's internal/input
// InteractiveCommandReader/DirectCommandReader pairing
// (github.com/chzyer/readline when attached to a real terminal, a plain
// buffered reader otherwise), generalized from TunaQuest's one-shot
// command prompt to a small `:command` dispatch loop plus a
// fall-through "bare line is a file path" convention.
package replio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Frontend is the subset of firrtl.Frontend the REPL needs; declared
// locally so this package doesn't import internal/firrtl (and so a
// fake can stand in for it in tests).
type Frontend interface {
	ParseString(src string) (Tree, error)
	GrammarString() string
	TableString() string
}

// Tree is the minimal shape of a parse result replio cares about: only
// enough to report a reduction count back to the user.
type Tree interface {
	CountNodes() int
}

// Reader is a source of REPL input lines; either a readline-backed
// interactive reader or a plain buffered one.
type Reader interface {
	ReadLine() (string, error)
	Close() error
}

type directReader struct {
	r *bufio.Reader
}

func (d *directReader) ReadLine() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (d *directReader) Close() error { return nil }

type interactiveReader struct {
	rl *readline.Instance
}

func (i *interactiveReader) ReadLine() (string, error) {
	line, err := i.rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (i *interactiveReader) Close() error { return i.rl.Close() }

// NewReader returns a readline-backed Reader when forceDirect is false,
// falling back to a plain buffered reader over in either when
// forceDirect is true or readline setup itself fails (e.g. stdin isn't
// a real terminal).
func NewReader(in io.Reader, forceDirect bool) Reader {
	if !forceDirect {
		rl, err := readline.NewEx(&readline.Config{Prompt: "firparse> "})
		if err == nil {
			return &interactiveReader{rl: rl}
		}
	}
	return &directReader{r: bufio.NewReader(in)}
}

// Run drives one REPL session: reads lines from r until EOF or :quit,
// dispatching ":grammar", ":table", ":quit", and treating anything else
// as a path to a source file to parse and report on.
func Run(r Reader, fe Frontend, readFile func(path string) (string, error), out io.Writer) error {
	for {
		line, err := r.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}

		switch line {
		case ":quit":
			return nil
		case ":grammar":
			fmt.Fprintln(out, fe.GrammarString())
			continue
		case ":table":
			fmt.Fprintln(out, fe.TableString())
			continue
		}

		src, err := readFile(line)
		if err != nil {
			fmt.Fprintf(out, "cannot read %s: %s\n", line, err)
			continue
		}

		tree, err := fe.ParseString(src)
		if err != nil {
			fmt.Fprintln(out, err.Error())
			continue
		}
		fmt.Fprintf(out, "parsed %s: %d reductions\n", line, tree.CountNodes())
	}
}
