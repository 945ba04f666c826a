package replio

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTree struct{ n int }

func (t fakeTree) CountNodes() int { return t.n }

type fakeFrontend struct {
	grammar string
	table   string
	srcs    map[string]string
}

func (f fakeFrontend) ParseString(src string) (Tree, error) {
	if src == "bad" {
		return nil, fmt.Errorf("boom")
	}
	return fakeTree{n: len(strings.Fields(src))}, nil
}

func (f fakeFrontend) GrammarString() string { return f.grammar }
func (f fakeFrontend) TableString() string   { return f.table }

type lineReader struct {
	lines []string
	i     int
}

func (l *lineReader) ReadLine() (string, error) {
	if l.i >= len(l.lines) {
		return "", io.EOF
	}
	line := l.lines[l.i]
	l.i++
	return line, nil
}

func (l *lineReader) Close() error { return nil }

func Test_Run_dispatchesGrammarAndTableCommands(t *testing.T) {
	assert := assert.New(t)

	fe := fakeFrontend{grammar: "G -> a", table: "S0 | ..."}
	r := &lineReader{lines: []string{":grammar", ":table", ":quit"}}
	var out bytes.Buffer

	err := Run(r, fe, noReadFile, &out)
	if !assert.NoError(err) {
		return
	}
	assert.Contains(out.String(), "G -> a")
	assert.Contains(out.String(), "S0 | ...")
}

func Test_Run_parsesBareLineAsFilePath(t *testing.T) {
	assert := assert.New(t)

	fe := fakeFrontend{}
	r := &lineReader{lines: []string{"circuit.fir", ":quit"}}
	var out bytes.Buffer

	readFile := func(path string) (string, error) {
		assert.Equal("circuit.fir", path)
		return "a b c", nil
	}

	err := Run(r, fe, readFile, &out)
	if !assert.NoError(err) {
		return
	}
	assert.Contains(out.String(), "3 reductions")
}

func Test_Run_reportsParseErrorAndContinues(t *testing.T) {
	assert := assert.New(t)

	fe := fakeFrontend{}
	r := &lineReader{lines: []string{"broken.fir", ":quit"}}
	var out bytes.Buffer

	readFile := func(path string) (string, error) { return "bad", nil }

	err := Run(r, fe, readFile, &out)
	if !assert.NoError(err) {
		return
	}
	assert.Contains(out.String(), "boom")
}

func Test_Run_endsCleanlyAtEOFWithoutQuit(t *testing.T) {
	assert := assert.New(t)

	fe := fakeFrontend{}
	r := &lineReader{lines: []string{}}
	var out bytes.Buffer

	err := Run(r, fe, noReadFile, &out)
	assert.NoError(err)
}

func noReadFile(path string) (string, error) { return "", fmt.Errorf("no such file") }
