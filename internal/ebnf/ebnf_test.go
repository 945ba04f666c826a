package ebnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseMetaGrammar(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		expectErr bool
		check     func(*assert.Assertions, []Rule)
	}{
		{
			name: "single simple rule",
			src:  `start = "a" ;`,
			check: func(assert *assert.Assertions, rules []Rule) {
				assert.Len(rules, 1)
				assert.Equal("start", rules[0].Name)
				assert.Equal(Term{Name: "a"}, rules[0].Expr)
			},
		},
		{
			name: "sequence",
			src:  `start = "a" , "b" , thing ;`,
			check: func(assert *assert.Assertions, rules []Rule) {
				want := Seq{Items: []Expr{Term{Name: "a"}, Term{Name: "b"}, Nonterm{Name: "thing"}}}
				assert.Equal(want, rules[0].Expr)
			},
		},
		{
			name: "alternation binds looser than sequence",
			src:  `start = "a" , "b" | "c" ;`,
			check: func(assert *assert.Assertions, rules []Rule) {
				want := Alt{Items: []Expr{
					Seq{Items: []Expr{Term{Name: "a"}, Term{Name: "b"}}},
					Term{Name: "c"},
				}}
				assert.Equal(want, rules[0].Expr)
			},
		},
		{
			name: "star opt group",
			src:  `start = { "a" } , [ "b" ] , ( "c" | "d" ) ;`,
			check: func(assert *assert.Assertions, rules []Rule) {
				want := Seq{Items: []Expr{
					Star{Inner: Term{Name: "a"}},
					Opt{Inner: Term{Name: "b"}},
					Group{Inner: Alt{Items: []Expr{Term{Name: "c"}, Term{Name: "d"}}}},
				}}
				assert.Equal(want, rules[0].Expr)
			},
		},
		{
			name: "multiple rules preserve declaration order",
			src: `
				circuit = "circuit" , ident ;
				ident = "IDENT" ;
			`,
			check: func(assert *assert.Assertions, rules []Rule) {
				assert.Len(rules, 2)
				assert.Equal("circuit", rules[0].Name)
				assert.Equal("ident", rules[1].Name)
			},
		},
		{
			name:      "missing semicolon is a structural error",
			src:       `start = "a"`,
			expectErr: true,
		},
		{
			name:      "unterminated string is a lexical error",
			src:       `start = "a ;`,
			expectErr: true,
		},
		{
			name:      "stray symbol is a lexical error",
			src:       `start = "a" , # ;`,
			expectErr: true,
		},
		{
			name:      "empty source has no rules",
			src:       ``,
			expectErr: false,
			check: func(assert *assert.Assertions, rules []Rule) {
				assert.Empty(rules)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			rules, err := ParseMetaGrammar(tc.src)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			if tc.check != nil {
				tc.check(assert, rules)
			}
		})
	}
}

func Test_Expr_String_roundtrip(t *testing.T) {
	testCases := []struct {
		name string
		expr Expr
		want string
	}{
		{"term", Term{Name: "a"}, `"a"`},
		{"nonterm", Nonterm{Name: "thing"}, "thing"},
		{"seq", Seq{Items: []Expr{Term{Name: "a"}, Term{Name: "b"}}}, `"a" , "b"`},
		{"alt", Alt{Items: []Expr{Term{Name: "a"}, Term{Name: "b"}}}, `"a" | "b"`},
		{"star", Star{Inner: Term{Name: "a"}}, `{ "a" }`},
		{"opt", Opt{Inner: Term{Name: "a"}}, `[ "a" ]`},
		{"group", Group{Inner: Term{Name: "a"}}, `( "a" )`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.expr.String())
		})
	}
}

func Test_Expr_Simple(t *testing.T) {
	assert.True(t, Term{Name: "a"}.Simple())
	assert.True(t, Nonterm{Name: "a"}.Simple())
	assert.False(t, Seq{Items: []Expr{Term{Name: "a"}}}.Simple())
	assert.False(t, Star{Inner: Term{Name: "a"}}.Simple())
}
