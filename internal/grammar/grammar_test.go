package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		build     func() *Grammar
		expectErr bool
	}{
		{
			name:      "empty grammar",
			build:     func() *Grammar { return NewGrammar() },
			expectErr: true,
		},
		{
			name: "undefined symbol",
			build: func() *Grammar {
				g := NewGrammar()
				g.AddRule("S", Production{"missing"})
				return g
			},
			expectErr: true,
		},
		{
			name: "well formed",
			build: func() *Grammar {
				g := NewGrammar()
				g.AddTerm("a")
				g.AddRule("S", Production{"a"})
				return g
			},
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			err := tc.build().Validate()
			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Grammar_Augmented(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	g.AddTerm("a")
	g.AddRule("S", Production{"a"})

	aug := g.Augmented()

	assert.Equal(augmentedStart, aug.StartSymbol())
	r, ok := aug.Rule(augmentedStart)
	assert.True(ok)
	assert.Equal([]Production{{"S"}}, r.Productions)

	sRule, ok := aug.Rule("S")
	assert.True(ok)
	assert.Equal([]Production{{"a"}}, sRule.Productions)
}

func Test_Grammar_Nullable_FIRST_FOLLOW(t *testing.T) {
	assert := assert.New(t)

	// classic textbook grammar:
	//   E  -> T X
	//   X  -> "+" T X | ε
	//   T  -> F Y
	//   Y  -> "*" F Y | ε
	//   F  -> "(" E ")" | "id"
	g := NewGrammar()
	for _, tok := range []string{"+", "*", "(", ")", "id"} {
		g.AddTerm(tok)
	}
	g.AddRule("E", Production{"T", "X"})
	g.AddRule("X", Production{"+", "T", "X"})
	g.AddRule("X", Epsilon)
	g.AddRule("T", Production{"F", "Y"})
	g.AddRule("Y", Production{"*", "F", "Y"})
	g.AddRule("Y", Epsilon)
	g.AddRule("F", Production{"(", "E", ")"})
	g.AddRule("F", Production{"id"})

	assert.True(g.Nullable("X"))
	assert.True(g.Nullable("Y"))
	assert.False(g.Nullable("E"))
	assert.False(g.Nullable("F"))

	assert.ElementsMatch([]string{"(", "id"}, g.FIRST("E").Elements())
	assert.ElementsMatch([]string{"(", "id"}, g.FIRST("F").Elements())
	assert.ElementsMatch([]string{"+"}, g.FIRST("X").Elements())

	assert.ElementsMatch([]string{"$", ")"}, g.FOLLOW("E").Elements())
	assert.ElementsMatch([]string{"$", ")"}, g.FOLLOW("X").Elements())
	assert.ElementsMatch([]string{"+", "$", ")"}, g.FOLLOW("T").Elements())
	assert.ElementsMatch([]string{"+", "$", ")"}, g.FOLLOW("Y").Elements())
	assert.ElementsMatch([]string{"*", "+", "$", ")"}, g.FOLLOW("F").Elements())
}

func Test_Grammar_LR0Items(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	g.AddTerm("a")
	g.AddRule("S", Production{"a", "S"})
	g.AddRule("S", Epsilon)

	items := g.LR0Items()
	assert.Len(items, 2)
	assert.Equal("S", items[0].NonTerminal)
	assert.Equal([]string{"a", "S"}, items[0].Right)
	assert.False(items[0].Complete())
	assert.True(items[1].Complete())

	next := items[0].Advance()
	assert.Equal([]string{"a"}, next.Left)
	assert.Equal([]string{"S"}, next.Right)
	sym, ok := next.NextSymbol()
	assert.True(ok)
	assert.Equal("S", sym)
}
