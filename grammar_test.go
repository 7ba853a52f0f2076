package pegmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarRuleConversion(t *testing.T) {
	g := NewGrammar(nil)

	assert.IsType(t, &CharMatcher{}, g.Sequence('a'))
	assert.IsType(t, &CharMatcher{}, g.Sequence("a"))
	assert.IsType(t, &StringMatcher{}, g.Sequence("ab"))
	assert.IsType(t, &ActionMatcher{}, g.Sequence(Push(1)))
	assert.IsType(t, &ActionMatcher{}, g.Sequence(func(ctx *MatcherContext) (bool, error) {
		return true, nil
	}))
	assert.IsType(t, &IgnoreCaseCharMatcher{}, g.IgnoreCase("a"))
	assert.IsType(t, &SequenceMatcher{}, g.Sequence('a', 'b'))
	assert.IsType(t, &FirstOfMatcher{}, g.FirstOf('a', 'b'))
	require.NoError(t, g.Err())
}

func TestGrammarErrors(t *testing.T) {
	t.Run("first error wins", func(t *testing.T) {
		g := NewGrammar(nil)
		placeholder := g.CharRange('z', 'a')
		g.String("")
		assert.IsType(t, &NothingMatcher{}, placeholder)

		var gerr *GrammarError
		require.ErrorAs(t, g.Err(), &gerr)
		assert.Equal(t, "z..a", gerr.Rule)

		_, err := g.Build(g.Sequence('a', placeholder))
		assert.Equal(t, g.Err(), err)
	})

	t.Run("unsupported rule types", func(t *testing.T) {
		g := NewGrammar(nil)
		g.Sequence('a', 42)
		assert.ErrorIs(t, g.Err(), ErrInvalidRule)
		assert.Contains(t, g.Err().Error(), "can't use a int as a rule")
	})

	t.Run("nil rules", func(t *testing.T) {
		g := NewGrammar(nil)
		g.FirstOf('a', nil)
		assert.ErrorIs(t, g.Err(), ErrInvalidRule)
	})

	t.Run("empty combinators", func(t *testing.T) {
		g := NewGrammar(nil)
		g.Optional()
		assert.ErrorIs(t, g.Err(), ErrInvalidRule)
	})
}

func TestGrammarRecursion(t *testing.T) {
	g := NewGrammar(nil)

	// parens <- '(' parens* ')'
	g.Define("parens", '(', g.ZeroOrMore(g.Ref("parens")), ')')
	root, err := g.Build(g.Sequence(g.Ref("parens"), g.EOI()))
	require.NoError(t, err)

	assert.True(t, mustRun(t, root, "(()(()))").Matched)
	assert.False(t, mustRun(t, root, "(()").Matched)
	assert.Equal(t, "parens", g.Ref("parens").Label())
	assert.True(t, g.Ref("parens").HasCustomLabel())
}

func TestGrammarReferences(t *testing.T) {
	t.Run("undefined reference", func(t *testing.T) {
		g := NewGrammar(nil)
		_, err := g.Build(g.Sequence(g.Ref("value"), g.Ref("missing")))
		var gerr *GrammarError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, "missing", gerr.Rule)
	})

	t.Run("defined twice", func(t *testing.T) {
		g := NewGrammar(nil)
		g.Define("a", 'a')
		g.Define("a", 'b')
		assert.ErrorIs(t, g.Err(), ErrInvalidRule)
	})

	t.Run("defined as itself", func(t *testing.T) {
		g := NewGrammar(nil)
		g.Define("a", g.Ref("a"))
		assert.ErrorIs(t, g.Err(), ErrInvalidRule)
	})

	t.Run("use before definition aborts the run", func(t *testing.T) {
		g := NewGrammar(nil)
		rule := g.Sequence('a', g.Ref("b"))
		_, err := NewParseRunner(rule).Run("ab")
		assert.ErrorIs(t, err, ErrInvalidRule)
	})

	t.Run("labels", func(t *testing.T) {
		g := NewGrammar(nil)
		custom := g.Label("custom", 'x')
		g.Define("renamed", custom)
		assert.Equal(t, "custom", g.Ref("renamed").Label())
		assert.Equal(t, "relabeled", g.Label("relabeled", custom).Label())
		assert.Equal(t, MatcherType_Terminal, custom.Type())
		assert.False(t, custom.CanMatchEmpty())
		require.NoError(t, g.Err())
	})
}
