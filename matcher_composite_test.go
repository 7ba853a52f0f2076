package pegmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	g := NewGrammar(nil)

	t.Run("matches all children in order", func(t *testing.T) {
		result := mustRun(t, g.Sequence('a', 'b', 'c'), "abcd")
		assert.True(t, result.Matched)
		assert.Equal(t, 3, result.End)
	})

	t.Run("failure in the middle undoes earlier pushes", func(t *testing.T) {
		seq := g.Sequence('a', g.Action(Push("a")), 'b', g.Action(Push("b")), 'c')
		result := mustRun(t, seq, "abx")
		assert.False(t, result.Matched)
		assert.True(t, result.ValueStack.IsEmpty())
	})

	t.Run("can match empty only when all children can", func(t *testing.T) {
		assert.True(t, g.Sequence(g.Optional('a'), g.Empty()).CanMatchEmpty())
		assert.False(t, g.Sequence(g.Optional('a'), 'b').CanMatchEmpty())
	})

	require.NoError(t, g.Err())
}

func TestFirstOf(t *testing.T) {
	g := NewGrammar(nil)

	t.Run("first alternative that matches wins", func(t *testing.T) {
		calls := 0
		counting := g.Action(func(ctx *MatcherContext) (bool, error) {
			calls++
			return true, nil
		})
		choice := g.FirstOf(
			g.Sequence('a', g.Action(Push("x")), 'z'),
			g.Sequence("ab", g.Action(Push("y"))),
			g.Sequence("ab", counting),
		)
		result := mustRun(t, choice, "abc")
		assert.True(t, result.Matched)
		assert.Equal(t, 2, result.End)
		assert.Equal(t, []any{"y"}, result.ValueStack.Values())
		assert.Equal(t, 0, calls)
	})

	t.Run("fails when no alternative matches", func(t *testing.T) {
		result := mustRun(t, g.FirstOf("ab", "cd"), "ef")
		assert.False(t, result.Matched)
		assert.Empty(t, result.Errors)
	})

	t.Run("can match empty when any child can", func(t *testing.T) {
		assert.True(t, g.FirstOf('a', g.Empty()).CanMatchEmpty())
		assert.False(t, g.FirstOf('a', 'b').CanMatchEmpty())
	})

	require.NoError(t, g.Err())
}

func TestOptional(t *testing.T) {
	g := NewGrammar(nil)
	opt := g.Optional('a', g.Action(Push(1)), 'b')

	result := mustRun(t, opt, "ab")
	assert.True(t, result.Matched)
	assert.Equal(t, 2, result.End)
	assert.Equal(t, []any{1}, result.ValueStack.Values())

	result = mustRun(t, opt, "ac")
	assert.True(t, result.Matched)
	assert.Equal(t, 0, result.End)
	assert.True(t, result.ValueStack.IsEmpty())

	assert.True(t, opt.CanMatchEmpty())
	require.NoError(t, g.Err())
}

func TestRepetitions(t *testing.T) {
	g := NewGrammar(nil)

	t.Run("zero or more", func(t *testing.T) {
		result := mustRun(t, g.ZeroOrMore("ab"), "ababa")
		assert.True(t, result.Matched)
		assert.Equal(t, 4, result.End)

		result = mustRun(t, g.ZeroOrMore("ab"), "x")
		assert.True(t, result.Matched)
		assert.Equal(t, 0, result.End)
	})

	t.Run("one or more", func(t *testing.T) {
		result := mustRun(t, g.OneOrMore(g.CharRange('0', '9')), "123a")
		assert.True(t, result.Matched)
		assert.Equal(t, 3, result.End)

		result = mustRun(t, g.OneOrMore(g.CharRange('0', '9')), "a")
		assert.False(t, result.Matched)
	})

	t.Run("partial iteration is rolled back", func(t *testing.T) {
		item := g.Sequence('a', g.Action(Push("a")), 'b')
		result := mustRun(t, g.ZeroOrMore(item), "ababa")
		assert.True(t, result.Matched)
		assert.Equal(t, 4, result.End)
		assert.Equal(t, []any{"a", "a"}, result.ValueStack.Values())
	})

	require.NoError(t, g.Err())
}

func TestEmptyLoops(t *testing.T) {
	t.Run("grammar rejects loops over empty rules", func(t *testing.T) {
		g := NewGrammar(nil)
		g.ZeroOrMore(g.Optional('a'))
		assert.ErrorIs(t, g.Err(), ErrInvalidRule)
	})

	for _, kind := range []string{"zeroOrMore", "oneOrMore"} {
		t.Run(kind+" aborts the run on empty iterations", func(t *testing.T) {
			inner := NewEmptyMatcher()
			var m Matcher
			var err error
			if kind == "zeroOrMore" {
				m, err = asMatcher(NewZeroOrMoreMatcher(inner))
			} else {
				m, err = asMatcher(NewOneOrMoreMatcher(inner))
			}
			require.NoError(t, err)

			for _, input := range []string{"", "abc"} {
				result, err := NewParseRunner(m).Run(input)
				assert.Nil(t, result)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrEmptyLoop)
				assert.True(t, IsGrammarError(err))
				assert.Contains(t, err.Error(), kind)
			}
		})
	}

	t.Run("repetitions over references to empty rules", func(t *testing.T) {
		for _, input := range []string{"", "b", "aab"} {
			g := NewGrammar(nil)
			root := g.Repeat(g.Ref("item")).Min(1)
			g.Define("item", g.Optional('a'))
			root, err := g.Build(root)
			require.NoError(t, err)

			_, err = NewParseRunner(root).Run(input)
			var gerr *GrammarError
			require.ErrorAs(t, err, &gerr, input)
			assert.ErrorIs(t, err, ErrEmptyLoop)
			assert.Equal(t, "repeat{1,}", gerr.Rule)
		}
	})

	t.Run("joins over references to empty rules", func(t *testing.T) {
		g := NewGrammar(nil)
		root := g.Join(g.Ref("item")).Using(g.Optional(',')).Range(2, 5)
		g.Define("item", g.Optional('a'))
		root, err := g.Build(root)
		require.NoError(t, err)

		_, err = NewParseRunner(root).Run("a,a")
		assert.ErrorIs(t, err, ErrEmptyLoop)
	})

	t.Run("check can be disabled", func(t *testing.T) {
		cfg := NewConfig()
		cfg.SetBool("grammar.check_empty_loops", false)
		g := NewGrammar(cfg)
		root, err := g.Build(g.Sequence('x', g.ZeroOrMore(g.Optional('a'))))
		require.NoError(t, err)

		_, err = NewParseRunner(root).Run("xb")
		var gerr *GrammarError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, "sequence/zeroOrMore", gerr.Rule)
	})
}

func TestCompositeConstruction(t *testing.T) {
	_, err := NewSequenceMatcher()
	assert.ErrorIs(t, err, ErrInvalidRule)
	_, err = NewFirstOfMatcher(NewAnyMatcher(), nil)
	assert.ErrorIs(t, err, ErrInvalidRule)
	_, err = NewOptionalMatcher(nil)
	assert.ErrorIs(t, err, ErrInvalidRule)
	_, err = NewTestNotMatcher(nil)
	assert.ErrorIs(t, err, ErrInvalidRule)
}
