package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarete/pegmatch"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCmd(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		out, err := execute(t, "", "run", "calc", "1 + 2 * 3")
		require.NoError(t, err)
		assert.Equal(t, "matched (9 of 9)\n[0] 7\n", out)
	})

	t.Run("no match", func(t *testing.T) {
		out, err := execute(t, "", "run", "calc", "1 +")
		require.Error(t, err)
		assert.Equal(t, "no match\n", out)
	})

	t.Run("action errors", func(t *testing.T) {
		out, err := execute(t, "", "run", "calc", "1/0")
		require.Error(t, err)
		assert.Contains(t, out, "error: division by zero")
	})

	t.Run("tree", func(t *testing.T) {
		out, err := execute(t, "", "run", "--tree", "csv", "a,b")
		require.NoError(t, err)
		assert.Contains(t, out, "record")
		assert.Contains(t, out, `"a"`)
	})

	t.Run("set", func(t *testing.T) {
		out, err := execute(t, "", "run", "--set", "runner.parse_tree=true", "keywords", "int")
		require.NoError(t, err)
		assert.Contains(t, out, "keyword")
	})

	t.Run("bad set", func(t *testing.T) {
		_, err := execute(t, "", "run", "--set", "runner.nope=1", "calc", "1")
		require.ErrorContains(t, err, "runner.nope")

		_, err = execute(t, "", "run", "--set", "runner.trace", "calc", "1")
		require.ErrorContains(t, err, "key=value")
	})

	t.Run("lines", func(t *testing.T) {
		out, err := execute(t, "1+1\n\n2*\n3*3\n", "run", "calc")
		require.NoError(t, err)
		assert.Equal(t, "matched (3 of 3)\n[0] 2\nno match\nmatched (3 of 3)\n[0] 9\n", out)
	})

	t.Run("unknown grammar", func(t *testing.T) {
		_, err := execute(t, "", "run", "json", "{}")
		require.ErrorContains(t, err, "try one of: calc, csv, keywords")
	})
}

func TestRunCmdGrammarSettings(t *testing.T) {
	saved := grammars
	t.Cleanup(func() { grammars = saved })
	grammars = append(append([]grammarEntry{}, saved...), grammarEntry{
		name:        "loose",
		description: "loops over a rule that matches empty",
		build: func(cfg *pegmatch.Config) (pegmatch.Matcher, error) {
			g := pegmatch.NewGrammar(cfg)
			return g.Build(g.ZeroOrMore(g.Optional('a')))
		},
	})

	_, err := execute(t, "", "run", "loose", "b")
	require.ErrorContains(t, err, "build grammar loose")
	assert.ErrorIs(t, err, pegmatch.ErrInvalidRule)

	_, err = execute(t, "", "run", "--set", "grammar.check_empty_loops=false", "loose", "b")
	assert.ErrorIs(t, err, pegmatch.ErrEmptyLoop)
}

func TestGrammarsCmd(t *testing.T) {
	out, err := execute(t, "", "grammars")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "calc "))
	assert.True(t, strings.HasPrefix(lines[2], "keywords "))
}

func TestConfigCmd(t *testing.T) {
	out, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration\n")
	assert.Contains(t, out, "runner.full_input")
	assert.Contains(t, out, "grammar.check_empty_loops : true")
}
