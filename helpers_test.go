package pegmatch

import (
	"regexp"
	"testing"

	"github.com/renstrom/dedent"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/require"
)

var reNL = regexp.MustCompile(`(?m)^`)

func diff(l, r string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(l, r, false)
	pretty := dmp.DiffPrettyText(diffs)
	return reNL.ReplaceAllLiteralString(pretty, "\t")
}

// assertText compares `actual` with an expectation written as an
// indented raw string starting with a newline
func assertText(t *testing.T, expected, actual string) {
	t.Helper()
	expected = dedent.Dedent(expected)[1:]
	if expected != actual {
		t.Errorf("%s: wrong output:\n%s", t.Name(), diff(expected, actual))
	}
}

func mustRun(t *testing.T, root Matcher, input string, opts ...Option) *ParsingResult {
	t.Helper()
	result, err := NewParseRunner(root, opts...).Run(input)
	require.NoError(t, err)
	return result
}

// must builds a matcher and fails the test if that's not possible
func must[M any](t *testing.T) func(m M, err error) M {
	return func(m M, err error) M {
		t.Helper()
		require.NoError(t, err)
		return m
	}
}

// pushing returns an action that pushes `v` and then reports `ok`
func pushing(v any, ok bool) Action {
	return func(ctx *MatcherContext) (bool, error) {
		ctx.ValueStack().Push(v)
		return ok, nil
	}
}
