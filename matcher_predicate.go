package pegmatch

// TestMatcher is the positive lookahead.  It succeeds when its child
// does, but never consumes input nor leaves values on the stack.
type TestMatcher struct{ matcherBase }

func NewTestMatcher(child Matcher) (*TestMatcher, error) {
	if err := checkChildren("test", []Matcher{child}, 1); err != nil {
		return nil, err
	}
	return &TestMatcher{newBase(MatcherType_Predicate, "&("+child.Label()+")", true, child)}, nil
}

func (m *TestMatcher) Match(ctx *MatcherContext) bool {
	return lookahead(ctx, m.children[0])
}

// TestNotMatcher is the negative lookahead.  It succeeds when its
// child fails, and just like TestMatcher leaves no trace behind.
type TestNotMatcher struct{ matcherBase }

func NewTestNotMatcher(child Matcher) (*TestNotMatcher, error) {
	if err := checkChildren("testNot", []Matcher{child}, 1); err != nil {
		return nil, err
	}
	return &TestNotMatcher{newBase(MatcherType_Predicate, "!("+child.Label()+")", true, child)}, nil
}

func (m *TestNotMatcher) Match(ctx *MatcherContext) bool {
	return !lookahead(ctx, m.children[0])
}

func lookahead(ctx *MatcherContext, child Matcher) bool {
	index := ctx.CurrentIndex()
	snapshot := ctx.ValueStack().TakeSnapshot()

	ctx.enterPredicate()
	matched := ctx.SubContext(child).RunMatcher()
	ctx.leavePredicate()

	ctx.SetCurrentIndex(index)
	ctx.ValueStack().RestoreSnapshot(snapshot)
	return matched
}
