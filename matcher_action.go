package pegmatch

// Action is a side effect run at a given point of a grammar.  It
// receives the context of the enclosing matcher, from where it can
// read what the preceding sibling matched and work on the value
// stack.  Returning false makes the action fail like any other rule
// would.  A non-nil error is recorded as a ParseError in the run and
// also makes the action fail.
type Action func(ctx *MatcherContext) (bool, error)

// ActionMatcher runs an Action.  It never consumes input.
type ActionMatcher struct {
	matcherBase
	action           Action
	skipInPredicates bool
}

func NewActionMatcher(action Action, skipInPredicates bool) (*ActionMatcher, error) {
	if action == nil {
		return nil, invalidRule("action", "action must not be nil")
	}
	return &ActionMatcher{
		matcherBase:      newBase(MatcherType_Action, "action", true),
		action:           action,
		skipInPredicates: skipInPredicates,
	}, nil
}

// Skippable returns a matcher for `action` that doesn't run while
// within a test or testNot
func Skippable(action Action) (*ActionMatcher, error) {
	return NewActionMatcher(action, true)
}

func (m *ActionMatcher) SkipInPredicates() bool { return m.skipInPredicates }

// subContext hands over the child context of `ctx` untouched when
// siblings already ran, so the action still sees the bounds of the
// last one.
func (m *ActionMatcher) subContext(ctx *MatcherContext) *MatcherContext {
	if ctx.currentIndex > ctx.startIndex {
		sc := ctx.basicSubContext()
		sc.matcher = m
		return sc
	}
	return ctx.subContextFor(m)
}

func (m *ActionMatcher) Match(ctx *MatcherContext) bool {
	if m.skipInPredicates && ctx.InPredicate() {
		return true
	}
	target := ctx.parent
	if target == nil {
		target = ctx
	}
	stack := ctx.ValueStack()
	snapshot := stack.TakeSnapshot()

	ok, err := m.action(target)
	if err != nil {
		ctx.addError(newActionError(target, err))
		stack.RestoreSnapshot(snapshot)
		return false
	}
	if !ok {
		stack.RestoreSnapshot(snapshot)
		return false
	}
	ctx.currentIndex = target.currentIndex
	return true
}
