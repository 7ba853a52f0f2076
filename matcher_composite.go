package pegmatch

func checkChildren(label string, children []Matcher, min int) error {
	if len(children) < min {
		return invalidRule(label, "needs at least %d sub rule(s), got %d", min, len(children))
	}
	for i, child := range children {
		if child == nil {
			return invalidRule(label, "sub rule #%d is nil", i)
		}
	}
	return nil
}

// ---- Sequence ----

// SequenceMatcher matches all of its children one after the other
type SequenceMatcher struct{ matcherBase }

func NewSequenceMatcher(children ...Matcher) (*SequenceMatcher, error) {
	if err := checkChildren("sequence", children, 1); err != nil {
		return nil, err
	}
	canMatchEmpty := true
	for _, child := range children {
		canMatchEmpty = canMatchEmpty && child.CanMatchEmpty()
	}
	return &SequenceMatcher{newBase(MatcherType_Composite, "sequence", canMatchEmpty, children...)}, nil
}

func (m *SequenceMatcher) Match(ctx *MatcherContext) bool {
	snapshot := ctx.ValueStack().TakeSnapshot()
	for _, child := range m.children {
		if !ctx.SubContext(child).RunMatcher() {
			ctx.ValueStack().RestoreSnapshot(snapshot)
			return false
		}
	}
	return true
}

// ---- FirstOf ----

// FirstOfMatcher is the ordered choice: it succeeds with the first
// child that matches
type FirstOfMatcher struct{ matcherBase }

func NewFirstOfMatcher(children ...Matcher) (*FirstOfMatcher, error) {
	if err := checkChildren("firstOf", children, 1); err != nil {
		return nil, err
	}
	canMatchEmpty := false
	for _, child := range children {
		canMatchEmpty = canMatchEmpty || child.CanMatchEmpty()
	}
	return &FirstOfMatcher{newBase(MatcherType_Composite, "firstOf", canMatchEmpty, children...)}, nil
}

func (m *FirstOfMatcher) Match(ctx *MatcherContext) bool {
	for _, child := range m.children {
		if ctx.SubContext(child).RunMatcher() {
			return true
		}
	}
	return false
}

// ---- Optional ----

// OptionalMatcher tries its child and succeeds either way
type OptionalMatcher struct{ matcherBase }

func NewOptionalMatcher(child Matcher) (*OptionalMatcher, error) {
	if err := checkChildren("optional", []Matcher{child}, 1); err != nil {
		return nil, err
	}
	return &OptionalMatcher{newBase(MatcherType_Composite, "optional", true, child)}, nil
}

func (m *OptionalMatcher) Match(ctx *MatcherContext) bool {
	ctx.SubContext(m.children[0]).RunMatcher()
	return true
}

// ---- Repetitions ----

// ZeroOrMoreMatcher repeats its child until it fails.  A child that
// succeeds without consuming input aborts the run.
type ZeroOrMoreMatcher struct{ matcherBase }

func NewZeroOrMoreMatcher(child Matcher) (*ZeroOrMoreMatcher, error) {
	if err := checkChildren("zeroOrMore", []Matcher{child}, 1); err != nil {
		return nil, err
	}
	return &ZeroOrMoreMatcher{newBase(MatcherType_Composite, "zeroOrMore", true, child)}, nil
}

func (m *ZeroOrMoreMatcher) Match(ctx *MatcherContext) bool {
	repeat(ctx, m.children[0], "zeroOrMore")
	return true
}

// OneOrMoreMatcher repeats its child until it fails, and requires at
// least one successful iteration.  The whole repetition becomes a
// single node of the parse tree.
type OneOrMoreMatcher struct{ matcherBase }

func NewOneOrMoreMatcher(child Matcher) (*OneOrMoreMatcher, error) {
	if err := checkChildren("oneOrMore", []Matcher{child}, 1); err != nil {
		return nil, err
	}
	return &OneOrMoreMatcher{newBase(MatcherType_Composite, "oneOrMore", false, child)}, nil
}

func (m *OneOrMoreMatcher) Match(ctx *MatcherContext) bool {
	if repeat(ctx, m.children[0], "oneOrMore") == 0 {
		return false
	}
	ctx.CreateNode()
	return true
}

// repeat runs `child` until it fails and returns how many times it
// succeeded.  Each iteration must move the cursor forward.
func repeat(ctx *MatcherContext, child Matcher, kind string) int {
	count := 0
	last := ctx.CurrentIndex()
	for ctx.SubContext(child).RunMatcher() {
		count++
		current := ctx.CurrentIndex()
		if current == last {
			throwEmptyLoop(ctx, kind)
		}
		last = current
	}
	return count
}
