package pegmatch

// ProxyMatcher stands for a rule that's defined later, which is what
// makes recursive grammars possible.  Once resolved, it's invisible:
// the target runs in its place, in the context the proxy would have
// gotten.
type ProxyMatcher struct {
	name   string
	target Matcher
}

func NewProxyMatcher(name string) *ProxyMatcher {
	return &ProxyMatcher{name: name}
}

// Resolve points the proxy to its rule.  It's an error to resolve a
// proxy twice.
func (m *ProxyMatcher) Resolve(target Matcher) error {
	if target == nil {
		return invalidRule(m.name, "can't resolve reference to a nil rule")
	}
	if m.target != nil {
		return invalidRule(m.name, "rule defined more than once")
	}
	m.target = target
	return nil
}

func (m *ProxyMatcher) Resolved() bool { return m.target != nil }
func (m *ProxyMatcher) Name() string   { return m.name }

func (m *ProxyMatcher) Label() string {
	if m.target == nil {
		return m.name
	}
	return m.target.Label()
}

func (m *ProxyMatcher) HasCustomLabel() bool {
	return m.target != nil && m.target.HasCustomLabel()
}

func (m *ProxyMatcher) Type() MatcherType {
	if m.target == nil {
		return MatcherType_Composite
	}
	return m.target.Type()
}

func (m *ProxyMatcher) Children() []Matcher {
	if m.target == nil {
		return nil
	}
	return m.target.Children()
}

// CanMatchEmpty answers false until the proxy is resolved, since
// rules referring to it are built before its target exists
func (m *ProxyMatcher) CanMatchEmpty() bool {
	return m.target != nil && m.target.CanMatchEmpty()
}

func (m *ProxyMatcher) Match(ctx *MatcherContext) bool {
	return m.mustTarget().Match(ctx)
}

func (m *ProxyMatcher) subContext(ctx *MatcherContext) *MatcherContext {
	return ctx.SubContext(m.mustTarget())
}

func (m *ProxyMatcher) base() *matcherBase {
	if m.target == nil {
		return nil
	}
	return m.target.base()
}

func (m *ProxyMatcher) mustTarget() Matcher {
	if m.target == nil {
		panic(invalidRule(m.name, "reference used before being defined"))
	}
	return m.target
}

// labelMatcher overrides the label of the matcher it wraps.  Rules
// with custom labels always get a node in the parse tree.
type labelMatcher struct {
	inner Matcher
	label string
}

// WithLabel returns `m` under a new label
func WithLabel(m Matcher, label string) (Matcher, error) {
	if m == nil {
		return nil, invalidRule(label, "can't label a nil rule")
	}
	if label == "" {
		return nil, invalidRule(m.Label(), "label must not be empty")
	}
	if lm, ok := m.(*labelMatcher); ok {
		m = lm.inner
	}
	return &labelMatcher{inner: m, label: label}, nil
}

func (m *labelMatcher) Label() string        { return m.label }
func (m *labelMatcher) HasCustomLabel() bool { return true }
func (m *labelMatcher) Type() MatcherType    { return m.inner.Type() }
func (m *labelMatcher) Children() []Matcher  { return m.inner.Children() }
func (m *labelMatcher) CanMatchEmpty() bool  { return m.inner.CanMatchEmpty() }
func (m *labelMatcher) base() *matcherBase   { return m.inner.base() }
func (m *labelMatcher) String() string       { return m.label }

func (m *labelMatcher) Match(ctx *MatcherContext) bool {
	return m.inner.Match(ctx)
}

func (m *labelMatcher) subContext(ctx *MatcherContext) *MatcherContext {
	sc := ctx.SubContext(m.inner)
	sc.matcher = m
	return sc
}
