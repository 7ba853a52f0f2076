package pegmatch

import (
	"strings"
)

// parseRun holds the state shared by every context of a single
// parse run.  Nothing in here is shared across runs.
type parseRun struct {
	input     *InputBuffer
	stack     *ValueStack
	errors    []*ParseError
	handler   MatchHandler
	buildTree bool
}

// MatcherContext is the activation frame of one matcher invocation.
// It tracks where the matcher started, how far it got, and collects
// the parse tree nodes produced by its children.
//
// Contexts are recycled: each context owns at most one child context
// object that is reinitialized for every child invocation.  Since a
// parse run is a plain recursion, a context is never used by two
// activations at the same time.
type MatcherContext struct {
	run    *parseRun
	parent *MatcherContext
	sub    *MatcherContext
	level  int

	matcher      Matcher
	startIndex   int
	currentIndex int

	// predicateDepth is greater than zero while running within a
	// test or testNot matcher
	predicateDepth int

	node     *Node
	subNodes []*Node
}

func newRootContext(run *parseRun, root Matcher) *MatcherContext {
	return &MatcherContext{run: run, matcher: root}
}

// SubContext returns the context that `m` will run in when invoked
// from within the activation of `c`.
func (c *MatcherContext) SubContext(m Matcher) *MatcherContext {
	if p, ok := m.(subContextProvider); ok {
		return p.subContext(c)
	}
	return c.subContextFor(m)
}

// basicSubContext returns the child context object without
// reinitializing its position or its nodes.  It still holds the
// data left by the last child that ran in it.
func (c *MatcherContext) basicSubContext() *MatcherContext {
	if c.sub == nil {
		c.sub = &MatcherContext{run: c.run, parent: c, level: c.level + 1}
	}
	c.sub.predicateDepth = c.predicateDepth
	return c.sub
}

// subContextFor returns a fresh child context for `m` rooted at the
// current index of `c`
func (c *MatcherContext) subContextFor(m Matcher) *MatcherContext {
	sc := c.basicSubContext()
	sc.matcher = m
	sc.startIndex = c.currentIndex
	sc.currentIndex = c.currentIndex
	sc.node = nil
	sc.subNodes = nil
	return sc
}

// RunMatcher invokes the matcher of this context through the match
// handler of the run.  On success, the parent's cursor moves to
// where this activation ended.
func (c *MatcherContext) RunMatcher() bool {
	if !c.run.handler.Match(c) {
		return false
	}
	c.finalizeNode()
	if c.parent != nil {
		c.parent.currentIndex = c.currentIndex
	}
	return true
}

// ---- Cursor ----

func (c *MatcherContext) StartIndex() int   { return c.startIndex }
func (c *MatcherContext) CurrentIndex() int { return c.currentIndex }

func (c *MatcherContext) SetCurrentIndex(index int) {
	c.currentIndex = index
}

func (c *MatcherContext) AdvanceIndex(n int) {
	c.currentIndex += n
}

// CurrentChar returns the code unit under the cursor, or EOI
func (c *MatcherContext) CurrentChar() rune {
	return c.run.input.CharAt(c.currentIndex)
}

// ---- Frame linkage ----

func (c *MatcherContext) Matcher() Matcher           { return c.matcher }
func (c *MatcherContext) Parent() *MatcherContext    { return c.parent }
func (c *MatcherContext) Level() int                 { return c.level }
func (c *MatcherContext) Input() *InputBuffer        { return c.run.input }
func (c *MatcherContext) ValueStack() *ValueStack    { return c.run.stack }
func (c *MatcherContext) ParseErrors() []*ParseError { return c.run.errors }

// InPredicate is true when this activation runs within a test or
// testNot matcher, however deep
func (c *MatcherContext) InPredicate() bool { return c.predicateDepth > 0 }

func (c *MatcherContext) enterPredicate() { c.predicateDepth++ }
func (c *MatcherContext) leavePredicate() { c.predicateDepth-- }

// Path returns the labels of the matchers from the root down to
// this activation, separated by slashes
func (c *MatcherContext) Path() string {
	var labels []string
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.matcher != nil {
			labels = append(labels, ctx.matcher.Label())
		}
	}
	var s strings.Builder
	for i := len(labels) - 1; i >= 0; i-- {
		s.WriteString(labels[i])
		if i > 0 {
			s.WriteRune('/')
		}
	}
	return s.String()
}

func (c *MatcherContext) addError(err *ParseError) {
	c.run.errors = append(c.run.errors, err)
}

// ---- Previous match ----
//
// Actions run against the context of their enclosing matcher.  From
// there, the child context still holds the bounds of the sibling
// that ran right before the action.

// MatchRange returns the span matched by the sibling preceding the
// running action
func (c *MatcherContext) MatchRange() Range {
	if c.sub == nil {
		return NewRange(c.currentIndex, c.currentIndex)
	}
	return NewRange(c.sub.startIndex, c.sub.currentIndex)
}

// Match returns the text matched by the sibling preceding the
// running action
func (c *MatcherContext) Match() string {
	r := c.MatchRange()
	return c.run.input.Extract(r.Start, r.End)
}

func (c *MatcherContext) MatchStart() int  { return c.MatchRange().Start }
func (c *MatcherContext) MatchEnd() int    { return c.MatchRange().End }
func (c *MatcherContext) MatchLength() int { return c.MatchRange().Len() }

// ---- Parse tree ----

// Node returns the node created by this activation, if any
func (c *MatcherContext) Node() *Node { return c.node }

// CreateNode marks this activation as a node of the parse tree.
// Nodes collected from children become the node's children.
// Predicates and actions never create nodes, neither does anything
// running within a predicate.
func (c *MatcherContext) CreateNode() {
	if !c.run.buildTree || c.predicateDepth > 0 {
		return
	}
	switch c.matcher.Type() {
	case MatcherType_Predicate, MatcherType_Action:
		return
	}
	var value any
	if top, err := c.run.stack.Peek(); err == nil {
		value = top
	}
	c.node = &Node{
		Label:    c.matcher.Label(),
		Range:    NewRange(c.startIndex, c.currentIndex),
		Children: c.subNodes,
		Value:    value,
		matcher:  c.matcher,
	}
	c.subNodes = nil
	if c.parent != nil {
		c.parent.subNodes = append(c.parent.subNodes, c.node)
	}
}

// finalizeNode runs after a successful match.  Activations that
// didn't create a node hand their children's nodes over to their
// parent, unless they carry a custom label (or are the root), in
// which case they get a node of their own.
func (c *MatcherContext) finalizeNode() {
	if !c.run.buildTree || c.node != nil {
		return
	}
	switch c.matcher.Type() {
	case MatcherType_Predicate, MatcherType_Action:
		return
	}
	if c.parent == nil || c.matcher.HasCustomLabel() {
		c.CreateNode()
		return
	}
	c.parent.subNodes = append(c.parent.subNodes, c.subNodes...)
	c.subNodes = nil
}

// nodeMark and truncateNodes let a matcher drop the nodes collected
// by children whose match it rolls back
func (c *MatcherContext) nodeMark() int { return len(c.subNodes) }

func (c *MatcherContext) truncateNodes(mark int) {
	if mark < len(c.subNodes) {
		c.subNodes = c.subNodes[:mark]
	}
}
