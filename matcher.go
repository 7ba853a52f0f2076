package pegmatch

// MatcherType tells which family a matcher belongs to.  The set of
// matchers is closed: every implementation lives in this package.
type MatcherType int

const (
	MatcherType_Terminal MatcherType = iota
	MatcherType_Composite
	MatcherType_Predicate
	MatcherType_Action
	MatcherType_Join
)

func (mt MatcherType) String() string {
	switch mt {
	case MatcherType_Terminal:
		return "terminal"
	case MatcherType_Composite:
		return "composite"
	case MatcherType_Predicate:
		return "predicate"
	case MatcherType_Action:
		return "action"
	case MatcherType_Join:
		return "join"
	default:
		return "unknown"
	}
}

// Matcher is a node of a grammar.  Matchers are immutable once
// built, so a single grammar can be shared by any number of
// concurrent parse runs.
//
// Match must honor one contract: when it returns false, the value
// stack must be exactly as it was when Match was called.
type Matcher interface {
	// Label is the user visible name of the matcher
	Label() string

	// HasCustomLabel is true when the label was set by the
	// grammar author instead of defaulted by the matcher
	HasCustomLabel() bool

	Type() MatcherType
	Children() []Matcher

	// CanMatchEmpty reports whether the matcher may succeed
	// without consuming input.  It's computed at construction.
	CanMatchEmpty() bool

	// Match runs the matcher against the input within `ctx`
	Match(ctx *MatcherContext) bool

	base() *matcherBase
}

// matcherBase holds what all the matchers have in common and seals
// the Matcher interface
type matcherBase struct {
	label         string
	typ           MatcherType
	children      []Matcher
	canMatchEmpty bool
}

func newBase(typ MatcherType, label string, canMatchEmpty bool, children ...Matcher) matcherBase {
	return matcherBase{
		label:         label,
		typ:           typ,
		children:      children,
		canMatchEmpty: canMatchEmpty,
	}
}

func (b *matcherBase) base() *matcherBase   { return b }
func (b *matcherBase) Label() string        { return b.label }
func (b *matcherBase) HasCustomLabel() bool { return false }
func (b *matcherBase) Type() MatcherType    { return b.typ }
func (b *matcherBase) Children() []Matcher  { return b.children }
func (b *matcherBase) CanMatchEmpty() bool  { return b.canMatchEmpty }
func (b *matcherBase) String() string       { return b.label }

// subContextProvider is implemented by matchers that don't run in
// a fresh context when invoked by a parent activation
type subContextProvider interface {
	subContext(ctx *MatcherContext) *MatcherContext
}
