package pegmatch

import (
	"fmt"
	"strconv"
)

// Unbounded stands for the absence of an upper bound in join and
// repeat ranges
const Unbounded = -1

// JoinKind tells how a JoinMatcher decides to keep going and when
// it had enough
type JoinKind int

const (
	// JoinKind_BoundedUp runs up to max cycles, and any number of
	// cycles is enough
	JoinKind_BoundedUp JoinKind = iota

	// JoinKind_BoundedDown runs as long as it can and needs at
	// least min cycles
	JoinKind_BoundedDown

	// JoinKind_Exactly runs up to n cycles and needs all of them
	JoinKind_Exactly

	// JoinKind_BoundedBoth runs up to max cycles and needs at
	// least min of them
	JoinKind_BoundedBoth
)

func (k JoinKind) String() string {
	switch k {
	case JoinKind_BoundedUp:
		return "boundedUp"
	case JoinKind_BoundedDown:
		return "boundedDown"
	case JoinKind_Exactly:
		return "exactly"
	case JoinKind_BoundedBoth:
		return "boundedBoth"
	default:
		return "unknown"
	}
}

// JoinMatcher matches `joined (joining joined)*`.  Each match of
// `joined` counts as one cycle, the first one included.  A nil
// `joining` repeats `joined` back to back.  A cycle that doesn't move
// the cursor aborts the run, like empty iterations of zeroOrMore.
type JoinMatcher struct {
	matcherBase
	kind     JoinKind
	min, max int
}

func newJoinMatcher(kind JoinKind, joined, joining Matcher, min, max int) (*JoinMatcher, error) {
	label := "join"
	if joining == nil {
		label = "repeat"
	}
	if joined == nil {
		return nil, invalidRule(label, "joined rule must not be nil")
	}
	if joined.CanMatchEmpty() {
		return nil, invalidRule(label, "joined rule %s must not allow empty matches", joined.Label())
	}
	children := []Matcher{joined}
	if joining != nil {
		children = append(children, joining)
	}
	m := &JoinMatcher{kind: kind, min: min, max: max}
	m.matcherBase = newBase(MatcherType_Join, label+m.bounds(), false, children...)
	return m, nil
}

func (m *JoinMatcher) bounds() string {
	switch m.kind {
	case JoinKind_BoundedUp:
		return "{," + strconv.Itoa(m.max) + "}"
	case JoinKind_BoundedDown:
		return "{" + strconv.Itoa(m.min) + ",}"
	case JoinKind_Exactly:
		return "{" + strconv.Itoa(m.min) + "}"
	default:
		return fmt.Sprintf("{%d,%d}", m.min, m.max)
	}
}

func (m *JoinMatcher) Kind() JoinKind     { return m.kind }
func (m *JoinMatcher) Bounds() (int, int) { return m.min, m.max }
func (m *JoinMatcher) Joined() Matcher    { return m.children[0] }

func (m *JoinMatcher) Joining() Matcher {
	if len(m.children) < 2 {
		return nil
	}
	return m.children[1]
}

func (m *JoinMatcher) runAgain(cycles int) bool {
	switch m.kind {
	case JoinKind_BoundedDown:
		return true
	default:
		return cycles < m.max
	}
}

func (m *JoinMatcher) enoughCycles(cycles int) bool {
	switch m.kind {
	case JoinKind_BoundedUp:
		return true
	case JoinKind_Exactly:
		return cycles == m.min
	default:
		return cycles >= m.min
	}
}

func (m *JoinMatcher) Match(ctx *MatcherContext) bool {
	stack := ctx.ValueStack()
	snapshot := stack.TakeSnapshot()
	joined, joining := m.Joined(), m.Joining()

	if !ctx.SubContext(joined).RunMatcher() {
		return false
	}
	cycles := 1
	for m.runAgain(cycles) {
		index := ctx.CurrentIndex()
		mark := ctx.nodeMark()
		cycle := stack.TakeSnapshot()
		if (joining == nil || ctx.SubContext(joining).RunMatcher()) && ctx.SubContext(joined).RunMatcher() {
			if ctx.CurrentIndex() == index {
				throwEmptyLoop(ctx, m.Label())
			}
			cycles++
			continue
		}
		ctx.SetCurrentIndex(index)
		ctx.truncateNodes(mark)
		stack.RestoreSnapshot(cycle)
		break
	}
	if !m.enoughCycles(cycles) {
		ctx.SetCurrentIndex(ctx.StartIndex())
		ctx.truncateNodes(0)
		stack.RestoreSnapshot(snapshot)
		return false
	}
	ctx.CreateNode()
	return true
}

// NewJoinMatcher picks the matcher for `joined` separated by
// `joining` repeated between `min` and `max` times.  `max` may be
// Unbounded.  Ranges that don't need a join degrade to simpler
// matchers.
func NewJoinMatcher(joined, joining Matcher, min, max int) (Matcher, error) {
	label := "join"
	if joining == nil {
		label = "repeat"
	}
	if min < 0 {
		min = 0
	}
	if max != Unbounded && max < 0 {
		return nil, invalidRule(label, "illegal range [%d, %d]: should not be empty after intersection with [0, +inf)", min, max)
	}
	if max != Unbounded && max < min {
		return nil, invalidRule(label, "illegal range [%d, %d]: upper bound is lower than lower bound", min, max)
	}
	if joined == nil {
		return nil, invalidRule(label, "joined rule must not be nil")
	}
	if joined.CanMatchEmpty() {
		return nil, invalidRule(label, "joined rule %s must not allow empty matches", joined.Label())
	}

	switch {
	case max == Unbounded && min <= 1:
		m, err := newJoinMatcher(JoinKind_BoundedDown, joined, joining, 1, max)
		if err != nil || min == 1 {
			return asMatcher(m, err)
		}
		return asMatcher(NewOptionalMatcher(m))
	case max == Unbounded:
		return asMatcher(newJoinMatcher(JoinKind_BoundedDown, joined, joining, min, max))
	case max == 0:
		return NewEmptyMatcher(), nil
	case max == 1:
		if min == 0 {
			return asMatcher(NewOptionalMatcher(joined))
		}
		return joined, nil
	case min <= 1:
		m, err := newJoinMatcher(JoinKind_BoundedUp, joined, joining, 1, max)
		if err != nil || min == 1 {
			return asMatcher(m, err)
		}
		return asMatcher(NewOptionalMatcher(m))
	case min == max:
		return asMatcher(newJoinMatcher(JoinKind_Exactly, joined, joining, min, max))
	default:
		return asMatcher(newJoinMatcher(JoinKind_BoundedBoth, joined, joining, min, max))
	}
}
