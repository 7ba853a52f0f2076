package pegmatch

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf16"

	"golang.org/x/text/unicode/rangetable"
)

// maxCodeUnit is the highest value a single UTF-16 code unit holds
const maxCodeUnit = 0xFFFF

// charsetTableThreshold is the size from which a char set is looked
// up through a range table instead of a linear scan
const charsetTableThreshold = 8

var labelSanitizer = strings.NewReplacer(
	`\`, `\\`,
	string('\n'), `\n`,
	string('\r'), `\r`,
	string('\t'), `\t`,
	string('\f'), `\f`,
)

func escapeChar(c rune) string {
	if c == EOI {
		return "EOI"
	}
	if c >= 0xD800 && c <= 0xDFFF {
		return fmt.Sprintf(`\u%04x`, c)
	}
	return labelSanitizer.Replace(string(c))
}

func escapeString(s string) string {
	return labelSanitizer.Replace(s)
}

func checkCodeUnit(label string, c rune) error {
	if c < 0 || c > maxCodeUnit {
		return invalidRule(label, "%U is not a single code unit, use a unicode matcher", c)
	}
	return nil
}

// asMatcher keeps a typed nil pointer from turning into a non-nil
// Matcher when a constructor fails
func asMatcher[M Matcher](m M, err error) (Matcher, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ---- Char ----

// CharMatcher matches a single code unit
type CharMatcher struct {
	matcherBase
	c rune
}

func NewCharMatcher(c rune) (*CharMatcher, error) {
	label := "'" + escapeChar(c) + "'"
	if err := checkCodeUnit(label, c); err != nil {
		return nil, err
	}
	return &CharMatcher{matcherBase: newBase(MatcherType_Terminal, label, false), c: c}, nil
}

func (m *CharMatcher) Char() rune { return m.c }

func (m *CharMatcher) Match(ctx *MatcherContext) bool {
	if ctx.CurrentChar() != m.c {
		return false
	}
	ctx.AdvanceIndex(1)
	ctx.CreateNode()
	return true
}

// ---- Ignore case char ----

// IgnoreCaseCharMatcher matches either the lower or the upper case
// version of a code unit
type IgnoreCaseCharMatcher struct {
	matcherBase
	lower, upper rune
}

func NewIgnoreCaseCharMatcher(c rune) (*IgnoreCaseCharMatcher, error) {
	label := "'" + escapeChar(unicode.ToLower(c)) + "/" + escapeChar(unicode.ToUpper(c)) + "'"
	if err := checkCodeUnit(label, c); err != nil {
		return nil, err
	}
	return &IgnoreCaseCharMatcher{
		matcherBase: newBase(MatcherType_Terminal, label, false),
		lower:       unicode.ToLower(c),
		upper:       unicode.ToUpper(c),
	}, nil
}

func (m *IgnoreCaseCharMatcher) Match(ctx *MatcherContext) bool {
	c := ctx.CurrentChar()
	if c != m.lower && c != m.upper {
		return false
	}
	ctx.AdvanceIndex(1)
	ctx.CreateNode()
	return true
}

// ---- Char range ----

// CharRangeMatcher matches a code unit within an inclusive range
type CharRangeMatcher struct {
	matcherBase
	low, high rune
}

// NewCharRangeMatcher requires `low` to be strictly lower than
// `high`.  Use NewCharRange to get a CharMatcher for equal bounds.
func NewCharRangeMatcher(low, high rune) (*CharRangeMatcher, error) {
	label := escapeChar(low) + ".." + escapeChar(high)
	if err := checkCodeUnit(label, low); err != nil {
		return nil, err
	}
	if err := checkCodeUnit(label, high); err != nil {
		return nil, err
	}
	if low >= high {
		return nil, invalidRule(label, "lower bound must be strictly lower than the upper bound")
	}
	return &CharRangeMatcher{matcherBase: newBase(MatcherType_Terminal, label, false), low: low, high: high}, nil
}

// NewCharRange returns a CharRangeMatcher, or a CharMatcher when
// both bounds are the same
func NewCharRange(low, high rune) (Matcher, error) {
	if low == high {
		return asMatcher(NewCharMatcher(low))
	}
	return asMatcher(NewCharRangeMatcher(low, high))
}

func (m *CharRangeMatcher) Bounds() (rune, rune) { return m.low, m.high }

func (m *CharRangeMatcher) Match(ctx *MatcherContext) bool {
	c := ctx.CurrentChar()
	if c < m.low || c > m.high {
		return false
	}
	ctx.AdvanceIndex(1)
	ctx.CreateNode()
	return true
}

// ---- Char sets ----

// CharSet is a set of code units.  A subtractive set contains every
// code unit except the ones listed.  EOI is never part of a set.
type CharSet struct {
	chars       []rune
	subtractive bool
	table       *unicode.RangeTable
}

func newCharSet(chars string, subtractive bool) (*CharSet, error) {
	seen := map[rune]struct{}{}
	var list []rune
	for _, c := range utf16.Encode([]rune(chars)) {
		r := rune(c)
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		list = append(list, r)
	}
	if len(list) == 0 && !subtractive {
		return nil, invalidRule("anyOf", "the set of characters must not be empty")
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	cs := &CharSet{chars: list, subtractive: subtractive}
	if len(list) >= charsetTableThreshold {
		cs.table = rangetable.New(list...)
	}
	return cs, nil
}

func (cs *CharSet) contains(c rune) bool {
	if c == EOI {
		return false
	}
	return cs.listed(c) != cs.subtractive
}

func (cs *CharSet) listed(c rune) bool {
	if cs.table != nil {
		return unicode.Is(cs.table, c)
	}
	for _, item := range cs.chars {
		if item == c {
			return true
		}
	}
	return false
}

func (cs *CharSet) String() string {
	var s strings.Builder
	if cs.subtractive {
		s.WriteRune('!')
	}
	s.WriteRune('[')
	for _, c := range cs.chars {
		s.WriteString(escapeChar(c))
	}
	s.WriteRune(']')
	return s.String()
}

// AnyOfMatcher matches one code unit that belongs to a CharSet
type AnyOfMatcher struct {
	matcherBase
	set *CharSet
}

// NewAnyOf matches any of the characters in `chars`.  A single
// character set degrades to a CharMatcher.
func NewAnyOf(chars string) (Matcher, error) {
	cs, err := newCharSet(chars, false)
	if err != nil {
		return nil, err
	}
	if len(cs.chars) == 1 {
		return asMatcher(NewCharMatcher(cs.chars[0]))
	}
	return newAnyOfMatcher(cs), nil
}

// NewNoneOf matches any code unit that's not in `chars`, and never
// matches the end of the input
func NewNoneOf(chars string) (Matcher, error) {
	cs, err := newCharSet(chars, true)
	if err != nil {
		return nil, err
	}
	if len(cs.chars) == 0 {
		return NewAnyMatcher(), nil
	}
	return newAnyOfMatcher(cs), nil
}

func newAnyOfMatcher(cs *CharSet) *AnyOfMatcher {
	return &AnyOfMatcher{matcherBase: newBase(MatcherType_Terminal, cs.String(), false), set: cs}
}

func (m *AnyOfMatcher) Set() *CharSet { return m.set }

func (m *AnyOfMatcher) Match(ctx *MatcherContext) bool {
	if !m.set.contains(ctx.CurrentChar()) {
		return false
	}
	ctx.AdvanceIndex(1)
	ctx.CreateNode()
	return true
}

// ---- Strings ----

// StringMatcher matches a fixed sequence of code units
type StringMatcher struct {
	matcherBase
	units []uint16
}

func NewStringMatcher(s string) (*StringMatcher, error) {
	label := `"` + escapeString(s) + `"`
	units := utf16.Encode([]rune(s))
	if len(units) == 0 {
		return nil, invalidRule(label, "string must not be empty")
	}
	return &StringMatcher{matcherBase: newBase(MatcherType_Terminal, label, false), units: units}, nil
}

func (m *StringMatcher) Match(ctx *MatcherContext) bool {
	input := ctx.Input()
	start := ctx.CurrentIndex()
	for i, u := range m.units {
		if input.CharAt(start+i) != rune(u) {
			return false
		}
	}
	ctx.AdvanceIndex(len(m.units))
	ctx.CreateNode()
	return true
}

// IgnoreCaseStringMatcher matches a fixed sequence of code units
// regardless of their case
type IgnoreCaseStringMatcher struct {
	matcherBase
	lower, upper []rune
}

func NewIgnoreCaseStringMatcher(s string) (*IgnoreCaseStringMatcher, error) {
	label := `"` + escapeString(s) + `"i`
	units := utf16.Encode([]rune(s))
	if len(units) == 0 {
		return nil, invalidRule(label, "string must not be empty")
	}
	m := &IgnoreCaseStringMatcher{
		matcherBase: newBase(MatcherType_Terminal, label, false),
		lower:       make([]rune, len(units)),
		upper:       make([]rune, len(units)),
	}
	for i, u := range units {
		m.lower[i] = unicode.ToLower(rune(u))
		m.upper[i] = unicode.ToUpper(rune(u))
	}
	return m, nil
}

func (m *IgnoreCaseStringMatcher) Match(ctx *MatcherContext) bool {
	input := ctx.Input()
	start := ctx.CurrentIndex()
	for i := range m.lower {
		c := input.CharAt(start + i)
		if c != m.lower[i] && c != m.upper[i] {
			return false
		}
	}
	ctx.AdvanceIndex(len(m.lower))
	ctx.CreateNode()
	return true
}

// ---- Special terminals ----

// AnyMatcher matches any code unit but fails at the end of input
type AnyMatcher struct{ matcherBase }

func NewAnyMatcher() *AnyMatcher {
	return &AnyMatcher{matcherBase: newBase(MatcherType_Terminal, "ANY", false)}
}

func (m *AnyMatcher) Match(ctx *MatcherContext) bool {
	if ctx.CurrentChar() == EOI {
		return false
	}
	ctx.AdvanceIndex(1)
	ctx.CreateNode()
	return true
}

// EmptyMatcher always succeeds without consuming input
type EmptyMatcher struct{ matcherBase }

func NewEmptyMatcher() *EmptyMatcher {
	return &EmptyMatcher{matcherBase: newBase(MatcherType_Terminal, "EMPTY", true)}
}

func (m *EmptyMatcher) Match(ctx *MatcherContext) bool {
	ctx.CreateNode()
	return true
}

// NothingMatcher never succeeds
type NothingMatcher struct{ matcherBase }

func NewNothingMatcher() *NothingMatcher {
	return &NothingMatcher{matcherBase: newBase(MatcherType_Terminal, "NOTHING", false)}
}

func (m *NothingMatcher) Match(ctx *MatcherContext) bool { return false }

// EOIMatcher succeeds only at the end of the input
type EOIMatcher struct{ matcherBase }

func NewEOIMatcher() *EOIMatcher {
	return &EOIMatcher{matcherBase: newBase(MatcherType_Terminal, "EOI", true)}
}

func (m *EOIMatcher) Match(ctx *MatcherContext) bool {
	if ctx.CurrentChar() != EOI {
		return false
	}
	ctx.CreateNode()
	return true
}
