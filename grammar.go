package pegmatch

import (
	"fmt"
	"sort"
	"unicode/utf16"
)

// Grammar is the surface grammars are written against.  Its methods
// take rules as `any`: a rune becomes a char matcher, a string a
// string matcher, an Action an action matcher, and a Matcher is used
// as is.
//
// Building stops at the first invalid rule: the error is kept and
// reported by Err and Build, and every method keeps returning
// placeholder rules from then on, so a grammar can be written
// without checking errors at every step.
type Grammar struct {
	config *Config
	err    error
	refs   map[string]*ProxyMatcher
}

// NewGrammar creates a grammar builder.  A nil config takes the
// defaults.
func NewGrammar(cfg *Config) *Grammar {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Grammar{config: cfg, refs: map[string]*ProxyMatcher{}}
}

// Err returns the first error found while building the grammar
func (g *Grammar) Err() error { return g.err }

// Build checks the grammar and returns its root rule
func (g *Grammar) Build(root any) (Matcher, error) {
	m := g.toRule(root)
	if g.err != nil {
		return nil, g.err
	}
	var undefined []string
	for name, ref := range g.refs {
		if !ref.Resolved() {
			undefined = append(undefined, name)
		}
	}
	if len(undefined) > 0 {
		sort.Strings(undefined)
		return nil, invalidRule(undefined[0], "rule referenced but never defined (%d undefined)", len(undefined))
	}
	return m, nil
}

func (g *Grammar) fail(err error) Matcher {
	if g.err == nil {
		g.err = err
	}
	return NewNothingMatcher()
}

func (g *Grammar) check(m Matcher, err error) Matcher {
	if err != nil {
		return g.fail(err)
	}
	return m
}

func (g *Grammar) toRule(v any) Matcher {
	switch r := v.(type) {
	case nil:
		return g.fail(invalidRule("", "rule must not be nil"))
	case Matcher:
		return r
	case rune:
		return g.Char(r)
	case string:
		return g.String(r)
	case Action:
		return g.Action(r)
	case func(*MatcherContext) (bool, error):
		return g.Action(r)
	default:
		return g.fail(invalidRule(fmt.Sprintf("%v", v), "can't use a %T as a rule", v))
	}
}

func (g *Grammar) toRules(vs []any) []Matcher {
	rules := make([]Matcher, len(vs))
	for i, v := range vs {
		rules[i] = g.toRule(v)
	}
	return rules
}

// single turns a list of rules into one, wrapping them in a
// sequence when there's more than one
func (g *Grammar) single(kind string, vs []any) Matcher {
	switch len(vs) {
	case 0:
		return g.fail(invalidRule(kind, "needs at least one sub rule"))
	case 1:
		return g.toRule(vs[0])
	default:
		return g.Sequence(vs...)
	}
}

// ---- Terminals ----

func (g *Grammar) Char(c rune) Matcher {
	return g.check(asMatcher(NewCharMatcher(c)))
}

func (g *Grammar) IgnoreCaseChar(c rune) Matcher {
	return g.check(asMatcher(NewIgnoreCaseCharMatcher(c)))
}

// CharRange matches a code unit between `low` and `high`, both
// included
func (g *Grammar) CharRange(low, high rune) Matcher {
	return g.check(NewCharRange(low, high))
}

func (g *Grammar) AnyOf(chars string) Matcher {
	return g.check(NewAnyOf(chars))
}

func (g *Grammar) NoneOf(chars string) Matcher {
	return g.check(NewNoneOf(chars))
}

// String matches `s` exactly.  Single character strings become char
// matchers.
func (g *Grammar) String(s string) Matcher {
	if units := utf16.Encode([]rune(s)); len(units) == 1 {
		return g.Char(rune(units[0]))
	}
	return g.check(asMatcher(NewStringMatcher(s)))
}

func (g *Grammar) IgnoreCase(s string) Matcher {
	if units := utf16.Encode([]rune(s)); len(units) == 1 {
		return g.IgnoreCaseChar(rune(units[0]))
	}
	return g.check(asMatcher(NewIgnoreCaseStringMatcher(s)))
}

func (g *Grammar) Unicode(cp rune) Matcher {
	return g.check(NewUnicodeChar(cp))
}

func (g *Grammar) UnicodeRange(low, high rune) Matcher {
	return g.check(NewUnicodeRange(low, high))
}

func (g *Grammar) Any() Matcher     { return NewAnyMatcher() }
func (g *Grammar) Empty() Matcher   { return NewEmptyMatcher() }
func (g *Grammar) Nothing() Matcher { return NewNothingMatcher() }
func (g *Grammar) EOI() Matcher     { return NewEOIMatcher() }

// Trie matches the longest of `words`
func (g *Grammar) Trie(words ...string) Matcher {
	return g.trie(false, words)
}

func (g *Grammar) TrieIgnoreCase(words ...string) Matcher {
	return g.trie(true, words)
}

// trie degrades to simpler matchers when the words allow it.  Words
// of a single character go in a char set tried after the trie, which
// keeps the longest match winning since every trie word is longer.
func (g *Grammar) trie(ignoreCase bool, words []string) Matcher {
	var long []string
	var short string
	seen := map[string]struct{}{}
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		switch n := len(utf16.Encode([]rune(w))); {
		case n == 0:
			return g.fail(invalidRule("trie", "words must not be empty"))
		case n < minTrieWordLen:
			short += w
		default:
			long = append(long, w)
		}
	}
	var rules []Matcher
	switch {
	case len(long) == 1 && ignoreCase:
		rules = append(rules, g.IgnoreCase(long[0]))
	case len(long) == 1:
		rules = append(rules, g.String(long[0]))
	case len(long) > 1:
		rules = append(rules, g.check(asMatcher(NewTrieMatcherFromWords(ignoreCase, long...))))
	}
	if short != "" {
		if ignoreCase {
			for _, c := range short {
				rules = append(rules, g.IgnoreCaseChar(c))
			}
		} else {
			rules = append(rules, g.AnyOf(short))
		}
	}
	switch len(rules) {
	case 0:
		return g.fail(invalidRule("trie", "needs at least one word"))
	case 1:
		return rules[0]
	default:
		return g.check(asMatcher(NewFirstOfMatcher(rules...)))
	}
}

// ---- Combinators ----

func (g *Grammar) Sequence(rules ...any) Matcher {
	if len(rules) == 1 {
		return g.toRule(rules[0])
	}
	return g.check(asMatcher(NewSequenceMatcher(g.toRules(rules)...)))
}

func (g *Grammar) FirstOf(rules ...any) Matcher {
	if len(rules) == 1 {
		return g.toRule(rules[0])
	}
	return g.check(asMatcher(NewFirstOfMatcher(g.toRules(rules)...)))
}

func (g *Grammar) Optional(rules ...any) Matcher {
	return g.check(asMatcher(NewOptionalMatcher(g.single("optional", rules))))
}

func (g *Grammar) ZeroOrMore(rules ...any) Matcher {
	inner, err := g.loopBody("zeroOrMore", rules)
	if err != nil {
		return g.fail(err)
	}
	return g.check(asMatcher(NewZeroOrMoreMatcher(inner)))
}

func (g *Grammar) OneOrMore(rules ...any) Matcher {
	inner, err := g.loopBody("oneOrMore", rules)
	if err != nil {
		return g.fail(err)
	}
	return g.check(asMatcher(NewOneOrMoreMatcher(inner)))
}

func (g *Grammar) loopBody(kind string, rules []any) (Matcher, error) {
	inner := g.single(kind, rules)
	if g.config.GetBool("grammar.check_empty_loops") && inner.CanMatchEmpty() {
		return nil, invalidRule(kind, "the inner rule %s must not allow empty matches", inner.Label())
	}
	return inner, nil
}

func (g *Grammar) Test(rules ...any) Matcher {
	return g.check(asMatcher(NewTestMatcher(g.single("test", rules))))
}

func (g *Grammar) TestNot(rules ...any) Matcher {
	return g.check(asMatcher(NewTestNotMatcher(g.single("testNot", rules))))
}

// Action wraps `action` in a matcher
func (g *Grammar) Action(action Action) Matcher {
	return g.check(asMatcher(NewActionMatcher(action, false)))
}

// SkippableAction wraps `action` in a matcher that doesn't run it
// within predicates
func (g *Grammar) SkippableAction(action Action) Matcher {
	return g.check(asMatcher(Skippable(action)))
}

// Label gives `rule` a custom label, which also makes it a node of
// the parse tree
func (g *Grammar) Label(label string, rules ...any) Matcher {
	return g.check(WithLabel(g.single(label, rules), label))
}

// ---- Recursion ----

// Ref returns the rule named `name`, which may be defined later with
// Define
func (g *Grammar) Ref(name string) Matcher {
	ref, ok := g.refs[name]
	if !ok {
		ref = NewProxyMatcher(name)
		g.refs[name] = ref
	}
	return ref
}

// Define binds `name` to the given rules and returns the rule.  The
// rule is labeled `name` unless it already has a custom label.
func (g *Grammar) Define(name string, rules ...any) Matcher {
	rule := g.single(name, rules)
	if g.err != nil {
		return rule
	}
	if p, ok := rule.(*ProxyMatcher); ok && g.refs[name] == p {
		return g.fail(invalidRule(name, "rule can't be defined as itself"))
	}
	if !rule.HasCustomLabel() {
		rule = g.check(WithLabel(rule, name))
	}
	ref := g.Ref(name).(*ProxyMatcher)
	if err := ref.Resolve(rule); err != nil {
		return g.fail(err)
	}
	return ref
}

// ---- Join ----

// Join starts building a join of `rules`.  Finish it with Using and
// one of Times, Min, Max or Range.
func (g *Grammar) Join(rules ...any) *JoinBuilder {
	return &JoinBuilder{g: g, joined: g.single("join", rules), kind: "join"}
}

// Repeat starts building a repetition of `rules` with a bounded
// number of occurrences
func (g *Grammar) Repeat(rules ...any) *JoinBuilder {
	return &JoinBuilder{g: g, joined: g.single("repeat", rules), kind: "repeat"}
}

// JoinBuilder collects the parts of a join matcher
type JoinBuilder struct {
	g       *Grammar
	kind    string
	joined  Matcher
	joining Matcher
}

// Using sets the rule matched between two occurrences of the joined
// rule
func (b *JoinBuilder) Using(rules ...any) *JoinBuilder {
	b.joining = b.g.single(b.kind, rules)
	return b
}

// Times requires exactly `n` occurrences
func (b *JoinBuilder) Times(n int) Matcher { return b.Range(n, n) }

// Min requires at least `n` occurrences
func (b *JoinBuilder) Min(n int) Matcher { return b.Range(n, Unbounded) }

// Max allows up to `n` occurrences, none included
func (b *JoinBuilder) Max(n int) Matcher { return b.Range(0, n) }

// Range requires between `min` and `max` occurrences.  `max` may be
// Unbounded.
func (b *JoinBuilder) Range(min, max int) Matcher {
	if b.kind == "join" && b.joining == nil {
		return b.g.fail(invalidRule("join", "missing the joining rule, call Using first"))
	}
	return b.g.check(NewJoinMatcher(b.joined, b.joining, min, max))
}
