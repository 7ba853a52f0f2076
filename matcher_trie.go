package pegmatch

import "fmt"

// TrieMatcher matches the longest of a set of words present at the
// cursor
type TrieMatcher struct {
	matcherBase
	trie *Trie
}

func NewTrieMatcher(trie *Trie) (*TrieMatcher, error) {
	if trie == nil || trie.Size() == 0 {
		return nil, invalidRule("trie", "trie must have at least one word")
	}
	label := fmt.Sprintf("trie(%d words)", trie.Size())
	if trie.IgnoreCase() {
		label += "i"
	}
	return &TrieMatcher{matcherBase: newBase(MatcherType_Terminal, label, false), trie: trie}, nil
}

// NewTrieMatcherFromWords builds a trie out of `words` and returns
// a matcher for it
func NewTrieMatcherFromWords(ignoreCase bool, words ...string) (*TrieMatcher, error) {
	b := NewTrieBuilder()
	if ignoreCase {
		b.IgnoreCase()
	}
	for _, w := range words {
		if err := b.AddWord(w); err != nil {
			return nil, err
		}
	}
	return NewTrieMatcher(b.Build())
}

func (m *TrieMatcher) Trie() *Trie { return m.trie }

func (m *TrieMatcher) Match(ctx *MatcherContext) bool {
	end, ok := m.trie.Search(ctx.Input(), ctx.CurrentIndex())
	if !ok {
		return false
	}
	ctx.SetCurrentIndex(end)
	ctx.CreateNode()
	return true
}
