package pegmatch

import (
	"sort"
	"unicode"
	"unicode/utf16"
)

// minTrieWordLen is the shortest word a trie takes, in code units.
// Single characters are better served by a char set.
const minTrieWordLen = 2

// Trie is an immutable prefix tree of words built by a TrieBuilder.
// Edges of each node are kept sorted and looked up with a binary
// search.
type Trie struct {
	root       *trieNode
	size       int
	ignoreCase bool
}

type trieNode struct {
	keys []uint16
	next []*trieNode
	word bool
}

func (n *trieNode) child(c uint16) *trieNode {
	i := sort.Search(len(n.keys), func(i int) bool { return n.keys[i] >= c })
	if i < len(n.keys) && n.keys[i] == c {
		return n.next[i]
	}
	return nil
}

// Size is the number of distinct words in the trie
func (t *Trie) Size() int { return t.size }

func (t *Trie) IgnoreCase() bool { return t.ignoreCase }

// Search walks the trie from `start` and returns the end of the
// longest word found in the input.
func (t *Trie) Search(input *InputBuffer, start int) (int, bool) {
	end, found := 0, false
	node := t.root
	for i := start; ; i++ {
		if node.word {
			end, found = i, true
		}
		c := input.CharAt(i)
		if c == EOI {
			break
		}
		if node = node.child(t.fold(uint16(c))); node == nil {
			break
		}
	}
	return end, found
}

// Contains tells whether `word` was added to the trie
func (t *Trie) Contains(word string) bool {
	node := t.root
	for _, u := range utf16.Encode([]rune(word)) {
		if node = node.child(t.fold(u)); node == nil {
			return false
		}
	}
	return node.word
}

// Words returns the words of the trie in code unit order
func (t *Trie) Words() []string {
	var words []string
	var walk func(n *trieNode, prefix []uint16)
	walk = func(n *trieNode, prefix []uint16) {
		if n.word {
			words = append(words, string(utf16.Decode(prefix)))
		}
		for i, next := range n.next {
			walk(next, append(prefix, n.keys[i]))
		}
	}
	walk(t.root, nil)
	return words
}

func (t *Trie) fold(c uint16) uint16 {
	if t.ignoreCase {
		return foldCodeUnit(c)
	}
	return c
}

func foldCodeUnit(c uint16) uint16 {
	if c >= 0xD800 && c <= 0xDFFF {
		return c
	}
	if l := unicode.ToLower(rune(c)); l <= maxCodeUnit {
		return uint16(l)
	}
	return c
}

// TrieBuilder collects words and freezes them into a Trie
type TrieBuilder struct {
	root       *builderNode
	size       int
	ignoreCase bool
}

type builderNode struct {
	next map[uint16]*builderNode
	word bool
}

func NewTrieBuilder() *TrieBuilder {
	return &TrieBuilder{root: &builderNode{}}
}

// IgnoreCase makes the trie match words regardless of their case.
// It must be called before words are added.
func (b *TrieBuilder) IgnoreCase() *TrieBuilder {
	b.ignoreCase = true
	return b
}

// AddWord inserts `word` in the trie.  Words already present are
// ignored.
func (b *TrieBuilder) AddWord(word string) error {
	units := utf16.Encode([]rune(word))
	if len(units) < minTrieWordLen {
		return invalidRule(`"`+escapeString(word)+`"`, "trie words need at least %d characters", minTrieWordLen)
	}
	node := b.root
	for _, u := range units {
		if b.ignoreCase {
			u = foldCodeUnit(u)
		}
		if node.next == nil {
			node.next = map[uint16]*builderNode{}
		}
		next, ok := node.next[u]
		if !ok {
			next = &builderNode{}
			node.next[u] = next
		}
		node = next
	}
	if !node.word {
		node.word = true
		b.size++
	}
	return nil
}

func (b *TrieBuilder) Build() *Trie {
	return &Trie{root: freeze(b.root), size: b.size, ignoreCase: b.ignoreCase}
}

func freeze(n *builderNode) *trieNode {
	out := &trieNode{word: n.word}
	for k := range n.next {
		out.keys = append(out.keys, k)
	}
	sort.Slice(out.keys, func(i, j int) bool { return out.keys[i] < out.keys[j] })
	out.next = make([]*trieNode, len(out.keys))
	for i, k := range out.keys {
		out.next[i] = freeze(n.next[k])
	}
	return out
}
