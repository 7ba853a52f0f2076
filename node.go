package pegmatch

// Node is an element of the parse tree.  Terminals, repetitions,
// joins, tries and custom labeled rules become nodes.  Sequences and
// choices without custom labels hand their children over to the
// closest node above them.
type Node struct {
	Label    string
	Range    Range
	Children []*Node

	// Value is the top of the value stack when the node was
	// created, if any
	Value any

	matcher Matcher
}

// Matcher returns the matcher that created the node
func (n *Node) Matcher() Matcher { return n.matcher }

// Text returns the span of `input` covered by the node
func (n *Node) Text(input *InputBuffer) string {
	return input.Extract(n.Range.Start, n.Range.End)
}

// Find returns the first node labeled `label` in a depth first walk
// starting at `n`
func (n *Node) Find(label string) (*Node, bool) {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.Label == label {
			found = node
			return false
		}
		return true
	})
	return found, found != nil
}

// Walk visits `n` and its descendants depth first until `fn` returns
// false
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
