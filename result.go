package pegmatch

import (
	"github.com/clarete/pegmatch/ascii"
)

// ParsingResult is what a parse run leaves behind
type ParsingResult struct {
	// Matched is true when the root rule matched the input
	Matched bool

	// ValueStack is the stack as the run left it.  It's always
	// empty for runs that didn't match.
	ValueStack *ValueStack

	// Errors holds the recoverable errors found during the run,
	// in the order they happened.  A run may match and still
	// carry errors that happened in alternatives that were
	// abandoned.
	Errors []*ParseError

	Input *InputBuffer

	// End is where the root rule stopped matching
	End int

	// Tree is the root of the parse tree.  It's only built when
	// the runner is asked to.
	Tree *Node
}

func (r *ParsingResult) HasErrors() bool { return len(r.Errors) > 0 }

// Value returns the top of the value stack, if any
func (r *ParsingResult) Value() (any, bool) {
	v, err := r.ValueStack.Peek()
	return v, err == nil
}

// Remaining returns the input the root rule didn't consume
func (r *ParsingResult) Remaining() string {
	return r.Input.Extract(r.End, r.Input.Len())
}

// PrettyTree renders the parse tree, or an empty string when there's
// none
func (r *ParsingResult) PrettyTree() string {
	if r.Tree == nil {
		return ""
	}
	return r.Tree.Pretty(r.Input)
}

func (r *ParsingResult) HighlightTree(theme ascii.Theme) string {
	if r.Tree == nil {
		return ""
	}
	return r.Tree.Highlight(r.Input, theme)
}
