package pegmatch

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyStack is returned when popping or peeking an empty
	// value stack
	ErrEmptyStack = errors.New("value stack is empty")

	// ErrStackIndex is returned when an operation addresses a
	// stack slot deeper than the stack size
	ErrStackIndex = errors.New("value stack index out of range")
)

// stackNode is one cell of the immutable list backing ValueStack.
// Cells are never mutated after creation, which is what makes
// snapshots free: a snapshot is just a pointer to the top cell.
type stackNode struct {
	value any
	tail  *stackNode
	size  int
}

// Snapshot is an opaque capture of a ValueStack's contents.  It's
// not affected by anything done to the stack after it was taken.
type Snapshot struct {
	head *stackNode
}

// Size returns how many values the snapshot holds
func (s Snapshot) Size() int { return s.head.len() }

func (n *stackNode) len() int {
	if n == nil {
		return 0
	}
	return n.size
}

func cons(v any, tail *stackNode) *stackNode {
	return &stackNode{value: v, tail: tail, size: tail.len() + 1}
}

// ValueStack is the stack semantic actions use to build values
// alongside matching.  A stack is owned by a single parse run.
//
// Index arguments named `down` count from the top of the stack: 0
// is the top, 1 the value right under it, and so on.
type ValueStack struct {
	head *stackNode
}

// NewValueStack creates a stack holding `values`, the last one on
// top.
func NewValueStack(values ...any) *ValueStack {
	s := &ValueStack{}
	for _, v := range values {
		s.Push(v)
	}
	return s
}

func (s *ValueStack) Size() int     { return s.head.len() }
func (s *ValueStack) IsEmpty() bool { return s.head == nil }
func (s *ValueStack) Clear()        { s.head = nil }

func (s *ValueStack) TakeSnapshot() Snapshot {
	return Snapshot{head: s.head}
}

// RestoreSnapshot replaces the contents of the stack with exactly
// what was recorded in `snapshot`.
func (s *ValueStack) RestoreSnapshot(snapshot Snapshot) {
	s.head = snapshot.head
}

func (s *ValueStack) Push(v any) {
	s.head = cons(v, s.head)
}

// PushAt inserts `v` so it ends up `down` slots under the top
func (s *ValueStack) PushAt(down int, v any) error {
	if down < 0 || down > s.Size() {
		return fmt.Errorf("push at %d: %w", down, ErrStackIndex)
	}
	s.head = s.rebuild(down, func(tail *stackNode) *stackNode {
		return cons(v, tail)
	})
	return nil
}

func (s *ValueStack) Pop() (any, error) {
	if s.head == nil {
		return nil, ErrEmptyStack
	}
	v := s.head.value
	s.head = s.head.tail
	return v, nil
}

// PopAt removes and returns the value `down` slots under the top
func (s *ValueStack) PopAt(down int) (any, error) {
	if err := s.check(down); err != nil {
		return nil, fmt.Errorf("pop at %d: %w", down, err)
	}
	var v any
	s.head = s.rebuild(down, func(tail *stackNode) *stackNode {
		v = tail.value
		return tail.tail
	})
	return v, nil
}

func (s *ValueStack) Peek() (any, error) {
	if s.head == nil {
		return nil, ErrEmptyStack
	}
	return s.head.value, nil
}

func (s *ValueStack) PeekAt(down int) (any, error) {
	if err := s.check(down); err != nil {
		return nil, fmt.Errorf("peek at %d: %w", down, err)
	}
	n := s.head
	for i := 0; i < down; i++ {
		n = n.tail
	}
	return n.value, nil
}

// Poke replaces the value on top of the stack
func (s *ValueStack) Poke(v any) error {
	return s.PokeAt(0, v)
}

func (s *ValueStack) PokeAt(down int, v any) error {
	if err := s.check(down); err != nil {
		return fmt.Errorf("poke at %d: %w", down, err)
	}
	s.head = s.rebuild(down, func(tail *stackNode) *stackNode {
		return cons(v, tail.tail)
	})
	return nil
}

// Dup pushes a copy of the top value
func (s *ValueStack) Dup() error {
	v, err := s.Peek()
	if err != nil {
		return err
	}
	s.Push(v)
	return nil
}

// Swap exchanges the two topmost values
func (s *ValueStack) Swap() error {
	return s.SwapN(2)
}

// SwapN reverses the order of the `n` topmost values
func (s *ValueStack) SwapN(n int) error {
	if n < 2 || n > s.Size() {
		return fmt.Errorf("swap %d: %w", n, ErrStackIndex)
	}
	items := make([]any, n)
	cell := s.head
	for i := 0; i < n; i++ {
		items[i] = cell.value
		cell = cell.tail
	}
	for _, v := range items {
		cell = cons(v, cell)
	}
	s.head = cell
	return nil
}

// Values returns the contents of the stack, top first
func (s *ValueStack) Values() []any {
	out := make([]any, 0, s.Size())
	for n := s.head; n != nil; n = n.tail {
		out = append(out, n.value)
	}
	return out
}

func (s *ValueStack) String() string {
	return fmt.Sprintf("ValueStack%v", s.Values())
}

func (s *ValueStack) check(down int) error {
	if s.head == nil {
		return ErrEmptyStack
	}
	if down < 0 || down >= s.Size() {
		return ErrStackIndex
	}
	return nil
}

// rebuild copies the `down` topmost cells on top of whatever `fn`
// returns for the remaining tail.  Cells below the edit point are
// shared with existing snapshots.
func (s *ValueStack) rebuild(down int, fn func(tail *stackNode) *stackNode) *stackNode {
	prefix := make([]any, down)
	cell := s.head
	for i := 0; i < down; i++ {
		prefix[i] = cell.value
		cell = cell.tail
	}
	cell = fn(cell)
	for i := down - 1; i >= 0; i-- {
		cell = cons(prefix[i], cell)
	}
	return cell
}
