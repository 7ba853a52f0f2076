package pegmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueStack(t *testing.T) {
	t.Run("push pop peek", func(t *testing.T) {
		s := NewValueStack()
		assert.True(t, s.IsEmpty())

		s.Push(1)
		s.Push(2)
		assert.Equal(t, 2, s.Size())

		top, err := s.Peek()
		require.NoError(t, err)
		assert.Equal(t, 2, top)

		v, err := s.Pop()
		require.NoError(t, err)
		assert.Equal(t, 2, v)
		v, err = s.Pop()
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		_, err = s.Pop()
		assert.ErrorIs(t, err, ErrEmptyStack)
		_, err = s.Peek()
		assert.ErrorIs(t, err, ErrEmptyStack)
	})

	t.Run("snapshots are not affected by later changes", func(t *testing.T) {
		s := NewValueStack("a", "b")
		snapshot := s.TakeSnapshot()

		s.Push("c")
		require.NoError(t, s.Poke("C"))
		require.NoError(t, s.PokeAt(2, "A"))
		_, err := s.PopAt(1)
		require.NoError(t, err)
		assert.Equal(t, []any{"C", "A"}, s.Values())

		s.RestoreSnapshot(snapshot)
		assert.Equal(t, []any{"b", "a"}, s.Values())
		assert.Equal(t, 2, snapshot.Size())
	})

	t.Run("indexed operations", func(t *testing.T) {
		s := NewValueStack(1, 2, 3)

		require.NoError(t, s.PushAt(1, 10))
		assert.Equal(t, []any{3, 10, 2, 1}, s.Values())

		require.NoError(t, s.PushAt(4, 0))
		assert.Equal(t, []any{3, 10, 2, 1, 0}, s.Values())

		v, err := s.PeekAt(2)
		require.NoError(t, err)
		assert.Equal(t, 2, v)

		v, err = s.PopAt(1)
		require.NoError(t, err)
		assert.Equal(t, 10, v)
		assert.Equal(t, []any{3, 2, 1, 0}, s.Values())

		assert.ErrorIs(t, s.PushAt(9, 1), ErrStackIndex)
		_, err = s.PeekAt(4)
		assert.ErrorIs(t, err, ErrStackIndex)
		_, err = s.PopAt(-1)
		assert.ErrorIs(t, err, ErrStackIndex)
		assert.ErrorIs(t, NewValueStack().Poke(1), ErrEmptyStack)
	})

	t.Run("dup and swaps", func(t *testing.T) {
		s := NewValueStack(1, 2, 3)
		require.NoError(t, s.Swap())
		assert.Equal(t, []any{2, 3, 1}, s.Values())

		require.NoError(t, s.SwapN(3))
		assert.Equal(t, []any{1, 3, 2}, s.Values())

		require.NoError(t, s.Dup())
		assert.Equal(t, []any{1, 1, 3, 2}, s.Values())

		assert.ErrorIs(t, s.SwapN(5), ErrStackIndex)
		assert.ErrorIs(t, NewValueStack().Dup(), ErrEmptyStack)

		s.Clear()
		assert.True(t, s.IsEmpty())
		assert.Equal(t, "ValueStack[]", s.String())
	})
}
