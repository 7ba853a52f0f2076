package pegmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputBuffer(t *testing.T) {
	t.Run("code units and EOI", func(t *testing.T) {
		b := NewInputBuffer("a😀b")
		assert.Equal(t, 4, b.Len())
		assert.Equal(t, 'a', b.CharAt(0))
		assert.Equal(t, rune(0xD83D), b.CharAt(1))
		assert.Equal(t, rune(0xDE00), b.CharAt(2))
		assert.Equal(t, 'b', b.CharAt(3))
		assert.Equal(t, EOI, b.CharAt(4))
		assert.Equal(t, EOI, b.CharAt(-1))
	})

	t.Run("extract joins surrogates and clamps", func(t *testing.T) {
		b := NewInputBuffer("a😀b")
		assert.Equal(t, "😀", b.Extract(1, 3))
		assert.Equal(t, "a😀b", b.Extract(-5, 50))
		assert.Equal(t, "", b.Extract(3, 1))
	})

	t.Run("positions", func(t *testing.T) {
		b := NewInputBuffer("ab\ncd\n\ne")
		tests := []struct {
			index    int
			expected Position
		}{
			{0, Position{1, 1}},
			{2, Position{1, 3}},
			{3, Position{2, 1}},
			{4, Position{2, 2}},
			{6, Position{3, 1}},
			{7, Position{4, 1}},
			{8, Position{4, 2}},
			{100, Position{4, 2}},
		}
		for _, test := range tests {
			assert.Equal(t, test.expected, b.Position(test.index), "index %d", test.index)
		}
		assert.Equal(t, "2:2", b.Position(4).String())
	})
}

func TestRange(t *testing.T) {
	assert.Equal(t, "3", NewRange(3, 3).String())
	assert.Equal(t, "1..4", NewRange(1, 4).String())
	assert.Equal(t, 3, NewRange(1, 4).Len())
	assert.True(t, NewRange(0, 10).Contains(NewRange(2, 8)))
	assert.True(t, NewRange(0, 10).Contains(NewRange(0, 10)))
	assert.False(t, NewRange(5, 15).Contains(NewRange(3, 10)))
	assert.False(t, NewRange(0, 10).Contains(NewRange(10, 20)))
}
