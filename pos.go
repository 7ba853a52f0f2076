package pegmatch

import (
	"fmt"
	"sort"
)

//  ---- Range ----

// Range represents a half-open span of code units within the input
type Range struct{ Start, End int }

func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

func (r Range) Len() int { return r.End - r.Start }

func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

//  ---- Position ----

// Position is a human oriented location within the input.  Both
// fields are 1-based and columns count code units.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ---- Position index ----

type posIndex struct {
	// lineStart holds 0-based offsets of each line start
	lineStart []int
	size      int
}

func newPosIndex(units []uint16) *posIndex {
	// Always include line 1 starting at offset 0.
	lineStart := make([]int, 1, 64)
	for i, u := range units {
		if u == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &posIndex{lineStart: lineStart, size: len(units)}
}

func (p *posIndex) position(index int) Position {
	index = max(0, min(index, p.size))
	// last line whose start is <= index
	line := sort.Search(len(p.lineStart), func(i int) bool {
		return p.lineStart[i] > index
	}) - 1
	return Position{Line: line + 1, Column: index - p.lineStart[line] + 1}
}
