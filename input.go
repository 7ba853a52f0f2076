package pegmatch

import (
	"unicode/utf16"
)

// EOI is what InputBuffer.CharAt returns for any index past the end
// of the input.  No UTF-16 code unit can have this value.
const EOI rune = -1

// InputBuffer is a fully materialized input, indexed by UTF-16 code
// units.  Supplementary code points take two units (a lead and a
// trail surrogate), which is what the unicode matchers expect.
type InputBuffer struct {
	units []uint16
	pos   *posIndex
}

func NewInputBuffer(input string) *InputBuffer {
	units := utf16.Encode([]rune(input))
	return &InputBuffer{units: units, pos: newPosIndex(units)}
}

// Len returns the length of the input in code units
func (b *InputBuffer) Len() int { return len(b.units) }

// CharAt returns the code unit at `index` or EOI when the index is
// out of bounds
func (b *InputBuffer) CharAt(index int) rune {
	if index < 0 || index >= len(b.units) {
		return EOI
	}
	return rune(b.units[index])
}

// Extract returns the input between the `start` and `end` code unit
// offsets.  Bounds are clamped to the input.
func (b *InputBuffer) Extract(start, end int) string {
	start = max(start, 0)
	end = min(end, len(b.units))
	if start >= end {
		return ""
	}
	return string(utf16.Decode(b.units[start:end]))
}

// Position returns the 1-based line and column of `index`
func (b *InputBuffer) Position(index int) Position {
	return b.pos.position(index)
}
