package pegmatch

import (
	"fmt"
	"unicode"
	"unicode/utf16"
)

const (
	minSupplementary = 0x10000

	leadLow, leadHigh   = 0xD800, 0xDBFF
	trailLow, trailHigh = 0xDC00, 0xDFFF
)

func codePointLabel(cp rune) string {
	return fmt.Sprintf("U+%04X", cp)
}

func checkCodePoint(cp rune) error {
	if cp < 0 || cp > unicode.MaxRune {
		return invalidRule(codePointLabel(cp), "not a valid code point")
	}
	return nil
}

// NewUnicodeChar matches the code point `cp`.  Code points of the
// BMP are single code units and get a CharMatcher.
func NewUnicodeChar(cp rune) (Matcher, error) {
	if err := checkCodePoint(cp); err != nil {
		return nil, err
	}
	if cp < minSupplementary {
		return asMatcher(NewCharMatcher(cp))
	}
	lead, trail := utf16.EncodeRune(cp)
	return &SupplementaryCharMatcher{
		matcherBase: newBase(MatcherType_Terminal, codePointLabel(cp), false),
		lead:        lead,
		trail:       trail,
	}, nil
}

// NewUnicodeRange matches a code point between `low` and `high`
// inclusive.  The matcher is picked by where the bounds fall.  Ranges
// crossing into the supplementary planes try the surrogate pair
// first, since the BMP side would also accept a lone lead surrogate.
func NewUnicodeRange(low, high rune) (Matcher, error) {
	if err := checkCodePoint(low); err != nil {
		return nil, err
	}
	if err := checkCodePoint(high); err != nil {
		return nil, err
	}
	if low > high {
		return nil, invalidRule(codePointLabel(low)+".."+codePointLabel(high), "range is inverted")
	}
	if low == high {
		return NewUnicodeChar(low)
	}
	if high < minSupplementary {
		return NewCharRange(low, high)
	}
	if low >= minSupplementary {
		return newSupplementaryRange(low, high), nil
	}
	bmp, err := NewCharRange(low, maxCodeUnit)
	if err != nil {
		return nil, err
	}
	var supp Matcher
	if high == minSupplementary {
		supp, err = NewUnicodeChar(high)
		if err != nil {
			return nil, err
		}
	} else {
		supp = newSupplementaryRange(minSupplementary, high)
	}
	return asMatcher(NewFirstOfMatcher(supp, bmp))
}

func newSupplementaryRange(low, high rune) Matcher {
	label := codePointLabel(low) + ".." + codePointLabel(high)
	lowLead, lowTrail := utf16.EncodeRune(low)
	highLead, highTrail := utf16.EncodeRune(high)
	if lowLead == highLead {
		return &SingleLeadSurrogateRangeMatcher{
			matcherBase: newBase(MatcherType_Terminal, label, false),
			lead:        lowLead,
			lowTrail:    lowTrail,
			highTrail:   highTrail,
		}
	}
	return &SupplementaryRangeMatcher{
		matcherBase: newBase(MatcherType_Terminal, label, false),
		low:         low,
		high:        high,
	}
}

// SupplementaryCharMatcher matches one supplementary code point
// encoded as a surrogate pair
type SupplementaryCharMatcher struct {
	matcherBase
	lead, trail rune
}

func (m *SupplementaryCharMatcher) Match(ctx *MatcherContext) bool {
	input := ctx.Input()
	index := ctx.CurrentIndex()
	if input.CharAt(index) != m.lead || input.CharAt(index+1) != m.trail {
		return false
	}
	ctx.AdvanceIndex(2)
	ctx.CreateNode()
	return true
}

// SingleLeadSurrogateRangeMatcher matches a range of supplementary
// code points sharing the same lead surrogate
type SingleLeadSurrogateRangeMatcher struct {
	matcherBase
	lead                rune
	lowTrail, highTrail rune
}

func (m *SingleLeadSurrogateRangeMatcher) Match(ctx *MatcherContext) bool {
	if ctx.CurrentChar() != m.lead {
		return false
	}
	ctx.AdvanceIndex(1)
	if c := ctx.CurrentChar(); c >= m.lowTrail && c <= m.highTrail {
		ctx.AdvanceIndex(1)
		ctx.CreateNode()
		return true
	}
	ctx.AdvanceIndex(-1)
	return false
}

// SupplementaryRangeMatcher matches a range of supplementary code
// points spanning more than one lead surrogate
type SupplementaryRangeMatcher struct {
	matcherBase
	low, high rune
}

func (m *SupplementaryRangeMatcher) Match(ctx *MatcherContext) bool {
	input := ctx.Input()
	index := ctx.CurrentIndex()
	lead, trail := input.CharAt(index), input.CharAt(index+1)
	if lead < leadLow || lead > leadHigh || trail < trailLow || trail > trailHigh {
		return false
	}
	cp := utf16.DecodeRune(lead, trail)
	if cp < m.low || cp > m.high {
		return false
	}
	ctx.AdvanceIndex(2)
	ctx.CreateNode()
	return true
}
