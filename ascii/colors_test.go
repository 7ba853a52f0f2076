package ascii

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaint(t *testing.T) {
	assert.Equal(t, "plain", Paint(NoTheme.Label, "plain"))
	assert.Equal(t, Red+"oops"+Reset, Paint(DefaultTheme.Error, "oops"))
	assert.Equal(t, Orange+"(1..3)"+Reset, Color(DefaultTheme.Span, "(%d..%d)", 1, 3))
}
