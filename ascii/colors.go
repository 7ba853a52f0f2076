// Package ascii gives semantic names to terminal ANSI color codes so
// they can be grouped in themes.
package ascii

import "fmt"

const (
	Reset  = "\033[0m"
	Red    = "\033[1;31m"
	Yellow = "\033[1;33m"
	Green  = "\033[1;32m"
	Cyan   = "\033[1;36m"
	Gray   = "\033[90m" // Bright black, actually
	Bold   = "\033[1m"

	// 256-color palette
	Orange  = "\033[38;5;208m"
	Gray245 = "\033[1;38;5;245m" // Medium gray
	Purple  = "\033[1;38;5;99m"
	Pink    = "\033[1;38;5;127m"
)

// Theme maps the elements printed by parse tree dumps and by the
// command line to colors
type Theme struct {
	// Outcome of a run
	Error   string
	Warning string
	Success string

	// Muted is for secondary text, like value stack dumps
	Muted string

	// Parse tree elements
	Label   string
	Literal string
	Span    string
	Value   string
}

// DefaultTheme is what the tree printer and the command line use
// unless told otherwise
var DefaultTheme = Theme{
	Error:   Red,
	Warning: Yellow,
	Success: Green,

	Muted: Gray,

	Label:   Purple,
	Literal: Gray245,
	Span:    Orange,
	Value:   Pink,
}

// NoTheme prints no colors at all
var NoTheme = Theme{}

// Paint wraps `s` within `color` and a reset.  An empty color leaves
// `s` untouched.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + Reset
}

func Color(color, format string, args ...any) string {
	return Paint(color, fmt.Sprintf(format, args...))
}
