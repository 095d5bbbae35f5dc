// Package bar renders fixed-width progress bars and drives the standalone
// linear loader.
package bar

import (
	"math"
	"strings"
)

// Build returns a bracketed progress bar for current of total, width columns
// wide between the brackets. The rendered string is always exactly width+2
// visual characters.
func Build(current, total, width int) string {
	if width < 1 {
		width = 1
	}
	if total <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}
	filled := int(math.Round(float64(current) / float64(total) * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	var b strings.Builder
	b.WriteString("[")
	if filled > 0 {
		b.WriteString(strings.Repeat("=", filled-1))
		b.WriteString(">")
	}
	b.WriteString(strings.Repeat(" ", width-filled))
	b.WriteString("]")
	return b.String()
}

// Percentage returns round(current/total*100). A zero total counts as
// complete.
func Percentage(current, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(current) / float64(total) * 100))
}
