package term

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// minTruncateWidth is the floor applied to truncation targets so that even
// pathologically narrow terminals leave room for the ellipsis.
const minTruncateWidth = 10

// Strip removes ANSI escape sequences from s. It is used for measurement
// only, never for display.
func Strip(s string) string {
	return ansi.Strip(s)
}

// VisualLen returns the display width of s with ANSI sequences ignored.
func VisualLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate shortens s to at most maxLen visual columns, replacing the tail
// with "..." when it does not fit. maxLen is clamped to a minimum of 10.
func Truncate(s string, maxLen int) string {
	if maxLen < minTruncateWidth {
		maxLen = minTruncateWidth
	}
	if VisualLen(s) <= maxLen {
		return s
	}
	return ansi.Truncate(s, maxLen-3, "") + "..."
}

// Justify composes a full terminal line: left content, padding, right
// content. The padding never drops below minPad, even when the parts do not
// fit within totalWidth.
func Justify(left, right string, totalWidth, minPad int) string {
	pad := totalWidth - VisualLen(left) - VisualLen(right)
	if pad < minPad {
		pad = minPad
	}
	return left + strings.Repeat(" ", pad) + right
}

// EnsureReset ensures that the string ends with a terminal reset sequence.
// This prevents color bleeding from truncated output or output that leaves colors open.
func EnsureReset(s string) string {
	if s == "" {
		return ""
	}
	if strings.HasSuffix(s, "\x1b[0m") {
		return s
	}
	return s + "\x1b[0m"
}
