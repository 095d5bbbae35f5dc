package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kwade/glint/results"
)

// Status icons for finalized group lines.
const (
	iconPassed  = "✔"
	iconFailed  = "✗"
	iconPending = "⊘"
)

type styles struct {
	pass     lipgloss.Style
	fail     lipgloss.Style
	pend     lipgloss.Style
	group    lipgloss.Style
	label    lipgloss.Style
	fraction lipgloss.Style
}

func newStyles() styles {
	return styles{
		pass:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),  // green
		fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),  // red
		pend:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),  // yellow
		group:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),  // cyan
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")), // bright white
		fraction: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),  // cyan
	}
}

// plainStyles renders everything uncolored, for -no-color output.
func plainStyles() styles {
	s := lipgloss.NewStyle()
	return styles{pass: s, fail: s, pend: s, group: s, label: s, fraction: s}
}

func (st styles) forStatus(status results.Status) (string, lipgloss.Style) {
	switch status {
	case results.StatusFailed:
		return iconFailed, st.fail
	case results.StatusPending:
		return iconPending, st.pend
	default:
		return iconPassed, st.pass
	}
}
