// ABOUTME: Defines lipgloss styles for the report browser: tabs, body border, status bar and lint severities.
// ABOUTME: Provides StyleForSeverity to map diagnostic severities to display styles.
package tui

import (
	"github.com/2389-research/netgraph/dot/validator"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Body border
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Tabs
	TabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	ActiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true).Underline(true).Padding(0, 1)

	// Severities
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

// StyleForSeverity returns the display style for a diagnostic severity.
func StyleForSeverity(sev string) lipgloss.Style {
	switch sev {
	case validator.SeverityError:
		return ErrorStyle
	case validator.SeverityWarning:
		return WarningStyle
	default:
		return InfoStyle
	}
}
