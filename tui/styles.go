// ABOUTME: Defines lipgloss style constants for card boxes, titles, the status bar, and the event log.
// ABOUTME: Card-specific colors come from each card's Config; these are the shared frame styles.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Card frames
	CardBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	// Body text fallback when a card sets no color
	CardBodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	// Placeholder for empty grid cells
	EmptyCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	// Event log overlay
	LogBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
	LogTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	LogTimestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	LogEventStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	LogErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	LogSkipStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)
