package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// User-facing copy for any submission failure. The LMS error detail goes to
// the logbook, never to the player.
const submitErrorCopy = "Something went wrong. Please try again."

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8C00")).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)

	goodStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#22C55E"))

	badStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8C00")).
			Padding(1, 4)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	urgentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))
)

// frame wraps screen content with the shared header and the toast footer.
func (a *App) frame(content string) string {
	sections := []string{
		headerStyle.Render("◈ LIFE GOALS READINESS QUIZ"),
		panelStyle.Render(content),
	}
	if a.toast != "" {
		sections = append(sections, errorStyle.Render(a.toast))
	}
	return strings.Join(sections, "\n")
}
