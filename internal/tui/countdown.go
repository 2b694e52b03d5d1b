package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) viewCountdown() string {
	number := countdownStyle.Render(fmt.Sprintf("%d", a.countdown))
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Get ready!"),
		"",
		number,
	)
}
