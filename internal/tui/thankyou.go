package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) updateThankYou(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "r":
		a.restart()
	case "q":
		return tea.Quit
	}
	return nil
}

func (a *App) viewThankYou() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Thank you! Your callback is booked."),
		subtleStyle.Render("One of our experts will reach out at your preferred time."),
		"",
		subtleStyle.Render("Helpline: "+a.cfg.File.Helpline),
		hintStyle.Render("r → play again    q → quit"),
	)
}
