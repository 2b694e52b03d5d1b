package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvikhe/lifegoals/internal/game"
	"github.com/nvikhe/lifegoals/internal/validate"
)

func (a *App) updateWelcome(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			a.focusWelcomeField((a.welcomeFocus + 1) % 2)
			return nil
		case "shift+tab", "up":
			a.focusWelcomeField((a.welcomeFocus + 1) % 2)
			return nil
		case "enter":
			return a.submitWelcome()
		}
	}
	var cmd tea.Cmd
	if a.welcomeFocus == 0 {
		a.nameInput, cmd = a.nameInput.Update(msg)
	} else {
		a.phoneInput, cmd = a.phoneInput.Update(msg)
	}
	return cmd
}

func (a *App) focusWelcomeField(idx int) {
	a.welcomeFocus = idx
	if idx == 0 {
		a.nameInput.Focus()
		a.phoneInput.Blur()
	} else {
		a.phoneInput.Focus()
		a.nameInput.Blur()
	}
}

// submitWelcome validates the form and runs the lead flow. The game only
// starts once the LMS has accepted the lead; a phone the LMS already
// confirmed this session skips the duplicate call.
func (a *App) submitWelcome() tea.Cmd {
	if a.session.Submitting() {
		return nil
	}
	name := strings.TrimSpace(a.nameInput.Value())
	phone := strings.TrimSpace(a.phoneInput.Value())
	switch {
	case !validate.Name(name):
		a.welcomeErr = "Please enter a valid name (letters only)"
		return nil
	case !validate.Phone(phone):
		a.welcomeErr = "Please enter a valid 10-digit mobile number (starts with 6-9)"
		return nil
	}
	a.welcomeErr = ""
	lead := game.Lead{Name: name, Phone: phone}
	if phone == a.session.LastSubmittedPhone() {
		return a.startGame(lead)
	}
	if err := a.session.BeginSubmit(); err != nil {
		return nil
	}
	return tea.Batch(a.spin.Tick, a.submitLead(lead))
}

func (a *App) viewWelcome() string {
	lines := []string{
		titleStyle.Render("How ready are you for your life goals?"),
		subtleStyle.Render("Pick three goals, answer nine quick questions, see your readiness score."),
		"",
		a.nameInput.View(),
		a.phoneInput.View(),
	}
	if a.welcomeErr != "" {
		lines = append(lines, errorStyle.Render(a.welcomeErr))
	}
	if a.session.Submitting() {
		lines = append(lines, a.spin.View()+subtleStyle.Render(" submitting..."))
	}
	lines = append(lines, hintStyle.Render("tab → switch field    enter → start    ctrl+c → quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
