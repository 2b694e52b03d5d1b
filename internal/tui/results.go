package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvikhe/lifegoals/internal/game"
	"github.com/nvikhe/lifegoals/internal/lms"
	"github.com/nvikhe/lifegoals/internal/validate"
)

// Callback slots can be booked up to 30 days out.
const bookingWindowDays = 30

func (a *App) updateScoreResults(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if !a.bookingOpen {
		switch key.String() {
		case "enter", "b":
			a.openBooking()
		case "r":
			a.restart()
		case "q":
			return tea.Quit
		}
		return nil
	}
	switch key.String() {
	case "esc":
		a.bookingOpen = false
		a.bookingErr = ""
		return nil
	case "tab", "down":
		a.focusBookingField((a.bookFocus + 1) % bookFields)
		return nil
	case "shift+tab", "up":
		a.focusBookingField((a.bookFocus + bookFields - 1) % bookFields)
		return nil
	case "enter":
		return a.submitBooking()
	}
	var cmd tea.Cmd
	a.booking[a.bookFocus], cmd = a.booking[a.bookFocus].Update(msg)
	return cmd
}

// openBooking shows the callback form prefilled with the captured lead.
func (a *App) openBooking() {
	lead := a.session.Lead()
	a.booking[bookName].SetValue(lead.Name)
	a.booking[bookPhone].SetValue(lead.Phone)
	a.bookingErr = ""
	a.bookingOpen = true
	a.focusBookingField(bookName)
}

func (a *App) focusBookingField(idx int) {
	a.bookFocus = idx
	for i := range a.booking {
		if i == idx {
			a.booking[i].Focus()
		} else {
			a.booking[i].Blur()
		}
	}
}

// submitBooking validates the form with the same name/phone rules as the
// welcome screen, submits to the LMS, and advances to the thank-you screen
// whatever the LMS outcome.
func (a *App) submitBooking() tea.Cmd {
	if a.session.Submitting() {
		return nil
	}
	name := strings.TrimSpace(a.booking[bookName].Value())
	phone := strings.TrimSpace(a.booking[bookPhone].Value())
	date := strings.TrimSpace(a.booking[bookDate].Value())
	slot := strings.TrimSpace(a.booking[bookTime].Value())

	if err := a.validateBooking(name, phone, date, slot); err != "" {
		a.bookingErr = err
		return nil
	}
	a.bookingErr = ""
	if err := a.session.BeginSubmit(); err != nil {
		return nil
	}
	lead := game.Lead{Name: name, Phone: phone}
	payload := lms.Payload{Name: name, Mobile: phone, Date: date, Time: slot}
	timeout := a.cfg.LMSTimeout()
	client := a.client
	return tea.Batch(a.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return bookingResultMsg{lead: lead, err: client.Submit(ctx, payload)}
	})
}

func (a *App) validateBooking(name, phone, date, slot string) string {
	if !validate.Name(name) {
		return "Invalid name (letters only)"
	}
	if !validate.Phone(phone) {
		return "Invalid mobile number"
	}
	now := a.clock()
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return "Preferred date must be YYYY-MM-DD"
	}
	// Local midnight, not Truncate: truncating works on UTC days and would
	// reject a same-day booking in any zone ahead of UTC.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) || day.After(today.AddDate(0, 0, bookingWindowDays)) {
		return fmt.Sprintf("Preferred date must be within the next %d days", bookingWindowDays)
	}
	if _, err := time.Parse("15:04", slot); err != nil {
		return "Preferred time must be HH:MM"
	}
	return ""
}

func verdict(score float64) string {
	switch {
	case score >= 80:
		return "You are well on track — keep it up!"
	case score >= 50:
		return "A good start, with room to plan further."
	default:
		return "Your goals need a plan. Let's talk."
	}
}

func (a *App) viewScoreResults() string {
	lead := a.session.Lead()
	score := a.session.Score()
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Hi %s! Your life goals score is", lead.Name)),
		"",
		a.gauge.ViewAs(score / game.MaxScore),
		titleStyle.Render(fmt.Sprintf("%.0f / 100", score)),
		subtleStyle.Render(verdict(score)),
		"",
	}
	if a.bookingOpen {
		lines = append(lines, titleStyle.Render("Book a callback with an expert"))
		for i := range a.booking {
			lines = append(lines, a.booking[i].View())
		}
		if a.bookingErr != "" {
			lines = append(lines, errorStyle.Render(a.bookingErr))
		}
		if a.session.Submitting() {
			lines = append(lines, a.spin.View()+subtleStyle.Render(" booking..."))
		}
		lines = append(lines, hintStyle.Render("tab → next field    enter → book    esc → back"))
	} else {
		lines = append(lines, hintStyle.Render("enter → book a callback    r → play again    q → quit"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
