package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvikhe/lifegoals/internal/catalog"
	"github.com/nvikhe/lifegoals/internal/game"
)

func (a *App) updateGoalSelection(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if a.goalCursor > 0 {
			a.goalCursor--
		}
	case "down", "j":
		if a.goalCursor < len(a.catalog.Goals)-1 {
			a.goalCursor++
		}
	case " ":
		a.toggleGoal(a.catalog.Goals[a.goalCursor].ID)
	case "enter":
		return a.confirmGoals()
	}
	return nil
}

func (a *App) toggleGoal(id int) {
	for i, picked := range a.pickOrder {
		if picked == id {
			a.pickOrder = append(a.pickOrder[:i], a.pickOrder[i+1:]...)
			a.goalErr = ""
			return
		}
	}
	if len(a.pickOrder) >= game.GoalsPerSession {
		a.goalErr = fmt.Sprintf("Pick at most %d goals — unselect one first", game.GoalsPerSession)
		return
	}
	a.pickOrder = append(a.pickOrder, id)
	a.goalErr = ""
}

func (a *App) confirmGoals() tea.Cmd {
	goals := make([]catalog.Goal, 0, len(a.pickOrder))
	for _, id := range a.pickOrder {
		if g, ok := a.catalog.GoalByID(id); ok {
			goals = append(goals, g)
		}
	}
	if err := a.session.SelectGoals(goals); err != nil {
		a.goalErr = fmt.Sprintf("Pick exactly %d goals to continue", game.GoalsPerSession)
		return nil
	}
	a.goalErr = ""
	a.logbook.Transition(game.ScreenGoalSelection.String(), a.session.Screen().String())
	a.logbook.Info("goals selected: %v", a.pickOrder)
	return a.startCountdown()
}

func (a *App) pickPosition(id int) int {
	for i, picked := range a.pickOrder {
		if picked == id {
			return i + 1
		}
	}
	return 0
}

func (a *App) viewGoalSelection() string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Hi %s! Pick your top %d life goals", a.session.Lead().Name, game.GoalsPerSession)),
		subtleStyle.Render(fmt.Sprintf("%d of %d selected", len(a.pickOrder), game.GoalsPerSession)),
		"",
	}
	for i, goal := range a.catalog.Goals {
		marker := "[ ]"
		if pos := a.pickPosition(goal.ID); pos > 0 {
			marker = fmt.Sprintf("[%d]", pos)
		}
		row := fmt.Sprintf("%s %s — %s", marker, goal.Name, goal.Description)
		if i == a.goalCursor {
			row = selectedStyle.Render("› " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	if a.goalErr != "" {
		lines = append(lines, "", errorStyle.Render(a.goalErr))
	}
	lines = append(lines, hintStyle.Render("space → toggle    enter → continue"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
