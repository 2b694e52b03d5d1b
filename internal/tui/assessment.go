package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvikhe/lifegoals/internal/catalog"
	"github.com/nvikhe/lifegoals/internal/game"
)

func (a *App) updateAssessment(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "y", "Y":
		return a.answer(true)
	case "n", "N":
		return a.answer(false)
	}
	return nil
}

func (a *App) viewAssessment() string {
	goal, ok := a.session.CurrentGoal()
	if !ok {
		return subtleStyle.Render("Loading...")
	}
	answered := a.session.GoalIndex()*catalog.QuestionsPerGoal + a.session.QuestionIndex()
	totalQuestions := game.GoalsPerSession * catalog.QuestionsPerGoal

	timer := fmt.Sprintf("%2ds", a.questionLeft)
	if a.questionLeft <= 10 {
		timer = urgentStyle.Render(timer)
	}
	remaining := a.session.Remaining().Round(time.Second)

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		subtleStyle.Render(fmt.Sprintf("GOAL %d/%d · QUESTION %d/%d",
			a.session.GoalIndex()+1, game.GoalsPerSession,
			a.session.QuestionIndex()+1, catalog.QuestionsPerGoal)),
		subtleStyle.Render(fmt.Sprintf("    %s on this question · %s left overall", timer, remaining)),
	)

	lines := []string{
		header,
		"",
		titleStyle.Render(goal.Name),
		"",
		a.catalog.QuestionFor(a.session.QuestionIndex(), goal),
		"",
	}
	switch a.feedback {
	case game.FeedbackCorrect:
		lines = append(lines, goodStyle.Render("✔ nice"))
	case game.FeedbackIncorrect:
		lines = append(lines, badStyle.Render("✘"))
	default:
		lines = append(lines, "")
	}
	lines = append(lines,
		hintStyle.Render(fmt.Sprintf("y → YES    n → NO    (%d/%d answered)", answered, totalQuestions)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
