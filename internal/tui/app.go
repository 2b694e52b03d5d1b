// internal/tui/app.go
//
// The terminal UI for the readiness quiz, built on bubbletea's
// Model/Update/View loop. The App owns presentation state only; every
// game mutation goes through the *game.Session operations, and timers are
// tea.Tick commands whose messages carry staleness guards so a tick armed
// for an earlier screen or session is dropped on arrival.

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvikhe/lifegoals/internal/catalog"
	"github.com/nvikhe/lifegoals/internal/config"
	"github.com/nvikhe/lifegoals/internal/game"
	"github.com/nvikhe/lifegoals/internal/lms"
	"github.com/nvikhe/lifegoals/internal/logbook"
	"github.com/nvikhe/lifegoals/internal/validate"
)

// leadSubmitter is the slice of the LMS client the UI needs. Tests swap in
// a stub.
type leadSubmitter interface {
	Submit(ctx context.Context, p lms.Payload) error
}

// AppOption customizes App construction for tests.
type AppOption func(*App)

// WithClock overrides the wall clock used for callback slots and deadlines.
func WithClock(clock func() time.Time) AppOption {
	return func(a *App) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// Booking form field order.
const (
	bookName = iota
	bookPhone
	bookDate
	bookTime
	bookFields
)

// Timer messages. Each carries enough identity to detect staleness: the
// countdown rechecks the screen, the question tick its position, the
// session deadline its epoch.
type countdownTickMsg struct{}

type questionTickMsg struct {
	goalIndex     int
	questionIndex int
}

type sessionExpiredMsg struct{ epoch int }

// Submission results delivered back into the event loop.
type leadResultMsg struct {
	lead game.Lead
	err  error
}

type bookingResultMsg struct {
	lead game.Lead
	err  error
}

// App is the bubbletea model for the whole quiz.
type App struct {
	session *game.Session
	cfg     *config.Config
	catalog *catalog.Catalog
	client  leadSubmitter
	logbook *logbook.Logbook
	clock   func() time.Time

	width  int
	height int

	// Welcome form.
	nameInput    textinput.Model
	phoneInput   textinput.Model
	welcomeFocus int
	welcomeErr   string
	toast        string
	spin         spinner.Model

	// Goal selection.
	goalCursor int
	pickOrder  []int // goal ids in selection order
	goalErr    string

	// Countdown.
	countdown int

	// Assessment.
	questionLeft int
	feedback     game.Feedback

	// Results and booking.
	gauge       progress.Model
	booking     [bookFields]textinput.Model
	bookingOpen bool
	bookFocus   int
	bookingErr  string
}

// NewApp wires the quiz UI. client is the LMS submission client; lb may be
// nil to discard logging.
func NewApp(cfg *config.Config, cat *catalog.Catalog, client leadSubmitter, lb *logbook.Logbook, opts ...AppOption) *App {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 40
	name.Focus()

	phone := textinput.New()
	phone.Placeholder = "10-digit mobile number"
	phone.CharLimit = 10

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	gauge := progress.New(progress.WithDefaultGradient())

	app := &App{
		cfg:     cfg,
		catalog: cat,
		client:  client,
		logbook: lb,
		clock:   time.Now,

		nameInput:  name,
		phoneInput: phone,
		spin:       spin,
		gauge:      gauge,
	}
	app.booking = newBookingInputs()
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.session = game.New(app.clock)
	return app
}

func newBookingInputs() [bookFields]textinput.Model {
	var inputs [bookFields]textinput.Model
	placeholders := [bookFields]string{"Name", "Mobile number", "Date (YYYY-MM-DD)", "Time (HH:MM)"}
	limits := [bookFields]int{40, 10, 10, 5}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		inputs[i] = ti
	}
	return inputs
}

// Session exposes the game state for tests and read-only callers.
func (a *App) Session() *game.Session { return a.session }

// Init starts the cursor blink.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes messages: global keys first, then timer and submission
// messages, then per-screen input handling.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.gauge.Width = clamp(msg.Width-20, 20, 60)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case countdownTickMsg:
		return a, a.handleCountdownTick()

	case questionTickMsg:
		return a, a.handleQuestionTick(msg)

	case sessionExpiredMsg:
		if a.session.Expire(msg.epoch) {
			a.logbook.Warn("session budget exhausted after %d answers", len(a.session.Responses()))
			a.logbook.Transition(game.ScreenAssessment.String(), a.session.Screen().String())
		}
		return a, nil

	case leadResultMsg:
		return a, a.handleLeadResult(msg)

	case bookingResultMsg:
		return a, a.handleBookingResult(msg)

	case spinner.TickMsg:
		if !a.session.Submitting() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	switch a.session.Screen() {
	case game.ScreenWelcome:
		return a, a.updateWelcome(msg)
	case game.ScreenGoalSelection:
		return a, a.updateGoalSelection(msg)
	case game.ScreenAssessment:
		return a, a.updateAssessment(msg)
	case game.ScreenScoreResults:
		return a, a.updateScoreResults(msg)
	case game.ScreenThankYou:
		return a, a.updateThankYou(msg)
	}
	return a, nil
}

// View renders the current screen inside the shared frame.
func (a *App) View() string {
	var content string
	switch a.session.Screen() {
	case game.ScreenWelcome:
		content = a.viewWelcome()
	case game.ScreenGoalSelection:
		content = a.viewGoalSelection()
	case game.ScreenCountdown:
		content = a.viewCountdown()
	case game.ScreenAssessment:
		content = a.viewAssessment()
	case game.ScreenScoreResults:
		content = a.viewScoreResults()
	case game.ScreenThankYou:
		content = a.viewThankYou()
	}
	return a.frame(content)
}

// --- countdown and assessment timers ---

func (a *App) startCountdown() tea.Cmd {
	a.countdown = a.cfg.File.Quiz.CountdownFrom
	return a.scheduleCountdownTick()
}

func (a *App) scheduleCountdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return countdownTickMsg{} })
}

func (a *App) handleCountdownTick() tea.Cmd {
	if a.session.Screen() != game.ScreenCountdown {
		return nil
	}
	a.countdown--
	if a.countdown > 0 {
		return a.scheduleCountdownTick()
	}
	return a.beginAssessment()
}

// beginAssessment arms both timers: the per-question countdown and the
// single-shot session deadline tagged with the epoch returned by the
// session.
func (a *App) beginAssessment() tea.Cmd {
	epoch, deadline := a.session.BeginAssessment(a.cfg.SessionBudget())
	a.questionLeft = int(a.cfg.QuestionTimeout().Seconds())
	a.feedback = game.FeedbackNone
	a.logbook.Transition(game.ScreenCountdown.String(), game.ScreenAssessment.String())
	a.logbook.Info("session deadline %s", deadline.Format(time.RFC3339))
	budget := a.cfg.SessionBudget()
	return tea.Batch(
		a.scheduleQuestionTick(),
		tea.Tick(budget, func(time.Time) tea.Msg { return sessionExpiredMsg{epoch: epoch} }),
	)
}

func (a *App) scheduleQuestionTick() tea.Cmd {
	pos := questionTickMsg{goalIndex: a.session.GoalIndex(), questionIndex: a.session.QuestionIndex()}
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return pos })
}

func (a *App) handleQuestionTick(msg questionTickMsg) tea.Cmd {
	if a.session.Screen() != game.ScreenAssessment {
		return nil
	}
	if msg.goalIndex != a.session.GoalIndex() || msg.questionIndex != a.session.QuestionIndex() {
		// Tick armed for a question that was already answered.
		return nil
	}
	a.questionLeft--
	if a.questionLeft > 0 {
		return a.scheduleQuestionTick()
	}
	// Answer window exhausted: processed exactly like an explicit NO.
	return a.answer(false)
}

// answer advances the game and rearms the question timer unless the
// assessment just finished.
func (a *App) answer(correct bool) tea.Cmd {
	outcome := a.session.Advance(correct)
	a.feedback = outcome.Feedback
	if outcome.Finished {
		a.logbook.Transition(game.ScreenAssessment.String(), a.session.Screen().String())
		a.logbook.Info("final score %.2f after %d answers", a.session.Score(), len(a.session.Responses()))
		return nil
	}
	a.questionLeft = int(a.cfg.QuestionTimeout().Seconds())
	return a.scheduleQuestionTick()
}

// --- lead submission ---

// submitLead runs the welcome-screen flow: derive the default callback
// slot, post the lead, and deliver the outcome back into the loop.
func (a *App) submitLead(lead game.Lead) tea.Cmd {
	slot := validate.CallbackSlot(a.clock())
	payload := lms.Payload{
		Name:    lead.Name,
		Mobile:  lead.Phone,
		Date:    slot.Date,
		Time:    slot.Time,
		Summary: fmt.Sprintf("Welcome Screen Lead - Preferred Callback: %s %s", slot.Date, slot.Time),
	}
	timeout := a.cfg.LMSTimeout()
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return leadResultMsg{lead: lead, err: client.Submit(ctx, payload)}
	}
}

func (a *App) handleLeadResult(msg leadResultMsg) tea.Cmd {
	a.session.FinishSubmit(msg.lead, msg.err)
	if msg.err != nil {
		a.toast = submitErrorCopy
		a.logbook.Error("lead submission failed: %v", msg.err)
		return nil
	}
	a.toast = ""
	a.logbook.Info("lead accepted for %s", msg.lead.Phone)
	return a.startGame(msg.lead)
}

// startGame begins a fresh game for a confirmed lead.
func (a *App) startGame(lead game.Lead) tea.Cmd {
	a.session.ConfirmLeadAndStart(lead)
	a.pickOrder = nil
	a.goalCursor = 0
	a.goalErr = ""
	a.logbook.Transition(game.ScreenWelcome.String(), a.session.Screen().String())
	return nil
}

func (a *App) handleBookingResult(msg bookingResultMsg) tea.Cmd {
	a.session.EndSubmit()
	if msg.err != nil {
		// Non-fatal: a flaky backend must not strand the player.
		a.logbook.Warn("booking submission failed: %v", msg.err)
	} else {
		a.logbook.Info("booking accepted for %s", msg.lead.Phone)
	}
	from := a.session.Screen()
	a.session.BookSlot(msg.lead.Name)
	a.bookingOpen = false
	a.logbook.Transition(from.String(), a.session.Screen().String())
	return nil
}

// restart resets the session and all screen-local state.
func (a *App) restart() {
	from := a.session.Screen()
	a.session.Restart()
	a.nameInput.SetValue("")
	a.phoneInput.SetValue("")
	a.nameInput.Focus()
	a.phoneInput.Blur()
	a.welcomeFocus = 0
	a.welcomeErr = ""
	a.toast = ""
	a.pickOrder = nil
	a.goalCursor = 0
	a.goalErr = ""
	a.countdown = 0
	a.questionLeft = 0
	a.feedback = game.FeedbackNone
	a.booking = newBookingInputs()
	a.bookingOpen = false
	a.bookFocus = 0
	a.bookingErr = ""
	a.logbook.Transition(from.String(), a.session.Screen().String())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
