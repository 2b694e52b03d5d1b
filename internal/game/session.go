// internal/game/session.go
//
// The session state machine. One Session per terminal, strictly
// forward/reset: WELCOME -> GOAL_SELECTION -> COUNTDOWN -> ASSESSMENT ->
// SCORE_RESULTS -> THANK_YOU, with restart back to WELCOME from the two
// final screens. All session fields are mutated through the methods here;
// the renderer only reads snapshots and invokes operations.

package game

import (
	"errors"
	"time"

	"github.com/nvikhe/lifegoals/internal/catalog"
)

// Screen is the player's current position in the flow.
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenGoalSelection
	ScreenCountdown
	ScreenAssessment
	ScreenScoreResults
	ScreenThankYou
)

func (s Screen) String() string {
	switch s {
	case ScreenWelcome:
		return "welcome"
	case ScreenGoalSelection:
		return "goal_selection"
	case ScreenCountdown:
		return "countdown"
	case ScreenAssessment:
		return "assessment"
	case ScreenScoreResults:
		return "score_results"
	case ScreenThankYou:
		return "thank_you"
	}
	return "unknown"
}

// GoalsPerSession is how many goals a player must pick before the
// assessment can start.
const GoalsPerSession = 3

// MaxScore is the ceiling of the readiness score.
const MaxScore = 100.0

var (
	// ErrSelectionCount rejects goal selections that are not exactly three.
	ErrSelectionCount = errors.New("game: exactly three goals required")

	// ErrSubmitInFlight guards against overlapping lead submissions.
	ErrSubmitInFlight = errors.New("game: a submission is already in flight")
)

// Lead is the captured player identity destined for the LMS.
type Lead struct {
	Name  string
	Phone string
}

// Response records one answered (or timed-out) question.
type Response struct {
	GoalID        int
	GoalName      string
	QuestionIndex int
	Answer        bool
}

// Feedback tells the renderer which side effect to play for an answer.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

// Outcome is the result of advancing past one question.
type Outcome struct {
	Feedback Feedback
	// Finished is true when the last question of the last goal was just
	// answered and the session moved to the score screen.
	Finished bool
}

// Session owns every field of the running game. Zero concurrency: it is
// mutated only from the UI event loop.
type Session struct {
	screen        Screen
	selectedGoals []catalog.Goal
	goalIndex     int
	questionIndex int
	responses     []Response
	score         float64

	lead               Lead
	lastSubmittedPhone string
	submitting         bool

	// epoch invalidates scheduled timers: a timer armed under an older
	// epoch must be ignored when it fires. Bumped whenever the session
	// leaves ASSESSMENT or resets.
	epoch    int
	deadline time.Time

	now func() time.Time
}

// New returns a fresh session on the welcome screen. clock may be nil, in
// which case time.Now is used; tests inject a fixed clock.
func New(clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{now: clock}
}

// ConfirmLeadAndStart records a confirmed lead and begins a new game.
// "Confirmed" means the lead either passed an LMS submission or matches
// the last phone the LMS already accepted; merging confirmation and start
// into one operation keeps the ordering out of call-site discipline.
func (s *Session) ConfirmLeadAndStart(lead Lead) {
	if lead.Name != "" {
		s.lead.Name = lead.Name
	}
	if lead.Phone != "" {
		s.lead.Phone = lead.Phone
	}
	s.selectedGoals = nil
	s.goalIndex = 0
	s.questionIndex = 0
	s.responses = nil
	s.score = 0
	s.screen = ScreenGoalSelection
}

// SelectGoals stores the chosen goals in selection order and moves to the
// countdown. Anything but exactly three goals is rejected.
func (s *Session) SelectGoals(goals []catalog.Goal) error {
	if len(goals) != GoalsPerSession {
		return ErrSelectionCount
	}
	s.selectedGoals = append([]catalog.Goal(nil), goals...)
	s.goalIndex = 0
	s.questionIndex = 0
	s.screen = ScreenCountdown
	return nil
}

// BeginAssessment moves to the assessment and arms the session deadline.
// It returns the timer epoch and the deadline; the scheduler must hand the
// epoch back to Expire so a stale timer from an earlier session is
// harmless. Any previously armed timer is invalidated here.
func (s *Session) BeginAssessment(budget time.Duration) (epoch int, deadline time.Time) {
	s.screen = ScreenAssessment
	s.epoch++
	s.deadline = s.now().Add(budget)
	return s.epoch, s.deadline
}

// Advance records the answer for the current question and moves the
// position forward. A question timeout is fed through here as
// correct=false, identical to an explicit NO. The score only ever grows:
// wrong answers score zero, they never deduct.
func (s *Session) Advance(correct bool) Outcome {
	if s.screen != ScreenAssessment || s.goalIndex >= len(s.selectedGoals) {
		return Outcome{}
	}
	goal := s.selectedGoals[s.goalIndex]
	total := len(s.selectedGoals)
	if correct {
		s.score += MaxScore / float64(total*catalog.QuestionsPerGoal)
	}
	s.responses = append(s.responses, Response{
		GoalID:        goal.ID,
		GoalName:      goal.Name,
		QuestionIndex: s.questionIndex,
		Answer:        correct,
	})

	feedback := FeedbackIncorrect
	if correct {
		feedback = FeedbackCorrect
	}

	switch {
	case s.questionIndex < catalog.QuestionsPerGoal-1:
		s.questionIndex++
	case s.goalIndex < total-1:
		s.goalIndex++
		s.questionIndex = 0
	default:
		s.finishAssessment()
		return Outcome{Feedback: feedback, Finished: true}
	}
	return Outcome{Feedback: feedback}
}

// Expire handles the session deadline firing. Only honored when the epoch
// matches the currently armed timer and the player is still mid-assessment;
// everything else is a stale callback and is dropped. No responses are
// back-filled for unanswered questions: the score stays a best-effort
// reflection of what was actually answered.
func (s *Session) Expire(epoch int) bool {
	if epoch != s.epoch || s.screen != ScreenAssessment {
		return false
	}
	s.finishAssessment()
	return true
}

func (s *Session) finishAssessment() {
	s.epoch++
	s.deadline = time.Time{}
	s.screen = ScreenScoreResults
}

// BeginSubmit marks a lead submission as in flight. The renderer disables
// its submit affordance while this holds, so at most one call is pending.
func (s *Session) BeginSubmit() error {
	if s.submitting {
		return ErrSubmitInFlight
	}
	s.submitting = true
	return nil
}

// FinishSubmit clears the in-flight flag and, on success, records the lead
// and the phone number the LMS accepted so a repeat submission of the same
// number can be skipped.
func (s *Session) FinishSubmit(lead Lead, err error) {
	s.submitting = false
	if err != nil {
		return
	}
	s.lead = lead
	s.lastSubmittedPhone = lead.Phone
}

// EndSubmit clears the in-flight flag without recording anything. The
// booking flow ends its submissions here: only a welcome-lead acceptance
// feeds the duplicate-submission suppression, so a phone confirmed via a
// booking is still submitted as a fresh welcome lead later.
func (s *Session) EndSubmit() {
	s.submitting = false
}

// BookSlot completes the booking flow. The caller submits to the LMS first
// and calls this whatever the outcome; a flaky backend must not strand the
// player before the thank-you screen.
func (s *Session) BookSlot(name string) {
	if name != "" {
		s.lead.Name = name
	}
	s.screen = ScreenThankYou
}

// Restart resets every session field to the freshly-initialized state and
// orphans any pending timer. Idempotent.
func (s *Session) Restart() {
	s.screen = ScreenWelcome
	s.selectedGoals = nil
	s.goalIndex = 0
	s.questionIndex = 0
	s.responses = nil
	s.score = 0
	s.lead = Lead{}
	s.epoch++
	s.deadline = time.Time{}
}

// Screen returns the current screen.
func (s *Session) Screen() Screen { return s.screen }

// SelectedGoals returns the selection in order. The slice is a copy.
func (s *Session) SelectedGoals() []catalog.Goal {
	return append([]catalog.Goal(nil), s.selectedGoals...)
}

// CurrentGoal returns the goal under assessment.
func (s *Session) CurrentGoal() (catalog.Goal, bool) {
	if s.goalIndex >= len(s.selectedGoals) {
		return catalog.Goal{}, false
	}
	return s.selectedGoals[s.goalIndex], true
}

// GoalIndex is the index of the goal under assessment.
func (s *Session) GoalIndex() int { return s.goalIndex }

// QuestionIndex is the index of the question within the current goal.
func (s *Session) QuestionIndex() int { return s.questionIndex }

// Responses returns the recorded answers in order. The slice is a copy.
func (s *Session) Responses() []Response {
	return append([]Response(nil), s.responses...)
}

// Score is the readiness score in [0,100].
func (s *Session) Score() float64 { return s.score }

// Lead returns the captured player identity.
func (s *Session) Lead() Lead { return s.lead }

// LastSubmittedPhone is the phone number the LMS last accepted.
func (s *Session) LastSubmittedPhone() string { return s.lastSubmittedPhone }

// Submitting reports whether a lead submission is in flight.
func (s *Session) Submitting() bool { return s.submitting }

// Deadline is the armed session deadline, zero outside the assessment.
func (s *Session) Deadline() time.Time { return s.deadline }

// Remaining is the time left on the session clock, never negative.
func (s *Session) Remaining() time.Duration {
	if s.deadline.IsZero() {
		return 0
	}
	left := s.deadline.Sub(s.now())
	if left < 0 {
		return 0
	}
	return left
}
