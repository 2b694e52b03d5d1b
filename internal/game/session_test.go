package game

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/nvikhe/lifegoals/internal/catalog"
)

func threeGoals() []catalog.Goal {
	return []catalog.Goal{
		{ID: 1, Name: "Child's Education"},
		{ID: 2, Name: "Retirement Planning"},
		{ID: 3, Name: "Dream House Purchase"},
	}
}

func startedSession(t *testing.T) *Session {
	t.Helper()
	s := New(nil)
	s.ConfirmLeadAndStart(Lead{Name: "Asha", Phone: "9876543210"})
	if err := s.SelectGoals(threeGoals()); err != nil {
		t.Fatalf("select goals: %v", err)
	}
	return s
}

func TestSelectGoalsRequiresExactlyThree(t *testing.T) {
	s := New(nil)
	s.ConfirmLeadAndStart(Lead{})
	for _, count := range []int{0, 1, 2, 4} {
		goals := make([]catalog.Goal, count)
		if err := s.SelectGoals(goals); !errors.Is(err, ErrSelectionCount) {
			t.Fatalf("SelectGoals with %d goals: got %v, want ErrSelectionCount", count, err)
		}
	}
	if s.Screen() != ScreenGoalSelection {
		t.Fatalf("rejected selection must not change screen, got %s", s.Screen())
	}
}

func TestFullRunScoresExampleSequence(t *testing.T) {
	s := startedSession(t)
	s.BeginAssessment(5 * time.Minute)

	answers := []bool{true, true, false, true, false, false, true, true, true}
	var last Outcome
	for i, correct := range answers {
		before := len(s.Responses())
		last = s.Advance(correct)
		if got := len(s.Responses()); got != before+1 {
			t.Fatalf("answer %d: responses grew %d -> %d, want +1", i, before, got)
		}
	}
	if !last.Finished {
		t.Fatalf("ninth answer must finish the assessment")
	}
	if s.Screen() != ScreenScoreResults {
		t.Fatalf("expected score screen, got %s", s.Screen())
	}
	want := 6 * 100.0 / 9
	if math.Abs(s.Score()-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", s.Score(), want)
	}
	if !s.Deadline().IsZero() {
		t.Fatalf("finishing must disarm the session deadline")
	}
}

func TestScoreIsMonotoneAndBounded(t *testing.T) {
	s := startedSession(t)
	s.BeginAssessment(5 * time.Minute)
	prev := s.Score()
	for i := 0; i < 9; i++ {
		s.Advance(true)
		if s.Score() < prev {
			t.Fatalf("score decreased: %v -> %v", prev, s.Score())
		}
		prev = s.Score()
	}
	if s.Score() > MaxScore+1e-9 {
		t.Fatalf("score %v exceeds %v", s.Score(), MaxScore)
	}
	if math.Abs(s.Score()-MaxScore) > 1e-9 {
		t.Fatalf("all-correct run should score %v, got %v", MaxScore, s.Score())
	}
}

func TestResponsesTrackPositionMidAssessment(t *testing.T) {
	s := startedSession(t)
	s.BeginAssessment(5 * time.Minute)
	for i := 0; i < 5; i++ {
		s.Advance(i%2 == 0)
		want := s.GoalIndex()*catalog.QuestionsPerGoal + s.QuestionIndex()
		if got := len(s.Responses()); got != want {
			t.Fatalf("after %d answers: responses=%d, goalIndex*3+questionIndex=%d", i+1, got, want)
		}
	}
}

func TestTimeoutAnswerRecordsWrong(t *testing.T) {
	s := startedSession(t)
	s.BeginAssessment(5 * time.Minute)
	out := s.Advance(false)
	if out.Feedback != FeedbackIncorrect {
		t.Fatalf("timeout must produce incorrect feedback, got %v", out.Feedback)
	}
	resp := s.Responses()
	if len(resp) != 1 || resp[0].Answer {
		t.Fatalf("timeout must record a negative answer, got %+v", resp)
	}
	if s.Score() != 0 {
		t.Fatalf("wrong answer must not change the score, got %v", s.Score())
	}
}

func TestExpireMidAssessmentKeepsPartialScore(t *testing.T) {
	s := startedSession(t)
	epoch, _ := s.BeginAssessment(5 * time.Minute)
	for i := 0; i < 5; i++ {
		s.Advance(true)
	}
	if !s.Expire(epoch) {
		t.Fatalf("matching epoch must expire the session")
	}
	if s.Screen() != ScreenScoreResults {
		t.Fatalf("expiry must land on the score screen, got %s", s.Screen())
	}
	if got := len(s.Responses()); got != 5 {
		t.Fatalf("expiry must not back-fill responses: got %d, want 5", got)
	}
	want := 5 * 100.0 / 9
	if math.Abs(s.Score()-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", s.Score(), want)
	}
}

func TestExpireIgnoresStaleEpoch(t *testing.T) {
	s := startedSession(t)
	stale, _ := s.BeginAssessment(5 * time.Minute)
	s.Restart()
	if s.Expire(stale) {
		t.Fatalf("stale timer must not fire into a reset session")
	}
	if s.Screen() != ScreenWelcome {
		t.Fatalf("screen changed by stale expiry: %s", s.Screen())
	}

	s.ConfirmLeadAndStart(Lead{Name: "Asha", Phone: "9876543210"})
	if err := s.SelectGoals(threeGoals()); err != nil {
		t.Fatalf("select goals: %v", err)
	}
	fresh, _ := s.BeginAssessment(5 * time.Minute)
	if fresh == stale {
		t.Fatalf("re-arming must produce a new epoch")
	}
	if s.Expire(stale) {
		t.Fatalf("old epoch must stay dead after a new session arms")
	}
	if !s.Expire(fresh) {
		t.Fatalf("current epoch must expire the fresh session")
	}
}

func TestExpireAfterFinishIsNoop(t *testing.T) {
	s := startedSession(t)
	epoch, _ := s.BeginAssessment(5 * time.Minute)
	for i := 0; i < 9; i++ {
		s.Advance(true)
	}
	if s.Expire(epoch) {
		t.Fatalf("completion must disarm the deadline before it fires")
	}
}

func TestRestartResetsEverythingAndIsIdempotent(t *testing.T) {
	s := startedSession(t)
	s.BeginAssessment(5 * time.Minute)
	s.Advance(true)
	if err := s.BeginSubmit(); err != nil {
		t.Fatalf("begin submit: %v", err)
	}
	s.FinishSubmit(Lead{Name: "Asha", Phone: "9876543210"}, nil)

	for i := 0; i < 3; i++ {
		s.Restart()
		if s.Screen() != ScreenWelcome {
			t.Fatalf("restart %d: screen = %s", i, s.Screen())
		}
		if len(s.SelectedGoals()) != 0 || len(s.Responses()) != 0 {
			t.Fatalf("restart %d: selections/responses not cleared", i)
		}
		if s.Score() != 0 {
			t.Fatalf("restart %d: score = %v", i, s.Score())
		}
		if s.Lead() != (Lead{}) {
			t.Fatalf("restart %d: lead not cleared: %+v", i, s.Lead())
		}
		if !s.Deadline().IsZero() || s.Remaining() != 0 {
			t.Fatalf("restart %d: deadline still armed", i)
		}
	}
	// Duplicate-submission suppression survives a restart on purpose.
	if s.LastSubmittedPhone() != "9876543210" {
		t.Fatalf("lastSubmittedPhone should survive restart, got %q", s.LastSubmittedPhone())
	}
}

func TestBeginSubmitGuardsInFlight(t *testing.T) {
	s := New(nil)
	if err := s.BeginSubmit(); err != nil {
		t.Fatalf("first BeginSubmit: %v", err)
	}
	if err := s.BeginSubmit(); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("second BeginSubmit: got %v, want ErrSubmitInFlight", err)
	}
	s.FinishSubmit(Lead{Name: "Asha", Phone: "9876543210"}, nil)
	if s.Submitting() {
		t.Fatalf("FinishSubmit must clear the in-flight flag")
	}
	if err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit after finish: %v", err)
	}
}

func TestEndSubmitClearsWithoutRecording(t *testing.T) {
	s := New(nil)
	if err := s.BeginSubmit(); err != nil {
		t.Fatalf("begin submit: %v", err)
	}
	s.EndSubmit()
	if s.Submitting() {
		t.Fatalf("EndSubmit must clear the in-flight flag")
	}
	if s.LastSubmittedPhone() != "" || s.Lead() != (Lead{}) {
		t.Fatalf("EndSubmit must not record a lead or feed suppression")
	}
	if err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit after EndSubmit: %v", err)
	}
}

func TestFinishSubmitOnlyRecordsOnSuccess(t *testing.T) {
	s := New(nil)
	_ = s.BeginSubmit()
	s.FinishSubmit(Lead{Name: "Asha", Phone: "9876543210"}, errors.New("lms down"))
	if s.LastSubmittedPhone() != "" || s.Lead() != (Lead{}) {
		t.Fatalf("failed submission must record nothing")
	}
	if s.Screen() != ScreenWelcome {
		t.Fatalf("failed submission must leave the screen unchanged, got %s", s.Screen())
	}

	_ = s.BeginSubmit()
	s.FinishSubmit(Lead{Name: "Asha", Phone: "9876543210"}, nil)
	if s.LastSubmittedPhone() != "9876543210" {
		t.Fatalf("successful submission must record the phone")
	}
}

func TestBookSlotOverwritesNameAndAdvances(t *testing.T) {
	s := startedSession(t)
	s.BeginAssessment(5 * time.Minute)
	for i := 0; i < 9; i++ {
		s.Advance(false)
	}
	s.BookSlot("Asha Verma")
	if s.Screen() != ScreenThankYou {
		t.Fatalf("booking must land on thank-you, got %s", s.Screen())
	}
	if s.Lead().Name != "Asha Verma" {
		t.Fatalf("booking name not recorded: %+v", s.Lead())
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s := New(func() time.Time { return now })
	s.ConfirmLeadAndStart(Lead{})
	if err := s.SelectGoals(threeGoals()); err != nil {
		t.Fatalf("select goals: %v", err)
	}
	s.BeginAssessment(5 * time.Minute)
	if got := s.Remaining(); got != 5*time.Minute {
		t.Fatalf("remaining = %v, want 5m", got)
	}
	now = now.Add(10 * time.Minute)
	if got := s.Remaining(); got != 0 {
		t.Fatalf("remaining past the deadline = %v, want 0", got)
	}
}
