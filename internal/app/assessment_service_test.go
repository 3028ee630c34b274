package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"secassess-service/internal/app"
	"secassess-service/internal/domain"
	"secassess-service/internal/infra/memory"
	"secassess-service/internal/questionbank"
	"secassess-service/internal/scoring"
)

func TestFullAssessmentFlow(t *testing.T) {
	ctx := context.Background()
	results := memory.NewResultStore()
	service := newTestService(results)

	view, err := service.Start(ctx, "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.State != app.StateInProgress || view.QuestionIndex != 0 {
		t.Fatalf("expected in_progress at 0, got %s/%d", view.State, view.QuestionIndex)
	}
	if view.TotalQuestions != 31 {
		t.Fatalf("expected 31 questions, got %d", view.TotalQuestions)
	}

	bank := questionbank.Default()
	var completion *app.Completion
	for i := range bank.Questions {
		question := bank.Questions[i]
		best := bestOption(question)
		if _, err := service.Answer(ctx, "u1", question.ID, best.Value); err != nil {
			t.Fatalf("answer %s: %v", question.ID, err)
		}
		view, completion, err = service.Next(ctx, "u1")
		if err != nil {
			t.Fatalf("next after %s: %v", question.ID, err)
		}
	}

	if completion == nil {
		t.Fatalf("expected completion after final question")
	}
	if view.State != app.StateCompleted {
		t.Fatalf("expected completed state, got %s", view.State)
	}
	if completion.Result.Score != 100 {
		t.Fatalf("expected perfect score, got %d", completion.Result.Score)
	}
	if completion.Result.RiskLevel != domain.RiskLow {
		t.Fatalf("expected low risk at full marks, got %s", completion.Result.RiskLevel)
	}
	if completion.Result.AnsweredQuestions != 31 || completion.Result.TotalQuestions != 31 {
		t.Fatalf("expected 31/31 answered, got %d/%d", completion.Result.AnsweredQuestions, completion.Result.TotalQuestions)
	}
	if len(completion.WeakAreas) != 0 {
		t.Fatalf("expected no weak areas at full marks, got %+v", completion.WeakAreas)
	}
	if !completion.Saved {
		t.Fatalf("expected result saved")
	}

	latest, err := service.LatestResult(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != completion.Result.ID {
		t.Fatalf("expected persisted result %s, got %s", completion.Result.ID, latest.ID)
	}
}

func TestPersistedResultMatchesRecompute(t *testing.T) {
	ctx := context.Background()
	results := memory.NewResultStore()
	service := newTestService(results)

	if _, err := service.Start(ctx, "u1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	bank := questionbank.Default()
	answers := domain.AnswerSet{}
	var completion *app.Completion
	for i, question := range bank.Questions {
		opt := question.Options[i%len(question.Options)]
		if _, err := service.Answer(ctx, "u1", question.ID, opt.Value); err != nil {
			t.Fatalf("answer: %v", err)
		}
		answers[question.ID] = domain.Answer{QuestionID: question.ID, SelectedValue: opt.Value, Points: opt.Points}
		var err error
		_, completion, err = service.Next(ctx, "u1")
		if err != nil {
			t.Fatalf("next: %v", err)
		}
	}

	wantScore, err := scoring.OverallScore(answers, bank)
	if err != nil {
		t.Fatalf("recompute score: %v", err)
	}
	wantCategories, err := scoring.CategoryScores(answers, bank)
	if err != nil {
		t.Fatalf("recompute categories: %v", err)
	}

	latest, err := service.LatestResult(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Score != wantScore {
		t.Fatalf("persisted score %d != recomputed %d", latest.Score, wantScore)
	}
	for cat, want := range wantCategories {
		got := latest.CategoryScores[cat]
		if got != want {
			t.Fatalf("category %s: persisted %+v != recomputed %+v", cat, got, want)
		}
	}
	if completion.Result.Score != wantScore {
		t.Fatalf("completion score %d != recomputed %d", completion.Result.Score, wantScore)
	}
}

func TestNextBlockedWithoutAnswer(t *testing.T) {
	ctx := context.Background()
	service := newTestService(memory.NewResultStore())

	if _, err := service.Start(ctx, "u1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := service.Next(ctx, "u1"); err != domain.ErrAnswerRequired {
		t.Fatalf("expected ErrAnswerRequired, got %v", err)
	}
}

func TestPreviousFloorsAtZeroAndRejectsWelcome(t *testing.T) {
	ctx := context.Background()
	service := newTestService(memory.NewResultStore())
	bank := questionbank.Default()

	if _, err := service.Start(ctx, "u1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Previous at index 0 stays at 0.
	view, err := service.Previous(ctx, "u1")
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if view.QuestionIndex != 0 {
		t.Fatalf("expected floor at 0, got %d", view.QuestionIndex)
	}

	first := bank.Questions[0]
	if _, err := service.Answer(ctx, "u1", first.ID, first.Options[0].Value); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if view, _, err = service.Next(ctx, "u1"); err != nil || view.QuestionIndex != 1 {
		t.Fatalf("expected index 1, got %d (%v)", view.QuestionIndex, err)
	}
	if view, err = service.Previous(ctx, "u1"); err != nil || view.QuestionIndex != 0 {
		t.Fatalf("expected back at 0, got %d (%v)", view.QuestionIndex, err)
	}

	// A restarted session is back at welcome; previous is not allowed there.
	if _, err := service.Restart(ctx, "u1"); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if _, err := service.Previous(ctx, "u1"); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition from welcome, got %v", err)
	}
}

func TestAnswerOverwriteAndRestartClears(t *testing.T) {
	ctx := context.Background()
	service := newTestService(memory.NewResultStore())
	bank := questionbank.Default()
	first := bank.Questions[0]

	if _, err := service.Start(ctx, "u1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.Answer(ctx, "u1", first.ID, first.Options[0].Value); err != nil {
		t.Fatalf("answer: %v", err)
	}
	view, err := service.Answer(ctx, "u1", first.ID, first.Options[1].Value)
	if err != nil {
		t.Fatalf("overwrite answer: %v", err)
	}
	if view.AnsweredQuestions != 1 {
		t.Fatalf("overwrite should not add an answer, got %d", view.AnsweredQuestions)
	}
	if view.SelectedValue != first.Options[1].Value {
		t.Fatalf("expected overwritten selection, got %s", view.SelectedValue)
	}

	view, err = service.Restart(ctx, "u1")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if view.State != app.StateWelcome {
		t.Fatalf("expected welcome after restart, got %s", view.State)
	}
	view, err = service.Start(ctx, "u1")
	if err != nil {
		t.Fatalf("start after restart: %v", err)
	}
	if view.AnsweredQuestions != 0 {
		t.Fatalf("expected cleared answers, got %d", view.AnsweredQuestions)
	}
}

func TestAnswerRejectsUnknownQuestionAndOption(t *testing.T) {
	ctx := context.Background()
	service := newTestService(memory.NewResultStore())

	if _, err := service.Start(ctx, "u1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.Answer(ctx, "u1", "nope", "a"); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	first := questionbank.Default().Questions[0]
	if _, err := service.Answer(ctx, "u1", first.ID, "not-an-option"); err != domain.ErrOptionNotFound {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}
}

func TestCommandsRequireSession(t *testing.T) {
	ctx := context.Background()
	service := newTestService(memory.NewResultStore())

	if _, err := service.Answer(ctx, "ghost", "risk-beat", "social"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, _, err := service.Next(ctx, "ghost"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestPersistenceFailureStillCompletes(t *testing.T) {
	ctx := context.Background()
	service := newTestService(failingResultStore{})

	if _, err := service.Start(ctx, "u1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	bank := questionbank.Default()
	var completion *app.Completion
	for _, question := range bank.Questions {
		if _, err := service.Answer(ctx, "u1", question.ID, bestOption(question).Value); err != nil {
			t.Fatalf("answer: %v", err)
		}
		var err error
		_, completion, err = service.Next(ctx, "u1")
		if err != nil {
			t.Fatalf("next: %v", err)
		}
	}
	if completion == nil {
		t.Fatalf("expected completion despite store failure")
	}
	if completion.Saved {
		t.Fatalf("expected Saved=false when the store write fails")
	}
	if completion.Result.Score != 100 {
		t.Fatalf("result should still be computed, got score %d", completion.Result.Score)
	}

	// The unsaved result remains readable from the session.
	current, err := service.CurrentResult("u1")
	if err != nil {
		t.Fatalf("current result: %v", err)
	}
	if current.ID != completion.Result.ID {
		t.Fatalf("expected session-held result %s, got %s", completion.Result.ID, current.ID)
	}
}

func TestProgressOverPartialAnswers(t *testing.T) {
	ctx := context.Background()
	service := newTestService(memory.NewResultStore())
	bank := questionbank.Default()

	if _, err := service.Start(ctx, "u1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	first := bank.Questions[0]
	if _, err := service.Answer(ctx, "u1", first.ID, bestOption(first).Value); err != nil {
		t.Fatalf("answer: %v", err)
	}

	progress, err := service.Progress(ctx, "u1")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(progress) != 6 {
		t.Fatalf("expected all categories present, got %d", len(progress))
	}
	if progress[first.Category].EarnedPoints == 0 {
		t.Fatalf("expected earned points in %s", first.Category)
	}
}

func newTestService(results app.ResultStore) *app.AssessmentService {
	sessions := memory.NewSessionStore()
	banks := memory.NewBankRepository(memory.NewStaticBankLoader(map[string]domain.Bank{
		questionbank.DefaultBankID: questionbank.Default(),
	}), 5*time.Minute)

	counter := 0
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return app.NewAssessmentService(sessions, banks, results, questionbank.DefaultBankID).
		WithClock(func() time.Time { return fixed }, func() string {
			counter++
			return fmt.Sprintf("result-%d", counter)
		})
}

func bestOption(q domain.Question) domain.Option {
	best := q.Options[0]
	for _, opt := range q.Options {
		if opt.Points > best.Points {
			best = opt
		}
	}
	return best
}

type failingResultStore struct{}

func (failingResultStore) Append(context.Context, string, domain.Result) error {
	return errors.New("store unavailable")
}

func (failingResultStore) Latest(context.Context, string) (domain.Result, error) {
	return domain.Result{}, domain.ErrNoResult
}
