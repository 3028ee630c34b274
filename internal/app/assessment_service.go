package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"secassess-service/internal/domain"
	"secassess-service/internal/scoring"
)

// SessionRepository abstracts how in-progress assessment sessions are kept
// (in-memory, Redis-backed, etc). Persist is a best-effort checkpoint so a
// session can survive a reconnect; implementations may make it a no-op.
type SessionRepository interface {
	GetOrCreate(userID string) *Session
	Get(userID string) (*Session, bool)
	Persist(session *Session)
	Delete(userID string)
}

// BankRepository loads question bank content (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// ResultStore persists completed assessment results. Append must be atomic
// per record: concurrent completions may interleave but never lose entries.
type ResultStore interface {
	Append(ctx context.Context, userID string, result domain.Result) error
	Latest(ctx context.Context, userID string) (domain.Result, error)
}

// AssessmentService contains the assessment use cases: walking a user
// through the question bank and persisting the scored outcome.
type AssessmentService struct {
	sessions SessionRepository
	banks    BankRepository
	results  ResultStore
	bankID   string
	now      func() time.Time
	newID    func() string
}

func NewAssessmentService(sessions SessionRepository, banks BankRepository, results ResultStore, bankID string) *AssessmentService {
	return &AssessmentService{
		sessions: sessions,
		banks:    banks,
		results:  results,
		bankID:   bankID,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// WithClock is test-only for deterministic timestamps and IDs.
func (s *AssessmentService) WithClock(now func() time.Time, newID func() string) *AssessmentService {
	s.now = now
	s.newID = newID
	return s
}

// SessionView is the caller-facing snapshot of where a session stands.
type SessionView struct {
	State             SessionState    `json:"state"`
	QuestionIndex     int             `json:"questionIndex"`
	TotalQuestions    int             `json:"totalQuestions"`
	AnsweredQuestions int             `json:"answeredQuestions"`
	Question          domain.Question `json:"question,omitempty"`
	Answered          bool            `json:"answered"`
	SelectedValue     string          `json:"selectedValue,omitempty"`
}

// Completion bundles the computed result with its recommendations. Saved is
// false when the persistence write failed; the result is still usable in
// the current session but will not appear in history.
type Completion struct {
	Result    domain.Result     `json:"result"`
	WeakAreas []domain.WeakArea `json:"weakAreas"`
	Saved     bool              `json:"saved"`
}

// Start begins an assessment, or resumes one already in progress.
func (s *AssessmentService) Start(ctx context.Context, userID string) (SessionView, error) {
	bank, err := s.banks.GetBank(ctx, s.bankID)
	if err != nil {
		return SessionView{}, err
	}

	session := s.sessions.GetOrCreate(userID)
	view, err := session.start(bank)
	if err != nil {
		return SessionView{}, err
	}
	s.sessions.Persist(session)
	return view, nil
}

// Answer records the selected option for a question, overwriting any
// previous selection. The question and option must exist in the bank.
func (s *AssessmentService) Answer(ctx context.Context, userID, questionID, value string) (SessionView, error) {
	bank, err := s.banks.GetBank(ctx, s.bankID)
	if err != nil {
		return SessionView{}, err
	}
	session, ok := s.sessions.Get(userID)
	if !ok {
		return SessionView{}, domain.ErrSessionNotFound
	}

	answer, err := resolveAnswer(bank, questionID, value)
	if err != nil {
		return SessionView{}, err
	}
	view, err := session.answer(bank, answer)
	if err != nil {
		return SessionView{}, err
	}
	s.sessions.Persist(session)
	return view, nil
}

// Next advances to the following question. Advancing past the last question
// completes the assessment: the result is computed, one persistence attempt
// is made, and the completion is returned whether or not the write stuck.
func (s *AssessmentService) Next(ctx context.Context, userID string) (SessionView, *Completion, error) {
	bank, err := s.banks.GetBank(ctx, s.bankID)
	if err != nil {
		return SessionView{}, nil, err
	}
	session, ok := s.sessions.Get(userID)
	if !ok {
		return SessionView{}, nil, domain.ErrSessionNotFound
	}

	view, completed, err := session.next(bank)
	if err != nil {
		return SessionView{}, nil, err
	}
	if !completed {
		s.sessions.Persist(session)
		return view, nil, nil
	}

	result, weak, err := s.computeResult(session, bank)
	if err != nil {
		return SessionView{}, nil, err
	}
	session.complete(result)
	s.sessions.Persist(session)
	view.State = StateCompleted
	view.Question = domain.Question{}
	view.Answered = false
	view.SelectedValue = ""

	completion := &Completion{Result: result, WeakAreas: weak, Saved: true}
	if err := s.results.Append(ctx, userID, result); err != nil {
		// The user still sees their result; only the history entry is lost.
		log.Printf("append result for %s: %v", userID, err)
		completion.Saved = false
	}
	return view, completion, nil
}

// Previous steps back one question, flooring at the first.
func (s *AssessmentService) Previous(ctx context.Context, userID string) (SessionView, error) {
	bank, err := s.banks.GetBank(ctx, s.bankID)
	if err != nil {
		return SessionView{}, err
	}
	session, ok := s.sessions.Get(userID)
	if !ok {
		return SessionView{}, domain.ErrSessionNotFound
	}
	view, err := session.previous(bank)
	if err != nil {
		return SessionView{}, err
	}
	s.sessions.Persist(session)
	return view, nil
}

// Restart returns the session to the welcome state and clears all answers.
func (s *AssessmentService) Restart(ctx context.Context, userID string) (SessionView, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return SessionView{}, domain.ErrSessionNotFound
	}
	view := session.restart()
	s.sessions.Persist(session)
	return view, nil
}

// Progress reports the in-progress per-category breakdown over whatever has
// been answered so far. This is not a partial final score; completion still
// requires answering every question.
func (s *AssessmentService) Progress(ctx context.Context, userID string) (map[domain.Category]domain.CategoryScore, error) {
	bank, err := s.banks.GetBank(ctx, s.bankID)
	if err != nil {
		return nil, err
	}
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return scoring.CategoryScores(session.answerSnapshot(), bank)
}

// LatestResult returns the most recent persisted result for a user.
func (s *AssessmentService) LatestResult(ctx context.Context, userID string) (domain.Result, error) {
	return s.results.Latest(ctx, userID)
}

// CurrentResult returns the result computed in the active session. Unlike
// LatestResult it works even when the persistence write failed, so a
// reconnecting client can still show the outcome it was promised.
func (s *AssessmentService) CurrentResult(userID string) (domain.Result, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return domain.Result{}, domain.ErrSessionNotFound
	}
	result, ok := session.Result()
	if !ok {
		return domain.Result{}, domain.ErrNoResult
	}
	return result, nil
}

// End is called when a client disconnects. A completed session is dropped;
// an open one is checkpointed so a later Start can resume where it left off.
func (s *AssessmentService) End(userID string) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return
	}
	if session.Snapshot().State == StateCompleted {
		s.sessions.Delete(userID)
		return
	}
	s.sessions.Persist(session)
}

func (s *AssessmentService) computeResult(session *Session, bank domain.Bank) (domain.Result, []domain.WeakArea, error) {
	answers := session.answerSnapshot()

	overall, err := scoring.OverallScore(answers, bank)
	if err != nil {
		return domain.Result{}, nil, err
	}
	categories, err := scoring.CategoryScores(answers, bank)
	if err != nil {
		return domain.Result{}, nil, err
	}
	level, err := scoring.ClassifyRisk(overall, categories)
	if err != nil {
		return domain.Result{}, nil, err
	}

	result := domain.Result{
		ID:                s.newID(),
		Score:             overall,
		CategoryScores:    categories,
		RiskLevel:         level,
		CompletedAt:       s.now(),
		TotalQuestions:    len(bank.Questions),
		AnsweredQuestions: len(answers),
	}
	return result, scoring.RankWeakAreas(categories, bank), nil
}

func resolveAnswer(bank domain.Bank, questionID, value string) (domain.Answer, error) {
	var question *domain.Question
	for i := range bank.Questions {
		if bank.Questions[i].ID == questionID {
			question = &bank.Questions[i]
			break
		}
	}
	if question == nil {
		return domain.Answer{}, domain.ErrQuestionNotFound
	}
	for _, opt := range question.Options {
		if opt.Value == value {
			return domain.Answer{QuestionID: questionID, SelectedValue: value, Points: opt.Points}, nil
		}
	}
	return domain.Answer{}, domain.ErrOptionNotFound
}

// SessionState is where a session stands in the assessment flow.
type SessionState string

const (
	StateWelcome    SessionState = "welcome"
	StateInProgress SessionState = "in_progress"
	StateCompleted  SessionState = "completed"
)

// SessionSnapshot is the persistable view of a session, used by stores that
// checkpoint sessions across reconnects.
type SessionSnapshot struct {
	UserID  string
	State   SessionState
	Index   int
	Answers domain.AnswerSet
}

// Session is one user's walk through the question bank: welcome →
// in_progress(i) → completed. One session per user, no concurrent writers
// by design, but the mutex keeps transport reconnect races harmless.
type Session struct {
	userID string

	mu      sync.Mutex
	state   SessionState
	index   int
	answers domain.AnswerSet
	result  *domain.Result
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(userID string) *Session {
	return &Session{
		userID:  userID,
		state:   StateWelcome,
		answers: domain.AnswerSet{},
	}
}

// Rehydrate rebuilds a session from a persisted checkpoint.
func Rehydrate(snapshot SessionSnapshot) *Session {
	answers := snapshot.Answers
	if answers == nil {
		answers = domain.AnswerSet{}
	}
	return &Session{
		userID:  snapshot.UserID,
		state:   snapshot.State,
		index:   snapshot.Index,
		answers: answers,
	}
}

// Snapshot returns a copy safe to hand to a persistence layer.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{
		UserID:  s.userID,
		State:   s.state,
		Index:   s.index,
		Answers: s.answers.Clone(),
	}
}

// UserID identifies the session owner.
func (s *Session) UserID() string { return s.userID }

func (s *Session) start(bank domain.Bank) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateWelcome:
		s.state = StateInProgress
		s.index = 0
	case StateInProgress:
		// Resuming an open session is allowed; the view says where it stands.
		// A checkpoint from an older, larger bank could point past the end.
		if s.index >= len(bank.Questions) {
			s.index = len(bank.Questions) - 1
		}
	case StateCompleted:
		return SessionView{}, domain.ErrInvalidTransition
	}
	return s.viewLocked(bank), nil
}

func (s *Session) answer(bank domain.Bank, answer domain.Answer) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return SessionView{}, domain.ErrInvalidTransition
	}
	s.answers[answer.QuestionID] = answer
	return s.viewLocked(bank), nil
}

func (s *Session) next(bank domain.Bank) (SessionView, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return SessionView{}, false, domain.ErrInvalidTransition
	}
	current := bank.Questions[s.index]
	if _, ok := s.answers[current.ID]; !ok {
		return SessionView{}, false, domain.ErrAnswerRequired
	}
	if s.index+1 < len(bank.Questions) {
		s.index++
		return s.viewLocked(bank), false, nil
	}
	// Completion is finalized by the caller once the result is computed.
	return s.viewLocked(bank), true, nil
}

func (s *Session) previous(bank domain.Bank) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return SessionView{}, domain.ErrInvalidTransition
	}
	if s.index > 0 {
		s.index--
	}
	return s.viewLocked(bank), nil
}

func (s *Session) restart() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateWelcome
	s.index = 0
	s.answers = domain.AnswerSet{}
	s.result = nil
	return SessionView{State: StateWelcome}
}

func (s *Session) complete(result domain.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateCompleted
	s.result = &result
}

// Result returns the computed outcome of a completed session.
func (s *Session) Result() (domain.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return domain.Result{}, false
	}
	return *s.result, true
}

func (s *Session) answerSnapshot() domain.AnswerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

func (s *Session) viewLocked(bank domain.Bank) SessionView {
	view := SessionView{
		State:             s.state,
		QuestionIndex:     s.index,
		TotalQuestions:    len(bank.Questions),
		AnsweredQuestions: len(s.answers),
	}
	if s.state == StateInProgress && s.index < len(bank.Questions) {
		question := bank.Questions[s.index]
		view.Question = question
		if ans, ok := s.answers[question.ID]; ok {
			view.Answered = true
			view.SelectedValue = ans.SelectedValue
		}
	}
	return view
}
