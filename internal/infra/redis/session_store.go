package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"secassess-service/internal/app"
	"secassess-service/internal/domain"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Live sessions stay in a local map so state-machine transitions run
//     in-process; Redis holds a checkpoint (answers hash + state key).
//   - A GetOrCreate miss rehydrates from the checkpoint, so an assessment
//     survives a dropped connection or a process restart.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(userID string) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[userID]; ok {
		return session
	}
	session := s.rehydrate(userID)
	if session == nil {
		session = app.NewSession(userID)
	}
	s.sessions[userID] = session
	return session
}

func (s *SessionStore) Get(userID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

// Persist checkpoints the session to Redis, best-effort.
func (s *SessionStore) Persist(session *app.Session) {
	snapshot := session.Snapshot()
	ctx := context.Background()

	stateKey := s.stateKey(snapshot.UserID)
	answersKey := s.answersKey(snapshot.UserID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, stateKey, string(snapshot.State)+"|"+strconv.Itoa(snapshot.Index), s.ttl)
	pipe.Del(ctx, answersKey)
	for questionID, answer := range snapshot.Answers {
		if raw, err := json.Marshal(answer); err == nil {
			pipe.HSet(ctx, answersKey, questionID, raw)
		}
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, answersKey, s.ttl)
	}
	_, _ = pipe.Exec(ctx)
}

func (s *SessionStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	ctx := context.Background()
	_ = s.client.Del(ctx, s.stateKey(userID), s.answersKey(userID)).Err()
}

// rehydrate rebuilds a session from its checkpoint, or returns nil when no
// usable checkpoint exists. Caller holds the write lock.
func (s *SessionStore) rehydrate(userID string) *app.Session {
	ctx := context.Background()

	raw, err := s.client.Get(ctx, s.stateKey(userID)).Result()
	if err != nil {
		return nil
	}
	state, index, ok := parseState(raw)
	if !ok {
		return nil
	}

	answers := domain.AnswerSet{}
	fields, err := s.client.HGetAll(ctx, s.answersKey(userID)).Result()
	if err == nil {
		for questionID, encoded := range fields {
			var answer domain.Answer
			if err := json.Unmarshal([]byte(encoded), &answer); err == nil {
				answers[questionID] = answer
			}
		}
	}

	return app.Rehydrate(app.SessionSnapshot{
		UserID:  userID,
		State:   state,
		Index:   index,
		Answers: answers,
	})
}

func parseState(raw string) (app.SessionState, int, bool) {
	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return "", 0, false
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return "", 0, false
	}
	switch state := app.SessionState(parts[0]); state {
	case app.StateWelcome, app.StateInProgress, app.StateCompleted:
		return state, index, true
	default:
		return "", 0, false
	}
}

func (s *SessionStore) stateKey(userID string) string {
	return "assess:session:" + userID + ":state"
}

func (s *SessionStore) answersKey(userID string) string {
	return "assess:session:" + userID + ":answers"
}
