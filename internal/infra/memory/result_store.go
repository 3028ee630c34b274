package memory

import (
	"context"
	"sync"

	"secassess-service/internal/domain"
)

// ResultStore keeps per-user result history in memory. Appends happen under
// the store lock, so concurrent completions never lose an entry.
type ResultStore struct {
	mu      sync.RWMutex
	history map[string][]domain.Result
}

func NewResultStore() *ResultStore {
	return &ResultStore{history: make(map[string][]domain.Result)}
}

func (s *ResultStore) Append(_ context.Context, userID string, result domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[userID] = append(s.history[userID], result)
	return nil
}

func (s *ResultStore) Latest(_ context.Context, userID string) (domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := s.history[userID]
	if len(results) == 0 {
		return domain.Result{}, domain.ErrNoResult
	}
	return results[len(results)-1], nil
}

// History returns the full append-ordered history for a user.
func (s *ResultStore) History(_ context.Context, userID string) ([]domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := s.history[userID]
	out := make([]domain.Result, len(results))
	copy(out, results)
	return out, nil
}
