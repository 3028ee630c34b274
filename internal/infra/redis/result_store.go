package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"secassess-service/internal/domain"
)

// ResultStore keeps per-user history as a Redis list. RPUSH is a single
// atomic append, so two completions racing from different connections both
// land; nobody rewrites the whole list.
type ResultStore struct {
	client *redis.Client
}

func NewResultStore(client *redis.Client) *ResultStore {
	return &ResultStore{client: client}
}

func (s *ResultStore) Append(ctx context.Context, userID string, result domain.Result) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := s.client.RPush(ctx, s.historyKey(userID), raw).Err(); err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}

func (s *ResultStore) Latest(ctx context.Context, userID string) (domain.Result, error) {
	raw, err := s.client.LIndex(ctx, s.historyKey(userID), -1).Bytes()
	if err == redis.Nil {
		return domain.Result{}, domain.ErrNoResult
	}
	if err != nil {
		return domain.Result{}, fmt.Errorf("read latest result: %w", err)
	}
	var result domain.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return domain.Result{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return result, nil
}

// History returns the full append-ordered history for a user.
func (s *ResultStore) History(ctx context.Context, userID string) ([]domain.Result, error) {
	entries, err := s.client.LRange(ctx, s.historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	results := make([]domain.Result, 0, len(entries))
	for _, entry := range entries {
		var result domain.Result
		if err := json.Unmarshal([]byte(entry), &result); err != nil {
			return nil, fmt.Errorf("unmarshal history entry: %w", err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *ResultStore) historyKey(userID string) string {
	return "assess:results:" + userID
}
