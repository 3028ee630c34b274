package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"secassess-service/internal/domain"
)

// ResultStore persists results one row per completion. Inserts are the
// atomic append; history is never read back and rewritten, so concurrent
// completions from two connections both land.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) Append(ctx context.Context, userID string, result domain.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessment_results (id, user_id, score, risk_level, completed_at, data)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb)`,
		result.ID, userID, result.Score, string(result.RiskLevel), result.CompletedAt, string(data))
	if err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}

func (s *ResultStore) Latest(ctx context.Context, userID string) (domain.Result, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM assessment_results
		 WHERE user_id=$1
		 ORDER BY completed_at DESC, id DESC
		 LIMIT 1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
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

// History returns a user's results in completion order.
func (s *ResultStore) History(ctx context.Context, userID string) ([]domain.Result, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM assessment_results
		 WHERE user_id=$1
		 ORDER BY completed_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		var result domain.Result
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("unmarshal history entry: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
