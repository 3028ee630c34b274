package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"secassess-service/internal/domain"
)

func TestResultStoreAppendsAtomically(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewResultStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	if _, err := store.Latest(ctx, "u1"); err != domain.ErrNoResult {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	first := domain.Result{ID: "r1", Score: 48, RiskLevel: domain.RiskHigh, CompletedAt: base, TotalQuestions: 31, AnsweredQuestions: 31}
	second := domain.Result{ID: "r2", Score: 76, RiskLevel: domain.RiskLow, CompletedAt: base.Add(time.Hour), TotalQuestions: 31, AnsweredQuestions: 31}

	if err := store.Append(ctx, "u1", first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, "u1", second); err != nil {
		t.Fatalf("append: %v", err)
	}

	latest, err := store.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != "r2" || latest.Score != 76 {
		t.Fatalf("expected r2 latest, got %+v", latest)
	}

	history, err := store.History(ctx, "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].ID != "r1" || history[1].ID != "r2" {
		t.Fatalf("expected append order preserved, got %+v", history)
	}
}
