package memory

import (
	"context"
	"testing"
	"time"

	"secassess-service/internal/domain"
)

func TestResultStoreAppendOrder(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore()

	if _, err := store.Latest(ctx, "u1"); err != domain.ErrNoResult {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, score := range []int{40, 55, 72} {
		result := domain.Result{ID: string(rune('a' + i)), Score: score, CompletedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := store.Append(ctx, "u1", result); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	latest, err := store.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Score != 72 {
		t.Fatalf("expected latest score 72, got %d", latest.Score)
	}

	history, err := store.History(ctx, "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 || history[0].Score != 40 || history[2].Score != 72 {
		t.Fatalf("expected append-ordered history, got %+v", history)
	}
}
