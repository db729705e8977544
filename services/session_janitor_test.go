package services

import (
	"context"
	"testing"
	"time"

	"github.com/irisedu/iris/models"
)

func TestSessionJanitorSweepsOldRows(t *testing.T) {
	repo := newMemSessionRepo()

	old := &models.Session{
		TokenHash: "old-hash",
		UserID:    "user-1",
		IsActive:  true,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	fresh := &models.Session{
		TokenHash: "fresh-hash",
		UserID:    "user-1",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(context.Background(), old); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(context.Background(), fresh); err != nil {
		t.Fatalf("Create: %v", err)
	}

	janitor := NewSessionJanitor(repo, 24*time.Hour, 10*time.Millisecond)
	defer janitor.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, err := repo.GetByTokenHash(context.Background(), "old-hash"); err != nil {
			// swept — the fresh row must have survived
			if _, err := repo.GetByTokenHash(context.Background(), "fresh-hash"); err != nil {
				t.Fatalf("fresh session swept too: %v", err)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("old session was never swept")
}
