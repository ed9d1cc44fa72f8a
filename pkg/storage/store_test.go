package storage

import (
	"context"
	"os"
	"testing"
)

// setupTestStore opens a store against DATABASE_URL.
// Skips the test when DATABASE_URL is not set.
func setupTestStore(t *testing.T) *TranscriptStore {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	store, err := Open(dbURL)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndListTurns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	sessionID := "test-session-" + t.Name()

	turns := []*Turn{
		{SessionID: sessionID, UserInput: "what is 6 + 3?", FinalAnswer: "The answer is 9.", FunctionCalls: 1},
		{SessionID: sessionID, UserInput: "hello", FinalAnswer: "Hi there!", FunctionCalls: 0},
	}
	for _, turn := range turns {
		if err := store.SaveTurn(ctx, turn); err != nil {
			t.Fatalf("SaveTurn failed: %v", err)
		}
	}

	got, err := store.RecentTurns(ctx, sessionID, 10)
	if err != nil {
		t.Fatalf("RecentTurns failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d turns, want 2", len(got))
	}
	for _, turn := range got {
		if turn.SessionID != sessionID {
			t.Errorf("turn leaked from session %q", turn.SessionID)
		}
	}
}
