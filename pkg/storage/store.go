// Package storage persists conversation transcripts to PostgreSQL.
// Persistence is optional: without a configured database URL the agent runs
// entirely in memory.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Turn is one recorded user turn: the input, the surfaced answer, and how
// many function dispatches it took.
type Turn struct {
	ID            uuid.UUID
	SessionID     string
	UserInput     string
	FinalAnswer   string
	FunctionCalls int
	CreatedAt     time.Time
}

// TranscriptStore records completed turns.
type TranscriptStore struct {
	db *sql.DB
}

// Open connects to PostgreSQL and runs pending migrations.
func Open(url string) (*TranscriptStore, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TranscriptStore{db: db}, nil
}

// SaveTurn records a completed turn.
func (s *TranscriptStore) SaveTurn(ctx context.Context, turn *Turn) error {
	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (id, session_id, user_input, final_answer, function_calls, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		turn.ID, turn.SessionID, turn.UserInput, turn.FinalAnswer, turn.FunctionCalls, turn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save turn: %w", err)
	}
	return nil
}

// RecentTurns returns the most recent turns for a session, newest first.
func (s *TranscriptStore) RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, user_input, final_answer, function_calls, created_at
		 FROM turns WHERE session_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.UserInput, &t.FinalAnswer, &t.FunctionCalls, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Close closes the database connection.
func (s *TranscriptStore) Close() error {
	return s.db.Close()
}
