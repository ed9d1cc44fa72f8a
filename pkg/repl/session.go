package repl

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soypete/funcchat/pkg/config"
)

// Session represents one interactive chat session.
type Session struct {
	mu sync.RWMutex

	ID        string         // Unique session ID
	Config    *config.Config // Application config
	History   []string       // User inputs this session
	StartTime time.Time      // Session start time
	DebugMode bool           // Debug mode enabled
}

// NewSession creates a new session with a generated ID.
func NewSession(cfg *config.Config, debugMode bool) *Session {
	id := fmt.Sprintf("chat-%s-%s", uuid.New().String()[:8], time.Now().Format("20060102-150405"))
	return &Session{
		ID:        id,
		Config:    cfg,
		History:   []string{},
		StartTime: time.Now(),
		DebugMode: debugMode,
	}
}

// AddToHistory records a user input.
func (s *Session) AddToHistory(input string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, input)
}

// GetHistory returns a copy of the input history.
func (s *Session) GetHistory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := make([]string, len(s.History))
	copy(history, s.History)
	return history
}
