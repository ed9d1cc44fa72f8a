// Package llm provides the chat completions client and the wire types
// exchanged with an OpenAI-compatible completion endpoint.
package llm

import "context"

// EnvAPIKey is the environment variable holding the bearer credential.
// The key is read once at startup; it never lives in a config file.
const EnvAPIKey = "GROQ_API_KEY"

// Backend is the interface for chat completion backends. Complete blocks
// until the endpoint responds or ctx is done; implementations are safe to
// share across turns.
type Backend interface {
	Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	Close() error
}
