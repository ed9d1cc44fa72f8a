package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// GroqClient implements Backend against the Groq OpenAI-compatible API.
// Works with any endpoint that speaks the /chat/completions shape.
//
// Failed requests are not retried: a transport or endpoint failure aborts
// the current turn and is surfaced to the caller.
type GroqClient struct {
	baseURL    string
	apiPath    string
	apiKey     string
	httpClient *http.Client
	debug      bool
}

// GroqClientConfig configures the HTTP client.
type GroqClientConfig struct {
	BaseURL string        // e.g., "https://api.groq.com/openai/v1"
	APIPath string        // Optional, defaults to "/chat/completions"
	APIKey  string        // Bearer credential
	Timeout time.Duration // Optional, defaults to 2min
	Debug   bool          // Log request/response sizes to stderr
}

// NewGroqClient creates a new chat completions client.
func NewGroqClient(cfg GroqClientConfig) *GroqClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.APIPath == "" {
		cfg.APIPath = "/chat/completions"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	return &GroqClient{
		baseURL:    cfg.BaseURL,
		apiPath:    cfg.APIPath,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		debug:      cfg.Debug,
	}
}

// Complete sends a chat completions request and decodes the response.
func (c *GroqClient) Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+c.apiPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	if c.debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] POST %s%s (%d messages, %d tools)\n",
			c.baseURL, c.apiPath, len(req.Messages), len(req.Tools))
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(errorBody))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if c.debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] response: %d choices\n", len(chatResp.Choices))
	}

	return &chatResp, nil
}

// Close closes idle connections held by the HTTP client.
func (c *GroqClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
