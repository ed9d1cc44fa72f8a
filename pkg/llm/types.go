package llm

// Message roles used in chat requests and responses.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message exchanged with the completions API.
// Content may be empty; Role is always set.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolFunctionParameters describes a function's parameters as a JSON Schema
// object: named properties plus the list of required parameter names.
type ToolFunctionParameters struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Required   []string               `json:"required"`
}

// ToolFunction describes one function advertised to the model.
type ToolFunction struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  ToolFunctionParameters `json:"parameters"`
}

// Tool wraps a ToolFunction with the API-level type tag ("function").
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ChatRequest is the outbound body for a chat completions call.
// Message order is conversation order. A request is built fresh per call
// and never reused.
type ChatRequest struct {
	Model      string    `json:"model"`
	Messages   []Message `json:"messages"`
	Tools      []Tool    `json:"tools"`
	ToolChoice string    `json:"tool_choice"`
}

// Choice is one candidate completion. Depending on the API completion mode
// the content arrives either as a structured message or as raw text.
type Choice struct {
	Message *Message `json:"message,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Content returns the text carried by the choice, preferring the structured
// message field and falling back to raw text. The second return is false when
// the choice carries neither.
func (c *Choice) Content() (string, bool) {
	if c.Message != nil {
		return c.Message.Content, true
	}
	if c.Text != "" {
		return c.Text, true
	}
	return "", false
}

// ChatResponse is the inbound body of a chat completions call.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}
