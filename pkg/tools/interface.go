// Package tools provides the function handlers the agent can dispatch to and
// the registry they are looked up in.
package tools

import "github.com/soypete/funcchat/pkg/llm"

// Handler is a locally registered function the model can request by name.
//
// Execute takes the decoded parameter object and always returns text: the
// result flows back into the conversation as ordinary content, so failures
// are reported as text beginning with "Error: " rather than as a Go error.
type Handler interface {
	// Name returns the handler name, the unique registry key.
	Name() string

	// Description returns the handler description advertised to the model.
	Description() string

	// Schema returns the JSON Schema for the handler's parameters.
	Schema() llm.ToolFunctionParameters

	// Execute runs the handler with the given parameters.
	Execute(params map[string]interface{}) string
}
