package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soypete/funcchat/pkg/config"
)

func TestIsExitCommand(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"exit", true},
		{"EXIT", true},
		{"Exit", true},
		{"quit", true},
		{"QUIT", true},
		{"exit now", false},
		{"hello", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, isExitCommand(tc.input))
		})
	}
}

func TestSessionHistory(t *testing.T) {
	session := NewSession(config.Default(), false)

	assert.NotEmpty(t, session.ID)
	assert.Empty(t, session.GetHistory())

	session.AddToHistory("first")
	session.AddToHistory("second")

	history := session.GetHistory()
	assert.Equal(t, []string{"first", "second"}, history)

	// Mutating the copy must not affect the session.
	history[0] = "mutated"
	assert.Equal(t, "first", session.GetHistory()[0])
}

func TestOutputPrefixes(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput()
	out.SetWriter(&buf)

	out.PrintAnswer("The answer is 9.")
	out.PrintFunctionCall("calculate", `{"a": 6}`)
	out.PrintFunctionResult("The result of 6 + 3 is 9")
	out.PrintError("function %q not found\n", "nope")

	got := buf.String()
	assert.Contains(t, got, "🤖 Chatbot: The answer is 9.")
	assert.Contains(t, got, "🤖 Model requested function: calculate")
	assert.Contains(t, got, `📥 With parameters: {"a": 6}`)
	assert.Contains(t, got, "📤 Function output: The result of 6 + 3 is 9")
	assert.Contains(t, got, `❌ function "nope" not found`)
}
