package repl

import (
	"fmt"
	"io"
	"os"
)

// Output writes human-readable chat output. Prefixes distinguish the
// model's answers from status and diagnostic lines.
type Output struct {
	writer io.Writer
}

// NewOutput creates an output handler writing to stdout.
func NewOutput() *Output {
	return &Output{writer: os.Stdout}
}

// SetWriter sets the output writer.
func (o *Output) SetWriter(w io.Writer) {
	o.writer = w
}

// PrintMessage prints a plain message.
func (o *Output) PrintMessage(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, format, args...)
}

// PrintAnswer prints a final model answer.
func (o *Output) PrintAnswer(text string) {
	fmt.Fprintf(o.writer, "\n🤖 Chatbot: %s\n", text)
}

// PrintFunctionCall prints a resolved function-call intent.
func (o *Output) PrintFunctionCall(name, rawParams string) {
	fmt.Fprintf(o.writer, "\n🤖 Model requested function: %s\n", name)
	fmt.Fprintf(o.writer, "📥 With parameters: %s\n", rawParams)
}

// PrintFunctionResult prints a handler's result text.
func (o *Output) PrintFunctionResult(result string) {
	fmt.Fprintf(o.writer, "📤 Function output: %s\n", result)
	fmt.Fprintf(o.writer, "✅ Function executed\n")
}

// PrintError prints a diagnostic or error line.
func (o *Output) PrintError(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, "❌ "+format, args...)
}
