// Package repl provides the interactive readline front end: it reads user
// lines, runs each one as an agent turn, and prints the results.
package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/soypete/funcchat/pkg/agent"
	"github.com/soypete/funcchat/pkg/storage"
	"github.com/soypete/funcchat/pkg/toolformat"
)

// REPL is the interactive chat loop.
type REPL struct {
	session   *Session
	loop      *agent.Loop
	store     *storage.TranscriptStore // nil disables persistence
	rl        *readline.Instance
	output    *Output
	turnCalls int // function dispatches in the current turn
}

// NewREPL creates a REPL around an agent loop configuration. The loop's
// event callbacks are wired to the REPL's output; any callbacks already set
// on loopConfig are replaced. store may be nil.
func NewREPL(session *Session, loopConfig agent.Config, store *storage.TranscriptStore) (*REPL, error) {
	output := NewOutput()

	r := &REPL{
		session: session,
		store:   store,
		output:  output,
	}

	loopConfig.Events = agent.Events{
		OnAnswer: func(text string) {
			output.PrintAnswer(text)
		},
		OnFunctionCall: func(call *toolformat.FunctionCall) {
			r.turnCalls++
			output.PrintFunctionCall(call.Name, call.RawParams)
		},
		OnFunctionResult: func(call *toolformat.FunctionCall, result string) {
			output.PrintFunctionResult(result)
		},
		OnDiagnostic: func(format string, args ...interface{}) {
			output.PrintError(format+"\n", args...)
		},
	}
	r.loop = agent.NewLoop(loopConfig)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "you> ",
		HistoryFile:     historyFilePath(),
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	r.rl = rl

	return r, nil
}

// Run starts the read-eval loop. It returns nil on a requested exit.
func (r *REPL) Run(ctx context.Context) error {
	defer r.Close()

	r.printWelcome()

	for {
		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				r.output.PrintMessage("\nGoodbye!\n")
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if isExitCommand(input) {
			r.output.PrintMessage("Exiting...\n")
			return nil
		}

		r.session.AddToHistory(input)
		r.runTurn(ctx, input)
	}
}

// runTurn executes one user turn. Turn failures are reported and the loop
// keeps prompting; only input errors end the REPL.
func (r *REPL) runTurn(ctx context.Context, input string) {
	r.turnCalls = 0

	answers, err := r.loop.RunTurn(ctx, input)
	if err != nil {
		r.output.PrintError("turn failed: %v\n", err)
		return
	}

	r.saveTranscript(ctx, input, answers)
}

// saveTranscript records the turn when persistence is configured.
// Persistence failures are diagnostics, never turn-fatal.
func (r *REPL) saveTranscript(ctx context.Context, input string, answers []string) {
	if r.store == nil {
		return
	}

	turn := &storage.Turn{
		SessionID:     r.session.ID,
		UserInput:     input,
		FinalAnswer:   strings.Join(answers, "\n"),
		FunctionCalls: r.turnCalls,
	}
	if err := r.store.SaveTurn(ctx, turn); err != nil {
		r.output.PrintError("failed to save transcript: %v\n", err)
	}
}

// isExitCommand reports whether input requests termination.
func isExitCommand(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true
	}
	return false
}

func (r *REPL) printWelcome() {
	r.output.PrintMessage("funcchat - chat with function calling\n")
	r.output.PrintMessage("Session: %s\n", r.session.ID)
	if r.session.DebugMode {
		r.output.PrintMessage("🐛 Debug mode enabled\n")
	}
	r.output.PrintMessage("Type 'exit' to quit\n\n")
}

// Close closes the REPL's input.
func (r *REPL) Close() error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// historyFilePath returns the readline history file location.
func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".funcchat_history")
}
