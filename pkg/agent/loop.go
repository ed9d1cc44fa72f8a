// Package agent implements the conversation driver and the dispatch loop:
// one user turn in, zero or more function dispatches, final answers out.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/soypete/funcchat/pkg/llm"
	"github.com/soypete/funcchat/pkg/toolformat"
	"github.com/soypete/funcchat/pkg/tools"
)

// Context policies for follow-up requests after a function dispatch.
const (
	// ContextMinimal sends only the handler result as a fresh single-message
	// request (the original behavior: each round-trip starts a minimal context).
	ContextMinimal = "minimal"
	// ContextFull carries the prior conversation, system prompt, and tool
	// declarations forward into the follow-up request.
	ContextFull = "full"
)

// DefaultMaxRounds bounds function-call continuation per user turn.
// Termination otherwise relies on the model eventually producing marker-free
// text, which is not a guarantee worth betting an availability budget on.
const DefaultMaxRounds = 8

// Events receives notifications as a turn progresses. All callbacks are
// optional and are invoked synchronously, in choice order.
type Events struct {
	// OnAnswer is called when a choice carries a final answer.
	OnAnswer func(text string)
	// OnFunctionCall is called when an intent has resolved to a handler,
	// before the handler runs.
	OnFunctionCall func(call *toolformat.FunctionCall)
	// OnFunctionResult is called with the handler's result text.
	OnFunctionResult func(call *toolformat.FunctionCall, result string)
	// OnDiagnostic is called for recoverable conditions: malformed
	// parameters, unknown handler names, continuation cap reached.
	OnDiagnostic func(format string, args ...interface{})
}

// Config configures a Loop.
type Config struct {
	Backend      llm.Backend
	Registry     *tools.Registry
	Extractor    toolformat.Extractor // defaults to the marker extractor
	Model        string
	SystemPrompt string
	MaxRounds    int    // defaults to DefaultMaxRounds
	ContextPolicy string // ContextMinimal (default) or ContextFull
	Events       Events
}

// Loop drives one user turn to completion: it builds the initial request,
// inspects each response choice in order, dispatches function-call intents
// to registered handlers, and continues the conversation with handler
// results until every branch has produced a final answer or a terminal
// diagnostic.
//
// A Loop is stateless across turns; each RunTurn owns its own
// request/response chain, so separate sessions can use separate Loops with
// no cross-talk.
type Loop struct {
	config Config
}

// NewLoop creates a dispatch loop.
func NewLoop(config Config) *Loop {
	if config.Extractor == nil {
		config.Extractor = toolformat.NewMarkerExtractor()
	}
	if config.MaxRounds == 0 {
		config.MaxRounds = DefaultMaxRounds
	}
	if config.ContextPolicy == "" {
		config.ContextPolicy = ContextMinimal
	}
	return &Loop{config: config}
}

// RunTurn processes one user turn and returns the final answers, one per
// terminal choice. A transport or endpoint failure aborts the turn; the
// error is returned along with any answers collected before the failure.
func (l *Loop) RunTurn(ctx context.Context, userInput string) ([]string, error) {
	req := l.initialRequest(userInput)

	resp, err := l.config.Backend.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	var answers []string
	if err := l.processResponse(ctx, req, resp, 0, &answers); err != nil {
		return answers, err
	}
	return answers, nil
}

// initialRequest builds the first request of a turn: system prompt, tool
// declarations (advisory metadata for the endpoint), and the user's text.
func (l *Loop) initialRequest(userInput string) *llm.ChatRequest {
	return &llm.ChatRequest{
		Model: l.config.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: l.config.SystemPrompt},
			{Role: llm.RoleUser, Content: userInput},
		},
		Tools:      l.config.Registry.Declarations(),
		ToolChoice: "auto",
	}
}

// processResponse inspects each choice in response order. Choices are
// processed sequentially, depth-first: a dispatched follow-up is fully
// resolved before the next choice is inspected, so handler side effects and
// printed output keep a deterministic order.
//
// round counts follow-up requests issued so far on this branch; it is
// bounded by MaxRounds.
func (l *Loop) processResponse(ctx context.Context, prior *llm.ChatRequest, resp *llm.ChatResponse, round int, answers *[]string) error {
	for i := range resp.Choices {
		text, ok := resp.Choices[i].Content()
		if !ok {
			l.diagnostic("choice %d carries neither message nor text", i)
			continue
		}

		call, err := l.config.Extractor.Extract(text)
		if err != nil {
			if errors.Is(err, toolformat.ErrMalformedParams) {
				// Recoverable: the intent is dropped, the branch ends.
				l.diagnostic("invalid parameter format: %v", err)
				continue
			}
			return fmt.Errorf("intent extraction failed: %w", err)
		}

		if call == nil {
			*answers = append(*answers, text)
			if l.config.Events.OnAnswer != nil {
				l.config.Events.OnAnswer(text)
			}
			continue
		}

		handler, found := l.config.Registry.Lookup(call.Name)
		if !found {
			l.diagnostic("function %q not found in registry", call.Name)
			continue
		}

		if round >= l.config.MaxRounds {
			l.diagnostic("continuation limit of %d rounds reached, dropping call to %q", l.config.MaxRounds, call.Name)
			continue
		}

		if l.config.Events.OnFunctionCall != nil {
			l.config.Events.OnFunctionCall(call)
		}

		// Parameter-shape failures are conversational data: the error text
		// flows back to the model like any other handler result.
		var result string
		if err := tools.ValidateParams(handler, call.Params); err != nil {
			result = fmt.Sprintf("Error: %v", err)
		} else {
			result = handler.Execute(call.Params)
		}

		if l.config.Events.OnFunctionResult != nil {
			l.config.Events.OnFunctionResult(call, result)
		}

		followup := l.followupRequest(prior, text, result)
		next, err := l.config.Backend.Complete(ctx, followup)
		if err != nil {
			return fmt.Errorf("follow-up request failed: %w", err)
		}

		if err := l.processResponse(ctx, followup, next, round+1, answers); err != nil {
			return err
		}
	}

	return nil
}

// followupRequest builds the continuation request carrying a handler result
// back to the model. The result is wrapped as a user message, as if a human
// had supplied the computed answer.
func (l *Loop) followupRequest(prior *llm.ChatRequest, assistantText, result string) *llm.ChatRequest {
	if l.config.ContextPolicy == ContextFull {
		messages := make([]llm.Message, 0, len(prior.Messages)+2)
		messages = append(messages, prior.Messages...)
		messages = append(messages,
			llm.Message{Role: llm.RoleAssistant, Content: assistantText},
			llm.Message{Role: llm.RoleUser, Content: result},
		)
		return &llm.ChatRequest{
			Model:      l.config.Model,
			Messages:   messages,
			Tools:      l.config.Registry.Declarations(),
			ToolChoice: "auto",
		}
	}

	return &llm.ChatRequest{
		Model: l.config.Model,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: result},
		},
		Tools:      []llm.Tool{},
		ToolChoice: "auto",
	}
}

func (l *Loop) diagnostic(format string, args ...interface{}) {
	if l.config.Events.OnDiagnostic != nil {
		l.config.Events.OnDiagnostic(format, args...)
	}
}
