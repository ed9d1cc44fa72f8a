// Package toolformat extracts function-call intents from free-form model
// text. The extraction scheme is a strategy: alternative grammars can be
// swapped in without touching the dispatch loop.
package toolformat

import "errors"

// ErrMalformedParams reports a marker whose parameter span is not a valid
// JSON object. This is a recoverable condition, not a parser crash: the
// dispatch loop reports it and drops the intent.
var ErrMalformedParams = errors.New("malformed function parameters")

// FunctionCall is a function-call intent extracted from model text. It is
// transient: it exists only within one dispatch step.
type FunctionCall struct {
	Name      string
	Params    map[string]interface{}
	RawParams string
}

// Extractor extracts at most one function-call intent from response text.
//
// A nil call with a nil error means no intent was found and the text is the
// final answer. A non-nil error (wrapping ErrMalformedParams) means a marker
// was present but its parameters could not be decoded.
type Extractor interface {
	// Name returns the extractor name (e.g., "marker").
	Name() string

	// Extract parses response text for a function-call intent.
	Extract(response string) (*FunctionCall, error)
}
