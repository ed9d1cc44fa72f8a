package toolformat

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// MarkerExtractor detects the `<function=NAME{PARAMS}>` grammar in model
// text. NAME matches [A-Za-z0-9_]+ and PARAMS is the brace-delimited JSON
// object immediately following it.
//
// The parameter span is found with a real brace scan (depth counter, aware
// of string literals), so nested objects in PARAMS are supported.
type MarkerExtractor struct{}

// NewMarkerExtractor creates a marker extractor.
func NewMarkerExtractor() *MarkerExtractor {
	return &MarkerExtractor{}
}

// markerRe locates the marker head; the parameter span is scanned manually
// starting at the opening brace.
var markerRe = regexp.MustCompile(`<function=([A-Za-z0-9_]+)\{`)

// Name returns the extractor name.
func (e *MarkerExtractor) Name() string {
	return "marker"
}

// Extract parses response text for a single function-call marker.
func (e *MarkerExtractor) Extract(response string) (*FunctionCall, error) {
	loc := markerRe.FindStringSubmatchIndex(response)
	if loc == nil {
		return nil, nil
	}

	name := response[loc[2]:loc[3]]

	// loc[3] is the index of the opening brace.
	rawParams, end, ok := braceSpan(response, loc[3])
	if !ok {
		return nil, fmt.Errorf("%w: unterminated parameter object for %q", ErrMalformedParams, name)
	}

	// The grammar requires the closing '>' right after the parameter span.
	if end >= len(response) || response[end] != '>' {
		return nil, fmt.Errorf("%w: marker for %q not closed with '>'", ErrMalformedParams, name)
	}

	var params map[string]interface{}
	if err := json.Unmarshal([]byte(rawParams), &params); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedParams, rawParams)
	}

	return &FunctionCall{
		Name:      name,
		Params:    params,
		RawParams: rawParams,
	}, nil
}

// braceSpan returns the balanced brace-delimited span starting at start
// (which must point at '{') and the index just past it. Braces inside JSON
// string literals do not count toward nesting depth.
func braceSpan(s string, start int) (span string, end int, ok bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], i + 1, true
			}
		}
	}

	return "", 0, false
}
