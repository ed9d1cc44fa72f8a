package toolformat

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestMarkerExtractorExtract(t *testing.T) {
	extractor := NewMarkerExtractor()

	tests := []struct {
		name      string
		response  string
		wantName  string
		wantRaw   string
		wantNil   bool
		malformed bool
	}{
		{
			name:     "plain marker",
			response: `<function=calculate{"a": 6, "b": 3, "operation": "+"}>`,
			wantName: "calculate",
			wantRaw:  `{"a": 6, "b": 3, "operation": "+"}`,
		},
		{
			name:     "marker embedded in prose",
			response: `Let me work that out. <function=calculate{"a": 1, "b": 2, "operation": "*"}> One moment.`,
			wantName: "calculate",
			wantRaw:  `{"a": 1, "b": 2, "operation": "*"}`,
		},
		{
			name:     "nested object parameters",
			response: `<function=lookup{"query": {"field": "name", "value": "x"}, "limit": 1}>`,
			wantName: "lookup",
			wantRaw:  `{"query": {"field": "name", "value": "x"}, "limit": 1}`,
		},
		{
			name:     "braces inside string literal",
			response: `<function=echo{"text": "curly {braces} here"}>`,
			wantName: "echo",
			wantRaw:  `{"text": "curly {braces} here"}`,
		},
		{
			name:     "underscore and digits in name",
			response: `<function=get_time_24{"zone": "UTC"}>`,
			wantName: "get_time_24",
			wantRaw:  `{"zone": "UTC"}`,
		},
		{
			name:     "no marker",
			response: "The answer is 9. Anything else?",
			wantNil:  true,
		},
		{
			name:     "function word without marker grammar",
			response: "I can call a function=calculate for you.",
			wantNil:  true,
		},
		{
			name:      "invalid JSON parameters",
			response:  `<function=calculate{not json}>`,
			malformed: true,
		},
		{
			name:      "unterminated parameter object",
			response:  `<function=calculate{"a": 6`,
			malformed: true,
		},
		{
			name:      "missing closing angle bracket",
			response:  `<function=calculate{"a": 6} and more text`,
			malformed: true,
		},
		{
			name:      "stray bracket between span and close",
			response:  `<function=calculate{"a": 6}]>`,
			malformed: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			call, err := extractor.Extract(tc.response)

			if tc.malformed {
				if !errors.Is(err, ErrMalformedParams) {
					t.Fatalf("want ErrMalformedParams, got call=%v err=%v", call, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if tc.wantNil {
				if call != nil {
					t.Fatalf("want no intent, got %+v", call)
				}
				return
			}
			if call == nil {
				t.Fatal("want intent, got none")
			}
			if call.Name != tc.wantName {
				t.Errorf("Name = %q, want %q", call.Name, tc.wantName)
			}
			if call.RawParams != tc.wantRaw {
				t.Errorf("RawParams = %q, want %q", call.RawParams, tc.wantRaw)
			}
			if call.Params == nil {
				t.Error("Params should be decoded")
			}
		})
	}
}

// Re-serializing extracted parameters and re-matching must yield the same
// function name: extraction is stable under round-trip.
func TestMarkerExtractorRoundTrip(t *testing.T) {
	extractor := NewMarkerExtractor()

	original := `<function=calculate{"a": 6, "b": 3, "operation": "+"}>`
	call, err := extractor.Extract(original)
	if err != nil || call == nil {
		t.Fatalf("Extract failed: call=%v err=%v", call, err)
	}

	reserialized, err := json.Marshal(call.Params)
	if err != nil {
		t.Fatalf("re-serialize failed: %v", err)
	}

	again, err := extractor.Extract(fmt.Sprintf("<function=%s%s>", call.Name, reserialized))
	if err != nil || again == nil {
		t.Fatalf("re-match failed: call=%v err=%v", again, err)
	}
	if again.Name != call.Name {
		t.Errorf("round-trip name = %q, want %q", again.Name, call.Name)
	}
	if len(again.Params) != len(call.Params) {
		t.Errorf("round-trip params = %v, want %v", again.Params, call.Params)
	}
}

func TestMarkerExtractorIdempotent(t *testing.T) {
	extractor := NewMarkerExtractor()
	input := `<function=calculate{broken>`

	_, err1 := extractor.Extract(input)
	_, err2 := extractor.Extract(input)

	if !errors.Is(err1, ErrMalformedParams) || !errors.Is(err2, ErrMalformedParams) {
		t.Fatalf("want ErrMalformedParams both times, got %v / %v", err1, err2)
	}
	if err1.Error() != err2.Error() {
		t.Errorf("diagnostics differ across identical inputs: %q vs %q", err1, err2)
	}
}
