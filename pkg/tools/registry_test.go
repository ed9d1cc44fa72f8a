package tools

import (
	"strings"
	"testing"

	"github.com/soypete/funcchat/pkg/llm"
)

// echoHandler is a minimal handler for registry tests.
type echoHandler struct {
	name string
}

func (h *echoHandler) Name() string        { return h.name }
func (h *echoHandler) Description() string { return "echoes its input" }
func (h *echoHandler) Schema() llm.ToolFunctionParameters {
	return llm.ToolFunctionParameters{
		Type: "object",
		Properties: map[string]interface{}{
			"text": map[string]interface{}{"type": "string"},
		},
		Required: []string{"text"},
	}
}
func (h *echoHandler) Execute(params map[string]interface{}) string {
	text, _ := params["text"].(string)
	return text
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(&echoHandler{name: "echo"}, NewCalculator())
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	if reg.Count() != 2 {
		t.Errorf("Count() = %d, want 2", reg.Count())
	}

	if _, ok := reg.Lookup("calculate"); !ok {
		t.Error("Lookup(calculate) should succeed")
	}
	if _, ok := reg.Lookup("nonexistent"); ok {
		t.Error("Lookup(nonexistent) should fail")
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "calculate" || names[1] != "echo" {
		t.Errorf("Names() = %v, want sorted [calculate echo]", names)
	}
}

func TestNewRegistryDuplicateName(t *testing.T) {
	_, err := NewRegistry(&echoHandler{name: "echo"}, &echoHandler{name: "echo"})
	if err == nil {
		t.Fatal("expected error for duplicate handler name")
	}
	if !strings.Contains(err.Error(), "echo") {
		t.Errorf("error should name the duplicate handler: %v", err)
	}
}

func TestDeclarations(t *testing.T) {
	reg, err := NewRegistry(NewCalculator())
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	decls := reg.Declarations()
	if len(decls) != 1 {
		t.Fatalf("got %d declarations, want 1", len(decls))
	}
	if decls[0].Type != "function" {
		t.Errorf("declaration type = %q, want function", decls[0].Type)
	}
	if decls[0].Function.Name != "calculate" {
		t.Errorf("declaration name = %q, want calculate", decls[0].Function.Name)
	}
	if len(decls[0].Function.Parameters.Required) != 3 {
		t.Errorf("calculator declares %d required params, want 3", len(decls[0].Function.Parameters.Required))
	}
}

func TestValidateParams(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name    string
		params  map[string]interface{}
		wantErr bool
	}{
		{
			name:    "valid",
			params:  map[string]interface{}{"a": 6.0, "b": 3.0, "operation": "+"},
			wantErr: false,
		},
		{
			name:    "missing required field",
			params:  map[string]interface{}{"a": 6.0, "operation": "+"},
			wantErr: true,
		},
		{
			name:    "wrong type",
			params:  map[string]interface{}{"a": "six", "b": 3.0, "operation": "+"},
			wantErr: true,
		},
		{
			name:    "operation outside enum",
			params:  map[string]interface{}{"a": 6.0, "b": 3.0, "operation": "^"},
			wantErr: true,
		},
		{
			name:    "extra field tolerated",
			params:  map[string]interface{}{"a": 6.0, "b": 3.0, "operation": "+", "note": "hi"},
			wantErr: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateParams(calc, tc.params)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateParams() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
