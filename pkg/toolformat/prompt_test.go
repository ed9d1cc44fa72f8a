package toolformat

import (
	"strings"
	"testing"

	"github.com/soypete/funcchat/pkg/tools"
)

func TestFormatToolsForPrompt(t *testing.T) {
	registry, err := tools.NewRegistry(tools.NewCalculator())
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	prompt := FormatToolsForPrompt(registry)

	for _, want := range []string{
		"calculate",
		"Calculator tool",
		`"required"`,
		"<function=function_name",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}
}

func TestFormatToolsForPromptEmpty(t *testing.T) {
	registry, err := tools.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if got := FormatToolsForPrompt(registry); !strings.Contains(got, "No functions") {
		t.Errorf("empty registry prompt = %q", got)
	}
}
