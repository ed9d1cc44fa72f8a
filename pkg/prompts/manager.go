// Package prompts manages the system prompt: an embedded default template
// with optional user overrides from a YAML file.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/soypete/funcchat/pkg/toolformat"
	"github.com/soypete/funcchat/pkg/tools"
)

// Overrides is the shape of the optional prompts file. Any template may use
// {{.ToolsSection}} to splice in the rendered capability list.
type Overrides struct {
	System string `yaml:"system"`
}

// Manager resolves prompt templates: file override first, embedded default
// as fallback.
type Manager struct {
	overridePath string
}

// NewManager creates a prompt manager reading overrides from
// ~/.funcchat/prompts.yaml.
func NewManager() *Manager {
	home, _ := os.UserHomeDir()
	return &Manager{
		overridePath: filepath.Join(home, ".funcchat", "prompts.yaml"),
	}
}

// NewManagerWithPath creates a prompt manager with a custom overrides file.
func NewManagerWithPath(path string) *Manager {
	return &Manager{overridePath: path}
}

// SystemPrompt renders the system prompt for the given registry.
func (m *Manager) SystemPrompt(registry *tools.Registry) (string, error) {
	tmplText := defaultSystemPrompt

	if override, err := m.loadOverrides(); err != nil {
		return "", err
	} else if override != nil && override.System != "" {
		tmplText = override.System
	}

	tmpl, err := template.New("system").Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("failed to parse system prompt template: %w", err)
	}

	data := struct {
		ToolsSection string
	}{
		ToolsSection: toolformat.FormatToolsForPrompt(registry),
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render system prompt: %w", err)
	}

	return sb.String(), nil
}

// loadOverrides reads the overrides file. A missing file is not an error.
func (m *Manager) loadOverrides() (*Overrides, error) {
	data, err := os.ReadFile(m.overridePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var override Overrides
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}
	return &override, nil
}
