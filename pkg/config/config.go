// Package config loads the funcchat configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the config file looked up in the working directory and
// the home directory.
const DefaultFileName = ".funcchat.json"

// Config represents the funcchat configuration. The API credential is never
// part of it; that comes from the environment.
type Config struct {
	Model    ModelConfig    `json:"model"`
	API      APIConfig      `json:"api"`
	Loop     LoopConfig     `json:"loop"`
	Database DatabaseConfig `json:"database"`
	Debug    bool           `json:"debug"`
}

// ModelConfig contains model configuration.
type ModelConfig struct {
	Name string `json:"name"`
}

// APIConfig contains endpoint settings.
type APIConfig struct {
	BaseURL        string `json:"base_url"`
	Path           string `json:"path"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// LoopConfig contains dispatch loop settings.
type LoopConfig struct {
	// MaxRounds bounds function-call continuation per user turn.
	MaxRounds int `json:"max_rounds"`
	// ContextPolicy is "minimal" (follow-ups carry only the handler result)
	// or "full" (prior conversation and declarations carried forward).
	ContextPolicy string `json:"context_policy"`
}

// DatabaseConfig contains optional transcript persistence settings.
// An empty URL disables persistence entirely.
type DatabaseConfig struct {
	URL string `json:"url"`
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadDefault loads .funcchat.json from the current directory or home.
// A missing file is not an error: the defaults work out of the box.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(DefaultFileName); err == nil {
		return Load(DefaultFileName)
	}

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, DefaultFileName)
		if _, err := os.Stat(homePath); err == nil {
			return Load(homePath)
		}
	}

	return Default(), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	config := &Config{}
	config.setDefaults()
	return config
}

func (c *Config) setDefaults() {
	if c.Model.Name == "" {
		c.Model.Name = "llama-3.3-70b-versatile"
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.API.Path == "" {
		c.API.Path = "/chat/completions"
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 120
	}
	if c.Loop.MaxRounds == 0 {
		c.Loop.MaxRounds = 8
	}
	if c.Loop.ContextPolicy == "" {
		c.Loop.ContextPolicy = "minimal"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Loop.MaxRounds < 1 {
		return fmt.Errorf("loop.max_rounds must be at least 1, got %d", c.Loop.MaxRounds)
	}
	if c.Loop.ContextPolicy != "minimal" && c.Loop.ContextPolicy != "full" {
		return fmt.Errorf("loop.context_policy must be %q or %q, got %q", "minimal", "full", c.Loop.ContextPolicy)
	}
	if c.API.TimeoutSeconds < 1 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	return nil
}
