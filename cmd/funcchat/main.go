// funcchat is an interactive chat client for the Groq completions API with
// prompt-marker function calling: the model requests local functions with
// <function=name{...}> markers and the client feeds results back until a
// plain answer arrives.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/soypete/funcchat/pkg/agent"
	"github.com/soypete/funcchat/pkg/config"
	"github.com/soypete/funcchat/pkg/llm"
	"github.com/soypete/funcchat/pkg/prompts"
	"github.com/soypete/funcchat/pkg/repl"
	"github.com/soypete/funcchat/pkg/storage"
	"github.com/soypete/funcchat/pkg/tools"
)

var (
	configFile string
	debug      bool
	modelName  string
	maxRounds  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "funcchat",
		Short: "Chat with an LLM that can call local functions",
		Long: `funcchat talks to a Groq-hosted model and extends it with local
function calling: the model emits <function=name{...}> markers, funcchat
executes the named handler and feeds the result back until the model
produces a plain answer.

Requires GROQ_API_KEY in the environment.`,
		RunE: runChat,
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config file (default: .funcchat.json)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.Flags().StringVarP(&modelName, "model", "m", "", "Override the model name")
	rootCmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "Override the function-call continuation limit")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	apiKey := os.Getenv(llm.EnvAPIKey)
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "%s is not set.\n", llm.EnvAPIKey)
		fmt.Fprintf(os.Stderr, "Export your Groq API key, e.g.: export %s=gsk_...\n", llm.EnvAPIKey)
		os.Exit(1)
	}

	registry, err := tools.NewRegistry(tools.NewCalculator())
	if err != nil {
		return fmt.Errorf("failed to build registry: %w", err)
	}

	systemPrompt, err := prompts.NewManager().SystemPrompt(registry)
	if err != nil {
		return fmt.Errorf("failed to build system prompt: %w", err)
	}

	backend := llm.NewGroqClient(llm.GroqClientConfig{
		BaseURL: cfg.API.BaseURL,
		APIPath: cfg.API.Path,
		APIKey:  apiKey,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		Debug:   cfg.Debug,
	})
	defer backend.Close()

	var store *storage.TranscriptStore
	if cfg.Database.URL != "" {
		store, err = storage.Open(cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to open transcript store: %w", err)
		}
		defer store.Close()
	}

	session := repl.NewSession(cfg, cfg.Debug)

	r, err := repl.NewREPL(session, agent.Config{
		Backend:       backend,
		Registry:      registry,
		Model:         cfg.Model.Name,
		SystemPrompt:  systemPrompt,
		MaxRounds:     cfg.Loop.MaxRounds,
		ContextPolicy: cfg.Loop.ContextPolicy,
	}, store)
	if err != nil {
		return fmt.Errorf("failed to start REPL: %w", err)
	}

	return r.Run(context.Background())
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if debug {
		cfg.Debug = true
	}
	if modelName != "" {
		cfg.Model.Name = modelName
	}
	if maxRounds > 0 {
		cfg.Loop.MaxRounds = maxRounds
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
