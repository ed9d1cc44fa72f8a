// funcchat-server exposes the function-calling chat agent over WebSocket.
// Each connection is its own session: turns are processed sequentially per
// connection, and no state is shared between connections beyond the
// read-only registry and backend.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/soypete/funcchat/pkg/agent"
	"github.com/soypete/funcchat/pkg/config"
	"github.com/soypete/funcchat/pkg/llm"
	"github.com/soypete/funcchat/pkg/prompts"
	"github.com/soypete/funcchat/pkg/toolformat"
	"github.com/soypete/funcchat/pkg/tools"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// wsMessage is the JSON frame exchanged over the socket.
// Client→server types: "user_input". Server→client types: "answer",
// "function_call", "function_result", "diagnostic", "error".
type wsMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type Server struct {
	config       *config.Config
	backend      llm.Backend
	registry     *tools.Registry
	systemPrompt string
}

func main() {
	port := flag.String("port", "8080", "HTTP server port")
	configPath := flag.String("config", "", "Config file path (default: .funcchat.json)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	apiKey := os.Getenv(llm.EnvAPIKey)
	if apiKey == "" {
		log.Fatalf("%s is not set", llm.EnvAPIKey)
	}

	registry, err := tools.NewRegistry(tools.NewCalculator())
	if err != nil {
		log.Fatalf("Failed to build registry: %v", err)
	}

	systemPrompt, err := prompts.NewManager().SystemPrompt(registry)
	if err != nil {
		log.Fatalf("Failed to build system prompt: %v", err)
	}

	server := &Server{
		config: cfg,
		backend: llm.NewGroqClient(llm.GroqClientConfig{
			BaseURL: cfg.API.BaseURL,
			APIPath: cfg.API.Path,
			APIKey:  apiKey,
			Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
			Debug:   cfg.Debug,
		}),
		registry:     registry,
		systemPrompt: systemPrompt,
	}

	http.HandleFunc("/ws", server.handleWebSocket)
	http.HandleFunc("/api/health", server.handleHealth)

	log.Printf("✅ funcchat-server listening on :%s", *port)
	if err := http.ListenAndServe(":"+*port, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"functions": s.registry.Names(),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()[:8]
	log.Printf("session %s connected from %s", sessionID, r.RemoteAddr)

	// Writes are serialized: event callbacks and the turn result share
	// the connection.
	var writeMu sync.Mutex
	send := func(msgType, content string) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(wsMessage{Type: msgType, Content: content}); err != nil {
			log.Printf("session %s write failed: %v", sessionID, err)
		}
	}

	// Each connection owns its own loop and request/response chains.
	loop := agent.NewLoop(agent.Config{
		Backend:       s.backend,
		Registry:      s.registry,
		Model:         s.config.Model.Name,
		SystemPrompt:  s.systemPrompt,
		MaxRounds:     s.config.Loop.MaxRounds,
		ContextPolicy: s.config.Loop.ContextPolicy,
		Events: agent.Events{
			OnAnswer: func(text string) {
				send("answer", text)
			},
			OnFunctionCall: func(call *toolformat.FunctionCall) {
				send("function_call", fmt.Sprintf("%s %s", call.Name, call.RawParams))
			},
			OnFunctionResult: func(call *toolformat.FunctionCall, result string) {
				send("function_result", result)
			},
			OnDiagnostic: func(format string, args ...interface{}) {
				send("diagnostic", fmt.Sprintf(format, args...))
			},
		},
	})

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("session %s disconnected: %v", sessionID, err)
			return
		}

		if msg.Type != "user_input" || msg.Content == "" {
			send("error", fmt.Sprintf("unsupported message type %q", msg.Type))
			continue
		}

		if _, err := loop.RunTurn(r.Context(), msg.Content); err != nil {
			send("error", fmt.Sprintf("turn failed: %v", err))
		}
	}
}
