// Package main implements a mock vision-model server for offline
// development and testing of floor-plan analysis. It serves
// OpenAI-compatible /v1/chat/completions responses from JSON fixture
// files, so the analyze command can run fast, deterministic and
// offline. Point firecore at it with:
//
//	vision:
//	  provider: openai
//	  endpoint: http://localhost:11434/v1
//	  model: mock-vision
//
// Fixture files are JSON named by model ("mock-vision.json" maps to
// model "mock-vision"); the file content is returned verbatim as the
// assistant message. With no fixture directory a built-in empty
// analysis is served for every model.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

// chatMessage tolerates both plain-string and multimodal array content;
// the raw form is preserved so image parts pass through untouched.
type chatMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int             `json:"index"`
	Message      responseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type responseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// defaultAnalysis is served when no fixture matches: a valid empty
// analysis the parser will accept and default.
const defaultAnalysis = `{
  "confidence": 0.0,
  "summary": "mock analysis",
  "elements": {},
  "suggested_symbols": [],
  "scale": null
}`

type server struct {
	fixtures map[string]string
	calls    atomic.Int64
}

func newServer(fixtures map[string]string) *server {
	return &server{fixtures: fixtures}
}

// loadFixtures maps each *.json file in dir to the model named by its
// base filename.
func loadFixtures(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	fixtures := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", entry.Name(), err)
		}
		model := strings.TrimSuffix(entry.Name(), ".json")
		fixtures[model] = string(data)
	}
	return fixtures, nil
}

func main() {
	fixtureDir := flag.String("fixtures", "", "directory containing fixture response files")
	port := flag.Int("port", 11434, "port to listen on")
	flag.Parse()

	fixtures := map[string]string{}
	if *fixtureDir != "" {
		var err error
		if fixtures, err = loadFixtures(*fixtureDir); err != nil {
			log.Fatalf("Failed to load fixtures from %s: %v", *fixtureDir, err)
		}
		log.Printf("Loaded %d fixture(s) from %s", len(fixtures), *fixtureDir)
	}

	s := newServer(fixtures)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/chat/completions", s.handleChatCompletions)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Mock vision server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	callNum := s.calls.Add(1)
	log.Printf("[call %d] model=%s messages=%d", callNum, req.Model, len(req.Messages))

	content, ok := s.fixtures[req.Model]
	if !ok {
		content = defaultAnalysis
	}

	resp := chatResponse{
		ID:      fmt.Sprintf("mock-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []chatChoice{
			{
				Index:        0,
				Message:      responseMessage{Role: "assistant", Content: content},
				FinishReason: "stop",
			},
		},
		Usage: chatUsage{
			PromptTokens:     len(req.Messages) * 100,
			CompletionTokens: len(content) / 4,
			TotalTokens:      len(req.Messages)*100 + len(content)/4,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
