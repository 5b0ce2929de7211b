package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/normanking/taskmind/internal/orchestrator"
)

// Server exposes the assistant over HTTP. Authentication is delegated to
// whatever sits in front of it; the user id arrives in the X-User-ID header.
type Server struct {
	orch       *orchestrator.Orchestrator
	httpServer *http.Server
	startTime  time.Time
	logger     zerolog.Logger
}

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the POST /api/chat reply.
type ChatResponse struct {
	ConversationID string                  `json:"conversation_id"`
	Response       string                  `json:"response"`
	ToolCalls      []orchestrator.ToolCall `json:"tool_calls,omitempty"`
}

// HealthResponse is the GET /healthz reply.
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// New builds the HTTP server. addr is host:port.
func New(addr string, orch *orchestrator.Orchestrator, logger zerolog.Logger) *Server {
	s := &Server{
		orch:      orch,
		logger:    logger,
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.healthHandler)
	mux.HandleFunc("/api/chat", s.chatHandler)
	mux.HandleFunc("/ws", s.wsHandler)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server starting")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		http.Error(w, "X-User-ID header required", http.StatusBadRequest)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message required", http.StatusBadRequest)
		return
	}

	resp := s.orch.HandleRequest(r.Context(), orchestrator.Request{
		UserID:         userID,
		Message:        req.Message,
		ConversationID: req.ConversationID,
	})

	writeJSON(w, http.StatusOK, ChatResponse{
		ConversationID: resp.ConversationID,
		Response:       resp.Text,
		ToolCalls:      resp.ToolCalls,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
