package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/smartserve/driftguard-assistant/internal/adapters/driftguard"
	"github.com/smartserve/driftguard-assistant/internal/app/conversation"
	"github.com/smartserve/driftguard-assistant/internal/app/tools"
	"github.com/smartserve/driftguard-assistant/internal/domain"
)

type Server struct {
	svc      *conversation.Service
	status   tools.StatusAPI
	notifier tools.Notifier
}

func NewServer(svc *conversation.Service, status tools.StatusAPI, notifier tools.Notifier) http.Handler {
	s := &Server{svc: svc, status: status, notifier: notifier}
	mux := http.NewServeMux()

	mux.HandleFunc("/drift-query", s.handleDriftQuery)
	mux.HandleFunc("/sessions/", s.handleSessionHistory)
	mux.HandleFunc("/drift-status", s.handleDriftStatus)
	mux.HandleFunc("/test-slack", s.handleTestSlack)
	mux.HandleFunc("/healthz", s.handleHealthz)

	return chainMiddlewares(mux, withRequestID, withLogging, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type driftQueryRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Topic     string `json:"topic"`
}

type driftQueryResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

type turnResponse struct {
	Role      string   `json:"role"`
	Text      string   `json:"text"`
	ToolCalls []string `json:"tool_calls,omitempty"`
}

type historyResponse struct {
	SessionID string         `json:"session_id"`
	Turns     []turnResponse `json:"turns"`
}

type driftStatusResponse struct {
	Status     string                 `json:"status"`
	Health     *driftguard.Health     `json:"health,omitempty"`
	Statistics *driftguard.Statistics `json:"statistics,omitempty"`
	Timestamp  string                 `json:"timestamp,omitempty"`
	Message    string                 `json:"message,omitempty"`
}

type testSlackRequest struct {
	Message string `json:"message,omitempty"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleDriftQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req driftQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		badRequest(w, "topic is required")
		return
	}

	out, err := s.svc.Ask(r.Context(), conversation.AskInput{
		SessionID: domain.SessionID(req.SessionID),
		Text:      req.Topic,
	})
	if err != nil {
		var gwErr *domain.ModelGatewayError
		if errors.As(err, &gwErr) {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": gwErr.Error()})
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, driftQueryResponse{
		SessionID: string(out.SessionID),
		Reply:     out.Reply,
	})
}

// /sessions/{id}/turns
func (s *Server) handleSessionHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "turns" {
		http.NotFound(w, r)
		return
	}
	sessionID := domain.SessionID(parts[0])

	turns, err := s.svc.History(r.Context(), sessionID)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		SessionID: string(sessionID),
		Turns:     toTurnsResponse(turns),
	})
}

// Quick status endpoint that bypasses the chatbot entirely.
func (s *Server) handleDriftStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	health, err := s.status.GetHealth(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, driftStatusResponse{
			Status:  "error",
			Message: "DriftGuard service unavailable",
		})
		return
	}

	stats, err := s.status.GetStatistics(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, driftStatusResponse{
			Status:  "error",
			Message: "DriftGuard service unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, driftStatusResponse{
		Status:     "success",
		Health:     health,
		Statistics: stats,
		Timestamp:  health.Time,
	})
}

func (s *Server) handleTestSlack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req testSlackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	message := req.Message
	if message == "" {
		message = "Test message from DriftGuard Assistant"
	}

	if err := s.notifier.Send(r.Context(), message); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "success",
		"test_message": message,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// Conversion helpers
// ─────────────────────────────────────────────

func toTurnsResponse(turns []domain.Turn) []turnResponse {
	out := make([]turnResponse, 0, len(turns))
	for _, t := range turns {
		tr := turnResponse{
			Role: string(t.Role),
			Text: t.Text,
		}
		for _, call := range t.ToolCalls {
			tr.ToolCalls = append(tr.ToolCalls, call.Name)
		}
		out = append(out, tr)
	}
	return out
}

// ─────────────────────────────────────────────
// HTTP helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
