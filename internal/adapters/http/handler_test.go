package httpadapter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartserve/driftguard-assistant/internal/adapters/driftguard"
	httpadapter "github.com/smartserve/driftguard-assistant/internal/adapters/http"
	"github.com/smartserve/driftguard-assistant/internal/adapters/llm"
	"github.com/smartserve/driftguard-assistant/internal/adapters/storage/memory"
	"github.com/smartserve/driftguard-assistant/internal/app/chatflow"
	"github.com/smartserve/driftguard-assistant/internal/app/conversation"
	"github.com/smartserve/driftguard-assistant/internal/app/executor"
	"github.com/smartserve/driftguard-assistant/internal/app/registry"
	"github.com/smartserve/driftguard-assistant/internal/domain"
)

type fakeStatusAPI struct {
	err error
}

func (f *fakeStatusAPI) GetHealth(context.Context) (*driftguard.Health, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &driftguard.Health{Status: "healthy", Time: "2026-08-29T10:00:00Z"}, nil
}

func (f *fakeStatusAPI) GetStatistics(context.Context) (*driftguard.Statistics, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &driftguard.Statistics{TotalRecords: 3, ActiveDrift: 1}, nil
}

func (f *fakeStatusAPI) GetActiveDrift(context.Context) (*driftguard.RecordList, error) {
	return &driftguard.RecordList{}, f.err
}

func (f *fakeStatusAPI) TriggerAnalysis(context.Context) (*driftguard.AnalysisAck, error) {
	return &driftguard.AnalysisAck{Status: "started"}, f.err
}

type fakeNotifier struct {
	err  error
	sent []string
}

func (f *fakeNotifier) Send(_ context.Context, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

// failingGateway simulates a model provider outage.
type failingGateway struct{}

func (failingGateway) Converse(context.Context, []domain.Turn, []domain.CapabilityDescriptor) (*domain.ModelReply, error) {
	return nil, errors.New("connection refused")
}

func newTestServer(t *testing.T, gateway domain.ModelGateway, status *fakeStatusAPI, notifier *fakeNotifier) http.Handler {
	t.Helper()

	reg := registry.New()
	store := memory.NewSessionStore()
	orch := chatflow.New(gateway, store, executor.New(reg), reg, llm.SystemPreamble)
	svc := conversation.NewService(orch, store)

	return httpadapter.NewServer(svc, status, notifier)
}

func TestDriftQuery(t *testing.T) {
	t.Run("Should answer a query and return the session id", func(t *testing.T) {
		srv := newTestServer(t, llm.NewMockGateway(), &fakeStatusAPI{}, &fakeNotifier{})

		body := []byte(`{"session_id":"s1","topic":"how is drift looking?"}`)
		req := httptest.NewRequest(http.MethodPost, "/drift-query", bytes.NewReader(body))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "s1", resp["session_id"])
		assert.NotEmpty(t, resp["reply"])
	})

	t.Run("Should reject an empty topic", func(t *testing.T) {
		srv := newTestServer(t, llm.NewMockGateway(), &fakeStatusAPI{}, &fakeNotifier{})

		req := httptest.NewRequest(http.MethodPost, "/drift-query", bytes.NewReader([]byte(`{"topic":""}`)))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should map a gateway outage to 502", func(t *testing.T) {
		srv := newTestServer(t, failingGateway{}, &fakeStatusAPI{}, &fakeNotifier{})

		req := httptest.NewRequest(http.MethodPost, "/drift-query", bytes.NewReader([]byte(`{"topic":"hi"}`)))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("Should expose turn history after a query", func(t *testing.T) {
		srv := newTestServer(t, llm.NewMockGateway(), &fakeStatusAPI{}, &fakeNotifier{})

		body := []byte(`{"session_id":"s1","topic":"hello"}`)
		req := httptest.NewRequest(http.MethodPost, "/drift-query", bytes.NewReader(body))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/sessions/s1/turns", nil)
		w = httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			SessionID string `json:"session_id"`
			Turns     []struct {
				Role string `json:"role"`
				Text string `json:"text"`
			} `json:"turns"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Turns, 1)
		assert.Equal(t, "assistant", resp.Turns[0].Role)
	})
}

func TestDriftStatus(t *testing.T) {
	t.Run("Should report health and statistics", func(t *testing.T) {
		srv := newTestServer(t, llm.NewMockGateway(), &fakeStatusAPI{}, &fakeNotifier{})

		req := httptest.NewRequest(http.MethodGet, "/drift-status", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp["status"])
		assert.NotNil(t, resp["statistics"])
	})

	t.Run("Should degrade to an error payload when DriftGuard is down", func(t *testing.T) {
		srv := newTestServer(t, llm.NewMockGateway(), &fakeStatusAPI{err: errors.New("down")}, &fakeNotifier{})

		req := httptest.NewRequest(http.MethodGet, "/drift-status", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp["status"])
	})
}

func TestTestSlack(t *testing.T) {
	t.Run("Should send the default test message", func(t *testing.T) {
		notifier := &fakeNotifier{}
		srv := newTestServer(t, llm.NewMockGateway(), &fakeStatusAPI{}, notifier)

		req := httptest.NewRequest(http.MethodPost, "/test-slack", bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, notifier.sent, 1)
	})

	t.Run("Should report a delivery failure without a 5xx", func(t *testing.T) {
		notifier := &fakeNotifier{err: errors.New("status 500")}
		srv := newTestServer(t, llm.NewMockGateway(), &fakeStatusAPI{}, notifier)

		req := httptest.NewRequest(http.MethodPost, "/test-slack", bytes.NewReader([]byte(`{"message":"hi"}`)))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp["status"])
	})
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGateway(), &fakeStatusAPI{}, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
