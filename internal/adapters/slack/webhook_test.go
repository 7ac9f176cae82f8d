package slack_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartserve/driftguard-assistant/internal/adapters/slack"
	"github.com/smartserve/driftguard-assistant/internal/domain"
)

func TestNotifier_Send(t *testing.T) {
	t.Run("Should post a block payload to the webhook", func(t *testing.T) {
		var received map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &received))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		n := slack.NewNotifier(srv.URL, 2*time.Second)
		require.NoError(t, n.Send(context.Background(), "2 active drifts in production"))

		require.NotNil(t, received)
		assert.Equal(t, "DriftGuard Report", received["text"])
		blocks, ok := received["blocks"].([]any)
		require.True(t, ok)
		assert.Len(t, blocks, 3)
	})

	t.Run("Should report NotConfigured when no webhook URL is set", func(t *testing.T) {
		n := slack.NewNotifier("", 2*time.Second)

		err := n.Send(context.Background(), "anything")
		require.ErrorIs(t, err, domain.ErrNotConfigured)
		assert.False(t, n.Configured())
	})

	t.Run("Should distinguish delivery failure from missing configuration", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		n := slack.NewNotifier(srv.URL, 2*time.Second)
		err := n.Send(context.Background(), "report")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotConfigured)
		assert.Contains(t, err.Error(), "status 500")
	})
}

func TestTruncate(t *testing.T) {
	t.Run("Should pass short messages through unchanged", func(t *testing.T) {
		assert.Equal(t, "short", slack.Truncate("short"))
	})

	t.Run("Should bound long messages and mark the cut", func(t *testing.T) {
		long := strings.Repeat("x", 5000)
		out := slack.Truncate(long)

		assert.Less(t, len(out), len(long))
		assert.Contains(t, out, "[Report truncated")
		assert.True(t, strings.HasPrefix(out, "xxx"))
	})

	t.Run("Should not split a multibyte rune at the cut", func(t *testing.T) {
		long := strings.Repeat("→", 1500)
		out := slack.Truncate(long)

		assert.True(t, utf8.ValidString(out))
		assert.Contains(t, out, "[Report truncated")
	})
}
