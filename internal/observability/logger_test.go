package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartserve/driftguard-assistant/internal/observability"
)

func TestLoggerFromContext(t *testing.T) {
	t.Run("Should return the base logger for a bare context", func(t *testing.T) {
		log := observability.LoggerFromContext(context.Background())
		assert.Same(t, observability.Logger(), log)
	})

	t.Run("Should attach request_id from the context", func(t *testing.T) {
		ctx := observability.WithRequestID(context.Background(), "req-1")
		log := observability.LoggerFromContext(ctx)
		assert.NotSame(t, observability.Logger(), log)
	})

	t.Run("Should attach session_id from the context", func(t *testing.T) {
		ctx := observability.WithSessionID(context.Background(), "s1")
		log := observability.LoggerFromContext(ctx)
		assert.NotSame(t, observability.Logger(), log)
	})

	t.Run("Should ignore empty identifiers", func(t *testing.T) {
		ctx := observability.WithRequestID(context.Background(), "")
		ctx = observability.WithSessionID(ctx, "")
		log := observability.LoggerFromContext(ctx)
		assert.Same(t, observability.Logger(), log)
	})
}
