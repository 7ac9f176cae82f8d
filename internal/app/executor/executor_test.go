package executor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartserve/driftguard-assistant/internal/app/executor"
	"github.com/smartserve/driftguard-assistant/internal/app/registry"
	"github.com/smartserve/driftguard-assistant/internal/domain"
)

type fakeCapability struct {
	name   string
	output string
	err    error
	panics bool

	calls []map[string]any
}

func (c *fakeCapability) Name() string        { return c.name }
func (c *fakeCapability) Description() string { return "fake " + c.name }
func (c *fakeCapability) ParameterSchema() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}
func (c *fakeCapability) Call(_ context.Context, args map[string]any) (string, error) {
	c.calls = append(c.calls, args)
	if c.panics {
		panic("capability exploded")
	}
	return c.output, c.err
}

func newExecutor(t *testing.T, caps ...domain.Capability) *executor.Executor {
	t.Helper()
	reg := registry.New()
	for _, c := range caps {
		require.NoError(t, reg.Register(c))
	}
	return executor.New(reg)
}

func TestExecutor_Execute(t *testing.T) {
	t.Run("Should return one result per request in request order", func(t *testing.T) {
		exec := newExecutor(t,
			&fakeCapability{name: "get_drift_statistics", output: "active=2"},
			&fakeCapability{name: "get_drift_health_check", output: "healthy"},
		)

		results := exec.Execute(context.Background(), []domain.ToolCall{
			{Name: "get_drift_health_check"},
			{Name: "get_drift_statistics"},
		})

		require.Len(t, results, 2)
		assert.Equal(t, "get_drift_health_check", results[0].Tool())
		assert.Equal(t, "get_drift_statistics", results[1].Tool())

		out, ok := results[1].Output()
		require.True(t, ok)
		assert.Equal(t, "active=2", out)
	})

	t.Run("Should isolate a failing call from its siblings", func(t *testing.T) {
		exec := newExecutor(t,
			&fakeCapability{name: "get_drift_statistics", output: "active=2"},
			&fakeCapability{name: "trigger_drift_analysis", err: errors.New("service unreachable")},
		)

		results := exec.Execute(context.Background(), []domain.ToolCall{
			{Name: "trigger_drift_analysis"},
			{Name: "get_drift_statistics"},
		})

		require.Len(t, results, 2)

		reason, failed := results[0].Failure()
		require.True(t, failed)
		assert.Equal(t, "trigger_drift_analysis", results[0].Tool())
		assert.Contains(t, reason, "service unreachable")

		out, ok := results[1].Output()
		require.True(t, ok)
		assert.Equal(t, "active=2", out)
	})

	t.Run("Should tag an unknown capability without aborting the list", func(t *testing.T) {
		exec := newExecutor(t,
			&fakeCapability{name: "get_drift_statistics", output: "active=2"},
		)

		results := exec.Execute(context.Background(), []domain.ToolCall{
			{Name: "get_nonexistent"},
			{Name: "get_drift_statistics"},
		})

		require.Len(t, results, 2)

		reason, failed := results[0].Failure()
		require.True(t, failed)
		assert.Equal(t, "get_nonexistent", results[0].Tool())
		assert.Contains(t, reason, "unknown capability")

		assert.False(t, results[1].Failed())
	})

	t.Run("Should convert a panicking capability into a failure result", func(t *testing.T) {
		exec := newExecutor(t,
			&fakeCapability{name: "get_drift_statistics", panics: true},
			&fakeCapability{name: "get_drift_health_check", output: "healthy"},
		)

		results := exec.Execute(context.Background(), []domain.ToolCall{
			{Name: "get_drift_statistics"},
			{Name: "get_drift_health_check"},
		})

		require.Len(t, results, 2)
		reason, failed := results[0].Failure()
		require.True(t, failed)
		assert.Contains(t, reason, "panic")
		assert.False(t, results[1].Failed())
	})

	t.Run("Should pass the model's arguments through to the capability", func(t *testing.T) {
		alert := &fakeCapability{name: "send_drift_alert_to_slack", output: "sent"}
		exec := newExecutor(t, alert)

		args := map[string]any{"resource_name": "web-app", "namespace": "production"}
		results := exec.Execute(context.Background(), []domain.ToolCall{
			{Name: "send_drift_alert_to_slack", Args: args},
		})

		require.Len(t, results, 1)
		require.Len(t, alert.calls, 1)
		assert.Equal(t, args, alert.calls[0])
	})

	t.Run("Should return an empty result list for no requests", func(t *testing.T) {
		exec := newExecutor(t)
		results := exec.Execute(context.Background(), nil)
		assert.Empty(t, results)
	})
}
