package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Should apply defaults when the environment is empty", func(t *testing.T) {
		t.Setenv("ASSISTANT_USE_MOCK_LLM", "1")
		t.Setenv("PORT", "")
		t.Setenv("OPENAI_MODEL", "")
		t.Setenv("ASSISTANT_TOOL_TIMEOUT", "")
		t.Setenv("ASSISTANT_HISTORY_LIMIT", "")

		cfg := Load()
		assert.Equal(t, "8000", cfg.Port)
		assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
		assert.Equal(t, 10*time.Second, cfg.ToolTimeout)
		assert.Equal(t, 0, cfg.HistoryLimit)
		assert.True(t, cfg.UseMockLLM)
	})

	t.Run("Should read the history limit from the environment", func(t *testing.T) {
		t.Setenv("ASSISTANT_USE_MOCK_LLM", "1")
		t.Setenv("ASSISTANT_HISTORY_LIMIT", "4")

		cfg := Load()
		assert.Equal(t, 4, cfg.HistoryLimit)
	})

	t.Run("Should fall back to the default on a bad history limit", func(t *testing.T) {
		t.Setenv("ASSISTANT_USE_MOCK_LLM", "1")
		t.Setenv("ASSISTANT_HISTORY_LIMIT", "four")

		cfg := Load()
		assert.Equal(t, 0, cfg.HistoryLimit)
	})

	t.Run("Should reject a negative history limit", func(t *testing.T) {
		t.Setenv("ASSISTANT_USE_MOCK_LLM", "1")
		t.Setenv("ASSISTANT_HISTORY_LIMIT", "-2")

		cfg := Load()
		assert.Equal(t, 0, cfg.HistoryLimit)
	})

	t.Run("Should parse the tool timeout", func(t *testing.T) {
		t.Setenv("ASSISTANT_USE_MOCK_LLM", "1")
		t.Setenv("ASSISTANT_TOOL_TIMEOUT", "3s")

		cfg := Load()
		assert.Equal(t, 3*time.Second, cfg.ToolTimeout)
	})
}
