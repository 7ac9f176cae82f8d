package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	OpenAIAPIKey string
	OpenAIModel  string

	DriftGuardAPIURL string
	SlackWebhookURL  string

	// ToolTimeout bounds each remote call made by a capability.
	ToolTimeout time.Duration

	// HistoryLimit caps how many stored turns are replayed to the model.
	// Zero means no cap.
	HistoryLimit int

	UseMockLLM bool
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("invalid value in %s: %q, using default %d", key, v, def)
		return def
	}
	return n
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration in %s: %v, using default %s", key, err, def)
		return def
	}
	return d
}

// Load reads all env vars and builds the config. A .env file is honored when
// present, the same way the reference deployment loads its secrets.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8000"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		DriftGuardAPIURL: getEnv("DRIFTGUARD_API_URL", "http://localhost:8080"),
		SlackWebhookURL:  getEnv("SLACK_WEBHOOK_URL", ""),

		ToolTimeout:  getDurationEnv("ASSISTANT_TOOL_TIMEOUT", 10*time.Second),
		HistoryLimit: getIntEnv("ASSISTANT_HISTORY_LIMIT", 0),

		UseMockLLM: getBoolEnv("ASSISTANT_USE_MOCK_LLM", false),
	}

	if !cfg.UseMockLLM && cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY must be set (or ASSISTANT_USE_MOCK_LLM=1)")
	}

	return cfg
}
