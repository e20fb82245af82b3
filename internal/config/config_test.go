package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SURREALDB_URL", "SURREALDB_NAMESPACE", "SURREALDB_DATABASE",
		"SURREALDB_USER", "SURREALDB_PASS", "SURREALDB_AUTH_LEVEL",
		"OPENAI_API_KEY", "OPENAI_MODEL", "ELEVEN_API_KEY", "VOICE_ID",
		"LISTEN_ADDR", "CHAT_LOG_FILE", "CHAT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "ws://localhost:8000/rpc", cfg.SurrealDBURL)
	assert.Equal(t, "portfolio", cfg.SurrealDBNamespace)
	assert.Equal(t, "chat", cfg.SurrealDBDatabase)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "CwhRBWXzGAHq8TQ4Fs17", cfg.VoiceID)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)

	// Secrets have no defaults
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Empty(t, cfg.ElevenAPIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SURREALDB_URL", "ws://db:9000/rpc")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("CHAT_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "ws://db:9000/rpc", cfg.SurrealDBURL)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
