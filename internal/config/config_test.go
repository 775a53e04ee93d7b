package config

import (
	"log/slog"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "RENDERER", "LLM_MODEL", "LLM_FALLBACK_MODELS",
		"OPENROUTER_API_KEY", "OPENROUTER_BASE_URL", "LLM_TIMEOUT",
		"HISTORY_DB_PATH", "DECK_ID", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.Renderer != "template" {
		t.Errorf("Renderer = %q", cfg.Renderer)
	}
	if cfg.LLMTimeout != 10*time.Second {
		t.Errorf("LLMTimeout = %v", cfg.LLMTimeout)
	}
	if cfg.HistoryDBPath != "arcana.db" {
		t.Errorf("HistoryDBPath = %q", cfg.HistoryDBPath)
	}
	if cfg.DeckID != "rider_waite" {
		t.Errorf("DeckID = %q", cfg.DeckID)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("RENDERER", "openrouter")
	t.Setenv("OPENROUTER_API_KEY", "key")
	t.Setenv("LLM_FALLBACK_MODELS", "a/b, c/d ,")
	t.Setenv("LLM_TIMEOUT", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if len(cfg.LLMFallbackModels) != 2 || cfg.LLMFallbackModels[1] != "c/d" {
		t.Errorf("LLMFallbackModels = %v", cfg.LLMFallbackModels)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Errorf("LLMTimeout = %v", cfg.LLMTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"openrouter without key", map[string]string{"RENDERER": "openrouter"}},
		{"unknown renderer", map[string]string{"RENDERER": "markov"}},
		{"bad timeout", map[string]string{"LLM_TIMEOUT": "soon"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
