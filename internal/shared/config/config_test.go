package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LLM_TOKEN_LADDER", "LLM_MODEL", "LLM_PROVIDER", "USAGE_STORE", "SPROUT_API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
	}
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.json"))

	cfg := Load()
	if cfg.Port != "8000" {
		t.Fatalf("expected default port 8000, got %s", cfg.Port)
	}
	if !reflect.DeepEqual(cfg.LLMTokenLadder, []int{3000, 2048, 1024}) {
		t.Fatalf("unexpected ladder: %v", cfg.LLMTokenLadder)
	}
	if cfg.LLMModel != "gpt-3.5-turbo" || cfg.LLMProvider != "openai" {
		t.Fatalf("unexpected llm defaults: %s %s", cfg.LLMProvider, cfg.LLMModel)
	}
	if cfg.LLMRateLimitCalls != 3 || cfg.LLMRateLimitWindow != time.Minute {
		t.Fatalf("unexpected limiter defaults: %d %s", cfg.LLMRateLimitCalls, cfg.LLMRateLimitWindow)
	}
	if cfg.UsageStore != "file" || cfg.UsageWarnTokens != 50000 {
		t.Fatalf("unexpected usage defaults: %s %d", cfg.UsageStore, cfg.UsageWarnTokens)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "*" {
		t.Fatalf("unexpected cors default: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadCredentialsFallbackToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"sprout_api_key":"sprout-file","openai_api_key":"openai-file"}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SPROUT_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "openai-env")

	cfg := Load()
	if cfg.SproutAPIKey != "sprout-file" {
		t.Fatalf("expected sprout key from file, got %q", cfg.SproutAPIKey)
	}
	if cfg.OpenAIAPIKey != "openai-env" {
		t.Fatalf("expected env to win over file, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.LLMAPIKey() != "openai-env" {
		t.Fatalf("expected openai key for default provider")
	}
}

func TestParseLadder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int
	}{
		{name: "empty", raw: "", want: []int{3000, 2048, 1024}},
		{name: "custom", raw: "4000, 1000", want: []int{4000, 1000}},
		{name: "invalid", raw: "4000,abc", want: []int{3000, 2048, 1024}},
		{name: "non-positive", raw: "0", want: []int{3000, 2048, 1024}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLadder(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parseLadder(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestUsageStoreFallsBackWithoutDatabase(t *testing.T) {
	t.Setenv("USAGE_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.json"))

	cfg := Load()
	if cfg.UsageStore != "file" {
		t.Fatalf("expected file store without DATABASE_URL, got %s", cfg.UsageStore)
	}
}
