package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.jsonc"))
	if err != nil {
		t.Fatalf("Load missing: %v", err)
	}
	if cfg.Model.Driver != "openai" {
		t.Errorf("Driver: got %q, want %q", cfg.Model.Driver, "openai")
	}
	if cfg.Model.Model != "gpt-4o-mini" {
		t.Errorf("Model: got %q, want %q", cfg.Model.Model, "gpt-4o-mini")
	}
	if cfg.Assistant.MaxReplyTokens != 500 || cfg.Assistant.MaxFollowUpTokens != 300 {
		t.Errorf("token budgets: got %d/%d, want 500/300",
			cfg.Assistant.MaxReplyTokens, cfg.Assistant.MaxFollowUpTokens)
	}
	if cfg.Assistant.Temperature != 0.7 {
		t.Errorf("Temperature: got %v, want 0.7", cfg.Assistant.Temperature)
	}
	if cfg.Pricing.PromptPerMillion != 0.15 || cfg.Pricing.CompletionPerMillion != 0.60 {
		t.Errorf("pricing: got %v/%v, want 0.15/0.60",
			cfg.Pricing.PromptPerMillion, cfg.Pricing.CompletionPerMillion)
	}
}

func TestLoadJSONCWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	content := `{
  // completion provider
  "model": {
    "driver": "ollama",
    "model": "llama3.2",
    "timeout": "45s",
  },
  "pricing": { "prompt_per_million": 1.5 },
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model.Driver != "ollama" {
		t.Errorf("Driver: got %q, want %q", cfg.Model.Driver, "ollama")
	}
	if cfg.Model.Timeout.Duration().Seconds() != 45 {
		t.Errorf("Timeout: got %v, want 45s", cfg.Model.Timeout.Duration())
	}
	if cfg.Pricing.PromptPerMillion != 1.5 {
		t.Errorf("PromptPerMillion: got %v, want 1.5", cfg.Pricing.PromptPerMillion)
	}
	// Unset fields still get defaults.
	if cfg.Pricing.CompletionPerMillion != 0.60 {
		t.Errorf("CompletionPerMillion: got %v, want 0.60", cfg.Pricing.CompletionPerMillion)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config, got nil")
	}
}

func TestResolveEnvIndirection(t *testing.T) {
	t.Setenv("NOX_TEST_KEY", "sk-123")

	if got := ResolveEnvIndirection("${NOX_TEST_KEY}"); got != "sk-123" {
		t.Errorf("indirection: got %q, want %q", got, "sk-123")
	}
	if got := ResolveEnvIndirection("sk-direct"); got != "sk-direct" {
		t.Errorf("direct value: got %q, want %q", got, "sk-direct")
	}
}
