package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/tailscale/hujson"
)

var envIndirectRe = regexp.MustCompile(`^\$\{(\w+)\}$`)

// Load reads a JSONC config file, standardizes it to plain JSON, unmarshals
// it into Config, and applies defaults. A missing file yields the default
// configuration rather than an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// ResolveEnvIndirection expands a "${VAR}" value to the env var's content.
// Any other value is returned unchanged.
func ResolveEnvIndirection(s string) string {
	if m := envIndirectRe.FindStringSubmatch(s); m != nil {
		return os.Getenv(m[1])
	}
	return s
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Model.Driver == "" {
		cfg.Model.Driver = "openai"
	}
	if cfg.Model.Model == "" && cfg.Model.Driver == "openai" {
		cfg.Model.Model = "gpt-4o-mini"
	}
	if cfg.Assistant.MaxReplyTokens == 0 {
		cfg.Assistant.MaxReplyTokens = 500
	}
	if cfg.Assistant.MaxFollowUpTokens == 0 {
		cfg.Assistant.MaxFollowUpTokens = 300
	}
	if cfg.Assistant.Temperature == 0 {
		cfg.Assistant.Temperature = 0.7
	}
	// gpt-4o-mini published rates: $0.15 / $0.60 per million tokens.
	if cfg.Pricing.PromptPerMillion == 0 {
		cfg.Pricing.PromptPerMillion = 0.15
	}
	if cfg.Pricing.CompletionPerMillion == 0 {
		cfg.Pricing.CompletionPerMillion = 0.60
	}
	if cfg.Tasks.File == "" {
		cfg.Tasks.File = TasksPath()
	}
	if cfg.Events.BufferSize == 0 {
		cfg.Events.BufferSize = 256
	}
}
