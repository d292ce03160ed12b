// Package config holds the NOX configuration model and loading helpers.
package config

import "time"

// Config is the root configuration for NOX.
type Config struct {
	Model     ProviderConfig  `json:"model"`
	Assistant AssistantConfig `json:"assistant"`
	Pricing   PricingConfig   `json:"pricing"`
	Tasks     TasksConfig     `json:"tasks"`
	Events    EventsConfig    `json:"events"`
}

// ProviderConfig configures the completion-service provider.
type ProviderConfig struct {
	Driver  string         `json:"driver"` // "openai", "claude", "ollama"
	Model   string         `json:"model"`
	BaseURL string         `json:"base_url,omitempty"`
	Auth    AuthConfig     `json:"auth"`
	Timeout Duration       `json:"timeout,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

// AuthConfig configures API key resolution. An empty APIKey falls back to the
// well-known credential file, then to the driver's default env var.
type AuthConfig struct {
	APIKey string `json:"api_key,omitempty"` // direct key or ${ENV_VAR} indirection
}

// AssistantConfig bounds the two completion calls of a turn.
type AssistantConfig struct {
	MaxReplyTokens    int     `json:"max_reply_tokens"`     // first call budget
	MaxFollowUpTokens int     `json:"max_follow_up_tokens"` // post-tool call budget
	Temperature       float64 `json:"temperature"`
}

// PricingConfig holds per-token rates in USD per million tokens.
// Defaults track OpenAI's published gpt-4o-mini pricing.
type PricingConfig struct {
	PromptPerMillion     float64 `json:"prompt_per_million"`
	CompletionPerMillion float64 `json:"completion_per_million"`
}

// PromptRate returns the USD cost of a single prompt token.
func (p PricingConfig) PromptRate() float64 { return p.PromptPerMillion / 1e6 }

// CompletionRate returns the USD cost of a single completion token.
func (p PricingConfig) CompletionRate() float64 { return p.CompletionPerMillion / 1e6 }

// TasksConfig configures the task document.
type TasksConfig struct {
	File string `json:"file"` // path to the tasks JSON document
}

// EventsConfig holds event bus settings.
type EventsConfig struct {
	BufferSize int `json:"buffer_size"`
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}
