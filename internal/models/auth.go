package models

import (
	"fmt"
	"os"
	"strings"

	"github.com/noxhq/nox/internal/config"
)

// ResolveAPIKey resolves the credential for a provider.
// Resolution order: config key (with ${ENV} indirection) → well-known
// credential file → driver default env var. Absence is ErrMissingCredential.
func ResolveAPIKey(cfg config.ProviderConfig) (string, error) {
	if key := strings.TrimSpace(config.ResolveEnvIndirection(cfg.Auth.APIKey)); key != "" {
		return key, nil
	}

	if data, err := os.ReadFile(config.APIKeyPath()); err == nil {
		if key := strings.TrimSpace(string(data)); key != "" {
			return key, nil
		}
	}

	envVar, err := defaultEnvVar(cfg.Driver)
	if err != nil {
		return "", err
	}
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%w: set model.auth.api_key, %s, or %s", ErrMissingCredential, config.APIKeyPath(), envVar)
}

func defaultEnvVar(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case "openai", "":
		return "OPENAI_API_KEY", nil
	case "claude", "anthropic":
		return "ANTHROPIC_API_KEY", nil
	default:
		return "", fmt.Errorf("unknown driver %q: cannot resolve auth", driver)
	}
}
