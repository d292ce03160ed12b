package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# comment
NOX_DOTENV_A=hello
NOX_DOTENV_B="quoted value"
NOX_DOTENV_C='single'

not-a-pair
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("NOX_DOTENV_A", "preset")

	if err := LoadDotenv(path); err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}

	// Existing vars are never overridden.
	if got := os.Getenv("NOX_DOTENV_A"); got != "preset" {
		t.Errorf("NOX_DOTENV_A: got %q, want %q", got, "preset")
	}
	if got := os.Getenv("NOX_DOTENV_B"); got != "quoted value" {
		t.Errorf("NOX_DOTENV_B: got %q, want %q", got, "quoted value")
	}
	if got := os.Getenv("NOX_DOTENV_C"); got != "single" {
		t.Errorf("NOX_DOTENV_C: got %q, want %q", got, "single")
	}
	t.Cleanup(func() {
		os.Unsetenv("NOX_DOTENV_B")
		os.Unsetenv("NOX_DOTENV_C")
	})
}

func TestLoadDotenvMissing(t *testing.T) {
	if err := LoadDotenv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("missing .env should not error: %v", err)
	}
}
