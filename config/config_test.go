package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DP_EMAIL", "DP_PASSWORD", "TG_TOKEN", "TG_CHAT_ID", "BARK_URL", "PROXY_URL", "CHROME_PATH", "HEADLESS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if !Cfg.Headless {
		t.Errorf("expected headless default true")
	}
	if Cfg.MaxRetries != 3 {
		t.Errorf("expected default retries 3, got %d", Cfg.MaxRetries)
	}
	if Cfg.RetryDelay != 30*time.Second {
		t.Errorf("unexpected retry delay: %v", Cfg.RetryDelay)
	}
	if Cfg.ResultPath != "renewal_results.json" {
		t.Errorf("unexpected result path: %s", Cfg.ResultPath)
	}
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "email: file@example.com\npassword: filepass\nmaxRetries: 5\nheadless: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("DP_EMAIL", "env@example.com")
	t.Setenv("HEADLESS", "true")
	t.Setenv("TG_CHAT_ID", "12345")

	if err := Load(path); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if Cfg.Email != "env@example.com" {
		t.Errorf("expected env to override file, got %s", Cfg.Email)
	}
	if Cfg.Password != "filepass" {
		t.Errorf("expected password from file, got %s", Cfg.Password)
	}
	if Cfg.MaxRetries != 5 {
		t.Errorf("expected retries from file, got %d", Cfg.MaxRetries)
	}
	if !Cfg.Headless {
		t.Errorf("expected HEADLESS env to override file")
	}
	if Cfg.Telegram.ChatID != 12345 {
		t.Errorf("unexpected chat id: %d", Cfg.Telegram.ChatID)
	}
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing credentials")
	}

	cfg.Email = "a@b.c"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error when password missing")
	}

	cfg.Password = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.MaxRetries = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for non-positive retries")
	}
}
