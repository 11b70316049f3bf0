package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setTestHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RORITUTOR_HOME", dir)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("RORITUTOR_MODEL", "")
	return dir
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	dir := setTestHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.ActiveProfile != "default" {
		t.Errorf("active profile = %q, want default", cfg.ActiveProfile)
	}
	if cfg.IsValid() {
		t.Error("fresh config with empty API key should not be valid")
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail with empty API key")
	}

	if _, err := os.Stat(filepath.Join(dir, ".roritutor", "config.json")); err != nil {
		t.Errorf("default config file not written: %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	setTestHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if got := cfg.GetModel(); got != DefaultModel {
		t.Errorf("GetModel = %q, want %q", got, DefaultModel)
	}
	if got := cfg.GetCompletionModel(); got != DefaultCompletionModel {
		t.Errorf("GetCompletionModel = %q, want %q", got, DefaultCompletionModel)
	}
	if got := cfg.GetBaseURL(); got != "" {
		t.Errorf("GetBaseURL = %q, want empty", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	setTestHome(t)
	t.Setenv("OPENAI_API_KEY", "sk-test-env")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("RORITUTOR_MODEL", "local-model")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.IsValid() {
		t.Error("config with env API key should be valid")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if got := cfg.GetAPIKey(); got != "sk-test-env" {
		t.Errorf("GetAPIKey = %q", got)
	}
	if got := cfg.GetBaseURL(); got != "http://localhost:8080/v1" {
		t.Errorf("GetBaseURL = %q", got)
	}
	if got := cfg.GetModel(); got != "local-model" {
		t.Errorf("GetModel = %q", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	setTestHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	cfg.Profiles["work"] = Profile{APIKey: "sk-work", Model: "gpt-4o"}
	cfg.ActiveProfile = "work"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ActiveProfile != "work" {
		t.Errorf("active profile = %q, want work", reloaded.ActiveProfile)
	}
	if got := reloaded.GetModel(); got != "gpt-4o" {
		t.Errorf("GetModel = %q, want gpt-4o", got)
	}
}

func TestMissingActiveProfileFallsBack(t *testing.T) {
	setTestHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	delete(cfg.Profiles, "default")
	cfg.Profiles["only"] = Profile{APIKey: "sk-only", Model: "gpt-4o-mini"}
	// ActiveProfile still points at the removed profile
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ActiveProfile != "only" {
		t.Errorf("active profile = %q, want only", reloaded.ActiveProfile)
	}
}

func TestLogFilePath(t *testing.T) {
	dir := setTestHome(t)

	path, err := LogFilePath()
	if err != nil {
		t.Fatalf("LogFilePath: %v", err)
	}
	want := filepath.Join(dir, ".roritutor", "logs", "api_requests.txt")
	if path != want {
		t.Errorf("LogFilePath = %q, want %q", path, want)
	}
}
