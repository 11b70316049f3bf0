package llm

import (
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriTutor/internal/config"
)

func loadTestConfig(t *testing.T, apiKey, baseURL string) *config.Config {
	t.Helper()
	t.Setenv("RORITUTOR_HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", apiKey)
	t.Setenv("OPENAI_BASE_URL", baseURL)
	t.Setenv("RORITUTOR_MODEL", "")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return cfg
}

func TestNewClientRejectsMissingCredentials(t *testing.T) {
	cfg := loadTestConfig(t, "", "")

	_, err := NewClient(cfg, nil)
	if err == nil {
		t.Fatal("NewClient should refuse a config without an API key")
	}
	if !strings.Contains(err.Error(), "configuration error") {
		t.Errorf("err = %v, want a configuration error", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	cfg := loadTestConfig(t, "sk-test", "")

	client, err := NewClient(cfg, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := client.BaseURL(); got != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", got, defaultBaseURL)
	}
	if got := client.Model(); got != config.DefaultModel {
		t.Errorf("Model = %q, want %q", got, config.DefaultModel)
	}
}

func TestCompletionUsage(t *testing.T) {
	reported := &openai.Usage{PromptTokens: 7, CompletionTokens: 12, TotalTokens: 19}
	if got := completionUsage(reported); got.TotalTokens != 19 {
		t.Errorf("TotalTokens = %d, want 19", got.TotalTokens)
	}

	if got := completionUsage(nil); got != (openai.Usage{}) {
		t.Errorf("missing usage should flatten to zero, got %+v", got)
	}
}

func TestNewClientCustomEndpoint(t *testing.T) {
	cfg := loadTestConfig(t, "sk-test", "http://localhost:11434/v1")

	client, err := NewClient(cfg, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := client.BaseURL(); got != "http://localhost:11434/v1" {
		t.Errorf("BaseURL = %q", got)
	}
}
