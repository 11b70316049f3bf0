package apilog

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	l, err := New(filepath.Join(t.TempDir(), "logs", "api_requests.txt"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func TestLogRedactsCredentials(t *testing.T) {
	l := newTestLogger(t)

	err := l.Log(Exchange{
		Endpoint: "https://api.openai.com/v1/chat/completions",
		Method:   "POST",
		Headers: map[string]string{
			"Authorization": "Bearer sk-secret-value",
			"api-key":       "sk-azure-secret",
			"Content-Type":  "application/json",
		},
		RequestBody:    map[string]any{"model": "gpt-4o-mini"},
		ResponseStatus: 200,
		ResponseBody:   map[string]any{"id": "chatcmpl-1"},
		Duration:       1234 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	content, err := l.Tail(1 << 20)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	if strings.Contains(content, "sk-secret-value") || strings.Contains(content, "sk-azure-secret") {
		t.Fatal("credential leaked into log file")
	}
	if !strings.Contains(content, Redacted) {
		t.Error("redaction marker missing")
	}
	if !strings.Contains(content, "application/json") {
		t.Error("non-sensitive header should survive")
	}
	if !strings.Contains(content, "Duration: 1.234s") {
		t.Errorf("duration missing from entry:\n%s", content)
	}
}

func TestLogAppendsEntries(t *testing.T) {
	l := newTestLogger(t)

	for i := 0; i < 3; i++ {
		if err := l.Log(Exchange{Endpoint: "https://example/v1", Method: "POST"}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	content, err := l.Tail(1 << 20)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if got := strings.Count(content, "=== API REQUEST ==="); got != 3 {
		t.Errorf("entry count = %d, want 3", got)
	}
}

func TestRequestOnlyEntryHasNoResponseSection(t *testing.T) {
	l := newTestLogger(t)

	if err := l.Log(Exchange{Endpoint: "https://example/v1", Method: "POST"}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	content, _ := l.Tail(1 << 20)
	if strings.Contains(content, "=== API RESPONSE ===") {
		t.Error("response section should be absent when no status was recorded")
	}
}

func TestTailTruncatesLongLogs(t *testing.T) {
	l := newTestLogger(t)

	for i := 0; i < 20; i++ {
		if err := l.Log(Exchange{Endpoint: "https://example/v1", Method: "POST"}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	content, err := l.Tail(100)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if !strings.HasPrefix(content, "...") {
		t.Error("truncated tail should start with ellipsis")
	}
	if len(content) > 103 {
		t.Errorf("tail length = %d, want <= 103", len(content))
	}
}

func TestClear(t *testing.T) {
	l := newTestLogger(t)

	if err := l.Log(Exchange{Endpoint: "https://example/v1", Method: "POST"}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := l.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	content, _ := l.Tail(1 << 20)
	if strings.Contains(content, "=== API REQUEST ===") {
		t.Error("entries should be gone after Clear")
	}
	if !strings.Contains(content, "Log cleared at") {
		t.Error("clear marker missing")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	if err := l.Log(Exchange{}); err != nil {
		t.Errorf("nil Log: %v", err)
	}
	if err := l.Clear(); err != nil {
		t.Errorf("nil Clear: %v", err)
	}
	if _, err := l.Tail(10); err != nil {
		t.Errorf("nil Tail: %v", err)
	}
}

func TestTailMissingFile(t *testing.T) {
	l := newTestLogger(t)
	content, err := l.Tail(100)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if content != "" {
		t.Errorf("Tail on missing file = %q, want empty", content)
	}
}
