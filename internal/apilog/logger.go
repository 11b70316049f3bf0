// Package apilog records raw API request/response exchanges to an
// append-only text file so learners can inspect what actually goes
// over the wire. Credentials are redacted before anything is written.
package apilog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Redacted replaces secret header values in the log output.
const Redacted = "[REDACTED]"

// sensitiveHeaders lists header names whose values must never reach
// the log file. Matching is case-insensitive.
var sensitiveHeaders = []string{"api-key", "authorization", "x-api-key"}

// Exchange describes one request/response round trip. Response fields
// are optional: a request that never got a response is still logged.
type Exchange struct {
	Endpoint       string
	Method         string
	Headers        map[string]string
	RequestBody    any
	ResponseStatus int
	ResponseBody   any
	Duration       time.Duration
}

// Logger appends exchanges to a single log file. The zero value is
// not usable; construct with New. A nil *Logger is safe to call and
// does nothing, so callers can disable logging by passing nil.
type Logger struct {
	mu   sync.Mutex
	path string
}

// New creates a logger writing to path, creating the parent
// directory if needed.
func New(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &Logger{path: path}, nil
}

// Path returns the log file location.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Log appends one exchange to the log file.
func (l *Logger) Log(ex Exchange) error {
	if l == nil {
		return nil
	}

	var b strings.Builder
	b.WriteString("\n=== API REQUEST ===\n")
	fmt.Fprintf(&b, "Timestamp: %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Endpoint: %s\n", ex.Endpoint)
	fmt.Fprintf(&b, "Method: %s\n", ex.Method)
	fmt.Fprintf(&b, "Headers: %s\n", prettyJSON(sanitizeHeaders(ex.Headers)))
	fmt.Fprintf(&b, "Request Body: %s\n", prettyJSON(ex.RequestBody))

	if ex.ResponseStatus != 0 {
		b.WriteString("\n=== API RESPONSE ===\n")
		fmt.Fprintf(&b, "Status Code: %d\n", ex.ResponseStatus)
		if ex.ResponseBody != nil {
			fmt.Fprintf(&b, "Response Body: %s\n", prettyJSON(ex.ResponseBody))
		}
		if ex.Duration > 0 {
			fmt.Fprintf(&b, "Duration: %.3fs\n", ex.Duration.Seconds())
		}
	}

	b.WriteString(strings.Repeat("=", 50) + "\n")

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}
	return nil
}

// Tail returns up to maxBytes from the end of the log file, for the
// "view logs" menu entry. An empty string means no logs yet.
func (l *Logger) Tail(maxBytes int) (string, error) {
	if l == nil {
		return "", nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read log file: %w", err)
	}

	if len(data) > maxBytes {
		return "..." + string(data[len(data)-maxBytes:]), nil
	}
	return string(data), nil
}

// Clear truncates the log file, leaving a marker line.
func (l *Logger) Clear() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	marker := fmt.Sprintf("Log cleared at %s\n", time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(l.path, []byte(marker), 0644); err != nil {
		return fmt.Errorf("failed to clear log file: %w", err)
	}
	return nil
}

// sanitizeHeaders copies headers with secret values replaced.
func sanitizeHeaders(headers map[string]string) map[string]string {
	safe := make(map[string]string, len(headers))
	for name, value := range headers {
		safe[name] = value
		for _, sensitive := range sensitiveHeaders {
			if strings.EqualFold(name, sensitive) {
				safe[name] = Redacted
				break
			}
		}
	}
	return safe
}

func prettyJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
