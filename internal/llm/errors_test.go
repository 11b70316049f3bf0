package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestClassifyAPIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", 401, ErrAuthentication},
		{"forbidden", 403, ErrAuthentication},
		{"rate limited", 429, ErrRateLimited},
		{"request timeout", 408, ErrTimeout},
		{"gateway timeout", 504, ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &openai.APIError{
				HTTPStatusCode: tt.status,
				Message:        "backend says no",
			}
			got := classify(in)
			if !errors.Is(got, tt.want) {
				t.Errorf("classify(%d) = %v, want %v", tt.status, got, tt.want)
			}
			if !strings.Contains(got.Error(), "backend says no") {
				t.Errorf("detail lost: %v", got)
			}
		})
	}
}

func TestClassifyUnknownStatusKeepsDetail(t *testing.T) {
	got := classify(&openai.APIError{HTTPStatusCode: 500, Message: "boom"})
	for _, sentinel := range []error{ErrAuthentication, ErrRateLimited, ErrTimeout, ErrConnection} {
		if errors.Is(got, sentinel) {
			t.Errorf("status 500 wrongly classified as %v", sentinel)
		}
	}
	if !strings.Contains(got.Error(), "500") {
		t.Errorf("status missing from %v", got)
	}
}

func TestClassifyRequestError(t *testing.T) {
	got := classify(&openai.RequestError{HTTPStatusCode: 401, Err: fmt.Errorf("nope")})
	if !errors.Is(got, ErrAuthentication) {
		t.Errorf("classify = %v, want ErrAuthentication", got)
	}
}

func TestClassifyTimeouts(t *testing.T) {
	got := classify(fmt.Errorf("call failed: %w", context.DeadlineExceeded))
	if !errors.Is(got, ErrTimeout) {
		t.Errorf("deadline exceeded = %v, want ErrTimeout", got)
	}
}

func TestClassifyConnectionErrors(t *testing.T) {
	urlErr := &url.Error{
		Op:  "Post",
		URL: "https://api.openai.com/v1/chat/completions",
		Err: fmt.Errorf("connection refused"),
	}
	got := classify(urlErr)
	if !errors.Is(got, ErrConnection) {
		t.Errorf("url.Error = %v, want ErrConnection", got)
	}
}

func TestClassifyNil(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
}

func TestClassifyPassthrough(t *testing.T) {
	plain := fmt.Errorf("something else")
	if got := classify(plain); !errors.Is(got, plain) {
		t.Errorf("unclassifiable error should pass through, got %v", got)
	}
}

func TestGuidanceDistinguishesFailures(t *testing.T) {
	cases := map[error]string{
		ErrAuthentication:    "key",
		ErrRateLimited:       "quota",
		ErrTimeout:           "timed out",
		ErrConnection:        "reached",
		ErrMalformedResponse: "openai-compatible",
	}

	seen := make(map[string]bool)
	for err, fragment := range cases {
		hint := Guidance(fmt.Errorf("wrapped: %w", err))
		if !strings.Contains(strings.ToLower(hint), fragment) {
			t.Errorf("Guidance(%v) = %q, want mention of %q", err, hint, fragment)
		}
		if seen[hint] {
			t.Errorf("Guidance for %v duplicates another class", err)
		}
		seen[hint] = true
	}

	if Guidance(fmt.Errorf("mystery")) == "" {
		t.Error("unknown errors still deserve a hint")
	}
}
