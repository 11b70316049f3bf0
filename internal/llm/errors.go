package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/sashabaranov/go-openai"
)

// Sentinel errors letting callers tell network, credential and quota
// problems apart with errors.Is. None of them ever carries the API
// key.
var (
	// ErrAuthentication means the backend rejected the credentials.
	ErrAuthentication = errors.New("authentication failed")

	// ErrRateLimited means the backend signalled too many requests or
	// an exhausted quota.
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout means the request did not complete in time.
	ErrTimeout = errors.New("request timed out")

	// ErrConnection means the endpoint could not be reached at all.
	ErrConnection = errors.New("connection failed")

	// ErrMalformedResponse means the backend answered with something
	// that is not a usable completion.
	ErrMalformedResponse = errors.New("malformed response")
)

// classify maps an SDK or transport error onto one of the sentinel
// errors above while keeping the underlying detail in the message.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return fmt.Errorf("%w (status %d): %s", ErrAuthentication, apiErr.HTTPStatusCode, apiErr.Message)
		case 429:
			return fmt.Errorf("%w (status %d): %s", ErrRateLimited, apiErr.HTTPStatusCode, apiErr.Message)
		case 408, 504:
			return fmt.Errorf("%w (status %d): %s", ErrTimeout, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return fmt.Errorf("API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.HTTPStatusCode {
		case 401, 403:
			return fmt.Errorf("%w (status %d)", ErrAuthentication, reqErr.HTTPStatusCode)
		case 429:
			return fmt.Errorf("%w (status %d)", ErrRateLimited, reqErr.HTTPStatusCode)
		}
		return fmt.Errorf("API request error (status %d): %v", reqErr.HTTPStatusCode, reqErr.Err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrConnection, urlErr)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", ErrConnection, opErr)
	}

	return err
}

// Guidance turns a classified error into a short operator hint,
// mirroring what the diagnostics print.
func Guidance(err error) string {
	switch {
	case errors.Is(err, ErrAuthentication):
		return "The API key was rejected. Check the key in your active profile or the OPENAI_API_KEY variable."
	case errors.Is(err, ErrRateLimited):
		return "The backend is throttling requests. Wait a moment and retry, or check your quota."
	case errors.Is(err, ErrTimeout):
		return "The request timed out. The network may be slow or the endpoint overloaded."
	case errors.Is(err, ErrConnection):
		return "The endpoint could not be reached. Check your internet connection, firewall and the base URL."
	case errors.Is(err, ErrMalformedResponse):
		return "The backend answered but not with a usable completion. Verify the base URL points at an OpenAI-compatible API."
	default:
		return "An unexpected error occurred. Run 'roritutor diagnose' for a full environment check."
	}
}
