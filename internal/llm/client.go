// Package llm wraps the go-openai SDK behind the chat.Invoker port
// and records every raw exchange in the audit log.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rorical/RoriTutor/internal/apilog"
	"github.com/Rorical/RoriTutor/internal/chat"
	"github.com/Rorical/RoriTutor/internal/config"
	"github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client is the SDK wrapper used by every demo. The audit logger is
// optional; with a nil logger the client behaves identically and
// just writes nothing.
type Client struct {
	api     *openai.Client
	cfg     *config.Config
	logger  *apilog.Logger
	baseURL string
}

// NewClient builds a client from a validated configuration. A config
// without credentials is refused here, before any request is made.
func NewClient(cfg *config.Config, logger *apilog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	clientConfig := openai.DefaultConfig(cfg.GetAPIKey())
	baseURL := defaultBaseURL
	if cfg.GetBaseURL() != "" {
		clientConfig.BaseURL = cfg.GetBaseURL()
		baseURL = cfg.GetBaseURL()
	}

	return &Client{
		api:     openai.NewClientWithConfig(clientConfig),
		cfg:     cfg,
		logger:  logger,
		baseURL: baseURL,
	}, nil
}

// BaseURL returns the endpoint the client talks to, for display.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Model returns the configured chat model name.
func (c *Client) Model() string {
	return c.cfg.GetModel()
}

// Invoke implements chat.Invoker: one chat completion round trip
// with the given transcript and tool catalog.
func (c *Client) Invoke(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool, params chat.GenerationParams) (*chat.TurnResult, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.cfg.GetModel(),
		Messages:    messages,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}
	if len(tools) > 0 {
		req.Tools = tools
	}

	endpoint := c.baseURL + "/chat/completions"
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		err = classify(err)
		c.logExchange(endpoint, req, errorBody(err), statusOf(err), duration)
		return nil, err
	}

	c.logExchange(endpoint, req, resp, 200, duration)

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	choice := resp.Choices[0]
	return &chat.TurnResult{
		Content:      choice.Message.Content,
		ToolCalls:    choice.Message.ToolCalls,
		Usage:        resp.Usage,
		FinishReason: string(choice.FinishReason),
	}, nil
}

// CompletionParams configure a legacy completions call.
type CompletionParams struct {
	MaxTokens   int
	Temperature float32
	Stop        []string
}

// CompletionResult is the trimmed outcome of a legacy completion.
type CompletionResult struct {
	Text         string
	Usage        openai.Usage
	FinishReason string
}

// Complete calls the legacy completions API, used by the basic
// completion demos.
func (c *Client) Complete(ctx context.Context, prompt string, params CompletionParams) (*CompletionResult, error) {
	req := openai.CompletionRequest{
		Model:       c.cfg.GetCompletionModel(),
		Prompt:      prompt,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
		Stop:        params.Stop,
	}

	endpoint := c.baseURL + "/completions"
	start := time.Now()
	resp, err := c.api.CreateCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		err = classify(err)
		c.logExchange(endpoint, req, errorBody(err), statusOf(err), duration)
		return nil, err
	}

	c.logExchange(endpoint, req, resp, 200, duration)

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	choice := resp.Choices[0]
	return &CompletionResult{
		Text:         choice.Text,
		Usage:        completionUsage(resp.Usage),
		FinishReason: string(choice.FinishReason),
	}, nil
}

// completionUsage flattens the completions endpoint's usage report,
// which arrives as a pointer and which some backends omit entirely.
func completionUsage(usage *openai.Usage) openai.Usage {
	if usage == nil {
		return openai.Usage{}
	}
	return *usage
}

// TestConnection performs a minimal one-token round trip to verify
// endpoint, credentials and model in one go.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.Invoke(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "Hello"},
	}, nil, chat.GenerationParams{MaxTokens: 1, Temperature: 0})
	return err
}

// logExchange records one round trip. The real Authorization header
// value is handed to the logger, which redacts it before writing.
func (c *Client) logExchange(endpoint string, request, response any, status int, duration time.Duration) {
	if c.logger == nil {
		return
	}
	err := c.logger.Log(apilog.Exchange{
		Endpoint: endpoint,
		Method:   "POST",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.cfg.GetAPIKey(),
			"Content-Type":  "application/json",
		},
		RequestBody:    request,
		ResponseStatus: status,
		ResponseBody:   response,
		Duration:       duration,
	})
	if err != nil {
		// Logging is a side-channel; a broken log file must not break
		// the tutorial session.
		fmt.Printf("warning: failed to write API log: %v\n", err)
	}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// statusOf picks a representative status code for the log entry.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrAuthentication):
		return 401
	case errors.Is(err, ErrRateLimited):
		return 429
	case errors.Is(err, ErrTimeout):
		return 408
	default:
		return 500
	}
}
