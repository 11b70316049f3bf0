package chat

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// GenerationParams are passed through to the backend unchanged.
type GenerationParams struct {
	MaxTokens   int
	Temperature float32
}

// DefaultGenerationParams mirrors the values used throughout the
// tutorial demos.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		MaxTokens:   500,
		Temperature: 0.7,
	}
}

// TurnResult is one model response: either a final answer (no tool
// calls) or a request to invoke tools. Content may be empty when
// tool calls are present.
type TurnResult struct {
	Content      string
	ToolCalls    []openai.ToolCall
	Usage        openai.Usage
	FinishReason string
}

// IsFinal reports whether the model produced a final answer instead
// of requesting tools.
func (r *TurnResult) IsFinal() bool {
	return len(r.ToolCalls) == 0
}

// Invoker is the boundary between the tool-calling loop and the
// model backend: given the transcript so far and a tool catalog,
// produce the model's next turn. Implementations classify transport
// failures so callers can tell network, credential and quota
// problems apart (see the llm package).
type Invoker interface {
	Invoke(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool, params GenerationParams) (*TurnResult, error)
}
