package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Rorical/RoriTutor/internal/tools"
	"github.com/sashabaranov/go-openai"
)

// DefaultMaxIterations bounds how many model round trips one turn
// may take before the loop gives up.
const DefaultMaxIterations = 5

// ErrIterationLimit is returned by RunTurn when the iteration bound
// was reached while the model was still requesting tools. The
// returned content is the model's last (possibly partial) output, so
// the caller can decide whether to show it or retry a fresh turn.
var ErrIterationLimit = errors.New("maximum tool call iterations reached without a final answer")

// Observer is notified of every message the loop appends to the
// conversation. It is a display side-channel only: the loop behaves
// identically with or without one.
type Observer func(msg openai.ChatCompletionMessage)

// Orchestrator drives bounded request/execute/append cycles until
// the model yields a final answer. It keeps no state between turns;
// everything lives in the Conversation the caller passes in, so the
// same Orchestrator serves a whole multi-turn session.
type Orchestrator struct {
	invoker       Invoker
	registry      *tools.Registry
	maxIterations int
	observer      Observer
	catalog       []openai.Tool // nil means advertise the full registry
}

// NewOrchestrator creates an orchestrator over the given backend and
// tool registry.
func NewOrchestrator(invoker Invoker, registry *tools.Registry) *Orchestrator {
	return &Orchestrator{
		invoker:       invoker,
		registry:      registry,
		maxIterations: DefaultMaxIterations,
	}
}

// SetMaxIterations overrides the iteration bound. Values below one
// are ignored.
func (o *Orchestrator) SetMaxIterations(n int) {
	if n >= 1 {
		o.maxIterations = n
	}
}

// SetObserver installs a message observer, or removes it with nil.
func (o *Orchestrator) SetObserver(fn Observer) {
	o.observer = fn
}

// SetCatalog restricts the tool definitions advertised to the model.
// Execution still resolves against the full registry. Pass nil to
// advertise everything again.
func (o *Orchestrator) SetCatalog(specs []openai.Tool) {
	o.catalog = specs
}

// RunTurn sends the conversation to the model, executes requested
// tool calls and feeds results back until the model produces a final
// answer or the iteration bound is hit. Backend failures abort the
// turn; tool failures never do — they are surfaced to the model as
// that tool's result so it can correct itself or explain the problem.
func (o *Orchestrator) RunTurn(ctx context.Context, conv *Conversation, params GenerationParams) (string, error) {
	catalog := o.catalog
	if catalog == nil {
		catalog = o.registry.Specs()
	}

	var lastContent string
	for i := 1; i <= o.maxIterations; i++ {
		result, err := o.invoker.Invoke(ctx, conv.Messages(), catalog, params)
		if err != nil {
			return "", fmt.Errorf("model invocation failed (iteration %d): %w", i, err)
		}

		if result.IsFinal() {
			msg := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: result.Content,
			}
			conv.Append(msg)
			o.notify(msg)
			return result.Content, nil
		}

		// The assistant message carrying the tool calls goes into the
		// transcript first; the API requires the tool results to follow it.
		assistantMsg := openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			Content:   result.Content,
			ToolCalls: result.ToolCalls,
		}
		conv.Append(assistantMsg)
		o.notify(assistantMsg)

		// Results are appended in request order so tool_call_id
		// correlation stays aligned for the model.
		for _, call := range result.ToolCalls {
			toolMsg := openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    o.executeCall(ctx, call),
				ToolCallID: call.ID,
			}
			conv.Append(toolMsg)
			o.notify(toolMsg)
		}

		lastContent = result.Content
	}

	return lastContent, ErrIterationLimit
}

// executeCall runs one requested tool call and always produces a
// result string: lookup misses, argument decode failures and tool
// errors all become text for the model instead of aborting the turn.
func (o *Orchestrator) executeCall(ctx context.Context, call openai.ToolCall) string {
	name := call.Function.Name

	tool, exists := o.registry.Resolve(name)
	if !exists {
		return fmt.Sprintf("Function %s is not available", name)
	}

	args, err := decodeArguments(call.Function.Arguments)
	if err != nil {
		return fmt.Sprintf("Error parsing arguments: %v", err)
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		return fmt.Sprintf("Error executing function: %v", err)
	}
	return formatToolResult(result)
}

func (o *Orchestrator) notify(msg openai.ChatCompletionMessage) {
	if o.observer != nil {
		o.observer(msg)
	}
}

// decodeArguments parses the model-supplied JSON argument string.
// Some backends send an empty string for zero-argument calls.
func decodeArguments(raw string) (map[string]interface{}, error) {
	if raw == "" {
		return map[string]interface{}{}, nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return args, nil
}

// formatToolResult renders a tool's return value for the transcript.
// Strings pass through; anything structured becomes indented JSON.
func formatToolResult(result interface{}) string {
	if s, ok := result.(string); ok {
		return s
	}
	if data, err := json.MarshalIndent(result, "", "  "); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", result)
}
