package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// Tool represents a function that can be called by the AI
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]interface{} // JSON schema properties for parameters
	RequiredParameters() []string       // List of required parameter names
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Registry manages available tools. Tools are registered once at
// startup; the catalog is read-only afterwards. Registration order is
// preserved so the tool list advertised to the model is identical on
// every request within a session.
type Registry struct {
	tools map[string]Tool
	order []string
	mu    sync.RWMutex
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry. Registering a name twice is
// a programming error and is rejected.
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q is already registered", name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Resolve retrieves a tool by name
func (r *Registry) Resolve(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, exists := r.tools[name]
	return tool, exists
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Specs returns the OpenAI tool definitions for every registered
// tool, in registration order.
func (r *Registry) Specs() []openai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]openai.Tool, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		required := tool.RequiredParameters()
		if required == nil {
			required = []string{}
		}
		specs = append(specs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters: map[string]interface{}{
					"type":       "object",
					"properties": tool.Parameters(),
					"required":   required,
				},
			},
		})
	}
	return specs
}

// SpecsFor returns definitions for a subset of tools, used by demos
// that restrict the advertised catalog. Unknown names are skipped.
func (r *Registry) SpecsFor(names ...string) []openai.Tool {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}

	var specs []openai.Tool
	for _, spec := range r.Specs() {
		if keep[spec.Function.Name] {
			specs = append(specs, spec)
		}
	}
	return specs
}
