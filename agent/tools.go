package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kardolus/onchain-agent/api"
)

type Tool interface {
	Name() string
	Description() string
	// Parameters is the JSON schema of the arguments object.
	Parameters() json.RawMessage
	Invoke(ctx context.Context, args json.RawMessage) (string, error)
}

// FuncTool adapts a plain function to the Tool interface.
type FuncTool struct {
	ToolName        string
	ToolDescription string
	Schema          json.RawMessage
	Fn              func(ctx context.Context, args json.RawMessage) (string, error)
}

var _ Tool = FuncTool{}

func (t FuncTool) Name() string                { return t.ToolName }
func (t FuncTool) Description() string         { return t.ToolDescription }
func (t FuncTool) Parameters() json.RawMessage { return t.Schema }

func (t FuncTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	return t.Fn(ctx, args)
}

type Registry struct {
	tools  []Tool
	byName map[string]Tool
}

// NewRegistry keeps the registration order; a later tool with the same name
// replaces the earlier one.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{byName: map[string]Tool{}}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

func (r *Registry) Register(t Tool) {
	if _, ok := r.byName[t.Name()]; ok {
		for i, existing := range r.tools {
			if existing.Name() == t.Name() {
				r.tools[i] = t
			}
		}
	} else {
		r.tools = append(r.tools, t)
	}
	r.byName[t.Name()] = t
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		names = append(names, t.Name())
	}
	return names
}

// Definitions renders the tools in the shape the completions API expects.
func (r *Registry) Definitions() []api.Tool {
	if len(r.tools) == 0 {
		return nil
	}

	defs := make([]api.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		params := t.Parameters()
		if len(params) == 0 {
			params = json.RawMessage(emptySchema)
		}
		defs = append(defs, api.Tool{
			Type: api.FunctionType,
			Function: api.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  params,
			},
		})
	}
	return defs
}

// Invoke runs the named tool. Arguments arrive as the raw string the model
// produced; an empty string means no arguments.
func (r *Registry) Invoke(ctx context.Context, name, arguments string) (string, error) {
	t, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	arguments = strings.TrimSpace(arguments)
	if arguments == "" {
		arguments = "{}"
	}
	if !json.Valid([]byte(arguments)) {
		return "", fmt.Errorf("invalid arguments for %s: %s", name, arguments)
	}

	return t.Invoke(ctx, json.RawMessage(arguments))
}
