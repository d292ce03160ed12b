package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/noxhq/nox/internal/tasks"
)

// ErrMalformedArguments marks tool-call argument payloads that could not be
// parsed. It aborts the turn; every other tool failure is a Result.
var ErrMalformedArguments = errors.New("malformed tool arguments")

// Registry holds the fixed tool set. Catalog and dispatch table are built
// from the same entries, so a name present in one is present in the other.
type Registry struct {
	order []string
	tools map[string]tool.InvokableTool
}

// NewRegistry builds the three-tool catalog over the given store.
func NewRegistry(store *tasks.FileStore) *Registry {
	r := &Registry{tools: make(map[string]tool.InvokableTool)}
	r.register("add_task", NewAddTaskTool(store))
	r.register("get_tasks", NewGetTasksTool(store))
	r.register("complete_task", NewCompleteTaskTool(store))
	return r
}

func (r *Registry) register(name string, t tool.InvokableTool) {
	r.order = append(r.order, name)
	r.tools[name] = t
}

// Catalog returns the ToolInfo list offered to the completion service.
func (r *Registry) Catalog(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		info, err := r.tools[name].Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool %s info: %w", name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Dispatch executes one tool call by name. Unknown names and tool failures
// come back as unsuccessful Results; the only error is ErrMalformedArguments.
func (r *Registry) Dispatch(ctx context.Context, name, argumentsInJSON string) (Result, error) {
	t, found := r.tools[name]
	if !found {
		return fail("unknown function: " + name), nil
	}

	out, err := t.InvokableRun(ctx, argumentsInJSON)
	if err != nil {
		return Result{}, err
	}

	var result Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		// Tools in this registry always emit Result JSON.
		return fail(fmt.Sprintf("tool %s returned an unreadable result", name)), nil
	}
	return result, nil
}
