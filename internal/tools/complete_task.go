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

// CompleteTaskTool marks a task as completed via fuzzy identifier resolution.
type CompleteTaskTool struct {
	store *tasks.FileStore
}

// NewCompleteTaskTool creates the complete_task tool.
func NewCompleteTaskTool(store *tasks.FileStore) *CompleteTaskTool {
	return &CompleteTaskTool{store: store}
}

// CompleteTaskSpec returns the catalog entry for complete_task.
func CompleteTaskSpec() *ToolSpec {
	return &ToolSpec{
		Name:        "complete_task",
		Description: "Mark a task as completed. Can accept task ID, task title (partial match), or task number from the list.",
		Parameters: map[string]ParamSpec{
			"task_identifier": {
				Type:        "string",
				Description: "The task to complete. Can be: task ID, partial title match, or number from the active task list (e.g., '1', '2')",
				Required:    true,
			},
		},
	}
}

type completeTaskInput struct {
	TaskIdentifier string `json:"task_identifier"`
	// Some models send task_id despite the schema; accept it as a fallback.
	TaskID string `json:"task_id"`
}

// Info returns the tool info for model registration.
func (t *CompleteTaskTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return CompleteTaskSpec().ToolInfo(), nil
}

// InvokableRun resolves and completes a task. A no-match outcome is an
// unsuccessful result, not an error.
func (t *CompleteTaskTool) InvokableRun(_ context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var input completeTaskInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("complete_task: %w: %v", ErrMalformedArguments, err)
	}

	identifier := input.TaskIdentifier
	if identifier == "" {
		identifier = input.TaskID
	}

	task, err := t.store.ResolveAndComplete(identifier)
	if err != nil {
		if errors.Is(err, tasks.ErrNoMatch) {
			return fail(fmt.Sprintf("Could not find active task matching %q. Check task ID, title, or number.", identifier)).JSON(), nil
		}
		return fail(fmt.Sprintf("Failed to complete task: %v", err)).JSON(), nil
	}

	return ok(fmt.Sprintf("Task %q marked as completed", task.Title), task).JSON(), nil
}

var _ tool.InvokableTool = (*CompleteTaskTool)(nil)
