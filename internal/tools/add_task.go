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

// AddTaskTool appends a new task to the store.
type AddTaskTool struct {
	store *tasks.FileStore
}

// NewAddTaskTool creates the add_task tool.
func NewAddTaskTool(store *tasks.FileStore) *AddTaskTool {
	return &AddTaskTool{store: store}
}

// AddTaskSpec returns the catalog entry for add_task.
func AddTaskSpec() *ToolSpec {
	return &ToolSpec{
		Name:        "add_task",
		Description: "Add a new task to the user's task list",
		Parameters: map[string]ParamSpec{
			"title": {
				Type:        "string",
				Description: "The main title/name of the task",
				Required:    true,
			},
			"description": {
				Type:        "string",
				Description: "Detailed description of what needs to be done",
			},
			"timeline": {
				Type:        "string",
				Description: "When this should be done (e.g., 'today', 'next week', '2024-01-15')",
			},
			"priority": {
				Type:        "string",
				Description: "Priority level of the task",
				Enum:        []string{tasks.PriorityLow, tasks.PriorityMedium, tasks.PriorityHigh},
			},
			"notes": {
				Type:        "string",
				Description: "Additional notes or context about the task",
			},
		},
	}
}

type addTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Timeline    string `json:"timeline"`
	Priority    string `json:"priority"`
	Notes       string `json:"notes"`
}

// Info returns the tool info for model registration.
func (t *AddTaskTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return AddTaskSpec().ToolInfo(), nil
}

// InvokableRun adds a task. Store failures become unsuccessful results; only
// unparseable argument JSON is an error.
func (t *AddTaskTool) InvokableRun(_ context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var input addTaskInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("add_task: %w: %v", ErrMalformedArguments, err)
	}

	task, err := t.store.Add(tasks.AddParams{
		Title:       input.Title,
		Description: input.Description,
		Timeline:    input.Timeline,
		Priority:    input.Priority,
		Notes:       input.Notes,
	})
	if err != nil {
		if errors.Is(err, tasks.ErrEmptyTitle) {
			return fail("Task title must not be empty.").JSON(), nil
		}
		return fail(fmt.Sprintf("Failed to save task: %v", err)).JSON(), nil
	}

	return ok(fmt.Sprintf("Task %q added successfully", task.Title), task).JSON(), nil
}

var _ tool.InvokableTool = (*AddTaskTool)(nil)
