package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/noxhq/nox/internal/tasks"
)

// GetTasksTool returns the current task list.
type GetTasksTool struct {
	store *tasks.FileStore
}

// NewGetTasksTool creates the get_tasks tool.
func NewGetTasksTool(store *tasks.FileStore) *GetTasksTool {
	return &GetTasksTool{store: store}
}

// GetTasksSpec returns the catalog entry for get_tasks.
func GetTasksSpec() *ToolSpec {
	return &ToolSpec{
		Name:        "get_tasks",
		Description: "Get the current list of tasks",
	}
}

type getTasksOutput struct {
	Tasks   []*tasks.Task `json:"tasks"`
	Summary string        `json:"summary"`
}

// Info returns the tool info for model registration.
func (t *GetTasksTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return GetTasksSpec().ToolInfo(), nil
}

// InvokableRun lists tasks. get_tasks takes no arguments, so the payload is
// ignored entirely rather than parsed.
func (t *GetTasksTool) InvokableRun(_ context.Context, _ string, _ ...tool.Option) (string, error) {
	list, err := t.store.List()
	if err != nil {
		return fail(fmt.Sprintf("Failed to load tasks: %v", err)).JSON(), nil
	}

	return ok("Loaded task list", getTasksOutput{
		Tasks:   list,
		Summary: tasks.Summarize(list),
	}).JSON(), nil
}

var _ tool.InvokableTool = (*GetTasksTool)(nil)
