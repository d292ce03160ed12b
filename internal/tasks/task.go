// Package tasks provides the persistent to-do list behind the assistant's tools.
package tasks

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task priorities. Values outside this set are accepted lower-cased without
// validation; anything unknown renders with the low-priority marker.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a single to-do entry. The JSON shape is the on-disk document
// format: ids are assigned once at creation and never reused, completed_at
// stays null until the task is completed and is never cleared afterwards.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Timeline    string     `json:"timeline"`
	Priority    string     `json:"priority"`
	Notes       string     `json:"notes"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// AddParams are the caller-supplied fields for a new task.
type AddParams struct {
	Title       string
	Description string
	Timeline    string
	Priority    string
	Notes       string
}

// NewTask builds a task record from params with a fresh id and timestamp.
// Title validation is the store's job; this only normalizes.
func NewTask(p AddParams) *Task {
	return &Task{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Timeline:    strings.TrimSpace(p.Timeline),
		Priority:    NormalizePriority(p.Priority),
		Notes:       strings.TrimSpace(p.Notes),
		Completed:   false,
		CreatedAt:   time.Now(),
	}
}

// NormalizePriority lower-cases the value and defaults empty input to medium.
func NormalizePriority(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return PriorityMedium
	}
	return p
}

// PriorityMarker returns the list indicator for a priority level.
func PriorityMarker(p string) string {
	switch p {
	case PriorityHigh:
		return "🔴"
	case PriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}
