package tasks

import (
	"strconv"
	"strings"
)

// resolveStrategy maps a free-form identifier to a task within the active
// (incomplete, storage-ordered) sub-sequence. Returns nil on no match.
// Strategies are pure so the priority order stays auditable in isolation.
type resolveStrategy func(identifier string, active []*Task) *Task

// resolveOrder is the strict priority order: exact id, then case-insensitive
// title substring (first in storage order wins), then 1-based position.
var resolveOrder = []resolveStrategy{
	resolveByID,
	resolveByTitle,
	resolveByPosition,
}

// Resolve maps identifier to an incomplete task from tasks, or nil.
func Resolve(identifier string, tasks []*Task) *Task {
	var active []*Task
	for _, t := range tasks {
		if !t.Completed {
			active = append(active, t)
		}
	}
	for _, strategy := range resolveOrder {
		if t := strategy(identifier, active); t != nil {
			return t
		}
	}
	return nil
}

func resolveByID(identifier string, active []*Task) *Task {
	for _, t := range active {
		if t.ID == identifier {
			return t
		}
	}
	return nil
}

func resolveByTitle(identifier string, active []*Task) *Task {
	needle := strings.ToLower(identifier)
	for _, t := range active {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			return t
		}
	}
	return nil
}

func resolveByPosition(identifier string, active []*Task) *Task {
	pos, err := strconv.Atoi(strings.TrimSpace(identifier))
	if err != nil {
		return nil
	}
	if pos < 1 || pos > len(active) {
		return nil
	}
	return active[pos-1]
}
