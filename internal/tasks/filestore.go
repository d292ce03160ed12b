package tasks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	// ErrEmptyTitle rejects tasks whose title is empty after trimming.
	ErrEmptyTitle = errors.New("task title must not be empty")

	// ErrNoMatch means no incomplete task matched the identifier. It is a
	// valid outcome, not a store failure.
	ErrNoMatch = errors.New("no matching active task")
)

// FileStore persists the full task list as a single pretty-printed JSON
// array. Every read loads the whole document; every mutation rewrites it
// atomically (temp file + rename). A single writer process is assumed;
// concurrent external modification between a load and a save is undefined.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore backed by the document at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the document location.
func (fs *FileStore) Path() string { return fs.path }

// Add validates, appends, and persists a new task, returning the record.
// The addition is not committed unless the write succeeds.
func (fs *FileStore) Add(p AddParams) (*Task, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrEmptyTitle
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	list, err := fs.load()
	if err != nil {
		return nil, err
	}

	t := NewTask(p)
	list = append(list, t)

	if err := fs.save(list); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the full task sequence in storage order. An absent document
// is an empty store.
func (fs *FileStore) List() ([]*Task, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.load()
}

// ResolveAndComplete maps a free-form identifier (exact id, partial title,
// or 1-based position among incomplete tasks) to a task, marks it completed,
// and persists. Returns ErrNoMatch when nothing resolves.
func (fs *FileStore) ResolveAndComplete(identifier string) (*Task, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	list, err := fs.load()
	if err != nil {
		return nil, err
	}

	t := Resolve(identifier, list)
	if t == nil {
		return nil, ErrNoMatch
	}

	now := time.Now()
	t.Completed = true
	t.CompletedAt = &now

	if err := fs.save(list); err != nil {
		return nil, err
	}
	return t, nil
}

// Summarize renders the human-readable report embedded into the assistant's
// system prompt: incomplete tasks with priority markers, due text, and ids,
// then the count and last three of the completed ones.
func (fs *FileStore) Summarize() (string, error) {
	list, err := fs.List()
	if err != nil {
		return "", err
	}
	return Summarize(list), nil
}

// Summarize formats a task sequence as the prompt-facing report.
func Summarize(list []*Task) string {
	if len(list) == 0 {
		return "No tasks found."
	}

	var active, completed []*Task
	for _, t := range list {
		if t.Completed {
			completed = append(completed, t)
		} else {
			active = append(active, t)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Tasks (%d):\n", len(active))
	for i, t := range active {
		due := ""
		if t.Timeline != "" {
			due = " | Due: " + t.Timeline
		}
		fmt.Fprintf(&sb, "%d. %s %s%s [ID: %s]\n", i+1, PriorityMarker(t.Priority), t.Title, due, t.ID)
	}

	if len(completed) > 0 {
		fmt.Fprintf(&sb, "\nCompleted Tasks (%d):\n", len(completed))
		recent := completed
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		for i, t := range recent {
			fmt.Fprintf(&sb, "%d. ✅ %s [ID: %s]\n", i+1, t.Title, t.ID)
		}
	}

	return sb.String()
}

// load reads the whole document. Absence is an empty store; any other read
// or decode failure is a persistence error.
func (fs *FileStore) load() ([]*Task, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read task document: %w", err)
	}

	var list []*Task
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode task document: %w", err)
	}
	return list, nil
}

// save atomically rewrites the document: pretty two-space indent, UTF-8,
// no HTML escaping of non-ASCII text.
func (fs *FileStore) save(list []*Task) error {
	if list == nil {
		list = []*Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode task document: %w", err)
	}

	if dir := filepath.Dir(fs.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create task dir: %w", err)
		}
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write task document: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("rename task document: %w", err)
	}
	return nil
}
