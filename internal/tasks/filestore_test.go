package tasks

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "tasks.json"))
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	store := newTestStore(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		task, err := store.Add(AddParams{Title: "task"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if task.ID == "" {
			t.Fatal("expected non-empty id")
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = true
		if task.Completed {
			t.Error("new task should not be completed")
		}
		if task.CompletedAt != nil {
			t.Error("new task should have nil completed_at")
		}
		if task.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}
	}
}

func TestAddEmptyTitle(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add(AddParams{Title: "   "}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("store should be unchanged, got %d tasks", len(list))
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("rejected add should not create the document")
	}
}

func TestAddDefaultsAndNormalization(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Add(AddParams{Title: "  report  ", Priority: "HIGH"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if task.Title != "report" {
		t.Errorf("Title: got %q, want %q", task.Title, "report")
	}
	if task.Priority != PriorityHigh {
		t.Errorf("Priority: got %q, want %q", task.Priority, PriorityHigh)
	}

	task2, err := store.Add(AddParams{Title: "other"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if task2.Priority != PriorityMedium {
		t.Errorf("default priority: got %q, want %q", task2.Priority, PriorityMedium)
	}
}

func TestListAbsentDocument(t *testing.T) {
	store := newTestStore(t)

	list, err := store.List()
	if err != nil {
		t.Fatalf("List on absent document: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %d", len(list))
	}
}

func TestListCorruptDocument(t *testing.T) {
	store := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.List(); err == nil {
		t.Fatal("expected persistence error for corrupt document")
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewFileStore(path)

	titles := []string{"alpha", "béta ✓", "gamma"}
	for _, title := range titles {
		if _, err := store.Add(AddParams{Title: title, Timeline: "Friday", Notes: "n"}); err != nil {
			t.Fatalf("Add %q: %v", title, err)
		}
	}

	reloaded, err := NewFileStore(path).List()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded) != len(titles) {
		t.Fatalf("reload: got %d tasks, want %d", len(reloaded), len(titles))
	}
	for i, task := range reloaded {
		if task.Title != titles[i] {
			t.Errorf("task %d: got title %q, want %q", i, task.Title, titles[i])
		}
		if task.Timeline != "Friday" || task.Notes != "n" {
			t.Errorf("task %d: fields lost on round trip: %+v", i, task)
		}
	}

	// Non-ASCII text is stored unescaped.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "béta ✓") {
		t.Error("expected unescaped UTF-8 in the document")
	}
}

func TestResolveAndCompleteByIDBeatsTitle(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Add(AddParams{Title: "Write report"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Add(AddParams{Title: "Write " + first.ID}); err != nil {
		t.Fatal(err)
	}

	done, err := store.ResolveAndComplete(first.ID)
	if err != nil {
		t.Fatalf("ResolveAndComplete: %v", err)
	}
	if done.ID != first.ID {
		t.Errorf("id match must win over title substring: completed %q", done.Title)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Error("completed task must carry completed=true and a completed_at timestamp")
	}
}

func TestResolveAndCompletePositionSkipsCompleted(t *testing.T) {
	store := newTestStore(t)

	a, _ := store.Add(AddParams{Title: "A"})
	b, _ := store.Add(AddParams{Title: "B"})
	if _, err := store.Add(AddParams{Title: "C"}); err != nil {
		t.Fatal(err)
	}

	if _, err := store.ResolveAndComplete(a.ID); err != nil {
		t.Fatal(err)
	}

	// Position 1 now refers to B, the first incomplete task.
	done, err := store.ResolveAndComplete("1")
	if err != nil {
		t.Fatalf("ResolveAndComplete(1): %v", err)
	}
	if done.ID != b.ID {
		t.Errorf("position 1: completed %q, want %q", done.Title, "B")
	}
}

func TestResolveAndCompleteTitleSubstring(t *testing.T) {
	store := newTestStore(t)

	milk, _ := store.Add(AddParams{Title: "Buy milk"})
	if _, err := store.Add(AddParams{Title: "Buy bread"}); err != nil {
		t.Fatal(err)
	}

	done, err := store.ResolveAndComplete("MILK")
	if err != nil {
		t.Fatalf("ResolveAndComplete: %v", err)
	}
	if done.ID != milk.ID {
		t.Errorf("case-insensitive substring: completed %q", done.Title)
	}
}

func TestResolveAndCompleteNoMatch(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Add(AddParams{Title: "only"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.ResolveAndComplete(task.ID); err != nil {
		t.Fatal(err)
	}

	before, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	// Already completed: not found again, document untouched.
	if _, err := store.ResolveAndComplete(task.ID); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("re-complete: expected ErrNoMatch, got %v", err)
	}
	if _, err := store.ResolveAndComplete("does-not-exist"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("unknown identifier: expected ErrNoMatch, got %v", err)
	}

	after, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("failed resolution must leave the document byte-for-byte unchanged")
	}
}

func TestDocumentShape(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Add(AddParams{Title: "shape"}); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	var doc []map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("document is not a JSON array: %v", err)
	}
	for _, key := range []string{"id", "title", "description", "timeline", "priority", "notes", "completed", "created_at", "completed_at"} {
		if _, ok := doc[0][key]; !ok {
			t.Errorf("document object missing key %q", key)
		}
	}
	if doc[0]["completed_at"] != nil {
		t.Error("completed_at must be null before completion")
	}
}

func TestSummarize(t *testing.T) {
	store := newTestStore(t)

	if got, err := store.Summarize(); err != nil || got != "No tasks found." {
		t.Fatalf("empty summary: got %q, %v", got, err)
	}

	high, _ := store.Add(AddParams{Title: "ship release", Priority: "high", Timeline: "Friday"})
	store.Add(AddParams{Title: "water plants"})
	done, _ := store.Add(AddParams{Title: "old chore"})
	if _, err := store.ResolveAndComplete(done.ID); err != nil {
		t.Fatal(err)
	}

	summary, err := store.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if !strings.Contains(summary, "Active Tasks (2):") {
		t.Errorf("missing active header:\n%s", summary)
	}
	if !strings.Contains(summary, "🔴 ship release | Due: Friday [ID: "+high.ID+"]") {
		t.Errorf("missing annotated active line:\n%s", summary)
	}
	if !strings.Contains(summary, "Completed Tasks (1):") {
		t.Errorf("missing completed header:\n%s", summary)
	}
	if !strings.Contains(summary, "✅ old chore") {
		t.Errorf("missing completed line:\n%s", summary)
	}
}

func TestSummarizeShowsLastThreeCompleted(t *testing.T) {
	store := newTestStore(t)

	for _, title := range []string{"one", "two", "three", "four"} {
		task, err := store.Add(AddParams{Title: title})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := store.ResolveAndComplete(task.ID); err != nil {
			t.Fatal(err)
		}
	}

	summary, err := store.Summarize()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(summary, "Completed Tasks (4):") {
		t.Errorf("completed count:\n%s", summary)
	}
	if strings.Contains(summary, "✅ one") {
		t.Errorf("oldest completed task should be elided:\n%s", summary)
	}
	for _, title := range []string{"two", "three", "four"} {
		if !strings.Contains(summary, "✅ "+title) {
			t.Errorf("missing recent completed %q:\n%s", title, summary)
		}
	}
}
