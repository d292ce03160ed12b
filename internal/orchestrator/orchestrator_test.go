package orchestrator

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/noxhq/nox/internal/config"
	"github.com/noxhq/nox/internal/events"
	"github.com/noxhq/nox/internal/tasks"
	"github.com/noxhq/nox/internal/tools"
)

// fakeStep is one scripted completion: a message or an error.
type fakeStep struct {
	msg *schema.Message
	err error
}

// recordedCall captures what one Generate invocation received.
type recordedCall struct {
	messages    []*schema.Message
	maxTokens   int
	temperature float32
	toolCount   int
}

// fakeModel replays a script of completions and records every call.
// WithTools returns a bound view sharing the same script and recorder.
type fakeModel struct {
	mu     sync.Mutex
	script []fakeStep
	calls  []recordedCall
}

func (f *fakeModel) Generate(ctx context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return f.generate(msgs, opts, 0)
}

func (f *fakeModel) Stream(ctx context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	panic("streaming is not part of the turn protocol")
}

func (f *fakeModel) WithTools(infos []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return &boundFake{fakeModel: f, bound: infos}, nil
}

func (f *fakeModel) generate(msgs []*schema.Message, opts []model.Option, toolCount int) (*schema.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	options := model.GetCommonOptions(&model.Options{}, opts...)
	call := recordedCall{messages: msgs, toolCount: toolCount}
	if options.MaxTokens != nil {
		call.maxTokens = *options.MaxTokens
	}
	if options.Temperature != nil {
		call.temperature = *options.Temperature
	}
	f.calls = append(f.calls, call)

	if len(f.script) == 0 {
		panic("fake model script exhausted")
	}
	step := f.script[0]
	f.script = f.script[1:]
	return step.msg, step.err
}

type boundFake struct {
	*fakeModel
	bound []*schema.ToolInfo
}

func (b *boundFake) Generate(ctx context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return b.generate(msgs, opts, len(b.bound))
}

var _ model.ToolCallingChatModel = (*fakeModel)(nil)
var _ model.ToolCallingChatModel = (*boundFake)(nil)

func assistantReply(content string, prompt, completion int) *schema.Message {
	return &schema.Message{
		Role:    schema.Assistant,
		Content: content,
		ResponseMeta: &schema.ResponseMeta{
			Usage: &schema.TokenUsage{
				PromptTokens:     prompt,
				CompletionTokens: completion,
			},
		},
	}
}

func assistantToolCall(name, args string, prompt, completion int, more ...schema.ToolCall) *schema.Message {
	msg := assistantReply("", prompt, completion)
	msg.ToolCalls = append([]schema.ToolCall{{
		ID:       "call-1",
		Function: schema.FunctionCall{Name: name, Arguments: args},
	}}, more...)
	return msg
}

func newTestSession(t *testing.T, fake *fakeModel, bus *events.Bus) (*Session, *tasks.FileStore) {
	t.Helper()
	cfg := config.Default()
	cfg.Tasks.File = filepath.Join(t.TempDir(), "tasks.json")
	store := tasks.NewFileStore(cfg.Tasks.File)
	return NewSession(fake, tools.NewRegistry(store), store, bus, cfg), store
}

func costOf(prompt, completion int) float64 {
	cfg := config.Default()
	return float64(prompt)*cfg.Pricing.PromptRate() + float64(completion)*cfg.Pricing.CompletionRate()
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestRunPlainReply(t *testing.T) {
	fake := &fakeModel{script: []fakeStep{
		{msg: assistantReply("Hello! How can I help?", 100, 20)},
	}}
	sess, store := newTestSession(t, fake, nil)

	result, err := sess.Run(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Reply != "Hello! How can I help?" {
		t.Errorf("reply: %q", result.Reply)
	}
	if result.State != StateDone {
		t.Errorf("state: %v", result.State)
	}
	if result.ToolTrace != nil {
		t.Error("no dispatch happened, trace must be nil")
	}
	if result.Usage.PromptTokens != 100 || result.Usage.CompletionTokens != 20 {
		t.Errorf("usage: %+v", result.Usage)
	}
	want := costOf(100, 20)
	if !approxEqual(result.CostDelta, want) || !approxEqual(result.TotalCost, want) {
		t.Errorf("cost: delta=%v total=%v want %v", result.CostDelta, result.TotalCost, want)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("expected exactly 1 completion call, got %d", len(fake.calls))
	}
	call := fake.calls[0]
	if call.toolCount != 3 {
		t.Errorf("first call must offer the full catalog, got %d tools", call.toolCount)
	}
	if call.maxTokens != 500 {
		t.Errorf("first call max tokens: %d", call.maxTokens)
	}
	if call.temperature != 0.7 {
		t.Errorf("temperature: %v", call.temperature)
	}
	if len(call.messages) != 2 || call.messages[0].Role != schema.System || call.messages[1].Role != schema.User {
		t.Errorf("first call messages: %d", len(call.messages))
	}

	list, _ := store.List()
	if len(list) != 0 {
		t.Error("plain reply must not touch the store")
	}
}

func TestRunToolTurn(t *testing.T) {
	fake := &fakeModel{script: []fakeStep{
		{msg: assistantToolCall("add_task", `{"title":"Buy milk","priority":"high"}`, 200, 30)},
		{msg: assistantReply("Added \"Buy milk\" to your list.", 150, 25)},
	}}
	sess, store := newTestSession(t, fake, nil)

	result, err := sess.Run(context.Background(), "remind me to buy milk")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fake.calls) != 2 {
		t.Fatalf("expected exactly 2 completion calls, got %d", len(fake.calls))
	}

	followUp := fake.calls[1]
	if followUp.toolCount != 0 {
		t.Error("follow-up call must offer no tools")
	}
	if followUp.maxTokens != 300 {
		t.Errorf("follow-up max tokens: %d", followUp.maxTokens)
	}
	if len(followUp.messages) != 4 {
		t.Fatalf("follow-up messages: %d", len(followUp.messages))
	}
	toolMsg := followUp.messages[3]
	if toolMsg.Role != schema.Tool || toolMsg.ToolCallID != "call-1" {
		t.Errorf("tool message: role=%v id=%q", toolMsg.Role, toolMsg.ToolCallID)
	}

	list, _ := store.List()
	if len(list) != 1 {
		t.Fatalf("expected exactly 1 stored task, got %d", len(list))
	}
	if list[0].Title != "Buy milk" || list[0].Priority != "high" {
		t.Errorf("stored task: %+v", list[0])
	}

	if result.Reply != "Added \"Buy milk\" to your list." {
		t.Errorf("reply: %q", result.Reply)
	}
	if result.ToolTrace == nil || result.ToolTrace.Name != "add_task" || !result.ToolTrace.Success {
		t.Errorf("trace: %+v", result.ToolTrace)
	}
	if result.Usage.PromptTokens != 350 || result.Usage.CompletionTokens != 55 {
		t.Errorf("usage must sum both calls: %+v", result.Usage)
	}
	if !approxEqual(result.CostDelta, costOf(350, 55)) {
		t.Errorf("cost delta: %v", result.CostDelta)
	}
}

func TestRunOnlyFirstToolCallHonored(t *testing.T) {
	extra := schema.ToolCall{
		ID:       "call-2",
		Function: schema.FunctionCall{Name: "add_task", Arguments: `{"title":"second"}`},
	}
	fake := &fakeModel{script: []fakeStep{
		{msg: assistantToolCall("add_task", `{"title":"first"}`, 10, 5, extra)},
		{msg: assistantReply("Done.", 10, 5)},
	}}
	sess, store := newTestSession(t, fake, nil)

	if _, err := sess.Run(context.Background(), "add two things"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	list, _ := store.List()
	if len(list) != 1 {
		t.Fatalf("only the first tool call may execute, got %d tasks", len(list))
	}
	if list[0].Title != "first" {
		t.Errorf("wrong call executed: %+v", list[0])
	}
}

func TestRunSecondCallFailureLeavesMutationDurable(t *testing.T) {
	fake := &fakeModel{script: []fakeStep{
		{msg: assistantToolCall("add_task", `{"title":"Buy milk"}`, 200, 30)},
		{err: context.DeadlineExceeded},
	}}
	sess, store := newTestSession(t, fake, nil)

	_, err := sess.Run(context.Background(), "remind me to buy milk")
	if err == nil {
		t.Fatal("expected a hard failure from the follow-up call")
	}

	list, _ := store.List()
	if len(list) != 1 {
		t.Error("the dispatched mutation must survive the follow-up failure")
	}
	if total := sess.TotalCost(); total != 0 {
		t.Errorf("failed turn must not accumulate spend, got %v", total)
	}
}

func TestRunMalformedToolArguments(t *testing.T) {
	fake := &fakeModel{script: []fakeStep{
		{msg: assistantToolCall("add_task", `{"title": `, 50, 10)},
	}}
	sess, store := newTestSession(t, fake, nil)

	result, err := sess.Run(context.Background(), "add a task")
	if err != nil {
		t.Fatalf("malformed arguments are a soft failure: %v", err)
	}

	if result.State != StateErrored {
		t.Errorf("state: %v", result.State)
	}
	if result.Reply == "" {
		t.Error("soft failure must still produce a readable reply")
	}
	if result.ToolTrace == nil || result.ToolTrace.Success {
		t.Errorf("trace: %+v", result.ToolTrace)
	}

	list, _ := store.List()
	if len(list) != 0 {
		t.Error("store must be untouched")
	}
	if total := sess.TotalCost(); total != 0 {
		t.Errorf("soft failure must not accumulate spend, got %v", total)
	}
	if len(fake.calls) != 1 {
		t.Errorf("no follow-up call may happen, got %d calls", len(fake.calls))
	}
}

func TestRunFirstCallFailure(t *testing.T) {
	fake := &fakeModel{script: []fakeStep{
		{err: context.DeadlineExceeded},
	}}
	sess, store := newTestSession(t, fake, nil)

	if _, err := sess.Run(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
	list, _ := store.List()
	if len(list) != 0 {
		t.Error("store must be untouched")
	}
	if total := sess.TotalCost(); total != 0 {
		t.Errorf("spend: %v", total)
	}
}

func TestSpendAccumulatesAcrossTurns(t *testing.T) {
	fake := &fakeModel{script: []fakeStep{
		{msg: assistantReply("one", 100, 20)},
		{msg: assistantReply("two", 100, 20)},
	}}
	sess, _ := newTestSession(t, fake, nil)

	first, err := sess.Run(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	second, err := sess.Run(context.Background(), "b")
	if err != nil {
		t.Fatal(err)
	}

	if !approxEqual(second.TotalCost, first.TotalCost*2) {
		t.Errorf("total: %v after delta %v", second.TotalCost, first.CostDelta)
	}
	if !approxEqual(sess.TotalCost(), second.TotalCost) {
		t.Errorf("session total %v != result total %v", sess.TotalCost(), second.TotalCost)
	}
}

func TestRunSystemPromptEmbedsTaskSummary(t *testing.T) {
	fake := &fakeModel{script: []fakeStep{
		{msg: assistantReply("ok", 10, 5)},
	}}
	sess, store := newTestSession(t, fake, nil)
	if _, err := store.Add(tasks.AddParams{Title: "Water the plants"}); err != nil {
		t.Fatal(err)
	}

	if _, err := sess.Run(context.Background(), "what's on my list?"); err != nil {
		t.Fatal(err)
	}

	system := fake.calls[0].messages[0]
	if system.Role != schema.System {
		t.Fatalf("first message role: %v", system.Role)
	}
	if want := "Water the plants"; !strings.Contains(system.Content, want) {
		t.Errorf("system prompt must embed the task summary, missing %q", want)
	}
}

func TestRunPublishesTurnEvents(t *testing.T) {
	bus := events.NewBus(64)
	defer bus.Close()

	ch, unsub := bus.SubscribeChan(16,
		events.EventTurnStarted, events.EventToolDispatched, events.EventAssistantMessage)
	defer unsub()

	fake := &fakeModel{script: []fakeStep{
		{msg: assistantToolCall("get_tasks", `{}`, 10, 5)},
		{msg: assistantReply("You have no tasks.", 10, 5)},
	}}
	sess, _ := newTestSession(t, fake, bus)

	if _, err := sess.Run(context.Background(), "what's up?"); err != nil {
		t.Fatal(err)
	}

	seen := map[events.EventType]bool{}
	deadline := time.After(time.Second)
	for len(seen) < 3 {
		select {
		case e := <-ch:
			seen[e.Type] = true
		case <-deadline:
			t.Fatalf("timed out, saw %v", seen)
		}
	}
}
