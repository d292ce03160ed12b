// Package orchestrator runs conversational turns: at most two completion
// calls, at most one tool dispatch, spend accounted per completed turn.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/noxhq/nox/internal/config"
	"github.com/noxhq/nox/internal/events"
	"github.com/noxhq/nox/internal/tasks"
	"github.com/noxhq/nox/internal/tools"
)

// State is the turn lifecycle state.
type State string

const (
	StateIdle                     State = "idle"
	StateAwaitingFirstCompletion  State = "awaiting_first_completion"
	StateDispatchingTool          State = "dispatching_tool"
	StateAwaitingSecondCompletion State = "awaiting_second_completion"
	StateDone                     State = "done"
	StateErrored                  State = "errored"
)

// Usage sums token counts over both completion calls of a turn.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// ToolTrace records the single tool dispatch of a turn, when one happened.
type ToolTrace struct {
	Name      string
	Arguments string
	Success   bool
	Message   string
}

// TurnResult is what a completed (or soft-failed) turn hands back to the
// presentation layer.
type TurnResult struct {
	Reply     string
	State     State
	ToolTrace *ToolTrace
	Usage     Usage
	CostDelta float64
	TotalCost float64
}

// Session drives turns against one model, one tool registry, and one store.
// Turns are serialized: a second Run blocks until the first finishes.
type Session struct {
	model    model.ToolCallingChatModel
	registry *tools.Registry
	store    *tasks.FileStore
	bus      *events.Bus
	cfg      *config.Config
	spend    SpendCounter

	mu sync.Mutex
}

// NewSession creates a Session. The model must be tool-capable; the catalog
// is attached per-turn for the first call only.
func NewSession(m model.ToolCallingChatModel, registry *tools.Registry, store *tasks.FileStore, bus *events.Bus, cfg *config.Config) *Session {
	return &Session{
		model:    m,
		registry: registry,
		store:    store,
		bus:      bus,
		cfg:      cfg,
	}
}

// TotalCost returns the session's running spend in USD.
func (s *Session) TotalCost() float64 {
	return s.spend.Total()
}

// Run executes one conversational turn. A returned error means the turn
// failed hard (transport, provider); any store mutation that happened before
// the failure is durable. Soft failures (a tool call with unparseable
// arguments) come back as a TurnResult in StateErrored with a nil error.
func (s *Session) Run(ctx context.Context, userMessage string) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publish(events.TurnStartedPayload{UserMessage: userMessage})

	summary, err := s.store.Summarize()
	if err != nil {
		slog.Warn("task summary unavailable", "error", err)
		summary = "Task list unavailable."
	}

	systemMsg := schema.SystemMessage(SystemPrompt(summary))
	userMsg := schema.UserMessage(userMessage)

	catalog, err := s.registry.Catalog(ctx)
	if err != nil {
		return nil, s.fail("catalog", err)
	}
	toolModel, err := s.model.WithTools(catalog)
	if err != nil {
		return nil, s.fail("catalog", fmt.Errorf("attach tools: %w", err))
	}

	var usage Usage

	first, err := s.generate(ctx, "initial", toolModel,
		[]*schema.Message{systemMsg, userMsg},
		s.cfg.Assistant.MaxReplyTokens, &usage)
	if err != nil {
		return nil, s.fail("first_completion", err)
	}

	if len(first.ToolCalls) == 0 {
		return s.finish(first.Content, nil, usage), nil
	}

	// Only the first tool call is honored.
	call := first.ToolCalls[0]

	result, err := s.registry.Dispatch(ctx, call.Function.Name, call.Function.Arguments)
	if err != nil {
		if errors.Is(err, tools.ErrMalformedArguments) {
			return s.failSoft(call, err), nil
		}
		return nil, s.fail("tool_dispatch", err)
	}

	trace := &ToolTrace{
		Name:      call.Function.Name,
		Arguments: call.Function.Arguments,
		Success:   result.Success,
		Message:   result.Message,
	}
	s.publish(events.ToolDispatchedPayload{
		Name:      trace.Name,
		Arguments: trace.Arguments,
		Success:   trace.Success,
		Message:   trace.Message,
	})

	// Follow-up call sees the tool result but is offered no tools, so the
	// turn cannot chain.
	followUpMsgs := []*schema.Message{
		systemMsg,
		userMsg,
		first,
		schema.ToolMessage(result.JSON(), call.ID),
	}
	second, err := s.generate(ctx, "follow_up", s.model, followUpMsgs,
		s.cfg.Assistant.MaxFollowUpTokens, &usage)
	if err != nil {
		// The dispatched mutation stands; only the reply is lost.
		return nil, s.fail("second_completion", err)
	}

	return s.finish(second.Content, trace, usage), nil
}

func (s *Session) generate(ctx context.Context, phase string, m model.ToolCallingChatModel, msgs []*schema.Message, maxTokens int, usage *Usage) (*schema.Message, error) {
	start := time.Now()
	resp, err := m.Generate(ctx, msgs,
		model.WithMaxTokens(maxTokens),
		model.WithTemperature(float32(s.cfg.Assistant.Temperature)),
	)
	payload := events.LLMCallPayload{
		Phase:    phase,
		Model:    s.cfg.Model.Model,
		Duration: time.Since(start),
	}
	if err != nil {
		payload.Error = err.Error()
		s.publish(payload)
		return nil, err
	}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		usage.PromptTokens += resp.ResponseMeta.Usage.PromptTokens
		usage.CompletionTokens += resp.ResponseMeta.Usage.CompletionTokens
		payload.TokensInput = resp.ResponseMeta.Usage.PromptTokens
		payload.TokensOutput = resp.ResponseMeta.Usage.CompletionTokens
	}
	s.publish(payload)
	return resp, nil
}

// finish accumulates spend and emits the assistant message. Spend moves only
// here, so failed turns never touch the counter.
func (s *Session) finish(reply string, trace *ToolTrace, usage Usage) *TurnResult {
	delta := float64(usage.PromptTokens)*s.cfg.Pricing.PromptRate() +
		float64(usage.CompletionTokens)*s.cfg.Pricing.CompletionRate()
	total := s.spend.Add(delta)

	toolUsed := ""
	if trace != nil {
		toolUsed = trace.Name
	}
	s.publish(events.AssistantMessagePayload{
		Content:   reply,
		ToolUsed:  toolUsed,
		CostDelta: delta,
		TotalCost: total,
	})

	return &TurnResult{
		Reply:     reply,
		State:     StateDone,
		ToolTrace: trace,
		Usage:     usage,
		CostDelta: delta,
		TotalCost: total,
	}
}

func (s *Session) fail(stage string, err error) error {
	s.publish(events.TurnFailedPayload{Stage: stage, Error: err.Error()})
	return fmt.Errorf("%s: %w", stage, err)
}

// failSoft handles a tool call whose arguments could not be parsed: the
// store is untouched, spend is not incremented, and the diagnostic becomes
// the reply.
func (s *Session) failSoft(call schema.ToolCall, err error) *TurnResult {
	s.publish(events.TurnFailedPayload{Stage: "tool_arguments", Error: err.Error()})
	return &TurnResult{
		Reply: fmt.Sprintf("Invalid function arguments: %v", err),
		State: StateErrored,
		ToolTrace: &ToolTrace{
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
			Success:   false,
			Message:   err.Error(),
		},
		TotalCost: s.spend.Total(),
	}
}

func (s *Session) publish(payload events.EventPayload) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.NewTypedEvent(events.SourceOrchestrator, payload))
}
