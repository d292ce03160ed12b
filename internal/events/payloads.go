package events

import (
	"encoding/json"
	"time"
)

// EventPayload is the interface all typed payloads implement.
type EventPayload interface {
	EventType() EventType
}

// TurnStartedPayload marks the beginning of a conversational turn.
type TurnStartedPayload struct {
	UserMessage string `json:"user_message"`
}

func (TurnStartedPayload) EventType() EventType { return EventTurnStarted }

// TurnFailedPayload reports an aborted turn and the stage it failed in.
type TurnFailedPayload struct {
	Stage string `json:"stage"`
	Error string `json:"error"`
}

func (TurnFailedPayload) EventType() EventType { return EventTurnFailed }

// AssistantMessagePayload carries the assistant reply shown to the user,
// plus the spend this turn added and the session running total.
type AssistantMessagePayload struct {
	Content   string  `json:"content"`
	ToolUsed  string  `json:"tool_used,omitempty"`
	CostDelta float64 `json:"cost_delta,omitempty"`
	TotalCost float64 `json:"total_cost,omitempty"`
}

func (AssistantMessagePayload) EventType() EventType { return EventAssistantMessage }

// ToolDispatchedPayload records a single tool execution.
type ToolDispatchedPayload struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"`
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
}

func (ToolDispatchedPayload) EventType() EventType { return EventToolDispatched }

// LLMCallPayload records one completion call for spend accounting.
type LLMCallPayload struct {
	Phase        string        `json:"phase"` // "initial" or "follow_up"
	Model        string        `json:"model"`
	TokensInput  int           `json:"tokens_input,omitempty"`
	TokensOutput int           `json:"tokens_output,omitempty"`
	Cost         float64       `json:"cost,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
	Error        string        `json:"error,omitempty"`
}

func (LLMCallPayload) EventType() EventType { return EventLLMCall }

// NewTypedEvent wraps a typed payload into an Event.
func NewTypedEvent(source EventSource, payload EventPayload) Event {
	return Event{
		ID:        generateEventID(),
		Type:      payload.EventType(),
		Timestamp: time.Now(),
		Source:    source,
		Payload:   toMap(payload),
	}
}

func toMap(v any) map[string]any {
	var result map[string]any
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return result
}

// ExtractPayload recovers a typed payload from an Event.
func ExtractPayload[T EventPayload](e Event) (T, bool) {
	var result T
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false
	}
	return result, true
}

func GetTurnStartedPayload(e Event) (TurnStartedPayload, bool) {
	return ExtractPayload[TurnStartedPayload](e)
}

func GetTurnFailedPayload(e Event) (TurnFailedPayload, bool) {
	return ExtractPayload[TurnFailedPayload](e)
}

func GetAssistantMessagePayload(e Event) (AssistantMessagePayload, bool) {
	return ExtractPayload[AssistantMessagePayload](e)
}

func GetToolDispatchedPayload(e Event) (ToolDispatchedPayload, bool) {
	return ExtractPayload[ToolDispatchedPayload](e)
}

func GetLLMCallPayload(e Event) (LLMCallPayload, bool) {
	return ExtractPayload[LLMCallPayload](e)
}
