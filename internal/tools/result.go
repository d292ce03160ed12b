package tools

import "encoding/json"

// Result is the structured outcome of every tool dispatch. It is what the
// model sees in the follow-up call, and what the shell renders as the
// diagnostic trace. Tool failures are results, never Go errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON renders the result for the tool message of the second completion call.
func (r Result) JSON() string {
	data, err := json.Marshal(r)
	if err != nil {
		// Result bodies are plain structs; this cannot realistically fail.
		return `{"success":false,"message":"encode tool result"}`
	}
	return string(data)
}

func ok(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

func fail(message string) Result {
	return Result{Success: false, Message: message}
}
