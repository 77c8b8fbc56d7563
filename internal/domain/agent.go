package domain

// ToolSpec describes one callable tool exposed to the language model:
// its name, a natural-language description, and a JSON Schema for its
// arguments (object properties plus required field names).
type ToolSpec struct {
	Name        string
	Description string
	Properties  map[string]any
	Required    []string
}

// ToolExecutionResult is the uniform outcome of a single tool invocation.
// Success carries an optional message and structured data; failure carries
// an error string. Action is always the tool name, so callers can render
// partial failures without guessing which call broke.
type ToolExecutionResult struct {
	Action  string         `json:"action"`
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// NewToolSuccess builds a successful tool result.
func NewToolSuccess(action, message string, data map[string]any) ToolExecutionResult {
	return ToolExecutionResult{
		Action:  action,
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewToolError builds a failed tool result.
func NewToolError(action, errMsg string) ToolExecutionResult {
	return ToolExecutionResult{
		Action:  action,
		Success: false,
		Error:   errMsg,
	}
}

// AgentResponse is the outcome of one agent invocation: the model's final
// text plus every tool result in invocation order.
type AgentResponse struct {
	Message     string                `json:"message"`
	ToolResults []ToolExecutionResult `json:"tool_results"`
}
