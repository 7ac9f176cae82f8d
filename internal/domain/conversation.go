package domain

// Turn is one message in a conversation. Turns are immutable once appended to
// a session; the orchestrator only ever creates new ones.
type Turn struct {
	Role Role
	Text string

	// ToolCalls is present only on assistant turns that requested tools.
	ToolCalls []ToolCall
}

// ToolCall is a model-requested invocation of a named capability. It is
// produced only by the model gateway, never by the user.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolResult is the outcome of one tool call: a success payload or a failure
// description, never both. Construct via ToolSuccess or ToolFailure.
type ToolResult struct {
	tool    string
	payload string
	failed  bool
}

// ToolSuccess builds a successful result for the named tool.
func ToolSuccess(tool, output string) ToolResult {
	return ToolResult{tool: tool, payload: output}
}

// ToolFailure builds a failed result for the named tool.
func ToolFailure(tool, reason string) ToolResult {
	return ToolResult{tool: tool, payload: reason, failed: true}
}

// Tool returns the name of the capability this result came from.
func (r ToolResult) Tool() string { return r.tool }

// Failed reports whether the invocation failed.
func (r ToolResult) Failed() bool { return r.failed }

// Output returns the success payload; ok is false for failed results.
func (r ToolResult) Output() (out string, ok bool) {
	if r.failed {
		return "", false
	}
	return r.payload, true
}

// Failure returns the failure description; ok is false for successful results.
func (r ToolResult) Failure() (reason string, ok bool) {
	if !r.failed {
		return "", false
	}
	return r.payload, true
}
