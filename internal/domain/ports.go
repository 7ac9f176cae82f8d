package domain

import "context"

// ModelReply is what the model gateway returns: either a final text or a
// nonempty list of tool calls, never both.
type ModelReply struct {
	Text      string
	ToolCalls []ToolCall
}

// ModelGateway is the language-model call boundary. Implementations convert
// the turn list and capability descriptors to the provider's wire format.
type ModelGateway interface {
	Converse(ctx context.Context, turns []Turn, capabilities []CapabilityDescriptor) (*ModelReply, error)
}

// Capability is a named external action the model may request.
type Capability interface {
	Name() string
	Description() string

	// ParameterSchema describes the expected arguments as a JSON schema map,
	// surfaced to the model gateway for tool selection.
	ParameterSchema() map[string]any

	Call(ctx context.Context, args map[string]any) (string, error)
}

// CapabilityDescriptor is the presentation of a capability to the gateway.
type CapabilityDescriptor struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// SessionStore persists per-session turn history. Load never fails on an
// unknown id; it returns an empty history. Append must be atomic per session
// id. Backing storage is pluggable; the in-memory implementation is enough
// for a single process.
type SessionStore interface {
	Load(sessionID SessionID) ([]Turn, error)
	Append(sessionID SessionID, turns ...Turn) error
	Replace(sessionID SessionID, turns []Turn) error
	Reset(sessionID SessionID) error
}
