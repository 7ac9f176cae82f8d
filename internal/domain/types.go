package domain

// SessionID identifies one persisted conversation. It is opaque to the core;
// callers choose it (or let the HTTP adapter mint one).
type SessionID string

// Role identifies who authored a turn.
type Role string

const (
	RoleSystem     Role = "system"
	RoleUser       Role = "user"
	RoleAssistant  Role = "assistant"
	RoleToolResult Role = "tool-result"
)
