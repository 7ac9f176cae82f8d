package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCapability is returned when a requested tool name is not
	// registered. The executor converts it into a failure result instead of
	// aborting the cycle.
	ErrUnknownCapability = errors.New("unknown capability")

	// ErrDuplicateCapability is returned when registering a name twice.
	// Registry misuse is a programmer error and should never happen at runtime.
	ErrDuplicateCapability = errors.New("duplicate capability")

	// ErrNotConfigured marks a capability whose prerequisite (e.g. a webhook
	// URL) is absent. It is a tool-level failure, never fatal to a cycle.
	ErrNotConfigured = errors.New("not configured")
)

// ModelGatewayError wraps a failure from the model gateway. It is the one
// failure that aborts an orchestration cycle: no turn is committed and the
// session is left exactly as it was.
type ModelGatewayError struct {
	Err error
}

func (e *ModelGatewayError) Error() string {
	return fmt.Sprintf("model gateway: %v", e.Err)
}

func (e *ModelGatewayError) Unwrap() error { return e.Err }
