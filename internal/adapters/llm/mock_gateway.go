package llm

import (
	"context"
	"fmt"

	"github.com/smartserve/driftguard-assistant/internal/domain"
)

// MockGateway is a deterministic gateway for local mode. It never requests
// tools and just reflects the last user turn back.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) Converse(
	_ context.Context,
	turns []domain.Turn,
	_ []domain.CapabilityDescriptor,
) (*domain.ModelReply, error) {
	var lastUser string
	for _, t := range turns {
		if t.Role == domain.RoleUser {
			lastUser = t.Text
		}
	}
	return &domain.ModelReply{
		Text: fmt.Sprintf("(mock) I heard %q. Ask me about drift statistics or service health.", lastUser),
	}, nil
}
