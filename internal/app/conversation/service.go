package conversation

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/smartserve/driftguard-assistant/internal/app/chatflow"
	"github.com/smartserve/driftguard-assistant/internal/domain"
	"github.com/smartserve/driftguard-assistant/internal/observability"
)

// Service is the session-facing surface used by the HTTP adapter: one Ask per
// user request, one orchestration cycle per Ask.
type Service struct {
	orchestrator *chatflow.Orchestrator
	store        domain.SessionStore
}

func NewService(orchestrator *chatflow.Orchestrator, store domain.SessionStore) *Service {
	return &Service{
		orchestrator: orchestrator,
		store:        store,
	}
}

type AskInput struct {
	// SessionID may be empty; a fresh session id is minted then.
	SessionID domain.SessionID
	Text      string
}

type AskOutput struct {
	SessionID domain.SessionID
	Reply     string
}

// Ask runs one orchestration cycle for the session and returns the reply.
func (s *Service) Ask(ctx context.Context, in AskInput) (*AskOutput, error) {
	sessionID := in.SessionID
	if strings.TrimSpace(string(sessionID)) == "" {
		sessionID = domain.SessionID(uuid.NewString())
	}

	ctx = observability.WithSessionID(ctx, string(sessionID))
	log := observability.LoggerFromContext(ctx)
	log.Info("ask received", "text", in.Text)

	reply, err := s.orchestrator.RunCycle(ctx, sessionID, in.Text)
	if err != nil {
		log.Error("cycle failed", "error", err)
		return nil, err
	}

	log.Info("ask completed")
	return &AskOutput{
		SessionID: sessionID,
		Reply:     reply,
	}, nil
}

// History returns the session's stored turns.
func (s *Service) History(ctx context.Context, sessionID domain.SessionID) ([]domain.Turn, error) {
	turns, err := s.store.Load(sessionID)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("history load failed",
			"session_id", sessionID, "error", err)
		return nil, err
	}
	return turns, nil
}
