package chatflow

import (
	"context"
	"sync"
	"time"

	"github.com/smartserve/driftguard-assistant/internal/domain"
	"github.com/smartserve/driftguard-assistant/internal/observability"
)

// ToolRunner executes the tool calls requested by the model.
// Satisfied by *executor.Executor.
type ToolRunner interface {
	Execute(ctx context.Context, calls []domain.ToolCall) []domain.ToolResult
}

// CapabilityLister describes the registered capabilities to the gateway.
// Satisfied by *registry.Registry.
type CapabilityLister interface {
	DescribeAll() []domain.CapabilityDescriptor
}

// Orchestrator runs one conversation cycle per user request: ask the model,
// maybe run tools, ask the model again, commit exactly once. Each cycle moves
// through three phases:
//
//	INTENT:  preamble + stored history + the user's turn go to the gateway.
//	TOOLING: entered iff the first reply requested tools; the executor runs
//	         them and a narration turn embedding the results is added to the
//	         working history before the second gateway call.
//	COMMIT:  the new turns are appended to the persisted session in a single
//	         store call.
//
// A gateway failure on either call aborts the cycle before COMMIT, so the
// session is left exactly as it was. Tool failures never abort; they reach
// the model as text and degrade the answer instead.
type Orchestrator struct {
	gateway domain.ModelGateway
	store   domain.SessionStore
	tools   ToolRunner
	caps    CapabilityLister

	// preamble is injected at call time and never persisted, so it stays
	// swappable without rewriting history.
	preamble string

	// historyLimit caps how many stored turns are replayed. Zero means all.
	historyLimit int

	// locks serializes cycles per session id. Different sessions run fully
	// in parallel; two cycles on one session must not interleave history.
	locks sync.Map // domain.SessionID -> *sync.Mutex
}

type Option func(*Orchestrator)

// WithHistoryLimit caps the number of stored turns replayed to the gateway.
func WithHistoryLimit(n int) Option {
	return func(o *Orchestrator) { o.historyLimit = n }
}

func New(
	gateway domain.ModelGateway,
	store domain.SessionStore,
	tools ToolRunner,
	caps CapabilityLister,
	preamble string,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		gateway:  gateway,
		store:    store,
		tools:    tools,
		caps:     caps,
		preamble: preamble,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// cycle carries the state of one in-flight request between phases.
type cycle struct {
	sessionID domain.SessionID

	// working is what the gateway sees: preamble + stored turns + new turns.
	working []domain.Turn

	// pending is what COMMIT appends to the session. The user's turn and the
	// preamble live only in the working copy; the session stores the
	// assistant's side of the conversation, tool narration included.
	pending []domain.Turn

	finalText string
}

// RunCycle processes one user request against one session and returns the
// final reply text. It holds the session's lock end-to-end, so concurrent
// requests on the same id are serialized.
func (o *Orchestrator) RunCycle(ctx context.Context, sessionID domain.SessionID, userText string) (string, error) {
	mu := o.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	ctx = observability.WithSessionID(ctx, string(sessionID))
	log := observability.LoggerFromContext(ctx)
	start := time.Now()
	log.Info("cycle start")

	history, err := o.store.Load(sessionID)
	if err != nil {
		log.Error("session load failed", "error", err)
		return "", err
	}
	if o.historyLimit > 0 && len(history) > o.historyLimit {
		history = history[len(history)-o.historyLimit:]
	}

	cy := &cycle{sessionID: sessionID}
	cy.working = make([]domain.Turn, 0, len(history)+2)
	cy.working = append(cy.working, domain.Turn{Role: domain.RoleSystem, Text: o.preamble})
	cy.working = append(cy.working, history...)
	cy.working = append(cy.working, domain.Turn{Role: domain.RoleUser, Text: userText})

	reply, err := o.phaseIntent(ctx, cy)
	if err != nil {
		log.Error("intent phase failed", "error", err)
		return "", err
	}

	if len(reply.ToolCalls) > 0 {
		if err := o.phaseTooling(ctx, cy, reply.ToolCalls); err != nil {
			log.Error("tooling phase failed", "error", err)
			return "", err
		}
	} else {
		cy.finalText = reply.Text
	}

	// Cancellation before COMMIT must not persist anything.
	if err := ctx.Err(); err != nil {
		log.Warn("cycle canceled before commit")
		return "", err
	}

	if err := o.phaseCommit(cy); err != nil {
		log.Error("commit failed", "error", err)
		return "", err
	}

	log.Info("cycle end", "elapsed_ms", time.Since(start).Milliseconds())
	return cy.finalText, nil
}

// phaseIntent asks the gateway what the model wants to do with the new turn.
func (o *Orchestrator) phaseIntent(ctx context.Context, cy *cycle) (*domain.ModelReply, error) {
	reply, err := o.gateway.Converse(ctx, cy.working, o.caps.DescribeAll())
	if err != nil {
		return nil, &domain.ModelGatewayError{Err: err}
	}
	return reply, nil
}

// phaseTooling runs the requested tools, narrates their results into the
// working history, and asks the gateway for the final reply.
func (o *Orchestrator) phaseTooling(ctx context.Context, cy *cycle, calls []domain.ToolCall) error {
	log := observability.LoggerFromContext(ctx)
	log.Info("running tools", "count", len(calls))

	results := o.tools.Execute(ctx, calls)

	narration := domain.Turn{
		Role:      domain.RoleAssistant,
		Text:      narrationText(results),
		ToolCalls: calls,
	}
	cy.working = append(cy.working, narration)
	cy.pending = append(cy.pending, narration)

	reply, err := o.gateway.Converse(ctx, cy.working, o.caps.DescribeAll())
	if err != nil {
		return &domain.ModelGatewayError{Err: err}
	}

	cy.finalText = reply.Text
	return nil
}

// phaseCommit appends the cycle's new turns to the session in one atomic
// store call. The tool-narration turn is persisted deliberately: future
// turns should see which tools ran and what they returned.
func (o *Orchestrator) phaseCommit(cy *cycle) error {
	cy.pending = append(cy.pending, domain.Turn{
		Role: domain.RoleAssistant,
		Text: cy.finalText,
	})
	return o.store.Append(cy.sessionID, cy.pending...)
}

func (o *Orchestrator) sessionLock(sessionID domain.SessionID) *sync.Mutex {
	mu, _ := o.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
