package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/diagtree/internal/logging"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/aretw0/diagtree/pkg/ports"
)

// Engine walks and extends the diagnosis tree.
// It holds no session state: every operation takes a domain.Cursor and returns
// the next one. Only Learn has side effects (tree mutation and persistence).
type Engine struct {
	store  ports.TreeStore
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine persisting learned trees to store.
// A nil store makes learning ephemeral.
func NewEngine(store ports.TreeStore, opts ...EngineOption) *Engine {
	e := &Engine{
		store:  store,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start places a cursor on root.
func (e *Engine) Start(root *domain.Node) (domain.Cursor, error) {
	if root == nil {
		return domain.Cursor{}, domain.ErrTreeNotFound
	}
	if !root.Valid() {
		return domain.Cursor{}, fmt.Errorf("%w: root %q has exactly one branch", domain.ErrInvalidNode, root.Text)
	}
	return domain.NewCursor(root), nil
}

// Advance answers the current question and moves to the selected branch.
func (e *Engine) Advance(ctx context.Context, c domain.Cursor, answer domain.Answer) (domain.Cursor, error) {
	if err := expectPhase(c, domain.PhaseAsking, "advance"); err != nil {
		return c, err
	}

	question := c.Current()
	next := question.Branch(answer)
	if next == nil || !next.Valid() {
		return c, fmt.Errorf("%w: %s branch of %q", domain.ErrInvalidNode, answer, question.Text)
	}

	if e.hooks.OnAnswer != nil {
		e.hooks.OnAnswer(ctx, &domain.AnswerEvent{
			EventBase: e.event(domain.EventAnswer),
			Question:  question.Text,
			Answer:    answer,
		})
	}
	e.logger.Debug("answered", "question", question.Text, "answer", answer)

	return c.Descend(answer), nil
}

// Confirm records whether the current diagnosis is correct.
// A correct diagnosis finishes the session; an incorrect one moves to learning.
func (e *Engine) Confirm(ctx context.Context, c domain.Cursor, correct bool) (domain.Cursor, error) {
	if err := expectPhase(c, domain.PhaseConfirming, "confirm"); err != nil {
		return c, err
	}

	if e.hooks.OnConfirm != nil {
		e.hooks.OnConfirm(ctx, &domain.ConfirmEvent{
			EventBase: e.event(domain.EventConfirm),
			Diagnosis: c.Current().Text,
			Correct:   correct,
		})
	}
	e.logger.Debug("diagnosis confirmed", "diagnosis", c.Current().Text, "correct", correct)

	if correct {
		return c.WithPhase(domain.PhaseDone), nil
	}
	return c.WithPhase(domain.PhaseLearning), nil
}

// Reset returns a cursor on the session's root without touching the tree.
func (e *Engine) Reset(c domain.Cursor) domain.Cursor {
	return domain.NewCursor(c.Root())
}

func expectPhase(c domain.Cursor, want domain.Phase, op string) error {
	if c.Current() == nil {
		return fmt.Errorf("%w: %s on an unstarted cursor", domain.ErrInvalidTransition, op)
	}
	if c.Phase() != want {
		return fmt.Errorf("%w: %s while %s", domain.ErrInvalidTransition, op, c.Phase())
	}
	return nil
}

func (e *Engine) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: t}
}

// storageError makes sure persistence failures match domain.ErrStorage.
func storageError(err error) error {
	if errors.Is(err, domain.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}
