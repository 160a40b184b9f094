package diagtree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/diagtree/internal/logging"
	"github.com/aretw0/diagtree/internal/runtime"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/aretw0/diagtree/pkg/ports"
)

// Version is the release of the module. Overridden at build time with -ldflags.
var Version = "0.1.0"

// Engine is the high-level entry point for the library.
// It wraps the internal runtime and owns the link to the tree store.
type Engine struct {
	runtime *runtime.Engine
	store   ports.TreeStore
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	seed    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSeed sets the diagnosis used to start a tree when the store is empty.
func WithSeed(diagnosis string) Option {
	return func(e *Engine) {
		e.seed = diagnosis
	}
}

// New initializes an Engine backed by store.
// A nil store keeps every learned tree in memory only.
func New(store ports.TreeStore, opts ...Option) *Engine {
	eng := &Engine{store: store}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.runtime = runtime.NewEngine(store,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)
	return eng
}

// Persistent reports whether learned trees are written to a store.
func (e *Engine) Persistent() bool {
	return e.store != nil
}

// Load reads the tree from the store.
// When the store is empty and a seed is configured, a single-leaf tree is returned.
// Any other failure is fatal to starting a session.
func (e *Engine) Load(ctx context.Context) (*domain.Node, error) {
	if e.store == nil {
		if e.seed == "" {
			return nil, domain.ErrTreeNotFound
		}
		return domain.NewLeaf(e.seed), nil
	}

	root, err := e.store.Load(ctx)
	if errors.Is(err, domain.ErrTreeNotFound) && e.seed != "" {
		e.logger.Info("store is empty, starting from seed", "seed", e.seed)
		return domain.NewLeaf(e.seed), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}
	return root, nil
}

// Save writes the whole tree to the store.
func (e *Engine) Save(ctx context.Context, root *domain.Node) error {
	return e.runtime.Save(ctx, root)
}

// Start places a cursor on the root of the tree.
func (e *Engine) Start(root *domain.Node) (domain.Cursor, error) {
	return e.runtime.Start(root)
}

// Advance answers the current question.
func (e *Engine) Advance(ctx context.Context, c domain.Cursor, answer domain.Answer) (domain.Cursor, error) {
	return e.runtime.Advance(ctx, c, answer)
}

// Confirm accepts or rejects the current diagnosis.
func (e *Engine) Confirm(ctx context.Context, c domain.Cursor, correct bool) (domain.Cursor, error) {
	return e.runtime.Confirm(ctx, c, correct)
}

// Learn applies a lesson after a rejected diagnosis and persists the tree.
// See runtime.Engine.Learn for the error contract.
func (e *Engine) Learn(ctx context.Context, c domain.Cursor, lesson domain.Lesson) (domain.Cursor, error) {
	return e.runtime.Learn(ctx, c, lesson)
}

// Reset moves the cursor back to the root without touching the tree.
func (e *Engine) Reset(c domain.Cursor) domain.Cursor {
	return e.runtime.Reset(c)
}
