package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/diagtree/internal/config"
	"github.com/aretw0/diagtree/internal/logging"
	"github.com/aretw0/diagtree/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger.
// Without debug, logs are discarded; otherwise they go to Stderr in the given
// format, keeping Stdout for the session.
func CreateLogger(debug bool, format string) *slog.Logger {
	if !debug {
		return logging.NewNop()
	}
	return logging.NewWithFormat(format, slog.LevelDebug)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// signalOf returns the signal that cancelled ctx, or nil when ctx is not a
// SignalContext or stopped for another reason.
func signalOf(ctx context.Context) os.Signal {
	if sc, ok := ctx.(*SignalContext); ok {
		return sc.Signal()
	}
	return nil
}

// logInterruption reports a run stopped by a signal. quiet keeps w clean for
// machine-readable output.
func logInterruption(ctx context.Context, logger *slog.Logger, w io.Writer, quiet bool) {
	sig := signalOf(ctx)
	if sig == nil {
		return
	}
	logger.Info("Session interrupted", "signal", sig.String())
	if !quiet {
		printSystemMessage(w, "Interrupted by %s.", sig)
	}
}

// createDebugHooks logs every engine event at debug level.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAnswer: func(ctx context.Context, e *domain.AnswerEvent) {
			logger.Debug("Answer", "question", e.Question, "answer", e.Answer)
		},
		OnConfirm: func(ctx context.Context, e *domain.ConfirmEvent) {
			logger.Debug("Confirm", "diagnosis", e.Diagnosis, "correct", e.Correct)
		},
		OnLearn: func(ctx context.Context, e *domain.LearnEvent) {
			logger.Debug("Learn", "rejected", e.Rejected, "diagnosis", e.Diagnosis, "at_root", e.AtRoot)
		},
		OnSave: func(ctx context.Context, e *domain.SaveEvent) {
			if e.Err != nil {
				logger.Debug("Save (Error)", "nodes", e.Nodes, "err", e.Err)
			} else {
				logger.Debug("Save (Success)", "nodes", e.Nodes, "duration", e.Duration)
			}
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}

// openConfigured opens the store named by the configuration.
func openConfigured(cfg config.Config, logger *slog.Logger) (Store, error) {
	store, err := OpenStore(cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}
