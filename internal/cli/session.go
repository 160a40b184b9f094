package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/diagtree"
	"github.com/aretw0/diagtree/internal/config"
	"github.com/aretw0/diagtree/internal/metrics"
	"github.com/aretw0/diagtree/internal/presentation/tui"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/aretw0/diagtree/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Config config.Config
	JSON   bool
	Form   bool
	// Rich enables the banner and markdown rendering (terminals only).
	Rich bool
	In   io.Reader
	Out  io.Writer
}

// RunSession loads the tree and runs an interactive diagnosis session on it.
func RunSession(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	logger := CreateLogger(cfg.Debug, cfg.LogFormat)

	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	if opts.Rich && !opts.JSON {
		tui.PrintBanner(out, diagtree.Version)
	}

	store, err := openConfigured(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var hooks []domain.LifecycleHooks
	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New()
		hooks = append(hooks, m.Hooks())
	}
	if cfg.Debug {
		hooks = append(hooks, createDebugHooks(logger))
	}

	engine := diagtree.New(store,
		diagtree.WithLogger(logger),
		diagtree.WithSeed(cfg.Seed),
		diagtree.WithLifecycleHooks(domain.Merge(hooks...)),
	)

	root, err := engine.Load(ctx)
	if errors.Is(err, domain.ErrTreeNotFound) {
		return fmt.Errorf("no tree in %s: run 'diagtree init <diagnosis>' or pass --seed: %w", cfg.Store, err)
	}
	if err != nil {
		return fmt.Errorf("error loading tree: %w", err)
	}
	logger.Info("Tree Loaded", "store", cfg.Store, "nodes", domain.Inspect(root).Nodes)

	handler := createHandler(opts, in, out)
	if c, ok := handler.(io.Closer); ok {
		defer c.Close()
	}

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
		runner.WithRepeat(cfg.Repeat),
	)

	_, runErr := r.Run(ctx, engine, root)
	logInterruption(ctx, logger, out, opts.JSON)

	if m != nil {
		if err := m.WriteFile(cfg.MetricsFile); err != nil {
			logger.Error("Metrics not written", "path", cfg.MetricsFile, "error", err)
			if runErr == nil {
				runErr = err
			}
		}
	}

	return handleExecutionError(runErr)
}

func createHandler(opts RunOptions, in io.Reader, out io.Writer) runner.IOHandler {
	switch {
	case opts.JSON:
		return runner.NewJSONHandler(in, out)
	case opts.Form:
		return runner.NewFormHandler(in, out)
	case opts.Rich:
		return runner.NewTextHandler(in, out, runner.WithTextHandlerRenderer(tui.NewRenderer()))
	}
	return runner.NewTextHandler(in, out)
}
