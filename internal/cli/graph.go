package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/diagtree/internal/presentation/graph"
	"github.com/aretw0/diagtree/pkg/adapters/file"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// GraphOptions configures the graph command.
type GraphOptions struct {
	// Out is the file receiving the diagram. Empty means the writer.
	Out string
	// Path highlights a walk, as answers from the root.
	Path []domain.Answer
}

// ParsePath reads a comma separated list of answers ("yes,no,y").
func ParsePath(s string) ([]domain.Answer, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var path []domain.Answer
	for _, part := range strings.Split(s, ",") {
		a, err := domain.ParseAnswer(part)
		if err != nil {
			return nil, err
		}
		path = append(path, a)
	}
	return path, nil
}

// Graph renders the tree as a Mermaid flowchart.
func Graph(ctx context.Context, location string, opts GraphOptions, logger *slog.Logger, w io.Writer) error {
	store, err := OpenStore(location, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return renderGraph(ctx, store, opts, w)
}

func renderGraph(ctx context.Context, store Store, opts GraphOptions, w io.Writer) error {
	root, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tree: %w", err)
	}

	var overlay *graph.GraphOverlay
	if len(opts.Path) > 0 {
		overlay = &graph.GraphOverlay{Path: opts.Path}
	}
	diagram := graph.GenerateMermaid(root, overlay)

	if opts.Out == "" {
		_, err := io.WriteString(w, diagram)
		return err
	}
	if err := os.WriteFile(opts.Out, []byte(diagram), 0644); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	return nil
}

// watchDebounce groups the events of a single save (temp file, rename).
const watchDebounce = 100 * time.Millisecond

// WatchGraph renders the graph, then again every time the tree file changes,
// until ctx is cancelled. Only file stores can be watched.
func WatchGraph(ctx context.Context, location string, opts GraphOptions, logger *slog.Logger, w io.Writer) error {
	store, err := OpenStore(location, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	nc, _ := store.(nopCloser)
	fs, ok := nc.TreeStore.(*file.Store)
	if !ok {
		return fmt.Errorf("%w: --watch needs a file store, got %s", ErrUnsupportedStore, location)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Saves replace the file by renaming over it, so watch the directory.
	dir, name := filepath.Split(filepath.Clean(fs.Path))
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Info("Starting Watcher", "path", fs.Path)

	render := func() {
		if err := renderGraph(ctx, store, opts, w); err != nil {
			// A half-edited file is expected while watching; report and wait for the next change.
			printSystemMessage(w, "%v", err)
		}
	}
	if fs.Exists() {
		render()
	} else {
		printSystemMessage(w, "Waiting for %s to be created.", fs.Path)
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher", "path", fs.Path)
			logInterruption(ctx, logger, w, false)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("Tree changed", "op", event.Op.String())
				debounce = time.After(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				debounce = time.After(watchDebounce)
				continue
			}
			return fmt.Errorf("watch error: %w", err)
		case <-debounce:
			debounce = nil
			printSystemMessage(w, "Tree changed, re-rendering.")
			render()
		}
	}
}
