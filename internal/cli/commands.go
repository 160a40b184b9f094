package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/diagtree/internal/validator"
	"github.com/aretw0/diagtree/pkg/domain"
)

// ErrTreeExists is returned by Init when the store already holds a tree.
var ErrTreeExists = errors.New("store already holds a tree")

// Init writes a single-diagnosis tree to the store.
// An existing tree, even a corrupt one, is only replaced when force is set.
func Init(ctx context.Context, location, diagnosis string, force bool, logger *slog.Logger, w io.Writer) error {
	diagnosis = strings.TrimSpace(diagnosis)
	if diagnosis == "" {
		return fmt.Errorf("%w: diagnosis", domain.ErrEmptyInput)
	}

	store, err := OpenStore(location, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if !force {
		_, err := store.Load(ctx)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s (use --force to replace it)", ErrTreeExists, location)
		case errors.Is(err, domain.ErrCorruptTreeFormat):
			return fmt.Errorf("%w: %s is corrupt (use --force to replace it): %w", ErrTreeExists, location, err)
		case !errors.Is(err, domain.ErrTreeNotFound):
			return err
		}
	}

	if err := store.Save(ctx, domain.NewLeaf(diagnosis)); err != nil {
		return err
	}
	printSystemMessage(w, "Initialized %s with %q.", location, diagnosis)
	return nil
}

// Validate loads the tree and reports its shape.
func Validate(ctx context.Context, location string, logger *slog.Logger, w io.Writer) error {
	store, err := OpenStore(location, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	root, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("invalid tree in %s: %w", location, err)
	}

	if err := validator.ValidateTree(root); err != nil {
		return err
	}

	stats := domain.Inspect(root)

	fmt.Fprintf(w, "✓ %s is valid\n", location)
	fmt.Fprintf(w, "  nodes:     %d\n", stats.Nodes)
	fmt.Fprintf(w, "  questions: %d\n", stats.Questions)
	fmt.Fprintf(w, "  diagnoses: %d\n", stats.Leaves)
	fmt.Fprintf(w, "  depth:     %d\n", stats.Depth)

	if lister, ok := store.(treeLister); ok {
		names, err := lister.Names(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  trees:     %s\n", strings.Join(names, ", "))
	}
	return nil
}

// treeLister is implemented by stores that keep several named trees.
type treeLister interface {
	Names(ctx context.Context) ([]string, error)
}

// Copy moves a tree between stores, overwriting the destination.
func Copy(ctx context.Context, from, to string, logger *slog.Logger, w io.Writer) error {
	src, err := OpenStore(from, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := OpenStore(to, logger)
	if err != nil {
		return err
	}
	defer dst.Close()

	root, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", from, err)
	}
	if err := dst.Save(ctx, root); err != nil {
		return fmt.Errorf("failed to write %s: %w", to, err)
	}

	printSystemMessage(w, "Copied %d nodes from %s to %s.", domain.Inspect(root).Nodes, from, to)
	return nil
}
