package ports

import (
	"context"

	"github.com/aretw0/diagtree/pkg/domain"
)

// TreeStore defines the interface for persisting the diagnosis tree.
// Save is a full overwrite of the stored tree.
type TreeStore interface {
	// Load retrieves the stored tree.
	// Returns domain.ErrTreeNotFound if nothing has been saved yet and an error
	// wrapping domain.ErrCorruptTreeFormat if the stored text cannot be parsed.
	Load(ctx context.Context) (*domain.Node, error)

	// Save replaces the stored tree with root.
	Save(ctx context.Context, root *domain.Node) error
}
