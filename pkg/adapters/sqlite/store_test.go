package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/diagtree/pkg/adapters/sqlite"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/aretw0/diagtree/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.TreeStore = (*sqlite.Store)(nil)

func openStore(t *testing.T, path, name string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(path, name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "trees.db"), "")

	ports.RunTreeStoreContract(t, store, func(t *testing.T) {
		_, err := store.DB().Exec(`UPDATE trees SET body = ? WHERE name = ?`, "X:bad\n", sqlite.DefaultName)
		require.NoError(t, err)
	})
}

func TestSQLiteStore_NamedTrees(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "trees.db")
	ctx := context.Background()

	adults := openStore(t, path, "adults")
	children := openStore(t, path, "children")

	require.NoError(t, adults.Save(ctx, domain.NewLeaf("Flu")))
	require.NoError(t, children.Save(ctx, domain.NewLeaf("Chickenpox")))

	a, err := adults.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Flu", a.Text)

	c, err := children.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Chickenpox", c.Text)

	names, err := adults.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"adults", "children"}, names)
}
