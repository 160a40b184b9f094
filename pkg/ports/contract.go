package ports

import (
	"context"
	"testing"

	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTreeStoreContract runs a suite of tests to verify that a TreeStore implementation
// adheres to the defined interface contract. The store must start empty.
// corrupt, if not nil, must make the next Load see unparseable content.
func RunTreeStoreContract(t *testing.T, store TreeStore, corrupt func(t *testing.T)) {
	ctx := context.Background()

	t.Run("Load Empty", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrTreeNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		root := domain.NewQuestion("Fever?",
			domain.NewQuestion("Rash?", domain.NewLeaf("Measles"), domain.NewLeaf("Flu")),
			domain.NewLeaf("Cold"),
		)

		require.NoError(t, store.Save(ctx, root), "Save should not return error")

		loaded, err := store.Load(ctx)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, domain.Equal(root, loaded), "loaded tree differs from saved tree")
		assert.NotSame(t, root, loaded, "Load must not hand out the saved instance")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewLeaf("Flu")))
		require.NoError(t, store.Save(ctx, domain.NewLeaf("Cold")))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, loaded.IsLeaf())
		assert.Equal(t, "Cold", loaded.Text)
	})

	t.Run("Save Rejects Invalid Tree", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewLeaf("Kept")))

		broken := &domain.Node{Text: "Fever?", Yes: domain.NewLeaf("Flu")}
		assert.ErrorIs(t, store.Save(ctx, broken), domain.ErrInvalidNode)

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Kept", loaded.Text, "failed save must not touch the stored tree")
	})

	if corrupt != nil {
		t.Run("Load Corrupt", func(t *testing.T) {
			corrupt(t)
			_, err := store.Load(ctx)
			assert.ErrorIs(t, err, domain.ErrCorruptTreeFormat)
		})
	}
}
