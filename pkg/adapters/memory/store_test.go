package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/diagtree/pkg/adapters/memory"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/aretw0/diagtree/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.TreeStore = (*memory.Store)(nil)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunTreeStoreContract(t, store, func(t *testing.T) {
		store.SetText("X:bad\n")
	})
}

func TestMemoryStore_Text(t *testing.T) {
	store := memory.NewStoreFromText("Q:Fever?\nA:Flu\nA:Cold\n")

	root, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Fever?", root.Text)

	require.NoError(t, store.Save(context.Background(), domain.NewLeaf("Cold")))
	assert.Equal(t, "A:Cold\n", store.Text())
}

func TestMemoryStore_BlankTextIsEmpty(t *testing.T) {
	store := memory.NewStoreFromText("\n\n")
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrTreeNotFound)
}
