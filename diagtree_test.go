package diagtree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/diagtree"
	"github.com/aretw0/diagtree/pkg/adapters/memory"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Load(context.Context) (*domain.Node, error) {
	return nil, errors.New("permission denied")
}
func (brokenStore) Save(context.Context, *domain.Node) error { return nil }

func TestLoad_Seed(t *testing.T) {
	ctx := context.Background()

	eng := diagtree.New(memory.NewStore(), diagtree.WithSeed("Common cold"))
	root, err := eng.Load(ctx)
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, "Common cold", root.Text)

	_, err = diagtree.New(memory.NewStore()).Load(ctx)
	assert.ErrorIs(t, err, domain.ErrTreeNotFound)
}

func TestLoad_FailureIsFatalEvenWithSeed(t *testing.T) {
	eng := diagtree.New(brokenStore{}, diagtree.WithSeed("Common cold"))
	_, err := eng.Load(context.Background())
	assert.ErrorContains(t, err, "permission denied")
}

func TestLoad_Corrupt(t *testing.T) {
	eng := diagtree.New(memory.NewStoreFromText("Q:Fever?\nX:bad\n"), diagtree.WithSeed("Flu"))
	_, err := eng.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorruptTreeFormat)
}

func TestEngine_SessionPersists(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	eng := diagtree.New(store, diagtree.WithSeed("Flu"))
	require.True(t, eng.Persistent())

	root, err := eng.Load(ctx)
	require.NoError(t, err)
	c, err := eng.Start(root)
	require.NoError(t, err)
	c, err = eng.Confirm(ctx, c, false)
	require.NoError(t, err)
	c, err = eng.Learn(ctx, c, domain.Lesson{Diagnosis: "Cold", Question: "Fever?"})
	require.NoError(t, err)

	assert.Equal(t, "Q:Fever?\nA:Flu\nA:Cold\n", store.Text())

	// A new engine on the same store resumes from the learned tree.
	reloaded, err := diagtree.New(store).Load(ctx)
	require.NoError(t, err)
	assert.True(t, domain.Equal(c.Root(), reloaded))

	c = eng.Reset(c)
	c, err = eng.Advance(ctx, c, domain.AnswerNo)
	require.NoError(t, err)
	assert.Equal(t, "Cold", c.Current().Text)
}

func TestEngine_Ephemeral(t *testing.T) {
	eng := diagtree.New(nil, diagtree.WithSeed("Flu"))
	assert.False(t, eng.Persistent())

	root, err := eng.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, eng.Save(context.Background(), root))
}
