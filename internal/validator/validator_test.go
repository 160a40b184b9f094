package validator

import (
	"testing"

	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTree(t *testing.T) {
	// Scenario A: valid tree
	valid := domain.NewQuestion("Cough?",
		domain.NewQuestion("Fever?", domain.NewLeaf("Flu"), domain.NewLeaf("Cold")),
		domain.NewLeaf("Allergy"),
	)
	require.NoError(t, ValidateTree(valid))
	require.NoError(t, ValidateTree(domain.NewLeaf("Flu")))

	// Scenario B: every problem is reported with its position
	broken := domain.NewQuestion("Cough?",
		&domain.Node{Text: "Fever?", Yes: domain.NewLeaf("Flu")},
		domain.NewLeaf("  "),
	)
	err := ValidateTree(broken)
	require.ErrorIs(t, err, ErrInvalidTree)
	assert.Contains(t, err.Error(), "found 2 errors")
	assert.Contains(t, err.Error(), `question "Fever?" at root/yes has a single branch`)
	assert.Contains(t, err.Error(), "blank text at root/no")
}

func TestValidateTree_LineBreak(t *testing.T) {
	err := ValidateTree(domain.NewLeaf("Flu\nCold"))
	require.ErrorIs(t, err, ErrInvalidTree)
	assert.Contains(t, err.Error(), "at root")
}

func TestValidateTree_Empty(t *testing.T) {
	require.ErrorIs(t, ValidateTree(nil), ErrInvalidTree)
}
