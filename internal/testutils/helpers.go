package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/stretchr/testify/require"
)

// FeverTree is the serialized form of SampleTree.
const FeverTree = "Q:Do you have a fever?\nA:Flu\nA:Cold\n"

// SampleTree returns a fresh copy of the tree stored in FeverTree.
func SampleTree() *domain.Node {
	return domain.NewQuestion("Do you have a fever?", domain.NewLeaf("Flu"), domain.NewLeaf("Cold"))
}

// WriteTree writes content to a tree file in a temporary directory and
// returns its absolute path.
// It fails the test immediately on error.
func WriteTree(t *testing.T, content string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), "diagnosis_tree.txt"))
	require.NoError(t, err, "Failed to get absolute path for temp dir")
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0644), "Failed to write tree file")

	return absPath
}
