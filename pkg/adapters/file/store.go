package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/diagtree/pkg/codec"
	"github.com/aretw0/diagtree/pkg/domain"
)

// DefaultPath is the conventional location of the tree file.
const DefaultPath = "diagnosis_tree.txt"

// Store implements ports.TreeStore using a single text file.
type Store struct {
	Path string
}

// New creates a new Store for the given file.
// If path is empty, it defaults to DefaultPath in the working directory.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Save writes the tree to the file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, root *domain.Node) error {
	// Encode before touching the disk so an invalid tree never replaces a valid file.
	data, err := codec.Marshal(root)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to ensure tree directory: %w", domain.ErrStorage, err)
	}

	// Same directory as the destination, required for an atomic rename.
	tmpFile, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(s.Path)+"-*")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %w", domain.ErrStorage, err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("%w: failed to write to temp file: %w", domain.ErrStorage, err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("%w: failed to fsync temp file: %w", domain.ErrStorage, err)
	}

	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: failed to close temp file: %w", domain.ErrStorage, err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("%w: failed to replace tree file: %w", domain.ErrStorage, err)
	}

	return nil
}

// Load reads and parses the tree file.
func (s *Store) Load(ctx context.Context) (*domain.Node, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrTreeNotFound
		}
		return nil, fmt.Errorf("%w: failed to open tree file: %w", domain.ErrStorage, err)
	}
	defer f.Close()

	root, err := codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	if root == nil {
		return nil, domain.ErrTreeNotFound
	}
	return root, nil
}

// Exists reports whether the tree file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}
