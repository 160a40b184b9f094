package memory

import (
	"context"
	"sync"

	"github.com/aretw0/diagtree/pkg/codec"
	"github.com/aretw0/diagtree/pkg/domain"
)

// Store implements ports.TreeStore in memory.
// The tree is kept in its encoded form so that every Save/Load goes through the codec,
// exactly like the durable stores. Safe for concurrent use.
type Store struct {
	data []byte
	mu   sync.RWMutex
}

// NewStore creates a new, empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreFromText creates a store that already holds the given encoded tree.
func NewStoreFromText(text string) *Store {
	return &Store{data: []byte(text)}
}

// Save encodes and keeps the tree.
func (s *Store) Save(ctx context.Context, root *domain.Node) error {
	data, err := codec.Marshal(root)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Load decodes a fresh copy of the tree.
func (s *Store) Load(ctx context.Context) (*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, domain.ErrTreeNotFound
	}
	root, err := codec.Unmarshal(s.data)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrTreeNotFound
	}
	return root, nil
}

// Text returns the encoded tree as last saved.
func (s *Store) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return string(s.data)
}

// SetText replaces the encoded tree without validation.
func (s *Store) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = []byte(text)
}
