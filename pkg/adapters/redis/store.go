package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/diagtree/pkg/codec"
	"github.com/aretw0/diagtree/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the key holding the encoded tree.
const DefaultKey = "diagtree:tree"

// Store implements ports.TreeStore using Redis.
// The tree is kept under a single string key in its text form.
type Store struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of the stored tree.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithKey sets the key holding the tree.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromURL creates a store from a redis:// URL.
func NewFromURL(url string, opts ...Option) (*Store, error) {
	options, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(options), opts...), nil
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		key:    DefaultKey,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Key returns the key holding the tree.
func (s *Store) Key() string {
	return s.key
}

// Save overwrites the stored tree.
func (s *Store) Save(ctx context.Context, root *domain.Node) error {
	data, err := codec.Marshal(root)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: failed to save to redis: %w", domain.ErrStorage, err)
	}
	return nil
}

// Load retrieves the tree from Redis.
func (s *Store) Load(ctx context.Context) (*domain.Node, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrTreeNotFound
		}
		return nil, fmt.Errorf("%w: failed to get from redis: %w", domain.ErrStorage, err)
	}

	root, err := codec.Unmarshal(val)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrTreeNotFound
	}
	return root, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
