// Package badger stores the diagnosis tree in an embedded BadgerDB.
//
// The whole tree lives under a single key in its text form, so the database
// can be shared with other data (a key per tree).
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/diagtree/pkg/codec"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/dgraph-io/badger/v4"
)

// DefaultKey is the key holding the encoded tree.
const DefaultKey = "diagtree/tree"

// Config holds configuration for the BadgerDB instance.
type Config struct {
	// Path is the directory for BadgerDB files.
	// Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	InMemory bool

	// SyncWrites makes every save durable before returning.
	SyncWrites bool

	// Key holds the tree. Defaults to DefaultKey.
	Key string

	// Logger receives BadgerDB's internal logs. If nil, they are discarded.
	Logger *slog.Logger
}

// DefaultConfig returns durable settings for a database at path.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: true,
		Key:        DefaultKey,
	}
}

// InMemoryConfig returns configuration for tests.
func InMemoryConfig() Config {
	return Config{
		InMemory: true,
		Key:      DefaultKey,
	}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store implements ports.TreeStore on top of BadgerDB.
type Store struct {
	db  *badger.DB
	key []byte
}

// Open opens (or creates) the database described by cfg.
// The caller must Close the store.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("%w: create database directory %s: %w", domain.ErrStorage, cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger database: %w", domain.ErrStorage, err)
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	return &Store{db: db, key: []byte(key)}, nil
}

// Save overwrites the stored tree in a single transaction.
func (s *Store) Save(ctx context.Context, root *domain.Node) error {
	data, err := codec.Marshal(root)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key, data)
	})
	if err != nil {
		return fmt.Errorf("%w: write tree: %w", domain.ErrStorage, err)
	}
	return nil
}

// Load reads the stored tree.
func (s *Store) Load(ctx context.Context) (*domain.Node, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, domain.ErrTreeNotFound
		}
		return nil, fmt.Errorf("%w: read tree: %w", domain.ErrStorage, err)
	}

	root, err := codec.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrTreeNotFound
	}
	return root, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
