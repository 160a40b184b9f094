package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aretw0/diagtree/pkg/adapters/badger"
	"github.com/aretw0/diagtree/pkg/adapters/file"
	"github.com/aretw0/diagtree/pkg/adapters/memory"
	"github.com/aretw0/diagtree/pkg/adapters/redis"
	"github.com/aretw0/diagtree/pkg/adapters/sqlite"
	"github.com/aretw0/diagtree/pkg/ports"
)

// ErrUnsupportedStore is returned for store URIs with an unknown scheme.
var ErrUnsupportedStore = errors.New("unsupported store")

// Store is a TreeStore that may hold a connection.
type Store interface {
	ports.TreeStore
	io.Closer
}

// nopCloser adapts stores without resources.
type nopCloser struct{ ports.TreeStore }

func (nopCloser) Close() error { return nil }

// OpenStore opens the tree store named by location:
//
//	diagnosis_tree.txt | file://path            text file
//	mem://                                      process memory
//	redis://host:port/db?key=name               Redis key
//	badger:///dir?key=name                      BadgerDB directory
//	sqlite:///file.db?name=tree                 SQLite row
func OpenStore(location string, logger *slog.Logger) (Store, error) {
	scheme, _, ok := strings.Cut(location, "://")
	if !ok {
		return nopCloser{file.New(location)}, nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid store %q: %w", location, err)
	}
	query := u.Query()
	target := u.Host + u.Path

	switch strings.ToLower(scheme) {
	case "file":
		return nopCloser{file.New(target)}, nil

	case "mem", "memory":
		return nopCloser{memory.NewStore()}, nil

	case "redis", "rediss":
		var opts []redis.Option
		if key := query.Get("key"); key != "" {
			opts = append(opts, redis.WithKey(key))
			query.Del("key")
			u.RawQuery = query.Encode()
		}
		store, err := redis.NewFromURL(u.String(), opts...)
		if err != nil {
			return nil, err
		}
		return store, nil

	case "badger":
		if target == "" {
			return nil, fmt.Errorf("%w: badger store needs a directory: %q", ErrUnsupportedStore, location)
		}
		cfg := badger.DefaultConfig(target)
		cfg.Logger = logger
		if key := query.Get("key"); key != "" {
			cfg.Key = key
		}
		store, err := badger.Open(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil

	case "sqlite":
		if target == "" {
			return nil, fmt.Errorf("%w: sqlite store needs a file: %q", ErrUnsupportedStore, location)
		}
		store, err := sqlite.Open(target, query.Get("name"))
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	return nil, fmt.Errorf("%w: scheme %q in %q", ErrUnsupportedStore, scheme, location)
}
