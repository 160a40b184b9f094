// Package sqlite stores diagnosis trees in a SQLite database.
//
// Each tree is a row keyed by name, holding the tree's text form. The driver is
// the pure Go modernc.org/sqlite (no CGO).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/diagtree/pkg/codec"
	"github.com/aretw0/diagtree/pkg/domain"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// DefaultName is the row holding the tree when no name is given.
const DefaultName = "default"

const schema = `CREATE TABLE IF NOT EXISTS trees (
	name       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Store implements ports.TreeStore using SQLite.
type Store struct {
	db   *sql.DB
	name string
}

// Open connects to the database at dsn, applies pragmas and creates the schema.
// name selects the tree row; empty means DefaultName.
func Open(dsn, name string) (*Store, error) {
	if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create database directory: %w", domain.ErrStorage, err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %w", domain.ErrStorage, err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: apply pragmas: %w", domain.ErrStorage, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %w", domain.ErrStorage, err)
	}

	if name == "" {
		name = DefaultName
	}
	return &Store{db: db, name: name}, nil
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = FULL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Save upserts the tree row.
func (s *Store) Save(ctx context.Context, root *domain.Node) error {
	data, err := codec.Marshal(root)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO trees (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		s.name, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: save tree %q: %w", domain.ErrStorage, s.name, err)
	}
	return nil
}

// Load reads the tree row.
func (s *Store) Load(ctx context.Context) (*domain.Node, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM trees WHERE name = ?`, s.name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTreeNotFound
		}
		return nil, fmt.Errorf("%w: load tree %q: %w", domain.ErrStorage, s.name, err)
	}

	root, err := codec.Unmarshal([]byte(body))
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrTreeNotFound
	}
	return root, nil
}

// Names lists the stored trees.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM trees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: list trees: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
