// Package sqlite stores the note collection in a single-table SQLite
// database, one row per key.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"

	"github.com/aretw0/myflomo/pkg/core"
)

// DefaultFileName is the database file created inside a vault.
const DefaultFileName = "myflomo.db"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Config holds the configuration for the SQLite storage.
type Config struct {
	Path     string
	ReadOnly bool
	Logger   *slog.Logger
}

// Storage implements core.Storage on top of an SQLite key-value table.
type Storage struct {
	Path   string
	db     *sql.DB
	config Config
	logger *slog.Logger
	writes atomic.Int64
}

// Open opens (creating if needed) the database at config.Path.
// Call Initialize before use to create the schema.
func Open(config Config) (*Storage, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", config.Path)
	if config.ReadOnly {
		dsn += "&_pragma=query_only(1)"
	} else {
		dsn += "&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &Storage{
		Path:   config.Path,
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

// Initialize verifies the connection and creates the schema.
func (s *Storage) Initialize(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if s.config.ReadOnly {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.logger.Debug("sqlite storage ready", "path", s.Path)
	return nil
}

// Close releases the database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	s.writes.Add(1)
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in lexical order.
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Path     string `json:"path"`
	ReadOnly bool   `json:"read_only"`
	Writes   int64  `json:"writes"`
	OpenConn int    `json:"open_connections"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	return StorageState{
		Path:     s.Path,
		ReadOnly: s.config.ReadOnly,
		Writes:   s.writes.Load(),
		OpenConn: s.db.Stats().OpenConnections,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "sqlite"
}

var (
	_ core.Storage                 = (*Storage)(nil)
	_ core.Initializer             = (*Storage)(nil)
	_ introspection.Introspectable = (*Storage)(nil)
	_ introspection.Component      = (*Storage)(nil)
)
