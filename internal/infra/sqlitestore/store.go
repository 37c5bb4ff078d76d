// Package sqlitestore implements the "local" storage backend on SQLite.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

const defaultFileName = "local.sqlite"

const createTable = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

type Store struct {
	path string
}

func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, defaultFileName)}
}

var _ ports.StorageBackend = (*Store)(nil)

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) open(ctx context.Context, op string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, s.fail(op, err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		_ = db.Close()
		return nil, s.fail(op, err)
	}
	return db, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, false, nil
	}
	db, err := s.open(ctx, "sqlitestore.get")
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	var v []byte
	err = db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, s.fail("sqlitestore.get", err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	db, err := s.open(ctx, "sqlitestore.set")
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return s.fail("sqlitestore.set", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, keys ...string) error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	db, err := s.open(ctx, "sqlitestore.clear")
	if err != nil {
		return err
	}
	defer db.Close()

	if len(keys) == 0 {
		_, err = db.ExecContext(ctx, "DELETE FROM kv")
	} else {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
		args := make([]any, len(keys))
		for i, k := range keys {
			args[i] = k
		}
		_, err = db.ExecContext(ctx, "DELETE FROM kv WHERE key IN ("+placeholders+")", args...)
	}
	if err != nil {
		return s.fail("sqlitestore.clear", err)
	}
	return nil
}

func (s *Store) fail(op string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindExecution,
		Path: s.path,
		Err:  err,
	}
}
