// Package boltstore implements the "sync" storage backend on a bbolt file.
//
// The database is opened per operation so other processes (for example a
// running `bangs serve`) can read and write the same file between calls.
package boltstore

import (
	"context"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

const defaultFileName = "sync.db"

var bucketName = []byte("bangs")

type Store struct {
	path    string
	timeout time.Duration
}

type Option func(*Store)

// WithLockTimeout bounds how long Open waits for another process' file lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// New stores data in dir/sync.db.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		path:    filepath.Join(dir, defaultFileName),
		timeout: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.StorageBackend = (*Store)(nil)

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) open(op string) (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, s.fail(op, err)
	}
	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: s.timeout})
	if err != nil {
		return nil, s.fail(op, err)
	}
	return db, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, false, nil
	}

	db, err := s.open("boltstore.get")
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	var out []byte
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// Values are only valid inside the transaction.
			out = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, s.fail("boltstore.get", err)
	}
	return out, out != nil, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db, err := s.open("boltstore.set")
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
	if err != nil {
		return s.fail("boltstore.set", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	db, err := s.open("boltstore.clear")
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketName) == nil {
			return nil
		}
		if len(keys) == 0 {
			return tx.DeleteBucket(bucketName)
		}
		b := tx.Bucket(bucketName)
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.fail("boltstore.clear", err)
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
