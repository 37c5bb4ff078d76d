package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/infra/memstore"
	"github.com/aalvaropc/bangs/internal/infra/storage"
	"github.com/aalvaropc/bangs/internal/ports"
)

var errBoom = errors.New("boom")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newManager(t *testing.T, sync ports.StorageBackend) (*storage.Manager, *memstore.Store) {
	t.Helper()
	local := memstore.New()
	m, err := storage.NewManager(domain.BackendSync, map[domain.Backend]ports.StorageBackend{
		domain.BackendSync:  sync,
		domain.BackendLocal: local,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, local
}

// tornBackend writes garbage and then fails, like a backend that gives no
// partial-write atomicity.
type tornBackend struct {
	*memstore.Store
	tear bool
}

func (b *tornBackend) Set(ctx context.Context, key string, value []byte) error {
	if b.tear {
		b.tear = false
		_ = b.Store.Set(ctx, key, value[:len(value)/2])
		return errBoom
	}
	return b.Store.Set(ctx, key, value)
}

type fakeSelector struct {
	saved domain.Backend
	err   error
}

func (f *fakeSelector) ActiveBackend() (domain.Backend, error) {
	return f.saved, nil
}

func (f *fakeSelector) SaveActiveBackend(kind domain.Backend) error {
	if f.err != nil {
		return f.err
	}
	f.saved = kind
	return nil
}
