package ports

import (
	"context"

	"github.com/aalvaropc/bangs/internal/domain"
)

// StorageBackend is a key/value area holding persisted blobs.
// Get reports ok=false when the key is absent; that is not an error.
type StorageBackend interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes the given keys, or every key when none are given.
	Clear(ctx context.Context, keys ...string) error
}

// BackendSelector persists which backend is active.
type BackendSelector interface {
	ActiveBackend() (domain.Backend, error)
	SaveActiveBackend(kind domain.Backend) error
}

// StorageAdmin exposes backend management on top of a ConfigRepository.
type StorageAdmin interface {
	Active() domain.Backend
	Use(kind domain.Backend) error
	Usage(ctx context.Context) (used int, quota int, err error)
	ClearUnused(ctx context.Context) ([]domain.Backend, error)
}
