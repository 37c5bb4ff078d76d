// Package storage persists the Config through the active backend, enforcing
// the backend's quota before any write.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/infra/blobcodec"
	"github.com/aalvaropc/bangs/internal/infra/migrate"
	"github.com/aalvaropc/bangs/internal/ports"
)

const (
	// ConfigKey holds base64(xz(json(Config))).
	ConfigKey = "config"
	// LegacyKey holds pre-migration data as plain JSON.
	LegacyKey = "bangs"
)

type Manager struct {
	backends map[domain.Backend]ports.StorageBackend
	active   domain.Backend
}

var (
	_ ports.ConfigRepository = (*Manager)(nil)
	_ ports.StorageAdmin     = (*Manager)(nil)
)

// NewManager wires one StorageBackend per domain.Backend.
func NewManager(active domain.Backend, backends map[domain.Backend]ports.StorageBackend) (*Manager, error) {
	m := &Manager{backends: make(map[domain.Backend]ports.StorageBackend, len(backends))}
	for k, v := range backends {
		m.backends[k] = v
	}
	if err := m.Use(active); err != nil {
		return nil, err
	}
	return m, nil
}

// Active returns the backend currently used for reads and writes.
func (m *Manager) Active() domain.Backend {
	return m.active
}

// Use switches the active backend. Data is not copied between backends.
func (m *Manager) Use(kind domain.Backend) error {
	if _, ok := m.backends[kind]; !ok {
		return &domain.OpError{
			Op:   "storage.use",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("backend %q is not configured: %w", kind, domain.ErrInvalidConfig),
		}
	}
	m.active = kind
	return nil
}

func (m *Manager) backend() ports.StorageBackend {
	return m.backends[m.active]
}

// Store validates, encodes and writes cfg. Nothing is written when the blob
// exceeds the active backend's quota.
func (m *Manager) Store(ctx context.Context, cfg domain.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	blob, err := blobcodec.Encode(cfg)
	if err != nil {
		return err
	}
	if err := m.checkQuota(blob); err != nil {
		return err
	}

	if err := m.backend().Set(ctx, ConfigKey, blob); err != nil {
		return &domain.OpError{Op: "storage.store", Kind: domain.KindExecution, Path: ConfigKey, Err: err}
	}
	return nil
}

func (m *Manager) checkQuota(blob []byte) error {
	quota := m.active.QuotaBytes()
	if len(blob) <= quota {
		return nil
	}
	return &domain.OpError{
		Op:   "storage.store",
		Kind: domain.KindCapacityExceeded,
		Path: ConfigKey,
		Err: fmt.Errorf("%d bytes exceeds %s backend limit of %d bytes: %w",
			len(blob), m.active, quota, domain.ErrCapacityExceeded),
	}
}

// Load reads and upgrades the stored config. An absent key is KindNotFound;
// undecodable bytes are KindCorruptData and are left in place.
func (m *Manager) Load(ctx context.Context) (domain.Config, bool, error) {
	blob, ok, err := m.backend().Get(ctx, ConfigKey)
	if err != nil {
		return domain.Config{}, false, &domain.OpError{Op: "storage.load", Kind: domain.KindExecution, Path: ConfigKey, Err: err}
	}
	if !ok {
		return domain.Config{}, false, &domain.OpError{Op: "storage.load", Kind: domain.KindNotFound, Path: ConfigKey, Err: domain.ErrNotFound}
	}

	raw, err := blobcodec.Decompress(blob)
	if err != nil {
		return domain.Config{}, false, err
	}

	res, err := migrate.Upgrade(raw)
	if errors.Is(err, domain.ErrNoLegacyData) {
		return domain.Config{}, false, &domain.OpError{
			Op:   "storage.load",
			Kind: domain.KindCorruptData,
			Path: ConfigKey,
			Err:  fmt.Errorf("%w: unrecognized config shape", domain.ErrCorruptData),
		}
	}
	if err != nil {
		return domain.Config{}, false, err
	}
	return res.Config, res.Migrated(), nil
}

// LoadLegacy reads the pre-migration key. Entries that could not be
// converted are returned in skipped; the rest of the data is kept.
func (m *Manager) LoadLegacy(ctx context.Context) (domain.Config, []domain.SkippedBang, error) {
	raw, ok, err := m.backend().Get(ctx, LegacyKey)
	if err != nil {
		return domain.Config{}, nil, &domain.OpError{Op: "storage.load_legacy", Kind: domain.KindExecution, Path: LegacyKey, Err: err}
	}
	if !ok {
		return domain.Config{}, nil, &domain.OpError{Op: "storage.load_legacy", Kind: domain.KindNotFound, Path: LegacyKey, Err: domain.ErrNoLegacyData}
	}

	res, err := migrate.Upgrade(raw)
	if err != nil {
		return domain.Config{}, nil, err
	}
	return res.Config, res.Skipped, nil
}

// ClearLegacy deletes the pre-migration key.
func (m *Manager) ClearLegacy(ctx context.Context) error {
	if err := m.backend().Clear(ctx, LegacyKey); err != nil {
		return &domain.OpError{Op: "storage.clear_legacy", Kind: domain.KindExecution, Path: LegacyKey, Err: err}
	}
	return nil
}

// ReadRaw returns the stored blob as-is.
func (m *Manager) ReadRaw(ctx context.Context) ([]byte, bool, error) {
	return m.backend().Get(ctx, ConfigKey)
}

// WriteRaw writes a blob previously returned by ReadRaw, or deletes the key
// when blob is nil.
func (m *Manager) WriteRaw(ctx context.Context, blob []byte) error {
	if blob == nil {
		return m.backend().Clear(ctx, ConfigKey)
	}
	return m.backend().Set(ctx, ConfigKey, blob)
}

// Usage reports the stored blob size and the active quota.
func (m *Manager) Usage(ctx context.Context) (used int, quota int, err error) {
	blob, _, err := m.backend().Get(ctx, ConfigKey)
	if err != nil {
		return 0, 0, err
	}
	return len(blob), m.active.QuotaBytes(), nil
}

// ClearUnused wipes every configured backend except the active one.
func (m *Manager) ClearUnused(ctx context.Context) ([]domain.Backend, error) {
	var cleared []domain.Backend
	for _, kind := range domain.Backends {
		b, ok := m.backends[kind]
		if !ok || kind == m.active {
			continue
		}
		if err := b.Clear(ctx); err != nil {
			return cleared, &domain.OpError{
				Op:   "storage.clear_unused",
				Kind: domain.KindExecution,
				Err:  fmt.Errorf("%s: %w", kind, err),
			}
		}
		cleared = append(cleared, kind)
	}
	return cleared, nil
}
