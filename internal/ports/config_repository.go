package ports

import (
	"context"

	"github.com/aalvaropc/bangs/internal/domain"
)

// ConfigRepository loads and stores the versioned Config.
type ConfigRepository interface {
	// Load returns the stored config, upgraded to the current schema.
	// migrated is true when the stored blob was in an older schema.
	Load(ctx context.Context) (cfg domain.Config, migrated bool, err error)
	Store(ctx context.Context, cfg domain.Config) error

	// LoadLegacy reads the pre-migration key. Absent or unrecognized data is
	// reported as domain.ErrNoLegacyData. Entries that could not be converted
	// are dropped and listed in skipped.
	LoadLegacy(ctx context.Context) (cfg domain.Config, skipped []domain.SkippedBang, err error)
	ClearLegacy(ctx context.Context) error

	// Raw access for snapshot/rollback around Store.
	ReadRaw(ctx context.Context) (blob []byte, ok bool, err error)
	WriteRaw(ctx context.Context, blob []byte) error
}
