package usecase

import (
	"context"
	"log/slog"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

type StorageStatus struct {
	Active domain.Backend
	Used   int
	Quota  int
}

// ManageStorage switches and inspects backends. Switching never copies data.
type ManageStorage struct {
	admin    ports.StorageAdmin
	selector ports.BackendSelector
	log      *slog.Logger
}

func NewManageStorage(admin ports.StorageAdmin, selector ports.BackendSelector, opts ...Option) *ManageStorage {
	o := buildOptions(opts)
	return &ManageStorage{admin: admin, selector: selector, log: o.log}
}

func (uc *ManageStorage) Status(ctx context.Context) (StorageStatus, error) {
	used, quota, err := uc.admin.Usage(ctx)
	if err != nil {
		return StorageStatus{}, &domain.OpError{Op: "storage.status", Kind: domain.KindExecution, Err: err}
	}
	return StorageStatus{Active: uc.admin.Active(), Used: used, Quota: quota}, nil
}

// Switch makes kind the active backend and persists the choice. The
// in-memory switch is undone when the choice cannot be saved.
func (uc *ManageStorage) Switch(kind domain.Backend) error {
	prev := uc.admin.Active()
	if err := uc.admin.Use(kind); err != nil {
		return err
	}
	if err := uc.selector.SaveActiveBackend(kind); err != nil {
		_ = uc.admin.Use(prev)
		return err
	}
	uc.log.Info("storage.switched", "from", string(prev), "to", string(kind))
	return nil
}

func (uc *ManageStorage) ClearUnused(ctx context.Context) ([]domain.Backend, error) {
	cleared, err := uc.admin.ClearUnused(ctx)
	if err != nil {
		uc.log.Warn("storage.clear_unused_failed", "err", err)
		return cleared, err
	}
	uc.log.Info("storage.cleared_unused", "backends", len(cleared))
	return cleared, nil
}
