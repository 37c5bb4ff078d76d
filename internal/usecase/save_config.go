package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

// SaveConfig persists a replacement config and, only on success, swaps it
// into the ConfigStore. On failure the previously stored blob is restored.
type SaveConfig struct {
	repo  ports.ConfigRepository
	store *domain.ConfigStore
	log   *slog.Logger
}

func NewSaveConfig(repo ports.ConfigRepository, store *domain.ConfigStore, opts ...Option) *SaveConfig {
	o := buildOptions(opts)
	return &SaveConfig{repo: repo, store: store, log: o.log}
}

func (uc *SaveConfig) Execute(ctx context.Context, cfg domain.Config) error {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	prior, had, err := uc.repo.ReadRaw(ctx)
	if err != nil {
		return &domain.OpError{Op: "save_config.snapshot", Kind: domain.KindExecution, Err: err}
	}

	if err := uc.repo.Store(ctx, cfg); err != nil {
		uc.log.Warn("config.save_failed", "kind", domain.KindOf(err), "err", err)
		if rerr := uc.rollback(ctx, prior, had); rerr != nil {
			uc.log.Error("config.rollback_failed", "err", rerr)
			return errors.Join(err, rerr)
		}
		return err
	}

	uc.store.Replace(cfg)
	uc.log.Info("config.saved", "bangs", len(cfg.Bangs))
	return nil
}

// Update applies fn to a copy of the active config and saves the result.
func (uc *SaveConfig) Update(ctx context.Context, fn func(domain.Config) (domain.Config, error)) (domain.Config, error) {
	next, err := fn(uc.store.Config())
	if err != nil {
		return domain.Config{}, err
	}
	if err := uc.Execute(ctx, next); err != nil {
		return domain.Config{}, err
	}
	return uc.store.Config(), nil
}

func (uc *SaveConfig) rollback(ctx context.Context, prior []byte, had bool) error {
	if !had {
		prior = nil
	}
	if err := uc.repo.WriteRaw(ctx, prior); err != nil {
		return &domain.OpError{Op: "save_config.rollback", Kind: domain.KindExecution, Err: err}
	}
	return nil
}
