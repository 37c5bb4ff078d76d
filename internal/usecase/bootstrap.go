package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

// Source tells where the active config came from.
type Source string

const (
	SourceStored   Source = "stored"
	SourceMigrated Source = "migrated"
	SourceLegacy   Source = "legacy"
	SourceDefaults Source = "defaults"
)

type BootstrapResult struct {
	Source Source
	Config domain.Config
}

// Bootstrap loads the persisted config into the ConfigStore, running the
// migration chain and falling back to defaults when nothing usable exists.
type Bootstrap struct {
	repo  ports.ConfigRepository
	store *domain.ConfigStore
	log   *slog.Logger
}

func NewBootstrap(repo ports.ConfigRepository, store *domain.ConfigStore, opts ...Option) *Bootstrap {
	o := buildOptions(opts)
	return &Bootstrap{repo: repo, store: store, log: o.log}
}

// Execute always leaves the ConfigStore usable. A non-nil error together
// with SourceDefaults means stored or legacy data was unusable (corrupt,
// invalid or an unsupported version); those bytes are left untouched.
// Backend I/O failures leave the ConfigStore as it was.
func (uc *Bootstrap) Execute(ctx context.Context) (BootstrapResult, error) {
	cfg, migrated, err := uc.repo.Load(ctx)
	switch {
	case err == nil:
		src := SourceStored
		if migrated {
			src = SourceMigrated
			uc.persist(ctx, cfg, "bootstrap.migrated")
		}
		return uc.activate(src, cfg), nil

	case domain.IsKind(err, domain.KindNotFound):
		return uc.fromLegacy(ctx)

	case domain.IsKind(err, domain.KindCorruptData),
		domain.IsKind(err, domain.KindUnsupportedSchema),
		domain.IsKind(err, domain.KindInvalidConfig):
		uc.log.Error("bootstrap.unusable", "kind", domain.KindOf(err), "err", err)
		return uc.activate(SourceDefaults, domain.DefaultConfig()), err

	default:
		uc.log.Error("bootstrap.load_failed", "err", err)
		return BootstrapResult{}, err
	}
}

// fromLegacy migrates the pre-migration key. Unusable legacy data is
// reported like unusable main data: defaults are active for this run, nothing
// is written and the legacy bytes stay for the next attempt.
func (uc *Bootstrap) fromLegacy(ctx context.Context) (BootstrapResult, error) {
	cfg, skipped, err := uc.repo.LoadLegacy(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNoLegacyData):
		uc.log.Info("bootstrap.fresh_install")
		cfg = domain.DefaultConfig()
		uc.persist(ctx, cfg, "bootstrap.defaults")
		return uc.activate(SourceDefaults, cfg), nil
	case domain.IsKind(err, domain.KindExecution):
		uc.log.Error("bootstrap.load_failed", "key", "legacy", "err", err)
		return BootstrapResult{}, err
	default:
		uc.log.Error("bootstrap.legacy_unusable", "kind", domain.KindOf(err), "err", err)
		return uc.activate(SourceDefaults, domain.DefaultConfig()), err
	}

	for _, s := range skipped {
		uc.log.Warn("bootstrap.legacy_skipped", "keyword", s.Keyword, "err", s.Err)
	}

	if uc.persist(ctx, cfg, "bootstrap.legacy") {
		if err := uc.repo.ClearLegacy(ctx); err != nil {
			uc.log.Warn("bootstrap.clear_legacy_failed", "err", err)
		}
	}
	return uc.activate(SourceLegacy, cfg), nil
}

// persist writes cfg back; a failure is logged and the in-memory config is
// still used for this run.
func (uc *Bootstrap) persist(ctx context.Context, cfg domain.Config, event string) bool {
	if err := uc.repo.Store(ctx, cfg); err != nil {
		uc.log.Warn(event+".store_failed", "kind", domain.KindOf(err), "err", err)
		return false
	}
	uc.log.Info(event, "bangs", len(cfg.Bangs))
	return true
}

func (uc *Bootstrap) activate(src Source, cfg domain.Config) BootstrapResult {
	snap := uc.store.Replace(cfg)
	uc.log.Info("config.loaded", "source", string(src), "bangs", snap.Table.Len())
	return BootstrapResult{Source: src, Config: snap.Config.Clone()}
}
