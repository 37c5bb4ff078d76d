package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/infra/boltstore"
	"github.com/aalvaropc/bangs/internal/infra/logger"
	"github.com/aalvaropc/bangs/internal/infra/settings"
	"github.com/aalvaropc/bangs/internal/infra/sqlitestore"
	"github.com/aalvaropc/bangs/internal/infra/storage"
	"github.com/aalvaropc/bangs/internal/ports"
	"github.com/aalvaropc/bangs/internal/usecase"
)

// EnvHome overrides the default data directory.
const EnvHome = "BANGS_HOME"

type appCtx struct {
	dir      string
	settings settings.Settings
	selector settings.FileSelector
	manager  *storage.Manager
	store    *domain.ConfigStore
	log      *slog.Logger

	// files are the storage file names a watcher should react to.
	files []string
}

// loadApp wires the storage stack for dir without touching stored data.
func loadApp(dir string) (*appCtx, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s, err := settings.Load(dir)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	syncStore := boltstore.New(dir)
	localStore := sqlitestore.New(dir)

	m, err := storage.NewManager(s.Backend, map[domain.Backend]ports.StorageBackend{
		domain.BackendSync:  syncStore,
		domain.BackendLocal: localStore,
	})
	if err != nil {
		return nil, err
	}

	return &appCtx{
		dir:      dir,
		settings: s,
		selector: settings.FileSelector{Dir: dir},
		manager:  m,
		store:    domain.NewConfigStore(domain.DefaultConfig()),
		log:      logger.L(),
		files: []string{
			filepath.Base(syncStore.Path()),
			filepath.Base(localStore.Path()),
			settings.FileName,
		},
	}, nil
}

// bootstrap loads the stored config into a.store. Unusable stored data is
// reported on stderr and the defaults are used.
func (a *appCtx) bootstrap(ctx context.Context) (usecase.BootstrapResult, error) {
	res, err := usecase.NewBootstrap(a.manager, a.store, usecase.WithLogger(a.log)).Execute(ctx)
	if err != nil && res.Source == usecase.SourceDefaults {
		fmt.Fprintf(os.Stderr, "warning: stored config is unusable, using defaults: %v\n", err)
		return res, nil
	}
	return res, err
}

// loadReady is loadApp followed by bootstrap.
func loadReady(ctx context.Context, flags *rootFlags) (*appCtx, error) {
	a, err := loadApp(flags.dataDir)
	if err != nil {
		return nil, err
	}
	if _, err := a.bootstrap(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *appCtx) saver() *usecase.SaveConfig {
	return usecase.NewSaveConfig(a.manager, a.store, usecase.WithLogger(a.log))
}

func resolveDataDir(flag string) (string, error) {
	if d := strings.TrimSpace(flag); d != "" {
		abs, err := filepath.Abs(d)
		if err != nil {
			return "", fmt.Errorf("invalid data dir: %w", err)
		}
		return abs, nil
	}

	if d := strings.TrimSpace(os.Getenv(EnvHome)); d != "" {
		return filepath.Abs(d)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir (tip: set --data-dir or $%s): %w", EnvHome, err)
	}
	return filepath.Join(base, "bangs"), nil
}

func debugFromSettings(dir string) bool {
	s, _ := settings.Load(dir)
	return s.Debug
}
