package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

// ImportMode decides how imported entries combine with existing ones.
type ImportMode int

const (
	// ImportMerge replaces entries with the same keyword and appends the rest.
	ImportMerge ImportMode = iota
	// ImportReplace discards every existing entry.
	ImportReplace
)

type ExportBangs struct {
	store *domain.ConfigStore
	codec ports.BangsCodec
	log   *slog.Logger
}

func NewExportBangs(store *domain.ConfigStore, codec ports.BangsCodec, opts ...Option) *ExportBangs {
	o := buildOptions(opts)
	return &ExportBangs{store: store, codec: codec, log: o.log}
}

func (uc *ExportBangs) Execute(w io.Writer) (int, error) {
	cfg := uc.store.Config()
	if err := uc.codec.Write(w, cfg.Bangs); err != nil {
		return 0, err
	}
	return len(cfg.Bangs), nil
}

type ImportBangs struct {
	save  *SaveConfig
	codec ports.BangsCodec
	log   *slog.Logger
}

func NewImportBangs(save *SaveConfig, codec ports.BangsCodec, opts ...Option) *ImportBangs {
	o := buildOptions(opts)
	return &ImportBangs{save: save, codec: codec, log: o.log}
}

// Execute reads an export document and saves the combined config. Nothing is
// saved when the document is rejected.
func (uc *ImportBangs) Execute(ctx context.Context, r io.Reader, mode ImportMode) (int, error) {
	bangs, err := uc.codec.Read(r)
	if err != nil {
		uc.log.Warn("import.rejected", "kind", domain.KindOf(err), "err", err)
		return 0, err
	}
	return uc.apply(ctx, bangs, mode)
}

// ExecuteFile imports the document stored at path.
func (uc *ImportBangs) ExecuteFile(ctx context.Context, path string, mode ImportMode) (int, error) {
	bangs, err := uc.codec.Load(path)
	if err != nil {
		uc.log.Warn("import.rejected", "path", path, "kind", domain.KindOf(err), "err", err)
		return 0, err
	}
	return uc.apply(ctx, bangs, mode)
}

func (uc *ImportBangs) apply(ctx context.Context, bangs []domain.BangEntry, mode ImportMode) (int, error) {
	_, err := uc.save.Update(ctx, func(cfg domain.Config) (domain.Config, error) {
		if mode == ImportReplace {
			cfg.Bangs = []domain.BangEntry{}
		}
		for _, b := range bangs {
			cfg = cfg.WithBang(b)
		}
		return cfg, nil
	})
	if err != nil {
		return 0, err
	}

	uc.log.Info("import.done", "bangs", len(bangs), "replace", mode == ImportReplace)
	return len(bangs), nil
}

// ExecuteFile writes the export document to path atomically.
func (uc *ExportBangs) ExecuteFile(path string) (int, error) {
	cfg := uc.store.Config()
	if err := uc.codec.Save(path, cfg.Bangs); err != nil {
		return 0, err
	}
	uc.log.Info("export.done", "path", path, "bangs", len(cfg.Bangs))
	return len(cfg.Bangs), nil
}
