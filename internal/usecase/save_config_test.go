package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/infra/memstore"
)

func bulkyConfig(n int) domain.Config {
	cfg := domain.DefaultConfig()
	for i := 0; i < n; i++ {
		sum := sha256.Sum256([]byte(fmt.Sprint("bulk", i)))
		h := hex.EncodeToString(sum[:])
		cfg.Bangs = append(cfg.Bangs, domain.BangEntry{
			Keyword:     "b" + h[:10],
			URLs:        []string{"https://" + h + ".example/?q=%s", "https://y.example/" + h + "?q=%s"},
			EncodeQuery: true,
		})
	}
	return cfg
}

func TestSaveConfigSwapsOnSuccess(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, memstore.New())
	store := domain.NewConfigStore(domain.DefaultConfig())
	uc := NewSaveConfig(m, store, WithLogger(quietLogger()))

	next := domain.DefaultConfig().WithBang(domain.BangEntry{
		Keyword: "rs", URLs: []string{"https://docs.rs/releases/search?query=%s"}, EncodeQuery: true,
	})
	if err := uc.Execute(ctx, next); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := store.Snapshot().Table.Resolve("rs"); err != nil {
		t.Fatalf("expected new bang in lookup table: %v", err)
	}
	loaded, _, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, store.Config()) {
		t.Fatalf("stored and active config differ")
	}
}

func TestSaveConfigCapacityExceededKeepsPrior(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, memstore.New())
	store := domain.NewConfigStore(domain.DefaultConfig())
	uc := NewSaveConfig(m, store, WithLogger(quietLogger()))

	if err := uc.Execute(ctx, domain.DefaultConfig()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := uc.Execute(ctx, bulkyConfig(3000))
	if !domain.IsKind(err, domain.KindCapacityExceeded) {
		t.Fatalf("expected capacity exceeded, got %v", err)
	}

	loaded, _, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, domain.DefaultConfig().Normalize()) {
		t.Fatalf("expected prior stored value after failed save")
	}
	if len(store.Config().Bangs) != len(domain.DefaultConfig().Bangs) {
		t.Fatalf("expected config store to be left unchanged")
	}
}

func TestSaveConfigRollsBackTornWrite(t *testing.T) {
	ctx := context.Background()
	backend := &tornBackend{Store: memstore.New()}
	m, _ := newManager(t, backend)
	store := domain.NewConfigStore(domain.DefaultConfig())
	uc := NewSaveConfig(m, store, WithLogger(quietLogger()))

	if err := uc.Execute(ctx, domain.DefaultConfig()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	backend.tear = true
	next := domain.DefaultConfig()
	next.Options.Trigger = "#"
	err := uc.Execute(ctx, next)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected backend error, got %v", err)
	}

	loaded, _, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("expected prior blob to be restored, Load: %v", err)
	}
	if loaded.Options.Trigger != domain.DefaultTrigger {
		t.Fatalf("expected prior trigger, got %q", loaded.Options.Trigger)
	}
	if store.Config().Options.Trigger != domain.DefaultTrigger {
		t.Fatalf("expected config store to be left unchanged")
	}
}

func TestSaveConfigRollbackRemovesKeyWhenNothingWasStored(t *testing.T) {
	ctx := context.Background()
	backend := &tornBackend{Store: memstore.New(), tear: true}
	m, _ := newManager(t, backend)
	uc := NewSaveConfig(m, domain.NewConfigStore(domain.DefaultConfig()), WithLogger(quietLogger()))

	if err := uc.Execute(ctx, domain.DefaultConfig()); err == nil {
		t.Fatalf("expected error")
	}
	if backend.Len() != 0 {
		t.Fatalf("expected torn blob to be removed, got %d keys", backend.Len())
	}
}

func TestSaveConfigRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()
	m, _ := newManager(t, mem)
	uc := NewSaveConfig(m, domain.NewConfigStore(domain.DefaultConfig()), WithLogger(quietLogger()))

	bad := domain.DefaultConfig()
	bad.Options.Trigger = ""
	if err := uc.Execute(ctx, bad); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
	if mem.Len() != 0 {
		t.Fatalf("expected nothing written")
	}
}

func TestSaveConfigUpdate(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, memstore.New())
	store := domain.NewConfigStore(domain.DefaultConfig())
	uc := NewSaveConfig(m, store, WithLogger(quietLogger()))

	got, err := uc.Update(ctx, func(c domain.Config) (domain.Config, error) {
		return c.WithoutBang("yt")
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.FindBang("yt") >= 0 {
		t.Fatalf("expected yt to be removed")
	}

	_, err = uc.Update(ctx, func(c domain.Config) (domain.Config, error) {
		return c.WithoutBang("yt")
	})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found on second removal, got %v", err)
	}
}
