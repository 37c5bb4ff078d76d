package usecase

import (
	"context"
	"testing"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/infra/memstore"
)

func TestManageStorageSwitchPersistsChoice(t *testing.T) {
	m, _ := newManager(t, memstore.New())
	sel := &fakeSelector{}
	uc := NewManageStorage(m, sel, WithLogger(quietLogger()))

	if err := uc.Switch(domain.BackendLocal); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if m.Active() != domain.BackendLocal || sel.saved != domain.BackendLocal {
		t.Fatalf("expected local to be active and saved, got %s / %s", m.Active(), sel.saved)
	}
}

func TestManageStorageSwitchUndoneWhenSaveFails(t *testing.T) {
	m, _ := newManager(t, memstore.New())
	uc := NewManageStorage(m, &fakeSelector{err: errBoom}, WithLogger(quietLogger()))

	if err := uc.Switch(domain.BackendLocal); err == nil {
		t.Fatalf("expected error")
	}
	if m.Active() != domain.BackendSync {
		t.Fatalf("expected sync to remain active, got %s", m.Active())
	}
}

func TestManageStorageStatusAndClearUnused(t *testing.T) {
	ctx := context.Background()
	m, local := newManager(t, memstore.New())
	if err := local.Set(ctx, "config", []byte("stale")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := m.Store(ctx, domain.DefaultConfig()); err != nil {
		t.Fatalf("Store: %v", err)
	}

	uc := NewManageStorage(m, &fakeSelector{}, WithLogger(quietLogger()))
	st, err := uc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Active != domain.BackendSync || st.Used == 0 || st.Quota != domain.BackendSync.QuotaBytes() {
		t.Fatalf("unexpected status: %+v", st)
	}

	cleared, err := uc.ClearUnused(ctx)
	if err != nil {
		t.Fatalf("ClearUnused: %v", err)
	}
	if len(cleared) != 1 || cleared[0] != domain.BackendLocal {
		t.Fatalf("unexpected cleared list: %v", cleared)
	}
	if local.Len() != 0 {
		t.Fatalf("expected local backend to be empty")
	}
}
