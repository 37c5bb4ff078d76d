package exportfile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aalvaropc/bangs/internal/domain"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bangs.json")
	bangs := domain.DefaultConfig().Bangs

	if err := Save(path, bangs); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be gone, stat err=%v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, bangs) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, bangs)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
