package exportfile

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/aalvaropc/bangs/internal/domain"
)

// Save writes a document to path through a temporary file and a rename, so a
// reader never sees a half-written export.
func Save(path string, bangs []domain.BangEntry) error {
	var buf bytes.Buffer
	if err := Write(&buf, bangs); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{Op: "exportfile.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return &domain.OpError{Op: "exportfile.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "exportfile.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

// Load reads a document from path.
func Load(path string) ([]domain.BangEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := domain.KindExecution
		if os.IsNotExist(err) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "exportfile.open", Kind: kind, Path: path, Err: err}
	}
	defer f.Close()
	return Read(f)
}
