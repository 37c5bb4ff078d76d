package ports

import (
	"io"

	"github.com/aalvaropc/bangs/internal/domain"
)

// BangsCodec reads and writes the portable bang export document.
type BangsCodec interface {
	Write(w io.Writer, bangs []domain.BangEntry) error
	Read(r io.Reader) ([]domain.BangEntry, error)
	// Save and Load work on files; Save never leaves a partial document.
	Save(path string, bangs []domain.BangEntry) error
	Load(path string) ([]domain.BangEntry, error)
}
