package exportfile

import (
	"io"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

// Codec exposes the package functions as a ports.BangsCodec.
type Codec struct{}

var _ ports.BangsCodec = Codec{}

func (Codec) Write(w io.Writer, bangs []domain.BangEntry) error { return Write(w, bangs) }
func (Codec) Read(r io.Reader) ([]domain.BangEntry, error)      { return Read(r) }
func (Codec) Save(path string, bangs []domain.BangEntry) error  { return Save(path, bangs) }
func (Codec) Load(path string) ([]domain.BangEntry, error)      { return Load(path) }
