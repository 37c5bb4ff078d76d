// Package exportfile reads and writes the portable bang export document.
package exportfile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/infra/migrate"
)

const (
	// Version is written by Write.
	Version = 2
	// previousVersion stored one " :: "-joined url string per bang.
	previousVersion = 1
)

type document struct {
	Version int             `json:"version"`
	Bangs   json.RawMessage `json:"bangs"`
}

type entryV2 struct {
	Keyword     string   `json:"keyword"`
	Alias       *string  `json:"alias"`
	DefaultURL  string   `json:"defaultUrl"`
	URLs        []string `json:"urls"`
	EncodeQuery bool     `json:"encodeQuery"`
}

type entryV1 struct {
	Bang string `json:"bang"`
	URL  string `json:"url"`
}

// Write encodes bangs as an indented version-2 document.
func Write(w io.Writer, bangs []domain.BangEntry) error {
	entries := make([]entryV2, 0, len(bangs))
	for _, b := range bangs {
		e := entryV2{
			Keyword:     b.Keyword,
			DefaultURL:  b.DefaultURL,
			URLs:        append([]string{}, b.URLs...),
			EncodeQuery: b.EncodeQuery,
		}
		if b.IsAlias() {
			alias := b.Alias
			e.Alias = &alias
		}
		entries = append(entries, e)
	}

	payload := struct {
		Version int       `json:"version"`
		Bangs   []entryV2 `json:"bangs"`
	}{Version: Version, Bangs: entries}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return &domain.OpError{Op: "exportfile.write", Kind: domain.KindExecution, Err: err}
	}
	return nil
}

// Read decodes a version-2 or version-1 document.
func Read(r io.Reader) ([]domain.BangEntry, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &domain.OpError{
			Op:   "exportfile.read",
			Kind: domain.KindCorruptData,
			Err:  fmt.Errorf("%w: %v", domain.ErrCorruptData, err),
		}
	}

	switch doc.Version {
	case Version:
		var entries []entryV2
		if err := json.Unmarshal(doc.Bangs, &entries); err != nil {
			return nil, invalid(err)
		}
		out := make([]domain.BangEntry, 0, len(entries))
		for _, e := range entries {
			b := domain.BangEntry{
				Keyword:     e.Keyword,
				DefaultURL:  e.DefaultURL,
				URLs:        append([]string{}, e.URLs...),
				EncodeQuery: e.EncodeQuery,
			}
			if e.Alias != nil {
				b.Alias = *e.Alias
			}
			out = append(out, b)
		}
		return out, nil

	case previousVersion:
		var entries []entryV1
		if err := json.Unmarshal(doc.Bangs, &entries); err != nil {
			return nil, invalid(err)
		}
		out := make([]domain.BangEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, domain.BangEntry{
				Keyword:     e.Bang,
				URLs:        migrate.SplitLegacyURLs(e.URL),
				EncodeQuery: true,
			})
		}
		return out, nil

	default:
		return nil, &domain.OpError{
			Op:   "exportfile.read",
			Kind: domain.KindUnsupportedSchema,
			Err: fmt.Errorf("export version %d is not supported (expected %d or %d): %w",
				doc.Version, Version, previousVersion, domain.ErrUnsupportedSchema),
		}
	}
}

func invalid(err error) error {
	return &domain.OpError{
		Op:   "exportfile.read",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("bangs: %w: %v", domain.ErrInvalidConfig, err),
	}
}
