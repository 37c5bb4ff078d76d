package domain

import (
	"fmt"

	"golang.org/x/text/cases"
)

// LookupTable is a keyword index derived from a Config. It is rebuilt on
// every Config replacement and never persisted.
type LookupTable struct {
	foldCase bool
	entries  map[string]BangEntry
}

// ResolvedBang is a keyword resolved through its alias chain.
type ResolvedBang struct {
	Keyword     string // As typed.
	Target      string // Keyword of the entry that owns the URLs.
	URLs        []string
	DefaultURL  string
	EncodeQuery bool
}

// NewLookupTable indexes cfg.Bangs. On duplicate keywords the first entry wins.
func NewLookupTable(cfg Config) *LookupTable {
	t := &LookupTable{
		foldCase: cfg.Options.IgnoreBangCaseSensitivity,
		entries:  make(map[string]BangEntry, len(cfg.Bangs)),
	}
	for _, b := range cfg.Bangs {
		key := t.key(b.Keyword)
		if _, dup := t.entries[key]; dup {
			continue
		}
		t.entries[key] = b
	}
	return t
}

// Len returns the number of distinct keywords.
func (t *LookupTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

func (t *LookupTable) key(keyword string) string {
	if t.foldCase {
		return cases.Fold().String(keyword)
	}
	return keyword
}

// Resolve follows keyword's alias chain to the entry owning the URL templates.
// Cycles are reported as KindCyclicAlias instead of looping.
func (t *LookupTable) Resolve(keyword string) (ResolvedBang, error) {
	if t == nil || keyword == "" {
		return ResolvedBang{}, &OpError{Op: "lookup.resolve", Kind: KindNotFound, Err: errEmptyKeyword}
	}

	entry, ok := t.entries[t.key(keyword)]
	if !ok {
		return ResolvedBang{}, &OpError{
			Op:   "lookup.resolve",
			Kind: KindNotFound,
			Err:  fmt.Errorf("bang %q: %w", keyword, ErrNotFound),
		}
	}

	defaultURL := entry.DefaultURL
	visited := map[string]struct{}{t.key(entry.Keyword): {}}
	for entry.IsAlias() {
		next := t.key(entry.Alias)
		if _, seen := visited[next]; seen {
			return ResolvedBang{}, &OpError{
				Op:   "lookup.resolve",
				Kind: KindCyclicAlias,
				Err:  fmt.Errorf("bang %q via %q: %w", keyword, entry.Alias, ErrCyclicAlias),
			}
		}
		visited[next] = struct{}{}

		target, ok := t.entries[next]
		if !ok {
			return ResolvedBang{}, &OpError{
				Op:   "lookup.resolve",
				Kind: KindNotFound,
				Err:  fmt.Errorf("alias target %q of %q: %w", entry.Alias, keyword, ErrNotFound),
			}
		}
		entry = target
		if defaultURL == "" {
			defaultURL = entry.DefaultURL
		}
	}

	return ResolvedBang{
		Keyword:     keyword,
		Target:      entry.Keyword,
		URLs:        entry.URLs,
		DefaultURL:  defaultURL,
		EncodeQuery: entry.EncodeQuery,
	}, nil
}
