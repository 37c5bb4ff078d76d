package domain

import (
	"fmt"
	"net/url"
	"sync/atomic"
)

// Snapshot is an immutable view of one Config and its LookupTable.
type Snapshot struct {
	Config  Config
	Table   *LookupTable
	Ignored DomainSet
}

// ConfigStore owns the active Config. Readers take a Snapshot; writers replace
// the whole value, so a reader never sees a partially rebuilt table.
type ConfigStore struct {
	cur atomic.Pointer[Snapshot]
}

// NewConfigStore starts from cfg.
func NewConfigStore(cfg Config) *ConfigStore {
	s := &ConfigStore{}
	s.Replace(cfg)
	return s
}

// Snapshot returns the current snapshot.
func (s *ConfigStore) Snapshot() *Snapshot {
	return s.cur.Load()
}

// Config returns a copy of the current config.
func (s *ConfigStore) Config() Config {
	snap := s.cur.Load()
	if snap == nil {
		return DefaultConfig()
	}
	return snap.Config.Clone()
}

// Replace rebuilds the lookup table for cfg and swaps it in.
func (s *ConfigStore) Replace(cfg Config) *Snapshot {
	owned := cfg.Normalize()
	snap := &Snapshot{
		Config:  owned,
		Table:   NewLookupTable(owned),
		Ignored: NewDomainSet(owned.Options.IgnoredDomains),
	}
	s.cur.Store(snap)
	return snap
}

// Resolve runs one resolution cycle against the snapshot.
// A KindNotFound error means "no bang here"; other kinds describe why a bang
// could not be used.
func (snap *Snapshot) Resolve(req NavigationRequest) (Redirect, error) {
	if snap == nil {
		return Redirect{}, &OpError{Op: "resolve", Kind: KindNotFound, Err: ErrNotFound}
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		return Redirect{}, &OpError{Op: "resolve.url", Kind: KindNotFound, Err: err}
	}
	if snap.Ignored.Contains(u.Hostname()) {
		return Redirect{}, &OpError{
			Op:   "resolve.ignored",
			Kind: KindNotFound,
			Err:  fmt.Errorf("host %q is ignored: %w", u.Hostname(), ErrNotFound),
		}
	}

	query := ExtractQuery(req)
	tok := Tokenize(query, snap.Config.Options.Trigger)
	if !tok.Found {
		return Redirect{}, &OpError{Op: "resolve.tokenize", Kind: KindNotFound, Err: ErrNotFound}
	}

	bang, err := snap.Table.Resolve(tok.Keyword)
	if err != nil {
		return Redirect{}, err
	}

	dest := BuildDestinations(bang.URLs, tok.Remainder, bang.EncodeQuery, bang.DefaultURL)
	r, ok := NewRedirect(dest, req.Method)
	if !ok {
		return Redirect{}, &OpError{
			Op:   "resolve.build",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("bang %q produced no destination: %w", tok.Keyword, ErrInvalidConfig),
		}
	}
	return r, nil
}
