package migrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aalvaropc/bangs/internal/domain"
)

// Result is a config at domain.CurrentVersion plus the variant it came from.
type Result struct {
	Config domain.Config
	From   Variant
	// Skipped lists legacy entries that could not be converted.
	Skipped []domain.SkippedBang
}

// Migrated reports whether the stored blob needs to be rewritten.
func (r Result) Migrated() bool {
	return r.From != VariantCurrent
}

// Upgrade converts raw JSON in any recognized shape to the current schema.
// A current-version blob is returned exactly as decoded. Legacy entries that
// cannot be converted are dropped one by one and reported in Skipped.
// Unrecognized shapes yield domain.ErrNoLegacyData; a version field with no
// migration path yields KindUnsupportedSchema.
func Upgrade(raw []byte) (Result, error) {
	variant := Detect(raw)

	var (
		cfg domain.Config
		err error
	)
	switch variant {
	case VariantLegacyV1:
		cfg, err = fromLegacyV1(raw)
	case VariantLegacyV2:
		cfg, err = fromLegacyV2(raw)
	case VariantV5:
		cfg, err = fromV5(raw)
	case VariantCurrent:
		cfg, err = decodeCurrent(raw)
	case VariantUnknownVersion:
		return Result{From: variant}, &domain.OpError{
			Op:   "migrate.upgrade",
			Kind: domain.KindUnsupportedSchema,
			Err:  fmt.Errorf("no migration path for stored version: %w", domain.ErrUnsupportedSchema),
		}
	default:
		return Result{From: variant}, &domain.OpError{
			Op:   "migrate.upgrade",
			Kind: domain.KindNotFound,
			Err:  domain.ErrNoLegacyData,
		}
	}
	if err != nil {
		return Result{From: variant}, err
	}

	var skipped []domain.SkippedBang
	switch variant {
	case VariantCurrent:
		// Stored as written.
	case VariantLegacyV1, VariantLegacyV2:
		cfg, skipped = dropUnconvertible(cfg)
		cfg = cfg.Normalize()
	default:
		cfg = cfg.Normalize()
	}
	if err := cfg.Validate(); err != nil {
		return Result{From: variant}, err
	}
	return Result{Config: cfg, From: variant, Skipped: skipped}, nil
}

func dropUnconvertible(cfg domain.Config) (domain.Config, []domain.SkippedBang) {
	var skipped []domain.SkippedBang
	kept := make([]domain.BangEntry, 0, len(cfg.Bangs))
	for _, b := range cfg.Bangs {
		if err := b.Validate(); err != nil {
			skipped = append(skipped, domain.SkippedBang{Keyword: b.Keyword, Err: err})
			continue
		}
		kept = append(kept, b)
	}
	cfg.Bangs = kept
	return cfg, skipped
}

func baseConfig() domain.Config {
	return domain.Config{
		Version: domain.CurrentVersion,
		Options: domain.Options{
			Trigger:        domain.DefaultTrigger,
			IgnoredDomains: []string{},
		},
		Bangs: []domain.BangEntry{},
	}
}

// SplitLegacyURLs splits a legacy multi-URL string.
func SplitLegacyURLs(s string) []string {
	parts := strings.Split(s, LegacyURLSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fromLegacyV1(raw []byte) (domain.Config, error) {
	fields, err := objectFields(raw)
	if err != nil {
		return domain.Config{}, corrupt("migrate.legacy_v1", err)
	}

	cfg := baseConfig()
	for _, f := range fields {
		var u string
		if err := json.Unmarshal(f.value, &u); err != nil {
			return domain.Config{}, corrupt("migrate.legacy_v1", err)
		}
		cfg.Bangs = append(cfg.Bangs, domain.BangEntry{
			Keyword:     f.key,
			URLs:        SplitLegacyURLs(u),
			EncodeQuery: true,
		})
	}
	return cfg, nil
}

type legacyV2Entry struct {
	ID  json.RawMessage `json:"id"`
	URL string          `json:"url"`
	Pos json.RawMessage `json:"pos"`
}

func fromLegacyV2(raw []byte) (domain.Config, error) {
	fields, err := objectFields(raw)
	if err != nil {
		return domain.Config{}, corrupt("migrate.legacy_v2", err)
	}

	cfg := baseConfig()
	for _, f := range fields {
		var e legacyV2Entry
		if err := json.Unmarshal(f.value, &e); err != nil {
			return domain.Config{}, corrupt("migrate.legacy_v2", err)
		}
		cfg.Bangs = append(cfg.Bangs, domain.BangEntry{
			Keyword:     f.key,
			URLs:        SplitLegacyURLs(e.URL),
			EncodeQuery: true,
		})
	}
	return cfg, nil
}

type v5Config struct {
	Version int `json:"version"`
	Options struct {
		BangSymbol      string   `json:"bangSymbol"`
		IgnoredDomains  []string `json:"ignoredDomains"`
		CaseInsensitive bool     `json:"caseInsensitive"`
	} `json:"options"`
	Bangs []struct {
		Bang       string   `json:"bang"`
		AliasOf    string   `json:"aliasOf"`
		URL        []string `json:"url"`
		DefaultURL string   `json:"defaultUrl"`
		Raw        bool     `json:"raw"`
	} `json:"bangs"`
}

func fromV5(raw []byte) (domain.Config, error) {
	var old v5Config
	if err := json.Unmarshal(raw, &old); err != nil {
		return domain.Config{}, corrupt("migrate.v5", err)
	}

	cfg := baseConfig()
	if old.Options.BangSymbol != "" {
		cfg.Options.Trigger = old.Options.BangSymbol
	}
	cfg.Options.IgnoredDomains = append(cfg.Options.IgnoredDomains, old.Options.IgnoredDomains...)
	cfg.Options.IgnoreBangCaseSensitivity = old.Options.CaseInsensitive

	for _, b := range old.Bangs {
		urls := append([]string{}, b.URL...)
		cfg.Bangs = append(cfg.Bangs, domain.BangEntry{
			Keyword:     b.Bang,
			Alias:       b.AliasOf,
			DefaultURL:  b.DefaultURL,
			URLs:        urls,
			EncodeQuery: !b.Raw,
		})
	}
	return cfg, nil
}

// decodeCurrent checks keys and types strictly.
func decodeCurrent(raw []byte) (domain.Config, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var cfg domain.Config
	if err := dec.Decode(&cfg); err != nil {
		return domain.Config{}, &domain.OpError{
			Op:   "migrate.current",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err),
		}
	}
	return cfg, nil
}

func corrupt(op string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindCorruptData,
		Err:  fmt.Errorf("%w: %v", domain.ErrCorruptData, err),
	}
}
