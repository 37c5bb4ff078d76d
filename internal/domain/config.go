package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// CurrentVersion is the schema version every loaded Config must carry.
const CurrentVersion = 6

// DefaultTrigger marks a token as a bang.
const DefaultTrigger = "!"

// BangEntry maps a keyword to one or more URL templates.
// When Alias is set, URLs are ignored and resolution follows the alias.
type BangEntry struct {
	Keyword     string   `json:"keyword"`
	Alias       string   `json:"alias,omitempty"`
	DefaultURL  string   `json:"defaultUrl,omitempty"`
	URLs        []string `json:"urls"`
	EncodeQuery bool     `json:"encodeQuery"`
}

// IsAlias reports whether the entry reuses another entry's URLs.
func (b BangEntry) IsAlias() bool {
	return b.Alias != ""
}

// Options holds engine-wide settings.
type Options struct {
	Trigger                   string   `json:"trigger"`
	IgnoredDomains            []string `json:"ignoredDomains"`
	IgnoreBangCaseSensitivity bool     `json:"ignoreBangCaseSensitivity"`
}

// Config is the versioned configuration persisted by the storage layer.
type Config struct {
	Version int         `json:"version"`
	Options Options     `json:"options"`
	Bangs   []BangEntry `json:"bangs"`
}

// DefaultConfig is used on fresh installs and as a fallback when stored data is unusable.
func DefaultConfig() Config {
	return Config{
		Version: CurrentVersion,
		Options: Options{
			Trigger:        DefaultTrigger,
			IgnoredDomains: []string{},
		},
		Bangs: []BangEntry{
			{Keyword: "g", DefaultURL: "https://www.google.com", URLs: []string{"https://www.google.com/search?q=%s"}, EncodeQuery: true},
			{Keyword: "ddg", DefaultURL: "https://duckduckgo.com", URLs: []string{"https://duckduckgo.com/?q=%s"}, EncodeQuery: true},
			{Keyword: "w", DefaultURL: "https://en.wikipedia.org", URLs: []string{"https://en.wikipedia.org/wiki/Special:Search?search=%s"}, EncodeQuery: true},
			{Keyword: "yt", DefaultURL: "https://www.youtube.com", URLs: []string{"https://www.youtube.com/results?search_query=%s"}, EncodeQuery: true},
			{Keyword: "gh", DefaultURL: "https://github.com", URLs: []string{"https://github.com/search?q=%s"}, EncodeQuery: true},
			{Keyword: "so", DefaultURL: "https://stackoverflow.com", URLs: []string{"https://stackoverflow.com/search?q=%s"}, EncodeQuery: true},
			{Keyword: "a", DefaultURL: "https://www.amazon.com", URLs: []string{"https://www.amazon.com/s?k=%s"}, EncodeQuery: true},
			{Keyword: "az", Alias: "a", URLs: []string{}, EncodeQuery: true},
		},
	}
}

// Clone returns a deep copy so callers can build a replacement without sharing slices.
func (c Config) Clone() Config {
	out := c
	out.Options.IgnoredDomains = append([]string{}, c.Options.IgnoredDomains...)
	out.Bangs = make([]BangEntry, len(c.Bangs))
	for i, b := range c.Bangs {
		nb := b
		nb.URLs = append([]string{}, b.URLs...)
		out.Bangs[i] = nb
	}
	return out
}

// Normalize returns a copy with nil slices replaced, ignored domains
// lower-cased, de-duplicated and sorted.
func (c Config) Normalize() Config {
	out := c.Clone()

	seen := make(map[string]struct{}, len(out.Options.IgnoredDomains))
	domains := make([]string, 0, len(out.Options.IgnoredDomains))
	for _, d := range out.Options.IgnoredDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		domains = append(domains, d)
	}
	sort.Strings(domains)
	out.Options.IgnoredDomains = domains

	return out
}

// Validate checks the structural invariants of a current-version config.
func (c Config) Validate() error {
	if c.Version != CurrentVersion {
		return &OpError{
			Op:   "config.validate",
			Kind: KindUnsupportedSchema,
			Err:  fmt.Errorf("version %d (expected %d): %w", c.Version, CurrentVersion, ErrUnsupportedSchema),
		}
	}
	if c.Options.Trigger == "" || strings.IndexFunc(c.Options.Trigger, unicode.IsSpace) >= 0 {
		return invalidField("options.trigger", "trigger must be non-empty and contain no whitespace")
	}
	for i, b := range c.Bangs {
		if field, msg := b.problem(); field != "" {
			return invalidField(fmt.Sprintf("bangs[%d].%s", i, field), msg)
		}
	}
	return nil
}

// Validate checks a single entry on its own.
func (b BangEntry) Validate() error {
	if field, msg := b.problem(); field != "" {
		return invalidField(field, msg)
	}
	return nil
}

func (b BangEntry) problem() (field, msg string) {
	if b.Keyword == "" || strings.IndexFunc(b.Keyword, unicode.IsSpace) >= 0 {
		return "keyword", "keyword must be non-empty and contain no whitespace"
	}
	if !b.IsAlias() && len(b.URLs) == 0 && b.DefaultURL == "" {
		return "urls", "entry needs urls, a defaultUrl or an alias"
	}
	return "", ""
}

// SkippedBang is a stored entry that could not be carried into the current
// schema.
type SkippedBang struct {
	Keyword string
	Err     error
}

func invalidField(field, msg string) error {
	return &OpError{
		Op:   "config.validate",
		Kind: KindInvalidConfig,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, ErrInvalidConfig),
	}
}

// FindBang returns the index of the first entry with the given keyword, or -1.
func (c Config) FindBang(keyword string) int {
	for i, b := range c.Bangs {
		if b.Keyword == keyword {
			return i
		}
	}
	return -1
}

// WithBang returns a copy where the first entry with the same keyword is
// replaced, or the entry is appended.
func (c Config) WithBang(entry BangEntry) Config {
	out := c.Clone()
	if entry.URLs == nil {
		entry.URLs = []string{}
	}
	if i := out.FindBang(entry.Keyword); i >= 0 {
		out.Bangs[i] = entry
		return out
	}
	out.Bangs = append(out.Bangs, entry)
	return out
}

// WithoutBang returns a copy with every entry for keyword removed.
func (c Config) WithoutBang(keyword string) (Config, error) {
	out := c.Clone()
	kept := out.Bangs[:0]
	for _, b := range out.Bangs {
		if b.Keyword != keyword {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(c.Bangs) {
		return c, &OpError{
			Op:   "config.remove_bang",
			Kind: KindNotFound,
			Err:  fmt.Errorf("bang %q: %w", keyword, ErrNotFound),
		}
	}
	out.Bangs = kept
	return out, nil
}

// errEmptyKeyword is returned by lookups with an empty keyword.
var errEmptyKeyword = errors.New("empty keyword")
