package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		kind   ErrorKind
	}{
		{"old version", func(c *Config) { c.Version = 5 }, KindUnsupportedSchema},
		{"empty trigger", func(c *Config) { c.Options.Trigger = "" }, KindInvalidConfig},
		{"spaced trigger", func(c *Config) { c.Options.Trigger = "! " }, KindInvalidConfig},
		{"empty keyword", func(c *Config) { c.Bangs[0].Keyword = "" }, KindInvalidConfig},
		{"no target", func(c *Config) {
			c.Bangs[0].URLs = nil
			c.Bangs[0].DefaultURL = ""
		}, KindInvalidConfig},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if !IsKind(err, c.kind) {
				t.Fatalf("expected %s, got %v", c.kind, err)
			}
		})
	}
}

func TestValidateUnsupportedSchemaSentinel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = 99
	if err := cfg.Validate(); !errors.Is(err, ErrUnsupportedSchema) {
		t.Fatalf("expected ErrUnsupportedSchema, got %v", err)
	}
}

func TestNormalizeIgnoredDomains(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Options.IgnoredDomains = []string{" B.example ", "a.example", "b.example", ""}
	got := cfg.Normalize().Options.IgnoredDomains
	if !reflect.DeepEqual(got, []string{"a.example", "b.example"}) {
		t.Fatalf("unexpected domains %v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := DefaultConfig()
	cp := cfg.Clone()
	cp.Bangs[0].URLs[0] = "changed"
	cp.Bangs = append(cp.Bangs, BangEntry{Keyword: "new"})
	if cfg.Bangs[0].URLs[0] == "changed" || len(cfg.Bangs) == len(cp.Bangs) {
		t.Fatalf("expected clone to be independent")
	}
}

func TestWithBangReplacesOrAppends(t *testing.T) {
	cfg := DefaultConfig()
	n := len(cfg.Bangs)

	replaced := cfg.WithBang(BangEntry{Keyword: "g", URLs: []string{"https://other.example/%s"}})
	if len(replaced.Bangs) != n || replaced.Bangs[0].URLs[0] != "https://other.example/%s" {
		t.Fatalf("expected in-place replacement, got %+v", replaced.Bangs[0])
	}

	appended := cfg.WithBang(BangEntry{Keyword: "new", Alias: "g"})
	if len(appended.Bangs) != n+1 || appended.Bangs[n].URLs == nil {
		t.Fatalf("expected appended entry with non-nil urls")
	}
	if len(cfg.Bangs) != n {
		t.Fatalf("expected receiver untouched")
	}
}

func TestWithoutBang(t *testing.T) {
	cfg := DefaultConfig()
	out, err := cfg.WithoutBang("g")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FindBang("g") >= 0 {
		t.Fatalf("expected g removed")
	}
	if cfg.FindBang("g") < 0 {
		t.Fatalf("expected receiver untouched")
	}

	if _, err := cfg.WithoutBang("missing"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
