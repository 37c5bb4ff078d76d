package domain

import (
	"reflect"
	"testing"
)

func lookupConfig(bangs ...BangEntry) Config {
	cfg := DefaultConfig()
	cfg.Bangs = bangs
	return cfg
}

func TestResolve_Direct(t *testing.T) {
	table := NewLookupTable(lookupConfig(
		BangEntry{Keyword: "g", URLs: []string{"https://example.com/search?q=%s"}, EncodeQuery: true},
	))

	got, err := table.Resolve("g")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.URLs, []string{"https://example.com/search?q=%s"}) {
		t.Fatalf("unexpected urls %v", got.URLs)
	}
	if !got.EncodeQuery {
		t.Fatalf("expected encodeQuery from entry")
	}
}

func TestResolve_Alias(t *testing.T) {
	urls := []string{"https://a.example/s?k=%s", "https://b.example/s?k=%s"}
	table := NewLookupTable(lookupConfig(
		BangEntry{Keyword: "az", Alias: "a"},
		BangEntry{Keyword: "a", URLs: urls, DefaultURL: "https://a.example", EncodeQuery: true},
	))

	got, err := table.Resolve("az")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.URLs, urls) {
		t.Fatalf("expected a's urls, got %v", got.URLs)
	}
	if got.Target != "a" {
		t.Fatalf("expected target a, got %q", got.Target)
	}
	if got.DefaultURL != "https://a.example" {
		t.Fatalf("expected inherited defaultUrl, got %q", got.DefaultURL)
	}
}

func TestResolve_AliasKeepsOwnDefaultURL(t *testing.T) {
	table := NewLookupTable(lookupConfig(
		BangEntry{Keyword: "az", Alias: "a", DefaultURL: "https://az.example"},
		BangEntry{Keyword: "a", URLs: []string{"https://a.example/%s"}, DefaultURL: "https://a.example"},
	))
	got, err := table.Resolve("az")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DefaultURL != "https://az.example" {
		t.Fatalf("expected alias defaultUrl, got %q", got.DefaultURL)
	}
}

func TestResolve_CycleFailsClosed(t *testing.T) {
	cases := []struct {
		name  string
		bangs []BangEntry
		kw    string
	}{
		{"self", []BangEntry{{Keyword: "x", Alias: "x"}}, "x"},
		{"mutual", []BangEntry{{Keyword: "x", Alias: "y"}, {Keyword: "y", Alias: "x"}}, "x"},
		{"three", []BangEntry{{Keyword: "x", Alias: "y"}, {Keyword: "y", Alias: "z"}, {Keyword: "z", Alias: "y"}}, "x"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewLookupTable(lookupConfig(c.bangs...)).Resolve(c.kw)
			if !IsKind(err, KindCyclicAlias) {
				t.Fatalf("expected cyclic alias error, got %v", err)
			}
		})
	}
}

func TestResolve_MissingAliasTarget(t *testing.T) {
	_, err := NewLookupTable(lookupConfig(BangEntry{Keyword: "x", Alias: "nope"})).Resolve("x")
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolve_DuplicateFirstWins(t *testing.T) {
	table := NewLookupTable(lookupConfig(
		BangEntry{Keyword: "g", URLs: []string{"https://first.example/%s"}},
		BangEntry{Keyword: "g", URLs: []string{"https://second.example/%s"}},
	))
	got, err := table.Resolve("g")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.URLs[0] != "https://first.example/%s" {
		t.Fatalf("expected first entry to win, got %v", got.URLs)
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 distinct keyword, got %d", table.Len())
	}
}

func TestResolve_CaseSensitivity(t *testing.T) {
	cfg := lookupConfig(BangEntry{Keyword: "GH", URLs: []string{"https://github.com/search?q=%s"}})

	if _, err := NewLookupTable(cfg).Resolve("gh"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected case-sensitive miss by default, got %v", err)
	}

	cfg.Options.IgnoreBangCaseSensitivity = true
	if _, err := NewLookupTable(cfg).Resolve("gh"); err != nil {
		t.Fatalf("expected case-insensitive hit, got %v", err)
	}
}

func TestResolve_NilTableAndEmptyKeyword(t *testing.T) {
	var table *LookupTable
	if _, err := table.Resolve("g"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected not found on nil table, got %v", err)
	}
	if _, err := NewLookupTable(DefaultConfig()).Resolve(""); !IsKind(err, KindNotFound) {
		t.Fatalf("expected not found on empty keyword, got %v", err)
	}
}
