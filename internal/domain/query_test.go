package domain

import "testing"

func TestExtractQuery(t *testing.T) {
	cases := []struct {
		name string
		req  NavigationRequest
		want string
	}{
		{
			name: "q param",
			req:  NavigationRequest{URL: "https://www.google.com/search?q=%21g+rust+lang", Method: MethodGet},
			want: "!g rust lang",
		},
		{
			name: "first listed param wins",
			req:  NavigationRequest{URL: "https://example.com/?query=second&q=first", Method: MethodGet},
			want: "first",
		},
		{
			name: "eingabe param",
			req:  NavigationRequest{URL: "https://example.de/meta?eingabe=%20hallo%20", Method: MethodGet},
			want: "hallo",
		},
		{
			name: "no known param",
			req:  NavigationRequest{URL: "https://example.com/?foo=bar", Method: MethodGet},
			want: "",
		},
		{
			name: "post form",
			req: NavigationRequest{
				URL:      "https://www.startpage.com/sp/search",
				Method:   MethodPost,
				FormData: FormData{"query": {" !w go ", "ignored"}},
			},
			want: "!w go",
		},
		{
			name: "post form missing field",
			req: NavigationRequest{
				URL:      "https://www.startpage.com/sp/search?q=fromurl",
				Method:   MethodPost,
				FormData: FormData{"other": {"x"}},
			},
			want: "",
		},
		{
			name: "post to unknown host falls back to url params",
			req: NavigationRequest{
				URL:      "https://search.example.com/?q=hello",
				Method:   MethodPost,
				FormData: FormData{"query": {"ignored"}},
			},
			want: "hello",
		},
		{
			name: "unparseable url",
			req:  NavigationRequest{URL: "://bad", Method: MethodGet},
			want: "",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractQuery(c.req); got != c.want {
				t.Fatalf("ExtractQuery() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestMatchesDomain(t *testing.T) {
	cases := []struct {
		host, domain string
		want         bool
	}{
		{"example.com", "example.com", true},
		{"www.example.com", "example.com", true},
		{"WWW.Example.COM.", "example.com", true},
		{"badexample.com", "example.com", false},
		{"example.com", "", false},
	}
	for _, c := range cases {
		if got := MatchesDomain(c.host, c.domain); got != c.want {
			t.Errorf("MatchesDomain(%q, %q) = %v, want %v", c.host, c.domain, got, c.want)
		}
	}
}

func TestDomainSetContains(t *testing.T) {
	set := NewDomainSet([]string{"intranet.local", " Example.ORG ", ""})

	cases := []struct {
		host string
		want bool
	}{
		{"intranet.local", true},
		{"wiki.intranet.local", true},
		{"a.b.intranet.local.", true},
		{"WWW.example.org", true},
		{"example.com", false},
		{"notintranet.local", false},
		{"local", false},
		{"", false},
	}
	for _, c := range cases {
		if got := set.Contains(c.host); got != c.want {
			t.Errorf("Contains(%q) = %v, want %v", c.host, got, c.want)
		}
	}

	if NewDomainSet(nil).Contains("example.org") {
		t.Fatalf("empty set matched a host")
	}
}
