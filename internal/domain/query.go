package domain

import (
	"net/url"
	"strings"
)

// queryParams is scanned in order; the first present parameter wins.
var queryParams = []string{"q", "query", "eingabe", "text", "p", "wd", "search_query", "search"}

// PostSearchForm describes a search engine that submits its query via POST.
type PostSearchForm struct {
	Host  string // Matches the host itself and any subdomain.
	Field string
}

// postSearchForms lists known POST-based search forms.
var postSearchForms = []PostSearchForm{
	{Host: "startpage.com", Field: "query"},
	{Host: "metager.de", Field: "eingabe"},
	{Host: "metager.org", Field: "eingabe"},
	{Host: "html.duckduckgo.com", Field: "q"},
	{Host: "searx.be", Field: "q"},
}

// ExtractQuery returns the raw search text of a request, or "" when none is found.
func ExtractQuery(req NavigationRequest) string {
	u, err := url.Parse(req.URL)
	if err != nil {
		return ""
	}

	if req.Method == MethodPost {
		if field, ok := postFieldFor(u.Hostname()); ok {
			if vals := req.FormData[field]; len(vals) > 0 {
				return strings.TrimSpace(vals[0])
			}
			return ""
		}
	}

	values := u.Query()
	for _, name := range queryParams {
		if vals, ok := values[name]; ok && len(vals) > 0 {
			return strings.TrimSpace(vals[0])
		}
	}
	return ""
}

func postFieldFor(host string) (string, bool) {
	for _, f := range postSearchForms {
		if MatchesDomain(host, f.Host) {
			return f.Field, true
		}
	}
	return "", false
}

// MatchesDomain reports whether host is domain or one of its subdomains.
func MatchesDomain(host, domain string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	domain = strings.ToLower(strings.TrimSpace(domain))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// DomainSet matches hosts against a set of domains and their subdomains.
// A lookup walks the host's parent suffixes, so its cost does not grow with
// the number of domains.
type DomainSet map[string]struct{}

func NewDomainSet(domains []string) DomainSet {
	set := make(DomainSet, len(domains))
	for _, d := range domains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			set[d] = struct{}{}
		}
	}
	return set
}

// Contains reports whether host is one of the domains or a subdomain of one.
func (s DomainSet) Contains(host string) bool {
	if len(s) == 0 {
		return false
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for host != "" {
		if _, ok := s[host]; ok {
			return true
		}
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
	}
	return false
}
