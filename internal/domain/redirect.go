package domain

import (
	"net/url"
	"strings"
)

// Placeholder is replaced with the query text in URL templates.
const Placeholder = "%s"

// BuildDestinations expands templates with the remainder query.
// An empty remainder yields a single destination: defaultURL, or the origin of
// the first template when no defaultURL is set.
func BuildDestinations(templates []string, remainder string, encodeQuery bool, defaultURL string) []string {
	if strings.TrimSpace(remainder) == "" {
		if defaultURL != "" {
			return []string{defaultURL}
		}
		if len(templates) == 0 {
			return nil
		}
		if origin := originOf(templates[0]); origin != "" {
			return []string{origin}
		}
		return nil
	}

	value := remainder
	if encodeQuery {
		value = EncodeQueryComponent(remainder)
	}

	out := make([]string, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, strings.ReplaceAll(tpl, Placeholder, value))
	}
	return out
}

// EncodeQueryComponent percent-encodes s for embedding anywhere in a URL.
// Spaces become %20 rather than '+'.
func EncodeQueryComponent(s string) string {
	// QueryEscape escapes a literal '+' as %2B, so the remaining '+' are spaces.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func originOf(raw string) string {
	u, err := url.Parse(strings.ReplaceAll(raw, Placeholder, ""))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// NewRedirect designates the first destination as primary.
func NewRedirect(destinations []string, method HTTPMethod) (Redirect, bool) {
	if len(destinations) == 0 {
		return Redirect{}, false
	}
	return Redirect{
		PrimaryURL:     destinations[0],
		SecondaryURLs:  append([]string{}, destinations[1:]...),
		CancelOriginal: method == MethodPost,
	}, true
}
