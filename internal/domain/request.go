package domain

// HTTPMethod represents the method of an intercepted request.
type HTTPMethod string

const (
	MethodGet  HTTPMethod = "GET"
	MethodPost HTTPMethod = "POST"
)

// FormData is a form-field-name -> values map from a POST submission.
type FormData map[string][]string

// NavigationRequest describes a request handed over by the host for resolution.
type NavigationRequest struct {
	URL      string     `json:"url"`
	Method   HTTPMethod `json:"method"`
	FormData FormData   `json:"formData,omitempty"` // Only set for POST submissions.
}

// Redirect is the outcome of a successful resolution.
// The host navigates the originating context to PrimaryURL and opens every
// SecondaryURLs entry in a new background context.
type Redirect struct {
	PrimaryURL    string   `json:"primaryUrl"`
	SecondaryURLs []string `json:"secondaryUrls"`

	// CancelOriginal is set for POST-originated requests: the in-flight request
	// must be cancelled and the context explicitly redirected.
	CancelOriginal bool `json:"cancelOriginal"`
}

// URLs returns primary followed by secondaries.
func (r Redirect) URLs() []string {
	out := make([]string, 0, 1+len(r.SecondaryURLs))
	out = append(out, r.PrimaryURL)
	return append(out, r.SecondaryURLs...)
}
