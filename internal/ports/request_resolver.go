package ports

import (
	"context"

	"github.com/aalvaropc/bangs/internal/domain"
)

// RequestResolver is the hot-path entry used by hosts. ok=false means
// "no action".
type RequestResolver interface {
	Execute(req domain.NavigationRequest) (r domain.Redirect, ok bool)
}

// URLProber requests a destination and reports how it answered. Failures are
// recorded in the result, not returned.
type URLProber interface {
	Probe(ctx context.Context, url string) domain.ProbeResult
}
