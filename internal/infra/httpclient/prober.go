package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

const userAgent = "bangs-check/1"

// Prober requests a destination and records status and latency. It sends
// HEAD first and retries with GET when the server rejects HEAD.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

var _ ports.URLProber = (*Prober)(nil)

type ProberOption func(*Prober)

// WithTimeout sets the per-probe timeout.
func WithTimeout(timeout time.Duration) ProberOption {
	return func(p *Prober) { p.timeout = timeout }
}

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) ProberOption {
	return func(p *Prober) { p.client = client }
}

func NewProber(opts ...ProberOption) *Prober {
	cfg := DefaultConfig()
	p := &Prober{
		client:  New(cfg),
		timeout: cfg.Timeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Prober) Probe(ctx context.Context, rawURL string) domain.ProbeResult {
	res := domain.ProbeResult{URL: rawURL}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	status, err := p.do(ctx, http.MethodHead, rawURL)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, err = p.do(ctx, http.MethodGet, rawURL)
	}
	res.LatencyMS = time.Since(start).Milliseconds()

	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Status = status
	return res
}

func (p *Prober) do(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	return resp.StatusCode, nil
}
