// Package redirectserver hosts the resolution engine over HTTP.
//
// GET or POST /search acts as a search endpoint: a query carrying a bang is
// redirected to the bang's primary destination, anything else goes to the
// fallback search template. POST /resolve accepts a JSON NavigationRequest
// from a host that intercepts requests itself.
package redirectserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

const (
	maxBodyBytes      = 64 << 10
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type Handler struct {
	resolver ports.RequestResolver
	fallback string
	log      *slog.Logger
	mux      *http.ServeMux
}

type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// New builds the handler. fallback is a URL template with a %s placeholder
// used when the query has no usable bang; it may be empty.
func New(resolver ports.RequestResolver, fallback string, opts ...Option) *Handler {
	h := &Handler{
		resolver: resolver,
		fallback: fallback,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		mux:      http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.mux.HandleFunc("GET /search", h.search)
	h.mux.HandleFunc("POST /search", h.search)
	h.mux.HandleFunc("POST /resolve", h.resolve)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type searchResponse struct {
	Matched  bool             `json:"matched"`
	Redirect *domain.Redirect `json:"redirect,omitempty"`
	Fallback string           `json:"fallback,omitempty"`
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	method := domain.MethodGet
	q := r.URL.Query().Get("q")
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		q = r.PostForm.Get("q")
		method = domain.MethodPost
	}

	nav := domain.NavigationRequest{URL: searchURL(r, q), Method: method}
	wantJSON := r.URL.Query().Get("format") == "json"

	red, ok := h.resolver.Execute(nav)
	if ok {
		h.log.Debug("serve.redirect", "primary", red.PrimaryURL, "secondary", len(red.SecondaryURLs))
		if wantJSON {
			writeJSON(w, http.StatusOK, searchResponse{Matched: true, Redirect: &red})
			return
		}
		for _, u := range red.SecondaryURLs {
			w.Header().Add("Link", "<"+u+`>; rel="alternate"`)
		}
		http.Redirect(w, r, red.PrimaryURL, redirectStatus(red.CancelOriginal))
		return
	}

	dest := h.fallbackURL(q)
	if wantJSON {
		writeJSON(w, http.StatusOK, searchResponse{Matched: false, Fallback: dest})
		return
	}
	if dest == "" {
		http.Error(w, "no bang matched and no fallback is configured", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, dest, redirectStatus(method == domain.MethodPost))
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var nav domain.NavigationRequest
	if err := dec.Decode(&nav); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if nav.Method == "" {
		nav.Method = domain.MethodGet
	}
	if nav.Method != domain.MethodGet && nav.Method != domain.MethodPost {
		http.Error(w, "method must be GET or POST", http.StatusBadRequest)
		return
	}

	red, ok := h.resolver.Execute(nav)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, red)
}

func (h *Handler) fallbackURL(q string) string {
	if h.fallback == "" {
		return ""
	}
	dest := domain.BuildDestinations([]string{h.fallback}, q, true, "")
	if len(dest) == 0 {
		return ""
	}
	return dest[0]
}

// searchURL rebuilds the request as the engine sees it, with the query in q.
func searchURL(r *http.Request, q string) string {
	u := url.URL{
		Scheme:   "http",
		Host:     r.Host,
		Path:     "/search",
		RawQuery: url.Values{"q": {q}}.Encode(),
	}
	if r.TLS != nil {
		u.Scheme = "https"
	}
	return u.String()
}

func redirectStatus(cancelOriginal bool) int {
	if cancelOriginal {
		return http.StatusSeeOther
	}
	return http.StatusFound
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &domain.OpError{Op: "serve.listen", Kind: domain.KindExecution, Path: addr, Err: err}
	}
	return serve(ctx, ln, h, log)
}

func serve(ctx context.Context, ln net.Listener, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: readHeaderTimeout}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.Info("serve.started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return &domain.OpError{Op: "serve", Kind: domain.KindExecution, Err: err}
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return &domain.OpError{Op: "serve.shutdown", Kind: domain.KindExecution, Err: err}
	}
	log.Info("serve.stopped")
	return nil
}
