package usecase

import (
	"log/slog"

	"github.com/aalvaropc/bangs/internal/domain"
)

// ResolveRequest is the hot path: it turns a navigation into a redirect or
// into "no action". It never returns an error to the host.
type ResolveRequest struct {
	store *domain.ConfigStore
	log   *slog.Logger
}

func NewResolveRequest(store *domain.ConfigStore, opts ...Option) *ResolveRequest {
	o := buildOptions(opts)
	return &ResolveRequest{store: store, log: o.log}
}

func (uc *ResolveRequest) Execute(req domain.NavigationRequest) (r domain.Redirect, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			uc.log.Error("resolve.panic", "url", req.URL, "panic", p)
			r, ok = domain.Redirect{}, false
		}
	}()

	r, err := uc.store.Snapshot().Resolve(req)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindNotFound:
			uc.log.Debug("resolve.no_match", "url", req.URL, "err", err)
		case domain.KindCyclicAlias:
			uc.log.Warn("resolve.cyclic_alias", "url", req.URL, "err", err)
		default:
			uc.log.Warn("resolve.failed", "url", req.URL, "kind", domain.KindOf(err), "err", err)
		}
		return domain.Redirect{}, false
	}

	uc.log.Debug("resolve.redirect",
		"primary", r.PrimaryURL,
		"secondary", len(r.SecondaryURLs),
		"cancel_original", r.CancelOriginal,
	)
	return r, true
}
