package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/ports"
)

// DefaultCheckQuery is substituted into templates when probing.
const DefaultCheckQuery = "test"

const defaultCheckWorkers = 4

// CheckBangs expands bangs with a sample query and probes every destination.
type CheckBangs struct {
	store   *domain.ConfigStore
	prober  ports.URLProber
	workers int
	log     *slog.Logger
}

func NewCheckBangs(store *domain.ConfigStore, prober ports.URLProber, workers int, opts ...Option) *CheckBangs {
	o := buildOptions(opts)
	if workers <= 0 {
		workers = defaultCheckWorkers
	}
	return &CheckBangs{store: store, prober: prober, workers: workers, log: o.log}
}

type probeJob struct {
	idx int
	res domain.ProbeResult
}

// Execute probes the given keywords, or every configured bang when none are
// given. Results keep config order. Keywords that do not resolve are reported
// as failed results; a cancelled ctx stops pending probes and is returned.
func (uc *CheckBangs) Execute(ctx context.Context, keywords []string, query string) ([]domain.ProbeResult, error) {
	snap := uc.store.Snapshot()
	if query == "" {
		query = DefaultCheckQuery
	}
	if len(keywords) == 0 {
		for _, b := range snap.Config.Bangs {
			keywords = append(keywords, b.Keyword)
		}
	}

	var (
		results []domain.ProbeResult
		jobs    []probeJob
	)
	for _, kw := range keywords {
		bang, err := snap.Table.Resolve(kw)
		if err != nil {
			results = append(results, domain.ProbeResult{Keyword: kw, Error: err.Error()})
			continue
		}
		for _, u := range domain.BuildDestinations(bang.URLs, query, bang.EncodeQuery, bang.DefaultURL) {
			jobs = append(jobs, probeJob{idx: len(results), res: domain.ProbeResult{Keyword: kw, URL: u}})
			results = append(results, domain.ProbeResult{Keyword: kw, URL: u})
		}
	}

	queue := make(chan probeJob)
	var wg sync.WaitGroup
	for i := 0; i < uc.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				res := uc.prober.Probe(ctx, j.res.URL)
				res.Keyword = j.res.Keyword
				// Each job owns its slot.
				results[j.idx] = res
			}
		}()
	}

	var cerr error
send:
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			cerr = err
			break
		}
		select {
		case <-ctx.Done():
			cerr = ctx.Err()
			break send
		case queue <- j:
		}
	}
	close(queue)
	wg.Wait()

	if cerr != nil {
		return results, cerr
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	uc.log.Info("check.done", "destinations", len(results), "failed", failed)
	return results, nil
}

// Failed counts results that did not succeed.
func Failed(results []domain.ProbeResult) error {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return fmt.Errorf("check failed (%d of %d destination(s))", n, len(results))
}
