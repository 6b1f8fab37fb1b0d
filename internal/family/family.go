// Package family implements the per-role aggregation pass: page through
// every source adapter for each search term, filter, deduplicate, and
// normalize.
package family

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"jobscout/internal/filter"
	"jobscout/internal/jobs"
	"jobscout/internal/metrics"
	"jobscout/internal/source"
)

// Family is one target role category: its output label, the search-term
// synonyms queried against every adapter, and an optional skill gate.
type Family struct {
	Name      string
	Terms     []string
	SkillGate *filter.SkillMatcher
}

// Runner executes family scrapes against a fixed adapter list.
type Runner struct {
	adapters []source.Adapter
	window   filter.Window
	maxPages int
	clock    jobs.Clock
	logger   *zap.Logger
}

// NewRunner builds a Runner. maxPages caps pagination per adapter and
// term.
func NewRunner(adapters []source.Adapter, window filter.Window, maxPages int, clock jobs.Clock, logger *zap.Logger) *Runner {
	if maxPages <= 0 {
		maxPages = 1
	}
	return &Runner{
		adapters: adapters,
		window:   window,
		maxPages: maxPages,
		clock:    clock,
		logger:   logger,
	}
}

// Scrape collects the postings for one family. Within the run a seen-id
// set keeps each source-qualified id to a single entry. A fetch error is
// demoted to an empty page: it ends pagination for that adapter and term
// exactly like a legitimately exhausted result set. That conflation is
// inherited behavior; callers cannot distinguish the two cases.
func (r *Runner) Scrape(ctx context.Context, fam Family) ([]jobs.Posting, error) {
	seen := mapset.NewSet[string]()
	var kept []jobs.Posting

	r.logger.Info("scraping family",
		zap.String("family", fam.Name),
		zap.Strings("terms", fam.Terms))

	for _, term := range fam.Terms {
		for _, adapter := range r.adapters {
			postings, err := r.scrapeAdapter(ctx, fam, adapter, term, seen)
			if err != nil {
				return kept, err
			}
			kept = append(kept, postings...)
		}
	}

	r.logger.Info("family scrape complete",
		zap.String("family", fam.Name),
		zap.Int("kept", len(kept)))
	return kept, nil
}

func (r *Runner) scrapeAdapter(
	ctx context.Context,
	fam Family,
	adapter source.Adapter,
	term string,
	seen mapset.Set[string],
) ([]jobs.Posting, error) {
	var kept []jobs.Posting

	var delay time.Duration
	if throttled, ok := adapter.(source.Throttled); ok {
		delay = throttled.PageDelay()
	}

	for page := 1; page <= r.maxPages; page++ {
		if page > 1 && delay > 0 {
			if err := pause(ctx, delay); err != nil {
				return kept, err
			}
		}
		if err := ctx.Err(); err != nil {
			return kept, err
		}

		postings, err := adapter.FetchPage(ctx, term, page)
		if err != nil {
			metrics.ObserveSourceError(adapter.Tag())
			r.logger.Warn("page fetch failed, treating source as exhausted",
				zap.String("source", adapter.Tag()),
				zap.String("term", term),
				zap.Int("page", page),
				zap.Error(err))
			break
		}
		metrics.ObservePageFetched(adapter.Tag())
		if len(postings) == 0 {
			break
		}

		for _, p := range postings {
			qualified := jobs.QualifyID(adapter.Tag(), p.ID)
			if !seen.Add(qualified) {
				continue
			}
			if !r.window.Admit(filter.ExtractExperience(p.Description)) {
				continue
			}
			if fam.SkillGate != nil && !fam.SkillGate.Match(p.Description) {
				continue
			}
			p.ID = qualified
			kept = append(kept, p.Normalize(fam.Name, r.clock.Now()))
			metrics.ObservePostingKept(adapter.Tag(), fam.Name)
		}
	}
	return kept, nil
}

func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
