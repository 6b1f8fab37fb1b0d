// Package pipeline runs the full scan: every job family in a fixed
// order, merged into one deduplicated result set with per-family and
// per-source counts.
package pipeline

import (
	"context"
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"jobscout/internal/family"
	"jobscout/internal/jobs"
	"jobscout/internal/metrics"
)

// IDGenerator mints run identifiers.
type IDGenerator interface {
	NewID() (string, error)
}

// Summary carries the observability counts for one run.
type Summary struct {
	RunID     string         `json:"run_id"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
	Total     int            `json:"total"`
	PerFamily map[string]int `json:"per_family"`
	PerSource map[string]int `json:"per_source"`
}

// Result is the merged output of one run.
type Result struct {
	Postings []jobs.Posting
	Summary  Summary
}

// Pipeline executes family aggregators sequentially. There is no retry,
// no checkpointing, and no state carried across runs; a failed run
// restarts from empty on the next trigger.
type Pipeline struct {
	runner   *family.Runner
	families []family.Family
	clock    jobs.Clock
	ids      IDGenerator
	logger   *zap.Logger
}

// New builds a Pipeline over the given families.
func New(runner *family.Runner, families []family.Family, clock jobs.Clock, ids IDGenerator, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		runner:   runner,
		families: families,
		clock:    clock,
		ids:      ids,
		logger:   logger,
	}
}

// Run scrapes every family and merges the results. Family aggregators
// already deduplicate within themselves; the merge pass dedupes again on
// the qualified id so cross-family collisions collapse to one entry.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	runID, err := p.ids.NewID()
	if err != nil {
		return Result{}, fmt.Errorf("generate run id: %w", err)
	}

	start := p.clock.Now()
	summary := Summary{
		RunID:     runID,
		StartedAt: start,
		PerFamily: make(map[string]int),
		PerSource: make(map[string]int),
	}
	p.logger.Info("starting scan run", zap.String("run_id", summary.RunID))

	seen := mapset.NewSet[string]()
	var merged []jobs.Posting

	for _, fam := range p.families {
		postings, err := p.runner.Scrape(ctx, fam)
		if err != nil {
			metrics.ObserveRun("failed", p.clock.Now().Sub(start))
			return Result{}, err
		}
		for _, posting := range postings {
			if !seen.Add(posting.ID) {
				continue
			}
			merged = append(merged, posting)
			summary.PerFamily[posting.Family]++
			summary.PerSource[posting.Source]++
		}
	}

	summary.Total = len(merged)
	summary.Duration = p.clock.Now().Sub(start)
	metrics.ObserveRun("succeeded", summary.Duration)

	p.logger.Info("scan run complete",
		zap.String("run_id", summary.RunID),
		zap.Int("total", summary.Total),
		zap.Duration("duration", summary.Duration))
	return Result{Postings: merged, Summary: summary}, nil
}
