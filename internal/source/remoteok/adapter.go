// Package remoteok integrates the RemoteOK public API behind the
// source.Adapter contract. The API needs no credential, has no pagination
// and no server-side search, so the adapter fetches the whole feed and
// filters for relevant positions itself.
package remoteok

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobscout/internal/jobs"
)

const defaultEndpoint = "https://remoteok.com/api"

// relevanceKeywords select data-platform positions out of the full feed,
// matched against position text and tags.
var relevanceKeywords = []string{
	"data engineer",
	"analytics engineer",
	"data scientist",
	"etl",
	"data pipeline",
}

// Config controls the adapter.
type Config struct {
	Enabled   bool
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
}

// Adapter fetches the RemoteOK feed. The title and page arguments of
// FetchPage are ignored: every call returns the same filtered feed, and
// the caller's seen-id set absorbs the duplicates.
type Adapter struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// New builds an Adapter.
func New(cfg Config, logger *zap.Logger) *Adapter {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "jobscout/1.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Adapter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Name implements source.Adapter.
func (a *Adapter) Name() string { return "RemoteOK (Remote Jobs)" }

// Tag implements source.Adapter.
func (a *Adapter) Tag() string { return "remoteok" }

// FetchPage retrieves the feed and keeps relevant positions.
func (a *Adapter) FetchPage(ctx context.Context, _ string, _ int) ([]jobs.Posting, error) {
	if !a.cfg.Enabled {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build remoteok request: %w", err)
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			a.logger.Warn("failed to close remoteok response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remoteok status %d", resp.StatusCode)
	}

	var entries []feedEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode remoteok response: %w", err)
	}
	// The first feed element is legal metadata, not a posting.
	if len(entries) > 0 {
		entries = entries[1:]
	}

	var postings []jobs.Posting
	for _, e := range entries {
		if !relevant(e) {
			continue
		}
		loc := e.Location
		if loc == "" {
			loc = "Worldwide"
		}
		postings = append(postings, jobs.Posting{
			ID:             e.ID.String(),
			Title:          e.Position,
			Company:        e.Company,
			Location:       "Remote - " + loc,
			Remote:         true,
			JobType:        "Full-time",
			PostedAt:       e.Date,
			ApplyURL:       e.URL,
			Description:    e.Description,
			SalaryMin:      e.SalaryMin,
			SalaryMax:      e.SalaryMax,
			SalaryCurrency: "USD",
			Source:         a.Name(),
		})
	}
	return postings, nil
}

func relevant(e feedEntry) bool {
	position := strings.ToLower(e.Position)
	tags := strings.ToLower(strings.Join(e.Tags, " "))
	for _, kw := range relevanceKeywords {
		if strings.Contains(position, kw) || strings.Contains(tags, kw) {
			return true
		}
	}
	return false
}

type feedEntry struct {
	ID          json.Number `json:"id"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	Location    string      `json:"location"`
	Tags        []string    `json:"tags"`
	Date        string      `json:"date"`
	URL         string      `json:"url"`
	Description string      `json:"description"`
	SalaryMin   *float64    `json:"salary_min"`
	SalaryMax   *float64    `json:"salary_max"`
}
