// Package jsearch integrates the JSearch API (LinkedIn, Indeed, Glassdoor,
// ZipRecruiter aggregate) behind the source.Adapter contract.
package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"jobscout/internal/jobs"
)

const (
	defaultBaseURL = "https://jsearch.p.rapidapi.com"
	rapidAPIHost   = "jsearch.p.rapidapi.com"
)

// Config controls the adapter.
type Config struct {
	APIKey    string
	Location  string
	BaseURL   string
	Timeout   time.Duration
	PageDelay time.Duration
}

// Adapter fetches postings from JSearch. The provider is rate limited on
// the free tier, so the adapter advertises a pause between pages.
type Adapter struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// New builds an Adapter. A missing API key is not an error; FetchPage
// short-circuits to an empty page instead.
func New(cfg Config, logger *zap.Logger) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
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
func (a *Adapter) Name() string { return "JSearch (LinkedIn/Indeed/Glassdoor)" }

// Tag implements source.Adapter.
func (a *Adapter) Tag() string { return "jsearch" }

// PageDelay implements source.Throttled.
func (a *Adapter) PageDelay() time.Duration { return a.cfg.PageDelay }

// FetchPage retrieves one page of search results.
func (a *Adapter) FetchPage(ctx context.Context, title string, page int) ([]jobs.Posting, error) {
	if a.cfg.APIKey == "" {
		a.logger.Warn("jsearch api key not configured, skipping source")
		return nil, nil
	}

	q := url.Values{}
	q.Set("query", fmt.Sprintf("%s in %s", title, a.cfg.Location))
	q.Set("page", strconv.Itoa(page))
	q.Set("num_pages", "1")
	q.Set("date_posted", "week")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build jsearch request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", a.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			a.logger.Warn("failed to close jsearch response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jsearch status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode jsearch response: %w", err)
	}

	postings := make([]jobs.Posting, 0, len(payload.Data))
	for _, j := range payload.Data {
		postings = append(postings, jobs.Posting{
			ID:             j.JobID,
			Title:          j.Title,
			Company:        j.Employer,
			Location:       fmt.Sprintf("%s, %s", j.City, j.State),
			Remote:         j.IsRemote,
			JobType:        j.EmploymentType,
			PostedAt:       j.PostedAt,
			ApplyURL:       j.ApplyLink,
			Description:    j.Description,
			SalaryMin:      j.SalaryMin,
			SalaryMax:      j.SalaryMax,
			SalaryCurrency: j.SalaryCurrency,
			Source:         a.Name(),
		})
	}
	return postings, nil
}

type searchResponse struct {
	Data []searchJob `json:"data"`
}

type searchJob struct {
	JobID          string   `json:"job_id"`
	Title          string   `json:"job_title"`
	Employer       string   `json:"employer_name"`
	City           string   `json:"job_city"`
	State          string   `json:"job_state"`
	EmploymentType string   `json:"job_employment_type"`
	IsRemote       bool     `json:"job_is_remote"`
	PostedAt       string   `json:"job_posted_at_datetime_utc"`
	ApplyLink      string   `json:"job_apply_link"`
	Description    string   `json:"job_description"`
	SalaryMin      *float64 `json:"job_min_salary"`
	SalaryMax      *float64 `json:"job_max_salary"`
	SalaryCurrency string   `json:"job_salary_currency"`
}
