// Package adzuna integrates the Adzuna API (Monster, CareerBuilder,
// SimplyHired aggregate) behind the source.Adapter contract.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobscout/internal/jobs"
)

const defaultBaseURL = "https://api.adzuna.com"

// Config controls the adapter. AppID and AppKey form the two-part
// credential Adzuna issues per application.
type Config struct {
	AppID          string
	AppKey         string
	Location       string
	CountryCode    string
	ResultsPerPage int
	BaseURL        string
	Timeout        time.Duration
}

// Adapter fetches postings from Adzuna.
type Adapter struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// New builds an Adapter. Missing credentials are not an error; FetchPage
// short-circuits to an empty page instead.
func New(cfg Config, logger *zap.Logger) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "us"
	}
	if cfg.ResultsPerPage <= 0 {
		cfg.ResultsPerPage = 20
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
func (a *Adapter) Name() string { return "Adzuna (Monster/CareerBuilder)" }

// Tag implements source.Adapter.
func (a *Adapter) Tag() string { return "adzuna" }

// FetchPage retrieves one page of search results.
func (a *Adapter) FetchPage(ctx context.Context, title string, page int) ([]jobs.Posting, error) {
	if a.cfg.AppID == "" || a.cfg.AppKey == "" {
		a.logger.Warn("adzuna credentials not configured, skipping source")
		return nil, nil
	}

	q := url.Values{}
	q.Set("app_id", a.cfg.AppID)
	q.Set("app_key", a.cfg.AppKey)
	q.Set("what", title)
	q.Set("where", a.cfg.Location)
	q.Set("results_per_page", strconv.Itoa(a.cfg.ResultsPerPage))
	q.Set("max_days_old", "7")
	q.Set("sort_by", "date")

	endpoint := fmt.Sprintf("%s/v1/api/jobs/%s/search/%d?%s", a.cfg.BaseURL, a.cfg.CountryCode, page, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build adzuna request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			a.logger.Warn("failed to close adzuna response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode adzuna response: %w", err)
	}

	postings := make([]jobs.Posting, 0, len(payload.Results))
	for _, j := range payload.Results {
		jobType := j.ContractType
		if jobType == "" {
			jobType = "Full-time"
		}
		postings = append(postings, jobs.Posting{
			ID:             j.ID.String(),
			Title:          j.Title,
			Company:        j.Company.DisplayName,
			Location:       shortLocation(j.Location.DisplayName),
			Remote:         looksRemote(j.Title, j.Description),
			JobType:        jobType,
			PostedAt:       j.Created,
			ApplyURL:       j.RedirectURL,
			Description:    j.Description,
			SalaryMin:      j.SalaryMin,
			SalaryMax:      j.SalaryMax,
			SalaryCurrency: "USD",
			Source:         a.Name(),
		})
	}
	return postings, nil
}

// shortLocation keeps at most the first two comma-separated components of
// Adzuna's display name ("Austin, Travis County, Texas" -> "Austin, Travis County").
func shortLocation(displayName string) string {
	parts := strings.SplitN(displayName, ", ", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, ", ")
}

func looksRemote(title, description string) bool {
	return strings.Contains(strings.ToLower(title), "remote") ||
		strings.Contains(strings.ToLower(description), "remote")
}

type searchResponse struct {
	Results []searchJob `json:"results"`
}

type searchJob struct {
	ID           json.Number `json:"id"`
	Title        string      `json:"title"`
	Company      company     `json:"company"`
	Location     location    `json:"location"`
	ContractType string      `json:"contract_type"`
	Created      string      `json:"created"`
	RedirectURL  string      `json:"redirect_url"`
	Description  string      `json:"description"`
	SalaryMin    *float64    `json:"salary_min"`
	SalaryMax    *float64    `json:"salary_max"`
}

type company struct {
	DisplayName string `json:"display_name"`
}

type location struct {
	DisplayName string `json:"display_name"`
}
