// Package jobs defines the posting model shared across subsystems.
package jobs

import (
	"fmt"
	"time"
)

// Posting is one job listing in the common shape all source adapters
// reshape into. ID is source-qualified once a family aggregator accepts
// the posting; before that it carries the provider-native id.
type Posting struct {
	ID             string    `json:"job_id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Remote         bool      `json:"remote"`
	JobType        string    `json:"job_type"`
	PostedAt       string    `json:"posted_date"`
	ApplyURL       string    `json:"apply_link"`
	Description    string    `json:"description"`
	SalaryMin      *float64  `json:"salary_min,omitempty"`
	SalaryMax      *float64  `json:"salary_max,omitempty"`
	SalaryCurrency string    `json:"salary_currency"`
	Source         string    `json:"source"`
	ScrapedAt      time.Time `json:"scraped_at"`
	Family         string    `json:"job_family,omitempty"`
}

// Experience is a stated years-of-experience requirement extracted from
// free text. A nil *Experience means the posting is unconstrained and
// passes every window by definition.
type Experience struct {
	Min int
	Max int
}

// snippetRunes bounds the description carried into the CSV artifact.
const snippetRunes = 500

// QualifyID prefixes a provider-native id with the source tag so ids are
// globally unique across providers.
func QualifyID(tag, rawID string) string {
	return fmt.Sprintf("%s_%s", tag, rawID)
}

// Normalize stamps the posting with the family label and scrape time and
// trims the description down to a snippet.
func (p Posting) Normalize(family string, scrapedAt time.Time) Posting {
	p.Family = family
	p.ScrapedAt = scrapedAt
	p.Description = snippet(p.Description)
	if p.JobType == "" {
		p.JobType = "Full-time"
	}
	if p.SalaryCurrency == "" {
		p.SalaryCurrency = "USD"
	}
	return p
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetRunes {
		return text
	}
	return string(runes[:snippetRunes]) + "..."
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
