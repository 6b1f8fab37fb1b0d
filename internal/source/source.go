// Package source declares the adapter contract every job-listing
// provider integration implements.
package source

import (
	"context"
	"time"

	"jobscout/internal/jobs"
)

// Adapter fetches one page of postings for a search title. Implementations
// reshape provider payloads into the common Posting shape and return an
// error on transport or decode failure; callers decide how to degrade.
type Adapter interface {
	// Name is the human-readable source label written into output rows.
	Name() string
	// Tag is the short prefix used to source-qualify posting ids.
	Tag() string
	// FetchPage retrieves one page of postings for the given title.
	FetchPage(ctx context.Context, title string, page int) ([]jobs.Posting, error)
}

// Throttled is implemented by adapters that need a fixed pause between
// paginated calls.
type Throttled interface {
	PageDelay() time.Duration
}
