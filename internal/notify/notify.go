// Package notify builds and publishes the per-run summary notification.
package notify

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"jobscout/internal/pipeline"
)

// Scan-type attribute values.
const (
	ScanTypeScheduled = "Scheduled"
	ScanTypeManual    = "Manual"
)

// Message is one outbound notification.
type Message struct {
	Subject    string            `json:"subject"`
	Body       string            `json:"body"`
	Attributes map[string]string `json:"-"`
}

// Publisher delivers a Message and returns the provider message id.
type Publisher interface {
	Publish(ctx context.Context, msg Message) (string, error)
	Close() error
}

// NoOpPublisher is used when no destination is configured; a run without
// a notification target is not an error.
type NoOpPublisher struct{}

// Publish for NoOpPublisher does nothing.
func (NoOpPublisher) Publish(_ context.Context, _ Message) (string, error) { return "", nil }

// Close for NoOpPublisher does nothing.
func (NoOpPublisher) Close() error { return nil }

// BuildSummary renders the multi-section notification for one run. The
// numeric count and scan type ride along as structured attributes so
// subscribers can filter without parsing the body.
func BuildSummary(s pipeline.Summary, query, experience, csvPath, scanType string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Job Scan Report\n")
	fmt.Fprintf(&b, "Run ID: %s\n", s.RunID)
	fmt.Fprintf(&b, "Scan Time: %s\n", s.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Search: %s\n", query)
	fmt.Fprintf(&b, "Experience Filter: %s\n", experience)
	fmt.Fprintf(&b, "\nTotal Jobs Found: %d\n", s.Total)

	if len(s.PerFamily) > 0 {
		fmt.Fprintf(&b, "\nBy Role:\n")
		for _, fam := range sortedKeys(s.PerFamily) {
			fmt.Fprintf(&b, "  - %s: %d\n", fam, s.PerFamily[fam])
		}
	}
	if len(s.PerSource) > 0 {
		fmt.Fprintf(&b, "\nBy Source:\n")
		for _, src := range sortedKeys(s.PerSource) {
			fmt.Fprintf(&b, "  - %s: %d\n", src, s.PerSource[src])
		}
	}
	fmt.Fprintf(&b, "\nCSV File: %s\n", csvPath)

	return Message{
		Subject: fmt.Sprintf("Job Scan Alert - %d New Listings Found", s.Total),
		Body:    b.String(),
		Attributes: map[string]string{
			"JobCount": strconv.Itoa(s.Total),
			"ScanType": scanType,
		},
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
