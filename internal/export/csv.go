// Package export writes the merged result set to timestamped CSV
// artifacts.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobscout/internal/jobs"
)

// columns is the fixed output order. The family label is deliberately
// not a column; it appears only in the notification breakdown.
var columns = []string{
	"job_id",
	"title",
	"company",
	"location",
	"remote",
	"job_type",
	"posted_date",
	"apply_link",
	"salary_min",
	"salary_max",
	"salary_currency",
	"experience_required",
	"source",
	"scraped_at",
	"description_snippet",
}

// CSVExporter writes one artifact per run under a fixed directory.
type CSVExporter struct {
	dir        string
	prefix     string
	experience string
	clock      jobs.Clock
	logger     *zap.Logger
}

// NewCSVExporter creates the output directory if needed. experience is
// the configured window rendered for the experience_required column.
func NewCSVExporter(dir, prefix, experience string, clock jobs.Clock, logger *zap.Logger) (*CSVExporter, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &CSVExporter{
		dir:        dir,
		prefix:     prefix,
		experience: experience,
		clock:      clock,
		logger:     logger,
	}, nil
}

// Export writes postings to a new timestamped file and returns its path.
// An empty list still produces a file with the header row.
func (e *CSVExporter) Export(postings []jobs.Posting) (string, error) {
	filename := fmt.Sprintf("%s_%s.csv", e.prefix, e.clock.Now().Format("20060102_150405"))
	path := filepath.Join(e.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("failed to close csv file", zap.Error(cerr))
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range postings {
		if err := w.Write(e.row(p)); err != nil {
			return "", fmt.Errorf("write csv row %s: %w", p.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv %s: %w", path, err)
	}

	e.logger.Info("exported csv artifact",
		zap.String("path", path),
		zap.Int("rows", len(postings)))
	return path, nil
}

// Latest returns the most recently modified artifact in the output
// directory, or "" when none exists.
func (e *CSVExporter) Latest() (string, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return "", fmt.Errorf("read output dir %s: %w", e.dir, err)
	}

	var (
		newest     string
		newestTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = filepath.Join(e.dir, entry.Name())
			newestTime = info.ModTime()
		}
	}
	return newest, nil
}

func (e *CSVExporter) row(p jobs.Posting) []string {
	return []string{
		p.ID,
		p.Title,
		p.Company,
		p.Location,
		strconv.FormatBool(p.Remote),
		p.JobType,
		p.PostedAt,
		p.ApplyURL,
		formatSalary(p.SalaryMin),
		formatSalary(p.SalaryMax),
		p.SalaryCurrency,
		e.experience,
		p.Source,
		p.ScrapedAt.Format(time.RFC3339),
		p.Description,
	}
}

func formatSalary(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
