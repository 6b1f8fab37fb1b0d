package family

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobscout/internal/filter"
	"jobscout/internal/jobs"
	"jobscout/internal/source"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

// fakeAdapter serves canned pages keyed by page number and records calls.
type fakeAdapter struct {
	tag   string
	pages map[int][]jobs.Posting
	err   error
	calls int
}

func (f *fakeAdapter) Name() string { return f.tag }
func (f *fakeAdapter) Tag() string  { return f.tag }

func (f *fakeAdapter) FetchPage(_ context.Context, _ string, page int) ([]jobs.Posting, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[page], nil
}

var testWindow = filter.Window{Min: 3, Max: 7}

func adapterList(adapters ...*fakeAdapter) []source.Adapter {
	out := make([]source.Adapter, len(adapters))
	for i, a := range adapters {
		out[i] = a
	}
	return out
}

func TestScrapeFiltersByExperience(t *testing.T) {
	adapter := &fakeAdapter{
		tag: "fake",
		pages: map[int][]jobs.Posting{
			1: {
				{ID: "1", Title: "In range", Description: "3-7 years of experience"},
				{ID: "2", Title: "Out of range", Description: "requires 8-10 years"},
			},
		},
	}
	r := NewRunner(adapterList(adapter), testWindow, 3, fakeClock{now: time.Unix(1000, 0)}, zap.NewNop())

	got, err := r.Scrape(context.Background(), Family{Name: "Data Engineer", Terms: []string{"Data Engineer"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "fake_1", got[0].ID)
	require.Equal(t, "Data Engineer", got[0].Family)
	require.Equal(t, time.Unix(1000, 0), got[0].ScrapedAt)
}

func TestScrapeDeduplicatesAcrossPagesAndTerms(t *testing.T) {
	page := []jobs.Posting{{ID: "1", Title: "Repeat", Description: "unconstrained"}}
	adapter := &fakeAdapter{tag: "fake", pages: map[int][]jobs.Posting{1: page, 2: page}}
	r := NewRunner(adapterList(adapter), testWindow, 2, fakeClock{}, zap.NewNop())

	got, err := r.Scrape(context.Background(), Family{Name: "Data Engineer", Terms: []string{"a", "b"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestScrapeStopsPaginationOnEmptyPage(t *testing.T) {
	adapter := &fakeAdapter{
		tag:   "fake",
		pages: map[int][]jobs.Posting{1: {{ID: "1", Description: ""}}},
	}
	r := NewRunner(adapterList(adapter), testWindow, 5, fakeClock{}, zap.NewNop())

	_, err := r.Scrape(context.Background(), Family{Name: "Data Engineer", Terms: []string{"t"}})
	require.NoError(t, err)
	// Page 2 came back empty, so pages 3..5 are never requested.
	require.Equal(t, 2, adapter.calls)
}

func TestScrapeDemotesFetchErrorToExhaustion(t *testing.T) {
	broken := &fakeAdapter{tag: "broken", err: errors.New("boom")}
	healthy := &fakeAdapter{
		tag:   "healthy",
		pages: map[int][]jobs.Posting{1: {{ID: "1", Description: "4 years"}}},
	}
	r := NewRunner(adapterList(broken, healthy), testWindow, 3, fakeClock{}, zap.NewNop())

	got, err := r.Scrape(context.Background(), Family{Name: "Data Engineer", Terms: []string{"t"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, broken.calls)
}

func TestScrapeAppliesSkillGate(t *testing.T) {
	adapter := &fakeAdapter{
		tag: "fake",
		pages: map[int][]jobs.Posting{
			1: {
				{ID: "1", Description: "ETL pipelines in SQL"},
				{ID: "2", Description: "pure research, no tooling mentioned"},
			},
		},
	}
	fam := Family{
		Name:      "Data Scientist (ETL)",
		Terms:     []string{"Data Scientist"},
		SkillGate: filter.NewSkillMatcher([]string{"etl", "sql"}, 2),
	}
	r := NewRunner(adapterList(adapter), testWindow, 1, fakeClock{}, zap.NewNop())

	got, err := r.Scrape(context.Background(), fam)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "fake_1", got[0].ID)
}

func TestScrapeStopsOnCanceledContext(t *testing.T) {
	adapter := &fakeAdapter{tag: "fake", pages: map[int][]jobs.Posting{}}
	r := NewRunner(adapterList(adapter), testWindow, 3, fakeClock{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Scrape(ctx, Family{Name: "Data Engineer", Terms: []string{"t"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 3)
	require.Equal(t, "Data Engineer", defs[0].Name)
	require.Equal(t, "Analytics Engineer", defs[1].Name)
	require.Equal(t, "Data Scientist (ETL)", defs[2].Name)
	require.Nil(t, defs[0].SkillGate)
	require.Nil(t, defs[1].SkillGate)
	require.NotNil(t, defs[2].SkillGate)
}
