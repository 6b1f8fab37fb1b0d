package remoteok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixture = `[
  {"legal": "API terms of use"},
  {
    "id": 789,
    "position": "Data Engineer",
    "company": "Remote First Co",
    "location": "Europe",
    "tags": ["python", "sql"],
    "date": "2025-03-01T00:00:00Z",
    "url": "https://example.com/789",
    "description": "ETL pipelines, 4 years of experience",
    "salary_min": 140000,
    "salary_max": 180000
  },
  {
    "id": 790,
    "position": "Graphic Designer",
    "company": "Brand Co",
    "tags": ["design", "figma"],
    "date": "2025-03-01T00:00:00Z",
    "url": "https://example.com/790",
    "description": "Make things pretty"
  },
  {
    "id": 791,
    "position": "Backend Developer",
    "company": "Pipes Ltd",
    "tags": ["etl", "golang"],
    "date": "2025-03-01T00:00:00Z",
    "url": "https://example.com/791",
    "description": "Streaming ingest"
  }
]`

func TestFetchPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	defer srv.Close()

	a := New(Config{Enabled: true, Endpoint: srv.URL}, zap.NewNop())
	postings, err := a.FetchPage(context.Background(), "ignored", 99)
	require.NoError(t, err)

	// Metadata element dropped, designer filtered out, etl tag kept.
	require.Len(t, postings, 2)
	require.Equal(t, "789", postings[0].ID)
	require.Equal(t, "Remote - Europe", postings[0].Location)
	require.True(t, postings[0].Remote)
	require.Equal(t, "791", postings[1].ID)
}

func TestFetchPageDisabled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("disabled adapter must not call the provider")
	}))
	defer srv.Close()

	a := New(Config{Enabled: false, Endpoint: srv.URL}, zap.NewNop())
	postings, err := a.FetchPage(context.Background(), "", 1)
	require.NoError(t, err)
	require.Empty(t, postings)
}

func TestFetchPageDefaultsLocation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"legal":""},{"id":1,"position":"Data Scientist","company":"X","url":"u","description":"d"}]`))
	}))
	defer srv.Close()

	a := New(Config{Enabled: true, Endpoint: srv.URL}, zap.NewNop())
	postings, err := a.FetchPage(context.Background(), "", 1)
	require.NoError(t, err)
	require.Len(t, postings, 1)
	require.Equal(t, "Remote - Worldwide", postings[0].Location)
}
