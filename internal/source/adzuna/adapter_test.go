package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixture = `{
  "results": [
    {
      "id": 4567890,
      "title": "Analytics Engineer",
      "company": {"display_name": "Data Inc"},
      "location": {"display_name": "Austin, Travis County, Texas"},
      "contract_type": "permanent",
      "created": "2025-03-01T08:00:00Z",
      "redirect_url": "https://example.com/redirect",
      "description": "Remote friendly role, 3-7 years experience",
      "salary_min": 130000,
      "salary_max": 170000
    },
    {
      "id": 4567891,
      "title": "BI Engineer",
      "company": {"display_name": "Dash Co"},
      "location": {"display_name": "New York, New York"},
      "created": "2025-03-01T09:00:00Z",
      "redirect_url": "https://example.com/redirect2",
      "description": "On site role"
    }
  ]
}`

func TestFetchPage(t *testing.T) {
	t.Parallel()

	var gotPath, gotWhat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotWhat = r.URL.Query().Get("what")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	defer srv.Close()

	a := New(Config{AppID: "id", AppKey: "key", Location: "United States", BaseURL: srv.URL}, zap.NewNop())
	postings, err := a.FetchPage(context.Background(), "Analytics Engineer", 2)
	require.NoError(t, err)
	require.Equal(t, "/v1/api/jobs/us/search/2", gotPath)
	require.Equal(t, "Analytics Engineer", gotWhat)

	require.Len(t, postings, 2)
	first := postings[0]
	require.Equal(t, "4567890", first.ID)
	require.Equal(t, "Data Inc", first.Company)
	require.Equal(t, "Austin, Travis County", first.Location)
	require.True(t, first.Remote)
	require.Equal(t, "permanent", first.JobType)
	require.NotNil(t, first.SalaryMax)
	require.Equal(t, 170000.0, *first.SalaryMax)

	second := postings[1]
	require.False(t, second.Remote)
	require.Equal(t, "Full-time", second.JobType)
	require.Equal(t, "New York, New York", second.Location)
}

func TestFetchPageMissingCredentials(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("adapter without credentials must not call the provider")
	}))
	defer srv.Close()

	a := New(Config{AppID: "id", BaseURL: srv.URL}, zap.NewNop())
	postings, err := a.FetchPage(context.Background(), "Analytics Engineer", 1)
	require.NoError(t, err)
	require.Empty(t, postings)
}

func TestShortLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Austin, Travis County, Texas", "Austin, Travis County"},
		{"New York, New York", "New York, New York"},
		{"Remote", "Remote"},
		{"", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, shortLocation(tt.in))
	}
}
