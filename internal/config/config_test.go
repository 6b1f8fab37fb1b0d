package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "United States", cfg.Search.Location)
	require.Equal(t, 3, cfg.Search.ExperienceMinYears)
	require.Equal(t, 7, cfg.Search.ExperienceMaxYears)
	require.Equal(t, 3, cfg.Sources.MaxPages)
	require.Equal(t, 30*time.Second, cfg.Sources.RequestTimeout)
	require.Equal(t, "us", cfg.Sources.Adzuna.CountryCode)
	require.Equal(t, 20, cfg.Sources.Adzuna.ResultsPerPage)
	require.True(t, cfg.Sources.RemoteOK.Enabled)
	require.Equal(t, "output", cfg.Output.Dir)
	require.Equal(t, "data_engineer_jobs", cfg.Output.CSVPrefix)
	require.Equal(t, 6*time.Hour, cfg.Schedule.Interval)
	require.Equal(t, 2, cfg.Schedule.Retries)
	require.Equal(t, 5*time.Minute, cfg.Schedule.RetryDelay)
	require.Equal(t, 8080, cfg.Ops.Port)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
search:
  location: Canada
  experience_min_years: 2
  experience_max_years: 10
sources:
  max_pages: 5
  jsearch:
    api_key: test-key
notify:
  project_id: demo-project
  topic: job-alerts
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "Canada", cfg.Search.Location)
	require.Equal(t, 2, cfg.Search.ExperienceMinYears)
	require.Equal(t, 10, cfg.Search.ExperienceMaxYears)
	require.Equal(t, 5, cfg.Sources.MaxPages)
	require.Equal(t, "test-key", cfg.Sources.JSearch.APIKey)
	require.Equal(t, "demo-project", cfg.Notify.ProjectID)
	require.Equal(t, "job-alerts", cfg.Notify.Topic)

	// Unset sections keep their defaults.
	require.Equal(t, "data_engineer_jobs", cfg.Output.CSVPrefix)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("JOBSCOUT_SEARCH_LOCATION", "Germany")
	t.Setenv("JOBSCOUT_SOURCES_JSEARCH_API_KEY", "env-key")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "Germany", cfg.Search.Location)
	require.Equal(t, "env-key", cfg.Sources.JSearch.APIKey)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("inverted window", func(t *testing.T) {
		cfg := base()
		cfg.Search.ExperienceMinYears = 8
		cfg.Search.ExperienceMaxYears = 4
		require.Error(t, cfg.Validate())
	})

	t.Run("zero pages", func(t *testing.T) {
		cfg := base()
		cfg.Sources.MaxPages = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Ops.Port = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("negative retries", func(t *testing.T) {
		cfg := base()
		cfg.Schedule.Retries = -1
		require.Error(t, cfg.Validate())
	})
}

func TestWindow(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	w := cfg.Window()
	require.Equal(t, 3, w.Min)
	require.Equal(t, 7, w.Max)
}
