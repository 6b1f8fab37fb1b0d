package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobscout/internal/config"
	"jobscout/internal/notify"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Output.Dir = t.TempDir()
	// No credentials and no feed, so a scan touches no network.
	cfg.Sources.RemoteOK.Enabled = false
	return cfg
}

func TestNewWithoutExternalServices(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	require.IsType(t, notify.NoOpPublisher{}, a.publisher)
}

func TestNewRejectsTopicWithoutProject(t *testing.T) {
	cfg := testConfig(t)
	cfg.Notify.Topic = "job-alerts"

	_, err := New(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "notify.project_id")
}

func TestScanWithoutSourcesWritesEmptyCSV(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Scan(context.Background(), notify.ScanTypeManual))

	matches, err := filepath.Glob(filepath.Join(cfg.Output.Dir, "data_engineer_jobs_*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestBuildAdapters(t *testing.T) {
	cfg := testConfig(t)
	require.Empty(t, buildAdapters(cfg, zap.NewNop()))

	cfg.Sources.JSearch.APIKey = "key"
	cfg.Sources.Adzuna.AppID = "id"
	cfg.Sources.Adzuna.AppKey = "secret"
	cfg.Sources.RemoteOK.Enabled = true
	require.Len(t, buildAdapters(cfg, zap.NewNop()), 3)
}

func TestQueryNamesAllFamilies(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	q := a.query()
	require.Contains(t, q, "Data Engineer")
	require.Contains(t, q, "Analytics Engineer")
	require.Contains(t, q, "in United States")
}
