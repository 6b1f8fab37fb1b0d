package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobscout/internal/app"
	"jobscout/internal/config"
)

func stubAppFactory(t *testing.T, outputDir string) {
	t.Helper()
	orig := newApp
	newApp = func(ctx context.Context) (*app.App, error) {
		cfg, err := config.Load("")
		if err != nil {
			return nil, err
		}
		cfg.Output.Dir = outputDir
		cfg.Sources.RemoteOK.Enabled = false
		return app.New(ctx, cfg, zap.NewNop())
	}
	t.Cleanup(func() { newApp = orig })
}

func TestScanCommandWritesCSV(t *testing.T) {
	dir := t.TempDir()
	stubAppFactory(t, dir)

	root := newRootCmd()
	root.SetArgs([]string{"scan"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestResolveAppWithoutInit(t *testing.T) {
	_, err := resolveApp(context.Background())
	require.Error(t, err)
}
