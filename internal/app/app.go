// Package app wires configuration into long-lived services and exposes
// the scan operation the commands run. It acts as the process's
// dependency injection container, initialized once at startup.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"jobscout/internal/archive"
	"jobscout/internal/archive/gcs"
	"jobscout/internal/clock/system"
	"jobscout/internal/config"
	"jobscout/internal/export"
	"jobscout/internal/family"
	iduuid "jobscout/internal/id/uuid"
	"jobscout/internal/jobs"
	"jobscout/internal/notify"
	notifypubsub "jobscout/internal/notify/pubsub"
	"jobscout/internal/pipeline"
	"jobscout/internal/source"
	"jobscout/internal/source/adzuna"
	"jobscout/internal/source/jsearch"
	"jobscout/internal/source/remoteok"
)

// App holds the shared services for one scanner process.
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	clock     jobs.Clock
	publisher notify.Publisher
	store     archive.Store
	pipeline  *pipeline.Pipeline
	exporter  *export.CSVExporter
	families  []family.Family
}

// New builds an App from configuration. External services with
// credentials configured are connected fail-fast; services left
// unconfigured fall back to no-op implementations.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	clk := system.New()

	adapters := buildAdapters(cfg, logger)
	if len(adapters) == 0 {
		logger.Warn("no job sources configured, scans will return nothing")
	}

	var publisher notify.Publisher = notify.NoOpPublisher{}
	if cfg.Notify.Topic != "" {
		if cfg.Notify.ProjectID == "" {
			return nil, fmt.Errorf("notify.topic is set but notify.project_id is not")
		}
		logger.Info("connecting to pub/sub",
			zap.String("project", cfg.Notify.ProjectID),
			zap.String("topic", cfg.Notify.Topic))
		p, err := notifypubsub.New(ctx, cfg.Notify.ProjectID, cfg.Notify.Topic, logger)
		if err != nil {
			return nil, fmt.Errorf("initialize publisher: %w", err)
		}
		publisher = p
	} else {
		logger.Info("no notification topic configured, summaries will not be published")
	}

	var store archive.Store = archive.NoOpStore{}
	if cfg.Archive.Bucket != "" {
		logger.Info("connecting to gcs archive", zap.String("bucket", cfg.Archive.Bucket))
		s, err := gcs.NewStore(ctx, cfg.Archive.Bucket, cfg.Archive.Prefix, logger)
		if err != nil {
			publisher.Close() //nolint:errcheck
			return nil, fmt.Errorf("initialize archive: %w", err)
		}
		store = s
	}

	exporter, err := export.NewCSVExporter(cfg.Output.Dir, cfg.Output.CSVPrefix, cfg.Window().String(), clk, logger)
	if err != nil {
		publisher.Close() //nolint:errcheck
		store.Close()     //nolint:errcheck
		return nil, fmt.Errorf("initialize exporter: %w", err)
	}

	families := family.Definitions()
	runner := family.NewRunner(adapters, cfg.Window(), cfg.Sources.MaxPages, clk, logger)

	return &App{
		cfg:       cfg,
		logger:    logger,
		clock:     clk,
		publisher: publisher,
		store:     store,
		pipeline:  pipeline.New(runner, families, clk, iduuid.New(), logger),
		exporter:  exporter,
		families:  families,
	}, nil
}

func buildAdapters(cfg *config.Config, logger *zap.Logger) []source.Adapter {
	var adapters []source.Adapter
	if cfg.Sources.JSearch.APIKey != "" {
		adapters = append(adapters, jsearch.New(jsearch.Config{
			APIKey:    cfg.Sources.JSearch.APIKey,
			Location:  cfg.Search.Location,
			Timeout:   cfg.Sources.RequestTimeout,
			PageDelay: cfg.Sources.JSearch.PageDelay,
		}, logger))
	} else {
		logger.Info("jsearch api key not set, source disabled")
	}
	if cfg.Sources.Adzuna.AppID != "" && cfg.Sources.Adzuna.AppKey != "" {
		adapters = append(adapters, adzuna.New(adzuna.Config{
			AppID:          cfg.Sources.Adzuna.AppID,
			AppKey:         cfg.Sources.Adzuna.AppKey,
			Location:       cfg.Search.Location,
			CountryCode:    cfg.Sources.Adzuna.CountryCode,
			ResultsPerPage: cfg.Sources.Adzuna.ResultsPerPage,
			Timeout:        cfg.Sources.RequestTimeout,
		}, logger))
	} else {
		logger.Info("adzuna credentials not set, source disabled")
	}
	if cfg.Sources.RemoteOK.Enabled {
		adapters = append(adapters, remoteok.New(remoteok.Config{
			Enabled: true,
			Timeout: cfg.Sources.RequestTimeout,
		}, logger))
	}
	return adapters
}

// Logger returns the shared logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Config returns the loaded configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Scan runs one complete cycle: scrape all families, export the CSV,
// archive it, and publish the summary notification.
func (a *App) Scan(ctx context.Context, scanType string) error {
	result, err := a.pipeline.Run(ctx)
	if err != nil {
		return err
	}

	csvPath, err := a.exporter.Export(result.Postings)
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	if err := a.archiveCSV(ctx, csvPath); err != nil {
		a.logger.Error("archive upload failed", zap.Error(err))
	}

	msg := notify.BuildSummary(result.Summary, a.query(), a.cfg.Window().String(), csvPath, scanType)
	if id, err := a.publisher.Publish(ctx, msg); err != nil {
		a.logger.Error("summary publish failed", zap.Error(err))
	} else if id != "" {
		a.logger.Info("summary published", zap.String("message_id", id))
	}

	a.logger.Info("scan complete",
		zap.String("run_id", result.Summary.RunID),
		zap.Int("total", result.Summary.Total),
		zap.String("csv", csvPath))
	return nil
}

func (a *App) archiveCSV(ctx context.Context, csvPath string) error {
	data, err := os.ReadFile(csvPath)
	if err != nil {
		return fmt.Errorf("read csv for archive: %w", err)
	}
	return a.store.Save(ctx, filepath.Base(csvPath), data)
}

// query describes the scan for the notification body.
func (a *App) query() string {
	names := make([]string, 0, len(a.families))
	for _, f := range a.families {
		names = append(names, f.Name)
	}
	return fmt.Sprintf("%s in %s", strings.Join(names, ", "), a.cfg.Search.Location)
}

// Close releases external connections and flushes the logger.
func (a *App) Close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("publisher close failed", zap.Error(err))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("archive close failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}
