package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobscout/internal/metrics"
	"jobscout/internal/notify"
	"jobscout/internal/scheduler"
)

// newWatchCmd creates the 'watch' subcommand, which scans on a schedule
// until interrupted and serves health and metrics endpoints meanwhile.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Scans on a schedule until interrupted",
		Long: `Runs a scan immediately and then again on every configured interval.
Failed scans are retried per the schedule's retry policy. Health and
Prometheus metrics endpoints are served while watching.`,

		RunE: runWatchCommand,
	}
}

func runWatchCommand(cmd *cobra.Command, _ []string) error {
	a, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	cfg := a.Config()
	logger := a.Logger()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Ops.Port),
		Handler:           opsRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		logger.Info("ops server started", zap.Int("port", cfg.Ops.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ops server error", zap.Error(err))
			cancel()
		}
	}()

	sched := scheduler.New(cfg.Schedule.Interval, cfg.Schedule.RetryDelay, cfg.Schedule.Retries, logger)
	logger.Info("watch started", zap.Duration("interval", cfg.Schedule.Interval))

	err = sched.Run(ctx, func(ctx context.Context) error {
		return a.Scan(ctx, notify.ScanTypeScheduled)
	})

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("ops server shutdown error", zap.Error(serr))
	}

	if errors.Is(err, context.Canceled) {
		logger.Info("watch stopped")
		return nil
	}
	return err
}

func opsRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.HTTPMiddleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	return r
}
