// Package cmd defines and implements the CLI commands for the jobscout
// executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jobscout/internal/app"
	"jobscout/internal/config"
	"jobscout/internal/logging"
)

var cfgFile string

// appKeyType is the key for storing the App in the command context.
type appKeyType struct{}

var appKey appKeyType

// newApp is the application factory. It is a variable so tests can
// replace it with a factory that builds a stub.
var newApp = func(ctx context.Context) (*app.App, error) {
	// A .env file in the working directory is optional; real deployments
	// set credentials through the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return app.New(ctx, cfg, logger)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobscout",
		Short: "Scans job boards for mid-level data engineering roles",
		Long: `jobscout queries JSearch, Adzuna, and RemoteOK for Data Engineer,
Analytics Engineer, and Data Scientist (ETL) listings, filters them by
required experience, exports the matches to CSV, and publishes a summary
notification.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		// Runs before the subcommand's RunE. Builds the service container
		// and injects it into the command context.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a, ok := cmd.Context().Value(appKey).(*app.App); ok && a != nil {
				a.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional, env vars used otherwise)")

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newWatchCmd())

	return cmd
}

func resolveApp(ctx context.Context) (*app.App, error) {
	a, ok := ctx.Value(appKey).(*app.App)
	if !ok || a == nil {
		return nil, errors.New("application services not initialized")
	}
	return a, nil
}

// Execute is the main entry point. It wires SIGINT/SIGTERM into the
// command context so long-running commands drain cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
