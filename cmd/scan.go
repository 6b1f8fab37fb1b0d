package cmd

import (
	"github.com/spf13/cobra"

	"jobscout/internal/notify"
)

// newScanCmd creates the 'scan' subcommand, which runs a single scan
// cycle and exits.
func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Runs one scan cycle and exits",
		Long: `Queries every configured source once, filters and deduplicates the
results, writes the CSV export, and publishes the summary notification.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			return a.Scan(cmd.Context(), notify.ScanTypeManual)
		},
	}
}
