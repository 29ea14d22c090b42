package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find S3 objects that no content file references",
	Long: `Lists every object in the configured bucket, searches the content folder for
each object's public URL and writes the report and the manifest to the output
directory. Nothing is deleted.

Exits with status 1 when orphaned objects were found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := loadEnvironment(ctx, "storage", "content", "output")
		if err != nil {
			return exitError(err)
		}
		defer env.close()

		svc, err := env.orphansService()
		if err != nil {
			return exitError(err)
		}

		env.logger.Info("Starting S3 content check",
			zap.String("bucket", env.cfg.Storage.Bucket),
			zap.String("content", env.cfg.Content.Path),
		)

		result, err := svc.Scan(ctx)
		if err != nil {
			return exitError(fmt.Errorf("scan failed: %w", err))
		}

		out := cmd.OutOrStdout()
		printScanSummary(out, result.Manifest, result.Skipped)
		fmt.Fprintf(out, "\nReport:   %s\nManifest: %s\n", result.ReportPath, result.ManifestPath)

		if result.HasOrphans() {
			fmt.Fprintln(out, "\nReview the manifest, then run 'content-sweeper destroy' to delete the listed objects.")
			return &ExitError{Code: 1}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)
}
