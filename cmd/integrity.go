package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"content-sweeper/core/manifest"
	"content-sweeper/feature/integrity"
	"content-sweeper/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var integrityJSON bool

// errChecksFailed is returned when at least one preflight check fails.
var errChecksFailed = errors.New("integrity checks failed")

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check that a scan can run",
	Long: `Verifies that the bucket exists and can be listed, that the content folder
exists, that the output directory is writable and, when the audit database is
enabled, that its schema is up to date.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := loadEnvironment(ctx, "storage", "content", "output")
		if err != nil {
			return exitError(err)
		}
		defer env.close()

		svc := env.integrityService()
		report := svc.RunAll(ctx)

		out := cmd.OutOrStdout()
		if integrityJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			table := newTable(out)
			table.SetHeader([]string{"CHECK", "STATUS", "ERROR"})
			for _, c := range report.Checks {
				table.Append([]string{c.Name, c.Status, c.Error})
			}
			table.Render()
		}

		if !report.Healthy {
			return exitError(fmt.Errorf("%w: %v", errChecksFailed, report.Failed()))
		}

		for _, c := range report.Checks {
			if c.Status == checks.StatusWarning {
				env.logger.Warn("Check passed with a warning", zap.String("check", c.Name))
			}
		}
		env.logger.Info("All integrity checks passed")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().BoolVar(&integrityJSON, "json", false, "Print the report as JSON")
}

// integrityService builds the preflight check service from configuration.
func (e *environment) integrityService() *integrity.Service {
	return integrity.NewService(integrity.Options{
		Client:         e.client,
		Bucket:         e.cfg.Storage.Bucket,
		Prefix:         e.cfg.Storage.Prefix,
		ContentPath:    e.cfg.Content.Path,
		ContentWorkers: e.cfg.Content.Workers,
		OutputDir:      e.cfg.Output.Dir,
		ManifestPath:   filepath.Join(e.cfg.Output.Dir, manifest.ManifestFile),
		DB:             e.db,
		Logger:         e.logger,
	})
}
