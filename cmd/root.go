package cmd

import (
	"errors"
	"fmt"
	"os"

	"content-sweeper/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is the directory holding the .env file.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "content-sweeper",
	Short: "Find and remove S3 attachments no content references",
	Long: `content-sweeper lists every object in an attachments bucket, searches a
folder of content files for each object's public URL, and writes a report and a
manifest of the objects nothing references.

Deletion is a separate step that only acts on the reviewed manifest:

  content-sweeper scan      # write output/orphaned-files-report.txt and -data.json
  content-sweeper destroy   # delete exactly what the manifest lists, after confirmation`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	code := 1
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		// An ExitError without a cause only carries the exit status.
		if exitErr.Err == nil {
			os.Exit(code)
		}
	}

	// Use the application's standard logger for error reporting
	// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
	cfg := &logger.Config{
		Level:  "debug",
		Format: "console",
	}

	l, logErr := logger.New(cfg)
	if logErr == nil {
		l.Error("command failed", zap.Error(err))
		if exitErr != nil && exitErr.Hint != "" {
			l.Info(exitErr.Hint)
		}
		_ = l.Sync()
	} else {
		// Absolute fallback if logger creation fails (rare)
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the .env file")
}
