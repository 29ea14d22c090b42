package cmd

import (
	"fmt"

	"content-sweeper/core/cleanup"

	"github.com/spf13/cobra"
)

var confirmToken string

// destroyCmd represents the destroy command
var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Delete the objects listed in the manifest",
	Long: `Reads the manifest written by 'scan' and deletes exactly the objects it lists.
The bucket is not listed again; edit the manifest to keep objects.

You are asked to type DELETE before anything is removed. Pass --confirm DELETE
to run non-interactively.

Exits with status 1 when the confirmation is declined or any deletion fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := loadEnvironment(ctx, "storage", "output", "cleanup")
		if err != nil {
			return exitError(err)
		}
		defer env.close()

		svc := env.manifestService()

		var confirmer cleanup.Confirmer = &cleanup.PromptConfirmer{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
		if cmd.Flags().Changed("confirm") {
			confirmer = cleanup.TokenConfirmer(confirmToken)
		}

		result, err := svc.Destroy(ctx, confirmer)
		if result != nil && result.Report.State == cleanup.StateCompleted {
			printDestroySummary(cmd.OutOrStdout(), result.Report)
		}
		if err != nil {
			return exitError(fmt.Errorf("destroy failed: %w", err))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(destroyCmd)
	destroyCmd.Flags().StringVar(&confirmToken, "confirm", "", "Confirm deletion non-interactively (must be DELETE)")
}
