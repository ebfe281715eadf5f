package cli

import (
	"fmt"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/cli/render"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/spf13/cobra"
)

// NewResetCmd creates the reset command
func NewResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the deployments recorded for a network",
		Long: `Remove the deployment records of the selected network from .bounty.

Contracts stay on-chain. Later runs with --redeploy-policy skip-existing no
longer find them and deploy fresh copies. Asks for confirmation unless
--non-interactive is set.`,
		Example: `  bountyctl reset --network ganache`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network, err := selectedNetwork(cmd, app)
			if err != nil {
				return err
			}

			preview, err := app.ResetRecords.Run(cmd.Context(), usecase.ResetRecordsParams{Network: network, DryRun: true})
			if err != nil {
				return err
			}
			if len(preview.Records) == 0 {
				if app.Config.JSON {
					return render.WriteJSON(cmd.OutOrStdout(), preview)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to reset. No deployments recorded on %s.\n", preview.Network)
				return nil
			}

			ok, err := app.Selector.Confirm(cmd.Context(),
				fmt.Sprintf("Forget %d recorded deployments on %s", len(preview.Records), preview.Network))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
				return nil
			}

			result, err := app.ResetRecords.Run(cmd.Context(), usecase.ResetRecordsParams{Network: network})
			if err != nil {
				return err
			}
			if app.Config.JSON {
				return render.WriteJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(
				fmt.Sprintf("Removed %d deployment records from %s", len(result.Records), result.Network)))
			return nil
		},
	}

	return cmd
}
