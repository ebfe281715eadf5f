package cli

import (
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/cli/render"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List the contracts recorded by earlier deployment runs, grouped by network.

With --network only that network is listed; --contract narrows the listing to one
contract name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			contract, _ := cmd.Flags().GetString("contract")
			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				Network:      app.Config.Network,
				ContractName: contract,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.WriteJSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeploymentList(result)
		},
	}

	cmd.Flags().String("contract", "", "Only list deployments of this contract")

	return cmd
}
