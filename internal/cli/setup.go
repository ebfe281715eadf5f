package cli

import (
	"context"
	"fmt"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/cli/render"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/spf13/cobra"
)

// NewSetupCmd creates the setup command
func NewSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup <file>",
		Short: "Run a test-harness setup file",
		Long: `Run the actions of a YAML setup file in order. Every action is validated
before the first one runs.

Supported actions:
  set_network      switch the network later actions run against
  set_log_level    change the log level (debug, info, warn, error)
  sleep            wait for a duration such as 2s
  deploy           deploy a plan (the full system without "plan")
  transfer         send wei from a derived account to an address or deployed contract
  assert_deployed  fail unless a contract has code at its recorded address

The first deploy or transfer against a public network asks for confirmation
unless --non-interactive is set.`,
		Example: `  bountyctl setup test/setup.yaml --network ganache`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RunSetup.Run(cmd.Context(), usecase.RunSetupParams{
				Path:    args[0],
				Network: app.Config.Network,
				ConfirmPublic: func(ctx context.Context, id domain.NetworkIdentity) (bool, error) {
					return app.Selector.Confirm(ctx, fmt.Sprintf("Run setup actions against public network %s", id))
				},
			})
			if err != nil {
				if result != nil && len(result.Deployed) > 0 && !app.Config.JSON {
					render.RenderDeployed(cmd.OutOrStdout(), result.Deployed)
				}
				return err
			}

			if app.Config.JSON {
				return render.WriteJSON(cmd.OutOrStdout(), result)
			}
			return render.NewSetupRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}
