package cli

import (
	"fmt"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/cli/render"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/spf13/cobra"
)

// deployOutput is the JSON form of a deployment run
type deployOutput struct {
	Network    domain.NetworkIdentity    `json:"network"`
	Plan       string                    `json:"plan"`
	Deployed   []domain.DeployedContract `json:"deployed"`
	FailedStep *usecase.FailedStep       `json:"failedStep,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the contract system to a network",
		Long: `Deploy every contract of a plan in order, substituting the addresses of
contracts deployed earlier in the run into the constructor arguments of later ones.

Without --plan the full system plan runs: ContractSystem, ContractStorage,
DIDRegistry and LibDIDRegistry. A run stops at the first failing step; contracts
deployed before it stay on-chain and are recorded.

Deploying to a public network asks for confirmation unless --non-interactive is set.`,
		Example: `  # Deploy the full system to the local ganache chain
  bountyctl deploy --network ganache

  # Deploy only the registry contracts from a plan file, reusing live deployments
  bountyctl deploy -n develop --plan plans/registry.yaml --redeploy-policy skip-existing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network, err := selectedNetwork(cmd, app)
			if err != nil {
				return err
			}

			if id, err := domain.ParseNetworkIdentity(network); err == nil && id.IsPublic() {
				ok, err := app.Selector.Confirm(cmd.Context(), fmt.Sprintf("Deploy to public network %s", id))
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("deployment to %s cancelled", id)
				}
			}

			result, err := app.DeploySystem.Run(cmd.Context(), usecase.DeploySystemParams{Network: network})
			if err != nil && result == nil {
				return err
			}

			if app.Config.JSON {
				out := deployOutput{
					Network:    result.Network.Identity,
					Plan:       result.Plan.Name,
					Deployed:   result.Deployed,
					FailedStep: result.FailedStep,
				}
				if result.Err != nil {
					out.Error = result.Err.Error()
				}
				if err := render.WriteJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			} else if err := render.NewDeployRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}

			if result.Err != nil {
				return &reportedError{err: result.Err}
			}
			// records could not be saved after a successful run
			return err
		},
	}

	cmd.Flags().String("plan", "", "Built-in plan (system, storage, registry, default) or plan file")
	cmd.Flags().String("redeploy-policy", "", "What to do with contracts deployed by earlier runs (always, skip-existing)")
	cmd.Flags().Int("signer-index", 0, "Index of the derived account that signs the deployment")
	cmd.Flags().Duration("confirm-timeout", 0, "How long to wait for each receipt before retrying")
	cmd.Flags().Uint64("gas-limit", 0, "Fixed gas limit per deployment (0 estimates)")

	return cmd
}
