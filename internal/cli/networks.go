package cli

import (
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/cli/render"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the networks deployments can target",
		Long: `List every known network identity with its endpoint, expected chain ID and
whether it is a local or public network.

Endpoints come from bounty.toml overrides or the built-in defaults. Public
networks use Infura with the configured project ID, or the shared
/metamask endpoint when none is set. Networks without any endpoint, such as
coverage, are shown as not configured. No secret material is read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.WriteJSON(cmd.OutOrStdout(), result)
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}

	cmd.AddCommand(newAccountsCmd())

	return cmd
}

func newAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Show the accounts derived for a network",
		Long: `Show the accounts derived from the mnemonic of a network along the
m/44'/60'/0'/0 path. --show-keys also prints private keys; it is refused for
public networks.`,
		Example: `  bountyctl networks accounts -n ganache --show-keys`,
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

			showKeys, _ := cmd.Flags().GetBool("show-keys")
			result, err := app.ShowAccounts.Run(cmd.Context(), usecase.ShowAccountsParams{
				Network:         network,
				ShowPrivateKeys: showKeys,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.WriteJSON(cmd.OutOrStdout(), result)
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderAccounts(result)
		},
	}

	cmd.Flags().Bool("show-keys", false, "Include private keys (local networks only)")

	return cmd
}
