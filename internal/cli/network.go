package cli

import (
	"errors"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters/interactive"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/app"
	"github.com/spf13/cobra"
)

// selectedNetwork returns the configured network, asking the operator to pick one
// when none is configured. An empty result is left for the resolver to reject.
func selectedNetwork(cmd *cobra.Command, a *app.App) (string, error) {
	if a.Config.Network != "" {
		return a.Config.Network, nil
	}

	id, err := a.Selector.SelectNetwork(cmd.Context(), a.Networks.Describe(), "Select a network")
	if errors.Is(err, interactive.ErrNonInteractive) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	a.Config.Network = string(id)
	return string(id), nil
}
