package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/app"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// commands that run without a project or an app instance
var standaloneCommands = []string{"version", "help", "completion", "__complete"}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bountyctl",
		Short: "Deploy the bounty contract system to local and public networks",
		Long: `bountyctl deploys the bounty contract system (ContractSystem, ContractStorage,
DIDRegistry and LibDIDRegistry) in dependency order, feeding the address of each
deployed contract into the constructors of the contracts that reference it.

Networks: ganache, develop and coverage are local chains signed for with a
well-known mnemonic; kovan and ropsten are public networks whose mnemonic is read
from a secret file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if isStandalone(cmd.Name()) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			var cancel context.CancelFunc = func() {}
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cmd.PostRun = func(cmd *cobra.Command, args []string) {
				cancel()
				appInstance.Close()
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (ganache, develop, coverage, kovan, ropsten)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	setupCmd := NewSetupCmd()
	setupCmd.GroupID = "main"
	rootCmd.AddCommand(setupCmd)

	planCmd := NewPlanCmd()
	planCmd.GroupID = "main"
	rootCmd.AddCommand(planCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "main"
	rootCmd.AddCommand(listCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	resetCmd := NewResetCmd()
	resetCmd.GroupID = "management"
	rootCmd.AddCommand(resetCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func isStandalone(name string) bool {
	return lo.Contains(standaloneCommands, name)
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// reportedError marks an error whose details the command already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// IsReported tells main not to print err again
func IsReported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}
