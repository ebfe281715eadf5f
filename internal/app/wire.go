//go:build wireinject
// +build wireinject

package app

import (
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/logging"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRunSequence,
		usecase.NewDeploySystem,
		usecase.NewRunSetup,
		usecase.NewShowPlan,
		usecase.NewListDeployments,
		usecase.NewListNetworks,
		usecase.NewShowAccounts,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,
		usecase.NewResetRecords,

		// App
		NewApp,
	)
	return nil, nil
}
