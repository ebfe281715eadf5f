package app

import (
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters/blockchain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/config"
	domainconfig "github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *domainconfig.RuntimeConfig

	// Shared dependencies
	Selector usecase.InteractiveSelector
	Networks *config.NetworkResolver
	clients  *blockchain.ClientPool

	// Use cases
	DeploySystem    *usecase.DeploySystem
	RunSetup        *usecase.RunSetup
	ShowPlan        *usecase.ShowPlan
	ListDeployments *usecase.ListDeployments
	ListNetworks    *usecase.ListNetworks
	ShowAccounts    *usecase.ShowAccounts
	ShowConfig      *usecase.ShowConfig
	SetConfig       *usecase.SetConfig
	RemoveConfig    *usecase.RemoveConfig
	ResetRecords    *usecase.ResetRecords
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *domainconfig.RuntimeConfig,
	selector usecase.InteractiveSelector,
	networks *config.NetworkResolver,
	clients *blockchain.ClientPool,
	deploySystem *usecase.DeploySystem,
	runSetup *usecase.RunSetup,
	showPlan *usecase.ShowPlan,
	listDeployments *usecase.ListDeployments,
	listNetworks *usecase.ListNetworks,
	showAccounts *usecase.ShowAccounts,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
	resetRecords *usecase.ResetRecords,
) (*App, error) {
	return &App{
		Config:          cfg,
		Selector:        selector,
		Networks:        networks,
		clients:         clients,
		DeploySystem:    deploySystem,
		RunSetup:        runSetup,
		ShowPlan:        showPlan,
		ListDeployments: listDeployments,
		ListNetworks:    listNetworks,
		ShowAccounts:    showAccounts,
		ShowConfig:      showConfig,
		SetConfig:       setConfig,
		RemoveConfig:    removeConfig,
		ResetRecords:    resetRecords,
	}, nil
}

// Close releases the RPC connections opened by the commands
func (a *App) Close() {
	if a.clients != nil {
		a.clients.Close()
	}
}
