package adapters

import (
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters/blockchain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters/fs"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters/interactive"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters/plan"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters/progress"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters/repository/contracts"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters/resolvers"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/adapters/wallet"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/google/wire"
)

// ProvideMnemonicValidator provides the BIP-39 mnemonic check
func ProvideMnemonicValidator() config.MnemonicValidator {
	return wallet.ValidMnemonic
}

// ProvideSleep provides the context-aware sleep used by setup files
func ProvideSleep() usecase.SleepFunc {
	return usecase.ContextSleep
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewRecordStoreAdapter,
	wire.Bind(new(usecase.DeploymentRecordStore), new(*fs.RecordStoreAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),

	plan.NewLoader,
	wire.Bind(new(usecase.PlanLoader), new(*plan.Loader)),
	wire.Bind(new(usecase.SetupLoader), new(*plan.Loader)),
)

// ContractsSet provides compiled artifacts and earlier deployments
var ContractsSet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ArtifactRegistry), new(*contracts.Repository)),
	wire.Bind(new(resolvers.ArtifactDeployments), new(*contracts.Repository)),

	resolvers.NewDeploymentResolver,
	wire.Bind(new(usecase.ExistingDeploymentFinder), new(*resolvers.DeploymentResolver)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),

	progress.NewProgressSink,
)

// ConfigSet provides network resolution and key derivation
var ConfigSet = wire.NewSet(
	wallet.NewHDDeriver,
	wire.Bind(new(config.AccountDeriver), new(*wallet.HDDeriver)),
	ProvideMnemonicValidator,

	config.NewNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*config.NetworkResolver)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClientPool,

	blockchain.NewDeployer,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Deployer)),

	blockchain.NewTransferrer,
	wire.Bind(new(usecase.ValueTransferrer), new(*blockchain.Transferrer)),

	blockchain.NewChecker,
	wire.Bind(new(usecase.BlockchainChecker), new(*blockchain.Checker)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProvideSleep,

	FSSet,
	ContractsSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
