package usecase

import (
	"context"
	"math/big"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// NetworkResolver resolves a network identity to connection and signing material
type NetworkResolver interface {
	Resolve(identity string) (*config.NetworkConfig, error)
	Describe() []config.NetworkSpec
}

// ArtifactRegistry provides compiled contracts by name
type ArtifactRegistry interface {
	Lookup(ctx context.Context, name domain.ContractName) (*models.Artifact, error)
}

// DeployRequest is a single contract creation. Args are already resolved:
// references have been replaced by addresses, literals are raw values that the
// deployer coerces to the constructor's ABI types.
type DeployRequest struct {
	Network  *config.NetworkConfig
	Signer   config.Account
	Contract domain.ContractName
	Artifact *models.Artifact
	Args     []any
}

// DeployReceipt is the confirmed outcome of a DeployRequest
type DeployReceipt struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
}

// ContractDeployer submits contract creations and waits for their confirmation
type ContractDeployer interface {
	Deploy(ctx context.Context, req DeployRequest) (*DeployReceipt, error)
}

// TransferRequest moves native value between accounts
type TransferRequest struct {
	Network *config.NetworkConfig
	From    config.Account
	To      common.Address
	Wei     *big.Int
}

// TransferReceipt is the confirmed outcome of a TransferRequest
type TransferReceipt struct {
	TxHash      common.Hash
	BlockNumber uint64
}

// ValueTransferrer sends plain value transfers
type ValueTransferrer interface {
	Transfer(ctx context.Context, req TransferRequest) (*TransferReceipt, error)
}

// BlockchainChecker inspects on-chain state
type BlockchainChecker interface {
	HasCode(ctx context.Context, endpoint string, address common.Address) (bool, error)
	CodeAt(ctx context.Context, endpoint string, address common.Address) ([]byte, error)
}

// ExistingDeployment is a deployment of a contract made by an earlier run
type ExistingDeployment struct {
	Address common.Address
	TxHash  common.Hash
	// Source names where the address was found ("records" or "artifact")
	Source string
}

// ExistingDeploymentFinder locates an earlier deployment of a contract on a network.
// It returns domain.ErrNotFound when there is none.
type ExistingDeploymentFinder interface {
	FindExisting(ctx context.Context, network *config.NetworkConfig, name domain.ContractName) (*ExistingDeployment, error)
}

// DeploymentRecordStore persists the output of deployment runs per network
type DeploymentRecordStore interface {
	Save(ctx context.Context, network domain.NetworkIdentity, chainID uint64, contracts []domain.DeployedContract) error
	Load(ctx context.Context, network domain.NetworkIdentity) (*models.DeploymentRecordFile, error)
	Find(ctx context.Context, network domain.NetworkIdentity, name domain.ContractName) (*models.DeploymentRecord, error)
	Delete(ctx context.Context, network domain.NetworkIdentity) error
}

// PlanLoader loads a deployment plan. An empty reference or the name of a
// built-in plan selects that plan, anything else is read as a plan file.
type PlanLoader interface {
	LoadPlan(ctx context.Context, ref string) (*domain.Plan, error)
}

// SetupLoader reads and validates a setup file
type SetupLoader interface {
	LoadSetup(ctx context.Context, path string) ([]domain.SetupAction, error)
}

// LogLevelSetter changes the process log level at runtime
type LogLevelSetter interface {
	SetLevel(level string) error
}

// LocalConfigStore handles persistence of the local configuration
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Progress stages reported by deployment runs
const (
	StageResolving = "resolving"
	StageDeploying = "deploying"
	StageReusing   = "reusing"
	StageCompleted = "completed"
	StageFailed    = "failed"
)

// InteractiveSelector asks the operator when a command is missing a decision
type InteractiveSelector interface {
	SelectNetwork(ctx context.Context, networks []config.NetworkSpec, prompt string) (domain.NetworkIdentity, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
}
