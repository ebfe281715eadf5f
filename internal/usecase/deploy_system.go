package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
)

// DeploySystemParams contains parameters for deploying the contract system
type DeploySystemParams struct {
	// Network overrides the configured network when set
	Network string
	// Plan is a built-in plan name or a plan file; empty selects the configured plan
	Plan string
	// Policy overrides the configured redeploy policy when set
	Policy domain.RedeployPolicy
}

// DeployResult is the outcome of a deploy-system run. Deployed holds every
// contract confirmed before a failure, so it is meaningful even when Err is set.
type DeployResult struct {
	Network    *config.NetworkConfig
	Plan       *domain.Plan
	Deployed   []domain.DeployedContract
	FailedStep *FailedStep
	Err        error
}

// FailedStep identifies the step a run stopped at
type FailedStep struct {
	Index    int                 `json:"index"`
	Contract domain.ContractName `json:"contract"`
}

// DeploySystem resolves a network, loads a plan, runs it and persists the result.
type DeploySystem struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
	plans    PlanLoader
	runner   *RunSequence
	records  DeploymentRecordStore
	progress ProgressSink
	log      *slog.Logger
}

// NewDeploySystem creates a new DeploySystem use case
func NewDeploySystem(
	cfg *config.RuntimeConfig,
	resolver NetworkResolver,
	plans PlanLoader,
	runner *RunSequence,
	records DeploymentRecordStore,
	progress ProgressSink,
	log *slog.Logger,
) *DeploySystem {
	return &DeploySystem{
		config:   cfg,
		resolver: resolver,
		plans:    plans,
		runner:   runner,
		records:  records,
		progress: progress,
		log:      log.With("component", "deploy-system"),
	}
}

// Run executes the use case. Errors that prevent the run from starting are
// returned directly; errors raised by the run itself are reported in the result
// together with the partial output.
func (uc *DeploySystem) Run(ctx context.Context, params DeploySystemParams) (*DeployResult, error) {
	networkName := params.Network
	if networkName == "" {
		networkName = uc.config.Network
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Message: fmt.Sprintf("Resolving network %s", networkName),
		Spinner: true,
	})

	network, err := uc.resolver.Resolve(networkName)
	if err != nil {
		return nil, err
	}

	planRef := params.Plan
	if planRef == "" {
		planRef = uc.config.PlanPath
	}
	plan, err := uc.plans.LoadPlan(ctx, planRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	policy := params.Policy
	if policy == "" {
		policy = uc.config.RedeployPolicy
	}

	deployed, runErr := uc.runner.Run(ctx, network, plan.Steps, RunOptions{
		Policy:      policy,
		SignerIndex: uc.config.SignerIndex,
	})

	result := &DeployResult{
		Network:  network,
		Plan:     plan,
		Deployed: deployed,
		Err:      runErr,
	}
	if name, index, ok := domain.FailedStep(runErr); ok {
		result.FailedStep = &FailedStep{Index: index, Contract: name}
	}

	// Partial output is persisted as well; those contracts exist on-chain.
	if len(deployed) > 0 {
		if err := uc.records.Save(ctx, network.Identity, network.ChainID, deployed); err != nil {
			uc.log.Error("failed to persist deployment records", "network", network.Identity, "error", err)
			if runErr == nil {
				return result, fmt.Errorf("deployment succeeded but records could not be saved: %w", err)
			}
		}
	}

	return result, nil
}
