package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
)

// RunOptions tunes a single deployment run
type RunOptions struct {
	Policy      domain.RedeployPolicy
	SignerIndex int
}

// RunSequence deploys an ordered list of steps against one network, feeding the
// address of each confirmed contract into the constructor arguments of later
// steps that reference it.
//
// Steps run strictly one after the other. A run is not transactional: when step k
// fails, steps 0..k-1 stay deployed and are returned alongside the error.
// RunSequence does not serialize concurrent runs against the same network and
// signer; callers must.
type RunSequence struct {
	artifacts ArtifactRegistry
	deployer  ContractDeployer
	existing  ExistingDeploymentFinder
	checker   BlockchainChecker
	progress  ProgressSink
	log       *slog.Logger
}

// NewRunSequence creates a new RunSequence use case
func NewRunSequence(
	artifacts ArtifactRegistry,
	deployer ContractDeployer,
	existing ExistingDeploymentFinder,
	checker BlockchainChecker,
	progress ProgressSink,
	log *slog.Logger,
) *RunSequence {
	if progress == nil {
		progress = NopProgress{}
	}
	return &RunSequence{
		artifacts: artifacts,
		deployer:  deployer,
		existing:  existing,
		checker:   checker,
		progress:  progress,
		log:       log.With("component", "run-sequence"),
	}
}

// Run executes steps in declaration order and returns every contract confirmed so
// far. On failure the error is a *domain.DanglingReferenceError, a
// *domain.DeploymentFailureError or the context's error, and the returned slice
// holds the contracts of the steps before the failing one.
func (uc *RunSequence) Run(ctx context.Context, cfg *config.NetworkConfig, steps []domain.DeploymentStep, opts RunOptions) ([]domain.DeployedContract, error) {
	if cfg == nil {
		return nil, &domain.ConfigurationError{Reason: "no network configuration"}
	}
	if cfg.EndpointURL == "" {
		return nil, &domain.ConfigurationError{
			Network: string(cfg.Identity),
			Reason:  fmt.Sprintf("no endpoint configured; set [networks.%s] endpoint in bounty.toml", cfg.Identity),
		}
	}
	signer, err := cfg.Account(opts.SignerIndex)
	if err != nil {
		return nil, err
	}
	policy := opts.Policy
	if policy == "" {
		policy = domain.RedeployAlways
	}

	log := uc.log.With("network", cfg.Identity, "signer", signer.Address.Hex(), "policy", policy)
	log.Info("starting deployment run", "steps", len(steps))

	deployed := make([]domain.DeployedContract, 0, len(steps))
	byName := make(map[domain.ContractName]domain.DeployedContract, len(steps))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			log.Warn("run cancelled", "before_step", i, "contract", step.Contract)
			return deployed, fmt.Errorf("run cancelled before step %d (%s): %w", i, step.Contract, err)
		}

		if _, dup := byName[step.Contract]; dup {
			return deployed, &domain.DeploymentFailureError{
				Step:  step.Contract,
				Index: i,
				Err:   fmt.Errorf("%w: %s was already deployed earlier in this run", domain.ErrInvalidPlan, step.Contract),
			}
		}

		args, err := resolveArgs(i, step, byName)
		if err != nil {
			log.Error("unresolved reference", "step", i, "contract", step.Contract, "error", err)
			uc.progress.Error(err.Error())
			return deployed, err
		}

		contract, err := uc.runStep(ctx, cfg, signer, i, len(steps), step, args, policy)
		if err != nil {
			log.Error("step failed", "step", i, "contract", step.Contract, "error", err)
			uc.progress.OnProgress(ctx, ProgressEvent{
				Stage:   StageFailed,
				Current: i + 1,
				Total:   len(steps),
				Message: fmt.Sprintf("%s failed", step.Contract),
			})
			return deployed, &domain.DeploymentFailureError{Step: step.Contract, Index: i, Err: err}
		}

		deployed = append(deployed, contract)
		byName[step.Contract] = contract
		log.Info("step confirmed",
			"step", i,
			"contract", step.Contract,
			"address", contract.Address.Hex(),
			"reused", contract.Reused,
		)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Current: len(steps),
		Total:   len(steps),
		Message: fmt.Sprintf("Deployed %d contracts to %s", len(deployed), cfg.Identity),
	})
	return deployed, nil
}

func (uc *RunSequence) runStep(
	ctx context.Context,
	cfg *config.NetworkConfig,
	signer config.Account,
	index, total int,
	step domain.DeploymentStep,
	args []any,
	policy domain.RedeployPolicy,
) (domain.DeployedContract, error) {
	if policy == domain.RedeploySkipExisting {
		contract, ok, err := uc.reuse(ctx, cfg, step.Contract)
		if err != nil {
			return domain.DeployedContract{}, err
		}
		if ok {
			uc.progress.OnProgress(ctx, ProgressEvent{
				Stage:   StageReusing,
				Current: index + 1,
				Total:   total,
				Message: fmt.Sprintf("Reusing %s at %s", step.Contract, contract.Address.Hex()),
			})
			return contract, nil
		}
	}

	artifact, err := uc.artifacts.Lookup(ctx, step.Contract)
	if err != nil {
		return domain.DeployedContract{}, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageDeploying,
		Current: index + 1,
		Total:   total,
		Message: fmt.Sprintf("Deploying %s", step),
		Spinner: true,
	})

	receipt, err := uc.deployer.Deploy(ctx, DeployRequest{
		Network:  cfg,
		Signer:   signer,
		Contract: step.Contract,
		Artifact: artifact,
		Args:     args,
	})
	if err != nil {
		return domain.DeployedContract{}, err
	}

	return domain.DeployedContract{
		Name:        step.Contract,
		Address:     receipt.Address,
		Network:     cfg.Identity,
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber,
	}, nil
}

// reuse looks for an earlier deployment of name whose on-chain code is the
// artifact's runtime code. See models.Artifact.MatchesRuntime for the comparison.
func (uc *RunSequence) reuse(ctx context.Context, cfg *config.NetworkConfig, name domain.ContractName) (domain.DeployedContract, bool, error) {
	if uc.existing == nil || uc.checker == nil {
		return domain.DeployedContract{}, false, nil
	}

	existing, err := uc.existing.FindExisting(ctx, cfg, name)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DeployedContract{}, false, nil
	}
	if err != nil {
		return domain.DeployedContract{}, false, fmt.Errorf("failed to look up existing deployment: %w", err)
	}

	artifact, err := uc.artifacts.Lookup(ctx, name)
	if err != nil {
		return domain.DeployedContract{}, false, err
	}

	code, err := uc.checker.CodeAt(ctx, cfg.EndpointURL, existing.Address)
	if err != nil {
		return domain.DeployedContract{}, false, fmt.Errorf("failed to verify existing deployment at %s: %w", existing.Address.Hex(), err)
	}
	log := uc.log.With("contract", name, "address", existing.Address.Hex(), "source", existing.Source)
	switch {
	case len(code) == 0:
		log.Warn("recorded deployment has no code, redeploying")
		return domain.DeployedContract{}, false, nil
	case !artifact.MatchesRuntime(code):
		log.Warn("code at recorded deployment does not match the artifact, redeploying")
		return domain.DeployedContract{}, false, nil
	}

	return domain.DeployedContract{
		Name:    name,
		Address: existing.Address,
		Network: cfg.Identity,
		TxHash:  existing.TxHash,
		Reused:  true,
	}, true, nil
}

// resolveArgs substitutes references with the addresses confirmed earlier in the run.
func resolveArgs(index int, step domain.DeploymentStep, byName map[domain.ContractName]domain.DeployedContract) ([]any, error) {
	args := make([]any, len(step.Args))
	for i, arg := range step.Args {
		if arg.Kind != domain.ArgReference {
			args[i] = arg.Value
			continue
		}
		dep, ok := byName[arg.Ref]
		if !ok {
			return nil, &domain.DanglingReferenceError{Step: step.Contract, Index: index, Reference: arg.Ref}
		}
		args[i] = dep.Address
	}
	return args, nil
}
