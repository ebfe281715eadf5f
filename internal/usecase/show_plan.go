package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
)

// ShowPlanParams contains parameters for inspecting a plan
type ShowPlanParams struct {
	// Plan is a built-in plan name or a plan file; empty selects the configured plan
	Plan string
	// CheckArtifacts also verifies that every contract has a compiled artifact
	CheckArtifacts bool
}

// StepInfo describes one step of a plan
type StepInfo struct {
	Index       int
	Step        domain.DeploymentStep
	DependsOn   []domain.ContractName
	HasArtifact *bool
}

// ShowPlanResult contains a plan and its static lint outcome
type ShowPlanResult struct {
	Plan  *domain.Plan
	Steps []StepInfo
	// Problems lists everything that would stop a run before it submits anything
	Problems []error
}

// Valid reports whether the plan passed every check
func (r *ShowPlanResult) Valid() bool {
	return len(r.Problems) == 0
}

// ShowPlan loads a plan and lints it without touching any network
type ShowPlan struct {
	config    *config.RuntimeConfig
	plans     PlanLoader
	artifacts ArtifactRegistry
}

// NewShowPlan creates a new ShowPlan use case
func NewShowPlan(cfg *config.RuntimeConfig, plans PlanLoader, artifacts ArtifactRegistry) *ShowPlan {
	return &ShowPlan{
		config:    cfg,
		plans:     plans,
		artifacts: artifacts,
	}
}

// Run executes the use case
func (uc *ShowPlan) Run(ctx context.Context, params ShowPlanParams) (*ShowPlanResult, error) {
	ref := params.Plan
	if ref == "" {
		ref = uc.config.PlanPath
	}
	plan, err := uc.plans.LoadPlan(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	result := &ShowPlanResult{Plan: plan, Steps: make([]StepInfo, len(plan.Steps))}
	if err := domain.CheckReferences(plan.Steps); err != nil {
		result.Problems = append(result.Problems, err)
	}

	for i, step := range plan.Steps {
		info := StepInfo{Index: i, Step: step, DependsOn: step.References()}
		if params.CheckArtifacts {
			_, err := uc.artifacts.Lookup(ctx, step.Contract)
			found := err == nil
			info.HasArtifact = &found
			switch {
			case errors.Is(err, domain.ErrArtifactNotFound):
				result.Problems = append(result.Problems, fmt.Errorf("step %d: %w", i, err))
			case err != nil:
				result.Problems = append(result.Problems, fmt.Errorf("step %d: failed to load artifact for %s: %w", i, step.Contract, err))
			}
		}
		result.Steps[i] = info
	}

	return result, nil
}
