// Package migrations holds the built-in deployment plans of the bounty system.
package migrations

import (
	"sort"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
)

// Names of the built-in plans
const (
	PlanSystem   = "system"
	PlanStorage  = "storage"
	PlanRegistry = "registry"
	PlanDefault  = "default"
)

// System deploys the root ContractSystem.
func System() *domain.Plan {
	return &domain.Plan{
		Name:  PlanSystem,
		Steps: []domain.DeploymentStep{domain.Deploy(domain.ContractSystem)},
	}
}

// Storage deploys ContractStorage against a ContractSystem from the same run.
func Storage() *domain.Plan {
	return &domain.Plan{
		Name: PlanStorage,
		Steps: []domain.DeploymentStep{
			domain.Deploy(domain.ContractStorage, domain.Ref(domain.ContractSystem)),
		},
	}
}

// Registry deploys the DID registry and its linked library.
func Registry() *domain.Plan {
	return &domain.Plan{
		Name: PlanRegistry,
		Steps: []domain.DeploymentStep{
			domain.Deploy(domain.DIDRegistry, domain.Ref(domain.ContractSystem)),
			domain.Deploy(domain.LibDIDRegistry),
		},
	}
}

// Default is the full system: system, storage and registry in that order.
func Default() *domain.Plan {
	plan := &domain.Plan{Name: PlanDefault}
	for _, part := range []*domain.Plan{System(), Storage(), Registry()} {
		plan.Steps = append(plan.Steps, part.Steps...)
	}
	return plan
}

var builtin = map[string]func() *domain.Plan{
	PlanSystem:   System,
	PlanStorage:  Storage,
	PlanRegistry: Registry,
	PlanDefault:  Default,
}

// Lookup returns a fresh copy of the named built-in plan.
func Lookup(name string) (*domain.Plan, bool) {
	build, ok := builtin[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Names lists the built-in plans in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
