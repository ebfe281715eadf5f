package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/ethereum/go-ethereum/common"
)

// RunSetupParams contains parameters for running a setup file
type RunSetupParams struct {
	Path string
	// Network is the network actions run against until a set_network action
	// switches it; empty falls back to the configured network
	Network string
	// ConfirmPublic is asked once per public network before the first deploy or
	// transfer against it. Nil skips the question.
	ConfirmPublic ConfirmFunc
}

// ConfirmFunc asks whether actions may touch network
type ConfirmFunc func(ctx context.Context, network domain.NetworkIdentity) (bool, error)

// RunSetupResult summarizes an executed setup file
type RunSetupResult struct {
	Executed  int
	Network   domain.NetworkIdentity
	Deployed  []domain.DeployedContract
	Transfers []TransferReceipt
}

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// ContextSleep is the SleepFunc used outside of tests
func ContextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RunSetup interprets the closed vocabulary of test-harness setup actions.
// Every action of a file is validated before the first one runs.
type RunSetup struct {
	config      *config.RuntimeConfig
	loader      SetupLoader
	deploy      *DeploySystem
	resolver    NetworkResolver
	transferrer ValueTransferrer
	records     DeploymentRecordStore
	checker     BlockchainChecker
	levels      LogLevelSetter
	sleep       SleepFunc
	progress    ProgressSink
	log         *slog.Logger
}

// NewRunSetup creates a new RunSetup use case
func NewRunSetup(
	cfg *config.RuntimeConfig,
	loader SetupLoader,
	deploy *DeploySystem,
	resolver NetworkResolver,
	transferrer ValueTransferrer,
	records DeploymentRecordStore,
	checker BlockchainChecker,
	levels LogLevelSetter,
	sleep SleepFunc,
	progress ProgressSink,
	log *slog.Logger,
) *RunSetup {
	if sleep == nil {
		sleep = ContextSleep
	}
	return &RunSetup{
		config:      cfg,
		loader:      loader,
		deploy:      deploy,
		resolver:    resolver,
		transferrer: transferrer,
		records:     records,
		checker:     checker,
		levels:      levels,
		sleep:       sleep,
		progress:    progress,
		log:         log.With("component", "run-setup"),
	}
}

// setupState is carried from one action to the next
type setupState struct {
	network   string
	result    *RunSetupResult
	byName    map[domain.NetworkIdentity]map[domain.ContractName]common.Address
	confirm   ConfirmFunc
	confirmed map[domain.NetworkIdentity]bool
}

// Run loads the setup file and executes its actions in order.
func (uc *RunSetup) Run(ctx context.Context, params RunSetupParams) (*RunSetupResult, error) {
	actions, err := uc.loader.LoadSetup(ctx, params.Path)
	if err != nil {
		return nil, err
	}
	return uc.RunActions(ctx, params, actions)
}

// RunActions executes already parsed actions; params.Path is ignored. The
// returned result covers the actions executed before a failure.
func (uc *RunSetup) RunActions(ctx context.Context, params RunSetupParams, actions []domain.SetupAction) (*RunSetupResult, error) {
	for i, action := range actions {
		if err := action.Validate(); err != nil {
			return nil, fmt.Errorf("setup action %d: %w", i, err)
		}
	}

	network := params.Network
	if network == "" {
		network = uc.config.Network
	}
	state := &setupState{
		network:   network,
		result:    &RunSetupResult{},
		byName:    make(map[domain.NetworkIdentity]map[domain.ContractName]common.Address),
		confirm:   params.ConfirmPublic,
		confirmed: make(map[domain.NetworkIdentity]bool),
	}

	for i, action := range actions {
		if err := ctx.Err(); err != nil {
			return state.result, fmt.Errorf("setup cancelled before action %d: %w", i, err)
		}

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   string(action.Kind),
			Current: i + 1,
			Total:   len(actions),
			Message: fmt.Sprintf("Running %s", action.Kind),
		})
		uc.log.Debug("running setup action", "index", i, "kind", action.Kind, "network", state.network)

		if err := uc.dispatch(ctx, state, action); err != nil {
			return state.result, fmt.Errorf("setup action %d (%s): %w", i, action.Kind, err)
		}
		state.result.Executed++
	}

	if id, err := domain.ParseNetworkIdentity(state.network); err == nil {
		state.result.Network = id
	}
	return state.result, nil
}

func (uc *RunSetup) dispatch(ctx context.Context, state *setupState, action domain.SetupAction) error {
	switch action.Kind {
	case domain.SetupSetNetwork:
		id, err := domain.ParseNetworkIdentity(string(action.Network))
		if err != nil {
			return err
		}
		state.network = string(id)
		return nil

	case domain.SetupSetLogLevel:
		if uc.levels == nil {
			return nil
		}
		return uc.levels.SetLevel(action.Level)

	case domain.SetupSleep:
		return uc.sleep(ctx, action.Duration)

	case domain.SetupDeploy:
		if err := uc.confirmNetwork(ctx, state); err != nil {
			return err
		}
		return uc.runDeploy(ctx, state, action)

	case domain.SetupTransfer:
		if err := uc.confirmNetwork(ctx, state); err != nil {
			return err
		}
		return uc.runTransfer(ctx, state, action)

	case domain.SetupAssertDeployed:
		return uc.assertDeployed(ctx, state, action)
	}
	return fmt.Errorf("%w: unknown setup action %q", domain.ErrInvalidPlan, action.Kind)
}

// confirmNetwork asks before the first transaction on a public network.
func (uc *RunSetup) confirmNetwork(ctx context.Context, state *setupState) error {
	id, err := domain.ParseNetworkIdentity(state.network)
	if err != nil || !id.IsPublic() || state.confirm == nil || state.confirmed[id] {
		return nil
	}
	ok, err := state.confirm(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("setup cancelled before touching public network %s", id)
	}
	state.confirmed[id] = true
	return nil
}

func (uc *RunSetup) runDeploy(ctx context.Context, state *setupState, action domain.SetupAction) error {
	result, err := uc.deploy.Run(ctx, DeploySystemParams{Network: state.network, Plan: action.PlanPath})
	if err != nil {
		return err
	}
	for _, dep := range result.Deployed {
		if state.byName[dep.Network] == nil {
			state.byName[dep.Network] = make(map[domain.ContractName]common.Address)
		}
		state.byName[dep.Network][dep.Name] = dep.Address
	}
	state.result.Deployed = append(state.result.Deployed, result.Deployed...)
	return result.Err
}

func (uc *RunSetup) runTransfer(ctx context.Context, state *setupState, action domain.SetupAction) error {
	network, err := uc.resolver.Resolve(state.network)
	if err != nil {
		return err
	}
	from, err := network.Account(action.From)
	if err != nil {
		return err
	}

	to := action.To
	if action.ToRef != "" {
		to, err = uc.lookupAddress(ctx, state, network.Identity, action.ToRef)
		if err != nil {
			return err
		}
	}

	receipt, err := uc.transferrer.Transfer(ctx, TransferRequest{
		Network: network,
		From:    from,
		To:      to,
		Wei:     action.Wei,
	})
	if err != nil {
		return err
	}
	uc.progress.Info(fmt.Sprintf("Transferred %s wei from %s to %s", action.Wei, from.Address.Hex(), to.Hex()))
	state.result.Transfers = append(state.result.Transfers, *receipt)
	return nil
}

func (uc *RunSetup) assertDeployed(ctx context.Context, state *setupState, action domain.SetupAction) error {
	network, err := uc.resolver.Resolve(state.network)
	if err != nil {
		return err
	}
	address, err := uc.lookupAddress(ctx, state, network.Identity, action.Contract)
	if err != nil {
		return err
	}
	hasCode, err := uc.checker.HasCode(ctx, network.EndpointURL, address)
	if err != nil {
		return fmt.Errorf("failed to check code of %s: %w", action.Contract, err)
	}
	if !hasCode {
		return fmt.Errorf("%s is recorded at %s on %s but has no code", action.Contract, address.Hex(), network.Identity)
	}
	return nil
}

// lookupAddress prefers contracts deployed by this setup run over stored records
func (uc *RunSetup) lookupAddress(ctx context.Context, state *setupState, network domain.NetworkIdentity, name domain.ContractName) (common.Address, error) {
	if address, ok := state.byName[network][name]; ok {
		return address, nil
	}
	record, err := uc.records.Find(ctx, network, name)
	if errors.Is(err, domain.ErrNotFound) {
		return common.Address{}, fmt.Errorf("%s has no recorded deployment on %s: %w", name, network, err)
	}
	if err != nil {
		return common.Address{}, err
	}
	return record.Address, nil
}
