package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type deploySystemFixture struct {
	cfg      *config.RuntimeConfig
	resolver *MockNetworkResolver
	plans    *MockPlanLoader
	records  *MockDeploymentRecordStore
	deployer *fakeDeployer
	uc       *usecase.DeploySystem
}

func newDeploySystemFixture(cfg *config.RuntimeConfig) *deploySystemFixture {
	f := &deploySystemFixture{
		cfg:      cfg,
		resolver: &MockNetworkResolver{},
		plans:    &MockPlanLoader{},
		records:  &MockDeploymentRecordStore{},
		deployer: newFakeDeployer(),
	}
	runner := usecase.NewRunSequence(stubArtifacts{}, f.deployer, nil, nil, nil, discardLogger())
	f.uc = usecase.NewDeploySystem(cfg, f.resolver, f.plans, runner, f.records, usecase.NopProgress{}, discardLogger())
	return f
}

func systemPlan() *domain.Plan {
	return &domain.Plan{
		Name: "default",
		Steps: []domain.DeploymentStep{
			domain.Deploy(domain.ContractSystem),
			domain.Deploy(domain.ContractStorage, domain.Ref(domain.ContractSystem)),
			domain.Deploy(domain.DIDRegistry, domain.Ref(domain.ContractSystem)),
			domain.Deploy(domain.LibDIDRegistry),
		},
	}
}

func TestDeploySystem_Success(t *testing.T) {
	f := newDeploySystemFixture(&config.RuntimeConfig{Network: "ganache", RedeployPolicy: domain.RedeployAlways})
	network := testNetwork(domain.NetworkGanache, 10)
	network.ChainID = 1337

	f.resolver.On("Resolve", "ganache").Return(network, nil)
	f.plans.On("LoadPlan", mock.Anything, "").Return(systemPlan(), nil)
	f.records.On("Save", mock.Anything, domain.NetworkGanache, uint64(1337), mock.MatchedBy(func(c []domain.DeployedContract) bool {
		return len(c) == 4
	})).Return(nil)

	result, err := f.uc.Run(context.Background(), usecase.DeploySystemParams{})
	require.NoError(t, err)
	require.NoError(t, result.Err)

	assert.Nil(t, result.FailedStep)
	assert.Len(t, result.Deployed, 4)
	assert.Equal(t, "default", result.Plan.Name)
	assert.Equal(t, []domain.ContractName{
		domain.ContractSystem,
		domain.ContractStorage,
		domain.DIDRegistry,
		domain.LibDIDRegistry,
	}, f.deployer.contracts())

	f.resolver.AssertExpectations(t)
	f.plans.AssertExpectations(t)
	f.records.AssertExpectations(t)
}

func TestDeploySystem_ParamsOverrideConfig(t *testing.T) {
	f := newDeploySystemFixture(&config.RuntimeConfig{Network: "ganache", PlanPath: "/project/plan.yaml"})

	f.resolver.On("Resolve", "develop").Return(testNetwork(domain.NetworkDevelop, 1), nil)
	f.plans.On("LoadPlan", mock.Anything, "registry").Return(&domain.Plan{
		Name:  "registry",
		Steps: []domain.DeploymentStep{domain.Deploy(domain.LibDIDRegistry)},
	}, nil)
	f.records.On("Save", mock.Anything, domain.NetworkDevelop, uint64(0), mock.Anything).Return(nil)

	result, err := f.uc.Run(context.Background(), usecase.DeploySystemParams{Network: "develop", Plan: "registry"})
	require.NoError(t, err)
	assert.Len(t, result.Deployed, 1)
	f.resolver.AssertExpectations(t)
}

func TestDeploySystem_PersistsPartialOutput(t *testing.T) {
	f := newDeploySystemFixture(&config.RuntimeConfig{Network: "ganache"})
	f.deployer.failOn[domain.DIDRegistry] = errors.New("out of gas")

	f.resolver.On("Resolve", "ganache").Return(testNetwork(domain.NetworkGanache, 10), nil)
	f.plans.On("LoadPlan", mock.Anything, "").Return(systemPlan(), nil)
	f.records.On("Save", mock.Anything, domain.NetworkGanache, uint64(0), mock.MatchedBy(func(c []domain.DeployedContract) bool {
		return len(c) == 2 && c[0].Name == domain.ContractSystem && c[1].Name == domain.ContractStorage
	})).Return(nil)

	result, err := f.uc.Run(context.Background(), usecase.DeploySystemParams{})
	require.NoError(t, err)
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, domain.ErrDeploymentFailure)

	require.NotNil(t, result.FailedStep)
	assert.Equal(t, 2, result.FailedStep.Index)
	assert.Equal(t, domain.DIDRegistry, result.FailedStep.Contract)
	assert.Len(t, result.Deployed, 2)
	f.records.AssertExpectations(t)
}

func TestDeploySystem_ResolveFailureStopsEarly(t *testing.T) {
	f := newDeploySystemFixture(&config.RuntimeConfig{Network: "mainnet"})
	f.resolver.On("Resolve", "mainnet").Return(nil, &domain.ConfigurationError{Network: "mainnet", Reason: "unknown network"})

	result, err := f.uc.Run(context.Background(), usecase.DeploySystemParams{})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	f.plans.AssertNotCalled(t, "LoadPlan", mock.Anything, mock.Anything)
	f.records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.deployer.requests)
}

func TestDeploySystem_NothingDeployedNothingSaved(t *testing.T) {
	f := newDeploySystemFixture(&config.RuntimeConfig{Network: "ganache"})
	f.deployer.failOn[domain.ContractSystem] = errors.New("nonce too low")

	f.resolver.On("Resolve", "ganache").Return(testNetwork(domain.NetworkGanache, 10), nil)
	f.plans.On("LoadPlan", mock.Anything, "").Return(systemPlan(), nil)

	result, err := f.uc.Run(context.Background(), usecase.DeploySystemParams{})
	require.NoError(t, err)
	assert.Error(t, result.Err)
	assert.Empty(t, result.Deployed)
	f.records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeploySystem_SaveFailureAfterSuccess(t *testing.T) {
	f := newDeploySystemFixture(&config.RuntimeConfig{Network: "ganache"})

	f.resolver.On("Resolve", "ganache").Return(testNetwork(domain.NetworkGanache, 10), nil)
	f.plans.On("LoadPlan", mock.Anything, "").Return(systemPlan(), nil)
	f.records.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	result, err := f.uc.Run(context.Background(), usecase.DeploySystemParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	require.NotNil(t, result)
	assert.Len(t, result.Deployed, 4)
}
