package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/models"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testNetwork builds a resolved network with n fake accounts
func testNetwork(id domain.NetworkIdentity, n int) *config.NetworkConfig {
	accounts := make([]config.Account, n)
	for i := range accounts {
		accounts[i] = config.Account{Index: i, Address: common.HexToAddress(fmt.Sprintf("0x%040x", 0xacc0+i))}
	}
	return &config.NetworkConfig{
		Identity:        id,
		EndpointURL:     "http://127.0.0.1:8545",
		DerivationCount: n,
		Accounts:        accounts,
	}
}

// MockArtifactRegistry is a mock implementation of ArtifactRegistry
type MockArtifactRegistry struct {
	mock.Mock
}

func (m *MockArtifactRegistry) Lookup(ctx context.Context, name domain.ContractName) (*models.Artifact, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

// stubArtifacts serves an empty artifact for every name
type stubArtifacts struct{}

func (stubArtifacts) Lookup(_ context.Context, name domain.ContractName) (*models.Artifact, error) {
	return &models.Artifact{ContractName: string(name)}, nil
}

// MockContractDeployer is a mock implementation of ContractDeployer
type MockContractDeployer struct {
	mock.Mock
}

func (m *MockContractDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DeployReceipt), args.Error(1)
}

// fakeDeployer assigns sequential addresses and records every request in order
type fakeDeployer struct {
	mu       sync.Mutex
	requests []usecase.DeployRequest
	failOn   map[domain.ContractName]error
	next     int64
}

func newFakeDeployer() *fakeDeployer {
	return &fakeDeployer{failOn: map[domain.ContractName]error{}, next: 0x1000}
}

func (d *fakeDeployer) Deploy(_ context.Context, req usecase.DeployRequest) (*usecase.DeployReceipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests = append(d.requests, req)
	if err, ok := d.failOn[req.Contract]; ok {
		return nil, err
	}
	d.next++
	return &usecase.DeployReceipt{
		Address:     common.HexToAddress(fmt.Sprintf("0x%040x", d.next)),
		TxHash:      common.HexToHash(fmt.Sprintf("0x%064x", d.next)),
		BlockNumber: uint64(len(d.requests)),
	}, nil
}

func (d *fakeDeployer) contracts() []domain.ContractName {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]domain.ContractName, len(d.requests))
	for i, req := range d.requests {
		names[i] = req.Contract
	}
	return names
}

// MockExistingDeploymentFinder is a mock implementation of ExistingDeploymentFinder
type MockExistingDeploymentFinder struct {
	mock.Mock
}

func (m *MockExistingDeploymentFinder) FindExisting(ctx context.Context, network *config.NetworkConfig, name domain.ContractName) (*usecase.ExistingDeployment, error) {
	args := m.Called(ctx, network, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ExistingDeployment), args.Error(1)
}

// MockBlockchainChecker is a mock implementation of BlockchainChecker
type MockBlockchainChecker struct {
	mock.Mock
}

func (m *MockBlockchainChecker) HasCode(ctx context.Context, endpoint string, address common.Address) (bool, error) {
	args := m.Called(ctx, endpoint, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockchainChecker) CodeAt(ctx context.Context, endpoint string, address common.Address) ([]byte, error) {
	args := m.Called(ctx, endpoint, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockDeploymentRecordStore is a mock implementation of DeploymentRecordStore
type MockDeploymentRecordStore struct {
	mock.Mock
}

func (m *MockDeploymentRecordStore) Save(ctx context.Context, network domain.NetworkIdentity, chainID uint64, contracts []domain.DeployedContract) error {
	args := m.Called(ctx, network, chainID, contracts)
	return args.Error(0)
}

func (m *MockDeploymentRecordStore) Load(ctx context.Context, network domain.NetworkIdentity) (*models.DeploymentRecordFile, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecordFile), args.Error(1)
}

func (m *MockDeploymentRecordStore) Find(ctx context.Context, network domain.NetworkIdentity, name domain.ContractName) (*models.DeploymentRecord, error) {
	args := m.Called(ctx, network, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

func (m *MockDeploymentRecordStore) Delete(ctx context.Context, network domain.NetworkIdentity) error {
	args := m.Called(ctx, network)
	return args.Error(0)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) Resolve(identity string) (*config.NetworkConfig, error) {
	args := m.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.NetworkConfig), args.Error(1)
}

func (m *MockNetworkResolver) Describe() []config.NetworkSpec {
	args := m.Called()
	return args.Get(0).([]config.NetworkSpec)
}

// MockPlanLoader is a mock implementation of PlanLoader
type MockPlanLoader struct {
	mock.Mock
}

func (m *MockPlanLoader) LoadPlan(ctx context.Context, ref string) (*domain.Plan, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

func (m *MockProgressSink) stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	stages := make([]string, len(m.events))
	for i, e := range m.events {
		stages[i] = e.Stage
	}
	return stages
}
