package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/models"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRunSequence(deployer usecase.ContractDeployer, progress usecase.ProgressSink) *usecase.RunSequence {
	return usecase.NewRunSequence(stubArtifacts{}, deployer, nil, nil, progress, discardLogger())
}

func TestRunSequence_SubstitutesReferences(t *testing.T) {
	deployer := newFakeDeployer()
	progress := &MockProgressSink{}
	uc := newRunSequence(deployer, progress)

	steps := []domain.DeploymentStep{
		domain.Deploy("A"),
		domain.Deploy("B", domain.Ref("A")),
		domain.Deploy("C", domain.Ref("A"), domain.Ref("B")),
	}

	deployed, err := uc.Run(context.Background(), testNetwork(domain.NetworkGanache, 10), steps, usecase.RunOptions{})
	require.NoError(t, err)
	require.Len(t, deployed, 3)

	assert.Equal(t, []domain.ContractName{"A", "B", "C"}, deployer.contracts())
	for i, dep := range deployed {
		assert.Equal(t, steps[i].Contract, dep.Name)
		assert.Equal(t, domain.NetworkGanache, dep.Network)
		assert.False(t, dep.Reused)
	}

	addrA, addrB := deployed[0].Address, deployed[1].Address
	assert.Empty(t, deployer.requests[0].Args)
	assert.Equal(t, []any{addrA}, deployer.requests[1].Args)
	assert.Equal(t, []any{addrA, addrB}, deployer.requests[2].Args)

	// Completion follows one deploying event per step
	assert.Equal(t, []string{
		usecase.StageDeploying,
		usecase.StageDeploying,
		usecase.StageDeploying,
		usecase.StageCompleted,
	}, progress.stages())
}

func TestRunSequence_LiteralsPassThrough(t *testing.T) {
	deployer := newFakeDeployer()
	uc := newRunSequence(deployer, nil)

	steps := []domain.DeploymentStep{
		domain.Deploy(domain.ContractSystem),
		domain.Deploy("Token", domain.Literal("Bounty"), domain.Ref(domain.ContractSystem), domain.Literal(18)),
	}

	deployed, err := uc.Run(context.Background(), testNetwork(domain.NetworkDevelop, 1), steps, usecase.RunOptions{})
	require.NoError(t, err)
	require.Len(t, deployed, 2)
	assert.Equal(t, []any{"Bounty", deployed[0].Address, 18}, deployer.requests[1].Args)
}

func TestRunSequence_UsesSelectedSigner(t *testing.T) {
	deployer := newFakeDeployer()
	uc := newRunSequence(deployer, nil)
	network := testNetwork(domain.NetworkGanache, 3)

	_, err := uc.Run(context.Background(), network, []domain.DeploymentStep{domain.Deploy("A")}, usecase.RunOptions{SignerIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, network.Accounts[2].Address, deployer.requests[0].Signer.Address)
	assert.Same(t, network, deployer.requests[0].Network)
}

func TestRunSequence_DanglingReference(t *testing.T) {
	deployer := newFakeDeployer()
	progress := &MockProgressSink{}
	uc := newRunSequence(deployer, progress)

	steps := []domain.DeploymentStep{
		domain.Deploy("A"),
		domain.Deploy("B", domain.Ref("ZZZ")),
		domain.Deploy("C"),
	}

	deployed, err := uc.Run(context.Background(), testNetwork(domain.NetworkGanache, 10), steps, usecase.RunOptions{})
	require.Error(t, err)

	var dangling *domain.DanglingReferenceError
	require.True(t, errors.As(err, &dangling))
	assert.Equal(t, domain.ContractName("B"), dangling.Step)
	assert.Equal(t, 1, dangling.Index)
	assert.Equal(t, domain.ContractName("ZZZ"), dangling.Reference)
	assert.ErrorIs(t, err, domain.ErrDanglingReference)

	// A is confirmed and returned, B is never submitted
	require.Len(t, deployed, 1)
	assert.Equal(t, domain.ContractName("A"), deployed[0].Name)
	assert.Equal(t, []domain.ContractName{"A"}, deployer.contracts())
	assert.Len(t, progress.errors, 1)

	step, index, ok := domain.FailedStep(err)
	assert.True(t, ok)
	assert.Equal(t, domain.ContractName("B"), step)
	assert.Equal(t, 1, index)
}

func TestRunSequence_ReferenceToLaterStepIsDangling(t *testing.T) {
	deployer := newFakeDeployer()
	uc := newRunSequence(deployer, nil)

	steps := []domain.DeploymentStep{
		domain.Deploy("A", domain.Ref("B")),
		domain.Deploy("B"),
	}

	deployed, err := uc.Run(context.Background(), testNetwork(domain.NetworkGanache, 1), steps, usecase.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrDanglingReference)
	assert.Empty(t, deployed)
	assert.Empty(t, deployer.requests)
}

func TestRunSequence_RejectedStepStopsRun(t *testing.T) {
	rejection := errors.New("transaction reverted")

	tests := []struct {
		name      string
		failOn    domain.ContractName
		wantIndex int
		wantNames []domain.ContractName
	}{
		{name: "first step", failOn: "A", wantIndex: 0, wantNames: nil},
		{name: "middle step", failOn: "B", wantIndex: 1, wantNames: []domain.ContractName{"A"}},
		{name: "last step", failOn: "C", wantIndex: 2, wantNames: []domain.ContractName{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deployer := newFakeDeployer()
			deployer.failOn[tt.failOn] = rejection
			progress := &MockProgressSink{}
			uc := newRunSequence(deployer, progress)

			steps := []domain.DeploymentStep{
				domain.Deploy("A"),
				domain.Deploy("B", domain.Ref("A")),
				domain.Deploy("C", domain.Ref("B")),
			}

			deployed, err := uc.Run(context.Background(), testNetwork(domain.NetworkGanache, 10), steps, usecase.RunOptions{})
			require.Error(t, err)

			var failure *domain.DeploymentFailureError
			require.True(t, errors.As(err, &failure))
			assert.Equal(t, tt.failOn, failure.Step)
			assert.Equal(t, tt.wantIndex, failure.Index)
			assert.ErrorIs(t, err, rejection)
			assert.ErrorIs(t, err, domain.ErrDeploymentFailure)

			names := make([]domain.ContractName, 0, len(deployed))
			for _, dep := range deployed {
				names = append(names, dep.Name)
			}
			assert.Equal(t, len(tt.wantNames), len(names))
			for i := range tt.wantNames {
				assert.Equal(t, tt.wantNames[i], names[i])
			}

			// Nothing after the failing step was attempted
			assert.Len(t, deployer.requests, tt.wantIndex+1)
			assert.Contains(t, progress.stages(), usecase.StageFailed)
			assert.NotContains(t, progress.stages(), usecase.StageCompleted)
		})
	}
}

func TestRunSequence_ArtifactMissing(t *testing.T) {
	artifacts := &MockArtifactRegistry{}
	artifacts.On("Lookup", mock.Anything, domain.ContractName("A")).Return(nil, domain.ErrArtifactNotFound)
	deployer := &MockContractDeployer{}

	uc := usecase.NewRunSequence(artifacts, deployer, nil, nil, nil, discardLogger())

	deployed, err := uc.Run(context.Background(), testNetwork(domain.NetworkGanache, 1), []domain.DeploymentStep{domain.Deploy("A")}, usecase.RunOptions{})
	assert.Empty(t, deployed)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	assert.ErrorIs(t, err, domain.ErrDeploymentFailure)
	deployer.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
	artifacts.AssertExpectations(t)
}

func TestRunSequence_DuplicateContract(t *testing.T) {
	deployer := newFakeDeployer()
	uc := newRunSequence(deployer, nil)

	steps := []domain.DeploymentStep{domain.Deploy("A"), domain.Deploy("A")}

	deployed, err := uc.Run(context.Background(), testNetwork(domain.NetworkGanache, 1), steps, usecase.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)
	assert.ErrorIs(t, err, domain.ErrDeploymentFailure)
	assert.Len(t, deployed, 1)
	assert.Len(t, deployer.requests, 1)
}

// cancellingDeployer cancels the run's context once the named contract is confirmed
type cancellingDeployer struct {
	*fakeDeployer
	after  domain.ContractName
	cancel context.CancelFunc
}

func (d *cancellingDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployReceipt, error) {
	receipt, err := d.fakeDeployer.Deploy(ctx, req)
	if req.Contract == d.after {
		d.cancel()
	}
	return receipt, err
}

func TestRunSequence_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deployer := &cancellingDeployer{fakeDeployer: newFakeDeployer(), after: "A", cancel: cancel}
	uc := newRunSequence(deployer, nil)

	steps := []domain.DeploymentStep{
		domain.Deploy("A"),
		domain.Deploy("B", domain.Ref("A")),
	}

	deployed, err := uc.Run(ctx, testNetwork(domain.NetworkGanache, 1), steps, usecase.RunOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, deployed, 1)
	assert.Equal(t, domain.ContractName("A"), deployed[0].Name)
	assert.Equal(t, []domain.ContractName{"A"}, deployer.contracts())
}

func TestRunSequence_ConfigurationErrors(t *testing.T) {
	t.Run("signer out of range", func(t *testing.T) {
		deployer := newFakeDeployer()
		uc := newRunSequence(deployer, nil)

		_, err := uc.Run(context.Background(), testNetwork(domain.NetworkGanache, 2), []domain.DeploymentStep{domain.Deploy("A")}, usecase.RunOptions{SignerIndex: 2})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Empty(t, deployer.requests)
	})

	t.Run("placeholder endpoint", func(t *testing.T) {
		deployer := newFakeDeployer()
		uc := newRunSequence(deployer, nil)
		network := testNetwork(domain.NetworkCoverage, 1)
		network.EndpointURL = ""
		network.EndpointPlaceholder = true

		_, err := uc.Run(context.Background(), network, []domain.DeploymentStep{domain.Deploy("A")}, usecase.RunOptions{})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Contains(t, err.Error(), "[networks.coverage]")
		assert.Empty(t, deployer.requests)
	})
}

func TestRunSequence_SkipExisting(t *testing.T) {
	recorded := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	stale := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	network := testNetwork(domain.NetworkDevelop, 1)

	existing := &MockExistingDeploymentFinder{}
	existing.On("FindExisting", mock.Anything, network, domain.ContractName("A")).
		Return(&usecase.ExistingDeployment{Address: recorded, Source: "records"}, nil)
	existing.On("FindExisting", mock.Anything, network, domain.ContractName("B")).
		Return(&usecase.ExistingDeployment{Address: stale, Source: "artifact"}, nil)
	existing.On("FindExisting", mock.Anything, network, domain.ContractName("C")).
		Return(nil, domain.ErrNotFound)

	checker := &MockBlockchainChecker{}
	checker.On("CodeAt", mock.Anything, network.EndpointURL, recorded).Return([]byte{0x60, 0x2a}, nil)
	checker.On("CodeAt", mock.Anything, network.EndpointURL, stale).Return([]byte{}, nil)

	deployer := newFakeDeployer()
	progress := &MockProgressSink{}
	uc := usecase.NewRunSequence(stubArtifacts{}, deployer, existing, checker, progress, discardLogger())

	steps := []domain.DeploymentStep{
		domain.Deploy("A"),
		domain.Deploy("B", domain.Ref("A")),
		domain.Deploy("C", domain.Ref("B")),
	}

	deployed, err := uc.Run(context.Background(), network, steps, usecase.RunOptions{Policy: domain.RedeploySkipExisting})
	require.NoError(t, err)
	require.Len(t, deployed, 3)

	assert.True(t, deployed[0].Reused)
	assert.Equal(t, recorded, deployed[0].Address)
	assert.False(t, deployed[1].Reused)
	assert.False(t, deployed[2].Reused)

	// The reused address is what later steps receive
	assert.Equal(t, []domain.ContractName{"B", "C"}, deployer.contracts())
	assert.Equal(t, []any{recorded}, deployer.requests[0].Args)
	assert.Equal(t, []any{deployed[1].Address}, deployer.requests[1].Args)
	assert.Equal(t, usecase.StageReusing, progress.stages()[0])

	existing.AssertExpectations(t)
	checker.AssertExpectations(t)
}

func TestRunSequence_AlwaysPolicyIgnoresExisting(t *testing.T) {
	existing := &MockExistingDeploymentFinder{}
	checker := &MockBlockchainChecker{}
	deployer := newFakeDeployer()
	uc := usecase.NewRunSequence(stubArtifacts{}, deployer, existing, checker, nil, discardLogger())

	deployed, err := uc.Run(context.Background(), testNetwork(domain.NetworkGanache, 1), []domain.DeploymentStep{domain.Deploy("A")}, usecase.RunOptions{Policy: domain.RedeployAlways})
	require.NoError(t, err)
	require.Len(t, deployed, 1)
	existing.AssertNotCalled(t, "FindExisting", mock.Anything, mock.Anything, mock.Anything)
	checker.AssertNotCalled(t, "CodeAt", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunSequence_SkipExistingComparesRuntimeCode(t *testing.T) {
	recorded := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	returns42 := common.FromHex("0x602a60005260206000f3")
	returns7 := common.FromHex("0x600760005260206000f3")
	withImmutable := common.FromHex("0x7f" + strings.Repeat("11", 32) + "00")

	tests := []struct {
		name     string
		artifact *models.Artifact
		onChain  []byte
		reused   bool
	}{
		{
			name:     "same runtime code",
			artifact: &models.Artifact{ContractName: "ContractSystem", DeployedBytecode: returns42},
			onChain:  returns42,
			reused:   true,
		},
		{
			name:     "different contract at the address",
			artifact: &models.Artifact{ContractName: "ContractSystem", DeployedBytecode: returns7},
			onChain:  returns42,
			reused:   false,
		},
		{
			name:     "different length",
			artifact: &models.Artifact{ContractName: "ContractSystem", DeployedBytecode: returns42[:8]},
			onChain:  returns42,
			reused:   false,
		},
		{
			name: "immutable slot differs",
			artifact: &models.Artifact{
				ContractName:     "ContractSystem",
				DeployedBytecode: common.FromHex("0x7f" + strings.Repeat("00", 32) + "00"),
				Unfixed:          []models.ByteRange{{Start: 1, Length: 32}},
			},
			onChain: withImmutable,
			reused:  true,
		},
		{
			name:     "no runtime code in artifact",
			artifact: &models.Artifact{ContractName: "ContractSystem"},
			onChain:  returns42,
			reused:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network := testNetwork(domain.NetworkDevelop, 1)

			existing := &MockExistingDeploymentFinder{}
			existing.On("FindExisting", mock.Anything, network, domain.ContractSystem).
				Return(&usecase.ExistingDeployment{Address: recorded, Source: "records"}, nil)
			checker := &MockBlockchainChecker{}
			checker.On("CodeAt", mock.Anything, network.EndpointURL, recorded).Return(tt.onChain, nil)
			artifacts := &MockArtifactRegistry{}
			artifacts.On("Lookup", mock.Anything, domain.ContractSystem).Return(tt.artifact, nil)

			deployer := newFakeDeployer()
			uc := usecase.NewRunSequence(artifacts, deployer, existing, checker, nil, discardLogger())

			deployed, err := uc.Run(context.Background(), network, []domain.DeploymentStep{domain.Deploy(domain.ContractSystem)}, usecase.RunOptions{Policy: domain.RedeploySkipExisting})
			require.NoError(t, err)
			require.Len(t, deployed, 1)

			assert.Equal(t, tt.reused, deployed[0].Reused)
			if tt.reused {
				assert.Equal(t, recorded, deployed[0].Address)
				assert.Empty(t, deployer.requests)
			} else {
				assert.NotEqual(t, recorded, deployed[0].Address)
				assert.Equal(t, []domain.ContractName{domain.ContractSystem}, deployer.contracts())
			}
		})
	}
}
