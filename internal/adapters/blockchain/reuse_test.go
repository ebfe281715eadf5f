package blockchain

import (
	"context"
	"testing"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/models"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// returns 7 from every call
const sevenInitCode = "600a600c600039600a6000f3600760005260206000f3"

const (
	answerRuntime = "602a60005260206000f3"
	sevenRuntime  = "600760005260206000f3"
)

type fixedFinder struct {
	address common.Address
}

func (f fixedFinder) FindExisting(context.Context, *config.NetworkConfig, domain.ContractName) (*usecase.ExistingDeployment, error) {
	return &usecase.ExistingDeployment{Address: f.address, Source: "records"}, nil
}

type singleArtifact struct {
	artifact *models.Artifact
}

func (s singleArtifact) Lookup(context.Context, domain.ContractName) (*models.Artifact, error) {
	return s.artifact, nil
}

func TestSkipExisting_OnlyReusesMatchingCode(t *testing.T) {
	tests := []struct {
		name     string
		initCode string
		runtime  string
		reused   bool
	}{
		{name: "foreign contract at recorded address", initCode: sevenInitCode, runtime: sevenRuntime, reused: false},
		{name: "same contract at recorded address", initCode: answerInitCode, runtime: answerRuntime, reused: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := newSimChain(t)
			ctx := context.Background()
			deployer := NewDeployer(&config.RuntimeConfig{}, chain.pool, discardLogger())
			checker := NewChecker(chain.pool)

			// an unrelated Token contract sits where ContractSystem is recorded
			token, err := deployer.Deploy(ctx, usecase.DeployRequest{
				Network:  chain.network,
				Signer:   chain.signer,
				Contract: "Token",
				Artifact: testArtifact(t, "Token", `[]`, answerInitCode),
			})
			require.NoError(t, err)

			artifact := testArtifact(t, "ContractSystem", `[]`, tt.initCode)
			artifact.DeployedBytecode = common.FromHex(tt.runtime)

			network := *chain.network
			network.Accounts = []config.Account{chain.signer}
			runner := usecase.NewRunSequence(singleArtifact{artifact}, deployer, fixedFinder{token.Address}, checker, nil, discardLogger())

			deployed, err := runner.Run(ctx, &network, []domain.DeploymentStep{domain.Deploy(domain.ContractSystem)}, usecase.RunOptions{Policy: domain.RedeploySkipExisting})
			require.NoError(t, err)
			require.Len(t, deployed, 1)

			assert.Equal(t, tt.reused, deployed[0].Reused)
			if tt.reused {
				assert.Equal(t, token.Address, deployed[0].Address)
				return
			}
			assert.NotEqual(t, token.Address, deployed[0].Address)
			code, err := checker.CodeAt(ctx, simulatedEndpoint, deployed[0].Address)
			require.NoError(t, err)
			assert.Equal(t, common.FromHex(sevenRuntime), code)
		})
	}
}
