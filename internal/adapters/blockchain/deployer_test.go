package blockchain

import (
	"context"
	"math/big"
	"testing"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeployer_DeploysAndConfirms(t *testing.T) {
	chain := newSimChain(t)
	deployer := NewDeployer(&config.RuntimeConfig{}, chain.pool, discardLogger())
	checker := NewChecker(chain.pool)
	ctx := context.Background()

	receipt, err := deployer.Deploy(ctx, usecase.DeployRequest{
		Network:  chain.network,
		Signer:   chain.signer,
		Contract: domain.ContractSystem,
		Artifact: testArtifact(t, "ContractSystem", `[]`, answerInitCode),
	})
	require.NoError(t, err)

	assert.Equal(t, crypto.CreateAddress(chain.signer.Address, 0), receipt.Address)
	assert.NotEqual(t, common.Hash{}, receipt.TxHash)
	assert.NotZero(t, receipt.BlockNumber)
	assert.NotZero(t, receipt.GasUsed)

	hasCode, err := checker.HasCode(ctx, simulatedEndpoint, receipt.Address)
	require.NoError(t, err)
	assert.True(t, hasCode)

	hasCode, err = checker.HasCode(ctx, simulatedEndpoint, common.HexToAddress("0x00000000000000000000000000000000000000aa"))
	require.NoError(t, err)
	assert.False(t, hasCode)
}

func TestDeployer_ConstructorArguments(t *testing.T) {
	chain := newSimChain(t)
	deployer := NewDeployer(&config.RuntimeConfig{}, chain.pool, discardLogger())
	artifact := testArtifact(t, "ContractStorage",
		`[{"type":"constructor","inputs":[{"name":"system","type":"address"},{"name":"limit","type":"uint256"}]}]`,
		answerInitCode,
	)

	t.Run("coerced", func(t *testing.T) {
		receipt, err := deployer.Deploy(context.Background(), usecase.DeployRequest{
			Network:  chain.network,
			Signer:   chain.signer,
			Contract: domain.ContractStorage,
			Artifact: artifact,
			Args:     []any{common.HexToAddress("0x00000000000000000000000000000000000000aa"), 10},
		})
		require.NoError(t, err)
		assert.NotEqual(t, common.Address{}, receipt.Address)
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := deployer.Deploy(context.Background(), usecase.DeployRequest{
			Network:  chain.network,
			Signer:   chain.signer,
			Contract: domain.ContractStorage,
			Artifact: artifact,
			Args:     []any{"0x00000000000000000000000000000000000000aa"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid constructor arguments for ContractStorage")
	})
}

func TestDeployer_RevertedCreation(t *testing.T) {
	chain := newSimChain(t)
	// a fixed gas limit skips estimation so the failing creation gets mined
	deployer := NewDeployer(&config.RuntimeConfig{GasLimit: 100_000}, chain.pool, discardLogger())

	_, err := deployer.Deploy(context.Background(), usecase.DeployRequest{
		Network:  chain.network,
		Signer:   chain.signer,
		Contract: domain.DIDRegistry,
		Artifact: testArtifact(t, "DIDRegistry", `[]`, "fe"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reverted")
}

func TestDeployer_RejectsBadRequests(t *testing.T) {
	chain := newSimChain(t)
	deployer := NewDeployer(&config.RuntimeConfig{}, chain.pool, discardLogger())
	artifact := testArtifact(t, "ContractSystem", `[]`, answerInitCode)

	tests := []struct {
		name    string
		mutate  func(req *usecase.DeployRequest)
		wantErr string
		isErr   error
	}{
		{
			name:    "no private key",
			mutate:  func(req *usecase.DeployRequest) { req.Signer.PrivateKey = nil },
			wantErr: "has no private key",
		},
		{
			name:    "no artifact",
			mutate:  func(req *usecase.DeployRequest) { req.Artifact = nil },
			wantErr: "no artifact given",
		},
		{
			name: "chain id mismatch",
			mutate: func(req *usecase.DeployRequest) {
				network := *chain.network
				network.ChainID = 3
				req.Network = &network
			},
			wantErr: "chain ID mismatch",
			isErr:   domain.ErrConfiguration,
		},
		{
			name: "no endpoint",
			mutate: func(req *usecase.DeployRequest) {
				network := *chain.network
				network.EndpointURL = ""
				req.Network = &network
			},
			isErr: domain.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := usecase.DeployRequest{
				Network:  chain.network,
				Signer:   chain.signer,
				Contract: domain.ContractSystem,
				Artifact: artifact,
			}
			tt.mutate(&req)

			_, err := deployer.Deploy(context.Background(), req)
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
		})
	}
}

func TestTransferrer_Transfer(t *testing.T) {
	chain := newSimChain(t)
	transferrer := NewTransferrer(&config.RuntimeConfig{}, chain.pool, discardLogger())
	to := crypto.PubkeyToAddress(newKey(t).PublicKey)
	ctx := context.Background()

	receipt, err := transferrer.Transfer(ctx, usecase.TransferRequest{
		Network: chain.network,
		From:    chain.signer,
		To:      to,
		Wei:     big.NewInt(1000),
	})
	require.NoError(t, err)
	assert.NotEqual(t, common.Hash{}, receipt.TxHash)

	balance, err := chain.backend.Client().BalanceAt(ctx, to, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance.Int64())

	_, err = transferrer.Transfer(ctx, usecase.TransferRequest{
		Network: chain.network,
		From:    chain.signer,
		To:      to,
		Wei:     big.NewInt(-1),
	})
	assert.ErrorContains(t, err, "invalid transfer amount")
}
