package usecase_test

import (
	"context"
	"testing"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNetworks(t *testing.T) {
	resolver := &MockNetworkResolver{}
	resolver.On("Describe").Return([]config.NetworkSpec{
		{Identity: domain.NetworkGanache, Endpoint: "http://127.0.0.1:8545"},
		{Identity: domain.NetworkCoverage, Placeholder: true},
		{Identity: domain.NetworkRopsten, Endpoint: "https://ropsten.infura.io/metamask", ChainID: 3},
	})

	uc := usecase.NewListNetworks(&config.RuntimeConfig{Network: "ropsten"}, resolver)
	result, err := uc.Run(context.Background(), usecase.ListNetworksParams{})
	require.NoError(t, err)

	require.Len(t, result.Networks, 3)
	assert.Equal(t, domain.NetworkRopsten, result.Selected)
	assert.False(t, result.Networks[0].Public)
	assert.True(t, result.Networks[1].Placeholder)
	assert.True(t, result.Networks[2].Public)
	assert.Equal(t, uint64(3), result.Networks[2].ChainID)
	resolver.AssertNotCalled(t, "Resolve")
}

func TestShowAccounts(t *testing.T) {
	t.Run("local network with keys", func(t *testing.T) {
		resolver := &MockNetworkResolver{}
		network := testNetwork(domain.NetworkGanache, 2)
		network.MnemonicSource = "builtin"
		resolver.On("Resolve", "ganache").Return(network, nil)

		uc := usecase.NewShowAccounts(&config.RuntimeConfig{Network: "ganache"}, resolver)
		result, err := uc.Run(context.Background(), usecase.ShowAccountsParams{})
		require.NoError(t, err)

		require.Len(t, result.Accounts, 2)
		assert.Equal(t, network.Accounts[1].Address.Hex(), result.Accounts[1].Address)
		assert.Empty(t, result.Accounts[0].PrivateKey)
		assert.Equal(t, "builtin", result.Source)
	})

	t.Run("public network refuses keys", func(t *testing.T) {
		resolver := &MockNetworkResolver{}
		resolver.On("Resolve", "kovan").Return(testNetwork(domain.NetworkKovan, 1), nil)

		uc := usecase.NewShowAccounts(&config.RuntimeConfig{}, resolver)
		result, err := uc.Run(context.Background(), usecase.ShowAccountsParams{Network: "kovan", ShowPrivateKeys: true})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}
