package usecase

import (
	"context"
	"fmt"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Currently no parameters, but we keep the struct for future extensibility
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Selected domain.NetworkIdentity
}

// NetworkStatus represents the static status of a network
type NetworkStatus struct {
	Name        domain.NetworkIdentity
	Endpoint    string
	Placeholder bool
	ChainID     uint64
	Public      bool
	ExplorerURL string
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
	}
}

// Run executes the use case. It never reads secret material.
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	specs := uc.resolver.Describe()

	networks := make([]NetworkStatus, 0, len(specs))
	for _, spec := range specs {
		networks = append(networks, NetworkStatus{
			Name:        spec.Identity,
			Endpoint:    spec.Endpoint,
			Placeholder: spec.Placeholder,
			ChainID:     spec.ChainID,
			Public:      spec.Identity.IsPublic(),
			ExplorerURL: spec.ExplorerURL,
		})
	}

	result := &ListNetworksResult{Networks: networks}
	if id, err := domain.ParseNetworkIdentity(uc.config.Network); err == nil {
		result.Selected = id
	}
	return result, nil
}

// ShowAccountsParams contains parameters for listing derived accounts
type ShowAccountsParams struct {
	Network string
	// ShowPrivateKeys includes private keys; refused for public networks
	ShowPrivateKeys bool
}

// AccountInfo is one derived account as displayed to the operator
type AccountInfo struct {
	Index      int
	Address    string
	PrivateKey string
}

// ShowAccountsResult contains the derived accounts of a network
type ShowAccountsResult struct {
	Network  domain.NetworkIdentity
	Source   string
	Accounts []AccountInfo
}

// ShowAccounts lists the accounts derived for a network
type ShowAccounts struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
}

// NewShowAccounts creates a new ShowAccounts use case
func NewShowAccounts(cfg *config.RuntimeConfig, resolver NetworkResolver) *ShowAccounts {
	return &ShowAccounts{
		config:   cfg,
		resolver: resolver,
	}
}

// Run executes the use case
func (uc *ShowAccounts) Run(ctx context.Context, params ShowAccountsParams) (*ShowAccountsResult, error) {
	name := params.Network
	if name == "" {
		name = uc.config.Network
	}

	network, err := uc.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	if params.ShowPrivateKeys && network.Identity.IsPublic() {
		return nil, &domain.ConfigurationError{
			Network: string(network.Identity),
			Reason:  "refusing to print private keys of a public network",
		}
	}

	accounts := make([]AccountInfo, len(network.Accounts))
	for i, acc := range network.Accounts {
		accounts[i] = AccountInfo{Index: acc.Index, Address: acc.Address.Hex()}
		if params.ShowPrivateKeys {
			accounts[i].PrivateKey = fmt.Sprintf("0x%s", acc.PrivateKeyHex())
		}
	}

	return &ShowAccountsResult{
		Network:  network.Identity,
		Source:   network.MnemonicSource,
		Accounts: accounts,
	}, nil
}
