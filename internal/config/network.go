package config

import (
	"fmt"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
)

// SimulationMnemonic seeds the accounts of every local chain. It is public and
// must never hold funds on a real network.
const SimulationMnemonic = "fix tired congress gold type flight access jeans payment echo chef host"

var networkTable = map[domain.NetworkIdentity]config.NetworkSpec{
	domain.NetworkGanache: {
		Identity: domain.NetworkGanache,
		Endpoint: "http://127.0.0.1:8545",
	},
	domain.NetworkDevelop: {
		Identity: domain.NetworkDevelop,
		Endpoint: "http://127.0.0.1:9545",
	},
	domain.NetworkCoverage: {
		// solidity-coverage supplies its own provider; the endpoint stays empty
		// unless bounty.toml points it somewhere
		Identity:    domain.NetworkCoverage,
		Placeholder: true,
	},
	domain.NetworkKovan: {
		Identity:    domain.NetworkKovan,
		ChainID:     42,
		ExplorerURL: "https://kovan.etherscan.io",
	},
	domain.NetworkRopsten: {
		Identity:    domain.NetworkRopsten,
		ChainID:     3,
		ExplorerURL: "https://ropsten.etherscan.io",
	},
}

// LookupNetwork returns the static description of a known identity.
func LookupNetwork(id domain.NetworkIdentity) (config.NetworkSpec, bool) {
	spec, ok := networkTable[id]
	return spec, ok
}

// infuraEndpoint builds the hosted endpoint for a public network. Without a
// project id the legacy shared "metamask" key is used.
func infuraEndpoint(id domain.NetworkIdentity, projectID string) string {
	if projectID == "" {
		return fmt.Sprintf("https://%s.infura.io/metamask", id)
	}
	return fmt.Sprintf("https://%s.infura.io/v3/%s", id, projectID)
}
