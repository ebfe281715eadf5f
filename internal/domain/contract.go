package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ContractName is the symbolic name a contract is deployed and referenced under.
type ContractName string

// Contracts of the bounty system
const (
	ContractSystem  ContractName = "ContractSystem"
	ContractStorage ContractName = "ContractStorage"
	DIDRegistry     ContractName = "DIDRegistry"
	LibDIDRegistry  ContractName = "LibDIDRegistry"
)

func (n ContractName) String() string {
	return string(n)
}

// DeployedContract is the result of a confirmed (or reused) deployment step.
type DeployedContract struct {
	Name        ContractName    `json:"name"`
	Address     common.Address  `json:"address"`
	Network     NetworkIdentity `json:"network"`
	TxHash      common.Hash     `json:"txHash,omitempty"`
	BlockNumber uint64          `json:"blockNumber,omitempty"`
	// Reused is set when the step was satisfied by an existing deployment
	Reused bool `json:"reused,omitempty"`
}

func (d DeployedContract) String() string {
	return fmt.Sprintf("%s@%s", d.Name, d.Address.Hex())
}

// RedeployPolicy decides what a run does with a contract that already exists
// under the same name on the target network.
type RedeployPolicy string

const (
	// RedeployAlways deploys every step unconditionally. Earlier deployments are
	// orphaned; nothing on-chain records the supersession.
	RedeployAlways RedeployPolicy = "always"
	// RedeploySkipExisting reuses a deployment recorded under the same name when
	// the code at its address is the artifact's runtime code.
	RedeploySkipExisting RedeployPolicy = "skip-existing"
)

// ParseRedeployPolicy validates a policy value; empty means RedeployAlways.
func ParseRedeployPolicy(raw string) (RedeployPolicy, error) {
	switch RedeployPolicy(raw) {
	case "", RedeployAlways:
		return RedeployAlways, nil
	case RedeploySkipExisting:
		return RedeploySkipExisting, nil
	default:
		return "", &ConfigurationError{Reason: fmt.Sprintf("unknown redeploy policy %q (want %q or %q)", raw, RedeployAlways, RedeploySkipExisting)}
	}
}
