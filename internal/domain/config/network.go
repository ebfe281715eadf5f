package config

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DefaultDerivationCount is the number of accounts derived from a mnemonic
const DefaultDerivationCount = 10

// NetworkSpec is the static description of one supported network.
type NetworkSpec struct {
	Identity domain.NetworkIdentity
	// Endpoint is the built-in JSON-RPC endpoint; public networks format it with
	// the hosted provider's credentials
	Endpoint    string
	Placeholder bool
	ChainID     uint64 // 0 means "whatever the endpoint reports"
	ExplorerURL string
}

// Account is a derived signing account
type Account struct {
	Index      int
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}

// PrivateKeyHex returns the 0x-less hex encoding of the private key.
func (a Account) PrivateKeyHex() string {
	return hex.EncodeToString(crypto.FromECDSA(a.PrivateKey))
}

// NetworkConfig is everything needed to connect to and sign for one network.
// It is resolved once per identity and passed explicitly to every run.
type NetworkConfig struct {
	Identity domain.NetworkIdentity
	// EndpointURL is the JSON-RPC endpoint; empty only when EndpointPlaceholder is set
	EndpointURL         string
	EndpointPlaceholder bool
	ChainID             uint64
	ExplorerURL         string

	Mnemonic        string
	MnemonicSource  string // "builtin" or the secret file path
	DerivationCount int
	Accounts        []Account
}

// Account returns the derived account at index i.
func (c *NetworkConfig) Account(i int) (Account, error) {
	if i < 0 || i >= len(c.Accounts) {
		return Account{}, &domain.ConfigurationError{
			Network: string(c.Identity),
			Reason:  fmt.Sprintf("account index %d out of range (derived %d accounts)", i, len(c.Accounts)),
		}
	}
	return c.Accounts[i], nil
}

// Addresses returns the derived addresses in derivation order.
func (c *NetworkConfig) Addresses() []common.Address {
	addrs := make([]common.Address, len(c.Accounts))
	for i, acc := range c.Accounts {
		addrs[i] = acc.Address
	}
	return addrs
}

// String keeps the seed phrase out of logs and formatted errors.
func (c *NetworkConfig) String() string {
	return fmt.Sprintf("NetworkConfig{%s endpoint=%q accounts=%d mnemonic=<redacted>}", c.Identity, c.EndpointURL, len(c.Accounts))
}

// GoString redacts the seed phrase for %#v as well.
func (c *NetworkConfig) GoString() string {
	return c.String()
}
