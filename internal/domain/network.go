package domain

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// NetworkIdentity names one of the networks the deployer knows how to target.
// The set is closed: anything else is a configuration error.
type NetworkIdentity string

const (
	// NetworkGanache is the local simulation chain on 127.0.0.1:8545
	NetworkGanache NetworkIdentity = "ganache"
	// NetworkDevelop is the persistent local chain started by `truffle develop`
	NetworkDevelop NetworkIdentity = "develop"
	// NetworkCoverage is the instrumented chain used by solidity-coverage
	NetworkCoverage NetworkIdentity = "coverage"
	// NetworkKovan is the Kovan public test network
	NetworkKovan NetworkIdentity = "kovan"
	// NetworkRopsten is the Ropsten public test network
	NetworkRopsten NetworkIdentity = "ropsten"
)

var knownNetworks = []NetworkIdentity{
	NetworkGanache,
	NetworkDevelop,
	NetworkCoverage,
	NetworkKovan,
	NetworkRopsten,
}

// KnownNetworks returns every supported identity in display order.
func KnownNetworks() []NetworkIdentity {
	return append([]NetworkIdentity(nil), knownNetworks...)
}

// ParseNetworkIdentity validates a raw selector value. Matching is exact after
// trimming surrounding whitespace and lowercasing; there is no default.
func ParseNetworkIdentity(raw string) (NetworkIdentity, error) {
	candidate := NetworkIdentity(strings.ToLower(strings.TrimSpace(raw)))
	if candidate == "" {
		return "", &ConfigurationError{Network: raw, Reason: "no network selected"}
	}
	if lo.Contains(knownNetworks, candidate) {
		return candidate, nil
	}

	reason := fmt.Sprintf("unknown network %q (supported: %s)", raw, strings.Join(networkNames(), ", "))
	if suggestion := suggestNetwork(string(candidate)); suggestion != "" {
		reason += fmt.Sprintf("; did you mean %q?", suggestion)
	}
	return "", &ConfigurationError{Network: raw, Reason: reason}
}

// IsPublic reports whether the identity targets a hosted public network whose
// signing material is secret.
func (n NetworkIdentity) IsPublic() bool {
	return n == NetworkKovan || n == NetworkRopsten
}

func (n NetworkIdentity) String() string {
	return string(n)
}

func networkNames() []string {
	return lo.Map(knownNetworks, func(n NetworkIdentity, _ int) string { return string(n) })
}

// suggestNetwork returns the closest known identity, if any matches at all.
func suggestNetwork(input string) string {
	matches := fuzzy.Find(input, networkNames())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
