package config

import (
	"log/slog"
	"os"
	"sync"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
)

// AccountDeriver turns a mnemonic into an ordered set of signing accounts
type AccountDeriver interface {
	Derive(mnemonic string, count int) ([]config.Account, error)
}

// MnemonicValidator reports whether a seed phrase is well formed
type MnemonicValidator func(mnemonic string) bool

// NetworkResolver resolves a network identity to its connection and signing
// configuration.
//
// It caches the most recent resolution only: resolving the current identity
// again returns the same value, resolving another identity replaces it.
type NetworkResolver struct {
	secretPath      string
	derivationCount int
	infuraProjectID string
	overrides       map[string]config.NetworkOverrideConfig

	deriver  AccountDeriver
	validate MnemonicValidator
	readFile func(string) ([]byte, error)
	log      *slog.Logger

	mu      sync.Mutex
	current *config.NetworkConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(cfg *config.RuntimeConfig, deriver AccountDeriver, validate MnemonicValidator, log *slog.Logger) *NetworkResolver {
	count := cfg.DerivationCount
	if count <= 0 {
		count = config.DefaultDerivationCount
	}
	return &NetworkResolver{
		secretPath:      cfg.SecretPath,
		derivationCount: count,
		infuraProjectID: cfg.Project.Infura.ProjectID,
		overrides:       cfg.Project.Networks,
		deriver:         deriver,
		validate:        validate,
		readFile:        os.ReadFile,
		log:             log.With("component", "network-resolver"),
	}
}

// Resolve returns the configuration for a network identity. Unknown identities
// fail before any file is read.
func (r *NetworkResolver) Resolve(raw string) (*config.NetworkConfig, error) {
	id, err := domain.ParseNetworkIdentity(raw)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil && r.current.Identity == id {
		return r.current, nil
	}

	resolved, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	if r.current != nil {
		r.log.Debug("switching network", "from", r.current.Identity, "to", id)
	}
	r.current = resolved
	return resolved, nil
}

// Reset drops the cached resolution.
func (r *NetworkResolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

// Describe returns the endpoint table without touching any secret material.
func (r *NetworkResolver) Describe() []config.NetworkSpec {
	specs := make([]config.NetworkSpec, 0, len(networkTable))
	for _, id := range domain.KnownNetworks() {
		spec := networkTable[id]
		spec.Endpoint, spec.Placeholder = r.endpoint(spec)
		specs = append(specs, spec)
	}
	return specs
}

func (r *NetworkResolver) resolve(id domain.NetworkIdentity) (*config.NetworkConfig, error) {
	spec, ok := LookupNetwork(id)
	if !ok {
		return nil, &domain.ConfigurationError{Network: string(id), Reason: "no network table entry"}
	}

	mnemonic := SimulationMnemonic
	source := "builtin"
	if id.IsPublic() {
		var err error
		mnemonic, err = loadMnemonic(id, r.secretPath, r.readFile, r.validate)
		if err != nil {
			return nil, err
		}
		source = r.secretPath
	}

	accounts, err := r.deriver.Derive(mnemonic, r.derivationCount)
	if err != nil {
		return nil, &domain.ConfigurationError{Network: string(id), Reason: "account derivation failed", Err: err}
	}

	endpoint, placeholder := r.endpoint(spec)

	r.log.Debug("resolved network",
		"network", id,
		"endpoint", endpoint,
		"placeholder", placeholder,
		"mnemonic_source", source,
		"accounts", len(accounts),
	)

	return &config.NetworkConfig{
		Identity:            id,
		EndpointURL:         endpoint,
		EndpointPlaceholder: placeholder,
		ChainID:             spec.ChainID,
		ExplorerURL:         spec.ExplorerURL,
		Mnemonic:            mnemonic,
		MnemonicSource:      source,
		DerivationCount:     r.derivationCount,
		Accounts:            accounts,
	}, nil
}

// endpoint applies bounty.toml overrides to the built-in table entry
func (r *NetworkResolver) endpoint(spec config.NetworkSpec) (string, bool) {
	if override, ok := r.overrides[string(spec.Identity)]; ok && override.Endpoint != "" {
		return override.Endpoint, false
	}
	if spec.Identity.IsPublic() {
		return infuraEndpoint(spec.Identity, r.infuraProjectID), false
	}
	return spec.Endpoint, spec.Placeholder
}
