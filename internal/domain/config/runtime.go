package config

import (
	"time"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Network selection. Empty until a command needs it; resolution happens in
	// the NetworkResolver, not here.
	Network string

	// Signing material
	SecretPath      string
	DerivationCount int
	SignerIndex     int

	// Deployment settings
	ArtifactsDir   string
	PlanPath       string
	RedeployPolicy domain.RedeployPolicy
	ConfirmTimeout time.Duration
	ConfirmRetries int
	GasLimit       uint64

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration

	// Resolved project file (bounty.toml), zero value if absent
	Project ProjectConfig
}

// ProjectConfig is the decoded bounty.toml project file
type ProjectConfig struct {
	Infura   InfuraConfig                     `toml:"infura"`
	Networks map[string]NetworkOverrideConfig `toml:"networks"`
	Deploy   DeployConfig                     `toml:"deploy"`
}

// InfuraConfig selects the hosted endpoint flavour for public networks
type InfuraConfig struct {
	ProjectID string `toml:"project_id"`
}

// NetworkOverrideConfig overrides the endpoint of a known network identity
type NetworkOverrideConfig struct {
	Endpoint string `toml:"endpoint"`
}

// DeployConfig holds project-level deploy defaults
type DeployConfig struct {
	ArtifactsDir   string `toml:"artifacts_dir"`
	Plan           string `toml:"plan"`
	RedeployPolicy string `toml:"redeploy_policy"`
	SecretPath     string `toml:"secret_path"`
}
