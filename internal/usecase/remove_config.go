package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
)

// RemoveConfigParams contains parameters for removing configuration
type RemoveConfigParams struct {
	Key string
}

// RemoveConfigResult contains the result of removing configuration
type RemoveConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	RemovedValue  string
	// Fallback is what the key resolves to once removed; empty means the
	// value has to be given per invocation
	Fallback string
}

// clearers unset one key and report the previous value and its fallback
var clearers = map[config.ConfigKey]func(*config.LocalConfig) (removed, fallback string){
	config.ConfigKeyNetwork: func(c *config.LocalConfig) (string, string) {
		removed := c.Network
		c.Network = ""
		return removed, ""
	},
	config.ConfigKeyRedeployPolicy: func(c *config.LocalConfig) (string, string) {
		removed := c.RedeployPolicy
		c.RedeployPolicy = ""
		return removed, string(domain.RedeployAlways)
	},
	config.ConfigKeySignerIndex: func(c *config.LocalConfig) (string, string) {
		removed := ""
		if c.SignerIndex != nil {
			removed = strconv.Itoa(*c.SignerIndex)
		}
		c.SignerIndex = nil
		return removed, "0"
	},
}

// RemoveConfig is a use case for removing configuration values
type RemoveConfig struct {
	store LocalConfigStore
}

// NewRemoveConfig creates a new RemoveConfig use case
func NewRemoveConfig(store LocalConfigStore) *RemoveConfig {
	return &RemoveConfig{
		store: store,
	}
}

// Run executes the remove config use case
func (uc *RemoveConfig) Run(ctx context.Context, params RemoveConfigParams) (*RemoveConfigResult, error) {
	if !uc.store.Exists() {
		return nil, fmt.Errorf("no config file found at %s", uc.store.GetPath())
	}

	key, err := validConfigKey(params.Key)
	if err != nil {
		return nil, err
	}

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	removed, fallback := clearers[key](local)

	if err := uc.store.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &RemoveConfigResult{
		UpdatedConfig: local,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		RemovedValue:  removed,
		Fallback:      fallback,
	}, nil
}
