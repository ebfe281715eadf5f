package usecase

import (
	"context"
	"strconv"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
)

// ConfigSetting is one local config key next to the value commands will use
type ConfigSetting struct {
	Key config.ConfigKey `json:"key"`
	// Stored is the value in the local config file, empty when unset
	Stored string `json:"stored,omitempty"`
	// Effective also reflects flags, BOUNTY_* variables and bounty.toml
	Effective string `json:"effective"`
}

// ShowConfigResult contains the stored and effective settings
type ShowConfigResult struct {
	Config     *config.LocalConfig `json:"-"`
	ConfigPath string              `json:"path"`
	Exists     bool                `json:"exists"`
	Settings   []ConfigSetting     `json:"settings"`
}

// ShowConfig reports the local config and what it resolves to for this invocation
type ShowConfig struct {
	runtime *config.RuntimeConfig
	store   LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, store LocalConfigStore) *ShowConfig {
	return &ShowConfig{runtime: cfg, store: store}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	stored := map[config.ConfigKey]string{
		config.ConfigKeyNetwork:        local.Network,
		config.ConfigKeyRedeployPolicy: local.RedeployPolicy,
	}
	if local.SignerIndex != nil {
		stored[config.ConfigKeySignerIndex] = strconv.Itoa(*local.SignerIndex)
	}

	effective := map[config.ConfigKey]string{}
	if uc.runtime != nil {
		effective[config.ConfigKeyNetwork] = uc.runtime.Network
		effective[config.ConfigKeyRedeployPolicy] = string(uc.runtime.RedeployPolicy)
		effective[config.ConfigKeySignerIndex] = strconv.Itoa(uc.runtime.SignerIndex)
	}

	result := &ShowConfigResult{
		Config:     local,
		ConfigPath: uc.store.GetPath(),
		Exists:     uc.store.Exists(),
	}
	for _, key := range config.ValidConfigKeys() {
		result.Settings = append(result.Settings, ConfigSetting{
			Key:       key,
			Stored:    stored[key],
			Effective: effective[key],
		})
	}
	return result, nil
}
