package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store LocalConfigStore
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigStore) *SetConfig {
	return &SetConfig{
		store: store,
	}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := validConfigKey(params.Key)
	if err != nil {
		return nil, err
	}

	// Load existing config or create new one
	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	value := strings.TrimSpace(params.Value)
	switch key {
	case config.ConfigKeyNetwork:
		id, err := domain.ParseNetworkIdentity(value)
		if err != nil {
			return nil, err
		}
		value = string(id)
		local.Network = value
	case config.ConfigKeyRedeployPolicy:
		policy, err := domain.ParseRedeployPolicy(value)
		if err != nil {
			return nil, err
		}
		value = string(policy)
		local.RedeployPolicy = value
	case config.ConfigKeySignerIndex:
		index, err := strconv.Atoi(value)
		if err != nil || index < 0 {
			return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("signer_index must be a non-negative integer, got %q", params.Value)}
		}
		local.SignerIndex = &index
	}

	// Save the updated config
	if err := uc.store.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: local,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         value,
	}, nil
}

// validConfigKey normalizes a user supplied key and rejects unknown ones
func validConfigKey(raw string) (config.ConfigKey, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if !config.IsValidConfigKey(key) {
		validKeys := make([]string, 0, len(config.ValidConfigKeys()))
		for _, k := range config.ValidConfigKeys() {
			validKeys = append(validKeys, string(k))
		}
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", raw, strings.Join(validKeys, ", "))
	}
	return config.NormalizeConfigKey(key), nil
}
