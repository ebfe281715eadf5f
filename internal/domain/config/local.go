package config

// LocalConfig is the per-checkout configuration kept in <data_dir>/config.local.json.
// Its keys are read back by viper as defaults for the matching settings.
type LocalConfig struct {
	Network        string `json:"network,omitempty"`
	RedeployPolicy string `json:"redeploy_policy,omitempty"`
	SignerIndex    *int   `json:"signer_index,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork        ConfigKey = "network"
	ConfigKeyRedeployPolicy ConfigKey = "redeploy_policy"
	ConfigKeySignerIndex    ConfigKey = "signer_index"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeyRedeployPolicy,
		ConfigKeySignerIndex,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	normalized := NormalizeConfigKey(key)
	for _, validKey := range ValidConfigKeys() {
		if validKey == normalized {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key (e.g., "redeploy-policy" -> "redeploy_policy")
func NormalizeConfigKey(key string) ConfigKey {
	switch key {
	case "net":
		return ConfigKeyNetwork
	case "policy", "redeploy-policy":
		return ConfigKeyRedeployPolicy
	case "signer", "signer-index":
		return ConfigKeySignerIndex
	}
	return ConfigKey(key)
}
