package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// projectMarkers identify a project root, checked in order
var projectMarkers = []string{ProjectFileName, "truffle.js", "truffle-config.js"}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	if !filepath.IsAbs(projectRoot) {
		absPath, err := filepath.Abs(projectRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve project root: %w", err)
		}
		projectRoot = absPath
	}

	project, err := loadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	// Project file values sit between explicit settings and built-in defaults
	if project.Deploy.ArtifactsDir != "" {
		v.SetDefault("artifacts_dir", project.Deploy.ArtifactsDir)
	}
	if project.Deploy.Plan != "" {
		v.SetDefault("plan", project.Deploy.Plan)
	}
	if project.Deploy.RedeployPolicy != "" {
		v.SetDefault("redeploy_policy", project.Deploy.RedeployPolicy)
	}
	if project.Deploy.SecretPath != "" {
		v.SetDefault("secret_path", project.Deploy.SecretPath)
	}

	policy, err := domain.ParseRedeployPolicy(v.GetString("redeploy_policy"))
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:     projectRoot,
		DataDir:         resolvePath(projectRoot, v.GetString("data_dir")),
		Network:         v.GetString("network"),
		SecretPath:      resolvePath(projectRoot, v.GetString("secret_path")),
		DerivationCount: v.GetInt("derivation_count"),
		SignerIndex:     v.GetInt("signer_index"),
		ArtifactsDir:    resolvePath(projectRoot, v.GetString("artifacts_dir")),
		// Built-in plan names pass through; the plan loader resolves files
		PlanPath:        v.GetString("plan"),
		RedeployPolicy:  policy,
		ConfirmTimeout:  v.GetDuration("confirm_timeout"),
		ConfirmRetries:  v.GetInt("confirm_retries"),
		GasLimit:        v.GetUint64("gas_limit"),
		Debug:           v.GetBool("debug"),
		NonInteractive:  v.GetBool("non_interactive"),
		JSON:            v.GetBool("json"),
		Timeout:         v.GetDuration("timeout"),
		Project:         project,
	}
	if cfg.DerivationCount <= 0 {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("derivation_count must be positive, got %d", cfg.DerivationCount)}
	}
	if cfg.SignerIndex < 0 || cfg.SignerIndex >= cfg.DerivationCount {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("signer_index %d outside the %d derived accounts", cfg.SignerIndex, cfg.DerivationCount)}
	}
	if cfg.ConfirmRetries < 0 {
		return nil, &domain.ConfigurationError{Reason: "confirm_retries must not be negative"}
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find a project marker
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a project (none of %s found)", strings.Join(projectMarkers, ", "))
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".bounty"))

	// Set up environment variables
	v.SetEnvPrefix("BOUNTY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("project_root", projectRoot)
	v.SetDefault("data_dir", ".bounty")
	v.SetDefault("secret_path", filepath.Join("..", "keys", "ropsten_mnemonic.txt"))
	v.SetDefault("derivation_count", config.DefaultDerivationCount)
	v.SetDefault("signer_index", 0)
	v.SetDefault("artifacts_dir", filepath.Join("build", "contracts"))
	v.SetDefault("redeploy_policy", string(domain.RedeployAlways))
	v.SetDefault("confirm_timeout", "2m")
	v.SetDefault("confirm_retries", 2)
	v.SetDefault("gas_limit", 0)
	v.SetDefault("timeout", "30m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		bindFlags := func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		}
		cmd.Flags().VisitAll(bindFlags)
		cmd.InheritedFlags().VisitAll(bindFlags)
	}

	return v
}

// resolvePath anchors relative paths at the project root
func resolvePath(projectRoot, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectRoot, path)
}
