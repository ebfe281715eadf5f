package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ProjectFileName is the optional project configuration file at the project root
const ProjectFileName = "bounty.toml"

// loadProjectConfig loads .env files and decodes bounty.toml if present.
// Values are expanded against the environment after the .env files are applied.
func loadProjectConfig(projectRoot string) (config.ProjectConfig, error) {
	// Load .env files first for variable expansion
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}

	var project config.ProjectConfig
	projectPath := filepath.Join(projectRoot, ProjectFileName)
	if _, err := toml.DecodeFile(projectPath, &project); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.ProjectConfig{}, nil
		}
		return config.ProjectConfig{}, &domain.ConfigurationError{Reason: "failed to parse " + ProjectFileName, Err: err}
	}

	project.Infura.ProjectID = os.ExpandEnv(project.Infura.ProjectID)
	project.Deploy.SecretPath = os.ExpandEnv(project.Deploy.SecretPath)
	overrides := make(map[string]config.NetworkOverrideConfig, len(project.Networks))
	for name, override := range project.Networks {
		id, err := domain.ParseNetworkIdentity(name)
		if err != nil {
			return config.ProjectConfig{}, fmt.Errorf("%s [networks.%s]: %w", ProjectFileName, name, err)
		}
		override.Endpoint = os.ExpandEnv(override.Endpoint)
		overrides[string(id)] = override
	}
	project.Networks = overrides

	return project, nil
}
