package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
)

// LocalConfigFile is the name of the per-checkout settings file inside the data dir
const LocalConfigFile = "config.local.json"

// LocalConfigStoreAdapter keeps operator defaults in <data_dir>/config.local.json
type LocalConfigStoreAdapter struct {
	path string
}

// NewLocalConfigStoreAdapter creates a new LocalConfigStoreAdapter
func NewLocalConfigStoreAdapter(cfg *config.RuntimeConfig) *LocalConfigStoreAdapter {
	return &LocalConfigStoreAdapter{path: filepath.Join(cfg.DataDir, LocalConfigFile)}
}

// Exists reports whether the settings file has been written
func (s *LocalConfigStoreAdapter) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load returns the stored settings, or empty defaults when nothing was saved yet.
// Unknown keys and values that would be rejected on set are reported as
// configuration errors naming the file.
func (s *LocalConfigStoreAdapter) Load(_ context.Context) (*config.LocalConfig, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultLocalConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	local := config.DefaultLocalConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(local); err != nil && !errors.Is(err, io.EOF) {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("%s is not valid: %v", s.path, err)}
	}

	if local.Network != "" {
		if _, err := domain.ParseNetworkIdentity(local.Network); err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
	}
	if local.RedeployPolicy != "" {
		if _, err := domain.ParseRedeployPolicy(local.RedeployPolicy); err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
	}
	return local, nil
}

// Save replaces the settings file
func (s *LocalConfigStoreAdapter) Save(_ context.Context, local *config.LocalConfig) error {
	return writeJSON(s.path, local)
}

// GetPath returns the path to the config file
func (s *LocalConfigStoreAdapter) GetPath() string {
	return s.path
}

var _ usecase.LocalConfigStore = (*LocalConfigStoreAdapter)(nil)
