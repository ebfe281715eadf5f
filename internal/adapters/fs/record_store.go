package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/models"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
)

// RecordStoreAdapter implements DeploymentRecordStore with one JSON file per network
type RecordStoreAdapter struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

// NewRecordStoreAdapter creates a new RecordStoreAdapter
func NewRecordStoreAdapter(cfg *config.RuntimeConfig) *RecordStoreAdapter {
	return &RecordStoreAdapter{
		dir: filepath.Join(cfg.DataDir, "deployments"),
		now: time.Now,
	}
}

// Path returns the records file of a network
func (s *RecordStoreAdapter) Path(network domain.NetworkIdentity) string {
	return filepath.Join(s.dir, string(network)+".json")
}

// Load reads a network's records. Returns domain.ErrNotFound if the network has none.
func (s *RecordStoreAdapter) Load(_ context.Context, network domain.NetworkIdentity) (*models.DeploymentRecordFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(network)
}

func (s *RecordStoreAdapter) load(network domain.NetworkIdentity) (*models.DeploymentRecordFile, error) {
	data, err := os.ReadFile(s.Path(network))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no deployment records for %s: %w", network, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read deployment records: %w", err)
	}

	var file models.DeploymentRecordFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse deployment records %s: %w", s.Path(network), err)
	}
	return &file, nil
}

// Save merges the contracts of a run into the network's records. A contract
// already recorded is replaced in place; new contracts are appended in run order.
func (s *RecordStoreAdapter) Save(_ context.Context, network domain.NetworkIdentity, chainID uint64, contracts []domain.DeployedContract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load(network)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		file = &models.DeploymentRecordFile{Network: string(network)}
	}

	now := s.now().UTC()
	index := make(map[string]int, len(file.Records))
	for i, record := range file.Records {
		index[record.Contract] = i
	}
	for _, contract := range contracts {
		record := models.DeploymentRecord{
			Contract:    string(contract.Name),
			Address:     contract.Address,
			TxHash:      contract.TxHash,
			BlockNumber: contract.BlockNumber,
			Reused:      contract.Reused,
			RecordedAt:  now,
		}
		if i, ok := index[record.Contract]; ok {
			file.Records[i] = record
			continue
		}
		index[record.Contract] = len(file.Records)
		file.Records = append(file.Records, record)
	}
	if chainID != 0 {
		file.ChainID = chainID
	}
	file.UpdatedAt = now

	return s.write(network, file)
}

// Find returns the record of one contract on a network
func (s *RecordStoreAdapter) Find(ctx context.Context, network domain.NetworkIdentity, name domain.ContractName) (*models.DeploymentRecord, error) {
	file, err := s.Load(ctx, network)
	if err != nil {
		return nil, err
	}
	for i := range file.Records {
		if file.Records[i].Contract == string(name) {
			return &file.Records[i], nil
		}
	}
	return nil, fmt.Errorf("%s on %s: %w", name, network, domain.ErrNotFound)
}

// Delete removes a network's records file.
func (s *RecordStoreAdapter) Delete(_ context.Context, network domain.NetworkIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path(network))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete deployment records: %w", err)
	}
	return nil
}

func (s *RecordStoreAdapter) write(network domain.NetworkIdentity, file *models.DeploymentRecordFile) error {
	if err := writeJSON(s.Path(network), file); err != nil {
		return fmt.Errorf("failed to save deployment records: %w", err)
	}
	return nil
}

// Ensure RecordStoreAdapter implements DeploymentRecordStore
var _ usecase.DeploymentRecordStore = (*RecordStoreAdapter)(nil)
