package usecase

import (
	"context"
	"errors"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/models"
)

// ResetRecordsParams contains parameters for resetting a network's records
type ResetRecordsParams struct {
	Network string
	// DryRun only collects the records that would be removed
	DryRun bool
}

// ResetRecordsResult lists the records removed, or to be removed on a dry run
type ResetRecordsResult struct {
	Network domain.NetworkIdentity    `json:"network"`
	Records []models.DeploymentRecord `json:"records"`
	Removed bool                      `json:"removed"`
}

// ResetRecords forgets every deployment recorded for one network. Contracts
// stay on-chain; later skip-existing runs deploy them again.
type ResetRecords struct {
	store DeploymentRecordStore
}

// NewResetRecords creates a new ResetRecords use case
func NewResetRecords(store DeploymentRecordStore) *ResetRecords {
	return &ResetRecords{store: store}
}

// Run executes the reset records use case
func (uc *ResetRecords) Run(ctx context.Context, params ResetRecordsParams) (*ResetRecordsResult, error) {
	if params.Network == "" {
		return nil, &domain.ConfigurationError{Reason: "network is required for reset (use --network or 'bountyctl config set network <name>')"}
	}
	id, err := domain.ParseNetworkIdentity(params.Network)
	if err != nil {
		return nil, err
	}

	result := &ResetRecordsResult{Network: id}
	file, err := uc.store.Load(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.Records = file.Records

	if params.DryRun || len(result.Records) == 0 {
		return result, nil
	}
	if err := uc.store.Delete(ctx, id); err != nil {
		return nil, err
	}
	result.Removed = true
	return result, nil
}
