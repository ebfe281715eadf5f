package usecase

import (
	"context"
	"errors"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing recorded deployments
type ListDeploymentsParams struct {
	// Network restricts the listing to one network; empty lists all of them
	Network      string
	ContractName string
}

// NetworkDeployments are the records of one network in deployment order
type NetworkDeployments struct {
	Network domain.NetworkIdentity
	ChainID uint64
	Records []models.DeploymentRecord
}

// DeploymentSummary contains summary statistics
type DeploymentSummary struct {
	Total     int
	Reused    int
	ByNetwork map[domain.NetworkIdentity]int
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Networks []NetworkDeployments
	Summary  DeploymentSummary
}

// ListDeployments is the use case for listing recorded deployments
type ListDeployments struct {
	store DeploymentRecordStore
	sink  ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(store DeploymentRecordStore, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		store: store,
		sink:  sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	networks := domain.KnownNetworks()
	if params.Network != "" {
		id, err := domain.ParseNetworkIdentity(params.Network)
		if err != nil {
			return nil, err
		}
		networks = []domain.NetworkIdentity{id}
	}

	// Report progress
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment records",
		Spinner: true,
	})

	result := &DeploymentListResult{
		Summary: DeploymentSummary{ByNetwork: make(map[domain.NetworkIdentity]int)},
	}

	for _, network := range networks {
		file, err := uc.store.Load(ctx, network)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		records := filterRecords(file.Records, params.ContractName)
		if len(records) == 0 {
			continue
		}

		result.Networks = append(result.Networks, NetworkDeployments{
			Network: network,
			ChainID: file.ChainID,
			Records: records,
		})
		for _, record := range records {
			result.Summary.Total++
			result.Summary.ByNetwork[network]++
			if record.Reused {
				result.Summary.Reused++
			}
		}
	}

	// Report completion
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: result.Summary.Total,
		Total:   result.Summary.Total,
		Message: "Deployment records loaded",
	})

	return result, nil
}

func filterRecords(records []models.DeploymentRecord, contract string) []models.DeploymentRecord {
	if contract == "" {
		return records
	}
	var filtered []models.DeploymentRecord
	for _, record := range records {
		if record.Contract == contract {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
