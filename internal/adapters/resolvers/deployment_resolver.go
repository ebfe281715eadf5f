package resolvers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/models"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
)

// ArtifactDeployments exposes the per-chain deployments recorded in compiled artifacts
type ArtifactDeployments interface {
	DeployedAddress(ctx context.Context, name domain.ContractName, chainID uint64) (*models.ArtifactNetwork, error)
}

// DeploymentResolver finds earlier deployments of a contract, preferring the
// records of previous runs over the addresses a compiler toolchain wrote into
// the artifacts.
type DeploymentResolver struct {
	records   usecase.DeploymentRecordStore
	artifacts ArtifactDeployments
	log       *slog.Logger
}

// NewDeploymentResolver creates a new deployment resolver
func NewDeploymentResolver(
	records usecase.DeploymentRecordStore,
	artifacts ArtifactDeployments,
	log *slog.Logger,
) *DeploymentResolver {
	return &DeploymentResolver{
		records:   records,
		artifacts: artifacts,
		log:       log.With("component", "deployment-resolver"),
	}
}

// FindExisting resolves the most recent known deployment of name on a network
func (r *DeploymentResolver) FindExisting(ctx context.Context, network *config.NetworkConfig, name domain.ContractName) (*usecase.ExistingDeployment, error) {
	record, err := r.records.Find(ctx, network.Identity, name)
	switch {
	case err == nil:
		r.log.Debug("found recorded deployment", "contract", name, "network", network.Identity, "address", record.Address.Hex())
		return &usecase.ExistingDeployment{Address: record.Address, TxHash: record.TxHash, Source: "records"}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	// Artifact entries are keyed by chain id, unknown for local chains until dialed
	if r.artifacts == nil || network.ChainID == 0 {
		return nil, fmt.Errorf("%s on %s: %w", name, network.Identity, domain.ErrNotFound)
	}

	entry, err := r.artifacts.DeployedAddress(ctx, name, network.ChainID)
	switch {
	case err == nil:
		r.log.Debug("found artifact deployment", "contract", name, "chain_id", network.ChainID, "address", entry.Address.Hex())
		return &usecase.ExistingDeployment{Address: entry.Address, TxHash: entry.TransactionHash, Source: "artifact"}, nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrArtifactNotFound):
		return nil, fmt.Errorf("%s on %s: %w", name, network.Identity, domain.ErrNotFound)
	default:
		return nil, err
	}
}

// Ensure DeploymentResolver implements ExistingDeploymentFinder
var _ usecase.ExistingDeploymentFinder = (*DeploymentResolver)(nil)
