package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// Deployer submits contract creation transactions signed by a derived account
type Deployer struct {
	clients  *ClientPool
	confirm  confirmer
	gasLimit uint64
	log      *slog.Logger
}

// NewDeployer creates a new Deployer
func NewDeployer(cfg *config.RuntimeConfig, clients *ClientPool, log *slog.Logger) *Deployer {
	log = log.With("component", "deployer")
	return &Deployer{
		clients:  clients,
		confirm:  confirmer{timeout: cfg.ConfirmTimeout, retries: cfg.ConfirmRetries, log: log},
		gasLimit: cfg.GasLimit,
		log:      log,
	}
}

// Deploy creates the contract and blocks until its receipt is available
func (d *Deployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployReceipt, error) {
	if req.Network == nil {
		return nil, fmt.Errorf("no network given for %s", req.Contract)
	}
	if req.Artifact == nil {
		return nil, fmt.Errorf("no artifact given for %s", req.Contract)
	}
	if req.Signer.PrivateKey == nil {
		return nil, fmt.Errorf("signer %s has no private key", req.Signer.Address.Hex())
	}

	backend, chainID, err := d.clients.Get(ctx, req.Network.EndpointURL, req.Network.ChainID)
	if err != nil {
		return nil, err
	}

	args, err := CoerceArgs(req.Artifact.ABI.Constructor.Inputs, req.Args)
	if err != nil {
		return nil, fmt.Errorf("invalid constructor arguments for %s: %w", req.Contract, err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(req.Signer.PrivateKey, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx
	auth.GasLimit = d.gasLimit

	address, tx, _, err := bind.DeployContract(auth, req.Artifact.ABI, req.Artifact.Bytecode, backend, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to submit %s: %w", req.Contract, err)
	}

	d.log.Info("contract deployment transaction sent",
		"contract", req.Contract,
		"address", address.Hex(),
		"tx_hash", tx.Hash().Hex(),
	)

	receipt, err := d.confirm.waitMined(ctx, backend, tx)
	if err != nil {
		return nil, err
	}

	return &usecase.DeployReceipt{
		Address:     address,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

var _ usecase.ContractDeployer = (*Deployer)(nil)
