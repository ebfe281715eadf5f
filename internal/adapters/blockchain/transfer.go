package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

// Transferrer sends plain value transfers between accounts
type Transferrer struct {
	clients *ClientPool
	confirm confirmer
	log     *slog.Logger
}

// NewTransferrer creates a new Transferrer
func NewTransferrer(cfg *config.RuntimeConfig, clients *ClientPool, log *slog.Logger) *Transferrer {
	log = log.With("component", "transferrer")
	return &Transferrer{
		clients: clients,
		confirm: confirmer{timeout: cfg.ConfirmTimeout, retries: cfg.ConfirmRetries, log: log},
		log:     log,
	}
}

// Transfer signs and sends the transfer, then waits for its receipt
func (t *Transferrer) Transfer(ctx context.Context, req usecase.TransferRequest) (*usecase.TransferReceipt, error) {
	if req.Network == nil {
		return nil, fmt.Errorf("no network given")
	}
	if req.From.PrivateKey == nil {
		return nil, fmt.Errorf("sender %s has no private key", req.From.Address.Hex())
	}
	if req.Wei == nil || req.Wei.Sign() < 0 {
		return nil, fmt.Errorf("invalid transfer amount %v", req.Wei)
	}

	backend, chainID, err := t.clients.Get(ctx, req.Network.EndpointURL, req.Network.ChainID)
	if err != nil {
		return nil, err
	}

	nonce, err := backend.PendingNonceAt(ctx, req.From.Address)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}

	to := req.To
	gas, err := backend.EstimateGas(ctx, ethereum.CallMsg{From: req.From.Address, To: &to, Value: req.Wei})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	head, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("get latest header: %w", err)
	}

	var tx *types.Transaction
	if head.BaseFee != nil {
		tip, err := backend.SuggestGasTipCap(ctx)
		if err != nil {
			return nil, fmt.Errorf("get gas tip cap: %w", err)
		}
		feeCap := new(big.Int).Mul(head.BaseFee, bigTwo)
		feeCap.Add(feeCap, tip)
		tx = types.NewTx(&types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gas,
			To:        &to,
			Value:     req.Wei,
		})
	} else {
		gasPrice, err := backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("get gas price: %w", err)
		}
		tx = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			To:       &to,
			Value:    req.Wei,
		})
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), req.From.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("sign transfer: %w", err)
	}
	if err := backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send transfer: %w", err)
	}

	t.log.Info("transfer submitted",
		"tx_hash", signed.Hash().Hex(),
		"from", req.From.Address.Hex(),
		"to", to.Hex(),
		"wei", req.Wei.String(),
	)

	receipt, err := t.confirm.waitMined(ctx, backend, signed)
	if err != nil {
		return nil, err
	}
	return &usecase.TransferReceipt{
		TxHash:      signed.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}, nil
}

var bigTwo = big.NewInt(2)

var _ usecase.ValueTransferrer = (*Transferrer)(nil)
