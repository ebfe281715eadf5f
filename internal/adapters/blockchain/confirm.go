package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
)

// DefaultConfirmTimeout bounds a single wait for a transaction receipt
const DefaultConfirmTimeout = 2 * time.Minute

// confirmer waits for receipts. A wait that times out is retried up to retries
// more times; any other failure ends the wait.
type confirmer struct {
	timeout time.Duration
	retries int
	log     *slog.Logger
}

func (c confirmer) waitMined(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
	timeout := c.timeout
	if timeout <= 0 {
		timeout = DefaultConfirmTimeout
	}

	for attempt := 0; ; attempt++ {
		waitCtx, cancel := context.WithTimeout(ctx, timeout)
		receipt, err := bind.WaitMined(waitCtx, backend, tx)
		cancel()
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, fmt.Errorf("transaction %s reverted in block %d", tx.Hash().Hex(), receipt.BlockNumber)
			}
			return receipt, nil
		}

		if !errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil || attempt >= c.retries {
			return nil, fmt.Errorf("transaction %s was not confirmed: %w", tx.Hash().Hex(), err)
		}
		c.log.Warn("transaction not confirmed yet, waiting again",
			"tx_hash", tx.Hash().Hex(),
			"attempt", attempt+1,
			"timeout", timeout,
		)
	}
}
