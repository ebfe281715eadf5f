package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
)

const codeCheckTimeout = 5 * time.Second

// Checker implements the BlockchainChecker interface on top of the client pool
type Checker struct {
	clients *ClientPool
}

// NewChecker creates a new blockchain checker
func NewChecker(clients *ClientPool) *Checker {
	return &Checker{clients: clients}
}

// HasCode reports whether a contract exists at address
func (c *Checker) HasCode(ctx context.Context, endpoint string, address common.Address) (bool, error) {
	code, err := c.CodeAt(ctx, endpoint, address)
	if err != nil {
		return false, err
	}
	return len(code) > 0, nil
}

// CodeAt returns the runtime code at address in the latest block
func (c *Checker) CodeAt(ctx context.Context, endpoint string, address common.Address) ([]byte, error) {
	backend, _, err := c.clients.Get(ctx, endpoint, 0)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, codeCheckTimeout)
	defer cancel()

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	return code, nil
}

// Ensure the adapter implements the interface
var _ usecase.BlockchainChecker = (*Checker)(nil)
