package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the subset of an Ethereum client the deployment adapters use.
// *ethclient.Client and the simulated backend's client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dialer opens a Backend for a JSON-RPC endpoint
type Dialer func(ctx context.Context, endpoint string) (Backend, error)

// DialEthclient is the Dialer used outside of tests
func DialEthclient(ctx context.Context, endpoint string) (Backend, error) {
	return ethclient.DialContext(ctx, endpoint)
}

type pooledClient struct {
	backend Backend
	chainID *big.Int
}

// ClientPool hands out one connection per endpoint for the lifetime of the process
type ClientPool struct {
	dial    Dialer
	mu      sync.Mutex
	clients map[string]*pooledClient
	log     *slog.Logger
}

// NewClientPool creates a pool that dials endpoints with ethclient
func NewClientPool(log *slog.Logger) *ClientPool {
	return NewClientPoolWithDialer(DialEthclient, log)
}

// NewClientPoolWithDialer creates a pool with a custom Dialer
func NewClientPoolWithDialer(dial Dialer, log *slog.Logger) *ClientPool {
	return &ClientPool{
		dial:    dial,
		clients: make(map[string]*pooledClient),
		log:     log.With("component", "client-pool"),
	}
}

// Get returns the Backend for endpoint together with the chain id it reports.
// A non-zero expectedChainID must match what the endpoint reports.
func (p *ClientPool) Get(ctx context.Context, endpoint string, expectedChainID uint64) (Backend, *big.Int, error) {
	if endpoint == "" {
		return nil, nil, &domain.ConfigurationError{Reason: "no endpoint configured"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	client, ok := p.clients[endpoint]
	if !ok {
		backend, err := p.dial(ctx, endpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to RPC %s: %w", endpoint, err)
		}
		chainID, err := backend.ChainID(ctx)
		if err != nil {
			closeBackend(backend)
			return nil, nil, fmt.Errorf("failed to get chain ID from %s: %w", endpoint, err)
		}
		client = &pooledClient{backend: backend, chainID: chainID}
		p.clients[endpoint] = client
		p.log.Debug("connected", "endpoint", endpoint, "chain_id", chainID)
	}

	if expectedChainID != 0 && client.chainID.Uint64() != expectedChainID {
		return nil, nil, &domain.ConfigurationError{
			Reason: fmt.Sprintf("chain ID mismatch at %s: expected %d, got %d", endpoint, expectedChainID, client.chainID.Uint64()),
		}
	}
	return client.backend, new(big.Int).Set(client.chainID), nil
}

// Close closes every pooled connection
func (p *ClientPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for endpoint, client := range p.clients {
		closeBackend(client.backend)
		delete(p.clients, endpoint)
	}
}

func closeBackend(b Backend) {
	if c, ok := b.(interface{ Close() }); ok {
		c.Close()
	}
}
