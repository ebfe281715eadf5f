package blockchain

import (
	"context"
	"crypto/ecdsa"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"
)

// returns 42 from every call
const answerInitCode = "600a600c600039600a6000f3602a60005260206000f3"

const simulatedEndpoint = "sim://local"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type simChain struct {
	backend *simulated.Backend
	signer  config.Account
	network *config.NetworkConfig
	pool    *ClientPool
}

// newSimChain starts a simulated chain that mines a block every 50ms.
func newSimChain(t *testing.T) *simChain {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	funds := new(big.Int).Mul(big.NewInt(1_000_000_000_000_000_000), big.NewInt(100))
	backend := simulated.NewBackend(types.GenesisAlloc{addr: {Balance: funds}})

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				backend.Commit()
			}
		}
	}()
	t.Cleanup(func() {
		close(stop)
		wg.Wait()
		backend.Close()
	})

	pool := NewClientPoolWithDialer(func(_ context.Context, _ string) (Backend, error) {
		return backend.Client(), nil
	}, discardLogger())

	return &simChain{
		backend: backend,
		signer:  config.Account{Index: 0, Address: addr, PrivateKey: key},
		network: &config.NetworkConfig{
			Identity:    domain.NetworkGanache,
			EndpointURL: simulatedEndpoint,
			ChainID:     1337,
		},
		pool: pool,
	}
}

func testArtifact(t *testing.T, name, abiJSON, code string) *models.Artifact {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	require.NoError(t, err)
	return &models.Artifact{
		ContractName: name,
		ABI:          parsed,
		Bytecode:     common.FromHex(code),
	}
}

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}
