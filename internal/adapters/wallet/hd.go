package wallet

import (
	"fmt"
	"log/slog"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cosmos/go-bip39"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
)

// HDDeriver derives Ethereum accounts from a BIP39 mnemonic along the standard
// m/44'/60'/0'/0/i path.
type HDDeriver struct {
	basePath accounts.DerivationPath
	log      *slog.Logger
}

// NewHDDeriver creates a deriver rooted at the default Ethereum base path
func NewHDDeriver(log *slog.Logger) *HDDeriver {
	return &HDDeriver{
		basePath: accounts.DefaultBaseDerivationPath,
		log:      log.With("component", "hd-deriver"),
	}
}

// Derive returns exactly count accounts, index 0 first. The result only depends
// on the mnemonic and count.
func (d *HDDeriver) Derive(mnemonic string, count int) ([]config.Account, error) {
	if count <= 0 {
		return nil, fmt.Errorf("derivation count must be positive, got %d", count)
	}

	// Seeds of local chains are not required to carry a valid checksum.
	seed := bip39.NewSeed(mnemonic, "")
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	next := accounts.DefaultIterator(d.basePath)
	result := make([]config.Account, 0, count)
	for i := 0; i < count; i++ {
		path := next()
		key := master
		for _, component := range path {
			key, err = key.Derive(component)
			if err != nil {
				return nil, fmt.Errorf("failed to derive %s: %w", path, err)
			}
		}

		ecPriv, err := key.ECPrivKey()
		if err != nil {
			return nil, fmt.Errorf("failed to extract private key at %s: %w", path, err)
		}
		privateKey, err := crypto.ToECDSA(ecPriv.Serialize())
		if err != nil {
			return nil, fmt.Errorf("failed to convert private key at %s: %w", path, err)
		}

		result = append(result, config.Account{
			Index:      i,
			Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
			PrivateKey: privateKey,
		})
	}

	d.log.Debug("derived accounts", "count", count, "first", result[0].Address.Hex())
	return result, nil
}

// ValidMnemonic reports whether the phrase passes BIP39 wordlist and checksum
// validation.
func ValidMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}
