package wallet

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known development mnemonic shared by hardhat and anvil.
const devMnemonic = "test test test test test test test test test test test junk"

func newTestDeriver() *HDDeriver {
	return NewHDDeriver(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHDDeriver_KnownVectors(t *testing.T) {
	accounts, err := newTestDeriver().Derive(devMnemonic, 3)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", accounts[0].Address.Hex())
	assert.Equal(t, "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", accounts[0].PrivateKeyHex())
	assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", accounts[1].Address.Hex())
	assert.Equal(t, "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d", accounts[1].PrivateKeyHex())
	assert.Equal(t, "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", accounts[2].Address.Hex())

	for i, acc := range accounts {
		assert.Equal(t, i, acc.Index)
	}
}

func TestHDDeriver_Deterministic(t *testing.T) {
	d := newTestDeriver()
	mnemonic := "fix tired congress gold type flight access jeans payment echo chef host"

	first, err := d.Derive(mnemonic, 10)
	require.NoError(t, err)
	second, err := d.Derive(mnemonic, 10)
	require.NoError(t, err)

	require.Len(t, first, 10)
	require.Len(t, second, 10)
	for i := range first {
		assert.Equal(t, first[i].Address, second[i].Address)
		assert.Equal(t, first[i].PrivateKeyHex(), second[i].PrivateKeyHex())
	}

	// A shorter derivation is a prefix of a longer one
	prefix, err := d.Derive(mnemonic, 4)
	require.NoError(t, err)
	for i := range prefix {
		assert.Equal(t, first[i].Address, prefix[i].Address)
	}
}

func TestHDDeriver_InvalidCount(t *testing.T) {
	_, err := newTestDeriver().Derive(devMnemonic, 0)
	assert.Error(t, err)
}

func TestValidMnemonic(t *testing.T) {
	assert.True(t, ValidMnemonic(devMnemonic))
	assert.False(t, ValidMnemonic("not a real seed phrase"))
	assert.False(t, ValidMnemonic(""))
}
