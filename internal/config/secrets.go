package config

import (
	"errors"
	"strings"
	"unicode"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
)

var (
	errEmptySecret   = errors.New("file is empty after trimming")
	errInvalidSecret = errors.New("content is not a valid BIP39 mnemonic")
)

// sanitizeMnemonic trims surrounding whitespace and drops line breaks, tabs, the
// unicode line/paragraph separators and every other control character.
func sanitizeMnemonic(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '\u2028' || r == '\u2029' || unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}

// loadMnemonic reads the seed phrase of a public network from its secret file.
func loadMnemonic(network domain.NetworkIdentity, path string, readFile func(string) ([]byte, error), valid func(string) bool) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", &domain.SecretLoadError{Network: string(network), Path: path, Err: err}
	}

	mnemonic := sanitizeMnemonic(string(data))
	if mnemonic == "" {
		return "", &domain.SecretLoadError{Network: string(network), Path: path, Malformed: true, Err: errEmptySecret}
	}
	if valid != nil && !valid(mnemonic) {
		return "", &domain.SecretLoadError{Network: string(network), Path: path, Malformed: true, Err: errInvalidSecret}
	}
	return mnemonic, nil
}
