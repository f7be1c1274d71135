// Package keys derives the single long-term stealth secret from a BIP39
// mnemonic via BIP32, matching how node wallets derive their master key.
package keys

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	seedIterations = 2048
	seedLen        = 64
)

var (
	ErrEmptyMnemonic = errors.New("keys: empty mnemonic")
	ErrInvalidPath   = errors.New("keys: invalid derivation path")
)

// SeedFromMnemonic computes the BIP39 seed. The mnemonic is not checked
// against a wordlist.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	words := strings.Fields(norm.NFKD.String(mnemonic))
	if len(words) == 0 {
		return nil, ErrEmptyMnemonic
	}
	phrase := strings.Join(words, " ")
	salt := "mnemonic" + norm.NFKD.String(passphrase)
	return pbkdf2.Key([]byte(phrase), []byte(salt), seedIterations, seedLen, sha512.New), nil
}

// DeriveSecret returns the 32-byte secp256k1 secret at path below the BIP32
// master key of seed. An empty path yields the master key itself.
func DeriveSecret(seed []byte, path []uint32) ([]byte, error) {
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("keys: master key: %w", err)
	}
	for _, idx := range path {
		key, err = key.NewChildKey(idx)
		if err != nil {
			return nil, fmt.Errorf("keys: child %d: %w", idx, err)
		}
	}
	secret := make([]byte, len(key.Key))
	copy(secret, key.Key)
	return secret, nil
}

// ParsePath parses a path of the form m/44'/429'/0'/0/0. Both ' and h mark
// hardened indices. "" and "m" mean the master key.
func ParsePath(s string) ([]uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "m" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	if parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath, s)
	}

	path := make([]uint32, 0, len(parts)-1)
	for _, p := range parts[1:] {
		hardened := strings.HasSuffix(p, "'") || strings.HasSuffix(p, "h")
		if hardened {
			p = p[:len(p)-1]
		}
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil || n >= uint64(bip32.FirstHardenedChild) {
			return nil, fmt.Errorf("%w: segment %q", ErrInvalidPath, p)
		}
		idx := uint32(n)
		if hardened {
			idx += bip32.FirstHardenedChild
		}
		path = append(path, idx)
	}
	return path, nil
}
