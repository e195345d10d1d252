// Package address derives and checks Waves addresses. The provider uses it
// to cross-check accounts the wallet reports against the configured
// network; it never derives keys or signs anything.
package address

import (
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	version       = 1
	publicKeyLen  = 32
	hashLen       = 20
	checksumLen   = 4
	addressRawLen = 2 + hashLen + checksumLen
)

// FromPublicKey derives the address of a base58 public key on the network
// identified by chainID.
func FromPublicKey(publicKey string, chainID byte) (string, error) {
	raw := base58.Decode(publicKey)
	if len(raw) != publicKeyLen {
		return "", errors.Errorf("invalid public key length %d", len(raw))
	}

	keyHash := secureHash(raw)
	body := make([]byte, 0, addressRawLen)
	body = append(body, version, chainID)
	body = append(body, keyHash[:hashLen]...)

	bodyHash := secureHash(body)
	body = append(body, bodyHash[:checksumLen]...)

	return base58.Encode(body), nil
}

// Matches reports whether the address belongs to the public key on the
// given network.
func Matches(addr, publicKey string, chainID byte) bool {
	derived, err := FromPublicKey(publicKey, chainID)
	if err != nil {
		return false
	}
	return derived == addr
}

// secureHash is keccak-256 over blake2b-256, the Waves address hash chain.
func secureHash(data []byte) []byte {
	blake := blake2b.Sum256(data)
	keccak := sha3.NewLegacyKeccak256()
	keccak.Write(blake[:])
	return keccak.Sum(nil)
}
