// Package hashing provides the double-hash primitive used for transaction
// identifiers and Merkle tree nodes.
package hashing

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
)

// Size is the byte length of a Hash.
const Size = 32

// ErrUnknownHash is returned by ByName for unregistered hash names.
var ErrUnknownHash = errors.New("unknown hash function")

// Hash is a 32-byte digest.
type Hash [Size]byte

// String returns the lowercase hex encoding of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for hex input.
func (h *Hash) UnmarshalText(text []byte) error {
	if hex.DecodedLen(len(text)) != Size {
		return fmt.Errorf("hash: want %d hex bytes, got %d", 2*Size, len(text))
	}

	_, err := hex.Decode(h[:], text)

	return err
}

// IsZero reports whether every byte of h is zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Func maps arbitrary bytes to a Hash. Implementations must be pure.
type Func func(data []byte) Hash

// DoubleSHA256 returns SHA256(SHA256(data)).
func DoubleSHA256(data []byte) Hash {
	first := sha256.Sum256(data)

	return sha256.Sum256(first[:])
}

// DoubleBLAKE3 returns BLAKE3-256(BLAKE3-256(data)).
func DoubleBLAKE3(data []byte) Hash {
	first := blake3.Sum256(data)

	return blake3.Sum256(first[:])
}

// Default is the hash name used when none is configured.
const Default = "sha256d"

var registry = map[string]Func{
	"sha256d": DoubleSHA256,
	"blake3d": DoubleBLAKE3,
}

// ByName resolves a registered hash function.
func ByName(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}

	return fn, nil
}

// Names returns the registered hash names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
