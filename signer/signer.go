// Package signer defines the signature capability whose cost is measured and
// registers the concrete schemes available to the CLI.
package signer

import (
	"crypto"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownScheme is returned by New for unregistered names.
	ErrUnknownScheme = errors.New("unknown signature scheme")
	// ErrKeyType is returned when a key of another scheme is passed in.
	ErrKeyType = errors.New("key type mismatch")
)

// Signer generates keys, signs and verifies. Keys are opaque to callers.
type Signer interface {
	Name() string
	GenerateKey() (crypto.PublicKey, crypto.PrivateKey, error)
	Sign(priv crypto.PrivateKey, msg []byte) ([]byte, error)
	Verify(pub crypto.PublicKey, msg, sig []byte) bool
}

// Sizes holds the fixed encoded sizes of a scheme.
type Sizes struct {
	PublicKey int `json:"public_key_bytes"`
	Signature int `json:"signature_bytes"`
}

// Sizer is implemented by signers with fixed-size outputs.
type Sizer interface {
	Sizes() Sizes
}

// Default is the scheme used when none is configured.
const Default = "ml-dsa-65"

var registry = map[string]func() Signer{
	"ml-dsa-44":          newMLDSA44,
	"ml-dsa-65":          newMLDSA65,
	"ml-dsa-87":          newMLDSA87,
	"ed25519-dilithium3": newEdDilithium3,
	"ed448":              newEd448,
	"ed25519":            newEd25519,
	"schnorr-secp256k1":  newSchnorr,
}

// New returns the registered signer with the given name.
func New(name string) (Signer, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}

	return ctor(), nil
}

// Names returns all registered scheme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// recoverError converts a panic raised by a backend into an error.
func recoverError(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s panicked: %v", op, r)
	}
}
