package signer

import (
	"crypto"
	"crypto/rand"
	"fmt"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

type ed25519Signer struct{}

func newEd25519() Signer { return ed25519Signer{} }

func (ed25519Signer) Name() string { return "ed25519" }

func (ed25519Signer) Sizes() Sizes {
	return Sizes{
		PublicKey: ed25519.PublicKeySize,
		Signature: ed25519.SignatureSize,
	}
}

func (ed25519Signer) GenerateKey() (crypto.PublicKey, crypto.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("ed25519 keygen: %w", err)
	}

	return pub, priv, nil
}

func (ed25519Signer) Sign(priv crypto.PrivateKey, msg []byte) (sig []byte, err error) {
	sk, ok := priv.(ed25519.PrivateKey)
	if !ok || len(sk) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("ed25519 sign: %w", ErrKeyType)
	}

	defer recoverError("ed25519 sign", &err)

	return ed25519.Sign(sk, msg), nil
}

func (ed25519Signer) Verify(pub crypto.PublicKey, msg, sig []byte) bool {
	pk, ok := pub.(ed25519.PublicKey)
	if !ok || len(pk) != ed25519.PublicKeySize {
		return false
	}

	return ed25519.Verify(pk, msg, sig)
}
