package signer

import (
	"crypto"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/minio/sha256-simd"
)

// schnorrSigner signs SHA-256(msg) with BIP-340 Schnorr over secp256k1.
type schnorrSigner struct{}

func newSchnorr() Signer { return schnorrSigner{} }

func (schnorrSigner) Name() string { return "schnorr-secp256k1" }

func (schnorrSigner) Sizes() Sizes {
	return Sizes{
		PublicKey: schnorr.PubKeyBytesLen,
		Signature: schnorr.SignatureSize,
	}
}

func (schnorrSigner) GenerateKey() (crypto.PublicKey, crypto.PrivateKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("schnorr keygen: %w", err)
	}

	return priv.PubKey(), priv, nil
}

func (schnorrSigner) Sign(priv crypto.PrivateKey, msg []byte) (sig []byte, err error) {
	sk, ok := priv.(*btcec.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("schnorr sign: %w", ErrKeyType)
	}

	defer recoverError("schnorr sign", &err)

	digest := sha256.Sum256(msg)

	s, err := schnorr.Sign(sk, digest[:])
	if err != nil {
		return nil, fmt.Errorf("schnorr sign: %w", err)
	}

	return s.Serialize(), nil
}

func (schnorrSigner) Verify(pub crypto.PublicKey, msg, sig []byte) bool {
	pk, ok := pub.(*btcec.PublicKey)
	if !ok {
		return false
	}

	s, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}

	digest := sha256.Sum256(msg)

	return s.Verify(digest[:], pk)
}
