package signer

import (
	"crypto"
	"fmt"

	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/ed448"
	"github.com/cloudflare/circl/sign/eddilithium3"
	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"
)

// schemeSigner adapts a circl sign.Scheme.
type schemeSigner struct {
	name   string
	scheme sign.Scheme
}

func newMLDSA44() Signer      { return &schemeSigner{"ml-dsa-44", mldsa44.Scheme()} }
func newMLDSA65() Signer      { return &schemeSigner{"ml-dsa-65", mldsa65.Scheme()} }
func newMLDSA87() Signer      { return &schemeSigner{"ml-dsa-87", mldsa87.Scheme()} }
func newEdDilithium3() Signer { return &schemeSigner{"ed25519-dilithium3", eddilithium3.Scheme()} }
func newEd448() Signer        { return &schemeSigner{"ed448", ed448.Scheme()} }

func (s *schemeSigner) Name() string { return s.name }

func (s *schemeSigner) Sizes() Sizes {
	return Sizes{
		PublicKey: s.scheme.PublicKeySize(),
		Signature: s.scheme.SignatureSize(),
	}
}

func (s *schemeSigner) GenerateKey() (crypto.PublicKey, crypto.PrivateKey, error) {
	pub, priv, err := s.scheme.GenerateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("%s keygen: %w", s.name, err)
	}

	return pub, priv, nil
}

func (s *schemeSigner) Sign(priv crypto.PrivateKey, msg []byte) (sig []byte, err error) {
	sk, ok := priv.(sign.PrivateKey)
	if !ok || sk.Scheme().Name() != s.scheme.Name() {
		return nil, fmt.Errorf("%s sign: %w", s.name, ErrKeyType)
	}

	defer recoverError(s.name+" sign", &err)

	return s.scheme.Sign(sk, msg, nil), nil
}

func (s *schemeSigner) Verify(pub crypto.PublicKey, msg, sig []byte) (ok bool) {
	pk, isPK := pub.(sign.PublicKey)
	if !isPK || pk.Scheme().Name() != s.scheme.Name() {
		return false
	}

	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	return s.scheme.Verify(pk, msg, sig, nil)
}
