package signer

import (
	"errors"
	"testing"
)

func TestRegisteredSignersRoundTrip(t *testing.T) {
	msg := []byte("calibration message with an 8 byte nonce")

	for _, name := range Names() {
		s, err := New(name)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}

		if s.Name() != name {
			t.Errorf("Name() = %q, want %q", s.Name(), name)
		}

		pub, priv, err := s.GenerateKey()
		if err != nil {
			t.Fatalf("%s: GenerateKey failed: %v", name, err)
		}

		sig, err := s.Sign(priv, msg)
		if err != nil {
			t.Fatalf("%s: Sign failed: %v", name, err)
		}

		if !s.Verify(pub, msg, sig) {
			t.Errorf("%s: signature did not verify", name)
		}

		tampered := append([]byte(nil), msg...)
		tampered[0] ^= 0xff
		if s.Verify(pub, tampered, sig) {
			t.Errorf("%s: tampered message verified", name)
		}

		sizer, ok := s.(Sizer)
		if !ok {
			t.Fatalf("%s: does not report sizes", name)
		}
		if got := sizer.Sizes().Signature; got != len(sig) {
			t.Errorf("%s: Sizes().Signature = %d, signature has %d bytes",
				name, got, len(sig))
		}
		if sizer.Sizes().PublicKey <= 0 {
			t.Errorf("%s: non-positive public key size", name)
		}
	}
}

func TestMLDSASizes(t *testing.T) {
	tests := []struct {
		name    string
		wantPK  int
		wantSig int
	}{
		{"ml-dsa-44", 1312, 2420},
		{"ml-dsa-65", 1952, 3309},
		{"ml-dsa-87", 2592, 4627},
	}

	for _, tt := range tests {
		s, err := New(tt.name)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tt.name, err)
		}

		sizes := s.(Sizer).Sizes()
		if sizes.PublicKey != tt.wantPK {
			t.Errorf("%s: public key = %d, want %d", tt.name, sizes.PublicKey, tt.wantPK)
		}
		if sizes.Signature != tt.wantSig {
			t.Errorf("%s: signature = %d, want %d", tt.name, sizes.Signature, tt.wantSig)
		}
	}
}

func TestKeyTypeMismatch(t *testing.T) {
	mldsa, err := New("ml-dsa-65")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ed, err := New("ed25519")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	edPub, edPriv, err := ed.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	if _, err := mldsa.Sign(edPriv, []byte("m")); !errors.Is(err, ErrKeyType) {
		t.Errorf("Sign with foreign key err = %v, want ErrKeyType", err)
	}
	if mldsa.Verify(edPub, []byte("m"), make([]byte, 3309)) {
		t.Error("Verify with foreign key returned true")
	}

	schnorr, err := New("schnorr-secp256k1")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := schnorr.Sign(edPriv, []byte("m")); !errors.Is(err, ErrKeyType) {
		t.Errorf("schnorr Sign with foreign key err = %v, want ErrKeyType", err)
	}
	if _, err := ed.Sign("not a key", []byte("m")); !errors.Is(err, ErrKeyType) {
		t.Errorf("ed25519 Sign with foreign key err = %v, want ErrKeyType", err)
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("rsa-1024")
	if !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("err = %v, want ErrUnknownScheme", err)
	}
}

func TestDefaultRegistered(t *testing.T) {
	if _, err := New(Default); err != nil {
		t.Errorf("default scheme %q not registered: %v", Default, err)
	}
}
