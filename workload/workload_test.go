package workload

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/weiihann/pqblock/hashing"
)

func TestGeneratorDeterministicSeed(t *testing.T) {
	cfg := Config{MessageBytes: 64, PerTxBytes: 3191, Seed: 42}

	gen1, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("first generator failed: %v", err)
	}

	gen2, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("second generator failed: %v", err)
	}

	if !bytes.Equal(gen1.Base(), gen2.Base()) {
		t.Error("base payloads are not deterministic for same seed")
	}

	sig := bytes.Repeat([]byte{0x5a}, 100)
	ids1, sum1 := gen1.Identifiers(10, sig, hashing.DoubleSHA256)
	ids2, sum2 := gen2.Identifiers(10, sig, hashing.DoubleSHA256)

	for i := range ids1 {
		if ids1[i] != ids2[i] {
			t.Fatalf("identifier %d differs", i)
		}
	}

	if sum1 != sum2 {
		t.Errorf("summaries differ: %+v vs %+v", sum1, sum2)
	}
}

func TestGeneratorRandomBase(t *testing.T) {
	cfg := Config{MessageBytes: 64, PerTxBytes: 100}

	gen1, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	gen2, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	if len(gen1.Base()) != 56 {
		t.Errorf("base length = %d, want 56", len(gen1.Base()))
	}
	if bytes.Equal(gen1.Base(), gen2.Base()) {
		t.Error("unseeded base payloads should differ")
	}
}

func TestGeneratorMessageTooShort(t *testing.T) {
	_, err := NewGenerator(Config{MessageBytes: 7})
	if !errors.Is(err, ErrMessageTooShort) {
		t.Errorf("err = %v, want ErrMessageTooShort", err)
	}

	gen, err := NewGenerator(Config{MessageBytes: 8, Seed: 1})
	if err != nil {
		t.Fatalf("8-byte message rejected: %v", err)
	}
	if len(gen.Message(0)) != 8 {
		t.Errorf("message length = %d, want 8", len(gen.Message(0)))
	}
}

func TestMessageNonce(t *testing.T) {
	gen, err := NewGenerator(Config{MessageBytes: 64, Seed: 7})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	msg := gen.Message(0x0102030405060708)
	if len(msg) != 64 {
		t.Fatalf("message length = %d, want 64", len(msg))
	}
	if !bytes.Equal(msg[:56], gen.Base()) {
		t.Error("message does not start with base payload")
	}

	nonce := binary.LittleEndian.Uint64(msg[56:])
	if nonce != 0x0102030405060708 {
		t.Errorf("nonce = %#x, want 0x0102030405060708", nonce)
	}
	if msg[56] != 0x08 {
		t.Errorf("nonce is not little-endian: first byte %#x", msg[56])
	}
}

func TestTransactionPadding(t *testing.T) {
	gen, err := NewGenerator(Config{MessageBytes: 64, PerTxBytes: 200, Seed: 3})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	sig := bytes.Repeat([]byte{0xee}, 50)
	tx := gen.Transaction(5, sig)

	if len(tx) != 200 {
		t.Fatalf("tx length = %d, want 200", len(tx))
	}
	if !bytes.Equal(tx[:64], gen.Message(5)) {
		t.Error("tx does not start with message")
	}
	if !bytes.Equal(tx[64:114], sig) {
		t.Error("signature not placed after message")
	}
	if !bytes.Equal(tx[114:], make([]byte, 86)) {
		t.Error("padding is not zero")
	}
}

func TestTransactionNotTruncated(t *testing.T) {
	gen, err := NewGenerator(Config{MessageBytes: 64, PerTxBytes: 100, Seed: 3})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	sig := bytes.Repeat([]byte{0xee}, 3309)

	tx := gen.Transaction(0, sig)
	if len(tx) != 64+3309 {
		t.Errorf("tx length = %d, want %d", len(tx), 64+3309)
	}

	_, summary := gen.Identifiers(3, sig, hashing.DoubleSHA256)
	if summary.Oversized != 3 {
		t.Errorf("oversized = %d, want 3", summary.Oversized)
	}
	if summary.AssembledBytes != 64+3309 {
		t.Errorf("assembled = %d, want %d", summary.AssembledBytes, 64+3309)
	}
}

func TestIdentifiersMatchTransactions(t *testing.T) {
	gen, err := NewGenerator(Config{MessageBytes: 64, PerTxBytes: 3191, Seed: 9})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	sig := []byte("signature")
	ids, summary := gen.Identifiers(4, sig, hashing.DoubleSHA256)

	if summary.Transactions != 4 || summary.Oversized != 0 {
		t.Errorf("summary = %+v", summary)
	}

	for i, id := range ids {
		want := hashing.DoubleSHA256(gen.Transaction(uint64(i), sig))
		if id != want {
			t.Errorf("id %d = %s, want %s", i, id, want)
		}
	}

	if ids[0] == ids[1] {
		t.Error("distinct nonces produced identical ids")
	}
}
