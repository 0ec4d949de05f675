// Package workload builds the synthetic payloads of a simulated block: the
// random base payload, the calibration message, and one serialized
// transaction per block slot.
package workload

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	mrand "math/rand"

	"github.com/weiihann/pqblock/hashing"
)

// NonceSize is the length of the little-endian nonce appended to the base
// payload.
const NonceSize = 8

// ErrMessageTooShort is returned when the message cannot hold the nonce.
var ErrMessageTooShort = errors.New("message too short")

// Config controls payload generation.
type Config struct {
	// MessageBytes is the signed message length, nonce included.
	MessageBytes int
	// PerTxBytes is the modeled serialized transaction size.
	PerTxBytes int
	// Seed selects a deterministic base payload; 0 draws from crypto/rand.
	Seed int64
}

// Summary contains statistics about generated transactions.
type Summary struct {
	Transactions int
	// Oversized counts transactions whose message and signature already
	// exceed PerTxBytes; those are hashed unpadded and untruncated.
	Oversized      int
	AssembledBytes int
}

// Generator produces messages and transactions around one base payload.
type Generator struct {
	cfg  Config
	base []byte
}

// NewGenerator draws the base payload for cfg.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.MessageBytes < NonceSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d",
			ErrMessageTooShort, cfg.MessageBytes, NonceSize)
	}

	var src io.Reader = rand.Reader
	if cfg.Seed != 0 {
		src = mrand.New(mrand.NewSource(cfg.Seed))
	}

	base := make([]byte, cfg.MessageBytes-NonceSize)
	if _, err := io.ReadFull(src, base); err != nil {
		return nil, fmt.Errorf("read base payload: %w", err)
	}

	return &Generator{cfg: cfg, base: base}, nil
}

// Base returns a copy of the base payload.
func (g *Generator) Base() []byte {
	return append([]byte(nil), g.base...)
}

// Message returns base || LE64(nonce).
func (g *Generator) Message(nonce uint64) []byte {
	msg := make([]byte, len(g.base)+NonceSize)
	copy(msg, g.base)
	binary.LittleEndian.PutUint64(msg[len(g.base):], nonce)

	return msg
}

// Transaction returns Message(index) || sig, zero-padded to PerTxBytes.
// A longer assembly is returned as is.
func (g *Generator) Transaction(index uint64, sig []byte) []byte {
	assembled := len(g.base) + NonceSize + len(sig)
	tx := make([]byte, max(assembled, g.cfg.PerTxBytes))

	copy(tx, g.base)
	binary.LittleEndian.PutUint64(tx[len(g.base):], index)
	copy(tx[len(g.base)+NonceSize:], sig)

	return tx
}

// Identifiers returns digest(Transaction(i, sig)) for i in [0, count).
func (g *Generator) Identifiers(
	count int,
	sig []byte,
	digest hashing.Func,
) ([]hashing.Hash, Summary) {
	ids := make([]hashing.Hash, count)
	summary := Summary{
		AssembledBytes: len(g.base) + NonceSize + len(sig),
	}

	for i := 0; i < count; i++ {
		ids[i] = digest(g.Transaction(uint64(i), sig))

		summary.Transactions++
		if summary.AssembledBytes > g.cfg.PerTxBytes {
			summary.Oversized++
		}
	}

	return ids, summary
}
