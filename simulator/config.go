package simulator

import (
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/weiihann/pqblock/block"
	"github.com/weiihann/pqblock/hashing"
	"github.com/weiihann/pqblock/workload"
)

// Config holds every parameter of one simulation run.
type Config struct {
	BlockByteBudget      int    `yaml:"block_byte_budget"`
	BaseOverheadBytes    int    `yaml:"base_overhead_bytes"`
	SignatureBytes       int    `yaml:"signature_bytes"`
	UseFullCredential    bool   `yaml:"use_full_credential"`
	CredentialBytesShort int    `yaml:"credential_bytes_short"`
	CredentialBytesFull  int    `yaml:"credential_bytes_full"`
	ForcedTxCount        *int   `yaml:"forced_tx_count"`
	MessageByteLength    int    `yaml:"message_byte_length"`
	Hash                 string `yaml:"hash"`
	Seed                 int64  `yaml:"seed"`
}

// DefaultConfig returns the Dilithium3 address model in a 1 MB block.
func DefaultConfig() Config {
	return Config{
		BlockByteBudget:      1_000_000,
		BaseOverheadBytes:    186,
		SignatureBytes:       2973,
		CredentialBytesShort: 32,
		CredentialBytesFull:  1952,
		MessageByteLength:    64,
		Hash:                 hashing.Default,
	}
}

// SizeModel returns the transaction size model described by c.
func (c Config) SizeModel() block.SizeModel {
	return block.SizeModel{
		BaseOverheadBytes:    c.BaseOverheadBytes,
		SignatureBytes:       c.SignatureBytes,
		CredentialBytesShort: c.CredentialBytesShort,
		CredentialBytesFull:  c.CredentialBytesFull,
		UseFullCredential:    c.UseFullCredential,
	}
}

// WithForcedTxCount returns a copy of c that packs exactly n transactions.
func (c Config) WithForcedTxCount(n int) Config {
	c.ForcedTxCount = &n

	return c
}

// Validate checks c before any measurement. Failures wrap ErrConfiguration.
func (c Config) Validate() error {
	if c.BlockByteBudget <= 0 {
		return fmt.Errorf("%w: block byte budget %d must be positive",
			ErrConfiguration, c.BlockByteBudget)
	}

	if err := c.SizeModel().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if c.ForcedTxCount != nil && *c.ForcedTxCount < 0 {
		return fmt.Errorf("%w: forced tx count %d is negative",
			ErrConfiguration, *c.ForcedTxCount)
	}

	if c.MessageByteLength < workload.NonceSize {
		return fmt.Errorf("%w: message length %d, need at least %d",
			ErrConfiguration, c.MessageByteLength, workload.NonceSize)
	}

	if _, err := hashing.ByName(c.Hash); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return nil
}

// LoadConfig decodes YAML from r on top of base. Unknown keys are rejected.
func LoadConfig(r io.Reader, base Config) (Config, error) {
	cfg := base

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: decode yaml: %w", ErrConfiguration, err)
	}

	return cfg, nil
}
