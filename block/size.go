// Package block sizes simulated transactions and packs them into a block
// byte budget.
package block

import (
	"errors"
	"fmt"
)

// ErrInvalidSize reports a size or budget that cannot describe a block.
var ErrInvalidSize = errors.New("invalid size")

// SizeModel describes the serialized size of one simulated transaction.
// The credential is either a short key-hash (address) or a full public key.
type SizeModel struct {
	BaseOverheadBytes    int  `json:"base_overhead_bytes"`
	SignatureBytes       int  `json:"signature_bytes"`
	CredentialBytesShort int  `json:"credential_bytes_short"`
	CredentialBytesFull  int  `json:"credential_bytes_full"`
	UseFullCredential    bool `json:"use_full_credential"`
}

// CredentialBytes returns the credential size selected by UseFullCredential.
func (m SizeModel) CredentialBytes() int {
	if m.UseFullCredential {
		return m.CredentialBytesFull
	}

	return m.CredentialBytesShort
}

// PerTxBytes returns the total serialized size of one transaction.
func (m SizeModel) PerTxBytes() int {
	return m.BaseOverheadBytes + m.SignatureBytes + m.CredentialBytes()
}

// Validate checks that every component is usable.
func (m SizeModel) Validate() error {
	if m.BaseOverheadBytes < 0 {
		return fmt.Errorf("%w: base overhead %d is negative",
			ErrInvalidSize, m.BaseOverheadBytes)
	}

	if m.SignatureBytes <= 0 {
		return fmt.Errorf("%w: signature bytes %d must be positive",
			ErrInvalidSize, m.SignatureBytes)
	}

	if m.CredentialBytesShort <= 0 {
		return fmt.Errorf("%w: short credential bytes %d must be positive",
			ErrInvalidSize, m.CredentialBytesShort)
	}

	if m.CredentialBytesFull <= 0 {
		return fmt.Errorf("%w: full credential bytes %d must be positive",
			ErrInvalidSize, m.CredentialBytesFull)
	}

	if per := m.PerTxBytes(); per <= 0 {
		return fmt.Errorf("%w: per-tx bytes %d must be positive",
			ErrInvalidSize, per)
	}

	return nil
}
