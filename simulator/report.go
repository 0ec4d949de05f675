package simulator

import (
	"time"

	"github.com/weiihann/pqblock/block"
	"github.com/weiihann/pqblock/hashing"
)

// Report is the outcome of one simulation run. The totals come from
// timing.Extrapolate and obey TotalSignSeconds == SignSeconds * TxCount
// exactly.
type Report struct {
	RunID                  string              `json:"run_id"`
	StartedAt              time.Time           `json:"started_at"`
	Scheme                 string              `json:"scheme"`
	Hash                   string              `json:"hash"`
	SizeModel              block.SizeModel     `json:"size_model"`
	Packing                block.PackingResult `json:"packing"`
	MerkleRoot             hashing.Hash        `json:"merkle_root"`
	MessageBytes           int                 `json:"message_bytes"`
	SignatureBytesProduced int                 `json:"signature_bytes_produced"`
	OversizedTransactions  int                 `json:"oversized_transactions"`
	SignSeconds            float64             `json:"sign_seconds"`
	VerifySeconds          float64             `json:"verify_seconds"`
	TotalSignSeconds       float64             `json:"total_sign_seconds"`
	TotalVerifySeconds     float64             `json:"total_verify_seconds"`
}
