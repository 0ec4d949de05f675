package block

import (
	"errors"
	"fmt"
)

// ErrOverBudget reports a packing result that breaks the budget invariant.
var ErrOverBudget = errors.New("block exceeds byte budget")

// PackingResult is the outcome of fitting transactions into a budget.
type PackingResult struct {
	TxCount    int  `json:"tx_count"`
	PerTxBytes int  `json:"per_tx_bytes"`
	BlockBytes int  `json:"block_bytes"`
	MaxTxCount int  `json:"max_tx_count"`
	Budget     int  `json:"block_byte_budget"`
	Forced     bool `json:"forced"`
	// Requested is the forced count before clamping; equal to MaxTxCount
	// when auto-packing.
	Requested int `json:"requested_tx_count"`
}

// Pack fits as many transactions of perTx bytes as the budget allows.
func Pack(budget, perTx int) (PackingResult, error) {
	maxCount, err := maxTxCount(budget, perTx)
	if err != nil {
		return PackingResult{}, err
	}

	return newResult(budget, perTx, maxCount, maxCount, maxCount, false), nil
}

// PackForced packs exactly forced transactions, clamped to what the budget
// allows.
func PackForced(budget, perTx, forced int) (PackingResult, error) {
	if forced < 0 {
		return PackingResult{}, fmt.Errorf("%w: forced tx count %d is negative",
			ErrInvalidSize, forced)
	}

	maxCount, err := maxTxCount(budget, perTx)
	if err != nil {
		return PackingResult{}, err
	}

	return newResult(budget, perTx, forced, min(forced, maxCount), maxCount, true), nil
}

// CheckBudget verifies BlockBytes == TxCount*PerTxBytes <= Budget.
func (r PackingResult) CheckBudget() error {
	if r.BlockBytes != r.TxCount*r.PerTxBytes {
		return fmt.Errorf("%w: block bytes %d != %d tx * %d bytes",
			ErrOverBudget, r.BlockBytes, r.TxCount, r.PerTxBytes)
	}

	if r.BlockBytes > r.Budget {
		return fmt.Errorf("%w: %d > %d", ErrOverBudget, r.BlockBytes, r.Budget)
	}

	return nil
}

func maxTxCount(budget, perTx int) (int, error) {
	if budget <= 0 {
		return 0, fmt.Errorf("%w: block budget %d must be positive",
			ErrInvalidSize, budget)
	}

	if perTx <= 0 {
		return 0, fmt.Errorf("%w: per-tx bytes %d must be positive",
			ErrInvalidSize, perTx)
	}

	return budget / perTx, nil
}

func newResult(budget, perTx, requested, count, maxCount int, forced bool) PackingResult {
	return PackingResult{
		TxCount:    count,
		PerTxBytes: perTx,
		BlockBytes: count * perTx,
		MaxTxCount: maxCount,
		Budget:     budget,
		Forced:     forced,
		Requested:  requested,
	}
}
