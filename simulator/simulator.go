// Package simulator runs one block throughput estimate: it packs the block,
// calibrates the signer, commits to synthetic transactions, and returns a
// Report.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/weiihann/pqblock/block"
	"github.com/weiihann/pqblock/hashing"
	"github.com/weiihann/pqblock/merkle"
	"github.com/weiihann/pqblock/signer"
	"github.com/weiihann/pqblock/timing"
	"github.com/weiihann/pqblock/workload"
)

var (
	// ErrConfiguration reports unusable sizes, budgets or options.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvariantViolation reports a packed block over its budget.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrSignerFailure reports a signer that errored or failed to verify
	// its own calibration signature.
	ErrSignerFailure = errors.New("signer failure")
)

// Run executes one simulation with s as the signer. Any failure aborts the
// run; no partial report is returned.
func Run(
	ctx context.Context,
	logger *slog.Logger,
	cfg Config,
	s signer.Signer,
) (*Report, error) {
	started := time.Now()

	// Step 1: Validate configuration and size the transaction.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	digest, err := hashing.ByName(cfg.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	sizes := cfg.SizeModel()
	perTx := sizes.PerTxBytes()

	// Step 2: Pack the block.
	packing, err := pack(cfg, perTx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if err := packing.CheckBudget(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}

	logger.InfoContext(ctx, "block packed",
		slog.Int("tx_count", packing.TxCount),
		slog.Int("per_tx_bytes", packing.PerTxBytes),
		slog.Int("block_bytes", packing.BlockBytes),
		slog.Int("max_tx_count", packing.MaxTxCount),
		slog.Bool("forced", packing.Forced),
	)

	gen, err := workload.NewGenerator(workload.Config{
		MessageBytes: cfg.MessageByteLength,
		PerTxBytes:   perTx,
		Seed:         cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("before calibration: %w", err)
	}

	// Step 3: Calibrate. Nothing else runs inside the timed window.
	measurement, err := timing.Measure(s, gen.Message(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignerFailure, err)
	}

	logger.InfoContext(ctx, "signer calibrated",
		slog.String("scheme", s.Name()),
		slog.Duration("sign", measurement.Sample.Sign),
		slog.Duration("verify", measurement.Sample.Verify),
		slog.Int("signature_bytes", len(measurement.Signature)),
	)

	if len(measurement.Signature) != cfg.SignatureBytes {
		logger.WarnContext(ctx, "signature size differs from size model",
			slog.Int("produced", len(measurement.Signature)),
			slog.Int("modeled", cfg.SignatureBytes),
		)
	}

	// Step 4: Derive synthetic transaction identifiers.
	ids, summary := gen.Identifiers(packing.TxCount, measurement.Signature, digest)
	if summary.Oversized > 0 {
		logger.WarnContext(ctx, "synthetic transactions exceed modeled size",
			slog.Int("assembled_bytes", summary.AssembledBytes),
			slog.Int("per_tx_bytes", perTx),
			slog.Int("transactions", summary.Oversized),
		)
	}

	// Step 5: Commit.
	root := merkle.Root(ids, digest)

	logger.DebugContext(ctx, "merkle root computed",
		slog.String("root", root.String()),
		slog.Int("leaves", len(ids)),
	)

	// Step 6: Extrapolate and assemble.
	totals := timing.Extrapolate(measurement.Sample, packing.TxCount)

	runID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}

	return &Report{
		RunID:                  runID.String(),
		StartedAt:              started.UTC(),
		Scheme:                 s.Name(),
		Hash:                   cfg.Hash,
		SizeModel:              sizes,
		Packing:                packing,
		MerkleRoot:             root,
		MessageBytes:           cfg.MessageByteLength,
		SignatureBytesProduced: len(measurement.Signature),
		OversizedTransactions:  summary.Oversized,
		SignSeconds:            measurement.Sample.Sign.Seconds(),
		VerifySeconds:          measurement.Sample.Verify.Seconds(),
		TotalSignSeconds:       totals.SignSeconds,
		TotalVerifySeconds:     totals.VerifySeconds,
	}, nil
}

func pack(cfg Config, perTx int) (block.PackingResult, error) {
	if cfg.ForcedTxCount != nil {
		return block.PackForced(cfg.BlockByteBudget, perTx, *cfg.ForcedTxCount)
	}

	return block.Pack(cfg.BlockByteBudget, perTx)
}
