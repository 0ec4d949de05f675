// Package report renders simulation results for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/weiihann/pqblock/simulator"
)

const rule = "-------------------------------------------------------------"

// Generate writes a human-readable summary of rep to w.
func Generate(w io.Writer, rep *simulator.Report) error {
	if rep == nil {
		return fmt.Errorf("no report to render")
	}

	p := rep.Packing
	txs := fmt.Sprintf("%d tx", p.TxCount)

	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Scheme: %s, hash: %s, run: %s\n", rep.Scheme, rep.Hash, rep.RunID)
	fmt.Fprintf(&b, "Block size: %s bytes with %s (budget %s bytes, %s)\n",
		humanize.Comma(int64(p.BlockBytes)),
		txs,
		humanize.Comma(int64(p.Budget)),
		budgetUse(p.BlockBytes, p.Budget),
	)
	fmt.Fprintf(&b, "Per-tx size: %d bytes (%s)\n", p.PerTxBytes, credential(rep))

	switch {
	case p.Forced && p.Requested > p.TxCount:
		fmt.Fprintf(&b, "Forced tx count %d clamped to capacity %d\n",
			p.Requested, p.TxCount)
	case p.Forced:
		fmt.Fprintf(&b, "Forced tx count: %d of %d that fit\n", p.TxCount, p.MaxTxCount)
	}

	fmt.Fprintf(&b, "Merkle root: %s\n", rep.MerkleRoot)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Measured sign time (1 tx): %s\n", formatSeconds(rep.SignSeconds))
	fmt.Fprintf(&b, "Measured verify time (1 tx): %s\n", formatSeconds(rep.VerifySeconds))
	fmt.Fprintf(&b, "Total block signing time (%s): %s\n", txs, formatSeconds(rep.TotalSignSeconds))
	fmt.Fprintf(&b, "Total block verification time (%s): %s\n", txs, formatSeconds(rep.TotalVerifySeconds))

	if rep.SignatureBytesProduced != rep.SizeModel.SignatureBytes {
		fmt.Fprintf(&b, "Note: %s produced %d-byte signatures, size model assumes %d\n",
			rep.Scheme, rep.SignatureBytesProduced, rep.SizeModel.SignatureBytes)
	}

	if rep.OversizedTransactions > 0 {
		fmt.Fprintf(&b, "Note: %d synthetic tx exceed the per-tx size and were hashed unpadded\n",
			rep.OversizedTransactions)
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// GenerateJSON writes rep as indented JSON to w.
func GenerateJSON(w io.Writer, rep *simulator.Report) error {
	if rep == nil {
		return fmt.Errorf("no report to render")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}

func credential(rep *simulator.Report) string {
	if rep.SizeModel.UseFullCredential {
		return fmt.Sprintf("%d-byte full public key", rep.SizeModel.CredentialBytes())
	}

	return fmt.Sprintf("%d-byte key-hash address", rep.SizeModel.CredentialBytes())
}

func budgetUse(used, budget int) string {
	if budget <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.2f%% used, %s", 100*float64(used)/float64(budget),
		humanize.IBytes(uint64(used)))
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%.6fs", s)
}
