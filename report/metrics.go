package report

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/weiihann/pqblock/simulator"
)

const namespace = "pqblock"

// GenerateMetrics writes rep in the Prometheus text exposition format, for
// node_exporter's textfile collector or a pushgateway.
func GenerateMetrics(w io.Writer, rep *simulator.Report) error {
	if rep == nil {
		return fmt.Errorf("no report to render")
	}

	labels := prometheus.Labels{
		"scheme": rep.Scheme,
		"hash":   rep.Hash,
	}

	gauges := []struct {
		name  string
		help  string
		value float64
	}{
		{"block_bytes", "Serialized size of the packed block.", float64(rep.Packing.BlockBytes)},
		{"block_byte_budget", "Block byte budget.", float64(rep.Packing.Budget)},
		{"tx_count", "Transactions packed into the block.", float64(rep.Packing.TxCount)},
		{"max_tx_count", "Transactions that fit the budget.", float64(rep.Packing.MaxTxCount)},
		{"per_tx_bytes", "Modeled serialized size of one transaction.", float64(rep.Packing.PerTxBytes)},
		{"signature_bytes", "Size of the calibration signature.", float64(rep.SignatureBytesProduced)},
		{"sign_seconds", "Wall time of one sign call.", rep.SignSeconds},
		{"verify_seconds", "Wall time of one verify call.", rep.VerifySeconds},
		{"block_sign_seconds", "Extrapolated signing time for the block.", rep.TotalSignSeconds},
		{"block_verify_seconds", "Extrapolated verification time for the block.", rep.TotalVerifySeconds},
	}

	reg := prometheus.NewRegistry()

	for _, g := range gauges {
		gauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        g.name,
			Help:        g.help,
			ConstLabels: labels,
		})
		gauge.Set(g.value)

		if err := reg.Register(gauge); err != nil {
			return fmt.Errorf("register %s: %w", g.name, err)
		}
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	return encodeFamilies(w, families)
}

func encodeFamilies(w io.Writer, families []*dto.MetricFamily) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))

	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
