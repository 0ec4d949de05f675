// Package main provides the CLI entry point for pqblock, a tool that
// estimates the block throughput cost of post-quantum signatures.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/weiihann/pqblock/hashing"
	"github.com/weiihann/pqblock/report"
	"github.com/weiihann/pqblock/signer"
	"github.com/weiihann/pqblock/simulator"
)

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "pqblock",
		Short: "Block throughput estimator for post-quantum signatures",
		Long: `Pqblock packs synthetic transactions into a block byte budget, commits
to them with a Merkle root, and extrapolates one measured sign/verify round
of the chosen signature scheme to the whole block.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")

	newLogger := func() (*slog.Logger, error) {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}

		return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: level,
		})), nil
	}

	root.AddCommand(newRunCmd(stdout, newLogger))
	root.AddCommand(newSchemesCmd(stdout))

	return root
}

func newRunCmd(
	stdout io.Writer,
	newLogger func() (*slog.Logger, error),
) *cobra.Command {
	var (
		configPath      string
		scheme          string
		format          string
		sizesFromScheme bool
		txCount         int
	)

	defaults := simulator.DefaultConfig()
	cfg := defaults

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Pack a block and measure its signing cost",
		Long: `Pack a block under the configured byte budget, time one sign and one
verify call of the selected scheme, and report the extrapolated block cost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}

			flags := cmd.Flags()

			resolved, err := resolveConfig(flags, configPath, defaults, cfg)
			if err != nil {
				return err
			}

			if flags.Changed("tx-count") {
				resolved = resolved.WithForcedTxCount(txCount)
			}

			return runSimulation(cmd.Context(), logger, stdout, runConfig{
				sim:             resolved,
				scheme:          scheme,
				format:          format,
				sizesFromScheme: sizesFromScheme,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "",
		"Path to a YAML config file; explicit flags override it")
	flags.StringVar(&scheme, "scheme", signer.Default,
		"Signature scheme: "+strings.Join(signer.Names(), ", "))
	flags.StringVar(&format, "format", "text",
		"Output format: text, json, prom")
	flags.BoolVar(&sizesFromScheme, "sizes-from-scheme", false,
		"Take signature and public key sizes from the selected scheme")
	flags.IntVar(&cfg.BlockByteBudget, "block-bytes", defaults.BlockByteBudget,
		"Block byte budget")
	flags.IntVar(&cfg.BaseOverheadBytes, "base-bytes", defaults.BaseOverheadBytes,
		"Non-signature bytes per transaction")
	flags.IntVar(&cfg.SignatureBytes, "sig-bytes", defaults.SignatureBytes,
		"Signature bytes per transaction")
	flags.BoolVar(&cfg.UseFullCredential, "full-pk", defaults.UseFullCredential,
		"Carry the full public key instead of a key-hash address")
	flags.IntVar(&cfg.CredentialBytesShort, "addr-bytes", defaults.CredentialBytesShort,
		"Key-hash address bytes")
	flags.IntVar(&cfg.CredentialBytesFull, "pk-bytes", defaults.CredentialBytesFull,
		"Full public key bytes")
	flags.IntVar(&txCount, "tx-count", 0,
		"Force the block to this many transactions (clamped to capacity)")
	flags.IntVar(&cfg.MessageByteLength, "msg-bytes", defaults.MessageByteLength,
		"Signed message length, including the 8-byte nonce")
	flags.StringVar(&cfg.Hash, "hash", defaults.Hash,
		"Double-hash function: "+strings.Join(hashing.Names(), ", "))
	flags.Int64Var(&cfg.Seed, "seed", defaults.Seed,
		"Seed for the base payload (0 = crypto/rand)")

	return cmd
}

type runConfig struct {
	sim             simulator.Config
	scheme          string
	format          string
	sizesFromScheme bool
}

// configFlags maps flag names to the config fields they set.
var configFlags = map[string]func(dst *simulator.Config, src simulator.Config){
	"block-bytes": func(d *simulator.Config, s simulator.Config) { d.BlockByteBudget = s.BlockByteBudget },
	"base-bytes":  func(d *simulator.Config, s simulator.Config) { d.BaseOverheadBytes = s.BaseOverheadBytes },
	"sig-bytes":   func(d *simulator.Config, s simulator.Config) { d.SignatureBytes = s.SignatureBytes },
	"full-pk":     func(d *simulator.Config, s simulator.Config) { d.UseFullCredential = s.UseFullCredential },
	"addr-bytes":  func(d *simulator.Config, s simulator.Config) { d.CredentialBytesShort = s.CredentialBytesShort },
	"pk-bytes":    func(d *simulator.Config, s simulator.Config) { d.CredentialBytesFull = s.CredentialBytesFull },
	"msg-bytes":   func(d *simulator.Config, s simulator.Config) { d.MessageByteLength = s.MessageByteLength },
	"hash":        func(d *simulator.Config, s simulator.Config) { d.Hash = s.Hash },
	"seed":        func(d *simulator.Config, s simulator.Config) { d.Seed = s.Seed },
}

// resolveConfig layers the config file over defaults, then explicitly set
// flags over the file.
func resolveConfig(
	flags *pflag.FlagSet,
	path string,
	defaults, fromFlags simulator.Config,
) (simulator.Config, error) {
	if path == "" {
		return fromFlags, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return simulator.Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := simulator.LoadConfig(f, defaults)
	if err != nil {
		return simulator.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	flags.Visit(func(fl *pflag.Flag) {
		if apply, ok := configFlags[fl.Name]; ok {
			apply(&cfg, fromFlags)
		}
	})

	return cfg, nil
}

func runSimulation(
	ctx context.Context,
	logger *slog.Logger,
	stdout io.Writer,
	cfg runConfig,
) error {
	render, err := renderer(cfg.format)
	if err != nil {
		return err
	}

	s, err := signer.New(cfg.scheme)
	if err != nil {
		return fmt.Errorf("select scheme: %w", err)
	}

	sim := cfg.sim
	if cfg.sizesFromScheme {
		sizer, ok := s.(signer.Sizer)
		if !ok {
			return fmt.Errorf("scheme %s does not report its sizes", s.Name())
		}

		sizes := sizer.Sizes()
		sim.SignatureBytes = sizes.Signature
		sim.CredentialBytesFull = sizes.PublicKey
	}

	logger.InfoContext(ctx, "starting simulation",
		slog.String("scheme", s.Name()),
		slog.String("hash", sim.Hash),
		slog.Int("block_byte_budget", sim.BlockByteBudget),
		slog.Int("per_tx_bytes", sim.SizeModel().PerTxBytes()),
		slog.Bool("full_pk", sim.UseFullCredential),
	)

	rep, err := simulator.Run(ctx, logger, sim, s)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	if err := render(stdout, rep); err != nil {
		return fmt.Errorf("render %s report: %w", cfg.format, err)
	}

	logger.InfoContext(ctx, "simulation complete",
		slog.String("run_id", rep.RunID),
	)

	return nil
}

func renderer(format string) (func(io.Writer, *simulator.Report) error, error) {
	switch format {
	case "text":
		return report.Generate, nil
	case "json":
		return report.GenerateJSON, nil
	case "prom":
		return report.GenerateMetrics, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
