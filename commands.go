package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crillab/gopherproof/adequacy"
	"github.com/crillab/gopherproof/bf"
	"github.com/crillab/gopherproof/config"
	"github.com/crillab/gopherproof/proof"
	"github.com/crillab/gopherproof/server"
)

var (
	configPath  string
	outputPath  string
	startIndex  int
	verifyProof bool
	metricsPath string

	cfg    config.Config
	logger = zap.NewNop()

	rootCmd = &cobra.Command{
		Use:          "gopherproof",
		Short:        "Checks propositional tautologies and proves them in a Hilbert system",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			logger, err = cfg.Logger()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	checkCmd = &cobra.Command{
		Use:   "check [formula...]",
		Short: "Tells whether formulas are tautologies; reads them from stdin, one per line, without arguments",
		RunE:  runCheck,
	}

	proveCmd = &cobra.Command{
		Use:   "prove formula",
		Short: "Builds a proof of a tautology from the axioms A1, A2 and A3",
		Args:  cobra.ExactArgs(1),
		RunE:  runProve,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serves tautology checks and proofs over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")

	rootCmd.AddCommand(checkCmd)

	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringVarP(&outputPath, "output", "o", "", "file the proof is written to (default: standard output)")
	proveCmd.Flags().IntVar(&startIndex, "start", 0, "number of the first step of the proof")
	proveCmd.Flags().BoolVar(&verifyProof, "verify", false, "check every step of the proof before writing it")
	proveCmd.Flags().StringVar(&metricsPath, "metrics-file", "", "file prover metrics are written to, in the Prometheus text format")

	rootCmd.AddCommand(serveCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if len(args) > 0 {
		for _, expr := range args {
			if err := check(ctx, out, errOut, expr); err != nil {
				return err
			}
		}
		return nil
	}
	// Lines are read whole, whatever their length.
	r := bufio.NewReader(cmd.InOrStdin())
	for {
		line, err := r.ReadString('\n')
		if expr := strings.TrimSpace(line); expr != "" {
			if err := check(ctx, out, errOut, expr); err != nil {
				return err
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not read formulas: %w", err)
		}
	}
}

// check reports whether expr is a tautology.
// Formulas that cannot be parsed or checked are reported on errOut.
// The returned error is not nil only if ctx is done.
func check(ctx context.Context, out, errOut io.Writer, expr string) error {
	f, err := bf.ParseString(bf.NewScope(), expr)
	if err != nil {
		fmt.Fprintf(errOut, "could not parse %q: %v\n", expr, err)
		return nil
	}
	if n := len(f.Vars()); n > cfg.CheckMaxVariables {
		fmt.Fprintf(errOut, "could not check %s: %v: %d variables, at most %d are accepted\n", f, bf.ErrTooManyVariables, n, cfg.CheckMaxVariables)
		return nil
	}
	taut, err := f.Tautology(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s is tautology: %t\n", f, taut)
	return nil
}

func runProve(cmd *cobra.Command, args []string) error {
	f, err := bf.ParseString(bf.NewScope(), args[0])
	if err != nil {
		return fmt.Errorf("could not parse formula: %w", err)
	}
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	prover := adequacy.New(
		adequacy.WithLogger(logger),
		adequacy.WithWorkers(cfg.Workers),
		adequacy.WithMaxVariables(cfg.MaxVariables),
	)
	l, err := prover.Prove(ctx, f)
	if err != nil {
		return err
	}
	if verifyProof {
		if err := proof.Verify(l); err != nil {
			return err
		}
		logger.Info("proof verified", zap.Int("steps", l.Len()))
	}
	if err := writeProof(cmd.OutOrStdout(), l); err != nil {
		return err
	}
	if metricsPath != "" {
		if err := prometheus.WriteToTextfile(metricsPath, prometheus.DefaultGatherer); err != nil {
			return fmt.Errorf("could not write metrics: %w", err)
		}
	}
	return nil
}

func writeProof(stdout io.Writer, l *proof.Ledger) error {
	if outputPath == "" || outputPath == "-" {
		return proof.Write(stdout, l, startIndex)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	if err := proof.Write(f, l, startIndex); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(cfg, logger).Run(ctx)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
