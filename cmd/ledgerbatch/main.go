package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/iho/ledgerbatch/internal/adapter/csvio"
	"github.com/iho/ledgerbatch/internal/adapter/repository/memory"
	"github.com/iho/ledgerbatch/internal/infrastructure/config"
	"github.com/iho/ledgerbatch/internal/infrastructure/logger"
	"github.com/iho/ledgerbatch/internal/infrastructure/metrics"
	"github.com/iho/ledgerbatch/internal/usecase"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		logLevel    string
		logFormat   string
		metricsFile string
	)

	rootCmd := &cobra.Command{
		Use:   "ledgerbatch <transactions.csv>",
		Short: "Apply a transaction file to client accounts",
		Long: `Reads deposits, withdrawals, disputes, resolves and chargebacks from a CSV
file, applies them in input order and prints the final account states as CSV.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if flags.Changed("metrics-file") {
				cfg.MetricsFile = metricsFile
			}

			return run(cfg, args[0], stdout, stderr)
		},
	}

	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
	rootCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return rootCmd
}

func run(cfg *config.Config, path string, stdout, stderr io.Writer) error {
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    stderr,
	})

	records, err := csvio.ReadTransactionsFile(path)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	m.RecordsLoaded.Set(float64(len(records)))

	txLog := memory.NewTransactionLog()
	txLog.AppendInOrder(records...)
	accounts := memory.NewAccountLedger()

	processing := usecase.NewProcessingUseCase(accounts, txLog, m, memory.NewULIDGenerator(), log)

	start := time.Now()
	succeeded, failed := processing.RunBatch()
	m.ObserveBatch(start)

	reconciliation := usecase.NewReconciliationUseCase(accounts)
	report := reconciliation.GenerateReport()

	log.Info().
		Str("input", path).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Int("accounts", report.TotalAccounts).
		Int("locked", report.LockedAccounts).
		Str("total", report.Total.String()).
		Msg("batch complete")

	if err := reconciliation.CheckConsistency(); err != nil {
		log.Error().Err(err).Msg("reconciliation failed")
	}

	if err := csvio.WriteAccounts(stdout, processing.Accounts()); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, registry); err != nil {
			log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
		}
	}

	return nil
}
