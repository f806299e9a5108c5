package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/newthinker/lockup/internal/app"
	"github.com/newthinker/lockup/internal/core"
	"github.com/newthinker/lockup/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	backtestData        string
	backtestSymbol      string
	backtestExport      string
	backtestFormat      string
	backtestMetricsFile string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run the lockup short strategy over a bar file",
	Long:  "Replay daily bars through the RSI and volume spike short strategy and print the result summary",
	Args:  cobra.NoArgs,
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestData, "data", "", "CSV file with date,open,high,low,close,volume columns")
	backtestCmd.Flags().StringVar(&backtestSymbol, "symbol", "", "Symbol to report and look up in the lockup calendar")
	backtestCmd.Flags().StringVar(&backtestExport, "export", "", "Write the trade ledger to this path")
	backtestCmd.Flags().StringVar(&backtestFormat, "format", "", "Ledger format: csv, json or parquet")
	backtestCmd.Flags().StringVar(&backtestMetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, fromFile, err := loadConfig()
	if err != nil {
		return err
	}

	if backtestData != "" {
		cfg.Data.Path = backtestData
	}
	if backtestSymbol != "" {
		cfg.Data.Symbol = backtestSymbol
	}
	if backtestExport != "" {
		cfg.Export.Path = backtestExport
	}
	if backtestFormat != "" {
		cfg.Export.Format = backtestFormat
	}
	if backtestMetricsFile != "" {
		cfg.Metrics.Textfile = backtestMetricsFile
	}
	if debug {
		cfg.Log.Level = "debug"
	}

	log := logger.Must(cfg.Log.Development || debug, cfg.Log.Level)
	defer log.Sync()

	if !fromFile {
		log.Debug("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	runner, err := app.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := runner.Run(ctx, app.Request{})
	if errors.Is(err, core.ErrNoData) {
		fmt.Fprintf(cmd.OutOrStdout(), "No data found in %s\n", cfg.Data.Path)
		return nil
	}
	if err != nil {
		log.Error("backtest failed", zap.Error(err))
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Result.Summary())
	if report.LedgerPath != "" {
		fmt.Fprintf(out, "Ledger:  %s\n", report.LedgerPath)
	}
	if report.ArchiveKey != "" {
		fmt.Fprintf(out, "Archive: %s\n", report.ArchiveKey)
	}

	return nil
}
