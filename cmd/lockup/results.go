package main

import (
	"context"
	"fmt"

	"github.com/newthinker/lockup/internal/app"
	"github.com/newthinker/lockup/internal/logger"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results [symbol]",
	Short: "List archived backtest results",
	Long:  "Print the summary of every archived run for a symbol. Defaults to data.symbol from config.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	symbol := cfg.Data.Symbol
	if len(args) == 1 {
		symbol = args[0]
	}

	log := logger.Must(cfg.Log.Development || debug, cfg.Log.Level)
	defer log.Sync()

	runner, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	results := runner.Archive()
	if results == nil {
		return fmt.Errorf("archive is disabled, set archive.type to localfs or s3")
	}

	ctx := context.Background()
	keys, err := results.Keys(ctx, symbol)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(keys) == 0 {
		fmt.Fprintf(out, "No archived results for %s\n", symbol)
		return nil
	}
	for _, key := range keys {
		r, err := results.Load(ctx, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %s\n", r.RunID, r.Summary())
	}
	return nil
}
