package cmd

import (
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "tradelab",
	Short: "Quantitative analytics engine for OHLCV strategy research",
	Long: `Tradelab is a quantitative analytics engine for candle-based
strategy research.

It provides tools for:
  - Computing technical indicators (SMA, EMA, RSI, MACD, Bollinger)
  - Generating trading signals from indicator rules
  - Backtesting signals bar by bar with equity tracking
  - Summarizing runs (return, Sharpe, drawdown, win rate)
  - Journaling results to CSV or SQLite`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}
