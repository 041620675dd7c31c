package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradelab/backtest"
	"tradelab/config"
	"tradelab/engine"
	"tradelab/internal/logx"
	"tradelab/journal"
	"tradelab/market"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a strategy backtest over a candle CSV",
	Long: `Backtest runs the indicator rules against historical candles and
prints the resulting performance metrics.

Candles are read from a CSV with columns
open_time,open,high,low,close,volume,close_time (millisecond timestamps).

Example:
  tradelab backtest --candles data/btcusdt_1h.csv --sma --sma-period 20 --rsi`,
	RunE: runBacktest,
}

var (
	btCandlesPath string
	btConfigPath  string
	btSymbol      string
	btTimeframe   string
	btCapital     float64
	btSMA         bool
	btSMAPeriod   int
	btRSI         bool
	btRSIPeriod   int
	btMACD        bool
	btJournalType string
	btJournalDir  string
	btDBPath      string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btCandlesPath, "candles", "c", "", "path to candle CSV (required)")
	backtestCmd.Flags().StringVar(&btConfigPath, "config", "", "config file (flags override its backtest section)")
	backtestCmd.Flags().StringVarP(&btSymbol, "symbol", "i", "BTCUSDT", "symbol label for reports and journaling")
	backtestCmd.Flags().StringVarP(&btTimeframe, "timeframe", "t", "1h", "timeframe label for reports and journaling")
	backtestCmd.Flags().Float64VarP(&btCapital, "capital", "b", 10_000, "initial capital")

	backtestCmd.Flags().BoolVar(&btSMA, "sma", false, "enable the SMA crossover rule")
	backtestCmd.Flags().IntVar(&btSMAPeriod, "sma-period", 20, "SMA rule period")
	backtestCmd.Flags().BoolVar(&btRSI, "rsi", false, "enable the RSI oversold/overbought rule")
	backtestCmd.Flags().IntVar(&btRSIPeriod, "rsi-period", 14, "RSI rule period")
	backtestCmd.Flags().BoolVar(&btMACD, "macd", false, "enable the MACD crossover rule")

	backtestCmd.Flags().StringVar(&btJournalType, "journal", "none", "journal backend (none, csv, sqlite)")
	backtestCmd.Flags().StringVar(&btJournalDir, "journal-dir", ".", "directory for CSV journal files")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "./tradelab.sqlite", "path to SQLite journal DB")

	backtestCmd.MarkFlagRequired("candles")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	log := logx.New(os.Stderr, logLevel)

	req := engine.BacktestRequest{
		Symbol:         btSymbol,
		Timeframe:      btTimeframe,
		InitialCapital: btCapital,
		SMA:            btSMA,
		SMAPeriod:      btSMAPeriod,
		RSI:            btRSI,
		RSIPeriod:      btRSIPeriod,
		MACD:           btMACD,
	}

	if btConfigPath != "" {
		cfg, err := config.LoadFromFile(btConfigPath)
		if err != nil {
			return err
		}
		req = requestFromConfig(cfg, req, cmd)
		if !cmd.Flags().Changed("journal") {
			btJournalType = cfg.Journal.Type
			btJournalDir = cfg.Journal.Dir
			if cfg.Journal.DBPath != "" {
				btDBPath = cfg.Journal.DBPath
			}
		}
	}

	candles, err := market.LoadCSV(btCandlesPath)
	if err != nil {
		return err
	}
	if len(candles) == 0 {
		return fmt.Errorf("no candles in %s", btCandlesPath)
	}
	log.Info().Int("bars", len(candles)).Str("file", btCandlesPath).Msg("candles loaded")

	svc := engine.New(nil, log)
	resp := svc.RunBacktest(candles, req)
	if resp.Error != "" {
		return fmt.Errorf("backtest: %s", resp.Error)
	}

	backtest.PrintSummary(os.Stdout, req.Symbol, req.Timeframe, *resp.Metrics)

	return journalRun(log, req, *resp.Metrics)
}

// requestFromConfig fills request fields from the config file unless
// the corresponding flag was set on the command line.
func requestFromConfig(cfg *config.Config, req engine.BacktestRequest, cmd *cobra.Command) engine.BacktestRequest {
	b := cfg.Backtest
	if !cmd.Flags().Changed("symbol") {
		req.Symbol = b.Symbol
	}
	if !cmd.Flags().Changed("timeframe") {
		req.Timeframe = b.Timeframe
	}
	if !cmd.Flags().Changed("capital") {
		req.InitialCapital = b.InitialCapital
	}
	if !cmd.Flags().Changed("sma") && !cmd.Flags().Changed("rsi") && !cmd.Flags().Changed("macd") {
		req.SMA, req.SMAPeriod = b.SMA, b.SMAPeriod
		req.RSI, req.RSIPeriod = b.RSI, b.RSIPeriod
		req.MACD = b.MACD
	}
	req.StartDate, req.EndDate = b.StartDate, b.EndDate
	return req
}

// journalRun persists the run when a journal backend is selected.
func journalRun(log zerolog.Logger, req engine.BacktestRequest, m backtest.Metrics) error {
	var j journal.Journal
	var err error

	switch btJournalType {
	case "", "none":
		return nil
	case "csv":
		j, err = journal.NewCSV(btJournalDir)
	case "sqlite":
		j, err = journal.NewSQLite(btDBPath)
	default:
		return fmt.Errorf("unknown journal type %q (want none, csv or sqlite)", btJournalType)
	}
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	returns := make(market.Series, len(m.EquityCurve))
	for i := 1; i < len(m.EquityCurve); i++ {
		returns[i] = (m.EquityCurve[i] - m.EquityCurve[i-1]) / m.EquityCurve[i-1]
	}

	runID, err := journal.WriteRun(j, req.Symbol, req.Timeframe, req.InitialCapital, m, returns)
	if err != nil {
		return fmt.Errorf("journal run: %w", err)
	}
	log.Info().Str("run_id", runID).Str("journal", btJournalType).Msg("run journaled")
	return nil
}
