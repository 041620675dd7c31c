// Package journal persists backtest runs: a summary row per run plus
// the trade list and equity curve, keyed by ULID run IDs.
package journal

import (
	"math"
	"time"

	"tradelab/backtest"
	"tradelab/internal/id"
	"tradelab/market"
)

// BacktestRun is the summary record for one run.
type BacktestRun struct {
	RunID          string
	Created        time.Time
	Symbol         string
	Timeframe      string
	Bars           int
	InitialCapital float64
	TotalReturn    float64
	SharpeRatio    float64 // NaN when undefined; stored as NULL/empty
	MaxDrawdown    float64
	WinRate        float64
	Trades         int
}

// TradeRecord is one simulated trade, tied to its run.
type TradeRecord struct {
	RunID     string
	Timestamp time.Time
	Price     float64
	Type      string
	Size      float64
}

// EquitySample is one bar of the equity curve, tied to its run.
type EquitySample struct {
	RunID  string
	Bar    int
	Equity float64
	Return float64
}

// Journal persists backtest output.
type Journal interface {
	RecordRun(BacktestRun) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySample) error
	Close() error
}

// WriteRun assigns a fresh run ID and records the full result of a
// backtest — summary, trades, and equity curve — to j.
func WriteRun(j Journal, symbol, timeframe string, initialCapital float64, m backtest.Metrics, returns market.Series) (string, error) {
	runID := id.New()

	run := BacktestRun{
		RunID:          runID,
		Created:        time.Now().UTC(),
		Symbol:         symbol,
		Timeframe:      timeframe,
		Bars:           len(m.EquityCurve),
		InitialCapital: initialCapital,
		TotalReturn:    m.TotalReturn,
		SharpeRatio:    m.SharpeRatio,
		MaxDrawdown:    m.MaxDrawdown,
		WinRate:        m.WinRate,
		Trades:         len(m.Trades),
	}
	if err := j.RecordRun(run); err != nil {
		return "", err
	}

	for _, t := range m.Trades {
		rec := TradeRecord{
			RunID:     runID,
			Timestamp: t.Timestamp,
			Price:     t.Price,
			Type:      string(t.Type),
			Size:      t.Size,
		}
		if err := j.RecordTrade(rec); err != nil {
			return "", err
		}
	}

	for i, eq := range m.EquityCurve {
		ret := 0.0
		if i < len(returns) && !math.IsNaN(returns[i]) {
			ret = returns[i]
		}
		if err := j.RecordEquity(EquitySample{RunID: runID, Bar: i, Equity: eq, Return: ret}); err != nil {
			return "", err
		}
	}

	return runID, nil
}
