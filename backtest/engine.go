// Package backtest simulates strategy signals bar by bar and computes
// performance metrics over the resulting equity curve.
package backtest

import (
	"fmt"
	"time"

	"tradelab/market"
)

// TradeType is the direction of a simulated trade entry.
type TradeType string

const (
	Buy  TradeType = "buy"
	Sell TradeType = "sell"
)

// Trade records a position change at one bar. Size is the number of
// units capital buys at the entry price.
type Trade struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Type      TradeType `json:"type"`
	Size      float64   `json:"size"`
}

// Result is the raw output of a simulation run: the trades taken and
// the per-bar equity and return series, both aligned 1:1 with the
// candle input.
type Result struct {
	InitialCapital float64
	Trades         []Trade
	Equity         market.Series
	Returns        market.Series
}

// Engine runs signal series against candle series. Runs are pure:
// the engine holds configuration only, never per-run state, so one
// engine can serve concurrent backtests.
type Engine struct {
	InitialCapital float64
}

// NewEngine returns an engine with the given starting capital.
func NewEngine(initialCapital float64) *Engine {
	return &Engine{InitialCapital: initialCapital}
}

// Run walks the candle and signal series in lockstep. A trade opens
// whenever the bar's signal is non-zero and differs from the held
// position; fills are at that bar's close. Equity marks the open
// position against its entry price without compounding across trades,
// and a flat book marks at capital. The first bar's return is 0 by
// definition, never computed from a prior bar.
func (e *Engine) Run(candles []market.Candle, signals []int) (*Result, error) {
	if len(signals) != len(candles) {
		return nil, fmt.Errorf("signal/candle length mismatch: %d vs %d", len(signals), len(candles))
	}
	if e.InitialCapital <= 0 {
		return nil, fmt.Errorf("initial capital must be positive, got %v", e.InitialCapital)
	}

	res := &Result{
		InitialCapital: e.InitialCapital,
		Equity:         make(market.Series, len(candles)),
		Returns:        make(market.Series, len(candles)),
	}

	capital := e.InitialCapital
	position := 0
	entryPrice := 0.0

	for i, c := range candles {
		if signals[i] != 0 && signals[i] != position {
			position = signals[i]
			entryPrice = c.Close

			tradeType := Buy
			if position != 1 {
				tradeType = Sell
			}
			res.Trades = append(res.Trades, Trade{
				Timestamp: c.Time(),
				Price:     c.Close,
				Type:      tradeType,
				Size:      capital / c.Close,
			})
		}

		equity := capital
		if position != 0 {
			equity = capital * (1 + float64(position)*(c.Close-entryPrice)/entryPrice)
		}
		res.Equity[i] = equity

		if i > 0 {
			res.Returns[i] = (equity - res.Equity[i-1]) / res.Equity[i-1]
		} else {
			res.Returns[i] = 0
		}
	}

	return res, nil
}
