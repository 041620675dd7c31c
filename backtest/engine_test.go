package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelab/market"
	"tradelab/strategy"
)

func candlesFromCloses(closes []float64) []market.Candle {
	candles := make([]market.Candle, len(closes))
	for i, c := range closes {
		candles[i] = market.Candle{
			OpenTime:  int64(i) * 60_000,
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			CloseTime: int64(i)*60_000 + 59_999,
		}
	}
	return candles
}

func TestRunConcreteScenario(t *testing.T) {
	engine := NewEngine(10_000)
	candles := candlesFromCloses([]float64{100, 110, 90})
	signals := []int{0, 1, -1}

	res, err := engine.Run(candles, signals)
	require.NoError(t, err)

	require.Len(t, res.Trades, 2)

	// Bar 1: flip 0 -> 1, buy at that bar's close.
	buy := res.Trades[0]
	assert.Equal(t, Buy, buy.Type)
	assert.Equal(t, 110.0, buy.Price)
	assert.InDelta(t, 10_000.0/110, buy.Size, 1e-9)
	assert.Equal(t, time.UnixMilli(60_000).UTC(), buy.Timestamp)

	// Bar 2: flip 1 -> -1, sell entry recorded at 90.
	sell := res.Trades[1]
	assert.Equal(t, Sell, sell.Type)
	assert.Equal(t, 90.0, sell.Price)

	// Equity: flat bar, freshly opened bar, then marked against the
	// new short entry (also this bar's close, so back to capital).
	require.Len(t, res.Equity, 3)
	assert.InDelta(t, 10_000, res.Equity[0], 1e-9)
	assert.InDelta(t, 10_000, res.Equity[1], 1e-9)
	assert.InDelta(t, 10_000, res.Equity[2], 1e-9)

	assert.Equal(t, 0.0, res.Returns[0])
}

func TestRunMarksOpenPositionToClose(t *testing.T) {
	engine := NewEngine(10_000)
	candles := candlesFromCloses([]float64{100, 110, 90})
	signals := []int{0, 1, 0}

	res, err := engine.Run(candles, signals)
	require.NoError(t, err)

	// The long from bar 1 is still held on bar 2: equity is capital
	// marked against the 110 entry.
	assert.InDelta(t, 10_000*(1+(90.0-110)/110), res.Equity[2], 1e-6)
	assert.InDelta(t, 8181.8, res.Equity[2], 0.1)
	assert.InDelta(t, (res.Equity[2]-res.Equity[1])/res.Equity[1], res.Returns[2], 1e-12)
}

func TestRunConstantPriceNoTrades(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	candles := candlesFromCloses(closes)

	signals, err := strategy.Signals(candles, strategy.Rules{SMA: true, SMAPeriod: 5})
	require.NoError(t, err)

	res, err := NewEngine(10_000).Run(candles, signals)
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	for i := range res.Equity {
		assert.Equal(t, 10_000.0, res.Equity[i], "bar %d", i)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	engine := NewEngine(5_000)
	candles := candlesFromCloses([]float64{100, 104, 99, 107, 103, 111, 95, 120})
	signals := []int{0, 1, 1, -1, 0, 1, -1, 1}

	first, err := engine.Run(candles, signals)
	require.NoError(t, err)
	second, err := engine.Run(candles, signals)
	require.NoError(t, err)

	assert.Equal(t, first.Trades, second.Trades)
	assert.Equal(t, first.Equity, second.Equity)
	assert.Equal(t, first.Returns, second.Returns)
}

func TestRunNoTradeWhenSignalMatchesPosition(t *testing.T) {
	res, err := NewEngine(1_000).Run(
		candlesFromCloses([]float64{100, 101, 102, 103}),
		[]int{1, 1, 1, 1},
	)
	require.NoError(t, err)
	assert.Len(t, res.Trades, 1)
}

func TestRunRejectsMismatchedInput(t *testing.T) {
	_, err := NewEngine(1_000).Run(candlesFromCloses([]float64{100, 101}), []int{0})
	assert.ErrorContains(t, err, "length mismatch")

	_, err = NewEngine(0).Run(candlesFromCloses([]float64{100}), []int{0})
	assert.ErrorContains(t, err, "capital")
}
