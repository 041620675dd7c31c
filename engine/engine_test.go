package engine

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelab/executor"
	"tradelab/market"
)

func newTestService(oracle executor.PriceOracle) *Service {
	if oracle == nil {
		oracle = executor.OracleFunc(func(ctx context.Context, symbol string) (float64, error) {
			return 50_000, nil
		})
	}
	return New(executor.New(oracle, zerolog.Nop()), zerolog.Nop())
}

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

func TestRunBacktest(t *testing.T) {
	svc := newTestService(nil)
	candles := candlesFromCloses([]float64{100, 99, 103, 98, 105, 97, 108, 96, 110, 95})

	resp := svc.RunBacktest(candles, BacktestRequest{
		Symbol: "BTCUSDT", Timeframe: "1h",
		SMA: true, SMAPeriod: 3,
	})

	require.Empty(t, resp.Error)
	require.NotNil(t, resp.Metrics)
	assert.Len(t, resp.Metrics.EquityCurve, len(candles))
	assert.NotEmpty(t, resp.Metrics.Trades)
}

func TestRunBacktestDefaultsCapital(t *testing.T) {
	svc := newTestService(nil)
	candles := candlesFromCloses([]float64{100, 100, 100, 100})

	resp := svc.RunBacktest(candles, BacktestRequest{SMA: true, SMAPeriod: 2})
	require.Empty(t, resp.Error)
	assert.Equal(t, DefaultInitialCapital, resp.Metrics.EquityCurve[0])
}

func TestRunBacktestInvalidRules(t *testing.T) {
	svc := newTestService(nil)
	resp := svc.RunBacktest(candlesFromCloses([]float64{100}), BacktestRequest{})
	assert.Contains(t, resp.Error, "no rules enabled")

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"no rules enabled"}`, string(data))
}

func TestBacktestResponseJSONIsFlat(t *testing.T) {
	svc := newTestService(nil)
	candles := candlesFromCloses([]float64{100, 100, 100, 100})

	resp := svc.RunBacktest(candles, BacktestRequest{SMA: true, SMAPeriod: 2})
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Contains(t, flat, "total_return")
	assert.Contains(t, flat, "equity_curve")
	// Constant prices: no trades, zero-variance returns, null sharpe.
	assert.Nil(t, flat["sharpe_ratio"])
	assert.NotContains(t, flat, "error")
}

func TestComputeIndicatorSMA(t *testing.T) {
	svc := newTestService(nil)

	resp := svc.ComputeIndicator(IndicatorRequest{
		Prices:    market.Series{1, 2, 3, 4, 5},
		Indicator: "sma",
		Params:    IndicatorParams{Period: 2},
	})
	require.Empty(t, resp.Error)
	require.Len(t, resp.Result, 5)
	assert.True(t, math.IsNaN(resp.Result[0]))
	assert.Equal(t, 1.5, resp.Result[1])

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":[null,1.5,2.5,3.5,4.5]}`, string(data))
}

func TestComputeIndicatorUnsupported(t *testing.T) {
	svc := newTestService(nil)

	resp := svc.ComputeIndicator(IndicatorRequest{
		Prices:    market.Series{1, 2, 3},
		Indicator: "vwap",
	})
	assert.Contains(t, resp.Error, "unsupported indicator")
}

func TestComputeIndicatorBadPeriod(t *testing.T) {
	svc := newTestService(nil)

	resp := svc.ComputeIndicator(IndicatorRequest{
		Prices:    market.Series{1, 2, 3},
		Indicator: "sma",
		Params:    IndicatorParams{Period: -1},
	})
	assert.Contains(t, resp.Error, "period must be positive")
}

func TestComputeIndicatorEmptyPrices(t *testing.T) {
	svc := newTestService(nil)
	resp := svc.ComputeIndicator(IndicatorRequest{Indicator: "sma"})
	assert.Equal(t, "prices are required", resp.Error)
}

func TestPlaceOrderMarketAndLimit(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	resp := svc.PlaceOrder(ctx, OrderRequest{Symbol: "BTCUSDT", Side: "BUY", Quantity: 1})
	require.Empty(t, resp.Error)
	assert.Equal(t, executor.Market, resp.Order.Type)

	price := 45_000.0
	resp = svc.PlaceOrder(ctx, OrderRequest{Symbol: "BTCUSDT", Side: "SELL", Quantity: 1, Price: &price})
	require.Empty(t, resp.Error)
	assert.Equal(t, executor.Limit, resp.Order.Type)
	assert.Equal(t, price, resp.Order.Price)
}

func TestPlaceOrderOracleFailure(t *testing.T) {
	svc := newTestService(executor.OracleFunc(func(ctx context.Context, symbol string) (float64, error) {
		return 0, errors.New("timeout")
	}))

	resp := svc.PlaceOrder(context.Background(), OrderRequest{Symbol: "BTCUSDT", Side: "BUY", Quantity: 1})
	require.NotEmpty(t, resp.Error)
	assert.Contains(t, resp.Error, "price lookup failed")

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Len(t, flat, 1)
	assert.Contains(t, flat, "error")
}

func TestClosePositionFlow(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	resp := svc.ClosePosition(ctx, "BTCUSDT")
	assert.Contains(t, resp.Error, "no position found")

	require.Empty(t, svc.PlaceOrder(ctx, OrderRequest{Symbol: "BTCUSDT", Side: "BUY", Quantity: 1}).Error)
	resp = svc.ClosePosition(ctx, "BTCUSDT")
	require.Empty(t, resp.Error)
	assert.Equal(t, executor.Sell, resp.Order.Side)
}
