// Package engine is the component boundary of the analytics core. It
// validates requests, runs the indicator/signal/simulation pipeline,
// and shapes results so that every failure crosses the boundary as a
// structure with a single error string, never as a fault.
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"tradelab/backtest"
	"tradelab/executor"
	"tradelab/indicators"
	"tradelab/market"
	"tradelab/strategy"
)

// DefaultInitialCapital is used when a backtest request leaves the
// starting capital unset.
const DefaultInitialCapital = 10_000.0

// Service wires the pipeline components behind request/response
// boundaries. The backtest path is stateless; live orders go through
// the shared executor ledger.
type Service struct {
	exec *executor.Executor
	log  zerolog.Logger
}

// New builds a service around the given order ledger.
func New(exec *executor.Executor, log zerolog.Logger) *Service {
	return &Service{exec: exec, log: log}
}

// BacktestRequest selects the strategy rules and window for one run.
type BacktestRequest struct {
	Symbol         string  `json:"symbol"`
	Timeframe      string  `json:"timeframe"`
	StartDate      string  `json:"start_date,omitempty"`
	EndDate        string  `json:"end_date,omitempty"`
	InitialCapital float64 `json:"initial_capital,omitempty"`

	SMA       bool `json:"sma"`
	SMAPeriod int  `json:"sma_period,omitempty"`
	RSI       bool `json:"rsi"`
	RSIPeriod int  `json:"rsi_period,omitempty"`
	MACD      bool `json:"macd"`
}

// Rules converts the request's strategy flags to strategy.Rules.
func (r BacktestRequest) Rules() strategy.Rules {
	return strategy.Rules{
		SMA:       r.SMA,
		SMAPeriod: r.SMAPeriod,
		RSI:       r.RSI,
		RSIPeriod: r.RSIPeriod,
		MACD:      r.MACD,
	}
}

// RunBacktest executes the full pipeline over the supplied candles:
// signals from the enabled rules, simulation, and metrics.
func (s *Service) RunBacktest(candles []market.Candle, req BacktestRequest) BacktestResponse {
	capital := req.InitialCapital
	if capital == 0 {
		capital = DefaultInitialCapital
	}

	signals, err := strategy.Signals(candles, req.Rules())
	if err != nil {
		return BacktestResponse{Error: err.Error()}
	}

	res, err := backtest.NewEngine(capital).Run(candles, signals)
	if err != nil {
		return BacktestResponse{Error: err.Error()}
	}

	metrics := backtest.ComputeMetrics(res)
	s.log.Debug().
		Str("symbol", req.Symbol).
		Int("bars", len(candles)).
		Int("trades", len(metrics.Trades)).
		Float64("total_return", metrics.TotalReturn).
		Msg("backtest complete")
	return BacktestResponse{Metrics: &metrics}
}

// IndicatorRequest asks for one indicator over raw prices.
type IndicatorRequest struct {
	Prices    market.Series   `json:"prices"`
	Indicator string          `json:"indicator"`
	Params    IndicatorParams `json:"params"`
}

// IndicatorParams holds per-indicator parameters. Period applies to
// sma and rsi; macd uses its conventional 12/26/9 setup.
type IndicatorParams struct {
	Period int `json:"period,omitempty"`
}

// Default periods when an indicator request omits them.
const (
	defaultSMAPeriod = 20
	defaultRSIPeriod = 14
)

// ComputeIndicator evaluates the requested indicator. Undefined leading
// points stay NaN and serialize as null; an unsupported indicator name
// or bad period comes back as an error response.
func (s *Service) ComputeIndicator(req IndicatorRequest) IndicatorResponse {
	if len(req.Prices) == 0 {
		return IndicatorResponse{Error: "prices are required"}
	}

	var result market.Series
	var err error

	switch req.Indicator {
	case "sma":
		result, err = indicators.SMA(req.Prices, periodOr(req.Params.Period, defaultSMAPeriod))
	case "rsi":
		result, err = indicators.RSI(req.Prices, periodOr(req.Params.Period, defaultRSIPeriod))
	case "macd":
		result, _, _, err = indicators.MACD(req.Prices,
			indicators.MACDFastPeriod, indicators.MACDSlowPeriod, indicators.MACDSignalPeriod)
	default:
		err = fmt.Errorf("unsupported indicator %q (want sma, rsi or macd)", req.Indicator)
	}
	if err != nil {
		return IndicatorResponse{Error: err.Error()}
	}
	return IndicatorResponse{Result: result}
}

func periodOr(period, fallback int) int {
	if period == 0 {
		return fallback
	}
	return period
}

// OrderRequest places a live order through the ledger. A request with
// a price is a limit order; without one it is a market order.
type OrderRequest struct {
	Symbol   string   `json:"symbol"`
	Side     string   `json:"side"`
	Quantity float64  `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

// PlaceOrder routes the request to the ledger and wraps failures into
// an error response.
func (s *Service) PlaceOrder(ctx context.Context, req OrderRequest) OrderResponse {
	var order executor.Order
	var err error

	if req.Price != nil {
		order, err = s.exec.PlaceLimitOrder(ctx, req.Symbol, executor.Side(req.Side), req.Quantity, *req.Price)
	} else {
		order, err = s.exec.PlaceMarketOrder(ctx, req.Symbol, executor.Side(req.Side), req.Quantity)
	}
	if err != nil {
		return OrderResponse{Error: err.Error()}
	}
	return OrderResponse{Order: &order}
}

// ClosePosition closes the open position for a symbol.
func (s *Service) ClosePosition(ctx context.Context, symbol string) OrderResponse {
	order, err := s.exec.ClosePosition(ctx, symbol)
	if err != nil {
		return OrderResponse{Error: err.Error()}
	}
	return OrderResponse{Order: &order}
}
