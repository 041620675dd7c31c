package backtest

import (
	"encoding/json"
	"math"

	"tradelab/market"
)

// TradingDaysPerYear annualizes the Sharpe ratio.
const TradingDaysPerYear = 252

// Metrics summarizes a simulation run.
//
// WinRate counts buy-type entries against all trades, not realized
// profitability; pairing entries with exits would be needed for the
// latter. SharpeRatio is NaN when the return series has zero variance
// (for example a run with no trades) and serializes as null.
type Metrics struct {
	TotalReturn float64       `json:"total_return"`
	SharpeRatio float64       `json:"sharpe_ratio"`
	MaxDrawdown float64       `json:"max_drawdown"`
	WinRate     float64       `json:"win_rate"`
	Trades      []Trade       `json:"trades"`
	EquityCurve market.Series `json:"equity_curve"`
}

// MarshalJSON encodes an undefined Sharpe ratio as null; a bare NaN
// would fail to serialize.
func (m Metrics) MarshalJSON() ([]byte, error) {
	type alias Metrics
	out := struct {
		alias
		SharpeRatio *float64 `json:"sharpe_ratio"`
	}{alias: alias(m)}
	if !math.IsNaN(m.SharpeRatio) {
		out.SharpeRatio = &m.SharpeRatio
	}
	return json.Marshal(out)
}

// ComputeMetrics derives summary statistics from a simulation result.
func ComputeMetrics(res *Result) Metrics {
	m := Metrics{
		SharpeRatio: math.NaN(),
		Trades:      res.Trades,
		EquityCurve: res.Equity,
	}
	if m.Trades == nil {
		m.Trades = []Trade{}
	}
	if len(res.Equity) == 0 {
		return m
	}

	m.TotalReturn = (res.Equity.Last() - res.InitialCapital) / res.InitialCapital

	if mean, std := meanStd(res.Returns); std > 0 {
		m.SharpeRatio = math.Sqrt(TradingDaysPerYear) * mean / std
	}

	m.MaxDrawdown = maxDrawdown(res.Equity)

	if len(res.Trades) > 0 {
		buys := 0
		for _, t := range res.Trades {
			if t.Type == Buy {
				buys++
			}
		}
		m.WinRate = float64(buys) / float64(len(res.Trades))
	}

	return m
}

// meanStd returns the mean and sample standard deviation of the series.
func meanStd(s market.Series) (mean, std float64) {
	n := len(s)
	if n == 0 {
		return 0, 0
	}
	for _, v := range s {
		mean += v
	}
	mean /= float64(n)

	if n < 2 {
		return mean, 0
	}
	ss := 0.0
	for _, v := range s {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(n-1))
}

// maxDrawdown is the deepest fall of equity below its running peak,
// expressed as a fraction at or below zero.
func maxDrawdown(equity market.Series) float64 {
	worst := 0.0
	peak := math.Inf(-1)
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if dd := v/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}
