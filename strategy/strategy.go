// Package strategy turns indicator output into per-bar trading signals.
package strategy

import (
	"fmt"

	"tradelab/indicators"
	"tradelab/market"
)

// Signal values for one bar.
const (
	Long  = 1
	Flat  = 0
	Short = -1
)

// RSI threshold levels for the oversold/overbought rule.
const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
)

// Rules selects which indicator rules contribute to the signal series.
// Rules are evaluated in a fixed order — SMA, then RSI, then MACD — and
// a later rule's non-zero signal overwrites an earlier one at the same
// bar. There is no weighting or voting.
type Rules struct {
	SMA       bool
	SMAPeriod int
	RSI       bool
	RSIPeriod int
	MACD      bool
}

// DefaultRules enables the SMA crossover rule with a 20-bar window.
func DefaultRules() Rules {
	return Rules{SMA: true, SMAPeriod: 20, RSIPeriod: 14}
}

// Validate checks the rule configuration.
func (r Rules) Validate() error {
	if !r.SMA && !r.RSI && !r.MACD {
		return fmt.Errorf("no rules enabled")
	}
	if r.SMA && r.SMAPeriod <= 0 {
		return fmt.Errorf("sma period must be positive, got %d", r.SMAPeriod)
	}
	if r.RSI && r.RSIPeriod <= 0 {
		return fmt.Errorf("rsi period must be positive, got %d", r.RSIPeriod)
	}
	return nil
}

// Signals produces one signal per candle: +1 long bias, -1 short bias,
// 0 no signal. Bars where a rule's indicator is undefined are left
// untouched by that rule.
func Signals(candles []market.Candle, rules Rules) ([]int, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	closes := market.Closes(candles)
	signals := make([]int, len(candles))

	if rules.SMA {
		sma, err := indicators.SMA(closes, rules.SMAPeriod)
		if err != nil {
			return nil, err
		}
		for i := range signals {
			if !sma.Defined(i) {
				continue
			}
			switch {
			case closes[i] > sma[i]:
				signals[i] = Long
			case closes[i] < sma[i]:
				signals[i] = Short
			}
		}
	}

	if rules.RSI {
		rsi, err := indicators.RSI(closes, rules.RSIPeriod)
		if err != nil {
			return nil, err
		}
		for i := range signals {
			if !rsi.Defined(i) {
				continue
			}
			switch {
			case rsi[i] < RSIOversold:
				signals[i] = Long
			case rsi[i] > RSIOverbought:
				signals[i] = Short
			}
		}
	}

	if rules.MACD {
		line, signalLine, _, err := indicators.MACD(closes,
			indicators.MACDFastPeriod, indicators.MACDSlowPeriod, indicators.MACDSignalPeriod)
		if err != nil {
			return nil, err
		}
		for i := range signals {
			switch {
			case line[i] > signalLine[i]:
				signals[i] = Long
			case line[i] < signalLine[i]:
				signals[i] = Short
			}
		}
	}

	return signals, nil
}
