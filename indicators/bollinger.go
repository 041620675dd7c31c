package indicators

import (
	"math"

	"tradelab/market"
)

// Default Bollinger parameters.
const (
	BollingerPeriod = 20
	BollingerWidth  = 2.0
)

// Bollinger calculates Bollinger Bands: the middle band is the SMA over
// period, the upper and lower bands sit k sample standard deviations
// above and below it, computed over the same trailing window. All three
// bands are undefined for indices below period-1.
func Bollinger(series market.Series, period int, k float64) (upper, middle, lower market.Series, err error) {
	middle, err = SMA(series, period)
	if err != nil {
		return nil, nil, nil, err
	}

	std, err := rollingStd(series, period)
	if err != nil {
		return nil, nil, nil, err
	}

	upper = market.NewSeries(len(series))
	lower = market.NewSeries(len(series))
	for i := range series {
		if !middle.Defined(i) || !std.Defined(i) {
			continue
		}
		upper[i] = middle[i] + k*std[i]
		lower[i] = middle[i] - k*std[i]
	}
	return upper, middle, lower, nil
}

// rollingStd computes the trailing sample standard deviation (n-1
// denominator) over the given window.
func rollingStd(series market.Series, period int) (market.Series, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	out := market.NewSeries(len(series))
	if period == 1 {
		// A single-sample window has no deviation to measure.
		return out, nil
	}

	for i := period - 1; i < len(series); i++ {
		window := series[i-period+1 : i+1]

		mean := 0.0
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)

		ss := 0.0
		for _, v := range window {
			d := v - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(period-1))
	}
	return out, nil
}
