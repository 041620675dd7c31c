package indicators

import (
	"tradelab/market"
)

// SMA calculates the Simple Moving Average for the given period.
//
// Output is undefined for indices below period-1.
func SMA(series market.Series, period int) (market.Series, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	out := market.NewSeries(len(series))
	sum := 0.0
	for i, v := range series {
		sum += v
		if i >= period {
			sum -= series[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out, nil
}

// EMA calculates the Exponential Moving Average for the given period
// with multiplier 2/(period+1).
//
// The recursion is seeded with the first sample so the output is
// defined from index 0; early values are biased toward the seed until
// roughly a full period has passed.
func EMA(series market.Series, period int) (market.Series, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	out := market.NewSeries(len(series))
	if len(series) == 0 {
		return out, nil
	}

	multiplier := 2.0 / float64(period+1)
	ema := series[0]
	out[0] = ema
	for i := 1; i < len(series); i++ {
		ema = (series[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out, nil
}
