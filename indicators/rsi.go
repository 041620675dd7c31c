package indicators

import (
	"tradelab/market"
)

// RSI calculates the Relative Strength Index for the given period.
//
// Gains and losses are the trailing-period means of the positive and
// negative per-bar deltas. Output is undefined for indices below
// period. When the window holds no losses but some gain, RSI is
// exactly 100; a window with neither gains nor losses (flat prices)
// stays undefined.
func RSI(series market.Series, period int) (market.Series, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	out := market.NewSeries(len(series))
	if len(series) <= period {
		return out, nil
	}

	// gains[i] / losses[i] describe the move from bar i-1 to bar i.
	gains := make([]float64, len(series))
	losses := make([]float64, len(series))
	for i := 1; i < len(series); i++ {
		delta := series[i] - series[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(series); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}

		gain := gainSum / float64(period)
		loss := lossSum / float64(period)
		switch {
		case loss == 0 && gain > 0:
			// Infinite relative strength must resolve to 100, not
			// fall through to floating-point division.
			out[i] = 100
		case loss == 0:
			// Flat window: relative strength is 0/0.
		default:
			rs := gain / loss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out, nil
}
