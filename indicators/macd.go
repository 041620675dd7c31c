package indicators

import (
	"tradelab/market"
)

// Default MACD periods, as convention has standardized them.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// MACD calculates the Moving Average Convergence Divergence: the MACD
// line (fast EMA minus slow EMA), its signal line (EMA of the MACD
// line), and the histogram (line minus signal). All three are aligned
// with the input and defined from index 0.
func MACD(series market.Series, fast, slow, signal int) (line, signalLine, histogram market.Series, err error) {
	emaFast, err := EMA(series, fast)
	if err != nil {
		return nil, nil, nil, err
	}
	emaSlow, err := EMA(series, slow)
	if err != nil {
		return nil, nil, nil, err
	}

	line = make(market.Series, len(series))
	for i := range series {
		line[i] = emaFast[i] - emaSlow[i]
	}

	signalLine, err = EMA(line, signal)
	if err != nil {
		return nil, nil, nil, err
	}

	histogram = make(market.Series, len(series))
	for i := range series {
		histogram[i] = line[i] - signalLine[i]
	}
	return line, signalLine, histogram, nil
}
