// Package market holds the OHLCV candle model and the aligned value
// series the rest of the engine computes over.
package market

import "time"

// Candle represents one OHLCV bar. OpenTime and CloseTime are unix
// milliseconds, matching exchange kline payloads.
type Candle struct {
	OpenTime  int64   `json:"open_time"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	CloseTime int64   `json:"close_time"`
}

// Time returns the bar open time as a time.Time in UTC.
func (c Candle) Time() time.Time {
	return time.UnixMilli(c.OpenTime).UTC()
}

// Closes extracts the close prices from a candle sequence as a Series.
func Closes(candles []Candle) Series {
	out := make(Series, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
