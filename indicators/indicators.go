// Package indicators provides technical analysis indicators computed
// over an aligned series of prices.
//
// Every function returns a market.Series the same length as its input.
// Leading positions whose lookback window exceeds available history are
// undefined (NaN); callers check Series.Defined or rely on the JSON
// null encoding at the boundary.
package indicators

import (
	"errors"
	"fmt"
)

// ErrInvalidPeriod is returned when an indicator period is not positive.
var ErrInvalidPeriod = errors.New("period must be positive")

func checkPeriod(period int) error {
	if period <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidPeriod, period)
	}
	return nil
}
