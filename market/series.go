package market

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Series is an ordered sequence of values index-aligned with the candle
// sequence it was derived from. Positions where a computation's lookback
// window exceeds available history hold NaN.
type Series []float64

// NewSeries returns a series of length n with every value undefined.
func NewSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// Defined reports whether the value at index i is defined.
func (s Series) Defined(i int) bool {
	return !math.IsNaN(s[i])
}

// Last returns the final value of the series, or NaN for an empty series.
func (s Series) Last() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

// MarshalJSON encodes the series as a JSON array with undefined points
// rendered as null, which is what the response boundary expects.
func (s Series) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.Write(strconv.AppendFloat(nil, v, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON array, mapping null back to NaN.
func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Series, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	*s = out
	return nil
}
