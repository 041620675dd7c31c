package market

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeriesUndefined(t *testing.T) {
	s := NewSeries(4)
	require.Len(t, s, 4)
	for i := range s {
		assert.False(t, s.Defined(i))
	}
}

func TestSeriesJSONNulls(t *testing.T) {
	s := Series{math.NaN(), 1.5, math.NaN(), 2}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `[null,1.5,null,2]`, string(data))

	var back Series
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 4)
	assert.False(t, back.Defined(0))
	assert.Equal(t, 1.5, back[1])
	assert.False(t, back.Defined(2))
	assert.Equal(t, 2.0, back[3])
}

func TestCloses(t *testing.T) {
	candles := []Candle{
		{OpenTime: 1, Close: 100},
		{OpenTime: 2, Close: 110},
		{OpenTime: 3, Close: 90},
	}
	assert.Equal(t, Series{100, 110, 90}, Closes(candles))
}
