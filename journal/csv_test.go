package journal

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelab/backtest"
	"tradelab/market"
)

func sampleMetrics() backtest.Metrics {
	return backtest.Metrics{
		TotalReturn: 0.1,
		SharpeRatio: math.NaN(),
		MaxDrawdown: -0.05,
		WinRate:     0.5,
		Trades: []backtest.Trade{
			{Timestamp: time.UnixMilli(60_000).UTC(), Price: 110, Type: backtest.Buy, Size: 90.9},
			{Timestamp: time.UnixMilli(120_000).UTC(), Price: 90, Type: backtest.Sell, Size: 111.1},
		},
		EquityCurve: market.Series{10_000, 10_000, 11_000},
	}
}

func TestCSVJournalWriteRun(t *testing.T) {
	dir := t.TempDir()

	j, err := NewCSV(dir)
	require.NoError(t, err)

	runID, err := WriteRun(j, "BTCUSDT", "1h", 10_000, sampleMetrics(), market.Series{0, 0, 0.1})
	require.NoError(t, err)
	require.NoError(t, j.Close())
	assert.NotEmpty(t, runID)

	runs := readCSVFile(t, filepath.Join(dir, "runs.csv"))
	require.Len(t, runs, 2) // header + one run
	assert.Equal(t, runID, runs[1][0])
	assert.Equal(t, "BTCUSDT", runs[1][2])
	// Undefined Sharpe is stored as an empty field.
	assert.Equal(t, "", runs[1][7])

	trades := readCSVFile(t, filepath.Join(dir, "trades.csv"))
	require.Len(t, trades, 3)
	assert.Equal(t, "buy", trades[1][3])
	assert.Equal(t, "sell", trades[2][3])

	equity := readCSVFile(t, filepath.Join(dir, "equity.csv"))
	require.Len(t, equity, 4)
	assert.Equal(t, "0", equity[1][1])
	assert.Equal(t, "2", equity[3][1])
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}
