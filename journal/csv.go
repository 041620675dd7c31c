package journal

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// CSVJournal appends runs, trades, and equity samples to three CSV
// files in one directory.
type CSVJournal struct {
	runs, trades, equity *csv.Writer
	rf, tf, ef           *os.File
}

// NewCSV creates runs.csv, trades.csv and equity.csv under dir,
// writing header rows.
func NewCSV(dir string) (*CSVJournal, error) {
	rf, err := os.Create(filepath.Join(dir, "runs.csv"))
	if err != nil {
		return nil, err
	}
	tf, err := os.Create(filepath.Join(dir, "trades.csv"))
	if err != nil {
		rf.Close()
		return nil, err
	}
	ef, err := os.Create(filepath.Join(dir, "equity.csv"))
	if err != nil {
		rf.Close()
		tf.Close()
		return nil, err
	}

	j := &CSVJournal{
		runs:   csv.NewWriter(rf),
		trades: csv.NewWriter(tf),
		equity: csv.NewWriter(ef),
		rf:     rf, tf: tf, ef: ef,
	}

	headers := []struct {
		w   *csv.Writer
		row []string
	}{
		{j.runs, []string{"run_id", "created", "symbol", "timeframe", "bars", "initial_capital", "total_return", "sharpe_ratio", "max_drawdown", "win_rate", "trades"}},
		{j.trades, []string{"run_id", "timestamp", "price", "type", "size"}},
		{j.equity, []string{"run_id", "bar", "equity", "return"}},
	}
	for _, h := range headers {
		if err := h.w.Write(h.row); err != nil {
			j.Close()
			return nil, err
		}
		h.w.Flush()
		if err := h.w.Error(); err != nil {
			j.Close()
			return nil, err
		}
	}

	return j, nil
}

func (j *CSVJournal) RecordRun(r BacktestRun) error {
	sharpe := ""
	if !math.IsNaN(r.SharpeRatio) {
		sharpe = f(r.SharpeRatio)
	}
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		r.Symbol,
		r.Timeframe,
		strconv.Itoa(r.Bars),
		f(r.InitialCapital),
		f(r.TotalReturn),
		sharpe,
		f(r.MaxDrawdown),
		f(r.WinRate),
		strconv.Itoa(r.Trades),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.RunID,
		t.Timestamp.Format(time.RFC3339),
		f(t.Price),
		t.Type,
		f(t.Size),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySample) error {
	err := j.equity.Write([]string{
		e.RunID,
		strconv.Itoa(e.Bar),
		f(e.Equity),
		f(e.Return),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.runs, j.trades, j.equity} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	for _, file := range []*os.File{j.rf, j.tf, j.ef} {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
