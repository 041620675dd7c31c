package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var csvHeader = []string{"open_time", "open", "high", "low", "close", "volume", "close_time"}

// LoadCSV reads candles from a CSV file with columns
// open_time,open,high,low,close,volume,close_time. A header row is
// optional. Rows must be in ascending open_time order.
func LoadCSV(path string) ([]Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candles: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads candles from r in the same format as LoadCSV.
func ReadCSV(r io.Reader) ([]Candle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var candles []Candle
	var prev int64 = -1
	line := 0

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return candles, nil
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "open_time") {
			continue
		}
		if len(row) < 7 {
			return nil, fmt.Errorf("line %d: need 7 columns (open_time,open,high,low,close,volume,close_time), got %d", line, len(row))
		}

		c, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if c.OpenTime <= prev {
			return nil, fmt.Errorf("line %d: open_time %d not after previous %d", line, c.OpenTime, prev)
		}
		prev = c.OpenTime
		candles = append(candles, c)
	}
}

func parseRow(row []string) (Candle, error) {
	var c Candle
	var err error

	if c.OpenTime, err = strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64); err != nil {
		return c, fmt.Errorf("bad open_time %q: %w", row[0], err)
	}
	fields := []struct {
		name string
		dst  *float64
		raw  string
	}{
		{"open", &c.Open, row[1]},
		{"high", &c.High, row[2]},
		{"low", &c.Low, row[3]},
		{"close", &c.Close, row[4]},
		{"volume", &c.Volume, row[5]},
	}
	for _, f := range fields {
		if *f.dst, err = strconv.ParseFloat(strings.TrimSpace(f.raw), 64); err != nil {
			return c, fmt.Errorf("bad %s %q: %w", f.name, f.raw, err)
		}
	}
	if c.CloseTime, err = strconv.ParseInt(strings.TrimSpace(row[6]), 10, 64); err != nil {
		return c, fmt.Errorf("bad close_time %q: %w", row[6], err)
	}
	return c, nil
}

// WriteCSV writes candles to w with a header row, in the format LoadCSV
// reads back.
func WriteCSV(w io.Writer, candles []Candle) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range candles {
		row := []string{
			strconv.FormatInt(c.OpenTime, 10),
			fstr(c.Open),
			fstr(c.High),
			fstr(c.Low),
			fstr(c.Close),
			fstr(c.Volume),
			strconv.FormatInt(c.CloseTime, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fstr(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
