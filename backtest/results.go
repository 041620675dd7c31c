package backtest

import (
	"fmt"
	"io"
	"math"
	"time"
)

// PrintSummary writes a human-readable report of a run to w.
func PrintSummary(w io.Writer, symbol, timeframe string, m Metrics) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Symbol:        %s\n", symbol)
	fmt.Fprintf(w, "Timeframe:     %s\n", timeframe)
	fmt.Fprintf(w, "Bars:          %d\n", len(m.EquityCurve))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total Return:  %.2f%%\n", m.TotalReturn*100)
	if math.IsNaN(m.SharpeRatio) {
		fmt.Fprintf(w, "Sharpe Ratio:  n/a (zero return variance)\n")
	} else {
		fmt.Fprintf(w, "Sharpe Ratio:  %.3f\n", m.SharpeRatio)
	}
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", m.MaxDrawdown*100)
	fmt.Fprintf(w, "Win Rate:      %.2f%% (buy entries / trades)\n", m.WinRate*100)
	fmt.Fprintf(w, "Trades:        %d\n", len(m.Trades))

	if len(m.Trades) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Trades")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, t := range m.Trades {
			fmt.Fprintf(w, "%s  %-4s  price=%.5f  size=%.4f\n",
				t.Timestamp.Format(time.RFC3339), t.Type, t.Price, t.Size)
		}
	}
	fmt.Fprintln(w)
}
