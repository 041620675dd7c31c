package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tradelab/engine"
	"tradelab/internal/logx"
	"tradelab/market"
)

var indicatorCmd = &cobra.Command{
	Use:   "indicator",
	Short: "Compute one indicator over a candle CSV",
	Long: `Indicator computes a single indicator series over the close prices
of a candle CSV and prints it as JSON, with undefined warm-up points
as null.

Example:
  tradelab indicator --candles data/btcusdt_1h.csv --name rsi --period 14`,
	RunE: runIndicator,
}

var (
	indCandlesPath string
	indName        string
	indPeriod      int
)

func init() {
	rootCmd.AddCommand(indicatorCmd)

	indicatorCmd.Flags().StringVarP(&indCandlesPath, "candles", "c", "", "path to candle CSV (required)")
	indicatorCmd.Flags().StringVarP(&indName, "name", "n", "sma", "indicator name (sma, rsi, macd)")
	indicatorCmd.Flags().IntVarP(&indPeriod, "period", "p", 0, "indicator period (0 uses the indicator's default)")

	indicatorCmd.MarkFlagRequired("candles")
}

func runIndicator(cmd *cobra.Command, args []string) error {
	log := logx.New(os.Stderr, logLevel)

	candles, err := market.LoadCSV(indCandlesPath)
	if err != nil {
		return err
	}

	svc := engine.New(nil, log)
	resp := svc.ComputeIndicator(engine.IndicatorRequest{
		Prices:    market.Closes(candles),
		Indicator: indName,
		Params:    engine.IndicatorParams{Period: indPeriod},
	})

	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	if resp.Error != "" {
		return fmt.Errorf("indicator: %s", resp.Error)
	}
	return nil
}
