package engine

import (
	"encoding/json"

	"tradelab/backtest"
	"tradelab/executor"
	"tradelab/market"
)

// errorBody is the shape every failed response serializes to: a single
// error string, nothing else.
type errorBody struct {
	Error string `json:"error"`
}

// BacktestResponse carries either the flat metrics structure or an
// error string.
type BacktestResponse struct {
	Metrics *backtest.Metrics
	Error   string
}

func (r BacktestResponse) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(errorBody{Error: r.Error})
	}
	return json.Marshal(r.Metrics)
}

// IndicatorResponse carries either the computed series, with undefined
// points as null, or an error string.
type IndicatorResponse struct {
	Result market.Series
	Error  string
}

func (r IndicatorResponse) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(errorBody{Error: r.Error})
	}
	return json.Marshal(struct {
		Result market.Series `json:"result"`
	}{r.Result})
}

// OrderResponse carries either the recorded order or an error string.
type OrderResponse struct {
	Order *executor.Order
	Error string
}

func (r OrderResponse) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(errorBody{Error: r.Error})
	}
	return json.Marshal(r.Order)
}
