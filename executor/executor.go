// Package executor tracks open positions and order history for
// simulated live trading. It is the incremental counterpart to the
// backtest simulator: state is long-lived, shared across callers, and
// mutated one order at a time.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tradelab/internal/id"
)

// Side of an order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// OrderType distinguishes market from limit orders. Limit orders are
// recorded only — there is no resting book and they never fill.
type OrderType string

const (
	Market OrderType = "MARKET"
	Limit  OrderType = "LIMIT"
)

var (
	// ErrNoPosition is returned when closing a symbol with no open position.
	ErrNoPosition = errors.New("no position found")
	// ErrInvalidOrder is returned when an order request is malformed.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrOracle wraps price lookup failures.
	ErrOracle = errors.New("price lookup failed")
)

// Order is one entry in the order history. Every placement attempt is
// recorded, including failed ones; those carry the failure in Err.
type Order struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Side      Side      `json:"side"`
	Type      OrderType `json:"type"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Err       string    `json:"error,omitempty"`
}

// Position is an open holding for one symbol. The ledger keeps at most
// one position per symbol.
type Position struct {
	Symbol     string  `json:"symbol"`
	Quantity   float64 `json:"quantity"`
	EntryPrice float64 `json:"entry_price"`
}

// PriceOracle supplies the current price for a symbol. It is injected
// so the ledger's state transitions stay testable without network
// access, and so callers can layer timeout or retry policy on top.
type PriceOracle interface {
	Price(ctx context.Context, symbol string) (float64, error)
}

// OracleFunc adapts a function to the PriceOracle interface.
type OracleFunc func(ctx context.Context, symbol string) (float64, error)

func (f OracleFunc) Price(ctx context.Context, symbol string) (float64, error) {
	return f(ctx, symbol)
}

// Executor is the live position/order ledger. A single mutex serializes
// every mutation; the oracle call happens under the lock so a symbol's
// position cannot change between the price fetch and the write.
type Executor struct {
	mu        sync.Mutex
	oracle    PriceOracle
	positions map[string]Position
	orders    []Order
	log       zerolog.Logger
}

// New returns an empty ledger backed by the given price oracle.
func New(oracle PriceOracle, log zerolog.Logger) *Executor {
	return &Executor{
		oracle:    oracle,
		positions: make(map[string]Position),
		log:       log,
	}
}

// PlaceMarketOrder places a simulated market order. A BUY fetches the
// current price from the oracle and records (or overwrites) the open
// position for the symbol at that price; a failed lookup leaves no
// position behind. The order is appended to history either way, with
// the failure noted on the record.
func (e *Executor) PlaceMarketOrder(ctx context.Context, symbol string, side Side, quantity float64) (Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.placeMarket(ctx, symbol, side, quantity)
}

// placeMarket does the market-order work. Caller holds e.mu.
func (e *Executor) placeMarket(ctx context.Context, symbol string, side Side, quantity float64) (Order, error) {
	order := Order{
		ID:        id.New(),
		Symbol:    symbol,
		Side:      side,
		Type:      Market,
		Quantity:  quantity,
		Timestamp: time.Now().UTC(),
	}

	if err := validate(symbol, side, quantity); err != nil {
		return e.reject(order, err)
	}

	if side == Buy {
		price, err := e.oracle.Price(ctx, symbol)
		if err != nil {
			return e.reject(order, fmt.Errorf("%w: %s: %v", ErrOracle, symbol, err))
		}
		e.positions[symbol] = Position{
			Symbol:     symbol,
			Quantity:   quantity,
			EntryPrice: price,
		}
	}

	e.orders = append(e.orders, order)
	e.log.Info().
		Str("id", order.ID).
		Str("symbol", symbol).
		Str("side", string(side)).
		Float64("quantity", quantity).
		Msg("market order placed")
	return order, nil
}

// PlaceLimitOrder records a limit order in the history. It is never
// filled and touches no position.
func (e *Executor) PlaceLimitOrder(ctx context.Context, symbol string, side Side, quantity, price float64) (Order, error) {
	order := Order{
		ID:        id.New(),
		Symbol:    symbol,
		Side:      side,
		Type:      Limit,
		Quantity:  quantity,
		Price:     price,
		Timestamp: time.Now().UTC(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validate(symbol, side, quantity); err != nil {
		return e.reject(order, err)
	}
	if price <= 0 {
		return e.reject(order, fmt.Errorf("%w: price must be positive, got %v", ErrInvalidOrder, price))
	}

	e.orders = append(e.orders, order)
	e.log.Info().
		Str("id", order.ID).
		Str("symbol", symbol).
		Str("side", string(side)).
		Float64("price", price).
		Msg("limit order recorded")
	return order, nil
}

// ClosePosition sells out the full open position for symbol with a
// market order and removes it. The lookup, sell, and removal happen
// under one lock acquisition so concurrent closers cannot both sell.
// Closing a symbol with no position is reported as ErrNoPosition.
func (e *Executor) ClosePosition(ctx context.Context, symbol string) (Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos, ok := e.positions[symbol]
	if !ok {
		return Order{}, fmt.Errorf("%w: %s", ErrNoPosition, symbol)
	}

	order, err := e.placeMarket(ctx, symbol, Sell, pos.Quantity)
	if err != nil {
		return order, err
	}
	delete(e.positions, symbol)

	e.log.Info().Str("symbol", symbol).Float64("quantity", pos.Quantity).Msg("position closed")
	return order, nil
}

// Position returns the open position for symbol, if any.
func (e *Executor) Position(symbol string) (Position, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	pos, ok := e.positions[symbol]
	return pos, ok
}

// OrderHistory returns a copy of every recorded order, oldest first.
func (e *Executor) OrderHistory() []Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Order, len(e.orders))
	copy(out, e.orders)
	return out
}

// reject records a failed placement attempt and returns the error.
// Caller holds e.mu.
func (e *Executor) reject(order Order, err error) (Order, error) {
	order.Err = err.Error()
	e.orders = append(e.orders, order)
	e.log.Warn().Str("symbol", order.Symbol).Err(err).Msg("order rejected")
	return order, err
}

func validate(symbol string, side Side, quantity float64) error {
	if symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidOrder)
	}
	if side != Buy && side != Sell {
		return fmt.Errorf("%w: side must be BUY or SELL, got %q", ErrInvalidOrder, side)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidOrder, quantity)
	}
	return nil
}
