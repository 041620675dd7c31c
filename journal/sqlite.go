package journal

import (
	"database/sql"
	"math"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteJournal persists runs, trades, and equity samples to a SQLite
// database.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r BacktestRun) error {
	sharpe := sql.NullFloat64{Float64: r.SharpeRatio, Valid: !math.IsNaN(r.SharpeRatio)}
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, symbol, timeframe, bars, initial_capital, total_return, sharpe_ratio, max_drawdown, win_rate, trades)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Symbol, r.Timeframe, r.Bars, r.InitialCapital,
		r.TotalReturn, sharpe, r.MaxDrawdown, r.WinRate, r.Trades,
	)
	return err
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades (run_id, timestamp, price, type, size)
		VALUES (?, ?, ?, ?, ?)`,
		t.RunID, t.Timestamp, t.Price, t.Type, t.Size,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySample) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, bar, equity, bar_return)
		VALUES (?, ?, ?, ?)`,
		e.RunID, e.Bar, e.Equity, e.Return,
	)
	return err
}

// GetRun loads one run summary by ID.
func (j *SQLiteJournal) GetRun(runID string) (BacktestRun, error) {
	var r BacktestRun
	var sharpe sql.NullFloat64

	err := j.db.QueryRow(`
		SELECT run_id, created, symbol, timeframe, bars, initial_capital, total_return, sharpe_ratio, max_drawdown, win_rate, trades
		FROM runs WHERE run_id = ?`, runID).
		Scan(&r.RunID, &r.Created, &r.Symbol, &r.Timeframe, &r.Bars, &r.InitialCapital,
			&r.TotalReturn, &sharpe, &r.MaxDrawdown, &r.WinRate, &r.Trades)
	if err != nil {
		return r, err
	}

	r.SharpeRatio = math.NaN()
	if sharpe.Valid {
		r.SharpeRatio = sharpe.Float64
	}
	return r, nil
}

// ListTrades returns the trades of a run in timestamp order.
func (j *SQLiteJournal) ListTrades(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, timestamp, price, type, size
		FROM trades WHERE run_id = ? ORDER BY timestamp`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(&t.RunID, &t.Timestamp, &t.Price, &t.Type, &t.Size); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListEquity returns the equity curve of a run in bar order.
func (j *SQLiteJournal) ListEquity(runID string) ([]EquitySample, error) {
	rows, err := j.db.Query(`
		SELECT run_id, bar, equity, bar_return
		FROM equity WHERE run_id = ? ORDER BY bar`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySample
	for rows.Next() {
		var e EquitySample
		if err := rows.Scan(&e.RunID, &e.Bar, &e.Equity, &e.Return); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
