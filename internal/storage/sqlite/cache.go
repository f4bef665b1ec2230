package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/finbell/stockcast/internal/model"
)

const dateFormat = "2006-01-02"

// Cache keeps fetched daily candles in a local sqlite file,
// so repeat runs over the same range skip the provider call.
type Cache struct {
	db *sql.DB
}

// NewCache opens (and if needed creates) the cache at the given path.
func NewCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open candle cache '%s': %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS candles (
		symbol TEXT NOT NULL,
		date   TEXT NOT NULL,
		price  REAL NOT NULL,
		PRIMARY KEY (symbol, date)
	)`); err != nil {
		return nil, fmt.Errorf("could not migrate candle cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put upserts every candle of the series.
func (c *Cache) Put(ctx context.Context, series model.PriceSeries) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start cache transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO candles (symbol, date, price) VALUES (?, ?, ?)
		 ON CONFLICT (symbol, date) DO UPDATE SET price = excluded.price`)
	if err != nil {
		return fmt.Errorf("could not prepare cache insert: %w", err)
	}
	defer stmt.Close()

	for _, candle := range series.Candles {
		if _, err := stmt.ExecContext(ctx, string(series.Symbol), candle.Time.UTC().Format(dateFormat), candle.Price); err != nil {
			return fmt.Errorf("could not cache candle %s %v: %w", series.Symbol, candle.Time, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit cache transaction: %w", err)
	}

	log.Debug().
		Str("symbol", string(series.Symbol)).
		Int("candles", series.Len()).
		Msg("cached candles")

	return nil
}

// Get returns the cached candles for the symbol within [from, to].
// An empty series is not an error; the caller decides whether it covers the range.
func (c *Cache) Get(ctx context.Context, symbol model.Symbol, from, to time.Time) (model.PriceSeries, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT date, price FROM candles WHERE symbol = ? AND date >= ? AND date <= ? ORDER BY date`,
		string(symbol), from.UTC().Format(dateFormat), to.UTC().Format(dateFormat))
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("could not query candle cache: %w", err)
	}
	defer rows.Close()

	candles := make([]model.Candle, 0)
	for rows.Next() {
		var (
			date  string
			price float64
		)
		if err := rows.Scan(&date, &price); err != nil {
			return model.PriceSeries{}, fmt.Errorf("could not scan cached candle: %w", err)
		}
		t, err := time.Parse(dateFormat, date)
		if err != nil {
			return model.PriceSeries{}, fmt.Errorf("corrupt cached date '%s': %w", date, err)
		}
		candles = append(candles, model.NewCandle(t, price))
	}
	if err := rows.Err(); err != nil {
		return model.PriceSeries{}, fmt.Errorf("could not iterate candle cache: %w", err)
	}

	return model.NewPriceSeries(symbol, candles)
}
