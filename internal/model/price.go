package model

import (
	"fmt"
	"sort"
	"time"
)

// Symbol identifies the instrument the pipeline runs for.
type Symbol string

// Candle defines a daily closing price in time.
type Candle struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// NewCandle creates a new candle at trading-day granularity.
func NewCandle(t time.Time, price float64) Candle {
	return Candle{
		Time:  t.Truncate(24 * time.Hour),
		Price: price,
	}
}

// PriceSeries is an ordered sequence of daily candles,
// strictly increasing in time, with no duplicate dates.
// Non-trading days are simply absent.
type PriceSeries struct {
	Symbol  Symbol   `json:"symbol"`
	Candles []Candle `json:"candles"`
}

// NewPriceSeries builds a series from the given candles.
// Candles are sorted by time, duplicate dates are an error.
func NewPriceSeries(symbol Symbol, candles []Candle) (PriceSeries, error) {
	cc := make([]Candle, len(candles))
	copy(cc, candles)
	sort.Slice(cc, func(i, j int) bool {
		return cc[i].Time.Before(cc[j].Time)
	})
	for i := 1; i < len(cc); i++ {
		if !cc[i].Time.After(cc[i-1].Time) {
			return PriceSeries{}, fmt.Errorf("duplicate date in series for %s: %v", symbol, cc[i].Time)
		}
	}
	return PriceSeries{
		Symbol:  symbol,
		Candles: cc,
	}, nil
}

// Len returns the number of candles in the series.
func (s PriceSeries) Len() int {
	return len(s.Candles)
}

// Prices returns the closing prices in time order.
func (s PriceSeries) Prices() []float64 {
	pp := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		pp[i] = c.Price
	}
	return pp
}

// Times returns the candle dates in time order.
func (s PriceSeries) Times() []time.Time {
	tt := make([]time.Time, len(s.Candles))
	for i, c := range s.Candles {
		tt[i] = c.Time
	}
	return tt
}
