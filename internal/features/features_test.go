package features

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbell/stockcast/internal/model"
)

func syntheticSeries(t *testing.T, n int, price func(i int) float64) model.PriceSeries {
	t.Helper()
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC) // a Monday
	candles := make([]model.Candle, 0, n)
	day := start
	for i := 0; i < n; i++ {
		// trading days only
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		candles = append(candles, model.NewCandle(day, price(i)))
		day = day.AddDate(0, 0, 1)
	}
	series, err := model.NewPriceSeries("TEST", candles)
	require.NoError(t, err)
	return series
}

func TestExtract_RandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	price := 100.0
	series := syntheticSeries(t, 300, func(i int) float64 {
		price *= 1 + (rng.Float64()-0.5)*0.03
		return price
	})

	frame, err := Extract(series)
	require.NoError(t, err)

	// longest lookback is the 50-day moving average
	assert.LessOrEqual(t, frame.Len(), 300-49)
	assert.Equal(t, 300-49, frame.Len())

	for _, row := range frame.Rows {
		assert.True(t, row.Defined(), "row %v not fully defined", row.Date)
		assert.GreaterOrEqual(t, row.RSI14, 0.0)
		assert.LessOrEqual(t, row.RSI14, 100.0)
		assert.GreaterOrEqual(t, row.BollingerHigh, row.BollingerMid)
		assert.GreaterOrEqual(t, row.BollingerMid, row.BollingerLow)
		assert.GreaterOrEqual(t, row.DayOfWeek, 1.0)
		assert.LessOrEqual(t, row.DayOfWeek, 5.0)
		assert.GreaterOrEqual(t, row.Month, 1.0)
		assert.LessOrEqual(t, row.Month, 12.0)
	}

	// rows stay in date order after the trim
	for i := 1; i < frame.Len(); i++ {
		assert.True(t, frame.Rows[i].Date.After(frame.Rows[i-1].Date))
	}
}

func TestExtract_ConstantSeries(t *testing.T) {
	series := syntheticSeries(t, 300, func(i int) float64 { return 100.0 })

	frame, err := Extract(series)
	require.NoError(t, err)

	// a series with zero movement has no relative strength,
	// so every row trims on the undefined RSI
	assert.Equal(t, 0, frame.Len())
}

func TestExtract_Empty(t *testing.T) {
	_, err := Extract(model.PriceSeries{Symbol: "TEST"})
	assert.Error(t, err)
}

func TestExtract_LagFields(t *testing.T) {
	series := syntheticSeries(t, 120, func(i int) float64 { return 100 + float64(i) })

	frame, err := Extract(series)
	require.NoError(t, err)
	require.NotZero(t, frame.Len())

	row := frame.Rows[frame.Len()-1]
	assert.InDelta(t, row.Price-1, row.PriceLag1, 1e-9)
	assert.InDelta(t, row.Price-2, row.PriceLag2, 1e-9)
}

func TestFeatureVectorShape(t *testing.T) {
	series := syntheticSeries(t, 150, func(i int) float64 { return 100 + float64(i%7) })
	frame, err := Extract(series)
	require.NoError(t, err)
	require.NotZero(t, frame.Len())

	x, y := frame.Matrix()
	assert.Len(t, x, frame.Len())
	assert.Len(t, y, frame.Len())
	assert.Len(t, x[0], len(model.FeatureNames))
}
