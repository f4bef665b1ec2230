package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbell/stockcast/internal/model"
)

func TestCache_RoundTrip(t *testing.T) {
	cache, err := NewCache(filepath.Join(t.TempDir(), "candles.db"))
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	day := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)

	series, err := model.NewPriceSeries("AAPL", []model.Candle{
		model.NewCandle(day, 180.1),
		model.NewCandle(day.AddDate(0, 0, 1), 181.3),
		model.NewCandle(day.AddDate(0, 0, 2), 179.8),
	})
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, series))

	out, err := cache.Get(ctx, "AAPL", day, day.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	assert.InDelta(t, 180.1, out.Candles[0].Price, 1e-9)

	// range filter
	partial, err := cache.Get(ctx, "AAPL", day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, partial.Len())

	// other symbols stay invisible
	other, err := cache.Get(ctx, "MSFT", day, day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, 0, other.Len())
}

func TestCache_UpsertOverwrites(t *testing.T) {
	cache, err := NewCache(filepath.Join(t.TempDir(), "candles.db"))
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	day := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)

	first, err := model.NewPriceSeries("AAPL", []model.Candle{model.NewCandle(day, 100)})
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, first))

	second, err := model.NewPriceSeries("AAPL", []model.Candle{model.NewCandle(day, 101)})
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, second))

	out, err := cache.Get(ctx, "AAPL", day, day)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, 101, out.Candles[0].Price, 1e-9)
}
