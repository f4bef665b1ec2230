package binance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/rs/zerolog/log"

	"github.com/finbell/stockcast/internal/model"
)

const (
	interval = "1d"
	pageSize = 1000
)

// Client serves daily closes for crypto pairs from the binance klines api.
// No credentials are needed for public market data.
type Client struct {
	api *binance.Client
}

// NewClient creates a new binance history client.
func NewClient() *Client {
	return &Client{
		api: binance.NewClient("", ""),
	}
}

// History returns the daily closes for the pair over [from, to].
// The klines endpoint pages at 1000 candles, so longer ranges loop.
func (c *Client) History(ctx context.Context, symbol model.Symbol, from, to time.Time) (model.PriceSeries, error) {
	candles := make([]model.Candle, 0)
	start := from.UnixMilli()
	end := to.UnixMilli()

	for start < end {
		kk, err := c.api.NewKlinesService().
			Symbol(string(symbol)).
			Interval(interval).
			StartTime(start).
			EndTime(end).
			Limit(pageSize).
			Do(ctx)
		if err != nil {
			return model.PriceSeries{}, fmt.Errorf("could not get klines for %s: %w", symbol, err)
		}
		if len(kk) == 0 {
			break
		}

		for _, k := range kk {
			price, err := strconv.ParseFloat(k.Close, 64)
			if err != nil {
				return model.PriceSeries{}, fmt.Errorf("could not parse close '%s' for %s: %w", k.Close, symbol, err)
			}
			candles = append(candles, model.NewCandle(time.UnixMilli(k.OpenTime).UTC(), price))
		}

		if len(kk) < pageSize {
			break
		}
		start = kk[len(kk)-1].CloseTime + 1
	}

	series, err := model.NewPriceSeries(symbol, candles)
	if err != nil {
		return model.PriceSeries{}, err
	}

	log.Info().
		Str("symbol", string(symbol)).
		Int("candles", series.Len()).
		Msg("fetched klines history")

	return series, nil
}
