package features

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	stockmath "github.com/finbell/stockcast/internal/math"
	"github.com/finbell/stockcast/internal/model"
)

// Indicator windows of the feature contract.
const (
	smaShortWindow   = 20
	smaLongWindow    = 50
	emaWindow        = 10
	rsiWindow        = 14
	volatilityWindow = 10
	macdFast         = 12
	macdSlow         = 26
	macdSignal       = 9
	bollingerWindow  = 20
	bollingerWidth   = 2.0
	returnShortLag   = 1
	returnLongLag    = 5
)

// Extract derives the full feature table from the price series and
// drops every row that still carries an undefined field.
// The surviving frame is the modeling dataset.
func Extract(series model.PriceSeries) (model.Frame, error) {
	if series.Len() == 0 {
		return model.Frame{}, fmt.Errorf("empty price series for %s", series.Symbol)
	}

	prices := series.Prices()
	times := series.Times()

	sma20 := stockmath.SMA(prices, smaShortWindow)
	sma50 := stockmath.SMA(prices, smaLongWindow)
	ema10 := stockmath.EMA(prices, emaWindow)
	rsi14 := stockmath.RSI(prices, rsiWindow)
	volatility := stockmath.RollingStdDev(prices, volatilityWindow)
	returns := stockmath.Returns(prices)
	macd, signal := stockmath.MACD(prices, macdFast, macdSlow, macdSignal)
	bollHigh, bollMid, bollLow := stockmath.Bollinger(prices, bollingerWindow, bollingerWidth)
	priceLag1 := stockmath.Lag(prices, 1)
	priceLag2 := stockmath.Lag(prices, 2)
	returnLag1 := stockmath.Lag(returns, returnShortLag)
	returnLag5 := stockmath.Lag(returns, returnLongLag)

	rows := make([]model.Row, len(prices))
	for i := range prices {
		rows[i] = model.Row{
			Date:          times[i],
			Price:         prices[i],
			SMA20:         sma20[i],
			SMA50:         sma50[i],
			EMA10:         ema10[i],
			RSI14:         rsi14[i],
			Volatility10:  volatility[i],
			Return:        returns[i],
			MACD:          macd[i],
			MACDSignal:    signal[i],
			BollingerHigh: bollHigh[i],
			BollingerLow:  bollLow[i],
			BollingerMid:  bollMid[i],
			DayOfWeek:     dayOfWeek(times[i]),
			Month:         float64(times[i].Month()),
			PriceLag1:     priceLag1[i],
			PriceLag2:     priceLag2[i],
			ReturnLag1:    returnLag1[i],
			ReturnLag5:    returnLag5[i],
		}
	}

	frame := model.Frame{Symbol: series.Symbol, Rows: rows}.Trim()

	log.Info().
		Str("symbol", string(series.Symbol)).
		Int("candles", series.Len()).
		Int("rows", frame.Len()).
		Msg("derived feature table")

	return frame, nil
}

// dayOfWeek maps to ISO numbering, Monday 1 through Sunday 7.
func dayOfWeek(t time.Time) float64 {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return float64(wd)
}
