package model

import (
	"math"
	"time"
)

// Row is one fully derived observation of the feature table.
// Price is the prediction target, every other float field is a feature.
type Row struct {
	Date          time.Time `json:"date"`
	Price         float64   `json:"price"`
	SMA20         float64   `json:"sma_20"`
	SMA50         float64   `json:"sma_50"`
	EMA10         float64   `json:"ema_10"`
	RSI14         float64   `json:"rsi_14"`
	Volatility10  float64   `json:"volatility_10"`
	Return        float64   `json:"return"`
	MACD          float64   `json:"macd"`
	MACDSignal    float64   `json:"macd_signal"`
	BollingerHigh float64   `json:"bollinger_high"`
	BollingerLow  float64   `json:"bollinger_low"`
	BollingerMid  float64   `json:"bollinger_mid"`
	DayOfWeek     float64   `json:"day_of_week"`
	Month         float64   `json:"month"`
	PriceLag1     float64   `json:"price_lag_1"`
	PriceLag2     float64   `json:"price_lag_2"`
	ReturnLag1    float64   `json:"return_lag_1"`
	ReturnLag5    float64   `json:"return_lag_5"`
}

// FeatureNames lists the feature columns in matrix order.
var FeatureNames = []string{
	"sma_20", "sma_50", "ema_10", "rsi_14", "volatility_10", "return",
	"macd", "macd_signal",
	"bollinger_high", "bollinger_low", "bollinger_mid",
	"day_of_week", "month",
	"price_lag_1", "price_lag_2", "return_lag_1", "return_lag_5",
}

// Features returns the feature vector of the row, excluding date and target.
func (r Row) Features() []float64 {
	return []float64{
		r.SMA20, r.SMA50, r.EMA10, r.RSI14, r.Volatility10, r.Return,
		r.MACD, r.MACDSignal,
		r.BollingerHigh, r.BollingerLow, r.BollingerMid,
		r.DayOfWeek, r.Month,
		r.PriceLag1, r.PriceLag2, r.ReturnLag1, r.ReturnLag5,
	}
}

// Defined reports whether every field of the row carries a value.
func (r Row) Defined() bool {
	for _, f := range append(r.Features(), r.Price) {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Frame is the in-memory feature table for one pipeline run.
type Frame struct {
	Symbol Symbol `json:"symbol"`
	Rows   []Row  `json:"rows"`
}

// Trim drops every row with an undefined field and returns the surviving frame.
func (f Frame) Trim() Frame {
	rows := make([]Row, 0, len(f.Rows))
	for _, r := range f.Rows {
		if r.Defined() {
			rows = append(rows, r)
		}
	}
	return Frame{
		Symbol: f.Symbol,
		Rows:   rows,
	}
}

// Len returns the number of rows.
func (f Frame) Len() int {
	return len(f.Rows)
}

// Matrix returns the feature matrix and the target vector.
func (f Frame) Matrix() ([][]float64, []float64) {
	xx := make([][]float64, len(f.Rows))
	yy := make([]float64, len(f.Rows))
	for i, r := range f.Rows {
		xx[i] = r.Features()
		yy[i] = r.Price
	}
	return xx, yy
}

// Select returns the sub-frame with the rows at the given indices.
func (f Frame) Select(index []int) Frame {
	rows := make([]Row, len(index))
	for i, j := range index {
		rows[i] = f.Rows[j]
	}
	return Frame{
		Symbol: f.Symbol,
		Rows:   rows,
	}
}

// Prediction is a test row together with the model output.
type Prediction struct {
	Date      time.Time `json:"date"`
	Actual    float64   `json:"actual"`
	Predicted float64   `json:"predicted"`
}
