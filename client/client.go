package client

import (
	"context"
	"time"

	"github.com/finbell/stockcast/internal/model"
)

// HistorySource serves the historical daily closes for an instrument.
// Implementations wrap one market-data provider each.
type HistorySource interface {
	History(ctx context.Context, symbol model.Symbol, from, to time.Time) (model.PriceSeries, error)
}
