package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/finbell/stockcast/internal/model"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches historical daily closes from the Yahoo Finance chart API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new Yahoo Finance client.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL overrides the API host, used for local testing.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

type quoteBlock struct {
	Close []float64 `json:"close"`
}

type adjCloseBlock struct {
	AdjClose []float64 `json:"adjclose"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote    []quoteBlock    `json:"quote"`
		AdjClose []adjCloseBlock `json:"adjclose"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

// History returns the adjusted daily closes for the symbol over [from, to].
// An unknown symbol or an unreachable provider aborts with an error, no retries.
func (c *Client) History(ctx context.Context, symbol model.Symbol, from, to time.Time) (model.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(string(symbol)), url.Values{
		"period1":  {strconv.FormatInt(from.Unix(), 10)},
		"period2":  {strconv.FormatInt(to.Unix(), 10)},
		"interval": {"1d"},
		"events":   {"history"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("could not build request for %s: %w", symbol, err)
	}
	// the chart endpoint rejects requests without a browser-like agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stockcast/1.0)")

	res, err := c.http.Do(req)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("could not reach provider for %s: %w", symbol, err)
	}
	defer res.Body.Close()

	var payload chartResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return model.PriceSeries{}, fmt.Errorf("could not decode response for %s: %w", symbol, err)
	}

	if payload.Chart.Error != nil {
		return model.PriceSeries{}, fmt.Errorf("provider error for %s: %s: %s",
			symbol, payload.Chart.Error.Code, payload.Chart.Error.Description)
	}
	if res.StatusCode != http.StatusOK {
		return model.PriceSeries{}, fmt.Errorf("unexpected status for %s: %d", symbol, res.StatusCode)
	}
	if len(payload.Chart.Result) == 0 {
		return model.PriceSeries{}, fmt.Errorf("no data for %s", symbol)
	}

	result := payload.Chart.Result[0]
	closes := c.closes(result.Indicators.AdjClose, result.Indicators.Quote)
	if len(closes) != len(result.Timestamp) {
		return model.PriceSeries{}, fmt.Errorf("misaligned response for %s: %d timestamps vs %d closes",
			symbol, len(result.Timestamp), len(closes))
	}

	candles := make([]model.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if closes[i] == 0 {
			continue
		}
		candles = append(candles, model.NewCandle(time.Unix(ts, 0).UTC(), closes[i]))
	}

	series, err := model.NewPriceSeries(symbol, candles)
	if err != nil {
		return model.PriceSeries{}, err
	}

	log.Info().
		Str("symbol", string(symbol)).
		Int("candles", series.Len()).
		Time("from", from).
		Time("to", to).
		Msg("fetched history")

	return series, nil
}

// closes prefers the adjusted close and falls back to the raw quote.
func (c *Client) closes(adj []adjCloseBlock, quote []quoteBlock) []float64 {
	if len(adj) > 0 && len(adj[0].AdjClose) > 0 {
		return adj[0].AdjClose
	}
	if len(quote) > 0 {
		return quote[0].Close
	}
	return nil
}
