package forecast

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/finbell/stockcast/client"
	"github.com/finbell/stockcast/infra/config"
	"github.com/finbell/stockcast/internal/features"
	stockmath "github.com/finbell/stockcast/internal/math"
	"github.com/finbell/stockcast/internal/math/ml"
	"github.com/finbell/stockcast/internal/metrics"
	"github.com/finbell/stockcast/internal/model"
	"github.com/finbell/stockcast/internal/report"
	"github.com/finbell/stockcast/internal/storage"
)

// CandleCache is the optional local store for fetched candles.
type CandleCache interface {
	Get(ctx context.Context, symbol model.Symbol, from, to time.Time) (model.PriceSeries, error)
	Put(ctx context.Context, series model.PriceSeries) error
}

// Pipeline runs the forecast end to end: fetch, derive, split, fit, score.
// One forward pass per invocation, no long-lived state.
type Pipeline struct {
	cfg    config.Config
	source client.HistorySource
	store  storage.Persistence
	cache  CandleCache
	out    io.Writer
}

// New creates a pipeline for the given config and market-data source.
func New(cfg config.Config, source client.HistorySource) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		source: source,
		store:  storage.NewVoidStorage(),
		out:    os.Stdout,
	}
}

// WithStorage sets the persistence for the run report.
func (p *Pipeline) WithStorage(store storage.Persistence) *Pipeline {
	p.store = store
	return p
}

// WithCache sets the local candle cache.
func (p *Pipeline) WithCache(cache CandleCache) *Pipeline {
	p.cache = cache
	return p
}

// WithOutput redirects the report output, used in tests.
func (p *Pipeline) WithOutput(out io.Writer) *Pipeline {
	p.out = out
	return p
}

// Result is the persisted outcome of one pipeline run.
type Result struct {
	Run              string             `json:"run"`
	Symbol           model.Symbol       `json:"symbol"`
	Rows             int                `json:"rows"`
	TrainRows        int                `json:"train_rows"`
	TestRows         int                `json:"test_rows"`
	Metrics          report.Metrics     `json:"metrics"`
	DirectionHitRate float64            `json:"direction_hit_rate"`
	Predictions      []model.Prediction `json:"predictions"`
}

// Run executes the single forward pass of the pipeline.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	run := uuid.New().String()
	symbol := model.Symbol(p.cfg.Symbol)
	logger := log.With().Str("run", run).Str("symbol", p.cfg.Symbol).Logger()

	series, err := p.history(ctx, symbol)
	if err != nil {
		return Result{}, fmt.Errorf("could not get history: %w", err)
	}
	metrics.Observer.Rows(p.cfg.Symbol, "fetch", series.Len())

	if stray := features.NewTradingCalendar(symbol).Check(series); stray > 0 {
		logger.Warn().Int("stray", stray).Msg("series contains non-trading days")
	}
	if cycle := stockmath.NewSpectrum(series.Prices()).DominantCycle(series.Len()); cycle > 0 {
		logger.Info().Int("days", cycle).Msg("dominant price cycle")
	}

	stop := metrics.Observer.Track(p.cfg.Symbol, "features")
	frame, err := features.Extract(series)
	stop()
	if err != nil {
		return Result{}, fmt.Errorf("could not derive features: %w", err)
	}
	metrics.Observer.Rows(p.cfg.Symbol, "features", frame.Len())
	if frame.Len() == 0 {
		return Result{}, fmt.Errorf("empty dataset for %s after indicator trimming", symbol)
	}

	rng := rand.New(rand.NewSource(p.cfg.Seed))
	trainIndex, testIndex := ml.Split(rng, frame.Len(), p.cfg.TrainFraction)
	if len(trainIndex) == 0 || len(testIndex) == 0 {
		return Result{}, fmt.Errorf("degenerate split for %s: %d train vs %d test rows",
			symbol, len(trainIndex), len(testIndex))
	}
	logger.Info().Int("train", len(trainIndex)).Int("test", len(testIndex)).Msg("split dataset")

	x, y := frame.Matrix()
	full, err := ml.NewDataset(x, y)
	if err != nil {
		return Result{}, fmt.Errorf("could not build dataset: %w", err)
	}
	train := full.Select(trainIndex)
	test := full.Select(testIndex)

	stop = metrics.Observer.Track(p.cfg.Symbol, "train")
	booster := ml.NewBooster(p.cfg.Boost)
	err = booster.Fit(rng, train, test)
	stop()
	if err != nil {
		return Result{}, fmt.Errorf("could not fit model: %w", err)
	}

	stop = metrics.Observer.Track(p.cfg.Symbol, "predict")
	predicted := booster.PredictAll(test.X)
	stop()

	predictions := make([]model.Prediction, len(testIndex))
	for i, j := range testIndex {
		predictions[i] = model.Prediction{
			Date:      frame.Rows[j].Date,
			Actual:    frame.Rows[j].Price,
			Predicted: predicted[i],
		}
	}
	metrics.Observer.Rows(p.cfg.Symbol, "predict", len(predictions))

	result := Result{
		Run:              run,
		Symbol:           symbol,
		Rows:             frame.Len(),
		TrainRows:        len(trainIndex),
		TestRows:         len(testIndex),
		Metrics:          report.Evaluate(predictions),
		DirectionHitRate: p.baseline(logger, frame),
		Predictions:      report.ByDate(predictions),
	}

	if err := p.report(logger, result); err != nil {
		return Result{}, err
	}
	return result, nil
}

// history serves the series from the cache when it covers the range,
// otherwise it fetches from the provider and fills the cache.
func (p *Pipeline) history(ctx context.Context, symbol model.Symbol) (model.PriceSeries, error) {
	from, to := p.cfg.StartTime(), p.cfg.EndTime()

	if p.cache != nil {
		cached, err := p.cache.Get(ctx, symbol, from, to)
		if err != nil {
			log.Warn().Err(err).Msg("could not read candle cache")
		} else if covers(cached, from, to) {
			log.Info().Int("candles", cached.Len()).Msg("serving history from cache")
			return cached, nil
		}
	}

	series, err := p.source.History(ctx, symbol, from, to)
	if err != nil {
		return model.PriceSeries{}, err
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, series); err != nil {
			log.Warn().Err(err).Msg("could not fill candle cache")
		}
	}
	return series, nil
}

// covers accepts a cached series whose ends lie within a week of the range,
// leaving room for non-trading days at the boundaries.
func covers(series model.PriceSeries, from, to time.Time) bool {
	if series.Len() == 0 {
		return false
	}
	const slack = 7 * 24 * time.Hour
	first := series.Candles[0].Time
	last := series.Candles[series.Len()-1].Time
	return first.Before(from.Add(slack)) && last.After(to.Add(-slack))
}

// baseline fits the direction forest on a chronological split and
// returns its hit rate; monitoring only.
func (p *Pipeline) baseline(logger zerolog.Logger, frame model.Frame) float64 {
	if frame.Len() < 20 {
		return 0
	}
	// predict the sign of the next day's return from today's features
	n := frame.Len() - 1
	x := make([][]float64, n)
	next := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = frame.Rows[i].Features()
		next[i] = frame.Rows[i+1].Return
	}
	labels := ml.Labels(next)

	cut := int(float64(n) * p.cfg.TrainFraction)
	direction := ml.NewDirection(p.cfg.BaselineTrees)
	if err := direction.Train(x[:cut], labels[:cut]); err != nil {
		logger.Warn().Err(err).Msg("could not train direction baseline")
		return 0
	}
	hit := direction.HitRate(x[cut:], labels[cut:])
	logger.Info().Float64("hit_rate", hit).Msg("direction baseline")
	return hit
}

// report prints, plots and persists the run outcome.
func (p *Pipeline) report(logger zerolog.Logger, result Result) error {
	result.Metrics.Print(p.out)
	report.Preview(p.out, result.Predictions)

	if err := report.Chart(p.cfg.Output.ChartPath,
		fmt.Sprintf("%s actual vs predicted", result.Symbol), result.Predictions); err != nil {
		return fmt.Errorf("could not render chart: %w", err)
	}
	logger.Info().Str("path", p.cfg.Output.ChartPath).Msg("rendered chart")

	key := storage.Key{Symbol: string(result.Symbol), Run: result.Run, Label: "report"}
	if err := p.store.Store(key, result); err != nil {
		return fmt.Errorf("could not persist report: %w", err)
	}
	return nil
}
