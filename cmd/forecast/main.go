package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/finbell/stockcast/client"
	"github.com/finbell/stockcast/client/binance"
	"github.com/finbell/stockcast/client/yahoo"
	"github.com/finbell/stockcast/infra/config"
	"github.com/finbell/stockcast/internal/forecast"
	jsonstorage "github.com/finbell/stockcast/internal/storage/file/json"
	"github.com/finbell/stockcast/internal/storage/sqlite"
)

func main() {
	configPath := flag.String("config", "infra/config/forecast.json", "path to the run config")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	zerolog.SetGlobalLevel(level(cfg.Log.Level))

	pipeline := forecast.New(cfg, source(cfg)).
		WithStorage(jsonstorage.NewStorage(cfg.Output.ReportDir))

	if cfg.Cache.Enabled {
		cache, err := sqlite.NewCache(cfg.Cache.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("could not open candle cache")
		}
		defer cache.Close()
		pipeline.WithCache(cache)
	}

	result, err := pipeline.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}

	log.Info().
		Str("run", result.Run).
		Int("rows", result.Rows).
		Float64("rmse", result.Metrics.RMSE).
		Msg("pipeline done")
}

func source(cfg config.Config) client.HistorySource {
	switch cfg.Provider {
	case "binance":
		return binance.NewClient()
	default:
		return yahoo.NewClient()
	}
}

func level(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
