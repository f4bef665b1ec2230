package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/finbell/stockcast/internal/math/ml"
)

const dateFormat = "2006-01-02"

// Config drives one pipeline run.
type Config struct {
	Symbol   string `json:"symbol" validate:"required"`
	Start    string `json:"start" validate:"required,datetime=2006-01-02"`
	End      string `json:"end" validate:"required,datetime=2006-01-02"`
	Provider string `json:"provider" default:"yahoo" validate:"oneof=yahoo binance"`

	Seed          int64          `json:"seed" default:"123"`
	TrainFraction float64        `json:"train_fraction" default:"0.8" validate:"gt=0,lt=1"`
	Boost         ml.BoostConfig `json:"boost"`
	BaselineTrees int            `json:"baseline_trees" default:"100" validate:"gt=0"`

	Cache struct {
		Enabled bool   `json:"enabled"`
		Path    string `json:"path" default:"file-storage/candles.db"`
	} `json:"cache"`

	Output struct {
		ChartPath string `json:"chart_path" default:"forecast.png"`
		ReportDir string `json:"report_dir" default:"file-storage/reports"`
	} `json:"output"`

	Log struct {
		Level string `json:"level" default:"info" validate:"oneof=trace debug info warn error"`
	} `json:"log"`
}

// Load reads, defaults and validates the config at the given path.
func Load(path string) (Config, error) {
	var cfg Config

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not load config '%s': %w", path, err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("could not unmarshal config '%s': %w", path, err)
	}
	if err := defaults.Set(&cfg); err != nil {
		return cfg, fmt.Errorf("could not apply config defaults: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	if !cfg.StartTime().Before(cfg.EndTime()) {
		return cfg, fmt.Errorf("invalid config '%s': start %s is not before end %s", path, cfg.Start, cfg.End)
	}

	log.Info().Str("path", path).Str("symbol", cfg.Symbol).Msg("loaded config")
	return cfg, nil
}

// MustLoad loads the config, panicking on any error.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// StartTime returns the parsed start date.
// Only valid after a successful Load.
func (c Config) StartTime() time.Time {
	t, _ := time.Parse(dateFormat, c.Start)
	return t
}

// EndTime returns the parsed end date.
func (c Config) EndTime() time.Time {
	t, _ := time.Parse(dateFormat, c.End)
	return t
}
