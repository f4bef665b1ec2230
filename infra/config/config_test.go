package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forecast.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := write(t, `{"symbol":"AAPL","start":"2015-01-01","end":"2023-01-01"}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.Provider)
	assert.Equal(t, int64(123), cfg.Seed)
	assert.Equal(t, 0.8, cfg.TrainFraction)
	assert.Equal(t, 150, cfg.Boost.Rounds)
	assert.Equal(t, 0.1, cfg.Boost.LearningRate)
	assert.Equal(t, 6, cfg.Boost.MaxDepth)
	assert.Equal(t, 10, cfg.Boost.EvalEvery)
	assert.True(t, cfg.StartTime().Before(cfg.EndTime()))
}

func TestLoad_Invalid(t *testing.T) {

	tests := map[string]string{
		"missing symbol":   `{"start":"2015-01-01","end":"2023-01-01"}`,
		"bad date":         `{"symbol":"AAPL","start":"01/01/2015","end":"2023-01-01"}`,
		"reversed range":   `{"symbol":"AAPL","start":"2023-01-01","end":"2015-01-01"}`,
		"unknown provider": `{"symbol":"AAPL","start":"2015-01-01","end":"2023-01-01","provider":"bloomberg"}`,
		"bad fraction":     `{"symbol":"AAPL","start":"2015-01-01","end":"2023-01-01","train_fraction":1.2}`,
		"not json":         `symbol = AAPL`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(write(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "nope.json"))
	})
}
