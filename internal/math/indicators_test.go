package math

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {

	type test struct {
		input  []float64
		n      int
		index  int
		output float64
	}

	tests := map[string]test{
		"warm": {
			input:  []float64{1, 2, 3, 4, 5},
			n:      3,
			index:  2,
			output: 2,
		},
		"rolling": {
			input:  []float64{1, 2, 3, 4, 5},
			n:      3,
			index:  4,
			output: 4,
		},
		"constant": {
			input:  constant(60, 100),
			n:      20,
			index:  59,
			output: 100,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out := SMA(tt.input, tt.n)
			assert.Equal(t, len(tt.input), len(out))
			for i := 0; i < tt.n-1; i++ {
				assert.False(t, IsDefined(out[i]))
			}
			assert.InDelta(t, tt.output, out[tt.index], 1e-9)
		})
	}
}

func TestEMA(t *testing.T) {
	values := constant(40, 100)
	out := EMA(values, 10)
	for i := 0; i < 9; i++ {
		assert.False(t, IsDefined(out[i]))
	}
	for i := 9; i < len(out); i++ {
		assert.InDelta(t, 100.0, out[i], 1e-9)
	}
}

func TestEMA_SkipsUndefinedPrefix(t *testing.T) {
	values := undefined(5)
	values = append(values, constant(10, 50)...)
	out := EMA(values, 3)
	assert.False(t, IsDefined(out[6]))
	require.True(t, IsDefined(out[7]))
	assert.InDelta(t, 50.0, out[7], 1e-9)
}

func TestRSI_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	values := make([]float64, 200)
	price := 100.0
	for i := range values {
		price *= 1 + (rng.Float64()-0.5)*0.04
		values[i] = price
	}
	out := RSI(values, 14)
	defined := 0
	for _, v := range out {
		if IsDefined(v) {
			defined++
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}
	assert.Equal(t, len(values)-14, defined)
}

func TestRSI_FlatSeriesUndefined(t *testing.T) {
	out := RSI(constant(100, 42), 14)
	for _, v := range out {
		assert.False(t, IsDefined(v))
	}
}

func TestRSI_OnlyGains(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = float64(i + 1)
	}
	out := RSI(values, 14)
	assert.Equal(t, 100.0, out[len(out)-1])
}

func TestMACD_Identity(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	values := make([]float64, 120)
	price := 50.0
	for i := range values {
		price *= 1 + (rng.Float64()-0.5)*0.02
		values[i] = price
	}

	line, sig := MACD(values, 12, 26, 9)
	emaFast := EMA(values, 12)
	emaSlow := EMA(values, 26)
	emaLine := EMA(line, 9)

	for i := range values {
		if IsDefined(line[i]) {
			assert.InDelta(t, emaFast[i]-emaSlow[i], line[i], 1e-9)
		}
		if IsDefined(sig[i]) {
			assert.InDelta(t, emaLine[i], sig[i], 1e-9)
		}
	}
	// line warms up with the slow window, signal 9 periods later
	assert.False(t, IsDefined(line[24]))
	assert.True(t, IsDefined(line[25]))
	assert.False(t, IsDefined(sig[32]))
	assert.True(t, IsDefined(sig[33]))
}

func TestBollinger_Ordering(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	values := make([]float64, 100)
	for i := range values {
		values[i] = 100 + rng.NormFloat64()*5
	}
	high, mid, low := Bollinger(values, 20, 2)
	for i := range values {
		if !IsDefined(mid[i]) {
			assert.False(t, IsDefined(high[i]))
			assert.False(t, IsDefined(low[i]))
			continue
		}
		assert.GreaterOrEqual(t, high[i], mid[i])
		assert.GreaterOrEqual(t, mid[i], low[i])
	}
}

func TestRollingStdDev_Constant(t *testing.T) {
	out := RollingStdDev(constant(30, 100), 10)
	for i := 9; i < len(out); i++ {
		assert.InDelta(t, 0.0, out[i], 1e-9)
	}
}

func TestReturns(t *testing.T) {
	out := Returns([]float64{100, 110, 99})
	assert.False(t, IsDefined(out[0]))
	assert.InDelta(t, 0.1, out[1], 1e-9)
	assert.InDelta(t, -0.1, out[2], 1e-9)
}

func TestLag(t *testing.T) {
	out := Lag([]float64{1, 2, 3, 4, 5}, 2)
	assert.False(t, IsDefined(out[0]))
	assert.False(t, IsDefined(out[1]))
	assert.Equal(t, []float64{1, 2, 3}, out[2:])
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.56", Format(1.5555))
	assert.Equal(t, "-1.00", Format(-1))
	assert.Equal(t, "0.00", Format(0))
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
