package math

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// The indicator kit operates on plain price slices.
// Each function returns a slice aligned to its input,
// with Undefined() wherever the lookback window is not yet full.

// SMA returns the n-period simple moving average.
func SMA(values []float64, n int) []float64 {
	out := undefined(len(values))
	if n <= 0 {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= n {
			sum -= values[i-n]
		}
		if i >= n-1 {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// EMA returns the n-period exponential moving average,
// seeded with the simple average of the first full window.
// A leading undefined prefix in the input is skipped,
// so the indicator can be chained (e.g. the MACD signal line).
func EMA(values []float64, n int) []float64 {
	out := undefined(len(values))
	if n <= 0 {
		return out
	}
	start := firstDefined(values)
	if start < 0 || len(values)-start < n {
		return out
	}
	seed := 0.0
	for i := start; i < start+n; i++ {
		seed += values[i]
	}
	ema := seed / float64(n)
	out[start+n-1] = ema
	k := 2.0 / float64(n+1)
	for i := start + n; i < len(values); i++ {
		ema = values[i]*k + ema*(1-k)
		out[i] = ema
	}
	return out
}

// RSI returns the n-period relative strength index with Wilder smoothing.
// Values lie in [0,100]. A window with no movement at all has no
// meaningful relative strength and stays undefined.
func RSI(values []float64, n int) []float64 {
	out := undefined(len(values))
	if n <= 0 || len(values) <= n {
		return out
	}
	var gain, loss float64
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		up, down := 0.0, 0.0
		if d > 0 {
			up = d
		} else {
			down = -d
		}
		if i <= n {
			gain += up
			loss += down
			if i < n {
				continue
			}
			gain /= float64(n)
			loss /= float64(n)
		} else {
			gain = (gain*float64(n-1) + up) / float64(n)
			loss = (loss*float64(n-1) + down) / float64(n)
		}
		if gain == 0 && loss == 0 {
			continue
		}
		if loss == 0 {
			out[i] = 100.0
			continue
		}
		rs := gain / loss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out
}

// RollingStdDev returns the n-period population standard deviation.
func RollingStdDev(values []float64, n int) []float64 {
	out := undefined(len(values))
	if n <= 1 {
		return out
	}
	window := make([]float64, n)
	for i := n - 1; i < len(values); i++ {
		copy(window, values[i-n+1:i+1])
		mean := stat.Mean(window, nil)
		variance := 0.0
		for _, v := range window {
			variance += (v - mean) * (v - mean)
		}
		out[i] = math.Sqrt(variance / float64(n))
	}
	return out
}

// Returns computes the discrete return between consecutive values.
func Returns(values []float64) []float64 {
	out := undefined(len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		out[i] = (values[i] - values[i-1]) / values[i-1]
	}
	return out
}

// MACD returns the moving average convergence divergence line and its signal.
// The line is EMA(fast) - EMA(slow) of the input,
// the signal is EMA(signal) of the line.
func MACD(values []float64, fast, slow, signal int) (line, sig []float64) {
	emaFast := EMA(values, fast)
	emaSlow := EMA(values, slow)
	line = undefined(len(values))
	for i := range values {
		if IsDefined(emaFast[i]) && IsDefined(emaSlow[i]) {
			line[i] = emaFast[i] - emaSlow[i]
		}
	}
	sig = EMA(line, signal)
	return line, sig
}

// Bollinger returns the n-period Bollinger bands at k standard deviations:
// upper, middle (the simple moving average) and lower.
func Bollinger(values []float64, n int, k float64) (high, mid, low []float64) {
	mid = SMA(values, n)
	sd := RollingStdDev(values, n)
	high = undefined(len(values))
	low = undefined(len(values))
	for i := range values {
		if IsDefined(mid[i]) && IsDefined(sd[i]) {
			high[i] = mid[i] + k*sd[i]
			low[i] = mid[i] - k*sd[i]
		}
	}
	return high, mid, low
}

// Lag shifts the series k periods forward, so position i reads the value at i-k.
func Lag(values []float64, k int) []float64 {
	out := undefined(len(values))
	for i := k; i < len(values); i++ {
		out[i] = values[i-k]
	}
	return out
}

func undefined(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func firstDefined(values []float64) int {
	for i, v := range values {
		if IsDefined(v) {
			return i
		}
	}
	return -1
}
