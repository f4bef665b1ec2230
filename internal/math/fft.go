package math

import (
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/mat"
)

// Spectrum holds the real half of the price spectrum,
// sorted by descending amplitude.
type Spectrum struct {
	Values []Harmonic
}

// Harmonic is one spectral component of the series.
type Harmonic struct {
	Amplitude float64
	Frequency int
}

// NewSpectrum computes the spectrum of the detrended series.
// The zero frequency is skipped; it only carries the residual offset.
func NewSpectrum(values []float64) *Spectrum {
	cc := fft.FFTReal(Detrend(values))

	ss := &Spectrum{Values: make([]Harmonic, 0, len(cc)/2)}
	for i, c := range cc {
		if i == 0 || i > len(cc)/2 {
			continue
		}
		ss.Values = append(ss.Values, Harmonic{
			Amplitude: cmplx.Abs(c),
			Frequency: i,
		})
	}
	sort.Slice(ss.Values, func(i, j int) bool {
		return ss.Values[i].Amplitude > ss.Values[j].Amplitude
	})
	return ss
}

// DominantCycle returns the period length in samples of the strongest harmonic,
// or 0 when the series carries no usable spectrum.
func (s *Spectrum) DominantCycle(n int) int {
	if len(s.Values) == 0 || s.Values[0].Amplitude == 0 {
		return 0
	}
	return n / s.Values[0].Frequency
}

// Detrend removes the least-squares line from the series.
func Detrend(values []float64) []float64 {
	n := len(values)
	if n < 2 {
		return values
	}
	a := mat.NewDense(n, 2, nil)
	b := mat.NewDense(n, 1, nil)
	for i, v := range values {
		a.Set(i, 0, 1)
		a.Set(i, 1, float64(i))
		b.Set(i, 0, v)
	}
	c := mat.NewDense(2, 1, nil)
	qr := new(mat.QR)
	qr.Factorize(a)
	if err := qr.SolveTo(c, false, b); err != nil {
		return values
	}
	out := make([]float64, n)
	for i, v := range values {
		out[i] = v - c.At(0, 0) - c.At(1, 0)*float64(i)
	}
	return out
}
