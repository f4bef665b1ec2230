package ml

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Partition(t *testing.T) {
	n := 1000
	rng := rand.New(rand.NewSource(123))
	train, test := Split(rng, n, 0.8)

	assert.Equal(t, n, len(train)+len(test))

	seen := make(map[int]bool, n)
	for _, i := range append(append([]int{}, train...), test...) {
		assert.False(t, seen[i], "row assigned twice")
		seen[i] = true
	}
	assert.Len(t, seen, n)

	// expected proportion within sampling noise
	fraction := float64(len(train)) / float64(n)
	assert.InDelta(t, 0.8, fraction, 0.05)
}

func TestSplit_Deterministic(t *testing.T) {
	a1, b1 := Split(rand.New(rand.NewSource(123)), 500, 0.8)
	a2, b2 := Split(rand.New(rand.NewSource(123)), 500, 0.8)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)

	a3, _ := Split(rand.New(rand.NewSource(321)), 500, 0.8)
	assert.NotEqual(t, a1, a3)
}

func TestNewDataset(t *testing.T) {

	type test struct {
		x   [][]float64
		y   []float64
		err bool
	}

	tests := map[string]test{
		"aligned": {
			x: [][]float64{{1, 2}, {3, 4}},
			y: []float64{1, 2},
		},
		"misaligned": {
			x:   [][]float64{{1, 2}},
			y:   []float64{1, 2},
			err: true,
		},
		"ragged": {
			x:   [][]float64{{1, 2}, {3}},
			y:   []float64{1, 2},
			err: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := NewDataset(tt.x, tt.y)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.y), d.Len())
			assert.Equal(t, len(tt.x[0]), d.Dim())
		})
	}
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := sample(rng, 100, 80)
	assert.Len(t, out, 80)
	seen := make(map[int]bool)
	for _, i := range out {
		assert.False(t, seen[i])
		seen[i] = true
		assert.Less(t, i, 100)
	}

	all := sample(rng, 10, 20)
	assert.Len(t, all, 10)
}
