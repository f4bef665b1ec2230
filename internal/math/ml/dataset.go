package ml

import (
	"fmt"
	"math/rand"
)

// Dataset carries the feature matrix and the target vector of one fit.
type Dataset struct {
	X [][]float64
	Y []float64
}

// NewDataset builds a dataset, checking the matrix is rectangular and aligned.
func NewDataset(x [][]float64, y []float64) (Dataset, error) {
	if len(x) != len(y) {
		return Dataset{}, fmt.Errorf("inconsistent dataset size %d vs %d", len(x), len(y))
	}
	var dim int
	for i, row := range x {
		if i == 0 {
			dim = len(row)
			continue
		}
		if len(row) != dim {
			return Dataset{}, fmt.Errorf("inconsistent feature dimensions %d vs %d at row %d", len(row), dim, i)
		}
	}
	return Dataset{X: x, Y: y}, nil
}

// Len returns the number of observations.
func (d Dataset) Len() int {
	return len(d.Y)
}

// Dim returns the number of features.
func (d Dataset) Dim() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// Select returns the sub-dataset at the given row indices.
func (d Dataset) Select(index []int) Dataset {
	x := make([][]float64, len(index))
	y := make([]float64, len(index))
	for i, j := range index {
		x[i] = d.X[j]
		y[i] = d.Y[j]
	}
	return Dataset{X: x, Y: y}
}

// Split assigns each of n rows independently to the train set
// with the given probability. The draw comes from the provided generator,
// so a fixed seed reproduces the same partition.
// Note this is not a chronological holdout: rows mix across time.
func Split(rng *rand.Rand, n int, trainFraction float64) (train, test []int) {
	train = make([]int, 0, int(float64(n)*trainFraction)+1)
	test = make([]int, 0, n)
	for i := 0; i < n; i++ {
		if rng.Float64() < trainFraction {
			train = append(train, i)
		} else {
			test = append(test, i)
		}
	}
	return train, test
}

// sample draws k distinct indices out of n.
func sample(rng *rand.Rand, n, k int) []int {
	if k >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	perm := rng.Perm(n)
	return perm[:k]
}
