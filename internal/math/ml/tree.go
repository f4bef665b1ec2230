package ml

import (
	"math"
	"sort"
)

// Tree is a depth-limited regression tree with greedy variance-reduction splits.
type Tree struct {
	root     *node
	maxDepth int
	minLeaf  int
}

type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	value     float64
	leaf      bool
}

// NewTree creates an empty tree with the given growth limits.
func NewTree(maxDepth, minLeaf int) *Tree {
	if minLeaf < 1 {
		minLeaf = 1
	}
	return &Tree{
		maxDepth: maxDepth,
		minLeaf:  minLeaf,
	}
}

// Fit grows the tree on the given rows of x against y,
// considering only the given feature columns at each split.
func (t *Tree) Fit(x [][]float64, y []float64, rows, cols []int) {
	t.root = t.grow(x, y, rows, cols, 0)
}

// Predict returns the leaf value for the given feature vector.
func (t *Tree) Predict(features []float64) float64 {
	n := t.root
	for n != nil && !n.leaf {
		if features[n.feature] < n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	if n == nil {
		return 0
	}
	return n.value
}

func (t *Tree) grow(x [][]float64, y []float64, rows, cols []int, depth int) *node {
	if len(rows) == 0 {
		return &node{leaf: true}
	}
	if depth >= t.maxDepth || len(rows) < 2*t.minLeaf {
		return &node{leaf: true, value: mean(y, rows)}
	}

	feature, threshold, ok := t.bestSplit(x, y, rows, cols)
	if !ok {
		return &node{leaf: true, value: mean(y, rows)}
	}

	left := make([]int, 0, len(rows))
	right := make([]int, 0, len(rows))
	for _, r := range rows {
		if x[r][feature] < threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) < t.minLeaf || len(right) < t.minLeaf {
		return &node{leaf: true, value: mean(y, rows)}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      t.grow(x, y, left, cols, depth+1),
		right:     t.grow(x, y, right, cols, depth+1),
	}
}

// bestSplit scans the sampled columns for the split with the largest
// reduction of the sum of squared errors.
func (t *Tree) bestSplit(x [][]float64, y []float64, rows, cols []int) (int, float64, bool) {
	var (
		bestGain      = 0.0
		bestFeature   = -1
		bestThreshold = 0.0
	)

	total := 0.0
	totalSq := 0.0
	for _, r := range rows {
		total += y[r]
		totalSq += y[r] * y[r]
	}
	n := float64(len(rows))
	parentSSE := totalSq - total*total/n

	order := make([]int, len(rows))
	for _, c := range cols {
		copy(order, rows)
		sort.Slice(order, func(i, j int) bool {
			return x[order[i]][c] < x[order[j]][c]
		})

		leftSum, leftSq := 0.0, 0.0
		for i := 0; i < len(order)-1; i++ {
			r := order[i]
			leftSum += y[r]
			leftSq += y[r] * y[r]

			// no split between equal feature values
			if x[order[i+1]][c] == x[r][c] {
				continue
			}
			nl := float64(i + 1)
			nr := n - nl
			if int(nl) < t.minLeaf || int(nr) < t.minLeaf {
				continue
			}
			rightSum := total - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			gain := parentSSE - sse
			if gain > bestGain+1e-12 {
				bestGain = gain
				bestFeature = c
				bestThreshold = (x[r][c] + x[order[i+1]][c]) / 2
			}
		}
	}

	if bestFeature < 0 || math.IsNaN(bestThreshold) {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func mean(y []float64, rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rows {
		sum += y[r]
	}
	return sum / float64(len(rows))
}
