package ml

import (
	"fmt"

	randomforest "github.com/malaschitz/randomForest"
	"github.com/rs/zerolog/log"
)

// Direction is a random forest baseline classifying the next move as up or down.
// It runs alongside the regression fit as a monitoring signal only.
type Direction struct {
	trees  int
	forest *randomforest.Forest
}

// NewDirection creates a direction baseline with the given forest size.
func NewDirection(trees int) *Direction {
	return &Direction{
		trees: trees,
	}
}

// Labels converts returns to up (1) / down (0) class labels.
func Labels(returns []float64) []int {
	labels := make([]int, len(returns))
	for i, r := range returns {
		if r > 0 {
			labels[i] = 1
		}
	}
	return labels
}

// Train fits the forest on the feature matrix against the class labels.
// A degenerate target with a single class is skipped.
func (d *Direction) Train(x [][]float64, labels []int) error {
	if len(x) != len(labels) {
		return fmt.Errorf("inconsistent baseline dataset %d vs %d", len(x), len(labels))
	}
	classes := make(map[int]int)
	for _, l := range labels {
		classes[l]++
	}
	if len(classes) < 2 {
		log.Warn().Int("classes", len(classes)).Msg("skipping direction baseline on degenerate labels")
		return nil
	}
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: labels}
	forest.Train(d.trees)
	d.forest = forest
	return nil
}

// Predict returns the majority class for the given feature vector,
// or -1 when the forest was never trained.
func (d *Direction) Predict(features []float64) int {
	if d.forest == nil {
		return -1
	}
	votes := d.forest.Vote(features)
	best, label := -1.0, -1
	for i, v := range votes {
		if v > best {
			best, label = v, i
		}
	}
	return label
}

// HitRate scores the baseline on a labelled test set.
func (d *Direction) HitRate(x [][]float64, labels []int) float64 {
	if d.forest == nil || len(x) == 0 {
		return 0
	}
	hits := 0
	for i, features := range x {
		if d.Predict(features) == labels[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(x))
}
