package ml

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog/log"
)

// BoostConfig holds the hyperparameters of a gradient-boosted regression fit.
type BoostConfig struct {
	Rounds       int     `json:"rounds" default:"150" validate:"gt=0"`
	LearningRate float64 `json:"learning_rate" default:"0.1" validate:"gt=0,lte=1"`
	MaxDepth     int     `json:"max_depth" default:"6" validate:"gt=0"`
	Subsample    float64 `json:"subsample" default:"0.8" validate:"gt=0,lte=1"`
	ColSample    float64 `json:"col_sample" default:"0.8" validate:"gt=0,lte=1"`
	MinLeaf      int     `json:"min_leaf" default:"1" validate:"gte=1"`
	EvalEvery    int     `json:"eval_every" default:"10" validate:"gte=0"`
}

// Booster is a gradient-boosted ensemble of regression trees
// fit against the squared-error objective.
type Booster struct {
	cfg   BoostConfig
	base  float64
	trees []*Tree
}

// NewBooster creates an unfitted booster.
func NewBooster(cfg BoostConfig) *Booster {
	return &Booster{
		cfg:   cfg,
		trees: make([]*Tree, 0, cfg.Rounds),
	}
}

// Fit trains the ensemble on train, tracking the loss on eval as well.
// Each round fits one tree to the current residuals on a row and column
// subsample drawn from the given generator. The loss on both sets is logged
// every EvalEvery rounds; monitoring only, there is no early stopping.
func (b *Booster) Fit(rng *rand.Rand, train, eval Dataset) error {
	if train.Len() == 0 {
		return fmt.Errorf("empty training set")
	}

	b.base = 0.0
	for _, v := range train.Y {
		b.base += v
	}
	b.base /= float64(train.Len())

	trainPred := fill(train.Len(), b.base)
	evalPred := fill(eval.Len(), b.base)

	residual := make([]float64, train.Len())
	rowSample := int(math.Max(1, math.Floor(float64(train.Len())*b.cfg.Subsample)))
	colSample := int(math.Max(1, math.Floor(float64(train.Dim())*b.cfg.ColSample)))

	for round := 1; round <= b.cfg.Rounds; round++ {
		for i := range residual {
			residual[i] = train.Y[i] - trainPred[i]
		}

		rows := sample(rng, train.Len(), rowSample)
		cols := sample(rng, train.Dim(), colSample)

		tree := NewTree(b.cfg.MaxDepth, b.cfg.MinLeaf)
		tree.Fit(train.X, residual, rows, cols)
		b.trees = append(b.trees, tree)

		for i, x := range train.X {
			trainPred[i] += b.cfg.LearningRate * tree.Predict(x)
		}
		for i, x := range eval.X {
			evalPred[i] += b.cfg.LearningRate * tree.Predict(x)
		}

		if b.cfg.EvalEvery > 0 && round%b.cfg.EvalEvery == 0 {
			log.Info().
				Int("round", round).
				Float64("train_rmse", rmse(train.Y, trainPred)).
				Float64("eval_rmse", rmse(eval.Y, evalPred)).
				Msg("boosting round")
		}
	}
	return nil
}

// Predict returns the ensemble output for one feature vector.
func (b *Booster) Predict(features []float64) float64 {
	out := b.base
	for _, tree := range b.trees {
		out += b.cfg.LearningRate * tree.Predict(features)
	}
	return out
}

// PredictAll returns the ensemble output for every row of the matrix.
func (b *Booster) PredictAll(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, features := range x {
		out[i] = b.Predict(features)
	}
	return out
}

// Rounds returns the number of fitted trees.
func (b *Booster) Rounds() int {
	return len(b.trees)
}

func rmse(y, pred []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sum := 0.0
	for i := range y {
		d := y[i] - pred[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(y)))
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
