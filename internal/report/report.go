package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	stockmath "github.com/finbell/stockcast/internal/math"
	"github.com/finbell/stockcast/internal/model"
)

// Metrics are the scalar errors of one evaluation.
type Metrics struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
}

// Evaluate scores the predictions against the actual prices.
func Evaluate(predictions []model.Prediction) Metrics {
	if len(predictions) == 0 {
		return Metrics{}
	}
	squared := make([]float64, len(predictions))
	absolute := make([]float64, len(predictions))
	for i, p := range predictions {
		d := p.Actual - p.Predicted
		squared[i] = d * d
		absolute[i] = math.Abs(d)
	}
	mse := stat.Mean(squared, nil)
	return Metrics{
		MSE:  mse,
		RMSE: math.Sqrt(mse),
		MAE:  stat.Mean(absolute, nil),
	}
}

// Print writes the metric lines in reporting precision.
func (m Metrics) Print(w io.Writer) {
	fmt.Fprintf(w, "Mean Squared Error (MSE): %s\n", stockmath.Format(m.MSE))
	fmt.Fprintf(w, "Root Mean Squared Error (RMSE): %s\n", stockmath.Format(m.RMSE))
	fmt.Fprintf(w, "Mean Absolute Error (MAE): %s\n", stockmath.Format(m.MAE))
}

// ByDate returns the predictions sorted over the date axis,
// undoing the shuffle of the random split for plotting.
func ByDate(predictions []model.Prediction) []model.Prediction {
	out := make([]model.Prediction, len(predictions))
	copy(out, predictions)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
