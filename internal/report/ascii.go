package report

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/finbell/stockcast/internal/model"
)

const asciiHeight = 12

// Preview prints compact terminal charts of the evaluated series.
func Preview(w io.Writer, predictions []model.Prediction) {
	if len(predictions) == 0 {
		return
	}
	pp := ByDate(predictions)

	actual := make([]float64, len(pp))
	predicted := make([]float64, len(pp))
	for i, p := range pp {
		actual[i] = p.Actual
		predicted[i] = p.Predicted
	}

	fmt.Fprintln(w, asciigraph.Plot(actual,
		asciigraph.Height(asciiHeight),
		asciigraph.Caption("actual price (test rows)")))
	fmt.Fprintln(w)
	fmt.Fprintln(w, asciigraph.Plot(predicted,
		asciigraph.Height(asciiHeight),
		asciigraph.Caption("predicted price (test rows)")))
}
