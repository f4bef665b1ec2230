package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/finbell/stockcast/internal/model"
)

// Chart renders actual vs predicted price over the test dates to a png file.
func Chart(path, title string, predictions []model.Prediction) error {
	if len(predictions) == 0 {
		return fmt.Errorf("nothing to plot")
	}
	pp := ByDate(predictions)

	actual := make(plotter.XYs, len(pp))
	predicted := make(plotter.XYs, len(pp))
	for i, p := range pp {
		x := float64(p.Date.Unix())
		actual[i].X, actual[i].Y = x, p.Actual
		predicted[i].X, predicted[i].Y = x, p.Predicted
	}

	plt := plot.New()
	plt.Title.Text = title
	plt.X.Label.Text = "Date"
	plt.Y.Label.Text = "Price"
	plt.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	actualLine, err := plotter.NewLine(actual)
	if err != nil {
		return fmt.Errorf("could not build actual line: %w", err)
	}
	actualLine.Color = color.RGBA{B: 255, A: 255}

	predictedLine, err := plotter.NewLine(predicted)
	if err != nil {
		return fmt.Errorf("could not build predicted line: %w", err)
	}
	predictedLine.Color = color.RGBA{R: 255, A: 255}

	plt.Add(actualLine, predictedLine)
	plt.Legend.Add("actual", actualLine)
	plt.Legend.Add("predicted", predictedLine)
	plt.Legend.Top = true

	if err := plt.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("could not save chart '%s': %w", path, err)
	}
	return nil
}
