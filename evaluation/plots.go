package evaluation

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/housight/housight/pkg/errors"
)

// Figure file names, relative to the output directory.
const (
	FigRMSEComparison     = "rmse_comparison.png"
	FigR2Comparison       = "r2_comparison.png"
	FigPredictedVsActual  = "predicted_vs_actual.png"
	FigFeatureImportances = "feature_importances.png"
)

var modelColors = []color.RGBA{
	{R: 70, G: 130, B: 180, A: 255},
	{R: 205, G: 92, B: 92, A: 255},
	{R: 60, G: 179, B: 113, A: 255},
}

// RenderPlots writes the four evaluation figures into dir and returns the
// paths in render order. importances are the forest's top features,
// already sorted descending.
func RenderPlots(results map[string]*ModelResult, yTrue *mat.VecDense, importances []FeatureImportance, dir string) ([]string, error) {
	if len(results) == 0 {
		return nil, errors.NewModelError("evaluation.RenderPlots", "no model results", errors.ErrEmptyData)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "evaluation.RenderPlots: create output dir")
	}

	names := SortedNames(results)

	var paths []string
	render := func(name string, fn func(path string) error) error {
		path := filepath.Join(dir, name)
		if err := fn(path); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	}

	if err := render(FigRMSEComparison, func(path string) error {
		vals := make([]float64, len(names))
		for i, n := range names {
			vals[i] = results[n].RMSE
		}
		return renderMetricBars("RMSE by Model", "RMSE", names, vals, path)
	}); err != nil {
		return nil, err
	}
	if err := render(FigR2Comparison, func(path string) error {
		vals := make([]float64, len(names))
		for i, n := range names {
			vals[i] = results[n].R2
		}
		return renderMetricBars("R² by Model", "R²", names, vals, path)
	}); err != nil {
		return nil, err
	}
	if err := render(FigPredictedVsActual, func(path string) error {
		return renderPredictedVsActual(results, names, yTrue, path)
	}); err != nil {
		return nil, err
	}
	if err := render(FigFeatureImportances, func(path string) error {
		return renderImportances(importances, path)
	}); err != nil {
		return nil, err
	}

	return paths, nil
}

func renderMetricBars(title, ylabel string, names []string, vals []float64, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel

	bars, err := plotter.NewBarChart(plotter.Values(vals), vg.Points(40))
	if err != nil {
		return errors.Wrap(err, "evaluation: metric bars")
	}
	bars.Color = modelColors[0]
	p.Add(bars)
	p.NominalX(names...)

	return errors.Wrap(p.Save(6*vg.Inch, 4*vg.Inch, path), "evaluation: save "+path)
}

func renderPredictedVsActual(results map[string]*ModelResult, names []string, yTrue *mat.VecDense, path string) error {
	p := plot.New()
	p.Title.Text = "Predicted vs Actual"
	p.X.Label.Text = "actual value"
	p.Y.Label.Text = "predicted value"

	lo, hi := yTrue.AtVec(0), yTrue.AtVec(0)
	for i := 0; i < yTrue.Len(); i++ {
		v := yTrue.AtVec(i)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	for k, name := range names {
		res := results[name]
		xys := make(plotter.XYs, yTrue.Len())
		for i := 0; i < yTrue.Len(); i++ {
			xys[i].X = yTrue.AtVec(i)
			xys[i].Y = res.Predictions.AtVec(i)
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return errors.Wrap(err, "evaluation: prediction scatter")
		}
		sc.GlyphStyle.Color = modelColors[k%len(modelColors)]
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
		p.Legend.Add(name, sc)
	}

	// Diagonal reference: a perfect model sits on this line.
	diag, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return errors.Wrap(err, "evaluation: reference line")
	}
	diag.LineStyle.Color = color.Gray{Y: 100}
	diag.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(diag)

	p.Legend.Top = true
	p.Legend.Left = true

	return errors.Wrap(p.Save(6*vg.Inch, 6*vg.Inch, path), "evaluation: save "+path)
}

func renderImportances(importances []FeatureImportance, path string) error {
	if len(importances) == 0 {
		return errors.NewModelError("evaluation.renderImportances", "no importances", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = "Top Feature Importances"
	p.X.Label.Text = "normalized importance"

	// Reverse so the most important feature renders at the top.
	vals := make(plotter.Values, len(importances))
	labels := make([]string, len(importances))
	for i, imp := range importances {
		j := len(importances) - 1 - i
		vals[j] = imp.Weight
		labels[j] = imp.Name
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(12))
	if err != nil {
		return errors.Wrap(err, "evaluation: importance bars")
	}
	bars.Horizontal = true
	bars.Color = modelColors[2]
	p.Add(bars)
	p.NominalY(labels...)

	return errors.Wrap(p.Save(6*vg.Inch, 5*vg.Inch, path), "evaluation: save "+path)
}
