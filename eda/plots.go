package eda

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/housight/housight/dataset"
	"github.com/housight/housight/pkg/errors"
)

// Figure file names, relative to the output directory.
const (
	FigValueDistribution = "value_distribution.png"
	FigGeography         = "geography.png"
	FigIncomeVsValue     = "income_vs_value.png"
	FigValueByProximity  = "value_by_proximity.png"
	FigAgeDistribution   = "age_distribution.png"
	FigCorrelationMatrix = "correlation_matrix.png"
)

var steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// RenderPlots writes the six exploratory figures into dir, creating it if
// needed, and returns the paths in render order.
func RenderPlots(t *dataset.Table, s *Summary, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "eda.RenderPlots: create output dir")
	}

	values, err := t.Column(dataset.ColMedianHouseValue)
	if err != nil {
		return nil, err
	}
	ages, err := t.Column(dataset.ColHousingMedianAge)
	if err != nil {
		return nil, err
	}
	incomes, err := t.Column(dataset.ColMedianIncome)
	if err != nil {
		return nil, err
	}

	var paths []string
	render := func(name string, fn func(path string) error) error {
		path := filepath.Join(dir, name)
		if err := fn(path); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	}

	if err := render(FigValueDistribution, func(path string) error {
		return renderHistogram(values, "Median House Value Distribution", "median house value", path)
	}); err != nil {
		return nil, err
	}
	if err := render(FigGeography, func(path string) error {
		return renderGeography(t, values, path)
	}); err != nil {
		return nil, err
	}
	if err := render(FigIncomeVsValue, func(path string) error {
		return renderIncomeVsValue(incomes, values, path)
	}); err != nil {
		return nil, err
	}
	if err := render(FigValueByProximity, func(path string) error {
		return renderValueByProximity(s, path)
	}); err != nil {
		return nil, err
	}
	if err := render(FigAgeDistribution, func(path string) error {
		return renderHistogram(ages, "Housing Age Distribution", "housing median age", path)
	}); err != nil {
		return nil, err
	}
	if err := render(FigCorrelationMatrix, func(path string) error {
		return renderCorrelationMatrix(s.Correlations, path)
	}); err != nil {
		return nil, err
	}

	return paths, nil
}

func renderHistogram(vals []float64, title, xlabel, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(vals), 30)
	if err != nil {
		return errors.Wrap(err, "eda: histogram")
	}
	h.FillColor = steelBlue
	p.Add(h)

	return errors.Wrap(p.Save(6*vg.Inch, 4*vg.Inch, path), "eda: save "+path)
}

func renderGeography(t *dataset.Table, values []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Geographic Distribution (colored by value)"
	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"

	records := t.Records()
	xys := make(plotter.XYs, len(records))
	for i, r := range records {
		xys[i].X = r.Longitude
		xys[i].Y = r.Latitude
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Wrap(err, "eda: geographic scatter")
	}

	cm := moreland.SmoothBlueRed()
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	cm.SetMin(lo)
	cm.SetMax(hi)

	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		var col color.Color = color.Black
		if c, cerr := cm.At(values[i]); cerr == nil {
			col = c
		}
		return draw.GlyphStyle{Color: col, Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)

	return errors.Wrap(p.Save(6*vg.Inch, 5*vg.Inch, path), "eda: save "+path)
}

func renderIncomeVsValue(incomes, values []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Median Income vs House Value"
	p.X.Label.Text = "median income"
	p.Y.Label.Text = "median house value"

	xys := make(plotter.XYs, len(incomes))
	for i := range incomes {
		xys[i].X = incomes[i]
		xys[i].Y = values[i]
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Wrap(err, "eda: income scatter")
	}
	sc.GlyphStyle.Color = steelBlue
	sc.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(sc)

	return errors.Wrap(p.Save(6*vg.Inch, 4*vg.Inch, path), "eda: save "+path)
}

func renderValueByProximity(s *Summary, path string) error {
	p := plot.New()
	p.Title.Text = "Mean House Value by Ocean Proximity"
	p.Y.Label.Text = "mean house value"

	vals := make(plotter.Values, 0, len(s.ValueByProximity))
	labels := make([]string, 0, len(s.ValueByProximity))
	for _, pm := range s.ValueByProximity {
		vals = append(vals, pm.MeanValue)
		labels = append(labels, string(pm.Proximity))
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(30))
	if err != nil {
		return errors.Wrap(err, "eda: proximity bars")
	}
	bars.Color = steelBlue
	p.Add(bars)
	p.NominalX(labels...)

	return errors.Wrap(p.Save(6*vg.Inch, 4*vg.Inch, path), "eda: save "+path)
}

// corrGrid adapts a CorrelationMatrix to plotter.GridXYZ.
type corrGrid struct {
	c *CorrelationMatrix
}

func (g corrGrid) Dims() (int, int) { n := g.c.Dim(); return n, n }
func (g corrGrid) Z(col, row int) float64 {
	return g.c.At(row, col)
}
func (g corrGrid) X(col int) float64 { return float64(col) }
func (g corrGrid) Y(row int) float64 { return float64(row) }

func renderCorrelationMatrix(c *CorrelationMatrix, path string) error {
	p := plot.New()
	p.Title.Text = "Correlation Matrix"

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	hm := plotter.NewHeatMap(corrGrid{c: c}, cm.Palette(255))
	hm.Min = -1
	hm.Max = 1
	p.Add(hm)

	p.NominalX(c.Columns...)
	p.NominalY(c.Columns...)

	return errors.Wrap(p.Save(8*vg.Inch, 7*vg.Inch, path), "eda: save "+path)
}
