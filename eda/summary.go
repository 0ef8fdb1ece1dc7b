// Package eda computes descriptive statistics over the housing table and
// renders the exploratory figures.
package eda

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/housight/housight/dataset"
	"github.com/housight/housight/pkg/errors"
)

// ProximityMean is the mean house value of one proximity category.
type ProximityMean struct {
	Proximity dataset.Proximity
	MeanValue float64
	Count     int
}

// Correlation names a column and its Pearson correlation with the target.
type Correlation struct {
	Column string
	Value  float64
}

// CorrelationMatrix is the pairwise Pearson correlation of the numeric
// columns, in Columns order.
type CorrelationMatrix struct {
	Columns []string
	m       *mat.SymDense
}

// At returns the correlation between columns i and j.
func (c *CorrelationMatrix) At(i, j int) float64 {
	return c.m.At(i, j)
}

// Dim returns the number of columns.
func (c *CorrelationMatrix) Dim() int {
	return len(c.Columns)
}

// Summary holds the exploratory statistics of a table.
type Summary struct {
	MeanValue   float64
	MedianValue float64

	// ValueByProximity is sorted by mean value, descending.
	ValueByProximity []ProximityMean

	Correlations *CorrelationMatrix

	// TopCorrelated is the non-target column with the largest-magnitude
	// correlation to the target.
	TopCorrelated Correlation
}

// Summarize computes the Summary of an engineered table. The correlation
// matrix spans all numeric columns, derived ones included, so the table
// must already have been through feature engineering.
func Summarize(t *dataset.Table) (*Summary, error) {
	if t.NumRows() == 0 {
		return nil, errors.NewModelError("eda.Summarize", "empty table", errors.ErrEmptyData)
	}
	if !t.Engineered() {
		return nil, errors.NewValueError("eda.Summarize", "table must be feature-engineered first")
	}

	values, err := t.Column(dataset.ColMedianHouseValue)
	if err != nil {
		return nil, err
	}

	sortedValues := make([]float64, len(values))
	copy(sortedValues, values)
	sort.Float64s(sortedValues)

	s := &Summary{
		MeanValue:   stat.Mean(values, nil),
		MedianValue: stat.Quantile(0.5, stat.Empirical, sortedValues, nil),
	}

	s.ValueByProximity = valueByProximity(t)

	corr, err := correlationMatrix(t)
	if err != nil {
		return nil, err
	}
	s.Correlations = corr

	top, err := topCorrelated(corr)
	if err != nil {
		return nil, err
	}
	s.TopCorrelated = top

	return s, nil
}

func valueByProximity(t *dataset.Table) []ProximityMean {
	sums := map[dataset.Proximity]float64{}
	counts := map[dataset.Proximity]int{}
	for _, r := range t.Records() {
		sums[r.OceanProximity] += r.MedianHouseValue
		counts[r.OceanProximity]++
	}

	means := make([]ProximityMean, 0, len(sums))
	for _, p := range dataset.Proximities() {
		if counts[p] == 0 {
			continue
		}
		means = append(means, ProximityMean{
			Proximity: p,
			MeanValue: sums[p] / float64(counts[p]),
			Count:     counts[p],
		})
	}

	sort.Slice(means, func(i, j int) bool {
		return means[i].MeanValue > means[j].MeanValue
	})
	return means
}

func correlationMatrix(t *dataset.Table) (*CorrelationMatrix, error) {
	m, err := t.NumericMatrix()
	if err != nil {
		return nil, err
	}

	cols := t.Columns()
	sym := mat.NewSymDense(len(cols), nil)
	stat.CorrelationMatrix(sym, m, nil)

	return &CorrelationMatrix{Columns: cols, m: sym}, nil
}

func topCorrelated(c *CorrelationMatrix) (Correlation, error) {
	targetIdx := -1
	for i, name := range c.Columns {
		if name == dataset.ColMedianHouseValue {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return Correlation{}, errors.NewValueError("eda.topCorrelated", "target column missing from correlation matrix")
	}

	best := Correlation{}
	bestAbs := -1.0
	for i, name := range c.Columns {
		if i == targetIdx {
			continue
		}
		v := c.At(i, targetIdx)
		if math.IsNaN(v) {
			continue
		}
		if math.Abs(v) > bestAbs {
			bestAbs = math.Abs(v)
			best = Correlation{Column: name, Value: v}
		}
	}
	if bestAbs < 0 {
		return Correlation{}, errors.NewValueError("eda.topCorrelated", "no usable correlations with the target")
	}
	return best, nil
}
