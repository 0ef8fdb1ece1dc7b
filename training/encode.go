// Package training builds the encoded feature matrix and fits the two
// regression models on it.
package training

import (
	"gonum.org/v1/gonum/mat"

	"github.com/housight/housight/dataset"
	"github.com/housight/housight/pkg/errors"
	"github.com/housight/housight/preprocessing"
)

// EncodedMatrix is the model-ready view of a table: the numeric feature
// columns side by side with the one-hot proximity indicators, target held
// separately. Built once and only read afterwards.
type EncodedMatrix struct {
	X            *mat.Dense
	Y            *mat.VecDense
	FeatureNames []string
}

// BuildEncodedMatrix encodes an engineered table. The proximity column
// expands into one indicator column per category in canonical order.
func BuildEncodedMatrix(t *dataset.Table) (*EncodedMatrix, error) {
	if t.NumRows() == 0 {
		return nil, errors.NewModelError("training.BuildEncodedMatrix", "empty table", errors.ErrEmptyData)
	}
	if !t.Engineered() {
		return nil, errors.NewValueError("training.BuildEncodedMatrix", "table must be feature-engineered first")
	}

	numeric, err := t.FeatureMatrix()
	if err != nil {
		return nil, err
	}

	encoder := preprocessing.NewOneHotEncoder()
	if err := encoder.Fit(dataset.ProximityNames()); err != nil {
		return nil, err
	}
	indicators, err := encoder.Transform(t.ProximityValues())
	if err != nil {
		return nil, err
	}

	rows, numericCols := numeric.Dims()
	_, indicatorCols := indicators.Dims()

	X := mat.NewDense(rows, numericCols+indicatorCols, nil)
	X.Slice(0, rows, 0, numericCols).(*mat.Dense).Copy(numeric)
	X.Slice(0, rows, numericCols, numericCols+indicatorCols).(*mat.Dense).Copy(indicators)

	y, err := t.TargetVector()
	if err != nil {
		return nil, err
	}

	names := append(t.FeatureColumns(), encoder.FeatureNames("ocean_proximity")...)

	return &EncodedMatrix{X: X, Y: y, FeatureNames: names}, nil
}

// Subset returns copies of the rows of X and Y selected by indices.
func (m *EncodedMatrix) Subset(indices []int) (*mat.Dense, *mat.VecDense) {
	_, cols := m.X.Dims()
	X := mat.NewDense(len(indices), cols, nil)
	y := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		for j := 0; j < cols; j++ {
			X.Set(i, j, m.X.At(idx, j))
		}
		y.SetVec(i, m.Y.AtVec(idx))
	}
	return X, y
}
