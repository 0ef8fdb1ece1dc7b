package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/housight/housight/core/model"
	"github.com/housight/housight/pkg/errors"
)

// OneHotEncoder expands a categorical column into one indicator column per
// category. The category set is fixed at Fit time; Transform rejects any
// value outside it rather than silently widening the schema.
type OneHotEncoder struct {
	model.BaseEstimator

	// Categories holds the category values in output column order.
	Categories []string

	index map[string]int
}

// NewOneHotEncoder creates an unfitted OneHotEncoder.
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit fixes the category set. Column order follows the given slice.
func (e *OneHotEncoder) Fit(categories []string) error {
	if len(categories) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty category set", errors.ErrEmptyData)
	}

	index := make(map[string]int, len(categories))
	for i, c := range categories {
		if _, dup := index[c]; dup {
			return errors.NewValidationError("categories", "duplicate category", c)
		}
		index[c] = i
	}

	e.Categories = append([]string(nil), categories...)
	e.index = index
	e.SetFitted()
	return nil
}

// Transform encodes values into an indicator matrix with one row per value
// and one column per category. Exactly one cell per row is 1.
func (e *OneHotEncoder) Transform(values []string) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if len(values) == 0 {
		return nil, errors.NewModelError("OneHotEncoder.Transform", "empty input", errors.ErrEmptyData)
	}

	out := mat.NewDense(len(values), len(e.Categories), nil)
	for i, v := range values {
		j, ok := e.index[v]
		if !ok {
			return nil, errors.NewUnknownCategoryError("OneHotEncoder.Transform", v, e.Categories, i)
		}
		out.Set(i, j, 1)
	}
	return out, nil
}

// FeatureNames returns one name per indicator column, prefix + "_" + category.
func (e *OneHotEncoder) FeatureNames(prefix string) []string {
	names := make([]string, len(e.Categories))
	for i, c := range e.Categories {
		names[i] = prefix + "_" + c
	}
	return names
}
