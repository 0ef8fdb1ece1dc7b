// Package ensemble implements a bootstrap-aggregated regression forest.
package ensemble

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/housight/housight/core/model"
	"github.com/housight/housight/core/parallel"
	"github.com/housight/housight/pkg/errors"
)

// ForestRegressor averages the predictions of NumTrees CART regression
// trees, each grown on a bootstrap resample of the training rows. Every
// tree draws its randomness from its own source seeded by Seed plus the
// tree index, so a forest is reproducible no matter how the trees are
// scheduled across goroutines.
type ForestRegressor struct {
	model.BaseEstimator

	// NumTrees is the ensemble size.
	NumTrees int

	// MaxDepth limits tree depth; negative means unlimited.
	MaxDepth int

	// MinSamplesSplit is the minimum node size eligible for splitting.
	MinSamplesSplit int

	// MinSamplesLeaf is the minimum number of rows in a leaf.
	MinSamplesLeaf int

	// MaxFeatures is the number of features considered per split;
	// zero means all features.
	MaxFeatures int

	// Seed drives the bootstrap and feature subsampling.
	Seed int64

	trees     []*regressionTree
	nFeatures int
}

// NewForestRegressor creates a forest with the standard defaults:
// 100 trees, unlimited depth, all features per split.
func NewForestRegressor() *ForestRegressor {
	return &ForestRegressor{
		NumTrees:        100,
		MaxDepth:        -1,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Seed:            42,
	}
}

// Fit grows the forest on X (n_samples × n_features) and y (n_samples × 1).
func (f *ForestRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("ForestRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("ForestRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("ForestRegressor.Fit", "y must be a column vector")
	}
	if f.NumTrees <= 0 {
		return errors.NewValidationError("NumTrees", "must be positive", f.NumTrees)
	}
	if f.MinSamplesLeaf < 1 {
		return errors.NewValidationError("MinSamplesLeaf", "must be at least 1", f.MinSamplesLeaf)
	}

	xDense := denseCopy(X)
	targets := make([]float64, r)
	for i := 0; i < r; i++ {
		targets[i] = y.At(i, 0)
	}

	maxFeatures := f.MaxFeatures
	if maxFeatures <= 0 || maxFeatures > c {
		maxFeatures = c
	}

	f.nFeatures = c
	f.trees = make([]*regressionTree, f.NumTrees)

	parallel.ParallelizeWithThreshold(f.NumTrees, 1, func(start, end int) {
		for k := start; k < end; k++ {
			rng := rand.New(rand.NewSource(f.Seed + int64(k)))

			// Bootstrap resample of the training rows.
			indices := make([]int, r)
			for i := range indices {
				indices[i] = rng.Intn(r)
			}

			tree := &regressionTree{
				maxDepth:        f.MaxDepth,
				minSamplesSplit: f.MinSamplesSplit,
				minSamplesLeaf:  f.MinSamplesLeaf,
				maxFeatures:     maxFeatures,
			}
			tree.fit(xDense, targets, indices, rng)
			f.trees[k] = tree
		}
	})

	f.SetFitted()
	return nil
}

// Predict returns the per-row average of the tree predictions.
func (f *ForestRegressor) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !f.IsFitted() {
		return nil, errors.NewNotFittedError("ForestRegressor", "Predict")
	}

	r, c := X.Dims()
	if c != f.nFeatures {
		return nil, errors.NewDimensionError("ForestRegressor.Predict", f.nFeatures, c, 1)
	}

	xDense := denseCopy(X)
	predictions := mat.NewVecDense(r, nil)

	const parallelThreshold = 256
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			var sum float64
			for _, tree := range f.trees {
				sum += tree.predictOne(xDense, i)
			}
			predictions.SetVec(i, sum/float64(len(f.trees)))
		}
	})

	return predictions, nil
}

// FeatureImportances returns the impurity-decrease importance of each
// feature, summed across all trees and normalized to sum to 1. If the
// forest never split (constant target) the mass is spread uniformly.
func (f *ForestRegressor) FeatureImportances() ([]float64, error) {
	if !f.IsFitted() {
		return nil, errors.NewNotFittedError("ForestRegressor", "FeatureImportances")
	}

	importances := make([]float64, f.nFeatures)
	for _, tree := range f.trees {
		for j, v := range tree.importances {
			importances[j] += v
		}
	}

	var total float64
	for _, v := range importances {
		total += v
	}
	if total == 0 {
		for j := range importances {
			importances[j] = 1.0 / float64(f.nFeatures)
		}
		return importances, nil
	}

	for j := range importances {
		importances[j] /= total
	}
	return importances, nil
}

func denseCopy(X mat.Matrix) *mat.Dense {
	if d, ok := X.(*mat.Dense); ok {
		return d
	}
	r, c := X.Dims()
	d := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d.Set(i, j, X.At(i, j))
		}
	}
	return d
}
