// Package evaluation scores trained models on the held-out rows and
// renders the comparison figures.
package evaluation

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/housight/housight/metrics"
	"github.com/housight/housight/pkg/errors"
)

// ModelResult holds one model's held-out predictions and scalar metrics.
// It is created once by Evaluate and read-only afterwards.
type ModelResult struct {
	Name        string
	Predictions *mat.VecDense

	RMSE float64
	MAE  float64
	R2   float64
}

// Evaluate computes RMSE, MAE and R² of yPred against yTrue.
func Evaluate(name string, yTrue, yPred *mat.VecDense) (*ModelResult, error) {
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty", name)
	}
	if yTrue.Len() != yPred.Len() {
		return nil, errors.NewDimensionError("evaluation.Evaluate", yTrue.Len(), yPred.Len(), 0)
	}

	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		return nil, errors.Wrap(err, "evaluation: rmse")
	}
	mae, err := metrics.MAE(yTrue, yPred)
	if err != nil {
		return nil, errors.Wrap(err, "evaluation: mae")
	}
	r2, err := metrics.R2Score(yTrue, yPred)
	if err != nil {
		return nil, errors.Wrap(err, "evaluation: r2")
	}

	return &ModelResult{
		Name:        name,
		Predictions: yPred,
		RMSE:        rmse,
		MAE:         mae,
		R2:          r2,
	}, nil
}

// FeatureImportance pairs a feature name with its normalized importance.
type FeatureImportance struct {
	Name   string
	Weight float64
}

// TopImportances pairs names with weights and returns the k largest,
// descending. Name order breaks weight ties so the result is stable.
func TopImportances(names []string, weights []float64, k int) ([]FeatureImportance, error) {
	if len(names) != len(weights) {
		return nil, errors.NewDimensionError("evaluation.TopImportances", len(names), len(weights), 0)
	}
	if k <= 0 {
		return nil, errors.NewValidationError("k", "must be positive", k)
	}

	all := make([]FeatureImportance, len(names))
	for i := range names {
		all[i] = FeatureImportance{Name: names[i], Weight: weights[i]}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Weight != all[j].Weight {
			return all[i].Weight > all[j].Weight
		}
		return all[i].Name < all[j].Name
	})

	if k > len(all) {
		k = len(all)
	}
	return all[:k], nil
}

// SortedNames returns the model names of results in lexical order, so the
// figures and reports enumerate models deterministically.
func SortedNames(results map[string]*ModelResult) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
