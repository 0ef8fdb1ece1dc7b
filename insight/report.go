// Package insight assembles the final textual report: the model ranking
// and the qualitative findings drawn from the exploratory summary.
package insight

import (
	"fmt"
	"io"

	"github.com/housight/housight/dataset"
	"github.com/housight/housight/eda"
	"github.com/housight/housight/evaluation"
	"github.com/housight/housight/pkg/errors"
)

// Report is the assembled insight report. BestByRMSE and BestByR2 may name
// different models.
type Report struct {
	BestByRMSE string
	BestByR2   string

	Results map[string]*evaluation.ModelResult
	Summary *eda.Summary

	// Importances are the forest's top features, descending.
	Importances []evaluation.FeatureImportance
}

// Build selects the best models and bundles them with the exploratory
// summary. The best model by RMSE is the minimum; by R² the maximum.
func Build(results map[string]*evaluation.ModelResult, summary *eda.Summary, importances []evaluation.FeatureImportance) (*Report, error) {
	if len(results) == 0 {
		return nil, errors.NewModelError("insight.Build", "no model results", errors.ErrEmptyData)
	}
	if summary == nil {
		return nil, errors.NewValueError("insight.Build", "summary must not be nil")
	}

	var bestRMSE, bestR2 string
	for _, name := range evaluation.SortedNames(results) {
		res := results[name]
		if bestRMSE == "" || res.RMSE < results[bestRMSE].RMSE {
			bestRMSE = name
		}
		if bestR2 == "" || res.R2 > results[bestR2].R2 {
			bestR2 = name
		}
	}

	return &Report{
		BestByRMSE:  bestRMSE,
		BestByR2:    bestR2,
		Results:     results,
		Summary:     summary,
		Importances: importances,
	}, nil
}

// Render writes the fixed-template report to w.
func (r *Report) Render(w io.Writer) error {
	p := func(format string, args ...interface{}) {
		fmt.Fprintf(w, format, args...)
	}

	p("============================================================\n")
	p(" Housing Market Analysis\n")
	p("============================================================\n\n")

	p("--- Model Performance ---\n")
	p("%-20s %12s %12s %8s\n", "model", "RMSE", "MAE", "R²")
	for _, name := range evaluation.SortedNames(r.Results) {
		res := r.Results[name]
		p("%-20s %12.2f %12.2f %8.4f\n", name, res.RMSE, res.MAE, res.R2)
	}
	p("\nBest model by RMSE: %s (%.2f)\n", r.BestByRMSE, r.Results[r.BestByRMSE].RMSE)
	p("Best model by R²:   %s (%.4f)\n", r.BestByR2, r.Results[r.BestByR2].R2)

	p("\n--- Findings ---\n")
	p("1. %s has the strongest correlation with house value (r = %+.3f).\n",
		r.Summary.TopCorrelated.Column, r.Summary.TopCorrelated.Value)
	if len(r.Summary.ValueByProximity) > 0 {
		top := r.Summary.ValueByProximity[0]
		p("2. %s blocks command the highest mean value (%.0f across %d blocks), a clear proximity premium.\n",
			top.Proximity, top.MeanValue, top.Count)
	}
	p("3. Mean house value is %.0f against a median of %.0f; the gap reflects the skew of the value distribution.\n",
		r.Summary.MeanValue, r.Summary.MedianValue)
	p("4. Geography matters: value drifts with latitude across the state, visible in the geographic scatter.\n")
	p("5. Housing age contributes a mild positive effect relative to income and location.\n")

	if len(r.Importances) > 0 {
		p("\n--- Top Feature Importances (%s) ---\n", "RandomForest")
		for i, imp := range r.Importances {
			p("%2d. %-28s %.4f\n", i+1, imp.Name, imp.Weight)
		}
	}

	p("\n--- Recommendations ---\n")
	p("* Prefer %s for point predictions; it leads on held-out RMSE.\n", r.BestByRMSE)
	p("* Track %s first when screening new listings; no other field carries more signal.\n",
		r.Summary.TopCorrelated.Column)
	p("* Treat %s as its own market segment before comparing across regions.\n",
		proximityLabel(r.Summary))
	p("* Revisit the models once real (non-synthetic) records are available; the findings above describe generated data.\n")

	return nil
}

func proximityLabel(s *eda.Summary) dataset.Proximity {
	if len(s.ValueByProximity) == 0 {
		return ""
	}
	return s.ValueByProximity[0].Proximity
}
