package evaluation

import (
	"math"
	"os"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestEvaluatePerfectPrediction(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{100, 200, 300, 400})
	yPred := mat.NewVecDense(4, []float64{100, 200, 300, 400})

	res, err := Evaluate("LinearRegression", yTrue, yPred)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if res.RMSE != 0 {
		t.Errorf("RMSE = %v, want exactly 0", res.RMSE)
	}
	if res.MAE != 0 {
		t.Errorf("MAE = %v, want exactly 0", res.MAE)
	}
	if res.R2 != 1.0 {
		t.Errorf("R2 = %v, want exactly 1.0", res.R2)
	}
}

func TestEvaluateKnownErrors(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{2, 3, 4, 5})

	res, err := Evaluate("RandomForest", yTrue, yPred)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if math.Abs(res.RMSE-1.0) > 1e-10 {
		t.Errorf("RMSE = %v, want 1.0", res.RMSE)
	}
	if math.Abs(res.MAE-1.0) > 1e-10 {
		t.Errorf("MAE = %v, want 1.0", res.MAE)
	}
}

func TestEvaluateValidation(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{1, 2, 3})
	yPred := mat.NewVecDense(2, []float64{1, 2})

	if _, err := Evaluate("m", yTrue, yPred); err == nil {
		t.Error("Evaluate() should fail on length mismatch")
	}
	if _, err := Evaluate("", yTrue, yTrue); err == nil {
		t.Error("Evaluate() should fail on an empty name")
	}
}

func TestTopImportances(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	weights := []float64{0.1, 0.4, 0.4, 0.1}

	top, err := TopImportances(names, weights, 3)
	if err != nil {
		t.Fatalf("TopImportances() error = %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("len(top) = %d, want 3", len(top))
	}
	// Ties break by name.
	if top[0].Name != "b" || top[1].Name != "c" {
		t.Errorf("top = %+v, want b then c first", top)
	}

	// k larger than the feature count returns everything.
	all, err := TopImportances(names, weights, 10)
	if err != nil {
		t.Fatalf("TopImportances() error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("len(all) = %d, want 4", len(all))
	}

	if _, err := TopImportances(names, weights[:2], 3); err == nil {
		t.Error("TopImportances() should fail on length mismatch")
	}
}

func TestRenderPlotsWritesFourFigures(t *testing.T) {
	yTrue := mat.NewVecDense(50, nil)
	predA := mat.NewVecDense(50, nil)
	predB := mat.NewVecDense(50, nil)
	for i := 0; i < 50; i++ {
		yTrue.SetVec(i, float64(i)*1000+20000)
		predA.SetVec(i, float64(i)*1000+21000)
		predB.SetVec(i, float64(i)*950+25000)
	}

	resA, err := Evaluate("LinearRegression", yTrue, predA)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	resB, err := Evaluate("RandomForest", yTrue, predB)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	results := map[string]*ModelResult{resA.Name: resA, resB.Name: resB}
	importances := []FeatureImportance{
		{Name: "median_income", Weight: 0.6},
		{Name: "latitude", Weight: 0.3},
		{Name: "housing_median_age", Weight: 0.1},
	}

	dir := t.TempDir()
	paths, err := RenderPlots(results, yTrue, importances, dir)
	if err != nil {
		t.Fatalf("RenderPlots() error = %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("RenderPlots() produced %d figures, want 4", len(paths))
	}
	for _, p := range paths {
		if _, serr := os.Stat(p); serr != nil {
			t.Errorf("figure %s not written: %v", p, serr)
		}
	}
}
