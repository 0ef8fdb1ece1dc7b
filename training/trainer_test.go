package training

import (
	"math"
	"testing"

	"github.com/housight/housight/dataset"
)

func engineeredTable(t *testing.T, n int, seed int64) *dataset.Table {
	t.Helper()
	table, err := dataset.NewGenerator(seed).Generate(n)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := dataset.EngineerFeatures(table); err != nil {
		t.Fatalf("EngineerFeatures() error = %v", err)
	}
	return table
}

func TestBuildEncodedMatrix(t *testing.T) {
	table := engineeredTable(t, 200, 11)

	encoded, err := BuildEncodedMatrix(table)
	if err != nil {
		t.Fatalf("BuildEncodedMatrix() error = %v", err)
	}

	rows, cols := encoded.X.Dims()
	if rows != 200 {
		t.Errorf("rows = %d, want 200", rows)
	}
	// 11 numeric features (target excluded) + 5 proximity indicators.
	if cols != 16 {
		t.Errorf("cols = %d, want 16", cols)
	}
	if len(encoded.FeatureNames) != cols {
		t.Errorf("len(FeatureNames) = %d, want %d", len(encoded.FeatureNames), cols)
	}

	// Exactly one indicator per row is hot.
	for i := 0; i < rows; i++ {
		var sum float64
		for j := 11; j < 16; j++ {
			sum += encoded.X.At(i, j)
		}
		if sum != 1 {
			t.Fatalf("row %d: indicator sum = %v, want 1", i, sum)
		}
	}

	// Target stays out of the feature matrix.
	for _, name := range encoded.FeatureNames {
		if name == dataset.ColMedianHouseValue {
			t.Error("feature names must not include the target column")
		}
	}
}

func TestBuildEncodedMatrixRequiresEngineering(t *testing.T) {
	table, err := dataset.NewGenerator(1).Generate(50)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := BuildEncodedMatrix(table); err == nil {
		t.Error("BuildEncodedMatrix() should fail before feature engineering")
	}
}

func TestRunEndToEnd(t *testing.T) {
	table := engineeredTable(t, 2000, 42)

	result, err := Run(table, Config{Seed: 42, TestFraction: 0.2, NumTrees: 30})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Models) != 2 {
		t.Fatalf("len(Models) = %d, want exactly 2", len(result.Models))
	}
	for _, name := range []string{ModelLinear, ModelForest} {
		res, ok := result.Models[name]
		if !ok {
			t.Fatalf("results missing model %q", name)
		}
		if res.Predictions.Len() != 400 {
			t.Errorf("%s: predictions length = %d, want 400", name, res.Predictions.Len())
		}
		if res.RMSE <= 0 {
			t.Errorf("%s: RMSE = %v, want positive on noisy data", name, res.RMSE)
		}
		if res.R2 <= 0 || res.R2 > 1 {
			t.Errorf("%s: R2 = %v, want in (0, 1] on a learnable target", name, res.R2)
		}
	}

	if got := result.YTest.Len(); got != 400 {
		t.Errorf("YTest length = %d, want 400", got)
	}

	var total float64
	for _, v := range result.ForestImportances {
		total += v
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("forest importances sum = %v, want 1.0", total)
	}
	if len(result.ForestImportances) != len(result.FeatureNames) {
		t.Errorf("importances/names length mismatch: %d vs %d",
			len(result.ForestImportances), len(result.FeatureNames))
	}
}

func TestRunReproducible(t *testing.T) {
	table := engineeredTable(t, 500, 42)
	cfg := Config{Seed: 42, TestFraction: 0.2, NumTrees: 10}

	a, err := Run(table, cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	b, err := Run(table, cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for name := range a.Models {
		if a.Models[name].RMSE != b.Models[name].RMSE {
			t.Errorf("%s: RMSE differs across identical runs", name)
		}
	}
}

func TestRunDegenerateSplit(t *testing.T) {
	table := engineeredTable(t, 4, 1)
	if _, err := Run(table, Config{Seed: 1, TestFraction: 0.2, NumTrees: 5}); err == nil {
		t.Error("Run() should fail when the split would be degenerate")
	}
}
