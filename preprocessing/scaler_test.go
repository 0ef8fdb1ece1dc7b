package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1.0, 10.0,
		2.0, 20.0,
		3.0, 30.0,
		4.0, 40.0,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	const tolerance = 1e-10
	r, c := scaled.Dims()
	for j := 0; j < c; j++ {
		var sum, sumSquares float64
		for i := 0; i < r; i++ {
			sum += scaled.At(i, j)
		}
		mean := sum / float64(r)
		if math.Abs(mean) > tolerance {
			t.Errorf("column %d: mean = %v, want 0", j, mean)
		}
		for i := 0; i < r; i++ {
			d := scaled.At(i, j) - mean
			sumSquares += d * d
		}
		std := math.Sqrt(sumSquares / float64(r))
		if math.Abs(std-1.0) > tolerance {
			t.Errorf("column %d: std = %v, want 1", j, std)
		}
	}
}

func TestStandardScalerTrainOnlyStatistics(t *testing.T) {
	train := mat.NewDense(3, 1, []float64{0.0, 1.0, 2.0})
	test := mat.NewDense(2, 1, []float64{3.0, 4.0})

	scaler := NewStandardScaler()
	if err := scaler.Fit(train); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	scaled, err := scaler.Transform(test)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	// Train mean is 1, train std is sqrt(2/3); test values must be scaled
	// with those statistics, not their own.
	std := math.Sqrt(2.0 / 3.0)
	want := []float64{(3.0 - 1.0) / std, (4.0 - 1.0) / std}
	for i, w := range want {
		if got := scaled.At(i, 0); math.Abs(got-w) > 1e-10 {
			t.Errorf("row %d: scaled = %v, want %v", i, got, w)
		}
	}
}

func TestStandardScalerInverseTransformRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1.5, -2.0,
		0.5, 4.0,
		-1.0, 8.0,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	back, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}

	r, c := X.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.Abs(back.At(i, j)-X.At(i, j)) > 1e-10 {
				t.Errorf("(%d,%d): round trip = %v, want %v", i, j, back.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScaler()
	if _, err := scaler.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Transform() before Fit() should fail")
	}
}

func TestStandardScalerDimensionMismatch(t *testing.T) {
	scaler := NewStandardScaler()
	if err := scaler.Fit(mat.NewDense(3, 2, nil)); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := scaler.Transform(mat.NewDense(3, 3, nil)); err == nil {
		t.Error("Transform() with extra columns should fail")
	}
}

func TestStandardScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{5, 5, 5})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if got := scaled.At(i, 0); got != 0 {
			t.Errorf("row %d: constant column scaled to %v, want 0", i, got)
		}
	}
}
