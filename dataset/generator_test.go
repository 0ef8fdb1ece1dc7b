package dataset

import (
	"testing"
)

func TestGenerateRowCountAndInvariants(t *testing.T) {
	tests := []struct {
		name  string
		count int
		seed  int64
	}{
		{name: "small table", count: 50, seed: 1},
		{name: "full run size", count: 2000, seed: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewGenerator(tt.seed).Generate(tt.count)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got := table.NumRows(); got != tt.count {
				t.Fatalf("NumRows() = %d, want %d", got, tt.count)
			}
			if got := table.NumColumns(); got != 9 {
				t.Errorf("NumColumns() = %d, want 9 before feature engineering", got)
			}

			for i, r := range table.Records() {
				if !r.OceanProximity.Valid() {
					t.Errorf("row %d: proximity %q outside the fixed category set", i, r.OceanProximity)
				}
				if r.MedianHouseValue < ValueFloor {
					t.Errorf("row %d: value %f below floor %f", i, r.MedianHouseValue, ValueFloor)
				}
				if r.Households <= 0 {
					t.Errorf("row %d: households %f must be positive", i, r.Households)
				}
				if r.TotalRooms <= 0 {
					t.Errorf("row %d: total_rooms %f must be positive", i, r.TotalRooms)
				}
			}
		})
	}
}

func TestGenerateInvalidCount(t *testing.T) {
	for _, count := range []int{0, -5} {
		if _, err := NewGenerator(1).Generate(count); err == nil {
			t.Errorf("Generate(%d) should fail", count)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := NewGenerator(42).Generate(200)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := NewGenerator(42).Generate(200)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for i := range a.Records() {
		if a.Record(i) != b.Record(i) {
			t.Fatalf("row %d differs across runs with the same seed: %+v vs %+v", i, a.Record(i), b.Record(i))
		}
	}

	c, err := NewGenerator(43).Generate(200)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	same := true
	for i := range a.Records() {
		if a.Record(i) != c.Record(i) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical tables")
	}
}

func TestGenerateCoversAllCategories(t *testing.T) {
	// With 2000 draws even the 3% ISLAND category should appear.
	table, err := NewGenerator(42).Generate(2000)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	seen := map[Proximity]int{}
	for _, r := range table.Records() {
		seen[r.OceanProximity]++
	}
	for _, p := range Proximities() {
		if seen[p] == 0 {
			t.Errorf("category %q never drawn in 2000 samples", p)
		}
	}
}
