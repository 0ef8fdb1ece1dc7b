package dataset

import (
	"math/rand"

	"github.com/housight/housight/pkg/errors"
)

// Split holds the disjoint row index sets of a train/test split. Together
// the two sets cover every row exactly once.
type Split struct {
	TrainIndices []int
	TestIndices  []int
}

// SplitTrainTest shuffles the row indices [0, n) with a generator seeded by
// seed and assigns the first testFraction of them to the test set. Equal
// inputs give equal splits.
func SplitTrainTest(n int, testFraction float64, seed int64) (*Split, error) {
	if n <= 0 {
		return nil, errors.NewValidationError("n", "must be positive", n)
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, errors.NewValidationError("testFraction", "must be in (0, 1)", testFraction)
	}

	testSize := int(float64(n) * testFraction)
	if testSize == 0 || testSize == n {
		return nil, errors.NewValueError("SplitTrainTest",
			"split is degenerate: one side would be empty; increase the sample count")
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	test := make([]int, testSize)
	copy(test, perm[:testSize])
	train := make([]int, n-testSize)
	copy(train, perm[testSize:])

	return &Split{TrainIndices: train, TestIndices: test}, nil
}
