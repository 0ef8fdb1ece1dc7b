// Package linear implements ordinary least-squares regression.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/housight/housight/core/model"
	"github.com/housight/housight/core/parallel"
	"github.com/housight/housight/pkg/errors"
)

// Regression is an ordinary least-squares linear model. Fitting goes
// through the SVD pseudo-inverse rather than the normal equations: an
// intercept column next to a full one-hot block makes X rank-deficient,
// and the minimum-norm solution handles that the same way lstsq does.
type Regression struct {
	model.BaseEstimator

	// Weights holds the fitted coefficients, one per feature.
	Weights *mat.VecDense

	// Intercept is the fitted bias term.
	Intercept float64

	// NFeatures is the number of features seen by Fit.
	NFeatures int
}

// NewRegression creates an unfitted Regression.
func NewRegression() *Regression {
	return &Regression{}
}

// Fit trains the model on X (n_samples × n_features) and y (n_samples × 1).
func (lr *Regression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("Regression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("Regression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("Regression.Fit", "y must be a column vector")
	}

	lr.NFeatures = c

	// Prepend a column of ones for the intercept term.
	XWithIntercept := mat.NewDense(r, c+1, nil)

	const parallelThreshold = 1000

	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			XWithIntercept.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				XWithIntercept.Set(i, j+1, X.At(i, j))
			}
		}
	})

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	weights, err := solveLeastSquares(XWithIntercept, yVec)
	if err != nil {
		return err
	}

	lr.Intercept = weights.AtVec(0)
	lr.Weights = mat.NewVecDense(c, nil)
	for i := 0; i < c; i++ {
		lr.Weights.SetVec(i, weights.AtVec(i+1))
	}

	lr.SetFitted()

	return nil
}

// solveLeastSquares returns the minimum-norm w minimizing ||Xw - y|| via
// the thin SVD: w = V S⁺ Uᵀ y, with singular values below the usual
// machine tolerance treated as zero.
func solveLeastSquares(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(X, mat.SVDThin); !ok {
		return nil, errors.NewModelError("Regression.Fit", "SVD failed to converge", errors.ErrSingularMatrix)
	}

	s := svd.Values(nil)
	if len(s) == 0 || s[0] == 0 {
		return nil, errors.NewModelError("Regression.Fit", "design matrix has no signal", errors.ErrSingularMatrix)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	r, c := X.Dims()
	larger := r
	if c > larger {
		larger = c
	}
	tol := float64(larger) * machineEpsilon * s[0]

	// z = S⁺ Uᵀ y
	var uty mat.VecDense
	uty.MulVec(u.T(), y)
	z := mat.NewVecDense(len(s), nil)
	for i, sv := range s {
		if sv > tol {
			z.SetVec(i, uty.AtVec(i)/sv)
		}
	}

	w := mat.NewVecDense(c, nil)
	w.MulVec(&v, z)
	return w, nil
}

const machineEpsilon = 2.220446049250313e-16

// Predict returns y = X*w + intercept for each row of X.
func (lr *Regression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("Regression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("Regression.Predict", lr.NFeatures, c, 1)
	}

	predictions := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.SetVec(i, pred)
	}

	return predictions, nil
}

// Coefficients returns a copy of the fitted weights.
func (lr *Regression) Coefficients() []float64 {
	if lr.Weights == nil {
		return nil
	}

	weights := make([]float64, lr.Weights.Len())
	for i := 0; i < lr.Weights.Len(); i++ {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// Score returns the coefficient of determination R² on X, y.
func (lr *Regression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("Regression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()

	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		yPredVal := yPred.AtVec(i)

		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yPredVal) * (yTrue - yPredVal)
	}

	if tss == 0 {
		return 0, errors.Newf("total sum of squares is zero")
	}

	return 1 - rss/tss, nil
}
