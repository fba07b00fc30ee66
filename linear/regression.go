// Package linear provides linear estimators that satisfy the capability
// contracts consumed by the selection package: they can be cloned, fitted,
// and expose their coefficients for importance ranking.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/core/model"
	"github.com/scigo-ml/rfa/metrics"
	"github.com/scigo-ml/rfa/pkg/errors"
)

// LinearRegression is an ordinary least squares regressor solved by QR
// decomposition.
type LinearRegression struct {
	state *model.StateManager

	// Hyperparameters
	fitIntercept bool

	// Learned parameters
	coef_      []float64
	intercept_ float64
}

// LinearRegressionOption configures a LinearRegression.
type LinearRegressionOption func(*LinearRegression)

// WithFitIntercept sets whether the intercept is learned.
func WithFitIntercept(fit bool) LinearRegressionOption {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// NewLinearRegression creates a new LinearRegression model.
func NewLinearRegression(options ...LinearRegressionOption) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager(),
		fitIntercept: true,
	}
	for _, opt := range options {
		opt(lr)
	}
	return lr
}

// Clone returns a fresh, unfit copy with the same hyperparameters.
func (lr *LinearRegression) Clone() model.Estimator {
	return NewLinearRegression(WithFitIntercept(lr.fitIntercept))
}

// Fit learns the coefficients by least squares.
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows != yRows {
		return errors.NewDimensionError("LinearRegression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("LinearRegression.Fit", 1, yCols, 1)
	}
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "LinearRegression.Fit")
	}

	XFit := designMatrix(X, lr.fitIntercept)

	var qr mat.QR
	qr.Factorize(XFit)

	var sol mat.Dense
	if err := qr.SolveTo(&sol, false, y); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "LinearRegression.Fit")
	}

	lr.coef_ = make([]float64, cols)
	offset := 0
	if lr.fitIntercept {
		lr.intercept_ = sol.At(0, 0)
		offset = 1
	} else {
		lr.intercept_ = 0
	}
	for j := 0; j < cols; j++ {
		lr.coef_[j] = sol.At(j+offset, 0)
	}

	lr.state.SetDimensions(cols, rows)
	lr.state.SetFitted()
	return nil
}

// Predict returns X·w + b as an n×1 matrix.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.state.RequireFitted(); err != nil {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}
	rows, cols := X.Dims()
	nFeatures, _ := lr.state.GetDimensions()
	if cols != nFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", nFeatures, cols, 1)
	}

	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		sum := lr.intercept_
		for j := 0; j < cols; j++ {
			sum += X.At(i, j) * lr.coef_[j]
		}
		out.Set(i, 0, sum)
	}
	return out, nil
}

// Coef exposes the fitted coefficients as a 1 × n_features matrix.
func (lr *LinearRegression) Coef() mat.Matrix {
	if !lr.state.IsFitted() {
		return nil
	}
	return mat.NewDense(1, len(lr.coef_), append([]float64(nil), lr.coef_...))
}

// Intercept returns the fitted intercept.
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept_
}

// Score returns the coefficient of determination R² of the prediction.
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, pred)
}

// designMatrix prepends a column of ones when an intercept is fitted.
func designMatrix(X mat.Matrix, intercept bool) *mat.Dense {
	rows, cols := X.Dims()
	if !intercept {
		return mat.DenseCopyOf(X)
	}
	out := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		out.Set(i, 0, 1)
		for j := 0; j < cols; j++ {
			out.Set(i, j+1, X.At(i, j))
		}
	}
	return out
}
