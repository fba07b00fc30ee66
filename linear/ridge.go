package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/core/model"
	"github.com/scigo-ml/rfa/metrics"
	"github.com/scigo-ml/rfa/pkg/errors"
)

// RidgeRegression is an L2-regularized linear regressor solved in closed
// form. The regularization keeps coefficients well defined on collinear or
// underdetermined column subsets, which matters when fitting on shrinking
// candidate sets.
type RidgeRegression struct {
	state *model.StateManager

	// Hyperparameters
	alpha        float64
	fitIntercept bool

	// Learned parameters
	coef_      []float64
	intercept_ float64
}

// RidgeOption configures a RidgeRegression.
type RidgeOption func(*RidgeRegression)

// WithAlpha sets the regularization strength. Must be positive.
func WithAlpha(alpha float64) RidgeOption {
	return func(r *RidgeRegression) {
		r.alpha = alpha
	}
}

// WithRidgeFitIntercept sets whether the intercept is learned.
func WithRidgeFitIntercept(fit bool) RidgeOption {
	return func(r *RidgeRegression) {
		r.fitIntercept = fit
	}
}

// NewRidgeRegression creates a new RidgeRegression model. Default alpha is
// 1.0.
func NewRidgeRegression(options ...RidgeOption) *RidgeRegression {
	r := &RidgeRegression{
		state:        model.NewStateManager(),
		alpha:        1.0,
		fitIntercept: true,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Clone returns a fresh, unfit copy with the same hyperparameters.
func (r *RidgeRegression) Clone() model.Estimator {
	return NewRidgeRegression(WithAlpha(r.alpha), WithRidgeFitIntercept(r.fitIntercept))
}

// Fit solves (XᵀX + αI)w = Xᵀy. When an intercept is fitted, X and y are
// centered first so the penalty does not shrink the intercept.
func (r *RidgeRegression) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows != yRows {
		return errors.NewDimensionError("RidgeRegression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("RidgeRegression.Fit", 1, yCols, 1)
	}
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "RidgeRegression.Fit")
	}
	if r.alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", r.alpha)
	}

	xMeans := make([]float64, cols)
	var yMean float64
	if r.fitIntercept {
		for j := 0; j < cols; j++ {
			var sum float64
			for i := 0; i < rows; i++ {
				sum += X.At(i, j)
			}
			xMeans[j] = sum / float64(rows)
		}
		for i := 0; i < rows; i++ {
			yMean += y.At(i, 0)
		}
		yMean /= float64(rows)
	}

	Xc := mat.NewDense(rows, cols, nil)
	yc := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			Xc.Set(i, j, X.At(i, j)-xMeans[j])
		}
		yc.SetVec(i, y.At(i, 0)-yMean)
	}

	// A = XᵀX + αI, b = Xᵀy
	var gram mat.Dense
	gram.Mul(Xc.T(), Xc)
	for j := 0; j < cols; j++ {
		gram.Set(j, j, gram.At(j, j)+r.alpha)
	}
	var xty mat.VecDense
	xty.MulVec(Xc.T(), yc)

	var w mat.VecDense
	if err := w.SolveVec(&gram, &xty); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "RidgeRegression.Fit")
	}

	r.coef_ = make([]float64, cols)
	for j := 0; j < cols; j++ {
		r.coef_[j] = w.AtVec(j)
	}
	r.intercept_ = 0
	if r.fitIntercept {
		r.intercept_ = yMean
		for j := 0; j < cols; j++ {
			r.intercept_ -= r.coef_[j] * xMeans[j]
		}
	}

	r.state.SetDimensions(cols, rows)
	r.state.SetFitted()
	return nil
}

// Predict returns X·w + b as an n×1 matrix.
func (r *RidgeRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := r.state.RequireFitted(); err != nil {
		return nil, errors.NewNotFittedError("RidgeRegression", "Predict")
	}
	rows, cols := X.Dims()
	nFeatures, _ := r.state.GetDimensions()
	if cols != nFeatures {
		return nil, errors.NewDimensionError("RidgeRegression.Predict", nFeatures, cols, 1)
	}

	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		sum := r.intercept_
		for j := 0; j < cols; j++ {
			sum += X.At(i, j) * r.coef_[j]
		}
		out.Set(i, 0, sum)
	}
	return out, nil
}

// Coef exposes the fitted coefficients as a 1 × n_features matrix.
func (r *RidgeRegression) Coef() mat.Matrix {
	if !r.state.IsFitted() {
		return nil
	}
	return mat.NewDense(1, len(r.coef_), append([]float64(nil), r.coef_...))
}

// Intercept returns the fitted intercept.
func (r *RidgeRegression) Intercept() float64 {
	return r.intercept_
}

// Score returns the coefficient of determination R² of the prediction.
func (r *RidgeRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, pred)
}
