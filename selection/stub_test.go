package selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/core/model"
	"github.com/scigo-ml/rfa/pkg/errors"
)

// rowCoefEstimator is a deterministic test double: after fitting it
// exposes the first row of X as its coefficient vector, so importance
// ordering can be scripted through the data itself.
type rowCoefEstimator struct {
	fitted bool
	coefs  []float64
}

func (e *rowCoefEstimator) Clone() model.Estimator {
	return &rowCoefEstimator{}
}

func (e *rowCoefEstimator) Fit(X, _ mat.Matrix) error {
	_, cols := X.Dims()
	e.coefs = make([]float64, cols)
	for j := 0; j < cols; j++ {
		e.coefs[j] = X.At(0, j)
	}
	e.fitted = true
	return nil
}

func (e *rowCoefEstimator) Coef() mat.Matrix {
	if !e.fitted {
		return nil
	}
	return mat.NewDense(1, len(e.coefs), append([]float64(nil), e.coefs...))
}

// multiCoefEstimator exposes a 2 × n_features coefficient matrix to
// exercise the multi-output reduction.
type multiCoefEstimator struct {
	fitted bool
	cols   int
	rows   [][]float64
}

func (e *multiCoefEstimator) Clone() model.Estimator {
	return &multiCoefEstimator{}
}

func (e *multiCoefEstimator) Fit(X, _ mat.Matrix) error {
	_, cols := X.Dims()
	e.cols = cols
	e.rows = [][]float64{make([]float64, cols), make([]float64, cols)}
	for j := 0; j < cols; j++ {
		e.rows[0][j] = X.At(0, j)
		e.rows[1][j] = X.At(1, j)
	}
	e.fitted = true
	return nil
}

func (e *multiCoefEstimator) Coef() mat.Matrix {
	if !e.fitted {
		return nil
	}
	data := append(append([]float64(nil), e.rows[0]...), e.rows[1]...)
	return mat.NewDense(2, e.cols, data)
}

// importanceEstimator exposes the generic importance capability instead of
// coefficients.
type importanceEstimator struct {
	fitted bool
	imp    []float64
}

func (e *importanceEstimator) Clone() model.Estimator {
	return &importanceEstimator{}
}

func (e *importanceEstimator) Fit(X, _ mat.Matrix) error {
	_, cols := X.Dims()
	e.imp = make([]float64, cols)
	for j := 0; j < cols; j++ {
		e.imp[j] = X.At(0, j)
	}
	e.fitted = true
	return nil
}

func (e *importanceEstimator) FeatureImportances() []float64 {
	if !e.fitted {
		return nil
	}
	return append([]float64(nil), e.imp...)
}

// opaqueEstimator fits but exposes no importance signal at all.
type opaqueEstimator struct{}

func (e *opaqueEstimator) Clone() model.Estimator   { return &opaqueEstimator{} }
func (e *opaqueEstimator) Fit(_, _ mat.Matrix) error { return nil }

// failingEstimator fails every fit.
type failingEstimator struct{}

func (e *failingEstimator) Clone() model.Estimator { return &failingEstimator{} }
func (e *failingEstimator) Fit(_, _ mat.Matrix) error {
	return errors.New("fit exploded")
}

// constantRows builds an nSamples × len(row) matrix whose rows all equal
// row, so any row subset preserves the scripted importance pattern.
func constantRows(nSamples int, row []float64) *mat.Dense {
	X := mat.NewDense(nSamples, len(row), nil)
	for i := 0; i < nSamples; i++ {
		for j, v := range row {
			X.Set(i, j, v)
		}
	}
	return X
}

func columnOf(n int, v float64) *mat.Dense {
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		y.Set(i, 0, v)
	}
	return y
}
