package modelselection

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/pkg/errors"
)

// Subset extracts the rows of X and y given by indices into fresh dense
// matrices. Indices are gathered in sorted order.
func Subset(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense, error) {
	nSamples, xCols := X.Dims()
	yRows, yCols := y.Dims()

	if yRows != nSamples {
		return nil, nil, errors.NewDimensionError("Subset", nSamples, yRows, 0)
	}
	if len(indices) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "Subset: no indices")
	}

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)

	rows := len(sorted)
	xSub := mat.NewDense(rows, xCols, nil)
	ySub := mat.NewDense(rows, yCols, nil)

	for i, idx := range sorted {
		if idx < 0 || idx >= nSamples {
			return nil, nil, errors.NewValidationError("indices", "row index out of range", idx)
		}
		for j := 0; j < xCols; j++ {
			xSub.Set(i, j, X.At(idx, j))
		}
		for j := 0; j < yCols; j++ {
			ySub.Set(i, j, y.At(idx, j))
		}
	}

	return xSub, ySub, nil
}

// TakeColumns gathers the given feature columns of X into a fresh dense
// matrix, preserving the order of features.
func TakeColumns(X mat.Matrix, features []int) (*mat.Dense, error) {
	rows, cols := X.Dims()
	if len(features) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "TakeColumns: no features")
	}

	out := mat.NewDense(rows, len(features), nil)
	for j, f := range features {
		if f < 0 || f >= cols {
			return nil, errors.NewValidationError("features", "column index out of range", f)
		}
		for i := 0; i < rows; i++ {
			out.Set(i, j, X.At(i, f))
		}
	}
	return out, nil
}
