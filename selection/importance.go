package selection

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/scigo-ml/rfa/core/model"
	"github.com/scigo-ml/rfa/pkg/errors"
)

// extractImportances turns a fitted estimator's raw importance signal into
// one non-negative score per feature. The coefficient capability is probed
// first; multi-output coefficient matrices are reduced by squaring and
// summing across the output axis. Non-finite entries are replaced with 0
// before ranking; this recovery is local and never surfaces as an error.
func extractImportances(estimator model.Fitter, nFeatures int) ([]float64, error) {
	if ce, ok := estimator.(model.CoefExposer); ok {
		if coef := ce.Coef(); coef != nil {
			rows, cols := coef.Dims()
			if cols != nFeatures {
				return nil, errors.NewDimensionError("extractImportances", nFeatures, cols, 1)
			}
			imp := make([]float64, cols)
			nonFinite := 0
			for j := 0; j < cols; j++ {
				for i := 0; i < rows; i++ {
					v := coef.At(i, j)
					if math.IsNaN(v) || math.IsInf(v, 0) {
						nonFinite++
						continue
					}
					imp[j] += v * v
				}
			}
			if nonFinite > 0 {
				errors.Warn(errors.NewNonFiniteImportanceWarning(estimatorName(estimator), nonFinite))
			}
			return imp, nil
		}
	}

	if ie, ok := estimator.(model.ImportanceExposer); ok {
		if vals := ie.FeatureImportances(); vals != nil {
			if len(vals) != nFeatures {
				return nil, errors.NewDimensionError("extractImportances", nFeatures, len(vals), 1)
			}
			imp := append([]float64(nil), vals...)
			if n := errors.SanitizeValues(imp); n > 0 {
				errors.Warn(errors.NewNonFiniteImportanceWarning(estimatorName(estimator), n))
			}
			for j, v := range imp {
				imp[j] = v * v
			}
			return imp, nil
		}
	}

	return nil, errors.NewImportanceError(estimatorName(estimator))
}

// rankDescending returns the positions of importances sorted by
// descending value. The sort is stable, so equal importances keep their
// ascending positional (and therefore original feature index) order.
func rankDescending(importances []float64) []int {
	order := make([]int, len(importances))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return importances[order[a]] > importances[order[b]]
	})
	return order
}

func estimatorName(estimator any) string {
	name := fmt.Sprintf("%T", estimator)
	name = strings.TrimPrefix(name, "*")
	return name
}
