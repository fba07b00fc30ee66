package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/core/model"
	"github.com/scigo-ml/rfa/pkg/errors"
)

// Scorer evaluates a fitted estimator on held-out data. Higher is better.
// The estimator is passed as a Fitter because that is the contract the
// selection engines hold; a scorer asserts the prediction capability it
// needs and fails with an UnsupportedOperationError otherwise.
type Scorer func(estimator model.Fitter, X, y mat.Matrix) (float64, error)

// R2Scorer scores a regressor by the R² of its predictions.
func R2Scorer(estimator model.Fitter, X, y mat.Matrix) (float64, error) {
	p, ok := estimator.(model.Predictor)
	if !ok {
		return 0, errors.NewUnsupportedOperationError("R2Scorer", "Predict")
	}
	pred, err := p.Predict(X)
	if err != nil {
		return 0, err
	}
	return R2ScoreMatrix(y, pred)
}

// AccuracyScorer scores a classifier by the accuracy of its predictions.
func AccuracyScorer(estimator model.Fitter, X, y mat.Matrix) (float64, error) {
	p, ok := estimator.(model.Predictor)
	if !ok {
		return 0, errors.NewUnsupportedOperationError("AccuracyScorer", "Predict")
	}
	pred, err := p.Predict(X)
	if err != nil {
		return 0, err
	}
	return AccuracyMatrix(y, pred)
}

// DefaultScorer derives a scorer from the estimator's type: accuracy for
// classifiers, R² otherwise.
func DefaultScorer(estimator model.Fitter) Scorer {
	if c, ok := estimator.(model.Classifier); ok && c.IsClassifier() {
		return AccuracyScorer
	}
	return R2Scorer
}
