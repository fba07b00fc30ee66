package selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/core/model"
	"github.com/scigo-ml/rfa/metrics"
	"github.com/scigo-ml/rfa/modelselection"
)

// foldScores evaluates one train/test partition: it runs a full addition
// pass on the train view down to a single remaining candidate, scoring
// every intermediate selected subset on the held-out test view. Only the
// score trajectory crosses back over the worker boundary; masks and
// fitted estimators stay inside the task. Any failure during splitting,
// fitting or scoring propagates unrecovered.
func foldScores(prototype model.Estimator, step float64, X, y mat.Matrix,
	fold modelselection.Fold, scorer metrics.Scorer) ([]float64, error) {

	XTrain, yTrain, err := modelselection.Subset(X, y, fold.Train)
	if err != nil {
		return nil, err
	}
	XTest, yTest, err := modelselection.Subset(X, y, fold.Test)
	if err != nil {
		return nil, err
	}

	engine := NewRFA(prototype, WithTargetFeatures(1), WithStep(step))
	hook := func(fitted model.Estimator, features []int) (float64, error) {
		testCols, err := modelselection.TakeColumns(XTest, features)
		if err != nil {
			return 0, err
		}
		return scorer(fitted, testCols, yTest)
	}

	return engine.fit(XTrain, yTrain, hook)
}
