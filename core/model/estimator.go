package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for trainable models.
type Fitter interface {
	// Fit trains the model on X (n_samples × n_features) and y
	// (n_samples × 1).
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that can predict.
type Predictor interface {
	// Predict returns predictions for the given input.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Cloner is the interface for models that can produce a fresh, unfit copy
// of themselves. Cloning before every fit is the sole mechanism isolating
// state across addition iterations and cross-validation folds; the
// prototype instance itself is never mutated.
type Cloner interface {
	// Clone returns a new unfit estimator with the same hyperparameters.
	Clone() Estimator
}

// Estimator is the minimal contract an estimator must satisfy to drive
// recursive feature addition: it can be cloned and fitted. After fitting
// it must expose an importance signal through one of the capability
// interfaces in capabilities.go.
type Estimator interface {
	Fitter
	Cloner
}
