// Package model provides the estimator and capability interfaces consumed
// by the selection algorithms. Capabilities are probed with type
// assertions after fitting, replacing attribute duck-typing with explicit
// interface checks.
package model

import "gonum.org/v1/gonum/mat"

// CoefExposer is the coefficient-style importance capability. It is probed
// first, before ImportanceExposer.
type CoefExposer interface {
	// Coef returns the fitted coefficients as an n_outputs × n_features
	// matrix (1 × n_features for single-output models).
	Coef() mat.Matrix
}

// ImportanceExposer is the generic feature-importance capability, probed
// when the estimator exposes no coefficients.
type ImportanceExposer interface {
	// FeatureImportances returns one non-negative importance per feature
	// seen during fitting.
	FeatureImportances() []float64
}

// Scorer is the interface for models that can score themselves on data.
type Scorer interface {
	// Score returns a goodness-of-fit measure, higher is better.
	Score(X, y mat.Matrix) (float64, error)
}

// ProbaPredictor is the interface for classifiers exposing probability
// estimates.
type ProbaPredictor interface {
	// PredictProba returns an n_samples × n_classes probability matrix.
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// DecisionFunctioner is the interface for models exposing a raw decision
// signal.
type DecisionFunctioner interface {
	// DecisionFunction returns the confidence scores for samples.
	DecisionFunction(X mat.Matrix) (mat.Matrix, error)
}

// Classifier marks estimators that solve classification problems. It is
// used to derive a default scorer when none is supplied: accuracy for
// classifiers, R² otherwise.
type Classifier interface {
	// IsClassifier reports whether the estimator is a classifier.
	IsClassifier() bool
}
