// Package log defines standard attribute keys for selection operations.
//
// Using these keys consistently enables structured filtering of logs from
// long-running selection fits. The keys follow a hierarchical naming
// convention (e.g. "model.name", "data.samples").
package log

// Model and operation context.
const (
	// ModelNameKey identifies the selector or estimator type.
	// Examples: "RFA", "RFACV", "LinearRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score"
	OperationKey = "ml.operation"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) in the dataset.
	FeaturesKey = "data.features"
)

// Selection progress.
const (
	// IterationKey is the current addition iteration within an engine run.
	IterationKey = "selection.iteration"

	// RemainingKey is the number of candidate features left at the start
	// of an iteration.
	RemainingKey = "selection.remaining"

	// AddedKey is the number of features moved into the selected set.
	AddedKey = "selection.added"

	// StepKey is the resolved number of features moved per iteration.
	StepKey = "selection.step"

	// TargetKey is the candidate-pool size at which the loop stops.
	TargetKey = "selection.target"
)

// Cross-validation context.
const (
	// FoldKey is the fold index within a cross-validated fit.
	FoldKey = "cv.fold"

	// FoldsKey is the total number of folds.
	FoldsKey = "cv.folds"

	// ScoreKey is a held-out score value.
	ScoreKey = "cv.score"
)
