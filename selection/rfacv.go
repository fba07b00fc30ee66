package selection

import (
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/core/model"
	"github.com/scigo-ml/rfa/core/parallel"
	"github.com/scigo-ml/rfa/metrics"
	"github.com/scigo-ml/rfa/modelselection"
	"github.com/scigo-ml/rfa/pkg/errors"
	"github.com/scigo-ml/rfa/pkg/log"
)

// RFACV performs recursive feature addition with cross-validated selection
// of the subset size: one full addition pass per fold records a held-out
// score trajectory, the trajectories are summed elementwise, and the
// subset size with the best mean score is used for one final pass over the
// whole dataset.
type RFACV struct {
	state  *model.StateManager
	logger zerolog.Logger

	// Hyperparameters
	estimator model.Estimator
	step      float64
	cv        modelselection.Splitter
	scorer    metrics.Scorer
	nJobs     int

	// Fitted attributes
	final       *RFA
	gridScores_ []float64
}

// RFACVOption configures an RFACV selector.
type RFACVOption func(*RFACV)

// WithCV sets the cross-validation splitter. Default is 5-fold KFold
// without shuffling.
func WithCV(cv modelselection.Splitter) RFACVOption {
	return func(r *RFACV) {
		r.cv = cv
	}
}

// WithScorer sets the held-out scorer. When not supplied, the scorer is
// derived from the estimator's type: accuracy for classifiers, R²
// otherwise.
func WithScorer(scorer metrics.Scorer) RFACVOption {
	return func(r *RFACV) {
		r.scorer = scorer
	}
}

// WithCVStep sets the per-iteration step, with the same semantics as
// WithStep on RFA.
func WithCVStep(step float64) RFACVOption {
	return func(r *RFACV) {
		r.step = step
	}
}

// WithNJobs sets the number of fold evaluations allowed to run
// concurrently. 1 (the default) evaluates folds sequentially through the
// same code path; values below 1 use one worker per CPU core.
func WithNJobs(n int) RFACVOption {
	return func(r *RFACV) {
		r.nJobs = n
	}
}

// WithCVLogger replaces the selector's logger.
func WithCVLogger(logger zerolog.Logger) RFACVOption {
	return func(r *RFACV) {
		r.logger = logger
	}
}

// NewRFACV creates a new cross-validated selector driven by the given
// prototype estimator.
func NewRFACV(estimator model.Estimator, opts ...RFACVOption) *RFACV {
	r := &RFACV{
		state:     model.NewStateManager(),
		logger:    log.With("RFACV"),
		estimator: estimator,
		step:      1,
		nJobs:     1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fit runs one fold-evaluation task per cross-validation fold, picks the
// subset size with the best aggregate held-out score, and re-runs the
// addition engine once on the entire dataset at that size.
func (r *RFACV) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "RFACV.Fit")
	}
	if yRows != rows {
		return errors.NewDimensionError("RFACV.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("RFACV.Fit", 1, yCols, 1)
	}
	if r.estimator == nil {
		return errors.NewValidationError("estimator", "must not be nil", nil)
	}

	nFeatures := cols
	step, err := resolveStep(r.step, nFeatures)
	if err != nil {
		return err
	}

	cv := r.cv
	if cv == nil {
		cv = modelselection.NewKFold(5, false, 0)
	}
	scorer := r.scorer
	if scorer == nil {
		scorer = metrics.DefaultScorer(r.estimator)
	}

	folds := cv.Split(X, y)
	nFolds := len(folds)
	if nFolds == 0 {
		return errors.NewValidationError("cv", "splitter produced no folds", cv.NSplits())
	}

	r.logger.Info().
		Int(log.SamplesKey, rows).
		Int(log.FeaturesKey, nFeatures).
		Int(log.StepKey, step).
		Int(log.FoldsKey, nFolds).
		Str(log.OperationKey, "fit").
		Msg("starting cross-validated feature addition")

	// Fan out one fold-evaluation task per fold. Aggregation is a pure
	// elementwise sum, so completion order does not matter; the pool
	// joins every task before returning.
	trajectories := make([][]float64, nFolds)
	err = parallel.Run(nFolds, r.nJobs, func(i int) error {
		scores, err := foldScores(r.estimator, r.step, X, y, folds[i], scorer)
		if err != nil {
			return errors.Wrapf(err, "RFACV: fold %d", i)
		}
		r.logger.Debug().
			Int(log.FoldKey, i).
			Int(log.FoldsKey, nFolds).
			Msg("fold evaluation finished")
		trajectories[i] = scores
		return nil
	})
	if err != nil {
		return err
	}

	// Trajectory lengths are determined by (n_features, step) alone, so
	// every fold must agree.
	length := len(trajectories[0])
	for _, tr := range trajectories {
		if len(tr) != length {
			return errors.NewDimensionError("RFACV.Fit", length, len(tr), 0)
		}
	}

	aggregate := make([]float64, length)
	for _, tr := range trajectories {
		for j, v := range tr {
			aggregate[j] += v
		}
	}

	// First occurrence wins on ties.
	bestIndex := 0
	for j := 1; j < length; j++ {
		if aggregate[j] > aggregate[bestIndex] {
			bestIndex = j
		}
	}

	nSelect := nFeatures - bestIndex*step
	if nSelect < 1 {
		nSelect = 1
	}
	// The engine must be able to add at least one feature.
	if nSelect >= nFeatures {
		nSelect = nFeatures - 1
	}

	r.logger.Info().
		Int(log.TargetKey, nSelect).
		Float64(log.ScoreKey, aggregate[bestIndex]/float64(nFolds)).
		Msg("selected subset size, refitting on full dataset")

	final := NewRFA(r.estimator,
		WithTargetFeatures(nSelect),
		WithStep(r.step),
		WithLogger(r.logger))
	if err := final.Fit(X, y); err != nil {
		return err
	}

	// Mean score per subset size, oriented from the largest evaluated
	// subset (index 0) toward the smallest.
	grid := make([]float64, length)
	for j := 0; j < length; j++ {
		grid[j] = aggregate[length-1-j] / float64(cv.NSplits())
	}

	r.final = final
	r.gridScores_ = grid
	r.state.SetDimensions(nFeatures, rows)
	r.state.SetFitted()
	return nil
}

// GridScores returns the aggregated held-out scores normalized by the
// number of folds. GridScores()[0] is the mean score of the largest
// evaluated subset; increasing indices correspond to smaller subsets.
func (r *RFACV) GridScores() ([]float64, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFACV", "GridScores")
	}
	return append([]float64(nil), r.gridScores_...), nil
}

// Support returns the selected-feature mask of the final full-dataset run.
func (r *RFACV) Support() ([]bool, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFACV", "Support")
	}
	return r.final.Support()
}

// Ranking returns the feature ranking of the final full-dataset run.
func (r *RFACV) Ranking() ([]int, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFACV", "Ranking")
	}
	return r.final.Ranking()
}

// NFeatures returns the number of features selected by cross-validation.
func (r *RFACV) NFeatures() (int, error) {
	if !r.state.IsFitted() {
		return 0, errors.NewNotFittedError("RFACV", "NFeatures")
	}
	return r.final.NFeatures()
}

// Estimator returns the estimator fitted on the selected features of the
// full dataset.
func (r *RFACV) Estimator() (model.Estimator, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFACV", "Estimator")
	}
	return r.final.Estimator()
}

// Transform reduces X to the selected feature columns.
func (r *RFACV) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFACV", "Transform")
	}
	return r.final.Transform(X)
}

// Predict reduces X to the selected features and predicts with the fitted
// estimator.
func (r *RFACV) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFACV", "Predict")
	}
	return r.final.Predict(X)
}

// PredictProba reduces X to the selected features and forwards to the
// fitted estimator's probability estimates.
func (r *RFACV) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFACV", "PredictProba")
	}
	return r.final.PredictProba(X)
}

// DecisionFunction reduces X to the selected features and forwards to the
// fitted estimator's decision signal.
func (r *RFACV) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFACV", "DecisionFunction")
	}
	return r.final.DecisionFunction(X)
}

// Score reduces X to the selected features and returns the fitted
// estimator's own score on it.
func (r *RFACV) Score(X, y mat.Matrix) (float64, error) {
	if !r.state.IsFitted() {
		return 0, errors.NewNotFittedError("RFACV", "Score")
	}
	return r.final.Score(X, y)
}
