package selection

import (
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/core/model"
	"github.com/scigo-ml/rfa/modelselection"
	"github.com/scigo-ml/rfa/pkg/errors"
	"github.com/scigo-ml/rfa/pkg/log"
)

// RFA selects features by recursive feature addition. Starting from an
// empty selected set, it repeatedly fits a clone of the prototype
// estimator on the remaining candidate features, ranks them by importance
// and moves the best step features into the selected set, until the
// candidate pool has shrunk to the configured floor.
type RFA struct {
	state  *model.StateManager
	logger zerolog.Logger

	// Hyperparameters
	estimator         model.Estimator
	nFeaturesToSelect int     // candidate-pool floor; 0 means n_features/2
	step              float64 // >= 1: feature count; in (0,1): fraction of n_features

	// Fitted attributes
	support_   []bool
	ranking_   []int
	nFeatures_ int
	estimator_ model.Estimator
	scores_    []float64
}

// RFAOption configures an RFA selector.
type RFAOption func(*RFA)

// WithTargetFeatures sets the candidate-pool size at which the addition
// loop stops. Every feature moved out of the pool before that point is
// part of the selected set. 0 (the default) means half of the features.
func WithTargetFeatures(n int) RFAOption {
	return func(r *RFA) {
		r.nFeaturesToSelect = n
	}
}

// WithStep sets how many features are moved per iteration: a value >= 1
// is an absolute count, a value in (0, 1) is a fraction of the total
// feature count resolved as max(1, floor(step * n_features)).
func WithStep(step float64) RFAOption {
	return func(r *RFA) {
		r.step = step
	}
}

// WithLogger replaces the selector's logger.
func WithLogger(logger zerolog.Logger) RFAOption {
	return func(r *RFA) {
		r.logger = logger
	}
}

// NewRFA creates a new RFA selector driven by the given prototype
// estimator. The prototype itself is never fitted; a fresh clone is made
// before every fit.
func NewRFA(estimator model.Estimator, opts ...RFAOption) *RFA {
	r := &RFA{
		state:     model.NewStateManager(),
		logger:    log.With("RFA"),
		estimator: estimator,
		step:      1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// stepScore is the hook invoked by fit to record a held-out score for the
// currently selected subset. It receives an estimator freshly fitted on
// those features.
type stepScore func(fitted model.Estimator, features []int) (float64, error)

// Fit runs the addition loop on X and y and fits the underlying estimator
// on the selected features.
func (r *RFA) Fit(X, y mat.Matrix) error {
	_, err := r.fit(X, y, nil)
	return err
}

func (r *RFA) fit(X, y mat.Matrix, hook stepScore) ([]float64, error) {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "RFA.Fit")
	}
	if yRows != rows {
		return nil, errors.NewDimensionError("RFA.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return nil, errors.NewDimensionError("RFA.Fit", 1, yCols, 1)
	}
	if r.estimator == nil {
		return nil, errors.NewValidationError("estimator", "must not be nil", nil)
	}

	nFeatures := cols
	target := r.nFeaturesToSelect
	if target == 0 {
		target = nFeatures / 2
		if target < 1 {
			target = 1
		}
	}
	if target < 1 {
		return nil, errors.NewValidationError("nFeaturesToSelect", "must be at least 1", target)
	}
	if target >= nFeatures {
		return nil, errors.NewValidationError("nFeaturesToSelect",
			"must be smaller than the number of features so at least one feature can be added", target)
	}

	step, err := resolveStep(r.step, nFeatures)
	if err != nil {
		return nil, err
	}

	r.logger.Info().
		Int(log.SamplesKey, rows).
		Int(log.FeaturesKey, nFeatures).
		Int(log.StepKey, step).
		Int(log.TargetKey, target).
		Str(log.OperationKey, "fit").
		Msg("starting recursive feature addition")

	state := newIterationState(nFeatures)
	iterations := 0

	for state.supportCount() > target {
		iterations++
		remaining := state.remainingIndices()
		added := state.addedIndices()

		// Score the subset as of the previous iteration, before this
		// iteration's fit.
		if hook != nil && len(added) > 0 {
			score, err := r.fitAndScore(X, y, added, hook)
			if err != nil {
				return nil, err
			}
			state = state.withScore(score)
		}

		r.logger.Debug().
			Int(log.IterationKey, iterations).
			Int(log.RemainingKey, len(remaining)).
			Int(log.AddedKey, len(added)).
			Msg("fitting estimator on remaining candidates")

		est := r.estimator.Clone()
		XRemaining, err := modelselection.TakeColumns(X, remaining)
		if err != nil {
			return nil, err
		}
		if err := est.Fit(XRemaining, y); err != nil {
			return nil, errors.Wrapf(err, "RFA: fitting on %d candidate features", len(remaining))
		}

		importances, err := extractImportances(est, len(remaining))
		if err != nil {
			return nil, err
		}
		order := rankDescending(importances)

		batchSize := state.supportCount() - target
		if step < batchSize {
			batchSize = step
		}
		batch := make([]int, batchSize)
		for k := 0; k < batchSize; k++ {
			batch[k] = remaining[order[k]]
		}

		state = state.withBatchAdded(batch)
	}

	// Final fit on the complete selected set.
	selected := state.addedIndices()
	XSelected, err := modelselection.TakeColumns(X, selected)
	if err != nil {
		return nil, err
	}
	fitted := r.estimator.Clone()
	if err := fitted.Fit(XSelected, y); err != nil {
		return nil, errors.Wrapf(err, "RFA: final fit on %d selected features", len(selected))
	}
	if hook != nil {
		score, err := hook(fitted, selected)
		if err != nil {
			return nil, err
		}
		state = state.withScore(score)
	}

	r.support_ = append([]bool(nil), state.added...)
	r.ranking_ = state.exposedRanking(iterations)
	r.nFeatures_ = len(selected)
	r.estimator_ = fitted
	r.scores_ = state.scores
	r.state.SetDimensions(nFeatures, rows)
	r.state.SetFitted()

	r.logger.Info().
		Int(log.AddedKey, r.nFeatures_).
		Int(log.IterationKey, iterations).
		Msg("recursive feature addition finished")

	return state.scores, nil
}

// fitAndScore clones the prototype, fits it on the given feature columns
// and evaluates the hook with the fitted clone.
func (r *RFA) fitAndScore(X, y mat.Matrix, features []int, hook stepScore) (float64, error) {
	est := r.estimator.Clone()
	XSub, err := modelselection.TakeColumns(X, features)
	if err != nil {
		return 0, err
	}
	if err := est.Fit(XSub, y); err != nil {
		return 0, errors.Wrapf(err, "RFA: fitting on %d selected features", len(features))
	}
	return hook(est, features)
}

// resolveStep turns the configured step into a positive feature count.
func resolveStep(step float64, nFeatures int) (int, error) {
	resolved := int(step)
	if step > 0 && step < 1 {
		resolved = int(step * float64(nFeatures))
		if resolved < 1 {
			resolved = 1
		}
	}
	if resolved <= 0 {
		return 0, errors.NewValueError("RFA", "step must be greater than 0")
	}
	return resolved, nil
}

// Support returns the selected-feature mask: true for every feature moved
// into the selected set during fitting.
func (r *RFA) Support() ([]bool, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFA", "Support")
	}
	return append([]bool(nil), r.support_...), nil
}

// Ranking returns the feature ranking. Rank 1 marks the batch added last
// (the most important features); features never added share the largest
// rank.
func (r *RFA) Ranking() ([]int, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFA", "Ranking")
	}
	return append([]int(nil), r.ranking_...), nil
}

// NFeatures returns the number of selected features.
func (r *RFA) NFeatures() (int, error) {
	if !r.state.IsFitted() {
		return 0, errors.NewNotFittedError("RFA", "NFeatures")
	}
	return r.nFeatures_, nil
}

// Estimator returns the underlying estimator fitted on the selected
// features.
func (r *RFA) Estimator() (model.Estimator, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFA", "Estimator")
	}
	return r.estimator_, nil
}

// Scores returns the held-out score trajectory recorded during fitting,
// or nil when no score hook was active (the public Fit path).
func (r *RFA) Scores() ([]float64, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFA", "Scores")
	}
	return append([]float64(nil), r.scores_...), nil
}

// Transform reduces X to the selected feature columns.
func (r *RFA) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("RFA", "Transform")
	}
	_, cols := X.Dims()
	nFeatures, _ := r.state.GetDimensions()
	if cols != nFeatures {
		return nil, errors.NewDimensionError("RFA.Transform", nFeatures, cols, 1)
	}
	selected := make([]int, 0, r.nFeatures_)
	for i, v := range r.support_ {
		if v {
			selected = append(selected, i)
		}
	}
	return modelselection.TakeColumns(X, selected)
}

// Predict reduces X to the selected features and predicts with the fitted
// estimator. Returns an UnsupportedOperationError when the estimator
// cannot predict.
func (r *RFA) Predict(X mat.Matrix) (mat.Matrix, error) {
	reduced, err := r.Transform(X)
	if err != nil {
		return nil, err
	}
	p, ok := r.estimator_.(model.Predictor)
	if !ok {
		return nil, errors.NewUnsupportedOperationError("RFA", "Predict")
	}
	return p.Predict(reduced)
}

// PredictProba reduces X to the selected features and forwards to the
// fitted estimator's probability estimates.
func (r *RFA) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	reduced, err := r.Transform(X)
	if err != nil {
		return nil, err
	}
	p, ok := r.estimator_.(model.ProbaPredictor)
	if !ok {
		return nil, errors.NewUnsupportedOperationError("RFA", "PredictProba")
	}
	return p.PredictProba(reduced)
}

// DecisionFunction reduces X to the selected features and forwards to the
// fitted estimator's decision signal.
func (r *RFA) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	reduced, err := r.Transform(X)
	if err != nil {
		return nil, err
	}
	d, ok := r.estimator_.(model.DecisionFunctioner)
	if !ok {
		return nil, errors.NewUnsupportedOperationError("RFA", "DecisionFunction")
	}
	return d.DecisionFunction(reduced)
}

// Score reduces X to the selected features and returns the fitted
// estimator's own score on it.
func (r *RFA) Score(X, y mat.Matrix) (float64, error) {
	reduced, err := r.Transform(X)
	if err != nil {
		return 0, err
	}
	s, ok := r.estimator_.(model.Scorer)
	if !ok {
		return 0, errors.NewUnsupportedOperationError("RFA", "Score")
	}
	return s.Score(reduced, y)
}
