package selection

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/core/model"
	"github.com/scigo-ml/rfa/datasets"
	"github.com/scigo-ml/rfa/linear"
	"github.com/scigo-ml/rfa/pkg/errors"
)

// descending importance pattern: feature 0 is always ranked best on any
// candidate subset.
func descendingRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = float64(n - i)
	}
	return row
}

func TestRFASingleStepSelection(t *testing.T) {
	// 10 features, stop at a candidate pool of 5, one feature per
	// iteration: five single-feature addition iterations.
	X := constantRows(6, descendingRow(10))
	y := columnOf(6, 1)

	sel := NewRFA(&rowCoefEstimator{}, WithTargetFeatures(5), WithStep(1))
	if err := sel.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	support, err := sel.Support()
	if err != nil {
		t.Fatalf("Support failed: %v", err)
	}
	wantSupport := []bool{true, true, true, true, true, false, false, false, false, false}
	for i, v := range support {
		if v != wantSupport[i] {
			t.Errorf("support[%d] = %v, want %v", i, v, wantSupport[i])
		}
	}

	n, err := sel.NFeatures()
	if err != nil {
		t.Fatalf("NFeatures failed: %v", err)
	}
	if n != 5 {
		t.Errorf("NFeatures = %d, want 5", n)
	}

	ranking, err := sel.Ranking()
	if err != nil {
		t.Fatalf("Ranking failed: %v", err)
	}
	// Feature 0 was added first (rank 5), feature 4 last (rank 1); the
	// never-added features share rank 6, so rank 1 is unique.
	wantRanking := []int{5, 4, 3, 2, 1, 6, 6, 6, 6, 6}
	for i, r := range ranking {
		if r != wantRanking[i] {
			t.Errorf("ranking[%d] = %d, want %d", i, r, wantRanking[i])
		}
	}
	ones := 0
	for _, r := range ranking {
		if r == 1 {
			ones++
		}
	}
	if ones != 1 {
		t.Errorf("exactly one feature should hold rank 1, got %d", ones)
	}
}

func TestRFABatchSizeClamping(t *testing.T) {
	// 10 features, pool floor 2, step 3: batch sizes 3, 3, 2 as the pool
	// shrinks 10 -> 7 -> 4 -> 2.
	X := constantRows(5, descendingRow(10))
	y := columnOf(5, 1)

	sel := NewRFA(&rowCoefEstimator{}, WithTargetFeatures(2), WithStep(3))
	if err := sel.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	n, _ := sel.NFeatures()
	if n != 8 {
		t.Errorf("NFeatures = %d, want 8", n)
	}

	ranking, _ := sel.Ranking()
	// Three batches: {0,1,2}, {3,4,5}, {6,7}; the final two features are
	// never added.
	wantRanking := []int{3, 3, 3, 2, 2, 2, 1, 1, 4, 4}
	for i, r := range ranking {
		if r != wantRanking[i] {
			t.Errorf("ranking[%d] = %d, want %d", i, r, wantRanking[i])
		}
	}
}

func TestRFAFractionalStep(t *testing.T) {
	// step 0.3 on 10 features resolves to 3 and behaves like step=3.
	X := constantRows(5, descendingRow(10))
	y := columnOf(5, 1)

	a := NewRFA(&rowCoefEstimator{}, WithTargetFeatures(2), WithStep(0.3))
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	b := NewRFA(&rowCoefEstimator{}, WithTargetFeatures(2), WithStep(3))
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	ra, _ := a.Ranking()
	rb, _ := b.Ranking()
	for i := range ra {
		if ra[i] != rb[i] {
			t.Errorf("fractional step diverged from integer step at %d: %d vs %d", i, ra[i], rb[i])
		}
	}
}

func TestResolveStep(t *testing.T) {
	tests := []struct {
		step      float64
		nFeatures int
		want      int
		wantErr   bool
	}{
		{1, 10, 1, false},
		{3, 10, 3, false},
		{0.3, 10, 3, false},
		{0.05, 10, 1, false}, // floor would be 0, clamped to 1
		{0.5, 7, 3, false},
		{0, 10, 0, true},
		{-2, 10, 0, true},
	}
	for _, tt := range tests {
		got, err := resolveStep(tt.step, tt.nFeatures)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveStep(%v, %d): expected error", tt.step, tt.nFeatures)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveStep(%v, %d) failed: %v", tt.step, tt.nFeatures, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveStep(%v, %d) = %d, want %d", tt.step, tt.nFeatures, got, tt.want)
		}
	}
}

func TestRFAInvalidStepFailsBeforeAnyFit(t *testing.T) {
	X := constantRows(4, descendingRow(6))
	y := columnOf(4, 1)

	sel := NewRFA(&failingEstimator{}, WithTargetFeatures(2), WithStep(0))
	err := sel.Fit(X, y)
	if err == nil {
		t.Fatal("expected step validation error")
	}
	var ve *errors.ValueError
	if !errors.As(err, &ve) {
		// The failing estimator was never reached: the configuration
		// error short-circuits before the loop.
		t.Errorf("expected ValueError, got %v", err)
	}
}

func TestRFADefaultTargetIsHalf(t *testing.T) {
	X := constantRows(4, descendingRow(10))
	y := columnOf(4, 1)

	sel := NewRFA(&rowCoefEstimator{})
	if err := sel.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	n, _ := sel.NFeatures()
	if n != 5 {
		t.Errorf("NFeatures with default target = %d, want 5", n)
	}
}

func TestRFANoImportanceSignal(t *testing.T) {
	X := constantRows(4, descendingRow(6))
	y := columnOf(4, 1)

	sel := NewRFA(&opaqueEstimator{}, WithTargetFeatures(3))
	err := sel.Fit(X, y)
	if err == nil {
		t.Fatal("expected configuration error for estimator without importance signal")
	}
	var ie *errors.ImportanceError
	if !errors.As(err, &ie) {
		t.Errorf("expected ImportanceError, got %v", err)
	}
	if _, serr := sel.Support(); serr == nil {
		t.Error("selector must not report fitted state after a failed fit")
	}
}

func TestRFAEstimatorFitFailurePropagates(t *testing.T) {
	X := constantRows(4, descendingRow(6))
	y := columnOf(4, 1)

	sel := NewRFA(&failingEstimator{}, WithTargetFeatures(3))
	if err := sel.Fit(X, y); err == nil {
		t.Fatal("expected fit failure to propagate")
	}
}

func TestRFANonFiniteImportancesZeroed(t *testing.T) {
	// Feature 0 carries a NaN coefficient and must rank below every
	// finite competitor, without surfacing an error.
	X := constantRows(4, []float64{math.NaN(), 5, 1})
	y := columnOf(4, 1)

	sel := NewRFA(&rowCoefEstimator{}, WithTargetFeatures(1), WithStep(1))
	if err := sel.Fit(X, y); err != nil {
		t.Fatalf("Fit should recover from non-finite importances: %v", err)
	}

	support, _ := sel.Support()
	if support[0] {
		t.Error("NaN-coefficient feature should never be added")
	}
	if !support[1] || !support[2] {
		t.Errorf("finite features should be selected, got %v", support)
	}
}

func TestRFAMultiOutputCoefReduction(t *testing.T) {
	// Coefficients are taken from the first two rows of X. Feature 0 has
	// per-output coefficients (1, 5) -> importance 26; feature 1 has
	// (2, 0) -> importance 4.
	X := mat.NewDense(3, 2, []float64{
		1, 2,
		5, 0,
		0, 0,
	})
	y := columnOf(3, 1)

	sel := NewRFA(&multiCoefEstimator{}, WithTargetFeatures(1), WithStep(1))
	if err := sel.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	support, _ := sel.Support()
	if !support[0] || support[1] {
		t.Errorf("expected feature 0 selected via summed squared coefficients, got %v", support)
	}
}

func TestRFAImportanceCapabilityFallback(t *testing.T) {
	X := constantRows(4, descendingRow(6))
	y := columnOf(4, 1)

	sel := NewRFA(&importanceEstimator{}, WithTargetFeatures(3), WithStep(1))
	if err := sel.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	support, _ := sel.Support()
	want := []bool{true, true, true, false, false, false}
	for i, v := range support {
		if v != want[i] {
			t.Errorf("support[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestRFATieBreakByFeatureIndex(t *testing.T) {
	// All importances equal: ties resolve to ascending feature index,
	// making runs fully deterministic.
	X := constantRows(4, []float64{1, 1, 1, 1})
	y := columnOf(4, 1)

	run := func() []bool {
		sel := NewRFA(&rowCoefEstimator{}, WithTargetFeatures(2), WithStep(1))
		if err := sel.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		support, _ := sel.Support()
		return support
	}

	first := run()
	second := run()
	want := []bool{true, true, false, false}
	for i := range want {
		if first[i] != want[i] {
			t.Errorf("support[%d] = %v, want %v", i, first[i], want[i])
		}
		if first[i] != second[i] {
			t.Error("repeated runs should produce identical selections")
		}
	}
}

func TestRFAScoreHookOrdering(t *testing.T) {
	// The hook fires once at least one feature has been added, scoring
	// the subset as of the previous iteration, plus once after the final
	// fit.
	X := constantRows(3, descendingRow(4))
	y := columnOf(3, 1)

	var seen [][]int
	sel := NewRFA(&rowCoefEstimator{}, WithTargetFeatures(1), WithStep(1))
	scores, err := sel.fit(X, y, func(fitted model.Estimator, features []int) (float64, error) {
		if fitted == nil {
			t.Error("hook received nil estimator")
		}
		seen = append(seen, append([]int(nil), features...))
		return float64(len(features)), nil
	})
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	// Three iterations shrink the pool 4 -> 3 -> 2 -> 1. The hook skips
	// the first iteration (nothing added yet), scores {0} and {0, 1}
	// before the second and third fits, then scores the final subset.
	wantSeen := [][]int{{0}, {0, 1}, {0, 1, 2}}
	if len(seen) != len(wantSeen) {
		t.Fatalf("hook fired %d times, want %d", len(seen), len(wantSeen))
	}
	for i, features := range seen {
		if len(features) != len(wantSeen[i]) {
			t.Fatalf("call %d saw %v, want %v", i, features, wantSeen[i])
		}
		for j, f := range features {
			if f != wantSeen[i][j] {
				t.Errorf("call %d saw %v, want %v", i, features, wantSeen[i])
			}
		}
	}

	wantScores := []float64{1, 2, 3}
	if len(scores) != len(wantScores) {
		t.Fatalf("trajectory length = %d, want %d", len(scores), len(wantScores))
	}
	for i, s := range scores {
		if s != wantScores[i] {
			t.Errorf("scores[%d] = %v, want %v", i, s, wantScores[i])
		}
	}

	recorded, err := sel.Scores()
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}
	if len(recorded) != len(wantScores) {
		t.Errorf("Scores length = %d, want %d", len(recorded), len(wantScores))
	}
}

func TestRFAValidation(t *testing.T) {
	X := constantRows(4, descendingRow(6))
	y := columnOf(4, 1)

	t.Run("target too large", func(t *testing.T) {
		sel := NewRFA(&rowCoefEstimator{}, WithTargetFeatures(6))
		var ve *errors.ValidationError
		if err := sel.Fit(X, y); !errors.As(err, &ve) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("target negative", func(t *testing.T) {
		sel := NewRFA(&rowCoefEstimator{}, WithTargetFeatures(-1))
		var ve *errors.ValidationError
		if err := sel.Fit(X, y); !errors.As(err, &ve) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("label shape mismatch", func(t *testing.T) {
		sel := NewRFA(&rowCoefEstimator{}, WithTargetFeatures(3))
		var de *errors.DimensionError
		if err := sel.Fit(X, columnOf(3, 1)); !errors.As(err, &de) {
			t.Errorf("expected DimensionError, got %v", err)
		}
	})

	t.Run("accessors before fit", func(t *testing.T) {
		sel := NewRFA(&rowCoefEstimator{})
		var nfe *errors.NotFittedError
		if _, err := sel.Support(); !errors.As(err, &nfe) {
			t.Errorf("expected NotFittedError, got %v", err)
		}
		if _, err := sel.Transform(X); !errors.As(err, &nfe) {
			t.Errorf("expected NotFittedError, got %v", err)
		}
	})
}

func TestRFATransformAndForwarding(t *testing.T) {
	// y depends only on features 0 and 2; ridge coefficients expose that.
	X, y, _, err := datasets.MakeRegression(40, 5, 2, 0.1, 3)
	if err != nil {
		t.Fatalf("MakeRegression failed: %v", err)
	}

	sel := NewRFA(linear.NewRidgeRegression(linear.WithAlpha(1e-6)), WithTargetFeatures(3), WithStep(1))
	if err := sel.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	reduced, err := sel.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	rows, cols := reduced.Dims()
	n, _ := sel.NFeatures()
	if rows != 40 || cols != n {
		t.Errorf("Transform dims = (%d, %d), want (40, %d)", rows, cols, n)
	}

	pred, err := sel.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	pr, pc := pred.Dims()
	if pr != 40 || pc != 1 {
		t.Errorf("Predict dims = (%d, %d), want (40, 1)", pr, pc)
	}

	score, err := sel.Score(X, y)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score < 0.9 {
		t.Errorf("in-sample R² = %v, want > 0.9 on near-noiseless data", score)
	}

	// The ridge regressor exposes no probability estimates.
	var ue *errors.UnsupportedOperationError
	if _, err := sel.PredictProba(X); !errors.As(err, &ue) {
		t.Errorf("expected UnsupportedOperationError, got %v", err)
	}
}

func TestRFARecoversInformativeFeatures(t *testing.T) {
	X, y, _, err := datasets.MakeRegression(60, 8, 3, 1.0, 21)
	if err != nil {
		t.Fatalf("MakeRegression failed: %v", err)
	}

	sel := NewRFA(linear.NewRidgeRegression(linear.WithAlpha(1e-4)), WithTargetFeatures(5), WithStep(1))
	if err := sel.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	support, _ := sel.Support()
	for j := 0; j < 3; j++ {
		if !support[j] {
			t.Errorf("informative feature %d not selected; support = %v", j, support)
		}
	}
}
