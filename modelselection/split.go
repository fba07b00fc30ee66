// Package modelselection provides cross-validation splitters and the
// train/test view extraction used by the cross-validated selector.
package modelselection

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Splitter defines the interface for cross-validation splitters.
type Splitter interface {
	// Split generates the ordered train/test index pairs for X and y.
	Split(X, y mat.Matrix) []Fold
	// NSplits returns the number of folds Split will produce.
	NSplits() int
}

// Fold represents a single train/test partition.
type Fold struct {
	Train []int
	Test  []int
}

// KFold implements k-fold cross-validation.
type KFold struct {
	NFolds     int
	Shuffle    bool
	RandomSeed int
}

// NewKFold creates a new k-fold splitter.
func NewKFold(nFolds int, shuffle bool, randomSeed int) *KFold {
	if nFolds < 2 {
		nFolds = 5 // Default to 5-fold
	}
	return &KFold{
		NFolds:     nFolds,
		Shuffle:    shuffle,
		RandomSeed: randomSeed,
	}
}

// NSplits returns the number of splits.
func (kf *KFold) NSplits() int {
	return kf.NFolds
}

// Split generates train/test indices for each fold.
func (kf *KFold) Split(X, _ mat.Matrix) []Fold {
	nSamples, _ := X.Dims()

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}

	if kf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.RandomSeed), uint64(kf.RandomSeed)))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NFolds)
	foldSize := nSamples / kf.NFolds
	remainder := nSamples % kf.NFolds

	currentIdx := 0
	for i := 0; i < kf.NFolds; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		testIndices := make([]int, testSize)
		copy(testIndices, indices[currentIdx:currentIdx+testSize])

		testSet := make(map[int]bool, testSize)
		for _, idx := range testIndices {
			testSet[idx] = true
		}

		trainIndices := make([]int, 0, nSamples-testSize)
		for j := 0; j < nSamples; j++ {
			if !testSet[indices[j]] {
				trainIndices = append(trainIndices, indices[j])
			}
		}

		folds[i] = Fold{Train: trainIndices, Test: testIndices}
		currentIdx += testSize
	}

	return folds
}

// StratifiedKFold implements stratified k-fold cross-validation: each
// fold's test set preserves the class proportions of y.
type StratifiedKFold struct {
	NFolds     int
	Shuffle    bool
	RandomSeed int
}

// NewStratifiedKFold creates a new stratified k-fold splitter.
func NewStratifiedKFold(nFolds int, shuffle bool, randomSeed int) *StratifiedKFold {
	if nFolds < 2 {
		nFolds = 5
	}
	return &StratifiedKFold{
		NFolds:     nFolds,
		Shuffle:    shuffle,
		RandomSeed: randomSeed,
	}
}

// NSplits returns the number of splits.
func (skf *StratifiedKFold) NSplits() int {
	return skf.NFolds
}

// Split generates stratified train/test indices for each fold.
func (skf *StratifiedKFold) Split(X, y mat.Matrix) []Fold {
	nSamples, _ := X.Dims()

	// Group indices by class, preserving first-seen label order for
	// determinism.
	classIndices := make(map[float64][]int)
	var labels []float64
	for i := 0; i < nSamples; i++ {
		label := y.At(i, 0)
		if _, seen := classIndices[label]; !seen {
			labels = append(labels, label)
		}
		classIndices[label] = append(classIndices[label], i)
	}

	if skf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(skf.RandomSeed), uint64(skf.RandomSeed)))
		for _, label := range labels {
			indices := classIndices[label]
			r.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
	}

	folds := make([]Fold, skf.NFolds)

	// Distribute each class across folds.
	for _, label := range labels {
		indices := classIndices[label]
		nClass := len(indices)
		foldSize := nClass / skf.NFolds
		remainder := nClass % skf.NFolds

		currentIdx := 0
		for i := 0; i < skf.NFolds; i++ {
			testSize := foldSize
			if i < remainder {
				testSize++
			}
			for j := 0; j < testSize && currentIdx < nClass; j++ {
				folds[i].Test = append(folds[i].Test, indices[currentIdx])
				currentIdx++
			}
		}
	}

	// Build train sets from everything not in the fold's test set.
	for i := 0; i < skf.NFolds; i++ {
		testSet := make(map[int]bool, len(folds[i].Test))
		for _, idx := range folds[i].Test {
			testSet[idx] = true
		}
		for j := 0; j < nSamples; j++ {
			if !testSet[j] {
				folds[i].Train = append(folds[i].Train, j)
			}
		}
	}

	return folds
}
