// Package datasets provides deterministic synthetic data generators for
// tests and examples.
package datasets

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/pkg/errors"
)

// MakeFriedman1 generates the Friedman #1 regression problem:
//
//	y = 10·sin(π·x0·x1) + 20·(x2 − 0.5)² + 10·x3 + 5·x4 + noise·N(0,1)
//
// Inputs are uniform on [0, 1]. Only the first five features are
// informative; the remaining nFeatures − 5 are pure noise, which makes the
// dataset a natural fixture for feature selection.
func MakeFriedman1(nSamples, nFeatures int, noise float64, seed uint64) (*mat.Dense, *mat.Dense, error) {
	if nSamples <= 0 {
		return nil, nil, errors.NewValidationError("nSamples", "must be positive", nSamples)
	}
	if nFeatures < 5 {
		return nil, nil, errors.NewValidationError("nFeatures", "must be at least 5", nFeatures)
	}

	r := rand.New(rand.NewPCG(seed, seed))

	X := mat.NewDense(nSamples, nFeatures, nil)
	y := mat.NewDense(nSamples, 1, nil)

	for i := 0; i < nSamples; i++ {
		for j := 0; j < nFeatures; j++ {
			X.Set(i, j, r.Float64())
		}
		target := 10*math.Sin(math.Pi*X.At(i, 0)*X.At(i, 1)) +
			20*math.Pow(X.At(i, 2)-0.5, 2) +
			10*X.At(i, 3) +
			5*X.At(i, 4)
		if noise > 0 {
			target += noise * r.NormFloat64()
		}
		y.Set(i, 0, target)
	}

	return X, y, nil
}

// MakeRegression generates a linear regression problem with a known sparse
// coefficient vector: the first nInformative features carry non-zero
// weights, the rest are noise columns. It returns X, y and the true
// coefficients.
func MakeRegression(nSamples, nFeatures, nInformative int, noise float64, seed uint64) (*mat.Dense, *mat.Dense, []float64, error) {
	if nSamples <= 0 {
		return nil, nil, nil, errors.NewValidationError("nSamples", "must be positive", nSamples)
	}
	if nInformative <= 0 || nInformative > nFeatures {
		return nil, nil, nil, errors.NewValidationError("nInformative", "must be in [1, nFeatures]", nInformative)
	}

	r := rand.New(rand.NewPCG(seed, seed))

	coef := make([]float64, nFeatures)
	for j := 0; j < nInformative; j++ {
		// Weights well away from zero so importance ordering is stable.
		coef[j] = 10 + 90*r.Float64()
		if r.Float64() < 0.5 {
			coef[j] = -coef[j]
		}
	}

	X := mat.NewDense(nSamples, nFeatures, nil)
	y := mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		var target float64
		for j := 0; j < nFeatures; j++ {
			v := r.NormFloat64()
			X.Set(i, j, v)
			target += v * coef[j]
		}
		if noise > 0 {
			target += noise * r.NormFloat64()
		}
		y.Set(i, 0, target)
	}

	return X, y, coef, nil
}
