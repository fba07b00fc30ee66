// Package rfa provides recursive feature addition for Go machine learning
// pipelines: an iterative selector that grows a feature subset by
// repeatedly fitting an estimator and promoting the features it reports
// as most important.
//
// Two selectors are provided. RFA runs the addition loop down to a
// configured subset size; RFACV wraps it in cross-validation and picks
// the subset size with the best mean held-out score before refitting on
// the full dataset.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/scigo-ml/rfa/linear"
//	    "github.com/scigo-ml/rfa/selection"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 3, []float64{
//	        1, 0.1, 5,
//	        2, 0.2, 3,
//	        3, 0.3, 8,
//	        4, 0.4, 1,
//	    })
//	    y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})
//
//	    selector := selection.NewRFA(linear.NewLinearRegression(),
//	        selection.WithTargetFeatures(1))
//	    if err := selector.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    support, _ := selector.Support()
//	    fmt.Println("Selected:", support)
//	}
//
// # Packages
//
//   - selection: the RFA and RFACV selectors
//   - linear: linear estimators usable as selection drivers
//   - metrics: evaluation metrics and held-out scorers
//   - modelselection: cross-validation splitters and data views
//   - datasets: synthetic dataset generators for demos and tests
//   - core/model: estimator interfaces and capability probes
//   - core/parallel: bounded worker pool for fold evaluation
//
// Any estimator can drive selection as long as it can be cloned, fitted,
// and exposes either linear coefficients or a feature-importance vector.
package rfa
