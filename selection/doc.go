// Package selection implements recursive feature addition (RFA): feature
// ranking that repeatedly fits an estimator on the remaining candidate
// features and greedily moves the currently most important ones into a
// selected set. RFACV wraps the same engine with cross-validation to pick
// the subset size that maximizes mean held-out score.
//
// Any estimator can drive the selection as long as it can be cloned into a
// fresh unfit copy and, once fitted, exposes an importance signal through
// either the model.CoefExposer or the model.ImportanceExposer capability.
//
// Example:
//
//	X, y, _ := datasets.MakeFriedman1(50, 10, 0, 0)
//	sel := selection.NewRFA(linear.NewRidgeRegression(), selection.WithTargetFeatures(5))
//	if err := sel.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	support, _ := sel.Support()
//	ranking, _ := sel.Ranking()
package selection
