package errors

import (
	"math"
)

// SanitizeValues replaces every NaN or Inf entry of values with 0 in place
// and returns the number of substitutions. This is the local recovery used
// for importance signals: the anomaly is never surfaced as an error.
func SanitizeValues(values []float64) int {
	count := 0
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			values[i] = 0
			count++
		}
	}
	return count
}

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Newf("rfa: %s produced a non-finite value: %v", operation, value)
	}
	return nil
}

// SafeDivide performs division with protection against division by zero.
// Returns 0 if the denominator is zero or close to zero.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}
