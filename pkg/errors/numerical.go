package errors

import (
	"fmt"
	"math"
)

// CheckValues returns a ValueError if values contain NaN or Inf. Up to five
// offending values are included in the message.
func CheckValues(operation string, values []float64) error {
	var bad []float64
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, v)
			if len(bad) >= 5 {
				break
			}
		}
	}
	if len(bad) > 0 {
		return NewValueError(operation, fmt.Sprintf("non-finite values detected: %v", bad))
	}
	return nil
}

// CheckMatrix checks all entries of a matrix for NaN or Inf.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return NewValueError(operation, fmt.Sprintf("non-finite value %v at (%d, %d)", v, i, j))
			}
		}
	}
	return nil
}

// SafeDivide divides with protection against a zero denominator.
// Returns 0 when the denominator is zero or nearly zero.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}
