// Package floatutils provides utilities for working with floats
package floatutils

import "math"

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ArgMax returns the index of the maximum value in a slice of float64.
// If multiple equal max values exist, the first one is returned, so
// that earlier indices take priority when breaking ties.
func ArgMax(values []float64) int {
	max, idx := values[0], 0
	for i, value := range values {
		if value > max {
			max = value
			idx = i
		}
	}
	return idx
}

// MaxSlice gets the maximum value and indices of the values in a slice
// of float64 which lie within tol of the maximum.
func MaxSlice(values []float64, tol float64) (max float64, indices []int) {
	max = values[ArgMax(values)]
	for i, value := range values {
		if max-value <= tol {
			indices = append(indices, i)
		}
	}
	return
}
