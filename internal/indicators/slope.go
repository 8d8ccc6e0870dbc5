package indicators

import "errors"

// ErrZeroBase is returned by PercentageDifference when the starting value is 0.
var ErrZeroBase = errors.New("percentage difference from zero is undefined")

// Slope returns the difference between the latest element and the element n-1
// positions back, with n clamped to [1, len(data)]. Fewer than two points or
// n < 2 yield 0.
func Slope(data []float64, n int) float64 {
	if len(data) < 2 || n < 2 {
		return 0
	}
	if n > len(data) {
		n = len(data)
	}
	return data[len(data)-1] - data[len(data)-n]
}

// Curvature returns the discrete second difference over the last three
// elements: the slope of two consecutive one-step slopes. Fewer than three
// points yield 0.
func Curvature(data []float64) float64 {
	if len(data) < 3 {
		return 0
	}
	n := len(data)
	first := data[n-2] - data[n-3]
	second := data[n-1] - data[n-2]
	return second - first
}

// PercentageDifference returns the percent change from one value to another,
// relative to the magnitude of the starting value.
func PercentageDifference(from, to float64) (float64, error) {
	if from == 0 {
		return 0, ErrZeroBase
	}
	base := from
	if base < 0 {
		base = -base
	}
	return 100 * (to - from) / base, nil
}
