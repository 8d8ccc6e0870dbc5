package indicators

// MovingAverage computes the mean of the last n elements of data.
// The window is clamped to [1, len(data)]: n < 1 behaves as n == 1
// (the latest element) and n > len(data) averages the whole series.
// An empty series yields 0.
func MovingAverage(data []float64, n int) float64 {
	if len(data) == 0 {
		return 0
	}
	n = clampWindow(n, len(data))
	sum := 0.0
	for i := len(data) - n; i < len(data); i++ {
		sum += data[i]
	}
	return sum / float64(n)
}

// MovingAverageSeries computes, for every prefix data[0..i], the moving
// average of that prefix. The result is causal: element i depends only on
// data[0..i]. Length equals len(data).
func MovingAverageSeries(data []float64, n int) []float64 {
	out := make([]float64, len(data))
	for i := range data {
		out[i] = MovingAverage(data[:i+1], n)
	}
	return out
}

// NoDelayMovingAverageSeries applies MovingAverageSeries with window n/2
// forward, then again over the reversed output, and reverses back. The
// symmetric double pass cancels most of the phase lag of a plain trailing
// average.
//
// Interior points of the result depend on data after their own index; only
// the final element is causal. Strategies must not read this series forward
// in time -- use NoDelayMovingAverage for per-day decisions.
func NoDelayMovingAverageSeries(data []float64, n int) []float64 {
	half := n / 2
	forward := MovingAverageSeries(data, half)
	reverse(forward)
	backward := MovingAverageSeries(forward, half)
	reverse(backward)
	return backward
}

// NoDelayMovingAverage returns the last point of the no-delay moving average
// over the trailing n elements of data. Unlike the interior of the full
// series, this value is causal and safe to use inside a strategy. An empty
// series yields 0.
func NoDelayMovingAverage(data []float64, n int) float64 {
	if len(data) == 0 {
		return 0
	}
	n = clampWindow(n, len(data))
	smoothed := NoDelayMovingAverageSeries(data[len(data)-n:], n)
	return smoothed[len(smoothed)-1]
}

func clampWindow(n, length int) int {
	if n < 1 {
		return 1
	}
	if n > length {
		return length
	}
	return n
}

func reverse(data []float64) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}
