package indicators

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMovingAverageClampsWindow(t *testing.T) {
	data := []float64{1, 2, 3, 4}

	for _, n := range []int{0, -1, -100} {
		if got, want := MovingAverage(data, n), MovingAverage(data, 1); !approx(got, want) {
			t.Errorf("n=%d: got %v, want the n=1 value %v", n, got, want)
		}
	}
	if got := MovingAverage(data, 1); !approx(got, 4) {
		t.Errorf("n=1: got %v, want last element 4", got)
	}

	whole := (1.0 + 2 + 3 + 4) / 4
	for _, n := range []int{4, 5, 100} {
		if got := MovingAverage(data, n); !approx(got, whole) {
			t.Errorf("n=%d: got %v, want whole-series mean %v", n, got, whole)
		}
	}

	if got := MovingAverage(data, 2); !approx(got, 3.5) {
		t.Errorf("n=2: got %v, want 3.5", got)
	}
}

func TestMovingAverageEmptyInput(t *testing.T) {
	if got := MovingAverage(nil, 5); got != 0 {
		t.Errorf("empty input: got %v, want 0", got)
	}
}

func TestMovingAverageSeriesIsCausal(t *testing.T) {
	data := []float64{2, 4, 6, 8}
	series := MovingAverageSeries(data, 2)
	if len(series) != len(data) {
		t.Fatalf("length %d, want %d", len(series), len(data))
	}
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if !approx(series[i], want[i]) {
			t.Errorf("series[%d] = %v, want %v", i, series[i], want[i])
		}
	}

	// Element i must only depend on data[0..i].
	for i := range data {
		prefix := MovingAverageSeries(data[:i+1], 2)
		if !approx(prefix[i], series[i]) {
			t.Errorf("prefix recompute at %d = %v, want %v", i, prefix[i], series[i])
		}
	}
}

func TestNoDelayMovingAverageConstantInput(t *testing.T) {
	for _, k := range []int{1, 3, 10} {
		data := make([]float64, k)
		for i := range data {
			data[i] = 7.5
		}
		for _, n := range []int{1, 2, 5, 20} {
			if got := NoDelayMovingAverage(data, n); !approx(got, 7.5) {
				t.Errorf("k=%d n=%d: got %v, want 7.5", k, n, got)
			}
			series := NoDelayMovingAverageSeries(data, n)
			for i, v := range series {
				if !approx(v, 7.5) {
					t.Errorf("k=%d n=%d series[%d]: got %v, want 7.5", k, n, i, v)
				}
			}
		}
	}
}

func TestNoDelayMovingAverageEmptyInput(t *testing.T) {
	if got := NoDelayMovingAverage(nil, 10); got != 0 {
		t.Errorf("empty input: got %v, want 0", got)
	}
}

func TestNoDelayMovingAverageSeriesLength(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	series := NoDelayMovingAverageSeries(data, 4)
	if len(series) != len(data) {
		t.Fatalf("length %d, want %d", len(series), len(data))
	}
}
