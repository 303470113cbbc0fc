package indicator

import (
	"math"
	"time"
)

// nanSeries returns a slice of n NaN values.
func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// rollingMean averages the trailing window values ending at each row.
// A row is NaN until window non-NaN values are present in its window.
func rollingMean(values []float64, window int) []float64 {
	out := nanSeries(len(values))

	sum := 0.0
	valid := 0

	for i, v := range values {
		if !math.IsNaN(v) {
			sum += v
			valid++
		}

		if i >= window {
			if old := values[i-window]; !math.IsNaN(old) {
				sum -= old
				valid--
			}
		}

		if valid == window {
			out[i] = sum / float64(window)
		}
	}

	return out
}

// rollingExtreme returns the rolling minimum (less=true) or maximum over window rows.
func rollingExtreme(values []float64, window int, less bool) []float64 {
	out := nanSeries(len(values))

	for i := window - 1; i < len(values); i++ {
		extreme := values[i-window+1]

		for _, v := range values[i-window+2 : i+1] {
			if math.IsNaN(v) || math.IsNaN(extreme) {
				extreme = math.NaN()

				break
			}

			if (less && v < extreme) || (!less && v > extreme) {
				extreme = v
			}
		}

		out[i] = extreme
	}

	return out
}

// timeWindowMean averages the values whose timestamp falls in (t-d, t] for each row t.
// Rows with no valid value in their window are NaN.
func timeWindowMean(times []time.Time, values []float64, d time.Duration) []float64 {
	out := nanSeries(len(values))

	start := 0
	sum := 0.0
	valid := 0

	for i, v := range values {
		if !math.IsNaN(v) {
			sum += v
			valid++
		}

		for start <= i && !times[start].After(times[i].Add(-d)) {
			if old := values[start]; !math.IsNaN(old) {
				sum -= old
				valid--
			}

			start++
		}

		if valid > 0 {
			out[i] = sum / float64(valid)
		}
	}

	return out
}

// ewmMean is the adjusted exponentially weighted mean with alpha = 2/(span+1).
// Missing values keep decaying the weights of older observations. A row is NaN until
// minPeriods non-NaN observations have been seen.
func ewmMean(values []float64, span int, minPeriods int) []float64 {
	out := nanSeries(len(values))
	decay := 1 - 2.0/float64(span+1)

	num := 0.0
	den := 0.0
	seen := 0

	for i, v := range values {
		num *= decay
		den *= decay

		if !math.IsNaN(v) {
			num += v
			den++
			seen++
		}

		if seen >= minPeriods && den > 0 {
			out[i] = num / den
		}
	}

	return out
}
