package stats

import "errors"

// ErrEmpty is returned when a statistic is requested over no samples.
var ErrEmpty = errors.New("no samples")

// Mean computes the arithmetic mean of the given values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}
