package stats

import (
	"errors"
	"math"
	"math/rand"
)

// Triangular draws one sample from a triangular distribution with the given
// lower limit, mode, and upper limit. Requires min <= mode <= max and
// min < max.
func Triangular(rng *rand.Rand, min, mode, max float64) (float64, error) {
	if min >= max || mode < min || mode > max {
		return 0, errors.New("invalid triangular parameters")
	}
	u := rng.Float64()
	c := (mode - min) / (max - min)
	if u < c {
		return min + math.Sqrt(u*(max-min)*(mode-min)), nil
	}
	return max - math.Sqrt((1-u)*(max-min)*(max-mode)), nil
}
