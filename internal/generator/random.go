package generator

import (
	"log"
	"math/rand"

	"DeadReckoning/internal/model"
	"DeadReckoning/internal/stats"
)

// FlagRate pairs a defense name with the probability that it blocks any
// given transaction.
type FlagRate struct {
	Name string
	Rate float64
}

// RandomSource generates synthetic blocked transactions. Each defense flags
// independently at its configured rate, resampled until at least one flag
// is set (everything this simulation sees was blocked by something), and
// the amount comes from a triangular distribution shaped like real send
// amounts.
type RandomSource struct {
	rng   *rand.Rand
	rates []FlagRate

	amountMin  float64
	amountMode float64
	amountMax  float64
}

// NewRandomSource creates a source drawing from rng. The amount triangle is
// (min, mode, max).
func NewRandomSource(rng *rand.Rand, rates []FlagRate, min, mode, max float64) *RandomSource {
	return &RandomSource{
		rng:        rng,
		rates:      rates,
		amountMin:  min,
		amountMode: mode,
		amountMax:  max,
	}
}

func (s *RandomSource) Name() string { return "random" }

// Next generates one blocked transaction for the given day.
func (s *RandomSource) Next(day int) *model.Transaction {
	flags := make(map[string]bool, len(s.rates))
	for {
		any := false
		for _, fr := range s.rates {
			set := s.rng.Float64() < fr.Rate
			flags[fr.Name] = set
			any = any || set
		}
		if any {
			break
		}
	}

	amount, err := stats.Triangular(s.rng, s.amountMin, s.amountMode, s.amountMax)
	if err != nil {
		log.Printf("[WARN] amount sample failed: %v, using mode", err)
		amount = s.amountMode
	}
	return model.NewTransaction(day, amount, flags)
}
