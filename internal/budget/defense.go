package budget

import (
	"math/rand"

	"DeadReckoning/internal/ledger"
	"DeadReckoning/internal/model"
)

// Tuning holds the empirical correction constants applied to target rates.
// Resolution multiplies both the target rate and the random-draw range so
// the two live on a comparable integer grid. Bias is a constant added to
// the rate to offset releases lost to the hard budget ceiling truncating
// the right tail. Both were tuned against simulation output, not derived.
type Tuning struct {
	Resolution float64
	Bias       float64
}

// DefaultTuning mirrors the values the budget was calibrated with.
var DefaultTuning = Tuning{Resolution: 10, Bias: 1}

// Defense represents one blocking rule registered with a budget: its share
// of the total money and the statistics that turn that share into a per-day
// release quota.
type Defense struct {
	Name           string
	AllocatedMoney float64
	WindowDays     int

	tuning Tuning
}

// AverageSendAmount returns the mean amount of historical transactions this
// defense flagged, within the trailing window ending the day before `day`
// and at or under the ledger's release ceiling. ok is false when no
// qualifying history exists yet.
func (d *Defense) AverageSendAmount(hist *ledger.Ledger, day int) (avg float64, ok bool) {
	from := day - d.WindowDays
	if from < 0 {
		from = 0
	}
	return hist.DefenseWindowAverage(d.Name, from, day)
}

// TargetRate returns this defense's ideal releases per day: its allocated
// money spread over the window at the historical average cost per release,
// rescaled by the tuning constants. ok is false when there is no history to
// average over.
func (d *Defense) TargetRate(hist *ledger.Ledger, day int) (rate float64, ok bool) {
	avg, ok := d.AverageSendAmount(hist, day)
	if !ok {
		return 0, false
	}
	raw := d.AllocatedMoney / (avg * float64(d.WindowDays))
	return raw*d.tuning.Resolution + d.tuning.Bias, true
}

// Threshold returns the admission threshold this defense contributes for
// the given transaction: the target rate if it flagged the transaction,
// otherwise 0. Zero can never win a draw, so a defense that did not flag
// the transaction, or has no history yet, grants no release credit.
func (d *Defense) Threshold(tx *model.Transaction, hist *ledger.Ledger, day int) float64 {
	if !tx.Flagged(d.Name) {
		return 0
	}
	rate, ok := d.TargetRate(hist, day)
	if !ok {
		return 0
	}
	return rate
}

// AverageCountPerDay returns the average number of release opportunities
// this defense sees in a day, from the historical ledger.
func (d *Defense) AverageCountPerDay(hist *ledger.Ledger) int {
	return hist.DefenseDailyAverageCount(d.Name)
}

// RandomDraw returns a uniform integer in [0, AverageCountPerDay*Resolution]
// inclusive. Drawn fresh per evaluation, never cached.
func (d *Defense) RandomDraw(hist *ledger.Ledger, rng *rand.Rand) int {
	upper := int(float64(d.AverageCountPerDay(hist)) * d.tuning.Resolution)
	return rng.Intn(upper + 1)
}
