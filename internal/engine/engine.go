package engine

import (
	"math/rand"

	"DeadReckoning/internal/budget"
	"DeadReckoning/internal/ledger"
	"DeadReckoning/internal/model"
)

// Evaluator decides, per quarantined transaction, whether to release it.
// The decision combines per-defense adaptive thresholds, independent random
// draws, and the rolling-window spend cap.
type Evaluator struct {
	budget        *budget.Budget
	maxReleasable float64
	rng           *rand.Rand
}

// New creates an evaluator over the given budget. maxReleasable is the
// ceiling on any single released amount; rng is the draw source and must be
// seeded by the caller when reproducibility matters.
func New(b *budget.Budget, maxReleasable float64, rng *rand.Rand) *Evaluator {
	return &Evaluator{budget: b, maxReleasable: maxReleasable, rng: rng}
}

// Evaluate returns the release verdict for tx on the given day. hist is the
// full historical ledger, released the ledger of prior releases. The
// transaction is released iff all three hold:
//
//  1. its amount is at or under the per-transaction ceiling,
//  2. admitting it keeps the rolling window spend at or under the total
//     budget,
//  3. at least one defense's random draw falls strictly under that
//     defense's threshold.
//
// Conditions 1 and 2 are hard gates; condition 3 is the stochastic
// admission test, an OR across defenses so a transaction flagged by several
// rules gets several independent chances.
func (e *Evaluator) Evaluate(tx *model.Transaction, day int, hist, released *ledger.Ledger) *model.Decision {
	defenses := e.budget.Defenses()

	thresholds := make([]float64, len(defenses))
	draws := make([]int, len(defenses))
	for i, d := range defenses {
		thresholds[i] = d.Threshold(tx, hist, day)
		draws[i] = d.RandomDraw(hist, e.rng)
	}

	from := day - e.budget.WindowDays
	if from < 1 {
		from = 1
	}
	windowSpend := released.SumFrom(from)

	dec := &model.Decision{
		Thresholds:  thresholds,
		Draws:       draws,
		WindowSpend: windowSpend,
	}

	if tx.Amount > e.maxReleasable {
		return dec
	}
	if windowSpend+tx.Amount > e.budget.TotalMoney {
		return dec
	}
	for i := range defenses {
		if float64(draws[i]) < thresholds[i] {
			dec.Released = true
			break
		}
	}
	return dec
}
