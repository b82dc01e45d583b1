package ledger

import (
	"DeadReckoning/internal/model"
	"DeadReckoning/internal/stats"
)

// defenseDayStat accumulates per-defense numbers inside one day bucket.
// "Eligible" rows are those at or under the ledger's amount cap; they are
// the only rows that feed the historical average send amount.
type defenseDayStat struct {
	count         int
	eligibleCount int
	eligibleSum   float64
}

type dayBucket struct {
	entries  []*model.Transaction
	total    float64
	defenses map[string]*defenseDayStat
}

type defenseTotal struct {
	count int
	total float64
}

// Ledger is an append-only, day-bucketed record of transactions. Entries are
// never removed; rolling windows are read-time filters over the day buckets,
// so window queries cost O(window) regardless of how much history has
// accumulated.
type Ledger struct {
	amountCap float64
	days      map[int]*dayBucket
	minDay    int
	maxDay    int
	count     int
	total     float64
	defenses  map[string]*defenseTotal
}

// New creates an empty ledger. amountCap bounds which rows count toward the
// per-defense average send amount; rows above it are still stored and still
// count toward totals.
func New(amountCap float64) *Ledger {
	return &Ledger{
		amountCap: amountCap,
		days:      make(map[int]*dayBucket),
		defenses:  make(map[string]*defenseTotal),
	}
}

// Append records a transaction under its own day. Appending is the only
// mutation the ledger supports.
func (l *Ledger) Append(tx *model.Transaction) {
	b := l.days[tx.Day]
	if b == nil {
		b = &dayBucket{defenses: make(map[string]*defenseDayStat)}
		l.days[tx.Day] = b
	}
	b.entries = append(b.entries, tx)
	b.total += tx.Amount

	for name, set := range tx.Flags {
		if !set {
			continue
		}
		ds := b.defenses[name]
		if ds == nil {
			ds = &defenseDayStat{}
			b.defenses[name] = ds
		}
		ds.count++
		if tx.Amount <= l.amountCap {
			ds.eligibleCount++
			ds.eligibleSum += tx.Amount
		}
		dt := l.defenses[name]
		if dt == nil {
			dt = &defenseTotal{}
			l.defenses[name] = dt
		}
		dt.count++
		dt.total += tx.Amount
	}

	if l.count == 0 || tx.Day < l.minDay {
		l.minDay = tx.Day
	}
	if tx.Day > l.maxDay {
		l.maxDay = tx.Day
	}
	l.count++
	l.total += tx.Amount
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int { return l.count }

// TotalAmount returns the dollar sum of all recorded transactions.
func (l *Ledger) TotalAmount() float64 { return l.total }

// MaxDay returns the most recent day with at least one entry, 0 when empty.
func (l *Ledger) MaxDay() int { return l.maxDay }

// WindowSum returns the dollar sum of entries with day in [from, to).
func (l *Ledger) WindowSum(from, to int) float64 {
	if from < l.minDay {
		from = l.minDay
	}
	if to > l.maxDay+1 {
		to = l.maxDay + 1
	}
	sum := 0.0
	for d := from; d < to; d++ {
		if b := l.days[d]; b != nil {
			sum += b.total
		}
	}
	return sum
}

// SumFrom returns the dollar sum of entries with day >= from.
func (l *Ledger) SumFrom(from int) float64 {
	return l.WindowSum(from, l.maxDay+1)
}

// DefenseWindowAverage returns the mean amount of cap-eligible entries
// flagged by the named defense with day in [from, to). ok is false when no
// qualifying entry exists, which callers treat as "no signal yet".
func (l *Ledger) DefenseWindowAverage(name string, from, to int) (avg float64, ok bool) {
	if from < l.minDay {
		from = l.minDay
	}
	if to > l.maxDay+1 {
		to = l.maxDay + 1
	}
	sum, n := 0.0, 0
	for d := from; d < to; d++ {
		b := l.days[d]
		if b == nil {
			continue
		}
		if ds := b.defenses[name]; ds != nil {
			sum += ds.eligibleSum
			n += ds.eligibleCount
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// DefenseDailyAverageCount returns the mean per-day count of entries flagged
// by the named defense, over days where the defense flagged anything. The
// mean is truncated to an integer. Returns 0 for an unseen defense.
func (l *Ledger) DefenseDailyAverageCount(name string) int {
	var counts []float64
	for d := l.minDay; d <= l.maxDay; d++ {
		b := l.days[d]
		if b == nil {
			continue
		}
		if ds := b.defenses[name]; ds != nil && ds.count > 0 {
			counts = append(counts, float64(ds.count))
		}
	}
	m, err := stats.Mean(counts)
	if err != nil {
		return 0
	}
	return int(m)
}

// DefenseCount returns how many recorded transactions the named defense
// flagged, across all days.
func (l *Ledger) DefenseCount(name string) int {
	if dt := l.defenses[name]; dt != nil {
		return dt.count
	}
	return 0
}

// DefenseTotal returns the dollar sum of recorded transactions the named
// defense flagged, across all days.
func (l *Ledger) DefenseTotal(name string) float64 {
	if dt := l.defenses[name]; dt != nil {
		return dt.total
	}
	return 0
}
