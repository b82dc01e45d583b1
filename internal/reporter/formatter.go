package reporter

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"DeadReckoning/internal/model"
)

func dollars(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

// FormatDayProgress formats the per-day progress line plus one line per
// defense with its released and historical tallies.
func FormatDayProgress(rep *model.DayReport, windowDays int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("day %d | %d-day window consumed %s\n",
		rep.Day, windowDays, dollars(rep.WindowSpend)))
	for _, d := range rep.Defenses {
		b.WriteString(fmt.Sprintf("  %s: released %s (count %d) | historical count %d\n",
			d.Name, dollars(d.ReleasedTotal), d.ReleasedCount, d.HistoricalCount))
	}
	return b.String()
}

// FormatRelease formats a single release verdict with the thresholds and
// draws that produced it.
func FormatRelease(tx *model.Transaction, dec *model.Decision) string {
	return fmt.Sprintf("released %s | thresholds: %v draws: %v",
		dollars(tx.Amount), dec.Thresholds, dec.Draws)
}

// FormatSummary formats the end-of-run report: totals, the rolling
// liability per day, and the post-warm-up average.
func FormatSummary(sum *model.RunSummary, windowDays int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("released %d transactions summing %s\n",
		sum.ReleasedCount, dollars(sum.ReleasedTotal)))
	for _, l := range sum.Liabilities {
		b.WriteString(fmt.Sprintf("day %d | %d-day outstanding liability: %s\n",
			l.Day, windowDays, dollars(l.Outstanding)))
	}
	b.WriteString(fmt.Sprintf("average outstanding liability (after %d warm-up days): %s\n",
		sum.WarmupDays, dollars(sum.AvgOutstanding)))
	b.WriteString(fmt.Sprintf("simulated %s transactions totaling %s\n",
		humanize.Comma(int64(sum.HistoricalCount)), dollars(sum.HistoricalTotal)))
	return b.String()
}
