package model

// DefenseDayStat holds per-defense progress numbers for one simulated day.
type DefenseDayStat struct {
	Name            string
	ReleasedTotal   float64
	ReleasedCount   int
	HistoricalCount int
}

// DayReport is the per-day progress snapshot emitted while simulating.
type DayReport struct {
	Day         int
	WindowSpend float64
	Defenses    []DefenseDayStat
}

// DayLiability is one point of the rolling-exposure series.
type DayLiability struct {
	Day         int
	Outstanding float64
}

// RunSummary holds the end-of-run aggregates.
type RunSummary struct {
	RunID            string
	ReleasedCount    int
	ReleasedTotal    float64
	HistoricalCount  int
	HistoricalTotal  float64
	Liabilities      []DayLiability
	AvgOutstanding   float64 // mean outstanding liability after the warm-up period
	WarmupDays       int     // days excluded from AvgOutstanding
}
