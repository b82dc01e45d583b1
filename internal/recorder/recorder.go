package recorder

import "DeadReckoning/internal/model"

// ReleaseEvent records one transaction the engine released from quarantine.
type ReleaseEvent struct {
	RunID       string
	Day         int
	TxID        string
	Amount      float64
	Flags       string // comma-joined defense names that flagged the transaction
	WindowSpend float64
}

// DayStat records the budget state at the start of one simulated day.
type DayStat struct {
	RunID         string
	Day           int
	WindowSpend   float64
	ReleasedCount int
	ReleasedTotal float64
}

// Recorder persists simulation output for later analysis.
type Recorder interface {
	RecordRelease(evt *ReleaseEvent) error
	RecordDaily(stat *DayStat) error
	RecordRun(sum *model.RunSummary) error
	Close() error
}
