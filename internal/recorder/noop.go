package recorder

import "DeadReckoning/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRelease(_ *ReleaseEvent) error { return nil }
func (n *NoopRecorder) RecordDaily(_ *DayStat) error        { return nil }
func (n *NoopRecorder) RecordRun(_ *model.RunSummary) error { return nil }
func (n *NoopRecorder) Close() error                        { return nil }
