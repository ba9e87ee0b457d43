package domain

import "time"

// ProcessedEvent is the queue payload announcing one completed processing
// request. Consumers observe it for audit logging and metrics only; the
// history store of the publishing process stays the single source of truth.
type ProcessedEvent struct {
	EntryID    int64     `json:"entry_id"`
	Format     Format    `json:"format"`
	Intent     string    `json:"intent"`
	SourceInfo string    `json:"source_info"`
	Timestamp  time.Time `json:"timestamp"`
}
