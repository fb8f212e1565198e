package model

import "time"

// BackupHistoryEntry records one backup run. Entries are append-only:
// a "running" entry is closed out by a later sync or external signal,
// never by this engine.
type BackupHistoryEntry struct {
	ID          string     `json:"id" db:"id"`
	JobID       string     `json:"job_id" db:"job_id"`
	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	Status      string     `json:"status" db:"status"`
	SizeBytes   *int64     `json:"size_bytes,omitempty" db:"size_bytes"`
	Error       *string    `json:"error,omitempty" db:"error"`
}
