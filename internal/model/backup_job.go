package model

import "time"

type BackupJob struct {
	ID            string     `json:"id" db:"id"`
	ServerID      string     `json:"server_id" db:"server_id"`
	Name          string     `json:"name" db:"name"`
	BackupType    string     `json:"backup_type" db:"backup_type"`
	Destination   string     `json:"destination" db:"destination"`
	Schedule      string     `json:"schedule" db:"schedule"`
	Status        string     `json:"status" db:"status"`
	RetentionDays int        `json:"retention_days" db:"retention_days"`
	EncryptionKey *string    `json:"-" db:"encryption_key"`
	LastRunAt     *time.Time `json:"last_run_at,omitempty" db:"last_run_at"`
	NextRunAt     *time.Time `json:"next_run_at,omitempty" db:"next_run_at"`
}
