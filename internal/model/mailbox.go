package model

import "time"

type Mailbox struct {
	ID           string     `json:"id" db:"id"`
	ServerID     string     `json:"server_id" db:"server_id"`
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	Status       string     `json:"status" db:"status"`
	StorageUsed  int64      `json:"storage_used" db:"storage_used"`
	StorageLimit *int64     `json:"storage_limit,omitempty" db:"storage_limit"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
}
