package model

import "time"

type RemoteServer struct {
	ID           string     `json:"id" db:"id"`
	Hostname     string     `json:"hostname" db:"hostname"`
	APIKey       string     `json:"-" db:"api_key"`
	APIEndpoint  string     `json:"api_endpoint" db:"api_endpoint"`
	Status       string     `json:"status" db:"status"`
	Version      string     `json:"version" db:"version"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty" db:"last_synced_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
