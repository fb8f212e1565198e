package model

import (
	"encoding/json"
	"time"
)

// ServerMetricsEntry is one point in the append-only metrics time series.
// RawMetrics keeps the fetched payloads verbatim for later inspection.
type ServerMetricsEntry struct {
	ID                string          `json:"id" db:"id"`
	ServerID          string          `json:"server_id" db:"server_id"`
	CPUUsage          *float64        `json:"cpu_usage,omitempty" db:"cpu_usage"`
	MemoryUsage       *float64        `json:"memory_usage,omitempty" db:"memory_usage"`
	DiskUsage         *float64        `json:"disk_usage,omitempty" db:"disk_usage"`
	QueueSize         *int            `json:"queue_size,omitempty" db:"queue_size"`
	ActiveConnections *int            `json:"active_connections,omitempty" db:"active_connections"`
	RawMetrics        json.RawMessage `json:"raw_metrics" db:"raw_metrics"`
	CapturedAt        time.Time       `json:"captured_at" db:"captured_at"`
}
