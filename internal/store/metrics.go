package store

import (
	"context"
	"fmt"

	"github.com/edvin/mailpanel/internal/model"
)

// InsertMetrics appends one entry to the metrics time series.
func (p *Postgres) InsertMetrics(ctx context.Context, e *model.ServerMetricsEntry) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO server_metrics (id, server_id, cpu_usage, memory_usage, disk_usage, queue_size, active_connections, raw_metrics, captured_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.ServerID, e.CPUUsage, e.MemoryUsage, e.DiskUsage, e.QueueSize, e.ActiveConnections, e.RawMetrics, e.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("insert metrics for server %s: %w", e.ServerID, err)
	}
	return nil
}
