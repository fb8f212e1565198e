package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/mailpanel/internal/model"
)

func (p *Postgres) GetServer(ctx context.Context, id string) (*model.RemoteServer, error) {
	var s model.RemoteServer
	err := p.db.QueryRow(ctx,
		`SELECT id, hostname, api_key, api_endpoint, status, version, last_synced_at, created_at, updated_at
		 FROM remote_servers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Hostname, &s.APIKey, &s.APIEndpoint, &s.Status, &s.Version, &s.LastSyncedAt, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("server %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get server %s: %w", id, err)
	}
	return &s, nil
}

// UpdateServerStatus records the outcome of a status sync. It is the
// only write path for status, version and last_synced_at.
func (p *Postgres) UpdateServerStatus(ctx context.Context, id, status, version string, syncedAt time.Time) error {
	tag, err := p.db.Exec(ctx,
		`UPDATE remote_servers SET status = $1, version = $2, last_synced_at = $3, updated_at = now()
		 WHERE id = $4`,
		status, version, syncedAt, id,
	)
	if err != nil {
		return fmt.Errorf("update server %s status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("server %s: %w", id, ErrNotFound)
	}
	return nil
}
